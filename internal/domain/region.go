package domain

import (
	"math"
	"time"
)

// City - город, к которому привязываются регионы обслуживания
type City struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	CenterLat float64   `json:"center_lat" db:"center_lat"`
	CenterLon float64   `json:"center_lon" db:"center_lon"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Region - регион обслуживания такси в том виде, в котором его отдаёт API
type Region struct {
	ID                  string      `json:"id"`
	Title               string      `json:"title"`
	CityID              string      `json:"city_id"`
	CityTitle           string      `json:"city_title,omitempty"`
	CenterLat           float64     `json:"center_lat"`
	CenterLon           float64     `json:"center_lon"`
	PolygonCoordinates  [][]float64 `json:"polygon_coordinates,omitempty"`
	ServiceRadiusMeters *float64    `json:"service_radius_meters,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// Boundary восстанавливает границу региона: есть полигон - режим Polygon, иначе Point
func (r Region) Boundary() (Boundary, error) {
	if len(r.PolygonCoordinates) > 0 {
		poly, err := PolygonFromCoordinates(r.PolygonCoordinates)
		if err != nil {
			return Boundary{}, err
		}
		return NewPolygonBoundary(poly.Vertices), nil
	}
	return NewPointBoundary(GeoPoint{Lat: r.CenterLat, Lon: r.CenterLon}, r.ServiceRadiusMeters), nil
}

// RegionMutation - тело POST /regions/ и PATCH /regions/{id}/.
// PATCH заменяет границу целиком: null в polygon_coordinates переводит регион в режим точки.
type RegionMutation struct {
	Title               string      `json:"title"`
	CityID              string      `json:"city_id"`
	CenterLat           float64     `json:"center_lat"`
	CenterLon           float64     `json:"center_lon"`
	PolygonCoordinates  [][]float64 `json:"polygon_coordinates"`
	ServiceRadiusMeters *float64    `json:"service_radius_meters"`
}

// NewRegionMutation собирает тело запроса из черновика. Для полигона центром служит центроид.
func NewRegionMutation(title, cityID string, b Boundary) RegionMutation {
	m := RegionMutation{Title: title, CityID: cityID}
	if c, ok := b.Center(); ok {
		m.CenterLat, m.CenterLon = c.Lat, c.Lon
	}
	switch b.Mode {
	case BoundaryModePolygon:
		if b.Polygon != nil {
			m.PolygonCoordinates = b.Polygon.Coordinates()
		}
	case BoundaryModePoint:
		if b.Point != nil {
			m.ServiceRadiusMeters = copyFloat(b.Point.RadiusMeters)
		}
	}
	return m
}

// Boundary - граница из тела запроса
func (m RegionMutation) Boundary() (Boundary, error) {
	return Region{
		CenterLat:           m.CenterLat,
		CenterLon:           m.CenterLon,
		PolygonCoordinates:  m.PolygonCoordinates,
		ServiceRadiusMeters: m.ServiceRadiusMeters,
	}.Boundary()
}

// CityMutation - тело запросов создания и изменения города
type CityMutation struct {
	Title     string  `json:"title"`
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
}

// RegionDraft - черновик формы. Живёт только пока форма открыта.
type RegionDraft struct {
	ID       string   `json:"id,omitempty"`
	Title    string   `json:"title"`
	CityID   string   `json:"city_id"`
	Boundary Boundary `json:"boundary"`
}

// IsNew - черновик нового региона (ещё без ID)
func (d RegionDraft) IsNew() bool {
	return d.ID == ""
}

// RegionStats - агрегаты по региону для GET /regions/{id}/stats/
type RegionStats struct {
	RegionID            string       `json:"region_id"`
	Mode                BoundaryMode `json:"mode"`
	VertexCount         int          `json:"vertex_count"`
	AreaSqKm            float64      `json:"area_sq_km"`
	PerimeterKm         float64      `json:"perimeter_km"`
	ServiceRadiusMeters *float64     `json:"service_radius_meters,omitempty"`
	DriversCount        int          `json:"drivers_count"`
	ActiveDriversCount  int          `json:"active_drivers_count"`
	OrdersCount         int          `json:"orders_count"`
	OrdersToday         int          `json:"orders_today"`
	ComputedAt          time.Time    `json:"computed_at"`
}

// Counters - счётчики водителей и заказов региона из хранилища
type Counters struct {
	DriversCount       int `db:"drivers_count"`
	ActiveDriversCount int `db:"active_drivers_count"`
	OrdersCount        int `db:"orders_count"`
	OrdersToday        int `db:"orders_today"`
}

// NewRegionStats считает геометрические показатели региона и добавляет счётчики
func NewRegionStats(r Region, c Counters, now time.Time) (*RegionStats, error) {
	b, err := r.Boundary()
	if err != nil {
		return nil, err
	}

	stats := &RegionStats{
		RegionID:           r.ID,
		Mode:               b.Mode,
		DriversCount:       c.DriversCount,
		ActiveDriversCount: c.ActiveDriversCount,
		OrdersCount:        c.OrdersCount,
		OrdersToday:        c.OrdersToday,
		ComputedAt:         now,
	}

	switch b.Mode {
	case BoundaryModePolygon:
		stats.VertexCount = len(b.Polygon.Vertices)
		stats.AreaSqKm = b.Polygon.AreaSqKm()
		stats.PerimeterKm = b.Polygon.PerimeterKm()
	case BoundaryModePoint:
		stats.VertexCount = 1
		if b.Point.RadiusMeters != nil {
			r := *b.Point.RadiusMeters
			stats.ServiceRadiusMeters = &r
			stats.AreaSqKm = circleAreaSqKm(r)
			stats.PerimeterKm = circlePerimeterKm(r)
		}
	}

	return stats, nil
}

func circleAreaSqKm(radiusMeters float64) float64 {
	km := radiusMeters / 1000
	return math.Pi * km * km
}

func circlePerimeterKm(radiusMeters float64) float64 {
	return 2 * math.Pi * radiusMeters / 1000
}
