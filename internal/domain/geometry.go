package domain

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/invotaxi/region-service/internal/pkg/errors"
	geoutil "github.com/invotaxi/region-service/internal/pkg/geo"
)

// MinPolygonVertices - минимальное число вершин, при котором полигон можно сохранить
const MinPolygonVertices = 3

// GeoPoint - координата WGS84. Значение неизменяемое: новая точка заменяет старую.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid проверяет диапазоны широты и долготы
func (p GeoPoint) Valid() bool {
	return geoutil.ValidateCoordinates(p.Lat, p.Lon)
}

// Clamp возвращает точку, прижатую к допустимым диапазонам
func (p GeoPoint) Clamp() GeoPoint {
	return GeoPoint{Lat: geoutil.ClampLat(p.Lat), Lon: geoutil.ClampLon(p.Lon)}
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", p.Lat, p.Lon)
}

func (p GeoPoint) toOrb() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// BoundaryMode - способ задания границы региона
type BoundaryMode string

const (
	BoundaryModePoint   BoundaryMode = "point"
	BoundaryModePolygon BoundaryMode = "polygon"
)

// ParseBoundaryMode разбирает режим из строки
func ParseBoundaryMode(s string) (BoundaryMode, error) {
	switch BoundaryMode(s) {
	case BoundaryModePoint, BoundaryModePolygon:
		return BoundaryMode(s), nil
	}
	return "", errors.ErrInvalidValue.WithMessage(fmt.Sprintf("Unknown boundary mode %q", s))
}

// PointBoundary - центр и необязательный радиус обслуживания
type PointBoundary struct {
	Center       GeoPoint `json:"center"`
	RadiusMeters *float64 `json:"radius_meters,omitempty"`
}

// HasRadius - задан ли радиус
func (b PointBoundary) HasRadius() bool {
	return b.RadiusMeters != nil
}

// PolygonBoundary - упорядоченный список вершин. Порядок задаёт контур.
type PolygonBoundary struct {
	Vertices []GeoPoint `json:"vertices"`
}

// Ready - полигон можно сохранять (не меньше трёх вершин)
func (b PolygonBoundary) Ready() bool {
	return len(b.Vertices) >= MinPolygonVertices
}

// Centroid - среднее арифметическое широт и долгот вершин
func (b PolygonBoundary) Centroid() (GeoPoint, bool) {
	if len(b.Vertices) == 0 {
		return GeoPoint{}, false
	}
	var lat, lon float64
	for _, v := range b.Vertices {
		lat += v.Lat
		lon += v.Lon
	}
	n := float64(len(b.Vertices))
	return GeoPoint{Lat: lat / n, Lon: lon / n}, true
}

// Clone возвращает независимую копию вершин
func (b PolygonBoundary) Clone() PolygonBoundary {
	out := make([]GeoPoint, len(b.Vertices))
	copy(out, b.Vertices)
	return PolygonBoundary{Vertices: out}
}

// Contains - попадает ли точка внутрь полигона (чётно-нечётное правило)
func (b PolygonBoundary) Contains(p GeoPoint) bool {
	if !b.Ready() {
		return false
	}
	return planar.RingContains(b.ring(), p.toOrb())
}

// Bounds - ограничивающий прямоугольник вершин
func (b PolygonBoundary) Bounds() BoundingBox {
	if len(b.Vertices) == 0 {
		return BoundingBox{}
	}
	bound := b.ring().Bound()
	return BoundingBox{
		MinLat: bound.Min.Lat(),
		MinLon: bound.Min.Lon(),
		MaxLat: bound.Max.Lat(),
		MaxLon: bound.Max.Lon(),
	}
}

// AreaSqKm - площадь на сфере в квадратных километрах
func (b PolygonBoundary) AreaSqKm() float64 {
	if !b.Ready() {
		return 0
	}
	return math.Abs(geo.Area(orb.Polygon{b.ring()})) / 1e6
}

// PerimeterKm - длина замкнутого контура в километрах
func (b PolygonBoundary) PerimeterKm() float64 {
	if len(b.Vertices) < 2 {
		return 0
	}
	return geo.Length(orb.LineString(b.ring())) / 1000
}

// Coordinates - форма polygon_coordinates API: [[lat, lon], ...]
func (b PolygonBoundary) Coordinates() [][]float64 {
	out := make([][]float64, len(b.Vertices))
	for i, v := range b.Vertices {
		out[i] = []float64{v.Lat, v.Lon}
	}
	return out
}

// PolygonFromCoordinates разбирает polygon_coordinates API, сохраняя порядок вершин
func PolygonFromCoordinates(coords [][]float64) (PolygonBoundary, error) {
	vertices := make([]GeoPoint, 0, len(coords))
	for i, c := range coords {
		if len(c) != 2 {
			return PolygonBoundary{}, errors.ErrInvalidValue.
				WithMessage(fmt.Sprintf("Polygon point %d must be [lat, lon]", i)).
				WithDetails(map[string]interface{}{"index": i})
		}
		p := GeoPoint{Lat: c[0], Lon: c[1]}
		if !p.Valid() {
			return PolygonBoundary{}, errors.ErrInvalidRange.
				WithMessage(fmt.Sprintf("Polygon point %d is out of range", i)).
				WithDetails(map[string]interface{}{"index": i})
		}
		vertices = append(vertices, p)
	}
	return PolygonBoundary{Vertices: vertices}, nil
}

// ring - замкнутое кольцо orb (долгота, широта)
func (b PolygonBoundary) ring() orb.Ring {
	ring := make(orb.Ring, 0, len(b.Vertices)+1)
	for _, v := range b.Vertices {
		ring = append(ring, v.toOrb())
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring
}

// Boundary - граница региона: ровно одно из Point/Polygon заполнено в соответствии с Mode
type Boundary struct {
	Mode    BoundaryMode     `json:"mode"`
	Point   *PointBoundary   `json:"point,omitempty"`
	Polygon *PolygonBoundary `json:"polygon,omitempty"`
}

// NewPointBoundary - граница "точка + радиус"
func NewPointBoundary(center GeoPoint, radius *float64) Boundary {
	return Boundary{
		Mode:  BoundaryModePoint,
		Point: &PointBoundary{Center: center, RadiusMeters: copyFloat(radius)},
	}
}

// NewPolygonBoundary - граница-полигон
func NewPolygonBoundary(vertices []GeoPoint) Boundary {
	p := PolygonBoundary{Vertices: vertices}.Clone()
	return Boundary{Mode: BoundaryModePolygon, Polygon: &p}
}

// Center - центр границы: точка или центроид полигона
func (b Boundary) Center() (GeoPoint, bool) {
	switch b.Mode {
	case BoundaryModePoint:
		if b.Point != nil {
			return b.Point.Center, true
		}
	case BoundaryModePolygon:
		if b.Polygon != nil {
			return b.Polygon.Centroid()
		}
	}
	return GeoPoint{}, false
}

// Validate проверяет инварианты границы перед сохранением
func (b Boundary) Validate() error {
	switch b.Mode {
	case BoundaryModePoint:
		if b.Point == nil || b.Polygon != nil {
			return errors.ErrInvalidValue.WithMessage("Point boundary must not carry polygon data")
		}
		if _, err := geoutil.ValidateLat(b.Point.Center.Lat); err != nil {
			return err
		}
		if _, err := geoutil.ValidateLon(b.Point.Center.Lon); err != nil {
			return err
		}
		if b.Point.RadiusMeters != nil {
			if _, err := geoutil.ValidateRadius(*b.Point.RadiusMeters); err != nil {
				return err
			}
		}
		return nil
	case BoundaryModePolygon:
		if b.Polygon == nil || b.Point != nil {
			return errors.ErrInvalidValue.WithMessage("Polygon boundary must not carry point data")
		}
		for i, v := range b.Polygon.Vertices {
			if !v.Valid() {
				return errors.ErrInvalidRange.
					WithMessage(fmt.Sprintf("Polygon point %d is out of range", i)).
					WithDetails(map[string]interface{}{"index": i})
			}
		}
		if !b.Polygon.Ready() {
			return errors.ErrInsufficientVertices.WithDetails(map[string]interface{}{
				"count":   len(b.Polygon.Vertices),
				"minimum": MinPolygonVertices,
			})
		}
		return nil
	}
	return errors.ErrInvalidValue.WithMessage("Boundary mode is not set")
}

// GeoJSON - Feature для экспорта: Polygon для полигона, Point с radius_meters для точки
func (b Boundary) GeoJSON() *geojson.Feature {
	var f *geojson.Feature
	switch {
	case b.Mode == BoundaryModePolygon && b.Polygon != nil:
		f = geojson.NewFeature(orb.Polygon{b.Polygon.ring()})
		f.Properties["vertex_count"] = len(b.Polygon.Vertices)
	case b.Point != nil:
		f = geojson.NewFeature(b.Point.Center.toOrb())
		if b.Point.RadiusMeters != nil {
			f.Properties["radius_meters"] = *b.Point.RadiusMeters
		}
	default:
		f = geojson.NewFeature(orb.Collection{})
	}
	f.Properties["mode"] = string(b.Mode)
	return f
}

// BoundingBox - прямоугольник в градусах
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
