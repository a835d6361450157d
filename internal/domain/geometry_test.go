package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invotaxi/region-service/internal/pkg/errors"
)

func almatyTriangle() []GeoPoint {
	return []GeoPoint{
		{Lat: 43.25, Lon: 76.90},
		{Lat: 43.26, Lon: 76.91},
		{Lat: 43.24, Lon: 76.92},
	}
}

func TestPolygonCoordinatesRoundTrip(t *testing.T) {
	vertices := append(almatyTriangle(), GeoPoint{Lat: 43.23, Lon: 76.89})
	poly := PolygonBoundary{Vertices: vertices}

	payload, err := json.Marshal(RegionMutation{PolygonCoordinates: poly.Coordinates()})
	require.NoError(t, err)

	var decoded RegionMutation
	require.NoError(t, json.Unmarshal(payload, &decoded))

	parsed, err := PolygonFromCoordinates(decoded.PolygonCoordinates)
	require.NoError(t, err)
	assert.Equal(t, vertices, parsed.Vertices)
}

func TestPolygonFromCoordinates_Invalid(t *testing.T) {
	t.Run("wrong arity", func(t *testing.T) {
		_, err := PolygonFromCoordinates([][]float64{{43.25, 76.9}, {43.26}})
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidValue, errors.CodeOf(err))
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := PolygonFromCoordinates([][]float64{{95, 76.9}})
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidRange, errors.CodeOf(err))
	})
}

func TestPolygonBoundary_Centroid(t *testing.T) {
	c, ok := PolygonBoundary{Vertices: almatyTriangle()}.Centroid()
	require.True(t, ok)
	assert.InDelta(t, 43.25, c.Lat, 1e-9)
	assert.InDelta(t, 76.91, c.Lon, 1e-9)

	_, ok = PolygonBoundary{}.Centroid()
	assert.False(t, ok)
}

func TestPolygonBoundary_Geometry(t *testing.T) {
	square := PolygonBoundary{Vertices: []GeoPoint{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 1, Lon: 1},
		{Lat: 1, Lon: 0},
	}}

	assert.True(t, square.Contains(GeoPoint{Lat: 0.5, Lon: 0.5}))
	assert.False(t, square.Contains(GeoPoint{Lat: 1.5, Lon: 0.5}))

	// градус на экваторе ~ 111 км, квадрат ~ 12 300 км²
	assert.InDelta(t, 12364, square.AreaSqKm(), 150)
	assert.InDelta(t, 4*111.19, square.PerimeterKm(), 2)

	bounds := square.Bounds()
	assert.Equal(t, BoundingBox{MinLat: 0, MinLon: 0, MaxLat: 1, MaxLon: 1}, bounds)

	line := PolygonBoundary{Vertices: square.Vertices[:2]}
	assert.False(t, line.Ready())
	assert.Zero(t, line.AreaSqKm())
	assert.False(t, line.Contains(GeoPoint{Lat: 0, Lon: 0.5}))
}

func TestPolygonBoundary_CloneIsIndependent(t *testing.T) {
	orig := PolygonBoundary{Vertices: almatyTriangle()}
	clone := orig.Clone()
	clone.Vertices[0] = GeoPoint{Lat: 1, Lon: 1}
	assert.Equal(t, 43.25, orig.Vertices[0].Lat)
}

func TestBoundary_Validate(t *testing.T) {
	radius := 5000.0
	zero := 0.0

	tests := []struct {
		name     string
		boundary Boundary
		code     string
	}{
		{"point ok", NewPointBoundary(GeoPoint{Lat: 43.25, Lon: 76.9}, &radius), ""},
		{"point without radius ok", NewPointBoundary(GeoPoint{Lat: 43.25, Lon: 76.9}, nil), ""},
		{"point bad lat", NewPointBoundary(GeoPoint{Lat: 95, Lon: 76.9}, nil), errors.CodeInvalidRange},
		{"point zero radius", NewPointBoundary(GeoPoint{Lat: 43.25, Lon: 76.9}, &zero), errors.CodeInvalidValue},
		{"polygon ok", NewPolygonBoundary(almatyTriangle()), ""},
		{"polygon two vertices", NewPolygonBoundary(almatyTriangle()[:2]), errors.CodeInsufficientVertices},
		{"both representations", Boundary{
			Mode:    BoundaryModePolygon,
			Point:   &PointBoundary{},
			Polygon: &PolygonBoundary{Vertices: almatyTriangle()},
		}, errors.CodeInvalidValue},
		{"no mode", Boundary{}, errors.CodeInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.boundary.Validate()
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestNewRegionMutation(t *testing.T) {
	t.Run("polygon uses centroid as center", func(t *testing.T) {
		m := NewRegionMutation("Medeu", "city-1", NewPolygonBoundary(almatyTriangle()))
		assert.InDelta(t, 43.25, m.CenterLat, 1e-9)
		assert.InDelta(t, 76.91, m.CenterLon, 1e-9)
		assert.Equal(t, [][]float64{{43.25, 76.90}, {43.26, 76.91}, {43.24, 76.92}}, m.PolygonCoordinates)
		assert.Nil(t, m.ServiceRadiusMeters)
	})

	t.Run("point carries radius and null polygon", func(t *testing.T) {
		radius := 5000.0
		m := NewRegionMutation("Center", "city-1", NewPointBoundary(GeoPoint{Lat: 43.2, Lon: 76.8}, &radius))
		require.NotNil(t, m.ServiceRadiusMeters)
		assert.Equal(t, 5000.0, *m.ServiceRadiusMeters)

		payload, err := json.Marshal(m)
		require.NoError(t, err)
		assert.Contains(t, string(payload), `"polygon_coordinates":null`)
	})
}

func TestRegion_Boundary(t *testing.T) {
	radius := 5000.0
	r := Region{CenterLat: 43.2, CenterLon: 76.8, ServiceRadiusMeters: &radius}
	b, err := r.Boundary()
	require.NoError(t, err)
	assert.Equal(t, BoundaryModePoint, b.Mode)
	assert.Equal(t, 5000.0, *b.Point.RadiusMeters)

	r.PolygonCoordinates = PolygonBoundary{Vertices: almatyTriangle()}.Coordinates()
	b, err = r.Boundary()
	require.NoError(t, err)
	assert.Equal(t, BoundaryModePolygon, b.Mode)
	assert.Nil(t, b.Point)
	assert.Len(t, b.Polygon.Vertices, 3)
}

func TestBoundary_GeoJSON(t *testing.T) {
	f := NewPolygonBoundary(almatyTriangle()).GeoJSON()
	payload, err := f.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"type":"Polygon"`)
	assert.Equal(t, "polygon", f.Properties["mode"])

	radius := 800.0
	f = NewPointBoundary(GeoPoint{Lat: 43.2, Lon: 76.8}, &radius).GeoJSON()
	assert.Equal(t, 800.0, f.Properties["radius_meters"])
}

func TestNewRegionStats(t *testing.T) {
	radius := 1000.0
	r := Region{ID: "r1", CenterLat: 43.2, CenterLon: 76.8, ServiceRadiusMeters: &radius}
	stats, err := NewRegionStats(r, Counters{DriversCount: 4, OrdersToday: 2}, r.CreatedAt)
	require.NoError(t, err)
	assert.Equal(t, BoundaryModePoint, stats.Mode)
	assert.InDelta(t, 3.1416, stats.AreaSqKm, 1e-3)
	assert.Equal(t, 4, stats.DriversCount)
	assert.Equal(t, 2, stats.OrdersToday)
}

func TestParseBoundaryMode(t *testing.T) {
	m, err := ParseBoundaryMode("polygon")
	require.NoError(t, err)
	assert.Equal(t, BoundaryModePolygon, m)

	_, err = ParseBoundaryMode("circle")
	assert.Error(t, err)
}
