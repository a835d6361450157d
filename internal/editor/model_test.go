package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/editor"
)

var almaty = domain.GeoPoint{Lat: 43.238949, Lon: 76.889709}

func pt(lat, lon float64) domain.GeoPoint {
	return domain.GeoPoint{Lat: lat, Lon: lon}
}

func radius(v float64) *float64 {
	return &v
}

func TestModel_EmptyBoundaryStartsAtDefaultCenter(t *testing.T) {
	m := editor.NewModel(domain.Boundary{}, almaty)

	assert.Equal(t, domain.BoundaryModePoint, m.Mode())
	assert.Equal(t, almaty, m.Center())
	assert.Nil(t, m.Radius())
}

func TestModel_RemoveVertex(t *testing.T) {
	t.Run("no-op at three vertices", func(t *testing.T) {
		m := editor.NewModel(domain.NewPolygonBoundary([]domain.GeoPoint{pt(1, 1), pt(2, 2), pt(3, 3)}), almaty)

		for i := -1; i < 4; i++ {
			assert.False(t, m.RemoveVertex(i))
		}
		assert.Equal(t, 3, m.Count())
	})

	t.Run("above minimum removes one and keeps order", func(t *testing.T) {
		m := editor.NewModel(domain.NewPolygonBoundary([]domain.GeoPoint{pt(1, 1), pt(2, 2), pt(3, 3), pt(4, 4), pt(5, 5)}), almaty)

		require.True(t, m.RemoveVertex(1))

		assert.Equal(t, []domain.GeoPoint{pt(1, 1), pt(3, 3), pt(4, 4), pt(5, 5)}, m.Vertices())
	})

	t.Run("out of range index", func(t *testing.T) {
		m := editor.NewModel(domain.NewPolygonBoundary([]domain.GeoPoint{pt(1, 1), pt(2, 2), pt(3, 3), pt(4, 4)}), almaty)

		assert.False(t, m.RemoveVertex(4))
		assert.Equal(t, 4, m.Count())
	})
}

func TestModel_OperationsRespectMode(t *testing.T) {
	m := editor.NewModel(domain.NewPointBoundary(almaty, nil), almaty)

	assert.ErrorIs(t, m.AddVertex(pt(1, 1)), editor.ErrWrongMode)
	assert.ErrorIs(t, m.MoveVertex(0, pt(1, 1)), editor.ErrWrongMode)
	assert.False(t, m.RemoveVertex(0))

	m.SwitchMode(domain.BoundaryModePolygon)

	assert.ErrorIs(t, m.SetCenter(pt(1, 1)), editor.ErrWrongMode)
	assert.ErrorIs(t, m.SetRadius(radius(10)), editor.ErrWrongMode)
	assert.ErrorIs(t, m.MoveVertex(0, pt(1, 1)), editor.ErrVertexIndex)
}

func TestModel_SwitchModeRestoresPoint(t *testing.T) {
	m := editor.NewModel(domain.NewPointBoundary(pt(43.25, 76.9), radius(5000)), almaty)

	require.True(t, m.SwitchMode(domain.BoundaryModePolygon))
	assert.Empty(t, m.Vertices())
	assert.Nil(t, m.Radius())

	require.NoError(t, m.AddVertex(pt(1, 1)))
	require.True(t, m.SwitchMode(domain.BoundaryModePoint))

	assert.Empty(t, m.Vertices())
	assert.Equal(t, pt(43.25, 76.9), m.Center())
	require.NotNil(t, m.Radius())
	assert.Equal(t, 5000.0, *m.Radius())
	assert.False(t, m.SwitchMode(domain.BoundaryModePoint))
}

func TestModel_PolygonToPointWithoutMemoUsesDefault(t *testing.T) {
	m := editor.NewModel(domain.NewPolygonBoundary([]domain.GeoPoint{pt(1, 1), pt(2, 2), pt(3, 3)}), almaty)

	m.SwitchMode(domain.BoundaryModePoint)

	assert.Equal(t, almaty, m.Center())
	assert.NoError(t, m.Boundary().Validate())
}

func TestModel_RadiusIsCopied(t *testing.T) {
	r := radius(1000)
	m := editor.NewModel(domain.NewPointBoundary(almaty, nil), almaty)
	require.NoError(t, m.SetRadius(r))

	*r = 1
	got := m.Radius()
	*got = 2

	assert.Equal(t, 1000.0, *m.Radius())
}
