package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invotaxi/region-service/internal/pkg/errors"
)

func TestValidateLat(t *testing.T) {
	t.Run("accepts whole range", func(t *testing.T) {
		for _, v := range []float64{-90, -45.5, 0, 43.25, 90} {
			got, err := ValidateLat(v)
			require.NoError(t, err, "lat %v", v)
			assert.Equal(t, v, got)
		}
	})

	t.Run("rejects out of range and non finite", func(t *testing.T) {
		for _, v := range []float64{-90.0001, 90.0001, 95, -180, math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := ValidateLat(v)
			require.Error(t, err, "lat %v", v)
			assert.True(t, errors.Is(err, errors.ErrInvalidRange))
		}
	})
}

func TestValidateLon(t *testing.T) {
	for _, v := range []float64{-180, -0.1, 0, 76.9, 180} {
		_, err := ValidateLon(v)
		assert.NoError(t, err, "lon %v", v)
	}
	for _, v := range []float64{-180.5, 180.5, 360, math.NaN()} {
		_, err := ValidateLon(v)
		assert.Error(t, err, "lon %v", v)
		assert.Equal(t, errors.CodeInvalidRange, errors.CodeOf(err))
	}
}

func TestParseLat(t *testing.T) {
	t.Run("parses text with spaces and comma", func(t *testing.T) {
		v, err := ParseLat(" 43,25 ")
		require.NoError(t, err)
		assert.InDelta(t, 43.25, v, 1e-9)
	})

	t.Run("rejects 95", func(t *testing.T) {
		_, err := ParseLat("95")
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidRange, errors.CodeOf(err))
	})

	t.Run("rejects garbage and empty", func(t *testing.T) {
		for _, s := range []string{"", "   ", "abc", "NaN", "Inf"} {
			_, err := ParseLat(s)
			assert.Error(t, err, "text %q", s)
		}
	})
}

func TestParseLon(t *testing.T) {
	v, err := ParseLon("76.90")
	require.NoError(t, err)
	assert.InDelta(t, 76.90, v, 1e-9)

	_, err = ParseLon("-181")
	assert.Error(t, err)
}

func TestRadius(t *testing.T) {
	t.Run("empty means no radius", func(t *testing.T) {
		r, err := ParseRadius("  ")
		assert.NoError(t, err)
		assert.Nil(t, r)
	})

	t.Run("positive radius", func(t *testing.T) {
		r, err := ParseRadius("5000")
		require.NoError(t, err)
		require.NotNil(t, r)
		assert.Equal(t, 5000.0, *r)
	})

	t.Run("zero negative and garbage rejected", func(t *testing.T) {
		for _, s := range []string{"0", "-1", "x", "Inf"} {
			r, err := ParseRadius(s)
			assert.Nil(t, r)
			require.Error(t, err, "text %q", s)
			assert.Equal(t, errors.CodeInvalidValue, errors.CodeOf(err))
		}
	})

	t.Run("validate radius does not enforce upper bound", func(t *testing.T) {
		_, err := ValidateRadius(MaxRadiusMeters * 10)
		assert.NoError(t, err)
	})
}

func TestSentinelsAreNotMutated(t *testing.T) {
	_, _ = ValidateLat(100)
	assert.Equal(t, "Coordinate is out of range", errors.ErrInvalidRange.Message)
	assert.Nil(t, errors.ErrInvalidRange.Details)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 90.0, ClampLat(120))
	assert.Equal(t, -90.0, ClampLat(-120))
	assert.Equal(t, 180.0, ClampLon(200))
	assert.Equal(t, 10.0, ClampLon(10))
}

func TestHaversineMeters(t *testing.T) {
	assert.Equal(t, 0.0, HaversineMeters(43.25, 76.9, 43.25, 76.9))
	// один градус широты ~ 111 км
	d := HaversineMeters(43, 76.9, 44, 76.9)
	assert.InDelta(t, 111195, d, 100)
	assert.True(t, ValidateCoordinates(43.25, 76.9))
	assert.False(t, ValidateCoordinates(91, 0))
}
