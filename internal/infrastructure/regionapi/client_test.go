package regionapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/invotaxi/region-service/internal/config"
	"github.com/invotaxi/region-service/internal/domain"
	"github.com/invotaxi/region-service/internal/pkg/errors"
)

func newTestClient(url string) *client {
	cfg := &config.RegionAPIConfig{
		BaseURL:        url + "/",
		Token:          "test_token",
		RequestTimeout: 5 * time.Second,
	}
	return NewClient(cfg, zap.NewNop()).(*client)
}

func TestClient_CreateRegion(t *testing.T) {
	radius := 5000.0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/regions/", r.URL.Path)
		assert.Equal(t, "Bearer test_token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &raw))
		assert.Equal(t, "Центр", raw["title"])
		assert.Equal(t, 5000.0, raw["service_radius_meters"])
		assert.Contains(t, raw, "polygon_coordinates")
		assert.Nil(t, raw["polygon_coordinates"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Region{
			ID:                  "region-1",
			Title:               "Центр",
			CityID:              "city-1",
			CenterLat:           43.25,
			CenterLon:           76.9,
			ServiceRadiusMeters: &radius,
		})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	m := domain.NewRegionMutation("Центр", "city-1", domain.NewPointBoundary(domain.GeoPoint{Lat: 43.25, Lon: 76.9}, &radius))

	region, err := c.CreateRegion(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "region-1", region.ID)
	require.NotNil(t, region.ServiceRadiusMeters)
	assert.Equal(t, 5000.0, *region.ServiceRadiusMeters)
}

func TestClient_UpdateRegionUsesPatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/regions/region-9/", r.URL.Path)

		var m domain.RegionMutation
		require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		assert.Equal(t, [][]float64{{43.25, 76.9}, {43.26, 76.91}, {43.24, 76.92}}, m.PolygonCoordinates)
		assert.Nil(t, m.ServiceRadiusMeters)

		json.NewEncoder(w).Encode(domain.Region{ID: "region-9", PolygonCoordinates: m.PolygonCoordinates})
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	b := domain.NewPolygonBoundary([]domain.GeoPoint{{Lat: 43.25, Lon: 76.9}, {Lat: 43.26, Lon: 76.91}, {Lat: 43.24, Lon: 76.92}})

	region, err := c.UpdateRegion(context.Background(), "region-9", domain.NewRegionMutation("Север", "city-1", b))
	require.NoError(t, err)
	assert.Len(t, region.PolygonCoordinates, 3)
}

func TestClient_ListAndDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/regions/cities/":
			json.NewEncoder(w).Encode([]domain.City{{ID: "city-1", Title: "Алматы"}})
		case r.Method == http.MethodGet && r.URL.Path == "/regions/":
			json.NewEncoder(w).Encode([]domain.Region{{ID: "a"}, {ID: "b"}})
		case r.Method == http.MethodDelete && r.URL.Path == "/regions/a/":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/regions/a/stats/":
			json.NewEncoder(w).Encode(domain.RegionStats{RegionID: "a", DriversCount: 4})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	ctx := context.Background()

	cities, err := c.ListCities(ctx)
	require.NoError(t, err)
	assert.Len(t, cities, 1)

	regions, err := c.ListRegions(ctx)
	require.NoError(t, err)
	assert.Len(t, regions, 2)

	stats, err := c.GetRegionStats(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.DriversCount)

	assert.NoError(t, c.DeleteRegion(ctx, "a"))
}

func TestClient_Errors(t *testing.T) {
	t.Run("validation error body is preserved", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"error":{"code":"INSUFFICIENT_VERTICES","message":"Polygon needs at least 3 points"}}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).CreateRegion(context.Background(), domain.RegionMutation{})
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInsufficientVertices)
		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	})

	t.Run("plain 404", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("not found"))
		}))
		defer server.Close()

		err := newTestClient(server.URL).DeleteCity(context.Background(), "x")
		assert.Equal(t, "HTTP_404", errors.CodeOf(err))
	})

	t.Run("server error is a network error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).ListRegions(context.Background())
		assert.Equal(t, errors.CodeNetworkError, errors.CodeOf(err))
	})

	t.Run("unreachable host", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := newTestClient(url).ListCities(context.Background())
		assert.Equal(t, errors.CodeNetworkError, errors.CodeOf(err))
	})
}
