package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invotaxi/region-service/internal/config"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000,http://localhost:5173", cfg.Server.CORSOrigins)
	assert.Equal(t, "region-stats-workers", cfg.Worker.ConsumerGroup)
	assert.Equal(t, 100*time.Millisecond, cfg.Worker.PollInterval)
	assert.Equal(t, int64(10), cfg.Worker.BatchSize)
	assert.Equal(t, 43.238949, cfg.Map.DefaultLat)
	assert.Equal(t, 30*time.Second, cfg.RegionAPI.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Cache.RegionStatsTTL)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoadFrom_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "API_PORT=9090\nREGION_API_BASE_URL=https://crm.example.com/api\nMAP_DEFAULT_LAT=51.1282\nREGION_STATS_CACHE_TTL=5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.GetServerAddr())
	assert.Equal(t, "https://crm.example.com/api", cfg.RegionAPI.BaseURL)
	assert.Equal(t, 51.1282, cfg.Map.DefaultLat)
	assert.Equal(t, 5*time.Second, cfg.Cache.RegionStatsTTL)
}

func TestLoadFrom_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=info\n"), 0o600))
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "port", env: map[string]string{"API_PORT": "70000"}},
		{name: "latitude", env: map[string]string{"MAP_DEFAULT_LAT": "95"}},
		{name: "longitude", env: map[string]string{"MAP_DEFAULT_LON": "-181"}},
		{name: "zoom", env: map[string]string{"MAP_MIN_ZOOM": "20"}},
		{name: "batch", env: map[string]string{"WORKER_BATCH_SIZE": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.LoadFrom("")
			assert.Error(t, err)
		})
	}
}
