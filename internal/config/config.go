package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Worker    WorkerConfig
	Map       MapConfig
	RegionAPI RegionAPIConfig
	Metrics   MetricsConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
	// список origin через запятую, как его ждёт fiber cors
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	AutoMigrate     bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	RegionStatsTTL time.Duration
	RegionListTTL  time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	PollInterval  time.Duration
	MaxRetries    int
	BatchSize     int64
}

// MapConfig - настройки карты редактора границ
type MapConfig struct {
	DefaultLat    float64
	DefaultLon    float64
	DefaultZoom   float64
	MinZoom       float64
	MaxZoom       float64
	IconURL       string
	VertexIconURL string
	Attribution   string
}

// RegionAPIConfig - внешний REST API регионов, с которым работает форма
type RegionAPIConfig struct {
	BaseURL        string
	Token          string
	RequestTimeout time.Duration
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load читает .env из текущей директории и переменные окружения
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom читает конфигурацию из файла path и переменных окружения.
// Отсутствующий файл не ошибка: значения берутся из окружения и умолчаний.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			RegionStatsTTL: time.Duration(v.GetInt("REGION_STATS_CACHE_TTL")) * time.Second,
			RegionListTTL:  time.Duration(v.GetInt("REGION_LIST_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:       v.GetBool("WORKER_ENABLED"),
			ConsumerGroup: v.GetString("WORKER_CONSUMER_GROUP"),
			PollInterval:  time.Duration(v.GetInt("WORKER_POLL_INTERVAL")) * time.Millisecond,
			MaxRetries:    v.GetInt("WORKER_MAX_RETRIES"),
			BatchSize:     v.GetInt64("WORKER_BATCH_SIZE"),
		},
		Map: MapConfig{
			DefaultLat:    v.GetFloat64("MAP_DEFAULT_LAT"),
			DefaultLon:    v.GetFloat64("MAP_DEFAULT_LON"),
			DefaultZoom:   v.GetFloat64("MAP_DEFAULT_ZOOM"),
			MinZoom:       v.GetFloat64("MAP_MIN_ZOOM"),
			MaxZoom:       v.GetFloat64("MAP_MAX_ZOOM"),
			IconURL:       v.GetString("MAP_ICON_URL"),
			VertexIconURL: v.GetString("MAP_VERTEX_ICON_URL"),
			Attribution:   v.GetString("MAP_ATTRIBUTION"),
		},
		RegionAPI: RegionAPIConfig{
			BaseURL:        v.GetString("REGION_API_BASE_URL"),
			Token:          v.GetString("REGION_API_TOKEN"),
			RequestTimeout: time.Duration(v.GetInt("REGION_API_TIMEOUT")) * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
			Path:    v.GetString("METRICS_PATH"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)

	v.SetDefault("REGION_STATS_CACHE_TTL", 60)
	v.SetDefault("REGION_LIST_CACHE_TTL", 300)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_CONSUMER_GROUP", "region-stats-workers")
	v.SetDefault("WORKER_POLL_INTERVAL", 100)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
	v.SetDefault("WORKER_BATCH_SIZE", 10)

	// Алматы
	v.SetDefault("MAP_DEFAULT_LAT", 43.238949)
	v.SetDefault("MAP_DEFAULT_LON", 76.889709)
	v.SetDefault("MAP_DEFAULT_ZOOM", 12)
	v.SetDefault("MAP_MIN_ZOOM", 3)
	v.SetDefault("MAP_MAX_ZOOM", 19)
	v.SetDefault("MAP_ICON_URL", "/static/map/marker-icon.png")
	v.SetDefault("MAP_VERTEX_ICON_URL", "/static/map/vertex-icon.png")
	v.SetDefault("MAP_ATTRIBUTION", "© OpenStreetMap contributors")

	v.SetDefault("REGION_API_BASE_URL", "http://localhost:8080/api/v1")
	v.SetDefault("REGION_API_TIMEOUT", 30)

	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("METRICS_PATH", "/metrics")
}

// Validate проверяет значения, без которых сервис не стартует
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid API_PORT: %d", c.Server.Port)
	}
	if c.Map.DefaultLat < -90 || c.Map.DefaultLat > 90 {
		return fmt.Errorf("invalid MAP_DEFAULT_LAT: %g", c.Map.DefaultLat)
	}
	if c.Map.DefaultLon < -180 || c.Map.DefaultLon > 180 {
		return fmt.Errorf("invalid MAP_DEFAULT_LON: %g", c.Map.DefaultLon)
	}
	if c.Map.MinZoom > c.Map.MaxZoom {
		return fmt.Errorf("MAP_MIN_ZOOM %g is greater than MAP_MAX_ZOOM %g", c.Map.MinZoom, c.Map.MaxZoom)
	}
	if c.Worker.BatchSize <= 0 {
		return fmt.Errorf("invalid WORKER_BATCH_SIZE: %d", c.Worker.BatchSize)
	}
	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound) || stderrors.Is(err, fs.ErrNotExist) || os.IsNotExist(err)
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
