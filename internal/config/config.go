package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/smartcity/aqi-forecast/internal/aqi"
)

// Database drivers for the forecast audit log
const (
	DriverNone     = "none"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all service settings, populated from .env and the environment
type Config struct {
	Port string
	Env  string
	City string

	DateLayout       string
	MLServiceURL     string
	ModelTimeout     time.Duration
	OutOfRangePolicy aqi.OutOfRangePolicy
	CacheSize        int
	MaxRangeDays     int

	DBDriver    string
	DatabaseURL string

	KafkaBrokers []string
	KafkaTopic   string

	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// LoadDotEnv loads a .env file if present and reports whether one was found
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load reads configuration from environment variables, applying defaults where unset
func Load() (*Config, error) {
	modelTimeout, err := parseDuration("MODEL_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	policy, err := aqi.ParsePolicy(getEnv("OUT_OF_RANGE_POLICY", "clamp"))
	if err != nil {
		return nil, fmt.Errorf("invalid OUT_OF_RANGE_POLICY: %w", err)
	}
	cacheSize, err := parseInt("FORECAST_CACHE_SIZE", 366, 0)
	if err != nil {
		return nil, err
	}
	maxRange, err := parseInt("MAX_RANGE_DAYS", 31, 1)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("GO_ENV", "development"),
		City:             getEnv("CITY", "Mumbai"),
		DateLayout:       getEnv("DATE_LAYOUT", aqi.DefaultLayout),
		MLServiceURL:     strings.TrimSuffix(getEnv("ML_SERVICE_URL", ""), "/"),
		ModelTimeout:     modelTimeout,
		OutOfRangePolicy: policy,
		CacheSize:        cacheSize,
		MaxRangeDays:     maxRange,
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", DriverNone)),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		KafkaBrokers:     parseList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:       getEnv("KAFKA_TOPIC", "aqi-forecasts"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
	}

	switch cfg.DBDriver {
	case DriverNone, DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DB_DRIVER is postgres but DATABASE_URL is not set")
		}
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseInt(key string, def, min int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < min {
		return 0, fmt.Errorf("invalid %s: must be an integer >= %d", key, min)
	}
	return n, nil
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
