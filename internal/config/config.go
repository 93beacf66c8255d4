package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures runtime configuration for the order service.
type Config struct {
	HTTP      HTTPConfig
	Storage   StorageConfig
	Events    EventsConfig
	Stock     StockConfig
	Telemetry TelemetryConfig
	Service   ServiceConfig
}

type HTTPConfig struct {
	Port          int
	MetricsPath   string
	ShutdownGrace int
}

// StorageConfig selects where orders and idempotency keys live.
// Backend is "memory" or "postgres".
type StorageConfig struct {
	Backend  string
	Database DatabaseConfig
}

type DatabaseConfig struct {
	URL            string
	AutoMigrate    bool
	MigrationsPath string
}

// EventsConfig selects how domain events leave the process.
// Backend is "log" or "kafka".
type EventsConfig struct {
	Backend string
	Brokers []string
	Topic   string
}

// StockConfig seeds the in-memory stock checker. SKUs not listed are
// treated as unlimited.
type StockConfig struct {
	Levels map[string]int
}

type TelemetryConfig struct {
	LogLevel      string
	OTelEndpoint  string
	EnableTracing bool
	EnableMetrics bool
	SampleRate    float64
}

type ServiceConfig struct {
	Name        string
	Version     string
	Environment string
}

const (
	StorageBackendMemory   = "memory"
	StorageBackendPostgres = "postgres"

	EventsBackendLog   = "log"
	EventsBackendKafka = "kafka"
)

const (
	defaultHTTPPort       = 8080
	defaultMetricsPath    = "/metrics"
	defaultShutdownGrace  = 15
	defaultMigrationsPath = "migrations"
	defaultAutoMigrate    = true
	defaultEventsTopic    = "orders.events"
	defaultServiceName    = "hexorders-api"
	defaultServiceVersion = "0.1.0"
	defaultEnvironment    = "development"
	defaultLogLevel       = "info"
	defaultOTelSampleRate = 1.0
)

// Load reads configuration from environment variables, applying defaults when needed.
func Load() (*Config, error) {
	httpCfg, err := loadHTTPConfig()
	if err != nil {
		return nil, fmt.Errorf("loading HTTP config: %w", err)
	}

	storageCfg, err := loadStorageConfig()
	if err != nil {
		return nil, fmt.Errorf("loading storage config: %w", err)
	}

	eventsCfg, err := loadEventsConfig()
	if err != nil {
		return nil, fmt.Errorf("loading events config: %w", err)
	}

	stockCfg, err := loadStockConfig()
	if err != nil {
		return nil, fmt.Errorf("loading stock config: %w", err)
	}

	telCfg, err := loadTelemetryConfig()
	if err != nil {
		return nil, fmt.Errorf("loading telemetry config: %w", err)
	}

	serviceCfg := loadServiceConfig()

	return &Config{
		HTTP:      httpCfg,
		Storage:   storageCfg,
		Events:    eventsCfg,
		Stock:     stockCfg,
		Telemetry: telCfg,
		Service:   serviceCfg,
	}, nil
}

func loadHTTPConfig() (HTTPConfig, error) {
	port := defaultHTTPPort
	if value, ok := os.LookupEnv("API_HTTP_PORT"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return HTTPConfig{}, fmt.Errorf("invalid API_HTTP_PORT: %w", err)
		}
		port = parsed
	}

	shutdownGrace := defaultShutdownGrace
	if value, ok := os.LookupEnv("API_SHUTDOWN_GRACE_SECONDS"); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return HTTPConfig{}, fmt.Errorf("invalid API_SHUTDOWN_GRACE_SECONDS: %w", err)
		}
		shutdownGrace = parsed
	}

	metricsPath := getEnvOrDefault("API_METRICS_PATH", defaultMetricsPath)

	return HTTPConfig{
		Port:          port,
		MetricsPath:   metricsPath,
		ShutdownGrace: shutdownGrace,
	}, nil
}

func loadStorageConfig() (StorageConfig, error) {
	backend := getEnvOrDefault("STORAGE_BACKEND", StorageBackendMemory)
	if backend != StorageBackendMemory && backend != StorageBackendPostgres {
		return StorageConfig{}, fmt.Errorf("invalid STORAGE_BACKEND %q", backend)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" && backend == StorageBackendPostgres {
		databaseURL = buildDatabaseURL()
	}

	autoMigrate := getBoolEnv("AUTO_MIGRATE", defaultAutoMigrate)
	migrationsPath := getEnvOrDefault("MIGRATIONS_PATH", defaultMigrationsPath)

	return StorageConfig{
		Backend: backend,
		Database: DatabaseConfig{
			URL:            databaseURL,
			AutoMigrate:    autoMigrate,
			MigrationsPath: migrationsPath,
		},
	}, nil
}

func loadEventsConfig() (EventsConfig, error) {
	backend := getEnvOrDefault("EVENTS_BACKEND", EventsBackendLog)
	if backend != EventsBackendLog && backend != EventsBackendKafka {
		return EventsConfig{}, fmt.Errorf("invalid EVENTS_BACKEND %q", backend)
	}

	var brokers []string
	if value, ok := os.LookupEnv("KAFKA_BROKERS"); ok && value != "" {
		brokers = strings.Split(value, ",")
	}
	if backend == EventsBackendKafka && len(brokers) == 0 {
		return EventsConfig{}, fmt.Errorf("EVENTS_BACKEND is kafka but KAFKA_BROKERS is empty")
	}

	topic := getEnvOrDefault("KAFKA_TOPIC", defaultEventsTopic)

	return EventsConfig{
		Backend: backend,
		Brokers: brokers,
		Topic:   topic,
	}, nil
}

// loadStockConfig parses STOCK_LEVELS in the form "SKU-1=10,SKU-2=0".
func loadStockConfig() (StockConfig, error) {
	levels := make(map[string]int)

	value := os.Getenv("STOCK_LEVELS")
	if value == "" {
		return StockConfig{Levels: levels}, nil
	}

	for _, pair := range strings.Split(value, ",") {
		sku, qty, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || sku == "" {
			return StockConfig{}, fmt.Errorf("invalid STOCK_LEVELS entry %q", pair)
		}
		parsed, err := strconv.Atoi(qty)
		if err != nil || parsed < 0 {
			return StockConfig{}, fmt.Errorf("invalid STOCK_LEVELS quantity %q", pair)
		}
		levels[sku] = parsed
	}

	return StockConfig{Levels: levels}, nil
}

func loadTelemetryConfig() (TelemetryConfig, error) {
	logLevel := getEnvOrDefault("LOG_LEVEL", defaultLogLevel)
	otelEndpoint := getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	enableTracing := getBoolEnv("OTEL_ENABLE_TRACING", true)
	enableMetrics := getBoolEnv("OTEL_ENABLE_METRICS", true)

	sampleRate := defaultOTelSampleRate
	if value, ok := os.LookupEnv("OTEL_SAMPLE_RATE"); ok {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return TelemetryConfig{}, fmt.Errorf("invalid OTEL_SAMPLE_RATE: %w", err)
		}
		sampleRate = parsed
	}

	return TelemetryConfig{
		LogLevel:      logLevel,
		OTelEndpoint:  otelEndpoint,
		EnableTracing: enableTracing,
		EnableMetrics: enableMetrics,
		SampleRate:    sampleRate,
	}, nil
}

func loadServiceConfig() ServiceConfig {
	return ServiceConfig{
		Name:        getEnvOrDefault("API_SERVICE_NAME", defaultServiceName),
		Version:     getEnvOrDefault("SERVICE_VERSION", defaultServiceVersion),
		Environment: getEnvOrDefault("ENVIRONMENT", defaultEnvironment),
	}
}

func buildDatabaseURL() string {
	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "postgres")
	password := getEnvOrDefault("DB_PASSWORD", "postgres")
	dbName := getEnvOrDefault("DB_NAME", "hexorders")
	sslMode := getEnvOrDefault("DB_SSLMODE", "disable")

	maxConns := getEnvOrDefault("DB_MAX_CONNS", "25")
	minConns := getEnvOrDefault("DB_MIN_CONNS", "5")
	maxLifetime := getEnvOrDefault("DB_MAX_CONN_LIFETIME", "5m")

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&pool_max_conns=%s&pool_min_conns=%s&pool_max_conn_lifetime=%s",
		user, password, host, port, dbName, sslMode, maxConns, minConns, maxLifetime,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		return value == "true"
	}
	return defaultValue
}
