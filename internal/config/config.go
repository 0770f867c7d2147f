package config

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Store drivers.
const (
	DriverMemory  = "memory"
	DriverRedis   = "redis"
	DriverSpanner = "spanner"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Log       LogConfig       `yaml:"log"`
	Seed      SeedConfig      `yaml:"seed"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Tracing   TracingConfig   `yaml:"tracing"`
}

// ServerConfig holds HTTP and gRPC listener settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	GRPCPort        int           `yaml:"grpc_port"        env:"SERVER_GRPC_PORT"        env-default:"50051"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GRPCAddr returns the gRPC health listen address.
func (s ServerConfig) GRPCAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.GRPCPort)
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Driver          string        `yaml:"driver"           env:"STORE_DRIVER"           env-default:"memory"`
	SpannerDatabase string        `yaml:"spanner_database" env:"SPANNER_DATABASE"`
	RedisAddr       string        `yaml:"redis_addr"       env:"REDIS_ADDR"`
	RedisPassword   string        `yaml:"redis_password"   env:"REDIS_PASSWORD"`
	RedisDB         int           `yaml:"redis_db"         env:"REDIS_DB"               env-default:"0"`
	RedisPrefix     string        `yaml:"redis_prefix"     env:"REDIS_PREFIX"           env-default:"catalog"`
	HealthInterval  time.Duration `yaml:"health_interval"  env:"STORE_HEALTH_INTERVAL"  env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SeedConfig toggles sample data import at startup.
type SeedConfig struct {
	Enabled bool `yaml:"enabled" env:"SEED_ENABLED" env-default:"true"`
}

// RateLimitConfig configures the per-client limiter. RPS 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"   env:"RATE_LIMIT_RPS"   env-default:"0"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"20"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
}

// TracingConfig configures OTLP trace export. Nothing is exported unless
// Enabled is set.
type TracingConfig struct {
	Enabled      bool   `yaml:"enabled"       env:"TRACING_ENABLED"             env-default:"false"`
	ServiceName  string `yaml:"service_name"  env:"TRACING_SERVICE_NAME"        env-default:"catalog-service"`
	Environment  string `yaml:"environment"   env:"TRACING_ENVIRONMENT"         env-default:"local"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4317"`
}

var (
	ErrUnknownDriver = errors.New("unknown store driver")
	ErrMissingValue  = errors.New("missing required value")
	ErrInvalidValue  = errors.New("invalid value")
)

var validLogLevels = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}

// Validate checks cross-field constraints cleanenv cannot express.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d: %w", c.Server.Port, ErrInvalidValue))
	}
	if c.Server.GRPCPort <= 0 || c.Server.GRPCPort > 65535 {
		errs = append(errs, fmt.Errorf("server.grpc_port %d: %w", c.Server.GRPCPort, ErrInvalidValue))
	}
	if c.Server.GRPCPort == c.Server.Port {
		errs = append(errs, fmt.Errorf("server.grpc_port must differ from server.port: %w", ErrInvalidValue))
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverRedis:
		if c.Store.RedisAddr == "" {
			errs = append(errs, fmt.Errorf("store.redis_addr: %w", ErrMissingValue))
		}
	case DriverSpanner:
		if c.Store.SpannerDatabase == "" {
			errs = append(errs, fmt.Errorf("store.spanner_database: %w", ErrMissingValue))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver %q: %w", c.Store.Driver, ErrUnknownDriver))
	}

	if !slices.Contains(validLogLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q: %w", c.Log.Level, ErrInvalidValue))
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		errs = append(errs, fmt.Errorf("log.format %q: %w", c.Log.Format, ErrInvalidValue))
	}

	if c.RateLimit.RPS < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.rps: %w", ErrInvalidValue))
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		errs = append(errs, fmt.Errorf("rate_limit.burst must be positive: %w", ErrInvalidValue))
	}

	if c.Tracing.Enabled && c.Tracing.OTLPEndpoint == "" {
		errs = append(errs, fmt.Errorf("tracing.otlp_endpoint: %w", ErrMissingValue))
	}

	return errors.Join(errs...)
}
