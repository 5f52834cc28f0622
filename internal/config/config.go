package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/pricebook/internal/observability"
	"github.com/davidbz/pricebook/internal/pricedata"
)

// Ledger backends.
const (
	LedgerBackendNone   = "none"
	LedgerBackendMemory = "memory"
	LedgerBackendRedis  = "redis"
)

// Config represents the service configuration.
type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Log     observability.Config
	Pricing pricedata.Config
	Ledger  LedgerConfig
	Redis   RedisConfig
	Metrics MetricsConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int `env:"SERVER_PORT"             envDefault:"8080"`
	ReadTimeout     int `env:"SERVER_READ_TIMEOUT"     envDefault:"30"`
	WriteTimeout    int `env:"SERVER_WRITE_TIMEOUT"    envDefault:"30"`
	ShutdownTimeout int `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// LedgerConfig selects where charged spend is accumulated.
type LedgerConfig struct {
	Backend   string `env:"LEDGER_BACKEND"    envDefault:"none"`
	KeyPrefix string `env:"LEDGER_KEY_PREFIX" envDefault:"pricebook:spend"`
}

// RedisConfig contains Redis connection settings for the redis ledger.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"       envDefault:"0"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `env:"METRICS_ENABLED"   envDefault:"true"`
	Namespace string `env:"METRICS_NAMESPACE" envDefault:"pricebook"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out

	Server  *ServerConfig
	CORS    *CORSConfig
	Log     *observability.Config
	Pricing *pricedata.Config
	Ledger  *LedgerConfig
	Redis   *RedisConfig
	Metrics *MetricsConfig
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		Out:     dig.Out{},
		Server:  &cfg.Server,
		CORS:    &cfg.CORS,
		Log:     &cfg.Log,
		Pricing: &cfg.Pricing,
		Ledger:  &cfg.Ledger,
		Redis:   &cfg.Redis,
		Metrics: &cfg.Metrics,
	}
}
