package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/cart-backend/internal/clients/redis"
	"github.com/yungbote/cart-backend/internal/data/db"
	"github.com/yungbote/cart-backend/internal/http/middleware"
	"github.com/yungbote/cart-backend/internal/observability"
	"github.com/yungbote/cart-backend/internal/platform/envutil"
	"github.com/yungbote/cart-backend/internal/platform/logger"
	"github.com/yungbote/cart-backend/internal/services"
)

type Config struct {
	Port            string
	ShutdownTimeout time.Duration

	DB    db.Config
	Redis redis.Config

	IdempotencyTTL  time.Duration
	DefaultCurrency string
	AllowedOrigins  []string

	MetricsAddr string
	Otel        observability.OtelConfig
}

func LoadConfig(log *logger.Logger) Config {
	otelEndpoint := envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log)
	return Config{
		Port:            envutil.String("PORT", "8080", log),
		ShutdownTimeout: envutil.Duration("SHUTDOWN_TIMEOUT", 15*time.Second, log),

		DB: db.Config{
			Driver:       strings.ToLower(envutil.String("DB_DRIVER", db.DriverPostgres, log)),
			Host:         envutil.String("POSTGRES_HOST", "localhost", log),
			Port:         envutil.String("POSTGRES_PORT", "5432", log),
			User:         envutil.String("POSTGRES_USER", "postgres", log),
			Password:     envutil.String("POSTGRES_PASSWORD", "", log),
			Name:         envutil.String("POSTGRES_NAME", "cart", log),
			SSLMode:      envutil.String("POSTGRES_SSLMODE", "disable", log),
			SQLitePath:   envutil.String("SQLITE_PATH", "cart.db", log),
			MaxOpenConns: envutil.Int("DB_MAX_OPEN_CONNS", 25, log),
			MaxIdleConns: envutil.Int("DB_MAX_IDLE_CONNS", 10, log),
		},
		Redis: redis.Config{
			Addr:     envutil.String("REDIS_ADDR", "", log),
			Password: envutil.String("REDIS_PASSWORD", "", log),
			DB:       envutil.Int("REDIS_DB", 0, log),
		},

		IdempotencyTTL:  envutil.Duration("IDEMPOTENCY_TTL", services.DefaultIdempotencyTTL, log),
		DefaultCurrency: strings.ToUpper(envutil.String("CART_DEFAULT_CURRENCY", "USD", log)),
		AllowedOrigins:  envutil.CSV("CORS_ALLOWED_ORIGINS", middleware.DefaultAllowedOrigins, log),

		MetricsAddr: envutil.String("METRICS_ADDR", ":9090", log),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false, log),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", observability.DefaultServiceName, log),
			Environment: envutil.String("APP_ENV", "development", log),
			Version:     envutil.String("APP_VERSION", "", log),
			Endpoint:    otelEndpoint,
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log)),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", true, log),
			SampleRatio: sampleRatio(envutil.String("OTEL_TRACES_SAMPLER_ARG", "1", log)),
		},
	}
}

// RedisEnabled reports whether a Redis address was configured.
func (c Config) RedisEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}

func sampleRatio(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 1
	}
	return f
}
