package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/astrograph-backend/internal/observability"
	"github.com/yungbote/astrograph-backend/internal/platform/envutil"
	"github.com/yungbote/astrograph-backend/internal/platform/neo4jdb"
)

const serviceName = "astrograph"

type Config struct {
	Port            string
	Environment     string
	Version         string
	LogMode         string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	MetricsEnabled  bool
	SchemaInit      bool
	Neo4j           neo4jdb.Config
	Otel            observability.OtelConfig
}

// LoadEnvFile loads .env when present. A missing file is not an error.
func LoadEnvFile(paths ...string) (bool, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	if err := godotenv.Load(paths...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load env file: %w", err)
	}
	return true, nil
}

func LoadConfig() Config {
	env := envutil.String("APP_ENV", "development")
	version := envutil.String("APP_VERSION", "dev")
	return Config{
		Port:            envutil.String("PORT", "8000"),
		Environment:     env,
		Version:         version,
		LogMode:         envutil.String("LOG_MODE", "development"),
		MaxBodyBytes:    envutil.Int64("MAX_BODY_BYTES", 1<<20),
		ShutdownTimeout: time.Duration(envutil.Int("SHUTDOWN_TIMEOUT_SECONDS", 15)) * time.Second,
		CORSOrigins:     envutil.List("CORS_ALLOWED_ORIGINS"),
		MetricsEnabled:  envutil.Bool("METRICS_ENABLED", true),
		SchemaInit:      envutil.Bool("NEO4J_SCHEMA_INIT", true),
		Neo4j: neo4jdb.Config{
			URI:         envutil.String("NEO4J_URI", ""),
			User:        envutil.String("NEO4J_USER", "neo4j"),
			Password:    envutil.String("NEO4J_PASSWORD", ""),
			Database:    envutil.String("NEO4J_DATABASE", ""),
			Timeout:     time.Duration(envutil.Int("NEO4J_TIMEOUT_SECONDS", 10)) * time.Second,
			MaxPoolSize: envutil.Int("NEO4J_MAX_POOL_SIZE", 50),
		},
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", serviceName),
			Environment: env,
			Version:     version,
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 0.1),
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be positive")
	}
	if err := c.Neo4j.Validate(); err != nil {
		return err
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production") || strings.EqualFold(c.Environment, "prod")
}
