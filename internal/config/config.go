package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your_jwt_secret"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"PORT" envDefault:"5000"`

	// Database
	DBDriver   string `env:"DB_DRIVER" envDefault:"mysql"`
	MySQLDSN   string `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/admin_dashboard?charset=utf8mb4&parseTime=True&loc=Local"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/dashboard.db"`
	DBLog      bool   `env:"DB_LOG" envDefault:"false"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Auth
	JWTSecret             string `env:"JWT_SECRET" envDefault:"your_jwt_secret"`
	AllowInsecureDefaults bool   `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false"`

	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	SwaggerHost        string        `env:"SWAGGER_HOST"`
	AnalyticsCacheTTL  time.Duration `env:"ANALYTICS_CACHE_TTL" envDefault:"30s"`

	// Seed admin used by cmd/seed
	SeedAdminName     string `env:"SEED_ADMIN_NAME" envDefault:"Admin User"`
	SeedAdminEmail    string `env:"SEED_ADMIN_EMAIL" envDefault:"admin@gmail.com"`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD" envDefault:"admin123"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks for insecure configuration that must not run in production.
// Set ALLOW_INSECURE_DEFAULTS=true to bypass (local dev only).
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER %q is not supported; use mysql or sqlite", c.DBDriver)
	}
	if c.AllowInsecureDefaults {
		return nil
	}
	if c.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET is set to the insecure default; set a strong secret or set ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET is too short (%d chars); minimum 32 characters required", len(c.JWTSecret))
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.ServerPort
}
