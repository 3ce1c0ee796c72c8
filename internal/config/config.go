package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port            int           `envconfig:"PORT" default:"8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	Env             string        `envconfig:"ENV" default:"development"`
	DatabaseURL     string        `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret       string        `envconfig:"JWT_SECRET" required:"true"`
	JWTExpiry       time.Duration `envconfig:"JWT_EXPIRY" default:"168h"`
	BcryptCost      int           `envconfig:"BCRYPT_COST" default:"12"`
	CORSOrigin      string        `envconfig:"CORS_ORIGIN" default:"http://localhost:3000"`
	RateLimit       int           `envconfig:"RATE_LIMIT" default:"100"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"15m"`
}

// Load reads configuration from the environment into a Config struct.
// A local .env file is merged in first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether the server runs with production settings
// (secure cookies, strict same-site policy).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
