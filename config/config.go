package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/techagentng/clubcore/logger"
	"go.uber.org/zap"
)

type Config struct {
	Debug            bool          `envconfig:"debug"`
	Port             int           `envconfig:"port" default:"8080"`
	Env              string        `envconfig:"env" default:"dev"`
	PostgresHost     string        `envconfig:"postgres_host" default:"localhost"`
	PostgresUser     string        `envconfig:"postgres_user"`
	PostgresDB       string        `envconfig:"postgres_db"`
	PostgresPort     int           `envconfig:"postgres_port" default:"5432"`
	PostgresPassword string        `envconfig:"postgres_password"`
	PostgresSSLMode  string        `envconfig:"postgres_sslmode" default:"disable"`
	JWTSecret        string        `envconfig:"jwt_secret"`
	TokenTTL         time.Duration `envconfig:"token_ttl" default:"24h"`
	RedisURL         string        `envconfig:"redis_url"`
	DisplayNameTTL   time.Duration `envconfig:"display_name_ttl" default:"10m"`
	AllowedOrigins   string        `envconfig:"allowed_origins"`
	MessageRateLimit uint          `envconfig:"message_rate_limit" default:"20"`
	MessageRateEvery time.Duration `envconfig:"message_rate_window" default:"1m"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			logger.Warn("couldn't load env vars", zap.Error(err))
		}
	}

	c := &Config{}
	err := envconfig.Process("clubcore", c)
	if err != nil {
		return nil, err
	}
	if c.JWTSecret == "" {
		return nil, fmt.Errorf("CLUBCORE_JWT_SECRET must be set")
	}
	return c, nil
}

// PostgresDSN builds the connection string for gorm's postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort, c.PostgresSSLMode)
}

// Origins splits AllowedOrigins on commas. An empty list means any origin.
func (c *Config) Origins() []string {
	if strings.TrimSpace(c.AllowedOrigins) == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
