package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// ErrConfiguration is returned when the environment does not describe a
// runnable configuration. Processes must not serve traffic after it.
var ErrConfiguration = errors.New("configuration error")

// APIConfig configures the API server.
type APIConfig struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	CORS     CORSConfig
	Log      LogConfig
}

// WebConfig configures the presentation server.
type WebConfig struct {
	APIURL string `envconfig:"NEXT_PUBLIC_API_URL" required:"true"`
	Server WebServerConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"PORT" default:"5000"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

type WebServerConfig struct {
	Port            int           `envconfig:"WEB_PORT" default:"3000"`
	ReadTimeout     time.Duration `envconfig:"WEB_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WEB_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"WEB_SHUTDOWN_TIMEOUT" default:"10s"`
	APITimeout      time.Duration `envconfig:"WEB_API_TIMEOUT" default:"5s"`
}

type DatabaseConfig struct {
	// URL takes precedence over the individual settings below.
	URL      string `envconfig:"DATABASE_URL"`
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"postgres"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	DBName   string `envconfig:"POSTGRES_DB" default:"monostack"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CacheConfig struct {
	// UsersTTL enables the Redis users listing cache when positive.
	UsersTTL time.Duration `envconfig:"USERS_CACHE_TTL" default:"0s"`
}

func (c CacheConfig) Enabled() bool {
	return c.UsersTTL > 0
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// SlogLevel parses Level, accepting the names slog understands.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: invalid LOG_LEVEL %q", ErrConfiguration, c.Level)
	}
	return level, nil
}

// LoadAPI reads the API configuration from the environment.
func LoadAPI() (*APIConfig, error) {
	var cfg APIConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if _, err := cfg.Log.SlogLevel(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadWeb reads the presentation configuration from the environment.
// A missing NEXT_PUBLIC_API_URL is an ErrConfiguration.
func LoadWeb() (*WebConfig, error) {
	var cfg WebConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	// envconfig accepts a set-but-empty variable as present.
	if strings.TrimSpace(cfg.APIURL) == "" {
		return nil, fmt.Errorf("%w: NEXT_PUBLIC_API_URL must not be empty", ErrConfiguration)
	}
	if _, err := cfg.Log.SlogLevel(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
