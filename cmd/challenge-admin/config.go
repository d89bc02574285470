package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Hyperion HyperionConfig `mapstructure:"hyperion"`
	Sync     SyncConfig     `mapstructure:"sync"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AuthConfig holds admin session configuration.
type AuthConfig struct {
	// JWTSecret signs admin session tokens. Required in production;
	// set via CHALLENGE_AUTH_JWT_SECRET.
	JWTSecret string `mapstructure:"jwt_secret"`

	// TokenTTL is how long a session token stays valid.
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// HyperionConfig holds the upstream registration API configuration.
type HyperionConfig struct {
	// Enabled switches the real client. When false the service runs on
	// its local catalog only, with a no-op upstream.
	Enabled bool `mapstructure:"enabled"`

	// BaseURL is the Hyperion API root, e.g. https://hyperion.example.org.
	BaseURL string `mapstructure:"base_url"`

	// Token is the bearer token for Hyperion calls.
	Token string `mapstructure:"token"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `mapstructure:"timeout"`

	// RequestsPerSecond throttles calls to the upstream.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// SyncConfig holds background sync configuration.
type SyncConfig struct {
	// Enabled switches the periodic sync worker.
	Enabled bool `mapstructure:"enabled"`

	// Interval is the time between sync cycles.
	Interval time.Duration `mapstructure:"interval"`

	// SchoolTimeout is the timeout for syncing a single school.
	SchoolTimeout time.Duration `mapstructure:"school_timeout"`
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("database.dsn", "./data/challenge.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("hyperion.enabled", false)
	v.SetDefault("hyperion.base_url", "http://localhost:8000")
	v.SetDefault("hyperion.token", "")
	v.SetDefault("hyperion.timeout", "30s")
	v.SetDefault("hyperion.requests_per_second", 10)
	v.SetDefault("sync.enabled", false)
	v.SetDefault("sync.interval", "5m")
	v.SetDefault("sync.school_timeout", "30s")

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// Only return error if file was explicitly specified and is invalid
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
			// File not found is OK, we'll use defaults
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("CHALLENGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
func SetupLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
