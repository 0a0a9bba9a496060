package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/lessensdelharmonie/harmonie/internal/logging"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment     string        `env:"ENV" envDefault:"development"`
	Port            string        `env:"PORT" envDefault:"8080"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" envDefault:"65536"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging Configuration
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE"`
	LogMaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAge     int    `env:"LOG_MAX_AGE" envDefault:"7"`
	LogRequests   bool   `env:"LOG_REQUESTS" envDefault:"true"`

	// Contact Configuration
	SubmissionsLogFile string `env:"SUBMISSIONS_LOG_FILE"`
	PhoneRegion        string `env:"PHONE_REGION" envDefault:"FR"`

	// Telemetry Configuration
	OTLPEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure   bool   `env:"OTEL_EXPORTER_OTLP_INSECURE"`
	SentryDSN      string `env:"SENTRY_DSN"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{".env"}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv.Load never overrides variables that are already set, so the
		// first file found wins for every key it defines.
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.PhoneRegion = strings.ToUpper(c.PhoneRegion)

	origins := c.AllowedOrigins[:0]
	for _, origin := range c.AllowedOrigins {
		if origin = strings.TrimRight(strings.TrimSpace(origin), "/"); origin != "" {
			origins = append(origins, origin)
		}
	}
	c.AllowedOrigins = origins

	logDir := "./logs"
	if c.IsProduction() {
		logDir = "/app/logs"
	}

	if c.LogFile == "" {
		c.LogFile = filepath.Join(logDir, "api.log")
	}
	if c.SubmissionsLogFile == "" {
		c.SubmissionsLogFile = filepath.Join(logDir, "submissions.log")
	}
}

// Validate checks the parsed configuration for values the server cannot run with
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	for _, origin := range c.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("ALLOWED_ORIGINS entry %q must start with http:// or https://", origin)
		}
	}
	if len(c.PhoneRegion) != 2 {
		return fmt.Errorf("PHONE_REGION must be a two-letter region code, got %q", c.PhoneRegion)
	}
	if err := c.Logging().Validate(); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Logging returns the application logger configuration
func (c *Config) Logging() *logging.Config {
	return &logging.Config{
		Level:      c.LogLevel,
		File:       c.LogFile,
		MaxSize:    c.LogMaxSize,
		MaxBackups: c.LogMaxBackups,
		MaxAge:     c.LogMaxAge,
		Requests:   c.LogRequests,
		Stdout:     true,
	}
}
