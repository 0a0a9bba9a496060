package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	unsetenv(t, "ENV", "PORT", "MAX_BODY_BYTES", "SHUTDOWN_TIMEOUT", "PHONE_REGION", "LOG_FILE", "LOG_LEVEL", "SUBMISSIONS_LOG_FILE", "METRICS_ENABLED")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int64(65536), cfg.MaxBodyBytes)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "FR", cfg.PhoneRegion)
	assert.Equal(t, "logs/api.log", cfg.LogFile)
	assert.Equal(t, "logs/submissions.log", cfg.SubmissionsLogFile)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "3001")
	t.Setenv("ALLOWED_ORIGINS", "https://lessensdelharmonie.fr/, https://www.lessensdelharmonie.fr")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("PHONE_REGION", "be")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, []string{"https://lessensdelharmonie.fr", "https://www.lessensdelharmonie.fr"}, cfg.AllowedOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "BE", cfg.PhoneRegion)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/app/logs/api.log", cfg.LogFile)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:            "8080",
			MaxBodyBytes:    1024,
			ShutdownTimeout: time.Second,
			LogLevel:        "info",
			LogFile:         "api.log",
			LogMaxSize:      1,
			PhoneRegion:     "FR",
		}
	}
	require.NoError(t, base().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty port", func(c *Config) { c.Port = "" }},
		{"zero body limit", func(c *Config) { c.MaxBodyBytes = 0 }},
		{"zero shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }},
		{"origin without scheme", func(c *Config) { c.AllowedOrigins = []string{"lessensdelharmonie.fr"} }},
		{"bad phone region", func(c *Config) { c.PhoneRegion = "FRA" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// unsetenv clears keys for the duration of the test
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
