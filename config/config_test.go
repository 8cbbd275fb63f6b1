package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.ListenAddress)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, BackendStatic, cfg.Backend.Type)
	assert.Equal(t, "a,b,c", cfg.Backend.Static.Body)
	assert.Equal(t, "text/csv", cfg.Backend.Static.ContentType)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "modelserver", cfg.Telemetry.ServiceName)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
listen_address: 127.0.0.1:9090
shutdown_timeout: 2s
backend:
  type: remote
  url: http://model:8000/score
  timeout: 10s
telemetry:
  enabled: true
`)
	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.ListenAddress)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, BackendRemote, cfg.Backend.Type)
	assert.Equal(t, "http://model:8000/score", cfg.Backend.URL)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "a,b,c", cfg.Backend.Static.Body)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "listen_address: 127.0.0.1:9090\n")
	t.Setenv("MODELSERVER_LISTEN_ADDRESS", "127.0.0.1:7070")
	t.Setenv("MODELSERVER_BACKEND_STATIC_BODY", "x,y,z")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7070", cfg.ListenAddress)
	assert.Equal(t, "x,y,z", cfg.Backend.Static.Body)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("MODELSERVER_LOG_LEVEL", "warn")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	args := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--log-level", "debug", "--config", "", "-d"}))
	assert.True(t, args.Debug)

	cfg, err := LoadConfig(args.ConfigFile, fs)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0:8080", cfg.ListenAddress)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty listen address", func(c *Config) { c.ListenAddress = "" }},
		{"zero shutdown timeout", func(c *Config) { c.ShutdownTimeout = 0 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"unknown backend", func(c *Config) { c.Backend.Type = "keras" }},
		{"remote without url", func(c *Config) { c.Backend.Type = BackendRemote }},
		{"remote without timeout", func(c *Config) {
			c.Backend.Type = BackendRemote
			c.Backend.URL = "http://model"
			c.Backend.Timeout = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig("", nil)
			require.NoError(t, err)
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
