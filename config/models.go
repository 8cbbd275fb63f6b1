package config

import "time"

// StaticBackendConfig is the fixed answer returned by the static backend.
type StaticBackendConfig struct {
	Body        string `mapstructure:"body"`
	ContentType string `mapstructure:"content_type"`
}

// BackendConfig selects and configures the inference backend.
type BackendConfig struct {
	Type    string              `mapstructure:"type"`
	URL     string              `mapstructure:"url"`
	Timeout time.Duration       `mapstructure:"timeout"`
	Static  StaticBackendConfig `mapstructure:"static"`
}

// TelemetryConfig controls OpenTelemetry tracing and metrics.
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

// Config holds the application configuration.
type Config struct {
	ListenAddress   string          `mapstructure:"listen_address"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	LogLevel        string          `mapstructure:"log_level"`
	Backend         BackendConfig   `mapstructure:"backend"`
	Telemetry       TelemetryConfig `mapstructure:"telemetry"`
}

const (
	BackendStatic = "static"
	BackendRemote = "remote"
)
