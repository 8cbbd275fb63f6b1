package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "MODELSERVER"

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_address", "0.0.0.0:8080")
	v.SetDefault("shutdown_timeout", 5*time.Second)
	v.SetDefault("log_level", "info")

	v.SetDefault("backend.type", BackendStatic)
	v.SetDefault("backend.url", "")
	v.SetDefault("backend.timeout", 60*time.Second)
	v.SetDefault("backend.static.body", "a,b,c")
	v.SetDefault("backend.static.content_type", "text/csv")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.service_name", "modelserver")
}

// LoadConfig builds the configuration from defaults, the optional config file,
// MODELSERVER_* environment variables and any flags set on fs, in increasing
// order of precedence. fs may be nil.
func LoadConfig(configFile string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var configuration Config
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}
	return &configuration, nil
}

// Validate checks the loaded values for consistency.
func (c *Config) Validate() error {
	if c.ListenAddress == "" {
		return errors.New("listen_address is required")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown_timeout must be positive")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}

	switch c.Backend.Type {
	case BackendStatic:
	case BackendRemote:
		if c.Backend.URL == "" {
			return errors.New("backend.url is required for the remote backend")
		}
		if c.Backend.Timeout <= 0 {
			return errors.New("backend.timeout must be positive")
		}
	default:
		return fmt.Errorf("unknown backend type %q", c.Backend.Type)
	}
	return nil
}
