package config

import "github.com/spf13/pflag"

// CliConfig holds the command-line switches that are not configuration keys.
type CliConfig struct {
	ConfigFile string
	Debug      bool
	Version    bool
}

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"listen-address": "listen_address",
	"log-level":      "log_level",
	"backend":        "backend.type",
	"backend-url":    "backend.url",
}

// RegisterFlags adds the server flags to fs and returns the parsed switches.
func RegisterFlags(fs *pflag.FlagSet) *CliConfig {
	args := &CliConfig{}
	fs.StringVar(&args.ConfigFile, "config", "", "Path to the config file")
	fs.BoolVarP(&args.Debug, "debug", "d", false, "Enable debug mode")
	fs.BoolVarP(&args.Version, "version", "v", false, "Print version and exit")

	fs.String("listen-address", "", "Address to listen on (default 0.0.0.0:8080)")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	fs.String("backend", "", "Inference backend: static or remote")
	fs.String("backend-url", "", "Model server URL for the remote backend")
	return args
}
