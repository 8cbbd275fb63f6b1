package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"modelserver/backend"
	"modelserver/config"
	"modelserver/handler"
	"modelserver/logging"
	"modelserver/server"
	"modelserver/telemetry"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cliArgs *config.CliConfig

	runE := func(cmd *cobra.Command, _ []string) error {
		if cliArgs.Version {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		}
		return run(cmd.Context(), cliArgs, cmd)
	}

	root := &cobra.Command{
		Use:          "modelserver",
		Short:        "Serve the /ping and /invocations container endpoints",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runE,
	}
	cliArgs = config.RegisterFlags(root.PersistentFlags())

	// The hosting platform starts containers as "<image> serve".
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Alias of the root command",
		Args:  cobra.NoArgs,
		RunE:  runE,
	})
	return root
}

func run(parent context.Context, cliArgs *config.CliConfig, cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(cliArgs.ConfigFile, cmd.Flags())
	if err != nil {
		return err
	}
	if cliArgs.Debug {
		cfg.LogLevel = logrus.DebugLevel.String()
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logging.New(level)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry, version, log)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(ctx); err != nil {
			log.Errorf("Error shutting down telemetry: %v", err)
		}
	}()

	meter := otel.Meter(telemetry.ScopeName)
	instruments, err := telemetry.NewInstruments(meter)
	if err != nil {
		return fmt.Errorf("failed to create metric instruments: %w", err)
	}
	if err := telemetry.RegisterRuntimeMetrics(meter); err != nil {
		log.Warnf("Failed to register runtime metrics: %v", err)
	}

	b, err := backend.New(cfg.Backend)
	if err != nil {
		return err
	}
	log.Infof("Using %s inference backend", cfg.Backend.Type)

	httpHandler := handler.NewHTTPHandler(b, log, instruments)
	srv := server.New(cfg.ListenAddress, httpHandler, cfg.ShutdownTimeout, log)
	if err := srv.Run(ctx); err != nil {
		log.Errorf("Server failed: %v", err)
		return err
	}
	return nil
}
