// Package cmd wires the probe and transcode monitor commands.
package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/smazurov/streamwatch/internal/api"
	"github.com/smazurov/streamwatch/internal/config"
	"github.com/smazurov/streamwatch/internal/events"
	"github.com/smazurov/streamwatch/internal/logging"
	"github.com/smazurov/streamwatch/internal/metrics"
	"github.com/smazurov/streamwatch/internal/metrics/exporters"
	"github.com/smazurov/streamwatch/internal/monitor"
	"github.com/smazurov/streamwatch/internal/protocol"
	"github.com/smazurov/streamwatch/internal/version"
	"github.com/spf13/cobra"
)

// Execute builds the root command and runs it.
func Execute() {
	root := &cobra.Command{
		Use:     "streamwatch",
		Short:   "Stream health monitor exporting Prometheus metrics",
		Long:    "Supervises an ffprobe or ffmpeg subprocess over a media stream and translates its output into Prometheus metrics.",
		Version: version.String(),
	}

	root.AddCommand(CreateProbeCmd())
	root.AddCommand(CreateTranscodeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// monitorOptions holds the flags shared by the probe and transcode commands.
// TOML and env tags feed config.LoadConfig's precedence handling.
type monitorOptions struct {
	Config string

	Input       string `toml:"monitor.input" env:"INPUT"`
	MetricsAddr string `toml:"server.metrics_addr" env:"METRICS_ADDR"`

	LoggingLevel   string `toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat  string `toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingMonitor string `toml:"logging.monitor" env:"LOGGING_MONITOR"`
	LoggingExtract string `toml:"logging.extract" env:"LOGGING_EXTRACT"`
	LoggingAPI     string `toml:"logging.api" env:"LOGGING_API"`
}

// addMonitorFlags registers the shared flag set.
func addMonitorFlags(cmd *cobra.Command, opts *monitorOptions) {
	cmd.Flags().StringVar(&opts.Config, "config", "", "Path to TOML configuration file")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Stream URL or file path to monitor")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", ":9090", "Listen address for the metrics and status endpoints")
	cmd.Flags().StringVar(&opts.LoggingLevel, "logging-level", "info", "Global logging level (debug, info, warn, error)")
	cmd.Flags().StringVar(&opts.LoggingFormat, "logging-format", "text", "Logging format (text, json)")
	cmd.Flags().StringVar(&opts.LoggingMonitor, "logging-monitor", "info", "Monitor logging level")
	cmd.Flags().StringVar(&opts.LoggingExtract, "logging-extract", "info", "Extractor logging level")
	cmd.Flags().StringVar(&opts.LoggingAPI, "logging-api", "info", "API logging level")
}

// initLogging builds the logging config from the file's [logging] table and
// layers the flag values on top. Modules without a dedicated flag (http, for
// one) are only reachable through the file.
func initLogging(opts *monitorOptions) {
	cfg := config.LoadLoggingConfig(opts.Config)
	cfg.Level = opts.LoggingLevel
	cfg.Format = opts.LoggingFormat
	cfg.Modules["monitor"] = opts.LoggingMonitor
	cfg.Modules["extract"] = opts.LoggingExtract
	cfg.Modules["api"] = opts.LoggingAPI
	logging.Initialize(cfg)
}

// classifyInput resolves the input target or exits.
func classifyInput(opts *monitorOptions) protocol.Target {
	logger := logging.GetLogger("monitor")
	if opts.Input == "" {
		logger.Error("No input specified, use --input")
		os.Exit(1)
	}
	target, err := protocol.Classify(opts.Input)
	if err != nil {
		logger.Error("Failed to classify input", "input", opts.Input, "error", err)
		os.Exit(1)
	}
	logger.Info("Classified input", "input", opts.Input, "stream_type", target.Kind.String())
	return target
}

// resolveBinary returns the executable to spawn. An explicit override must
// point at an existing file; the bare name falls back to PATH lookup at
// spawn time.
func resolveBinary(override, fallback string) (string, error) {
	if override == "" {
		return fallback, nil
	}
	if _, err := os.Stat(override); err != nil {
		return "", fmt.Errorf("executable not found at %s: %w", override, err)
	}
	return override, nil
}

// runMonitor runs the full supervision stack: metrics server, event bus,
// status tracker, and the supervisor itself. Blocks until the supervisor
// stops and returns the process exit code.
func runMonitor(opts *monitorOptions, streamType, binary string, args []string, extractor monitor.Extractor) int {
	logger := logging.GetLogger("monitor")

	bus := events.New()
	tracker := api.NewStatusTracker(bus, streamType, opts.Input)
	defer tracker.Close()

	server := api.NewServer(&api.Options{
		MetricsHandler: exporters.HTTPHandler(),
		Status:         tracker,
	})
	go func() {
		if err := server.Start(opts.MetricsAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "error", err)
		}
	}()
	defer func() { _ = server.Stop() }()

	sup := monitor.New(monitor.Config{
		Binary:     binary,
		Args:       args,
		StreamType: streamType,
		Extractor:  extractor,
		Conn:       metrics.SessionRecorder{StreamType: streamType},
		Logger:     logger,
		Bus:        bus,
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", "signal", sig.String())
		sup.Stop()
	}()
	defer signal.Stop(sigCh)

	if err := sup.Run(); err != nil {
		logger.Error("Monitor exited with error", "error", err)
		return 1
	}
	return 0
}

// loadOptions applies config file and env precedence over the flag values.
func loadOptions(opts any, cmd *cobra.Command) {
	if err := config.LoadConfig(opts, cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
}
