package cmd

import (
	"os"

	"github.com/smazurov/streamwatch/internal/extract"
	"github.com/smazurov/streamwatch/internal/logging"
	"github.com/smazurov/streamwatch/internal/metrics"
	"github.com/smazurov/streamwatch/internal/protocol"
	"github.com/spf13/cobra"
)

// probeOptions holds the probe-specific flags.
type probeOptions struct {
	Config string

	FfprobePath     string `toml:"probe.ffprobe_path" env:"FFPROBE_PATH"`
	ProbeSize       int    `toml:"probe.probe_size" env:"PROBE_SIZE"`
	AnalyzeDuration int    `toml:"probe.analyze_duration" env:"ANALYZE_DURATION"`
	Report          bool   `toml:"probe.report" env:"PROBE_REPORT"`
}

// CreateProbeCmd creates the probe command.
func CreateProbeCmd() *cobra.Command {
	shared := &monitorOptions{}
	opts := &probeOptions{}

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Monitor a stream with ffprobe",
		Long: `Runs ffprobe against the input in packet/frame inspection mode and exports ` +
			`per-stream FPS, bitrate, and corruption metrics. The subprocess is restarted ` +
			`automatically if it exits or the stream drops.`,
		Run: func(cmd *cobra.Command, _ []string) {
			opts.Config = shared.Config
			loadOptions(shared, cmd)
			loadOptions(opts, cmd)
			initLogging(shared)
			logger := logging.GetLogger("monitor")

			target := classifyInput(shared)
			streamType := target.Kind.String()

			binary, err := resolveBinary(opts.FfprobePath, "ffprobe")
			if err != nil {
				logger.Error("Invalid ffprobe path", "error", err)
				os.Exit(1)
			}

			args := protocol.ProbeArgs(target, protocol.ProbeOptions{
				ProbeSize:       opts.ProbeSize,
				AnalyzeDuration: opts.AnalyzeDuration,
				Report:          opts.Report,
			})

			extractor := extract.NewProbeExtractor(streamType, metrics.ProbeRecorder{StreamType: streamType})
			os.Exit(runMonitor(shared, streamType, binary, args, extractor))
		},
	}

	addMonitorFlags(cmd, shared)
	cmd.Flags().StringVar(&opts.FfprobePath, "ffprobe-path", "", "Path to the ffprobe executable (default: ffprobe on PATH)")
	cmd.Flags().IntVar(&opts.ProbeSize, "probe-size", 2500, "Bytes of input to inspect during stream detection")
	cmd.Flags().IntVar(&opts.AnalyzeDuration, "analyze-duration", 5000000, "Microseconds of input to analyze during stream detection")
	cmd.Flags().BoolVar(&opts.Report, "report", false, "Write a verbose ffprobe report file")

	return cmd
}
