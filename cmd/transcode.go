package cmd

import (
	"os"

	"github.com/smazurov/streamwatch/internal/extract"
	"github.com/smazurov/streamwatch/internal/logging"
	"github.com/smazurov/streamwatch/internal/metrics"
	"github.com/smazurov/streamwatch/internal/protocol"
	"github.com/spf13/cobra"
)

// transcodeOptions holds the transcode-specific flags.
type transcodeOptions struct {
	Config string

	Output     string `toml:"transcode.output" env:"OUTPUT"`
	FfmpegPath string `toml:"transcode.ffmpeg_path" env:"FFMPEG_PATH"`
}

// CreateTranscodeCmd creates the transcode command.
func CreateTranscodeCmd() *cobra.Command {
	shared := &monitorOptions{}
	opts := &transcodeOptions{}

	cmd := &cobra.Command{
		Use:   "transcode",
		Short: "Monitor a stream by transcoding it with ffmpeg",
		Long: `Runs ffmpeg against the input, writing the transcoded result to the output ` +
			`path while exporting encoding FPS, speed, bitrate, and decode error metrics. ` +
			`The subprocess is restarted automatically if it exits or the stream drops.`,
		Run: func(cmd *cobra.Command, _ []string) {
			opts.Config = shared.Config
			loadOptions(shared, cmd)
			loadOptions(opts, cmd)
			initLogging(shared)
			logger := logging.GetLogger("monitor")

			target := classifyInput(shared)
			streamType := target.Kind.String()

			if opts.Output == "" {
				logger.Error("No output specified, use --output")
				os.Exit(1)
			}

			binary, err := resolveBinary(opts.FfmpegPath, "ffmpeg")
			if err != nil {
				logger.Error("Invalid ffmpeg path", "error", err)
				os.Exit(1)
			}

			// A stale output file would make ffmpeg prompt for overwrite
			// confirmation and hang the session.
			if _, statErr := os.Stat(opts.Output); statErr == nil {
				logger.Info("Removing existing output file", "output", opts.Output)
				if rmErr := os.Remove(opts.Output); rmErr != nil {
					logger.Error("Failed to remove existing output file", "error", rmErr)
					os.Exit(1)
				}
			}

			args := protocol.TranscodeArgs(target, opts.Output)

			extractor := extract.NewTranscodeExtractor(metrics.TranscodeRecorder{})
			os.Exit(runMonitor(shared, streamType, binary, args, extractor))
		},
	}

	addMonitorFlags(cmd, shared)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Destination path for the transcoded stream")
	cmd.Flags().StringVar(&opts.FfmpegPath, "ffmpeg-path", "", "Path to the ffmpeg executable (default: ffmpeg on PATH)")

	return cmd
}
