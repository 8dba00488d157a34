package protocol

import "strconv"

// ProbeOptions tunes the ffprobe invocation built by ProbeArgs.
type ProbeOptions struct {
	ProbeSize       int  // -probesize, bytes
	AnalyzeDuration int  // -analyzeduration, microseconds
	Report          bool // write a verbose ffprobe report file
}

// ProbeArgs builds the ffprobe argument vector for a target. The output is
// machine-parsable CSV with per-packet and per-frame records; the locator is
// always the final argument.
func ProbeArgs(t Target, opts ProbeOptions) []string {
	var args []string
	if opts.Report {
		args = append(args, "-report")
	}
	args = append(args, "-show_packets", "-show_frames", "-of", "csv")

	switch t.Kind {
	case KindRTSP:
		// RTSP defaults to UDP transport; force TCP so packet loss shows up
		// in the stream diagnostics instead of silent gaps.
		args = append(args, "-rtsp_transport", "tcp")
	case KindHLS:
		args = append(args, "-live_start_index", "-1")
	}

	args = append(args,
		"-probesize", strconv.Itoa(opts.ProbeSize),
		"-analyzeduration", strconv.Itoa(opts.AnalyzeDuration),
		"-i", t.Raw,
	)
	return args
}

// networkTimeout is the receive timeout in microseconds applied to plain
// network inputs in transcode mode.
const networkTimeout = "5000000"

// TranscodeArgs builds the ffmpeg argument vector for a target. Input
// acquisition flags depend on the kind; the output side always emits
// one-second stats on stderr and a machine-parsable progress stream on
// stdout, followed by the destination path.
func TranscodeArgs(t Target, output string) []string {
	var args []string

	switch t.Kind {
	case KindRDP:
		// Screen capture needs a grab device selector, not a bare URL.
		args = append(args, "-f", "x11grab", "-i", t.Raw)
	case KindHLS:
		args = append(args, "-live_start_index", "-1", "-i", t.Raw)
	case KindRTSP:
		args = append(args, "-rtsp_transport", "tcp", "-timeout", networkTimeout, "-i", t.Raw)
	case KindSRT, KindRTMP, KindUDP, KindMPEGTS:
		args = append(args, "-timeout", networkTimeout, "-i", t.Raw)
	case KindFile:
		args = append(args, "-i", t.Raw)
	}

	args = append(args,
		"-stats", "-stats_period", "1",
		"-progress", "pipe:1",
		output,
	)
	return args
}
