package protocol

import (
	"slices"
	"testing"
)

func defaultProbeOpts() ProbeOptions {
	return ProbeOptions{ProbeSize: 2500, AnalyzeDuration: 5000000}
}

func TestProbeArgsCommon(t *testing.T) {
	target := Target{Raw: "srt://localhost:1234", Kind: KindSRT}
	args := ProbeArgs(target, defaultProbeOpts())

	for _, want := range []string{"-show_packets", "-show_frames", "-of", "csv", "-probesize", "2500", "-analyzeduration", "5000000"} {
		if !slices.Contains(args, want) {
			t.Errorf("missing %q in %v", want, args)
		}
	}
	if args[len(args)-1] != "srt://localhost:1234" {
		t.Errorf("locator must be last argument, got %v", args)
	}
	if slices.Contains(args, "-report") {
		t.Error("unexpected -report flag")
	}
}

func TestProbeArgsReportPrepended(t *testing.T) {
	target := Target{Raw: "srt://localhost:1234", Kind: KindSRT}
	opts := defaultProbeOpts()
	opts.Report = true

	args := ProbeArgs(target, opts)
	if args[0] != "-report" {
		t.Errorf("expected -report first, got %v", args)
	}
}

func TestProbeArgsRTSPForcesTCP(t *testing.T) {
	target := Target{Raw: "rtsp://host/stream", Kind: KindRTSP}
	args := ProbeArgs(target, defaultProbeOpts())

	i := slices.Index(args, "-rtsp_transport")
	if i == -1 || args[i+1] != "tcp" {
		t.Errorf("expected forced TCP transport, got %v", args)
	}
}

func TestProbeArgsHLSLiveStart(t *testing.T) {
	target := Target{Raw: "https://x/y.m3u8", Kind: KindHLS}
	args := ProbeArgs(target, defaultProbeOpts())

	i := slices.Index(args, "-live_start_index")
	if i == -1 || args[i+1] != "-1" {
		t.Errorf("expected live start index flag, got %v", args)
	}
}

func TestProbeArgsDeterministic(t *testing.T) {
	target := Target{Raw: "rtsp://host/stream", Kind: KindRTSP}
	opts := defaultProbeOpts()
	opts.Report = true

	first := ProbeArgs(target, opts)
	second := ProbeArgs(target, opts)
	if !slices.Equal(first, second) {
		t.Errorf("argument vector not deterministic: %v vs %v", first, second)
	}
}

func TestTranscodeArgsOutputSide(t *testing.T) {
	target := Target{Raw: "srt://host:1234", Kind: KindSRT}
	args := TranscodeArgs(target, "out.mp4")

	for _, want := range []string{"-stats", "-stats_period", "-progress", "pipe:1"} {
		if !slices.Contains(args, want) {
			t.Errorf("missing %q in %v", want, args)
		}
	}
	if args[len(args)-1] != "out.mp4" {
		t.Errorf("destination must be last argument, got %v", args)
	}
}

func TestTranscodeArgsNetworkTimeout(t *testing.T) {
	for _, kind := range []Kind{KindSRT, KindRTMP, KindUDP, KindMPEGTS} {
		target := Target{Raw: "x://host", Kind: kind}
		args := TranscodeArgs(target, "out.mp4")
		if !slices.Contains(args, "-timeout") {
			t.Errorf("kind %v: expected receive timeout, got %v", kind, args)
		}
	}
}

func TestTranscodeArgsScreenCapture(t *testing.T) {
	target := Target{Raw: ":0.0", Kind: KindRDP}
	args := TranscodeArgs(target, "out.mp4")

	i := slices.Index(args, "-f")
	if i == -1 || args[i+1] != "x11grab" {
		t.Errorf("expected grab device selector, got %v", args)
	}
	if slices.Contains(args, "-timeout") {
		t.Errorf("screen capture should not have a network timeout: %v", args)
	}
}

func TestTranscodeArgsFileInput(t *testing.T) {
	target := Target{Raw: "input.mp4", Kind: KindFile}
	args := TranscodeArgs(target, "out.mp4")

	i := slices.Index(args, "-i")
	if i == -1 || args[i+1] != "input.mp4" {
		t.Errorf("expected plain file input, got %v", args)
	}
	if slices.Contains(args, "-timeout") {
		t.Errorf("file input should not have a network timeout: %v", args)
	}
}
