package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// TranscodeSink receives metric updates from the transcode-mode parser.
type TranscodeSink interface {
	SetFPS(fps float64)
	SetFrames(frames float64)
	SetSpeed(speed float64)
	SetBitrate(kbits float64)
	AddCorruptPacket(streamID string)
	AddDecodingError(frameType string)
}

// Progress-line patterns; a single stats line can match several of them.
var (
	fpsPattern     = regexp.MustCompile(`fps=\s*(\d+\.?\d*)`)
	framePattern   = regexp.MustCompile(`frame=\s*(\d+)`)
	speedPattern   = regexp.MustCompile(`speed=\s*(\d+\.?\d*)x`)
	bitratePattern = regexp.MustCompile(`bitrate=\s*(\d+\.?\d*)kbits/s`)

	concealPattern = regexp.MustCompile(`concealing.*in (I|P|B) frame`)
)

// TranscodeExtractor parses ffmpeg progress output (stdout) and decoder
// diagnostics (stderr).
type TranscodeExtractor struct {
	sink TranscodeSink
}

// NewTranscodeExtractor creates a transcode-mode extractor.
func NewTranscodeExtractor(sink TranscodeSink) *TranscodeExtractor {
	return &TranscodeExtractor{sink: sink}
}

// PrimaryLine applies every matching progress pattern on the line.
// Unmatched lines are not an error.
func (e *TranscodeExtractor) PrimaryLine(line string) {
	if m := fpsPattern.FindStringSubmatch(line); m != nil {
		if fps, err := strconv.ParseFloat(m[1], 64); err == nil {
			e.sink.SetFPS(fps)
		}
	}
	if m := framePattern.FindStringSubmatch(line); m != nil {
		if frames, err := strconv.ParseFloat(m[1], 64); err == nil {
			e.sink.SetFrames(frames)
		}
	}
	if m := speedPattern.FindStringSubmatch(line); m != nil {
		if speed, err := strconv.ParseFloat(m[1], 64); err == nil {
			e.sink.SetSpeed(speed)
		}
	}
	if m := bitratePattern.FindStringSubmatch(line); m != nil {
		if kbits, err := strconv.ParseFloat(m[1], 64); err == nil {
			e.sink.SetBitrate(kbits)
		}
	}
}

// DiagnosticLine matches corruption and decoding-error markers on one
// stderr line.
func (e *TranscodeExtractor) DiagnosticLine(line string) {
	// The stream label here is the byte offset of the match, not a real
	// stream index; treat it as best-effort.
	if idx := strings.Index(line, "corrupt packet"); idx >= 0 {
		e.sink.AddCorruptPacket(strconv.Itoa(idx))
	}

	if strings.Contains(line, "error while decoding") {
		e.sink.AddDecodingError("general")
	}

	if m := concealPattern.FindStringSubmatch(line); m != nil {
		e.sink.AddDecodingError(m[1])
	}
}
