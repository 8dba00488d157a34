// Package extract turns ffprobe/ffmpeg output lines into metric updates.
//
// Parsers are line-local: a malformed field skips that metric, never the
// session. The only aggregation state is the bounded per-stream frame-time
// window used for FPS estimation, which starts empty on every respawn.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ProbeSink receives metric updates from the probe-mode parser.
type ProbeSink interface {
	SetBitrate(streamID, mediaType string, kbits float64)
	AddCorruptPacket(streamID, mediaType string)
	AddFrame(streamID, mediaType string)
	SetFPS(streamType, streamID, mediaType string, fps float64)
	AddDroppedPackets(n float64)
	AddCodecError(errorType, streamID string)
}

// Diagnostic-line patterns. The corrupt-packet and dropped-packet messages
// come from the demuxer, codec errors from the decoder log prefix.
var (
	srtDroppedPattern    = regexp.MustCompile(`RCV-DROPPED (\d+) packet`)
	packetCorruptPattern = regexp.MustCompile(`Packet corrupt \(stream = (\d+), dts = (\d+)\)`)
	codecErrorPattern    = regexp.MustCompile(`\[(h264|hevc|vp8|vp9|av1).*?\] (.*)`)
)

// ProbeExtractor parses ffprobe CSV records (stdout) and demuxer/decoder
// diagnostics (stderr).
type ProbeExtractor struct {
	streamType string
	sink       ProbeSink

	windows       map[streamKey]*frameWindow
	lastFPSUpdate time.Time
	now           func() time.Time
}

// NewProbeExtractor creates a probe-mode extractor reporting under the given
// stream type label.
func NewProbeExtractor(streamType string, sink ProbeSink) *ProbeExtractor {
	return &ProbeExtractor{
		streamType:    streamType,
		sink:          sink,
		windows:       make(map[streamKey]*frameWindow),
		lastFPSUpdate: time.Now(),
		now:           time.Now,
	}
}

// PrimaryLine parses one CSV record from ffprobe stdout. Record kinds other
// than "packet" and "frame" are ignored.
func (e *ProbeExtractor) PrimaryLine(line string) {
	parts := strings.Split(line, ",")
	if len(parts) < 3 {
		return
	}

	switch parts[0] {
	case "packet":
		e.packetRecord(parts)
	case "frame":
		e.frameRecord(parts)
	}
}

// packetRecord maps fixed CSV positions: media type, stream id, byte size
// and the flags field carrying the corruption marker.
func (e *ProbeExtractor) packetRecord(parts []string) {
	if len(parts) < 12 {
		return
	}
	mediaType := parts[1]
	streamID := parts[2]

	if size, err := strconv.ParseFloat(parts[9], 64); err == nil {
		e.sink.SetBitrate(streamID, mediaType, size*8/1000)
	}
	if strings.Contains(parts[11], "C") {
		e.sink.AddCorruptPacket(streamID, mediaType)
	}
}

func (e *ProbeExtractor) frameRecord(parts []string) {
	if len(parts) < 6 {
		return
	}
	mediaType := parts[1]
	streamID := parts[2]

	e.sink.AddFrame(streamID, mediaType)

	pts, err := strconv.ParseFloat(parts[5], 64)
	if err != nil {
		return
	}

	key := streamKey{streamID: streamID, mediaType: mediaType}
	w := e.windows[key]
	if w == nil {
		w = &frameWindow{}
		e.windows[key] = w
	}
	w.push(pts)

	// FPS recomputation is opportunistic: once per second of wall time,
	// checked on frame records rather than a separate timer.
	if e.now().Sub(e.lastFPSUpdate) >= time.Second {
		for k, win := range e.windows {
			if fps, ok := win.fps(); ok {
				e.sink.SetFPS(e.streamType, k.streamID, k.mediaType, fps)
			}
		}
		e.lastFPSUpdate = e.now()
	}
}

// DiagnosticLine pattern-matches one stderr line for dropped packets,
// corrupt packets and codec-family errors.
func (e *ProbeExtractor) DiagnosticLine(line string) {
	if m := srtDroppedPattern.FindStringSubmatch(line); m != nil {
		if count, err := strconv.ParseFloat(m[1], 64); err == nil {
			e.sink.AddDroppedPackets(count)
		}
	}

	if m := packetCorruptPattern.FindStringSubmatch(line); m != nil {
		e.sink.AddCorruptPacket(m[1], "unknown")
	}

	if m := codecErrorPattern.FindStringSubmatch(line); m != nil {
		e.sink.AddCodecError(classifyCodecError(m[2]), "0")
	}
}

// classifyCodecError buckets a decoder message into a fixed error category.
func classifyCodecError(msg string) string {
	switch {
	case strings.Contains(msg, "SEI"):
		return "sei_error"
	case strings.Contains(msg, "PPS"):
		return "pps_error"
	case strings.Contains(msg, "decode_slice_header"):
		return "slice_header_error"
	case strings.Contains(msg, "no frame"):
		return "missing_frame"
	default:
		return "other"
	}
}
