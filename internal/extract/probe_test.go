package extract

import (
	"fmt"
	"testing"
	"time"
)

type fakeProbeSink struct {
	bitrates  map[string]float64
	corrupt   map[string]int
	frames    map[string]int
	fps       map[string]float64
	dropped   float64
	codecErrs map[string]int
}

func newFakeProbeSink() *fakeProbeSink {
	return &fakeProbeSink{
		bitrates:  make(map[string]float64),
		corrupt:   make(map[string]int),
		frames:    make(map[string]int),
		fps:       make(map[string]float64),
		codecErrs: make(map[string]int),
	}
}

func (s *fakeProbeSink) SetBitrate(streamID, mediaType string, kbits float64) {
	s.bitrates[streamID+"/"+mediaType] = kbits
}

func (s *fakeProbeSink) AddCorruptPacket(streamID, mediaType string) {
	s.corrupt[streamID+"/"+mediaType]++
}

func (s *fakeProbeSink) AddFrame(streamID, mediaType string) {
	s.frames[streamID+"/"+mediaType]++
}

func (s *fakeProbeSink) SetFPS(streamType, streamID, mediaType string, fps float64) {
	s.fps[streamType+"/"+streamID+"/"+mediaType] = fps
}

func (s *fakeProbeSink) AddDroppedPackets(n float64) {
	s.dropped += n
}

func (s *fakeProbeSink) AddCodecError(errorType, streamID string) {
	s.codecErrs[errorType]++
}

// packetLine builds a CSV packet record with the size at field 9 and flags
// at field 11, matching ffprobe -of csv layout.
func packetLine(mediaType, streamID, size, flags string) string {
	return fmt.Sprintf("packet,%s,%s,3,4,5,6,7,8,%s,10,%s", mediaType, streamID, size, flags)
}

func frameLine(mediaType, streamID, pts string) string {
	return fmt.Sprintf("frame,%s,%s,3,4,%s", mediaType, streamID, pts)
}

func TestProbePacketBitrate(t *testing.T) {
	sink := newFakeProbeSink()
	e := NewProbeExtractor("srt", sink)

	e.PrimaryLine(packetLine("video", "0", "1500", "__"))

	if got := sink.bitrates["0/video"]; got != 1500*8/1000.0 {
		t.Errorf("bitrate = %v, want %v", got, 1500*8/1000.0)
	}
	if sink.corrupt["0/video"] != 0 {
		t.Errorf("unexpected corrupt packet count %d", sink.corrupt["0/video"])
	}
}

func TestProbePacketCorruptMarker(t *testing.T) {
	sink := newFakeProbeSink()
	e := NewProbeExtractor("srt", sink)

	e.PrimaryLine(packetLine("video", "0", "1500", "K_C"))

	if sink.corrupt["0/video"] != 1 {
		t.Errorf("corrupt count = %d, want 1", sink.corrupt["0/video"])
	}
}

func TestProbePacketMalformedSize(t *testing.T) {
	sink := newFakeProbeSink()
	e := NewProbeExtractor("srt", sink)

	// Bad size field skips the bitrate metric but still checks flags.
	e.PrimaryLine(packetLine("video", "0", "garbage", "C"))

	if len(sink.bitrates) != 0 {
		t.Errorf("unexpected bitrate update: %v", sink.bitrates)
	}
	if sink.corrupt["0/video"] != 1 {
		t.Errorf("corrupt count = %d, want 1", sink.corrupt["0/video"])
	}
}

func TestProbeFrameCounter(t *testing.T) {
	sink := newFakeProbeSink()
	e := NewProbeExtractor("srt", sink)

	e.PrimaryLine(frameLine("video", "0", "0.0"))
	e.PrimaryLine(frameLine("video", "0", "0.5"))
	e.PrimaryLine(frameLine("audio", "1", "0.1"))

	if sink.frames["0/video"] != 2 {
		t.Errorf("video frames = %d, want 2", sink.frames["0/video"])
	}
	if sink.frames["1/audio"] != 1 {
		t.Errorf("audio frames = %d, want 1", sink.frames["1/audio"])
	}
}

func TestProbeFPSEstimate(t *testing.T) {
	sink := newFakeProbeSink()
	e := NewProbeExtractor("srt", sink)

	// Control wall clock: first two frames land inside the same second,
	// the third one after the one-second recompute threshold.
	base := time.Now()
	e.lastFPSUpdate = base
	e.now = func() time.Time { return base }

	e.PrimaryLine(frameLine("video", "0", "0.0"))
	e.PrimaryLine(frameLine("video", "0", "0.5"))

	e.now = func() time.Time { return base.Add(1100 * time.Millisecond) }
	e.PrimaryLine(frameLine("video", "0", "1.0"))

	want := 2.0 // (3-1)/(1.0-0.0)
	if got := sink.fps["srt/0/video"]; got != want {
		t.Errorf("fps = %v, want %v", got, want)
	}
}

func TestProbeFPSSkipsSingleSampleWindows(t *testing.T) {
	sink := newFakeProbeSink()
	e := NewProbeExtractor("srt", sink)

	base := time.Now()
	e.lastFPSUpdate = base
	e.now = func() time.Time { return base.Add(2 * time.Second) }

	e.PrimaryLine(frameLine("video", "0", "0.0"))

	if len(sink.fps) != 0 {
		t.Errorf("unexpected fps update for single-sample window: %v", sink.fps)
	}
}

func TestFrameWindowEviction(t *testing.T) {
	w := &frameWindow{}
	for i := range 250 {
		w.push(float64(i))
	}
	if len(w.times) != maxWindowSize {
		t.Fatalf("window size = %d, want %d", len(w.times), maxWindowSize)
	}
	// Oldest evicted first: entries 150..249 remain.
	if w.times[0] != 150 || w.times[len(w.times)-1] != 249 {
		t.Errorf("window bounds = [%v, %v], want [150, 249]", w.times[0], w.times[len(w.times)-1])
	}
}

func TestFrameWindowFPSInsufficientSamples(t *testing.T) {
	w := &frameWindow{}
	if _, ok := w.fps(); ok {
		t.Error("empty window reported fps")
	}
	w.push(1.0)
	if _, ok := w.fps(); ok {
		t.Error("single-sample window reported fps")
	}
	w.push(1.0)
	if _, ok := w.fps(); ok {
		t.Error("zero-span window reported fps")
	}
}

func TestProbeIgnoresOtherRecordKinds(t *testing.T) {
	sink := newFakeProbeSink()
	e := NewProbeExtractor("srt", sink)

	e.PrimaryLine("stream,video,0,h264")
	e.PrimaryLine("short")
	e.PrimaryLine("")

	if len(sink.frames) != 0 || len(sink.bitrates) != 0 {
		t.Errorf("unexpected updates: frames=%v bitrates=%v", sink.frames, sink.bitrates)
	}
}

func TestDiagnosticDroppedPackets(t *testing.T) {
	sink := newFakeProbeSink()
	e := NewProbeExtractor("srt", sink)

	e.DiagnosticLine("SRT.ea: RCV-DROPPED 17 packet(s)")

	if sink.dropped != 17 {
		t.Errorf("dropped = %v, want 17", sink.dropped)
	}
}

func TestDiagnosticPacketCorrupt(t *testing.T) {
	sink := newFakeProbeSink()
	e := NewProbeExtractor("srt", sink)

	e.DiagnosticLine("[mpegts @ 0x55] Packet corrupt (stream = 2, dts = 12345)")

	if sink.corrupt["2/unknown"] != 1 {
		t.Errorf("corrupt = %v, want 1 for stream 2", sink.corrupt)
	}
}

func TestDiagnosticCodecErrorCategories(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"[h264 @ 0x55] SEI type 5 truncated", "sei_error"},
		{"[h264 @ 0x55] non-existing PPS 0 referenced", "pps_error"},
		{"[hevc @ 0x55] decode_slice_header error", "slice_header_error"},
		{"[h264 @ 0x55] no frame!", "missing_frame"},
		{"[vp9 @ 0x55] something unexpected", "other"},
	}

	for _, c := range cases {
		sink := newFakeProbeSink()
		e := NewProbeExtractor("srt", sink)
		e.DiagnosticLine(c.line)
		if sink.codecErrs[c.want] != 1 {
			t.Errorf("line %q: categories = %v, want one %q", c.line, sink.codecErrs, c.want)
		}
	}
}

func TestDiagnosticUnmatchedLine(t *testing.T) {
	sink := newFakeProbeSink()
	e := NewProbeExtractor("srt", sink)

	e.DiagnosticLine("Input #0, mpegts, from 'srt://host':")

	if sink.dropped != 0 || len(sink.corrupt) != 0 || len(sink.codecErrs) != 0 {
		t.Error("unmatched line produced updates")
	}
}
