package extract

import "testing"

type fakeTranscodeSink struct {
	fps       float64
	frames    float64
	speed     float64
	bitrate   float64
	corrupt   map[string]int
	decodeErr map[string]int
}

func newFakeTranscodeSink() *fakeTranscodeSink {
	return &fakeTranscodeSink{
		corrupt:   make(map[string]int),
		decodeErr: make(map[string]int),
	}
}

func (s *fakeTranscodeSink) SetFPS(fps float64)         { s.fps = fps }
func (s *fakeTranscodeSink) SetFrames(frames float64)   { s.frames = frames }
func (s *fakeTranscodeSink) SetSpeed(speed float64)     { s.speed = speed }
func (s *fakeTranscodeSink) SetBitrate(kbits float64)   { s.bitrate = kbits }
func (s *fakeTranscodeSink) AddCorruptPacket(id string) { s.corrupt[id]++ }
func (s *fakeTranscodeSink) AddDecodingError(ft string) { s.decodeErr[ft]++ }

func TestTranscodeStatsLine(t *testing.T) {
	sink := newFakeTranscodeSink()
	e := NewTranscodeExtractor(sink)

	e.PrimaryLine("frame=  120 fps= 29.5 q=28.0 size=    1024KiB time=00:00:04.00 bitrate=2048.5kbits/s speed=1.01x")

	if sink.frames != 120 {
		t.Errorf("frames = %v, want 120", sink.frames)
	}
	if sink.fps != 29.5 {
		t.Errorf("fps = %v, want 29.5", sink.fps)
	}
	if sink.speed != 1.01 {
		t.Errorf("speed = %v, want 1.01", sink.speed)
	}
	if sink.bitrate != 2048.5 {
		t.Errorf("bitrate = %v, want 2048.5", sink.bitrate)
	}
}

func TestTranscodePartialMatches(t *testing.T) {
	sink := newFakeTranscodeSink()
	e := NewTranscodeExtractor(sink)

	e.PrimaryLine("fps=25")

	if sink.fps != 25 {
		t.Errorf("fps = %v, want 25", sink.fps)
	}
	if sink.frames != 0 || sink.speed != 0 || sink.bitrate != 0 {
		t.Errorf("unexpected updates: %+v", sink)
	}
}

func TestTranscodeUnmatchedLine(t *testing.T) {
	sink := newFakeTranscodeSink()
	e := NewTranscodeExtractor(sink)

	e.PrimaryLine("Press [q] to stop, [?] for help")

	if sink.fps != 0 || sink.frames != 0 || sink.speed != 0 || sink.bitrate != 0 {
		t.Errorf("unexpected updates: %+v", sink)
	}
}

func TestTranscodeDiagnosticCorruptPacket(t *testing.T) {
	sink := newFakeTranscodeSink()
	e := NewTranscodeExtractor(sink)

	line := "[mpegts @ 0x55] corrupt packet detected"
	e.DiagnosticLine(line)

	// The label is the byte offset of the match, a best-effort placeholder.
	if len(sink.corrupt) != 1 {
		t.Fatalf("corrupt = %v, want one entry", sink.corrupt)
	}
	for _, n := range sink.corrupt {
		if n != 1 {
			t.Errorf("corrupt count = %d, want 1", n)
		}
	}
}

func TestTranscodeDiagnosticDecodingErrors(t *testing.T) {
	sink := newFakeTranscodeSink()
	e := NewTranscodeExtractor(sink)

	e.DiagnosticLine("[h264 @ 0x55] error while decoding MB 12 34")
	e.DiagnosticLine("[h264 @ 0x55] concealing 512 DC, 512 AC, 512 MV errors in P frame")

	if sink.decodeErr["general"] != 1 {
		t.Errorf("general errors = %d, want 1", sink.decodeErr["general"])
	}
	if sink.decodeErr["P"] != 1 {
		t.Errorf("P-frame errors = %d, want 1", sink.decodeErr["P"])
	}
}
