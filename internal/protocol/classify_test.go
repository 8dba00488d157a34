package protocol

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyURLSchemes(t *testing.T) {
	cases := []struct {
		input string
		want  Kind
	}{
		{"srt://host:1234", KindSRT},
		{"rtmp://server/live/stream", KindRTMP},
		{"rtsp://host/stream", KindRTSP},
		{"udp://239.0.0.1:5000", KindUDP},
		{"rdp://desktop:3389", KindRDP},
		{"https://x/y.m3u8", KindHLS},
		{"http://example.com/playlist.m3u", KindHLS},
		{"https://x/y.ts", KindMPEGTS},
		{"https://example.com/stream", KindHLS}, // HLS is the HTTP default
	}

	for _, c := range cases {
		got, err := Classify(c.input)
		if err != nil {
			t.Errorf("Classify(%q) returned error: %v", c.input, err)
			continue
		}
		if got.Kind != c.want {
			t.Errorf("Classify(%q) = %v, want %v", c.input, got.Kind, c.want)
		}
		if got.Raw != c.input {
			t.Errorf("Classify(%q) Raw = %q", c.input, got.Raw)
		}
	}
}

func TestClassifyUnsupportedScheme(t *testing.T) {
	_, err := Classify("ftp://host/file.mp4")
	if !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("expected ErrUnsupportedScheme, got %v", err)
	}
}

func TestClassifyRDPPortSuffix(t *testing.T) {
	got, err := Classify("desktop-host:3389")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != KindRDP {
		t.Errorf("Kind = %v, want KindRDP", got.Kind)
	}
}

func TestClassifyFileExtensions(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		want Kind
	}{
		{"sample.ts", KindMPEGTS},
		{"sample.m3u8", KindHLS},
		{"sample.m3u", KindHLS},
		{"sample.mp4", KindFile},
	}

	for _, c := range cases {
		path := filepath.Join(dir, c.name)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		got, err := Classify(path)
		if err != nil {
			t.Errorf("Classify(%q) returned error: %v", path, err)
			continue
		}
		if got.Kind != c.want {
			t.Errorf("Classify(%q) = %v, want %v", path, got.Kind, c.want)
		}
	}
}

func TestClassifyFileWithoutExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noext")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Classify(path)
	if !errors.Is(err, ErrUnknownFileType) {
		t.Errorf("expected ErrUnknownFileType, got %v", err)
	}
}

func TestClassifyUnresolvable(t *testing.T) {
	_, err := Classify("/nonexistent/path/without/meaning")
	if !errors.Is(err, ErrUnresolvableTarget) {
		t.Errorf("expected ErrUnresolvableTarget, got %v", err)
	}
}

func TestKindString(t *testing.T) {
	kinds := map[Kind]string{
		KindSRT:    "srt",
		KindHLS:    "hls",
		KindMPEGTS: "mpegts",
		KindRTMP:   "rtmp",
		KindRTSP:   "rtsp",
		KindUDP:    "udp",
		KindRDP:    "rdp",
		KindFile:   "file",
	}
	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
