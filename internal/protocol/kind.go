// Package protocol classifies stream locators and builds ffprobe/ffmpeg
// argument vectors for them.
package protocol

// Kind identifies the transport/container family of a stream locator.
type Kind int

// Supported stream kinds.
const (
	KindSRT Kind = iota
	KindHLS
	KindMPEGTS
	KindRTMP
	KindRTSP
	KindUDP
	KindRDP
	KindFile
)

// String returns the metric label value for the kind.
func (k Kind) String() string {
	switch k {
	case KindSRT:
		return "srt"
	case KindHLS:
		return "hls"
	case KindMPEGTS:
		return "mpegts"
	case KindRTMP:
		return "rtmp"
	case KindRTSP:
		return "rtsp"
	case KindUDP:
		return "udp"
	case KindRDP:
		return "rdp"
	case KindFile:
		return "file"
	}
	return "unknown"
}

// Target is a classified stream locator.
type Target struct {
	Raw  string
	Kind Kind
}
