package protocol

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Classification errors. Callers match these with errors.Is; all of them are
// fatal configuration errors surfaced before the first spawn.
var (
	ErrUnsupportedScheme  = errors.New("unsupported URL scheme")
	ErrUnknownFileType    = errors.New("unable to determine file type")
	ErrUnresolvableTarget = errors.New("unable to determine stream type")
)

// rdpPort is the well-known remote desktop port used to recognize bare
// host:port locators as screen-capture targets.
const rdpPort = ":3389"

// Classify resolves a locator to exactly one stream kind. Resolution order:
// URL scheme, remote-desktop pattern, filesystem extension, failure.
func Classify(input string) (Target, error) {
	if u, err := url.Parse(input); err == nil && u.Scheme != "" && u.Host != "" {
		switch u.Scheme {
		case "srt":
			return Target{Raw: input, Kind: KindSRT}, nil
		case "rtmp":
			return Target{Raw: input, Kind: KindRTMP}, nil
		case "rtsp":
			return Target{Raw: input, Kind: KindRTSP}, nil
		case "udp":
			return Target{Raw: input, Kind: KindUDP}, nil
		case "rdp":
			return Target{Raw: input, Kind: KindRDP}, nil
		case "http", "https":
			if strings.HasSuffix(u.Path, ".ts") {
				return Target{Raw: input, Kind: KindMPEGTS}, nil
			}
			// HLS is the default for HTTP, including .m3u8/.m3u playlists.
			return Target{Raw: input, Kind: KindHLS}, nil
		default:
			return Target{}, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
		}
	}

	if strings.HasSuffix(input, rdpPort) {
		return Target{Raw: input, Kind: KindRDP}, nil
	}

	if _, err := os.Stat(input); err == nil {
		switch ext := filepath.Ext(input); ext {
		case ".ts":
			return Target{Raw: input, Kind: KindMPEGTS}, nil
		case ".m3u8", ".m3u":
			return Target{Raw: input, Kind: KindHLS}, nil
		case "":
			return Target{}, fmt.Errorf("%w: %s", ErrUnknownFileType, input)
		default:
			return Target{Raw: input, Kind: KindFile}, nil
		}
	}

	return Target{}, fmt.Errorf("%w for input: %s", ErrUnresolvableTarget, input)
}
