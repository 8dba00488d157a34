package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transcodeFPS = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "streamwatch",
		Subsystem: "transcode",
		Name:      "fps",
		Help:      "Current encoding FPS",
	})

	transcodeFrames = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "streamwatch",
		Subsystem: "transcode",
		Name:      "frames",
		Help:      "Cumulative frames processed as reported by the encoder",
	})

	transcodeSpeed = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "streamwatch",
		Subsystem: "transcode",
		Name:      "processing_speed",
		Help:      "Processing speed multiplier relative to realtime",
	})

	transcodeBitrate = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "streamwatch",
		Subsystem: "transcode",
		Name:      "bitrate_kbits",
		Help:      "Current output bitrate in kbits/s",
	})

	transcodeCorruptPackets = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "streamwatch",
		Subsystem: "transcode",
		Name:      "corrupt_packets_total",
		Help:      "Total corrupt packets seen while decoding",
	}, []string{"stream_id"})

	transcodeDecodingErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "streamwatch",
		Subsystem: "transcode",
		Name:      "decoding_errors_total",
		Help:      "Total decoding errors by frame type",
	}, []string{"frame_type"})
)

// TranscodeRecorder writes transcode-mode extractor updates into the
// Prometheus registry.
type TranscodeRecorder struct{}

// SetFPS sets the encoding FPS gauge.
func (TranscodeRecorder) SetFPS(fps float64) { transcodeFPS.Set(fps) }

// SetFrames sets the cumulative frame gauge.
func (TranscodeRecorder) SetFrames(frames float64) { transcodeFrames.Set(frames) }

// SetSpeed sets the processing speed gauge.
func (TranscodeRecorder) SetSpeed(speed float64) { transcodeSpeed.Set(speed) }

// SetBitrate sets the output bitrate gauge.
func (TranscodeRecorder) SetBitrate(kbits float64) { transcodeBitrate.Set(kbits) }

// AddCorruptPacket increments the corrupt packet counter.
func (TranscodeRecorder) AddCorruptPacket(streamID string) {
	transcodeCorruptPackets.WithLabelValues(streamID).Inc()
}

// AddDecodingError increments the decoding error counter for a frame type.
func (TranscodeRecorder) AddDecodingError(frameType string) {
	transcodeDecodingErrors.WithLabelValues(frameType).Inc()
}
