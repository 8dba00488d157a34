// Package metrics provides Prometheus metrics for probe and transcode
// monitoring sessions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	probeFPS = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "streamwatch",
		Subsystem: "probe",
		Name:      "fps",
		Help:      "Estimated frames per second from presentation timestamps",
	}, []string{"stream_type", "stream_id", "media_type"})

	probeFrames = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "streamwatch",
		Subsystem: "probe",
		Name:      "frames_total",
		Help:      "Total frames observed",
	}, []string{"stream_id", "media_type"})

	probeBitrate = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "streamwatch",
		Subsystem: "probe",
		Name:      "bitrate_kbits",
		Help:      "Current bitrate in kbits/s derived from packet sizes",
	}, []string{"stream_id", "media_type"})

	probeCorruptPackets = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "streamwatch",
		Subsystem: "probe",
		Name:      "corrupt_packets_total",
		Help:      "Total corrupt packets",
	}, []string{"stream_id", "media_type"})

	probeDroppedPackets = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "streamwatch",
		Subsystem: "probe",
		Name:      "dropped_packets_total",
		Help:      "Total receiver-dropped packets",
	}, []string{"stream_type"})

	probeCodecErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "streamwatch",
		Subsystem: "probe",
		Name:      "codec_errors_total",
		Help:      "Total codec errors by category",
	}, []string{"error_type", "stream_id"})
)

// ProbeRecorder writes probe-mode extractor updates into the Prometheus
// registry. Labeled series support concurrent independent updates.
type ProbeRecorder struct {
	StreamType string
}

// SetBitrate sets the bitrate gauge for a stream.
func (r ProbeRecorder) SetBitrate(streamID, mediaType string, kbits float64) {
	probeBitrate.WithLabelValues(streamID, mediaType).Set(kbits)
}

// AddCorruptPacket increments the corrupt packet counter for a stream.
func (r ProbeRecorder) AddCorruptPacket(streamID, mediaType string) {
	probeCorruptPackets.WithLabelValues(streamID, mediaType).Inc()
}

// AddFrame increments the processed frame counter for a stream.
func (r ProbeRecorder) AddFrame(streamID, mediaType string) {
	probeFrames.WithLabelValues(streamID, mediaType).Inc()
}

// SetFPS sets the estimated FPS gauge for a stream.
func (r ProbeRecorder) SetFPS(streamType, streamID, mediaType string, fps float64) {
	probeFPS.WithLabelValues(streamType, streamID, mediaType).Set(fps)
}

// AddDroppedPackets adds to the dropped packet counter.
func (r ProbeRecorder) AddDroppedPackets(n float64) {
	probeDroppedPackets.WithLabelValues(r.StreamType).Add(n)
}

// AddCodecError increments the codec error counter for a category.
func (r ProbeRecorder) AddCodecError(errorType, streamID string) {
	probeCodecErrors.WithLabelValues(errorType, streamID).Inc()
}
