package extract

// streamKey identifies one elementary stream inside a probed input.
type streamKey struct {
	streamID  string
	mediaType string
}

// maxWindowSize bounds the number of retained presentation timestamps per
// stream; the oldest entry is evicted first.
const maxWindowSize = 100

// frameWindow holds recent presentation timestamps for one stream, ordered
// oldest to newest.
type frameWindow struct {
	times []float64
}

func (w *frameWindow) push(pts float64) {
	if len(w.times) >= maxWindowSize {
		copy(w.times, w.times[1:])
		w.times = w.times[:len(w.times)-1]
	}
	w.times = append(w.times, pts)
}

// fps estimates frames per second over the window as the number of frame
// intervals divided by the covered timestamp span. Returns false with fewer
// than two samples or a zero span.
func (w *frameWindow) fps() (float64, bool) {
	if len(w.times) < 2 {
		return 0, false
	}
	span := w.times[len(w.times)-1] - w.times[0]
	if span <= 0 {
		return 0, false
	}
	return float64(len(w.times)-1) / span, true
}
