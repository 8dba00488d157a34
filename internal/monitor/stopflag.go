package monitor

import "sync/atomic"

// StopFlag is a shared stop signal. The write is monotonic: once set, it is
// never reset. Workers poll it cooperatively; there is no blocking wake-up.
type StopFlag struct {
	stopped atomic.Bool
}

// Stop requests a stop.
func (f *StopFlag) Stop() {
	f.stopped.Store(true)
}

// Stopped reports whether a stop has been requested.
func (f *StopFlag) Stopped() bool {
	return f.stopped.Load()
}
