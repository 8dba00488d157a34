package api

import (
	"sync"
	"time"

	"github.com/smazurov/streamwatch/internal/events"
)

// StatusTracker maintains a snapshot of the supervision state by listening
// on the event bus. It is the read model behind the status endpoint.
type StatusTracker struct {
	mu         sync.Mutex
	state      string
	streamType string
	input      string
	pid        int
	sessions   int
	sessionAt  time.Time
	unsubs     []func()
}

// NewStatusTracker creates a tracker for the given input and subscribes it
// to the bus.
func NewStatusTracker(bus *events.Bus, streamType, input string) *StatusTracker {
	t := &StatusTracker{
		state:      "idle",
		streamType: streamType,
		input:      input,
	}
	t.unsubs = append(t.unsubs,
		bus.Subscribe(func(e events.SessionStartedEvent) {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.pid = e.PID
			t.sessions++
			t.sessionAt = time.Now()
		}),
		bus.Subscribe(func(e events.SessionEndedEvent) {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.pid = 0
			t.sessionAt = time.Time{}
		}),
		bus.Subscribe(func(e events.StateChangedEvent) {
			t.mu.Lock()
			defer t.mu.Unlock()
			t.state = e.To
		}),
	)
	return t
}

// Close detaches the tracker from the bus.
func (t *StatusTracker) Close() {
	for _, unsub := range t.unsubs {
		unsub()
	}
	t.unsubs = nil
}

// Snapshot returns the current status.
func (t *StatusTracker) Snapshot() StatusData {
	t.mu.Lock()
	defer t.mu.Unlock()

	uptime := 0.0
	if !t.sessionAt.IsZero() {
		uptime = time.Since(t.sessionAt).Seconds()
	}
	restarts := t.sessions - 1
	if restarts < 0 {
		restarts = 0
	}
	return StatusData{
		State:         t.state,
		StreamType:    t.streamType,
		Input:         t.input,
		PID:           t.pid,
		Restarts:      restarts,
		UptimeSeconds: uptime,
	}
}
