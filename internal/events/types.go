package events

// Event type constants for kelindar/event.
const (
	TypeSessionStarted uint32 = iota + 1
	TypeSessionEnded
	TypeStateChanged
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// SessionStartedEvent is published when a subprocess session has spawned.
type SessionStartedEvent struct {
	StreamType string `json:"stream_type"`
	PID        int    `json:"pid"`
	Timestamp  string `json:"timestamp"`
}

// Type returns the event type identifier for SessionStartedEvent.
func (e SessionStartedEvent) Type() uint32 { return TypeSessionStarted }

// SessionEndedEvent is published when a subprocess session ends, whether by
// clean exit, failure, or stop request.
type SessionEndedEvent struct {
	StreamType string `json:"stream_type"`
	Reason     string `json:"reason"`
	ExitCode   int    `json:"exit_code"`
	Timestamp  string `json:"timestamp"`
}

// Type returns the event type identifier for SessionEndedEvent.
func (e SessionEndedEvent) Type() uint32 { return TypeSessionEnded }

// StateChangedEvent reports a supervisor state transition.
type StateChangedEvent struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Timestamp string `json:"timestamp"`
}

// Type returns the event type identifier for StateChangedEvent.
func (e StateChangedEvent) Type() uint32 { return TypeStateChanged }
