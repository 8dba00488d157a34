package monitor

// State represents the current state of the supervision loop.
type State string

// Supervisor states.
const (
	StateIdle     State = "idle"     // Not started yet
	StateSpawning State = "spawning" // Subprocess being started
	StateRunning  State = "running"  // Subprocess alive, pipeline draining
	StateBackoff  State = "backoff"  // Waiting out the retry delay
	StateStopped  State = "stopped"  // Terminal
)
