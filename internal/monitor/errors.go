package monitor

import (
	"errors"
	"fmt"
)

// errStopped signals that a session ended because of an external stop
// request rather than a failure.
var errStopped = errors.New("stop requested")

// SpawnError wraps a failure to start the subprocess. Retried under backoff.
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string { return fmt.Sprintf("failed to spawn process: %v", e.Err) }
func (e *SpawnError) Unwrap() error { return e.Err }

// ProcessExitError reports a non-zero subprocess exit code.
type ProcessExitError struct {
	Code int
}

func (e *ProcessExitError) Error() string {
	return fmt.Sprintf("process failed with exit code: %d", e.Code)
}

// StreamReadError reports an I/O failure reading a captured output stream.
type StreamReadError struct {
	Source string // "stdout" or "stderr"
	Err    error
}

func (e *StreamReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Source, e.Err)
}

func (e *StreamReadError) Unwrap() error { return e.Err }

// failureCategory maps a session error to the metric label recorded before
// entering backoff.
func failureCategory(err error) string {
	var spawnErr *SpawnError
	var exitErr *ProcessExitError
	var readErr *StreamReadError
	switch {
	case errors.As(err, &spawnErr):
		return "spawn_failed"
	case errors.As(err, &exitErr):
		return "process_exit"
	case errors.As(err, &readErr):
		return "stream_read"
	default:
		return "unknown"
	}
}
