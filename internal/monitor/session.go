package monitor

import (
	"errors"
	"io"
	"os/exec"
	"syscall"
	"time"
)

// session is one subprocess attempt: the child process handle, its start
// time, and the two captured output streams. Owned exclusively by the
// supervisor; destroyed when the attempt ends.
type session struct {
	cmd     *exec.Cmd
	stdout  io.ReadCloser
	stderr  io.ReadCloser
	started time.Time
}

// startSession spawns the subprocess with both output streams captured.
func startSession(binary string, args []string) (*session, error) {
	cmd := exec.Command(binary, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &SpawnError{Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &SpawnError{Err: err}
	}

	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Err: err}
	}

	return &session{
		cmd:     cmd,
		stdout:  stdout,
		stderr:  stderr,
		started: time.Now(),
	}, nil
}

func (s *session) pid() int {
	if s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// kill forcibly terminates the subprocess. Killing unblocks the stream
// readers with end-of-stream. "process already finished" is not an error
// here; the process may exit between the decision to kill and the kill.
func (s *session) kill() {
	if s.cmd.Process == nil {
		return
	}
	_ = s.cmd.Process.Kill()
}

// exitCodeFromError extracts exit code from process error.
// Returns 0 for nil error, the exit code for ExitError, or 1 for other errors.
func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
