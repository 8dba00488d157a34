// Package monitor supervises a media subprocess: it spawns it, drains its
// output through an extractor, and restarts it with a fixed backoff until
// stopped.
package monitor

import (
	"sync"
	"time"

	"github.com/smazurov/streamwatch/internal/events"
	"github.com/smazurov/streamwatch/internal/logging"
)

// defaultRetryDelay is the backoff between supervision attempts.
const defaultRetryDelay = 10 * time.Second

// backoffSlices divides the retry delay so a stop request interrupts the
// wait within one slice.
const backoffSlices = 100

// Config configures a Supervisor.
type Config struct {
	Binary     string         // executable to spawn
	Args       []string       // full argument vector
	StreamType string         // protocol kind label for logs and events
	Extractor  Extractor      // output-line parser
	Conn       ConnSink       // connection-state metrics
	Logger     logging.Logger // satisfied by *slog.Logger
	Bus        *events.Bus    // optional lifecycle event bus

	// RetryDelay overrides the backoff between attempts; zero means the
	// 10-second default.
	RetryDelay time.Duration

	// MaxAttempts bounds the number of sessions before Run returns the
	// last error. Zero means retry until stopped.
	MaxAttempts int
}

// Supervisor is the top-level supervision state machine. Counters in the
// sink accumulate across restarts by design; gauges are overwritten.
type Supervisor struct {
	cfg  Config
	stop StopFlag

	mu    sync.Mutex
	state State
}

// New creates a Supervisor in the idle state.
func New(cfg Config) *Supervisor {
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	return &Supervisor{cfg: cfg, state: StateIdle}
}

// Stop requests a cooperative stop. Safe to call from any goroutine,
// including a signal handler; observed within one polling interval.
func (s *Supervisor) Stop() {
	s.stop.Stop()
}

// State returns the current supervisor state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Supervisor) setState(next State) {
	s.mu.Lock()
	prev := s.state
	s.state = next
	s.mu.Unlock()

	if prev != next && s.cfg.Bus != nil {
		s.cfg.Bus.Publish(events.StateChangedEvent{
			From:      string(prev),
			To:        string(next),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// Run blocks until stopped. The default policy retries failed or completed
// sessions forever; with MaxAttempts set, the last session error is
// returned once the attempts are exhausted.
func (s *Supervisor) Run() error {
	s.cfg.Logger.Info("Starting monitor", "stream_type", s.cfg.StreamType, "binary", s.cfg.Binary)

	var lastErr error
	attempts := 0

	for !s.stop.Stopped() {
		err := s.runOnce()
		attempts++

		switch {
		case err == errStopped:
			// Forcibly terminated by a stop request.
			s.cfg.Conn.SetConnected(false)
			s.setState(StateStopped)
			return nil

		case err == nil:
			if s.stop.Stopped() {
				s.cfg.Logger.Info("Process exited cleanly after stop request")
				s.cfg.Conn.SetConnected(false)
				s.setState(StateStopped)
				return nil
			}
			s.cfg.Logger.Info("Process completed normally, restarting")
			s.recordReset("clean_exit")
			lastErr = nil

		default:
			s.cfg.Logger.Error("Session failed", "error", err)
			s.recordReset(failureCategory(err))
			lastErr = err
		}

		if s.cfg.MaxAttempts > 0 && attempts >= s.cfg.MaxAttempts {
			s.setState(StateStopped)
			return lastErr
		}

		s.setState(StateBackoff)
		s.cfg.Logger.Warn("Waiting before restarting process", "delay", s.cfg.RetryDelay)
		if !s.waitRetry() {
			s.cfg.Logger.Info("Shutdown requested during retry wait")
			s.setState(StateStopped)
			return nil
		}
	}

	s.setState(StateStopped)
	return nil
}

// runOnce runs a single supervision attempt: spawn, drain, reap.
func (s *Supervisor) runOnce() error {
	s.setState(StateSpawning)
	// Optimistic: confirmed or reverted when the attempt ends.
	s.cfg.Conn.SetConnected(true)

	sess, err := startSession(s.cfg.Binary, s.cfg.Args)
	if err != nil {
		return err
	}

	s.setState(StateRunning)
	s.cfg.Logger.Info("Process started", "pid", sess.pid())
	s.publishStarted(sess)

	p := &pipeline{
		sess:      sess,
		extractor: s.cfg.Extractor,
		conn:      s.cfg.Conn,
		stop:      &s.stop,
		logger:    s.cfg.Logger,
	}
	err = p.run()
	s.publishEnded(err)
	return err
}

// recordReset applies the end-of-attempt metric updates: connected gauge
// down, reconnect counter up, failure reason recorded.
func (s *Supervisor) recordReset(category string) {
	s.cfg.Conn.SetConnected(false)
	s.cfg.Conn.AddReset()
	s.cfg.Conn.RecordFailure(category)
}

// waitRetry waits out the retry delay in short slices. Returns false if a
// stop was requested during the wait.
func (s *Supervisor) waitRetry() bool {
	slice := s.cfg.RetryDelay / backoffSlices
	for range backoffSlices {
		if s.stop.Stopped() {
			return false
		}
		time.Sleep(slice)
	}
	return true
}

func (s *Supervisor) publishStarted(sess *session) {
	if s.cfg.Bus == nil {
		return
	}
	s.cfg.Bus.Publish(events.SessionStartedEvent{
		StreamType: s.cfg.StreamType,
		PID:        sess.pid(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Supervisor) publishEnded(err error) {
	if s.cfg.Bus == nil {
		return
	}
	reason := "clean_exit"
	exitCode := 0
	switch {
	case err == errStopped:
		reason = "stopped"
	case err != nil:
		reason = failureCategory(err)
		if exitErr, ok := err.(*ProcessExitError); ok {
			exitCode = exitErr.Code
		}
	}
	s.cfg.Bus.Publish(events.SessionEndedEvent{
		StreamType: s.cfg.StreamType,
		Reason:     reason,
		ExitCode:   exitCode,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}
