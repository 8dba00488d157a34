package monitor

import (
	"bufio"
	"io"
	"sync"
	"time"

	"github.com/smazurov/streamwatch/internal/logging"
)

// pollInterval bounds how long any polling loop goes without observing the
// stop flag.
const pollInterval = 100 * time.Millisecond

// Extractor consumes subprocess output lines. PrimaryLine receives stdout
// (structured records or progress stats), DiagnosticLine receives stderr.
type Extractor interface {
	PrimaryLine(line string)
	DiagnosticLine(line string)
}

// ConnSink receives connection-state updates from the supervision loop.
type ConnSink interface {
	SetConnected(connected bool)
	AddReset()
	SetUptime(seconds float64)
	RecordFailure(category string)
}

// pipeline drains one session's output streams concurrently, tracks uptime,
// and surfaces the first error encountered.
type pipeline struct {
	sess      *session
	extractor Extractor
	conn      ConnSink
	stop      *StopFlag // external stop request, supervisor-owned
	logger    logging.Logger
}

// run blocks until the session ends. It returns nil on a clean exit, the
// first worker error or a ProcessExitError on failure, and errStopped when
// the external stop flag ended the session.
func (p *pipeline) run() error {
	// Single-slot channel: the first failure wins, later sends are
	// non-blocking no-ops so a failing worker never deadlocks.
	errCh := make(chan error, 1)

	// sessionStop unwinds the session's own workers; a worker failure sets
	// it without touching the external flag, so the supervisor can still
	// retry.
	sessionStop := &StopFlag{}

	var wg sync.WaitGroup
	wg.Add(2)
	go p.drain(p.sess.stdout, "stdout", p.extractor.PrimaryLine, errCh, sessionStop, &wg)
	go p.drain(p.sess.stderr, "stderr", p.extractor.DiagnosticLine, errCh, sessionStop, &wg)

	done := make(chan struct{})
	go p.trackUptime(sessionStop, done)
	defer close(done)

	// Reap strictly after both readers are done: Wait closes the pipe read
	// ends and discards whatever is still buffered, so reaping a process
	// while a reader is mid-stream drops its trailing lines. Process exit
	// delivers EOF to the readers on its own, and kill unblocks them the
	// same way, so the readers always finish first.
	processDone := make(chan error, 1)
	go func() {
		wg.Wait()
		processDone <- p.sess.cmd.Wait()
	}()

	for {
		// First error wins; kill the subprocess so siblings unblock.
		select {
		case err := <-errCh:
			p.sess.kill()
			<-processDone
			return err
		default:
		}

		select {
		case waitErr := <-processDone:
			// A worker may have failed right as the process exited;
			// prefer its error over the exit status.
			select {
			case err := <-errCh:
				return err
			default:
			}
			if code := exitCodeFromError(waitErr); code != 0 {
				return &ProcessExitError{Code: code}
			}
			return nil
		default:
		}

		if p.stop.Stopped() {
			p.logger.Info("Stop requested, killing process", "pid", p.sess.pid())
			sessionStop.Stop()
			p.sess.kill()
			<-processDone
			return errStopped
		}

		time.Sleep(pollInterval)
	}
}

// drain reads a stream line by line into the handler. A read error is sent
// once on the error channel and sets the session stop flag; it never
// panics across the worker boundary.
func (p *pipeline) drain(r io.Reader, source string, handle func(string), errCh chan<- error, sessionStop *StopFlag, wg *sync.WaitGroup) {
	defer wg.Done()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		handle(scanner.Text())
	}

	// Scan returns false with a nil error at EOF, which is how both a
	// clean exit and a kill present to the reader.
	err := scanner.Err()
	if err == nil {
		return
	}

	p.logger.Error("Error reading output", "source", source, "error", err)
	select {
	case errCh <- &StreamReadError{Source: source, Err: err}:
	default:
	}
	sessionStop.Stop()
}

// trackUptime sets the uptime gauge once per second until the session ends
// or a stop flag is observed. It does not participate in error propagation.
func (p *pipeline) trackUptime(sessionStop *StopFlag, done <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if p.stop.Stopped() || sessionStop.Stopped() {
				return
			}
			p.conn.SetUptime(time.Since(p.sess.started).Seconds())
		}
	}
}
