package app

import (
	"errors"
	"sync"
	"time"

	"github.com/bft-labs/sheetmail/internal/domain"
	"github.com/bft-labs/sheetmail/internal/ports"
	"github.com/bft-labs/sheetmail/pkg/log"
)

// ShutdownTimeout is the default time to wait for a run in flight on exit.
const ShutdownTimeout = 30 * time.Second

var (
	errNotRunning      = errors.New("not running")
	errShutdownTimeout = errors.New("shutdown timeout")
)

// State is the state of the interface shell.
type State int

const (
	StateIdle State = iota
	StateRunning
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	default:
		return "Unknown"
	}
}

// EventEmitter is called when the shell state changes.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
}

// Lifecycle is the Idle/Running state machine. There is no cancelled state:
// a run always ends by returning to Idle.
type Lifecycle struct {
	mu      sync.RWMutex
	state   State
	wg      sync.WaitGroup
	logger  ports.Logger
	emitter EventEmitter
}

// NewLifecycle creates a lifecycle in StateIdle. emitter may be nil.
func NewLifecycle(logger ports.Logger, emitter EventEmitter) *Lifecycle {
	return &Lifecycle{
		state:   StateIdle,
		logger:  logger,
		emitter: emitter,
	}
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TransitionTo moves to newState.
// Returns domain.ErrAlreadyRunning when starting twice and errNotRunning when
// finishing a run that never started.
func (l *Lifecycle) TransitionTo(newState State, reason string) error {
	l.mu.Lock()
	oldState := l.state

	switch {
	case oldState == StateIdle && newState != StateRunning:
		l.mu.Unlock()
		return errNotRunning
	case oldState == StateRunning && newState != StateIdle:
		l.mu.Unlock()
		return domain.ErrAlreadyRunning
	}

	l.state = newState
	l.mu.Unlock()

	// Emit outside of lock
	if l.emitter != nil {
		l.emitter.OnStateChange(oldState, newState, reason)
	}

	l.logger.Debug("state transition",
		log.String("from", oldState.String()),
		log.String("to", newState.String()),
		log.String("reason", reason),
	)
	return nil
}

// AddWorker registers a background worker.
func (l *Lifecycle) AddWorker() {
	l.wg.Add(1)
}

// WorkerDone marks a background worker as finished.
func (l *Lifecycle) WorkerDone() {
	l.wg.Done()
}

// WaitWithTimeout waits for the running worker, if any.
func (l *Lifecycle) WaitWithTimeout(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		l.logger.Warn("shutdown timeout, run still in flight",
			log.Duration("timeout", timeout),
		)
		return errShutdownTimeout
	}
}
