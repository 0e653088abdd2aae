package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bft-labs/sheetmail/internal/domain"
	"github.com/bft-labs/sheetmail/internal/ports"
	"github.com/bft-labs/sheetmail/pkg/log"
)

// eventBuffer bounds how far the worker can run ahead of the interface.
const eventBuffer = 64

// Form is the per-session input collected by the interface.
type Form struct {
	FilePath string
	Address  string
	Secret   string
}

// Validate reports domain.ErrMissingInput when any field is empty.
func (f Form) Validate() error {
	if f.FilePath == "" || f.Address == "" || f.Secret == "" {
		return domain.ErrMissingInput
	}
	return nil
}

// Credentials returns the sender account held by the form.
func (f Form) Credentials() domain.Credentials {
	return domain.Credentials{Address: f.Address, Secret: f.Secret}
}

// EventKind discriminates Event.
type EventKind int

const (
	// EventLog carries one log line.
	EventLog EventKind = iota
	// EventDone carries the final result of a run that processed its rows.
	EventDone
	// EventAborted carries the load failure that prevented any row from being processed.
	EventAborted
)

// Event flows one way, from the run worker to the interface.
type Event struct {
	Kind   EventKind
	Line   string
	Result domain.Result
	Err    error
}

// Controller owns the form state and drives runs on a background worker.
type Controller struct {
	loader    ports.RecipientLoader
	runner    *Runner
	logger    ports.Logger
	lifecycle *Lifecycle

	mu      sync.Mutex
	form    Form
	last    domain.Result
	hasLast bool
}

// NewController creates a controller in StateIdle. emitter may be nil.
func NewController(loader ports.RecipientLoader, sender ports.MailSender, logger ports.Logger, emitter EventEmitter) *Controller {
	return &Controller{
		loader:    loader,
		runner:    NewRunner(sender, logger),
		logger:    logger,
		lifecycle: NewLifecycle(logger, emitter),
	}
}

// Form returns a copy of the current form.
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// SetForm replaces the form.
func (c *Controller) SetForm(f Form) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = f
}

// SetFilePath updates the input file only.
func (c *Controller) SetFilePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.FilePath = path
}

// State returns the shell state.
func (c *Controller) State() State {
	return c.lifecycle.State()
}

// LastResult returns the result of the most recent completed run.
func (c *Controller) LastResult() (domain.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.hasLast
}

// Preview loads the current input file without sending anything and returns its row count.
func (c *Controller) Preview(ctx context.Context) (int, error) {
	path := c.Form().FilePath
	if path == "" {
		return 0, domain.ErrMissingInput
	}
	rows, err := c.loader.Load(ctx, path)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Start validates the form and launches a run in the background.
// The returned channel yields log lines followed by exactly one EventDone or
// EventAborted, and is closed once the shell is Idle again.
// Returns domain.ErrMissingInput or domain.ErrAlreadyRunning without doing any work.
func (c *Controller) Start(ctx context.Context) (<-chan Event, error) {
	form := c.Form()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	if err := c.lifecycle.TransitionTo(StateRunning, "start requested"); err != nil {
		return nil, err
	}

	events := make(chan Event, eventBuffer)
	c.lifecycle.AddWorker()
	go c.run(ctx, form, events)
	return events, nil
}

// Wait blocks until the run in flight, if any, has finished.
func (c *Controller) Wait(timeout time.Duration) error {
	return c.lifecycle.WaitWithTimeout(timeout)
}

func (c *Controller) run(ctx context.Context, form Form, events chan<- Event) {
	defer c.lifecycle.WorkerDone()
	defer close(events)

	emit := func(line string) {
		events <- Event{Kind: EventLog, Line: line}
	}

	rows, err := c.loader.Load(ctx, form.FilePath)
	if err != nil {
		c.logger.Error("load failed", log.String("path", form.FilePath), log.Err(err))
		if !errors.Is(err, domain.ErrMissingColumns) {
			emit(fmt.Sprintf("[ERROR] An error occurred: %v", err))
		}
		c.finish("load failed")
		events <- Event{Kind: EventAborted, Err: err}
		return
	}

	res := c.runner.Run(ctx, form.Credentials(), rows, emit)

	c.mu.Lock()
	c.last, c.hasLast = res, true
	c.mu.Unlock()

	c.finish("run completed")
	events <- Event{Kind: EventDone, Result: res}
}

// finish returns the shell to Idle before the terminal event is delivered,
// so a consumer reacting to it can start the next run.
func (c *Controller) finish(reason string) {
	if err := c.lifecycle.TransitionTo(StateIdle, reason); err != nil {
		c.logger.Error("state transition failed", log.Err(err))
	}
}
