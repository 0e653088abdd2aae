// Package watch notifies the shell when the selected input file changes on
// disk, so the row-count preview stays current while the user edits the
// spreadsheet.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/sheetmail/internal/ports"
	"github.com/bft-labs/sheetmail/pkg/log"
)

// Config holds watcher options.
type Config struct {
	// DebounceDelay is the quiet period after the last change before
	// OnChange fires. Spreadsheet apps write in several steps.
	// Default: 250 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{DebounceDelay: 250 * time.Millisecond}
}

// Watcher follows a single file at a time.
type Watcher struct {
	mu       sync.Mutex
	delay    time.Duration
	logger   ports.Logger
	onChange func(path string)
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
}

// New creates a watcher. onChange runs on a timer goroutine.
func New(cfg Config, logger ports.Logger, onChange func(path string)) *Watcher {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = DefaultConfig().DebounceDelay
	}
	return &Watcher{
		delay:    cfg.DebounceDelay,
		logger:   logger,
		onChange: onChange,
	}
}

// Watch replaces the watched file with path. The parent directory is
// watched so that save-by-rename is noticed too.
func (w *Watcher) Watch(ctx context.Context, path string) error {
	w.Stop()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	w.wg.Add(1)
	go w.loop(watchCtx, fw, path)

	w.logger.Debug("watching input file", log.String("path", path))
	return nil
}

// Stop ends the current watch, if any, and drops a pending notification.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	if w.debounce != nil {
		w.debounce.Stop()
		w.debounce = nil
	}
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, path string) {
	defer w.wg.Done()
	defer fw.Close()

	name := filepath.Base(path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.schedule(ctx, path)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("input watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.delay, func() {
		if ctx.Err() != nil {
			return
		}
		w.onChange(path)
	})
}
