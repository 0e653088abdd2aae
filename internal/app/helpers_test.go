package app

import (
	"context"
	"errors"
	"sync"

	"github.com/bft-labs/sheetmail/internal/domain"
	"github.com/bft-labs/sheetmail/pkg/log"
)

var errInvalidAddress = errors.New("invalid address")

// fakeSender fails on addresses without '@' and records every call in order.
type fakeSender struct {
	mu    sync.Mutex
	calls []string
	block chan struct{}
}

func (s *fakeSender) Send(ctx context.Context, creds domain.Credentials, r domain.Recipient) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	s.calls = append(s.calls, r.Address)
	s.mu.Unlock()

	for _, c := range r.Address {
		if c == '@' {
			return nil
		}
	}
	return &domain.SendError{Recipient: r, Err: errInvalidAddress}
}

func (s *fakeSender) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// fakeLoader returns fixed rows or a fixed error.
type fakeLoader struct {
	rows  []domain.Recipient
	err   error
	mu    sync.Mutex
	paths []string
}

func (l *fakeLoader) Load(ctx context.Context, path string) ([]domain.Recipient, error) {
	l.mu.Lock()
	l.paths = append(l.paths, path)
	l.mu.Unlock()
	return l.rows, l.err
}

func (l *fakeLoader) Paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.paths...)
}

// recordingEmitter tracks state change events.
type recordingEmitter struct {
	mu     sync.Mutex
	events []stateChangeEvent
}

type stateChangeEvent struct {
	previous State
	current  State
	reason   string
}

func (m *recordingEmitter) OnStateChange(previous, current State, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, stateChangeEvent{previous, current, reason})
}

func (m *recordingEmitter) Events() []stateChangeEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]stateChangeEvent{}, m.events...)
}

func noopLogger() *log.NoopLogger { return log.NewNoopLogger() }

func drain(events <-chan Event) (lines []string, last Event) {
	for ev := range events {
		if ev.Kind == EventLog {
			lines = append(lines, ev.Line)
			continue
		}
		last = ev
	}
	return lines, last
}
