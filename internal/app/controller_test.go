package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/sheetmail/internal/domain"
)

var validForm = Form{FilePath: "list.xlsx", Address: "me@x.com", Secret: "pw"}

func TestController_MissingInputBlocksStart(t *testing.T) {
	tests := []struct {
		name string
		form Form
	}{
		{"empty path", Form{Address: "me@x.com", Secret: "pw"}},
		{"empty address", Form{FilePath: "list.xlsx", Secret: "pw"}},
		{"empty secret", Form{FilePath: "list.xlsx", Address: "me@x.com"}},
		{"all empty", Form{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &fakeLoader{rows: []domain.Recipient{{Address: "a@x.com"}}}
			sender := &fakeSender{}
			c := NewController(loader, sender, noopLogger(), nil)
			c.SetForm(tt.form)

			events, err := c.Start(context.Background())
			require.ErrorIs(t, err, domain.ErrMissingInput)
			assert.Nil(t, events)
			assert.Equal(t, StateIdle, c.State())
			require.NoError(t, c.Wait(time.Second))
			assert.Empty(t, loader.Paths())
			assert.Empty(t, sender.Calls())
		})
	}
}

func TestController_RunStreamsEventsAndReturnsToIdle(t *testing.T) {
	loader := &fakeLoader{rows: []domain.Recipient{
		{Address: "a@x.com", Name: "Alice", Message: "Hi"},
		{Address: "bad", Name: "Bob", Message: "Hi"},
	}}
	sender := &fakeSender{}
	emitter := &recordingEmitter{}
	c := NewController(loader, sender, noopLogger(), emitter)
	c.SetForm(validForm)

	events, err := c.Start(context.Background())
	require.NoError(t, err)

	lines, last := drain(events)
	require.Equal(t, EventDone, last.Kind)
	assert.Equal(t, 2, last.Result.Total)
	assert.Equal(t, 1, last.Result.Sent)
	assert.Len(t, last.Result.Failures, 1)
	assert.Equal(t, "Starting to send 2 emails...", lines[0])
	assert.Equal(t, []string{"list.xlsx"}, loader.Paths())

	assert.Equal(t, StateIdle, c.State())
	got, ok := c.LastResult()
	require.True(t, ok)
	assert.Equal(t, last.Result, got)

	changes := emitter.Events()
	require.Len(t, changes, 2)
	assert.Equal(t, StateRunning, changes[0].current)
	assert.Equal(t, StateIdle, changes[1].current)
}

func TestController_MissingColumnsAbortsWithoutSending(t *testing.T) {
	loader := &fakeLoader{err: &domain.MissingColumnsError{Missing: []string{domain.ColumnMessage}}}
	sender := &fakeSender{}
	c := NewController(loader, sender, noopLogger(), nil)
	c.SetForm(validForm)

	events, err := c.Start(context.Background())
	require.NoError(t, err)

	lines, last := drain(events)
	require.Equal(t, EventAborted, last.Kind)
	assert.ErrorIs(t, last.Err, domain.ErrMissingColumns)
	assert.Empty(t, lines)
	assert.Empty(t, sender.Calls())
	assert.Equal(t, StateIdle, c.State())

	_, ok := c.LastResult()
	assert.False(t, ok)
}

func TestController_LoadErrorIsLoggedAndAborts(t *testing.T) {
	loader := &fakeLoader{err: &domain.LoadError{Path: "list.xlsx", Err: assert.AnError}}
	sender := &fakeSender{}
	c := NewController(loader, sender, noopLogger(), nil)
	c.SetForm(validForm)

	events, err := c.Start(context.Background())
	require.NoError(t, err)

	lines, last := drain(events)
	require.Equal(t, EventAborted, last.Kind)
	assert.ErrorIs(t, last.Err, domain.ErrLoad)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[ERROR] An error occurred:")
	assert.Empty(t, sender.Calls())
}

func TestController_SecondStartWhileRunning(t *testing.T) {
	loader := &fakeLoader{rows: []domain.Recipient{{Address: "a@x.com"}}}
	sender := &fakeSender{block: make(chan struct{})}
	c := NewController(loader, sender, noopLogger(), nil)
	c.SetForm(validForm)

	events, err := c.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateRunning, c.State())

	_, err = c.Start(context.Background())
	require.ErrorIs(t, err, domain.ErrAlreadyRunning)

	close(sender.block)
	_, last := drain(events)
	require.Equal(t, EventDone, last.Kind)
	require.NoError(t, c.Wait(time.Second))

	// Idle again, so a new run is accepted.
	sender.block = nil
	events, err = c.Start(context.Background())
	require.NoError(t, err)
	_, last = drain(events)
	assert.Equal(t, 1, last.Result.Sent)
}

func TestController_Preview(t *testing.T) {
	loader := &fakeLoader{rows: make([]domain.Recipient, 3)}
	c := NewController(loader, &fakeSender{}, noopLogger(), nil)

	_, err := c.Preview(context.Background())
	require.ErrorIs(t, err, domain.ErrMissingInput)

	c.SetFilePath("list.csv")
	n, err := c.Preview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "list.csv", c.Form().FilePath)
}
