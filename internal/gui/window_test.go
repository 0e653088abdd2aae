package gui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/sheetmail/internal/app"
	"github.com/bft-labs/sheetmail/internal/domain"
	"github.com/bft-labs/sheetmail/pkg/log"
)

type stubLoader struct {
	rows []domain.Recipient
	err  error
}

func (l stubLoader) Load(ctx context.Context, path string) ([]domain.Recipient, error) {
	return l.rows, l.err
}

type countingSender struct {
	mu    sync.Mutex
	calls int
}

func (s *countingSender) Send(ctx context.Context, creds domain.Credentials, r domain.Recipient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if !strings.Contains(r.Address, "@") {
		return &domain.SendError{Recipient: r, Err: assert.AnError}
	}
	return nil
}

func (s *countingSender) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestWindow(t *testing.T, loader stubLoader, sender *countingSender, form app.Form) (*Window, *app.Controller) {
	t.Helper()

	a := test.NewApp()
	t.Cleanup(a.Quit)

	ctrl := app.NewController(loader, sender, log.NewNoopLogger(), nil)
	ctrl.SetForm(form)
	w := New(a, ctrl, log.NewNoopLogger(), false)
	t.Cleanup(w.Close)
	return w, ctrl
}

func logText(w *Window) string {
	return w.logLabel.Text
}

func TestWindow_MissingInputShowsErrorAndSendsNothing(t *testing.T) {
	sender := &countingSender{}
	w, ctrl := newTestWindow(t, stubLoader{rows: []domain.Recipient{{Address: "a@x.com"}}}, sender,
		app.Form{FilePath: "list.xlsx", Address: "me@x.com"})

	test.Tap(w.sendButton)

	assert.Equal(t, app.StateIdle, ctrl.State())
	assert.NotNil(t, w.FyneWindow().Canvas().Overlays().Top(), "error dialog expected")
	assert.Zero(t, sender.Calls())
	assert.False(t, w.sendButton.Disabled())
}

func TestWindow_RunLogsAndReenablesSend(t *testing.T) {
	sender := &countingSender{}
	rows := []domain.Recipient{
		{Address: "a@x.com", Name: "Alice", Message: "Hi"},
		{Address: "bad", Name: "Bob", Message: "Hi"},
	}
	w, ctrl := newTestWindow(t, stubLoader{rows: rows}, sender,
		app.Form{FilePath: "list.xlsx", Address: "me@x.com", Secret: "pw"})

	test.Tap(w.sendButton)

	require.Eventually(t, func() bool {
		return ctrl.State() == app.StateIdle && strings.Contains(logText(w), "--- Failed Emails ---")
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, ctrl.Wait(time.Second))

	text := logText(w)
	assert.True(t, strings.HasPrefix(text, "Starting to send 2 emails..."))
	assert.Less(t, strings.Index(text, "a@x.com"), strings.Index(text, "Email: bad"))
	assert.Equal(t, 2, sender.Calls())

	require.Eventually(t, func() bool { return !w.sendButton.Disabled() }, time.Second, 10*time.Millisecond)
	assert.False(t, w.copyButton.Disabled())

	res, ok := ctrl.LastResult()
	require.True(t, ok)
	assert.Equal(t, 1, res.Sent)
}

func TestWindow_CopyFailures(t *testing.T) {
	sender := &countingSender{}
	w, ctrl := newTestWindow(t, stubLoader{rows: []domain.Recipient{{Address: "bad", Name: "Bob", Message: "Hi"}}}, sender,
		app.Form{FilePath: "list.xlsx", Address: "me@x.com", Secret: "pw"})

	events, err := ctrl.Start(context.Background())
	require.NoError(t, err)
	for range events {
	}

	w.copyFailures()
	clip := w.FyneWindow().Clipboard().Content()
	assert.True(t, strings.HasPrefix(clip, "RecipientEmail,Name,Message,Error\n"))
	assert.Contains(t, clip, "bad,Bob,Hi,")
}

func TestPreviewError(t *testing.T) {
	assert.Equal(t, "Missing columns: Name, Message",
		previewError(&domain.MissingColumnsError{Missing: []string{"Name", "Message"}}))
	assert.Contains(t, previewError(&domain.LoadError{Path: "x.xls", Err: assert.AnError}), "Cannot read file: load x.xls")
}

func TestOutcomeDialog(t *testing.T) {
	a := test.NewApp()
	t.Cleanup(a.Quit)
	win := a.NewWindow("outcome")

	full := outcomeDialog(domain.Result{Total: 1, Sent: 1}.Outcome(), win)
	_, isCustom := full.(*dialog.CustomDialog)
	assert.False(t, isCustom, "full success uses the information dialog")

	partial := outcomeDialog(domain.Result{Total: 2, Sent: 1, Failures: []domain.Failure{{Address: "bad"}}}.Outcome(), win)
	_, isCustom = partial.(*dialog.CustomDialog)
	assert.True(t, isCustom, "partial success uses the warning dialog")
}
