// Package gui is the fyne front-end of sheetmail.
//
// The window only renders state; form handling, validation, the run state
// machine and the background worker live in app.Controller. Events from the
// worker are applied on the UI thread with fyne.Do.
package gui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/bft-labs/sheetmail/internal/adapters/sheet"
	"github.com/bft-labs/sheetmail/internal/app"
	"github.com/bft-labs/sheetmail/internal/domain"
	"github.com/bft-labs/sheetmail/internal/ports"
	"github.com/bft-labs/sheetmail/internal/watch"
	"github.com/bft-labs/sheetmail/pkg/log"
)

const title = "Email Automation Tool"

// Window is the main application window.
type Window struct {
	app     fyne.App
	window  fyne.Window
	ctrl    *app.Controller
	watcher *watch.Watcher
	logger  ports.Logger

	ctx    context.Context
	cancel context.CancelFunc

	pathLabel     *widget.Label
	previewLabel  *widget.Label
	addressEntry  *widget.Entry
	passwordEntry *widget.Entry
	sendButton    *widget.Button
	copyButton    *widget.Button
	logLabel      *widget.Label
	logScroll     *container.Scroll
	logLines      []string
}

// New builds the window and prefills the form from the controller.
// With watchInput the row preview follows changes to the selected file.
func New(a fyne.App, ctrl *app.Controller, logger ports.Logger, watchInput bool) *Window {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Window{
		app:    a,
		window: a.NewWindow(title),
		ctrl:   ctrl,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
	if watchInput {
		w.watcher = watch.New(watch.DefaultConfig(), logger, w.onInputChanged)
	}
	w.build()

	form := ctrl.Form()
	w.addressEntry.SetText(form.Address)
	w.passwordEntry.SetText(form.Secret)
	if form.FilePath != "" {
		w.setFile(form.FilePath)
	}
	return w
}

// FyneWindow returns the underlying fyne window.
func (w *Window) FyneWindow() fyne.Window {
	return w.window
}

// ShowAndRun shows the window and blocks until it is closed. A run still in
// flight is cancelled; its remaining rows are recorded as failures.
func (w *Window) ShowAndRun() {
	w.window.ShowAndRun()
	w.Close()
}

// Close stops background work started by the window.
func (w *Window) Close() {
	w.cancel()
	if w.watcher != nil {
		w.watcher.Stop()
	}
	if err := w.ctrl.Wait(app.ShutdownTimeout); err != nil {
		w.logger.Warn("run did not finish before exit", log.Err(err))
	}
}

func (w *Window) build() {
	heading := widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	w.pathLabel = widget.NewLabel("No file selected")
	w.pathLabel.Wrapping = fyne.TextWrapWord
	w.previewLabel = widget.NewLabel("")

	w.addressEntry = widget.NewEntry()
	w.addressEntry.SetPlaceHolder("you@gmail.com")
	w.passwordEntry = widget.NewPasswordEntry()

	selectButton := widget.NewButton("Select Excel File", w.selectFile)
	w.sendButton = widget.NewButton("Send Emails", w.startRun)
	w.sendButton.Importance = widget.HighImportance
	w.copyButton = widget.NewButton("Copy Failures", w.copyFailures)
	w.copyButton.Disable()

	w.logLabel = widget.NewLabel("")
	w.logLabel.Wrapping = fyne.TextWrapWord
	w.logScroll = container.NewVScroll(w.logLabel)
	w.logScroll.SetMinSize(fyne.NewSize(480, 200))

	top := container.NewVBox(
		heading,
		selectButton,
		w.pathLabel,
		w.previewLabel,
		widget.NewForm(
			widget.NewFormItem("Sender's Email", w.addressEntry),
			widget.NewFormItem("Email Password", w.passwordEntry),
		),
		container.NewHBox(w.sendButton, w.copyButton),
	)

	w.window.SetContent(container.NewBorder(top, nil, nil, nil, w.logScroll))
	w.window.Resize(fyne.NewSize(520, 560))
}

func (w *Window) selectFile() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		_ = rc.Close()
		w.setFile(path)
	}, w.window)
	fd.SetFilter(storage.NewExtensionFileFilter(sheet.Extensions))
	fd.Show()
}

func (w *Window) setFile(path string) {
	w.ctrl.SetFilePath(path)
	w.pathLabel.SetText(path)
	w.refreshPreview()

	if w.watcher == nil {
		return
	}
	if err := w.watcher.Watch(w.ctx, path); err != nil {
		w.logger.Warn("cannot watch input file", log.String("path", path), log.Err(err))
	}
}

// refreshPreview reloads the row count off the UI thread.
func (w *Window) refreshPreview() {
	w.previewLabel.SetText("Reading file...")
	go func() {
		n, err := w.ctrl.Preview(w.ctx)
		text := fmt.Sprintf("%d recipients", n)
		if err != nil {
			text = previewError(err)
		}
		fyne.Do(func() { w.previewLabel.SetText(text) })
	}()
}

func (w *Window) onInputChanged(path string) {
	fyne.Do(func() {
		if w.ctrl.State() == app.StateIdle && w.ctrl.Form().FilePath == path {
			w.refreshPreview()
		}
	})
}

func (w *Window) startRun() {
	w.ctrl.SetForm(app.Form{
		FilePath: w.ctrl.Form().FilePath,
		Address:  strings.TrimSpace(w.addressEntry.Text),
		Secret:   w.passwordEntry.Text,
	})

	events, err := w.ctrl.Start(w.ctx)
	switch {
	case errors.Is(err, domain.ErrMissingInput):
		dialog.ShowError(errors.New("All fields must be filled out."), w.window)
		return
	case err != nil:
		w.logger.Warn("run not started", log.Err(err))
		return
	}

	w.sendButton.Disable()
	w.copyButton.Disable()
	go w.consume(events)
}

func (w *Window) consume(events <-chan app.Event) {
	for ev := range events {
		fyne.Do(func() { w.handle(ev) })
	}
	fyne.Do(func() { w.sendButton.Enable() })
}

func (w *Window) handle(ev app.Event) {
	switch ev.Kind {
	case app.EventLog:
		w.appendLog(ev.Line)
	case app.EventDone:
		out := ev.Result.Outcome()
		if !out.Success {
			w.copyButton.Enable()
		}
		outcomeDialog(out, w.window).Show()
	case app.EventAborted:
		dialog.ShowError(ev.Err, w.window)
	}
}

// outcomeDialog is an information dialog on full success and a warning otherwise.
func outcomeDialog(out domain.Outcome, parent fyne.Window) dialog.Dialog {
	if out.Success {
		return dialog.NewInformation(out.Title, out.Message, parent)
	}
	content := container.NewHBox(widget.NewIcon(theme.WarningIcon()), widget.NewLabel(out.Message))
	return dialog.NewCustom(out.Title, "OK", content, parent)
}

func (w *Window) appendLog(line string) {
	w.logLines = append(w.logLines, line)
	w.logLabel.SetText(strings.Join(w.logLines, "\n"))
	w.logScroll.ScrollToBottom()
}

func (w *Window) copyFailures() {
	res, ok := w.ctrl.LastResult()
	if !ok {
		return
	}
	text, err := app.FailuresCSV(res)
	if err != nil {
		dialog.ShowError(err, w.window)
		return
	}
	w.window.Clipboard().SetContent(text)
	w.appendLog(fmt.Sprintf("Copied %d failed rows to the clipboard.", res.Failed()))
}

func previewError(err error) string {
	var mc *domain.MissingColumnsError
	if errors.As(err, &mc) {
		return "Missing columns: " + strings.Join(mc.Missing, ", ")
	}
	return "Cannot read file: " + err.Error()
}
