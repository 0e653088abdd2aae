package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors, checked with errors.Is.
var (
	// ErrMissingInput is returned when the file path, sender address or secret is empty.
	ErrMissingInput = errors.New("sheetmail: all fields must be filled out")

	// ErrMissingColumns is returned when the input table lacks a required header field.
	ErrMissingColumns = errors.New("sheetmail: missing required columns")

	// ErrLoad is returned when the input file cannot be opened or parsed.
	ErrLoad = errors.New("sheetmail: load input")

	// ErrSend is returned when one message could not be delivered.
	ErrSend = errors.New("sheetmail: send")

	// ErrAlreadyRunning is returned when a run is started while another is in flight.
	ErrAlreadyRunning = errors.New("sheetmail: already running")
)

// MissingColumnsError lists the required header fields absent from the table.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("Excel file must contain %s columns (missing: %s)",
		strings.Join(RequiredColumns, ", "), strings.Join(e.Missing, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumns }

// LoadError wraps an unexpected failure to read the input file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

// Unwrap exposes both the cause and ErrLoad.
func (e *LoadError) Unwrap() []error { return []error{ErrLoad, e.Err} }

// SendError wraps the transport, auth or composition failure for one recipient.
type SendError struct {
	Recipient Recipient
	Err       error
}

func (e *SendError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes both the cause and ErrSend.
func (e *SendError) Unwrap() []error { return []error{ErrSend, e.Err} }
