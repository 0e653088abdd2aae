package domain

import "fmt"

// Failure records one row that could not be delivered.
// The csv tags reuse the input header names so an exported failure list can be loaded again.
type Failure struct {
	Address string `csv:"RecipientEmail"`
	Name    string `csv:"Name"`
	Message string `csv:"Message"`
	Err     string `csv:"Error"`
}

// Result is the outcome of a run.
// It maintains the invariant Sent + len(Failures) == Total once every row is recorded.
type Result struct {
	Total    int
	Sent     int
	Failures []Failure
}

// NewResult creates an empty result expecting total rows.
func NewResult(total int) Result {
	return Result{Total: total, Failures: make([]Failure, 0)}
}

// RecordSent counts a delivered row.
func (r *Result) RecordSent() {
	r.Sent++
}

// RecordFailure appends a failed row.
func (r *Result) RecordFailure(rec Recipient, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	r.Failures = append(r.Failures, Failure{
		Address: rec.Address,
		Name:    rec.Name,
		Message: rec.Message,
		Err:     msg,
	})
}

// Failed returns the number of failed rows.
func (r Result) Failed() int {
	return len(r.Failures)
}

// Complete reports whether every row has an outcome.
func (r Result) Complete() bool {
	return r.Sent+len(r.Failures) == r.Total
}

// AllSent reports whether the run was a full success.
func (r Result) AllSent() bool {
	return r.Sent == r.Total
}

// Outcome is the text of the terminal dialog for a finished run.
type Outcome struct {
	Success bool
	Title   string
	Message string
}

// Outcome derives the terminal dialog from the result.
func (r Result) Outcome() Outcome {
	if r.AllSent() {
		return Outcome{
			Success: true,
			Title:   "Success",
			Message: "All emails were sent successfully!",
		}
	}
	return Outcome{
		Title:   "Partial Success",
		Message: fmt.Sprintf("Emails sent: %d/%d\nErrors encountered: %d", r.Sent, r.Total, r.Failed()),
	}
}
