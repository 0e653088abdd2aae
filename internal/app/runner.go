package app

import (
	"context"
	"fmt"

	"github.com/bft-labs/sheetmail/internal/domain"
	"github.com/bft-labs/sheetmail/internal/ports"
	"github.com/bft-labs/sheetmail/pkg/log"
)

// LineFunc receives human-readable log lines in the order they are produced.
type LineFunc func(line string)

// Runner sends one message per row, strictly in row order.
type Runner struct {
	sender ports.MailSender
	logger ports.Logger
}

// NewRunner creates a batch runner.
func NewRunner(sender ports.MailSender, logger ports.Logger) *Runner {
	return &Runner{sender: sender, logger: logger}
}

// Run processes every row and returns the result. A failed row never stops
// the loop. Once ctx is done the remaining rows are recorded as failures
// without a send attempt. emit may be nil.
func (r *Runner) Run(ctx context.Context, creds domain.Credentials, rows []domain.Recipient, emit LineFunc) domain.Result {
	if emit == nil {
		emit = func(string) {}
	}

	res := domain.NewResult(len(rows))
	emit(fmt.Sprintf("Starting to send %d emails...", res.Total))
	r.logger.Info("run started",
		log.Int("total", res.Total),
		log.Any("credentials", creds.Masked()),
	)

	for _, row := range rows {
		err := ctx.Err()
		if err == nil {
			err = r.sender.Send(ctx, creds, row)
		}
		if err != nil {
			res.RecordFailure(row, err)
			emit(fmt.Sprintf("[ERROR] Could not send email to: %s. Error: %v", row.Address, err))
			r.logger.Warn("send failed",
				log.Int("row", row.Row),
				log.String("name", row.Name),
				log.String("address", row.Address),
				log.Err(err),
			)
			continue
		}

		res.RecordSent()
		emit(fmt.Sprintf("[SUCCESS] Email sent to: %s", row.Address))
		r.logger.Info("email sent",
			log.Int("row", row.Row),
			log.String("name", row.Name),
			log.String("address", row.Address),
		)
	}

	for _, line := range SummaryLines(res) {
		emit(line)
	}
	r.logger.Info("run finished",
		log.Int("total", res.Total),
		log.Int("sent", res.Sent),
		log.Int("failed", res.Failed()),
		log.Bool("all_sent", res.AllSent()),
	)
	return res
}

// SummaryLines renders the end-of-run report.
func SummaryLines(res domain.Result) []string {
	lines := []string{
		"",
		"--- Email Sending Summary ---",
		fmt.Sprintf("Total Emails: %d", res.Total),
		fmt.Sprintf("Successfully Sent: %d", res.Sent),
		fmt.Sprintf("Failed: %d", res.Failed()),
	}
	if res.Failed() == 0 {
		return lines
	}

	lines = append(lines, "", "--- Failed Emails ---")
	for _, f := range res.Failures {
		lines = append(lines, fmt.Sprintf("Name: %s, Email: %s, Error: %s", f.Name, f.Address, f.Err))
	}
	return lines
}
