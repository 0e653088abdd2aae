package ports

import (
	"context"

	"github.com/bft-labs/sheetmail/internal/domain"
)

// MailSender delivers one message per call.
type MailSender interface {
	// Send composes and transmits the message for r, authenticating with creds.
	// Any failure is returned as *domain.SendError.
	Send(ctx context.Context, creds domain.Credentials, r domain.Recipient) error
}

// MailSenderFunc adapts a function to MailSender.
type MailSenderFunc func(ctx context.Context, creds domain.Credentials, r domain.Recipient) error

// Send calls f.
func (f MailSenderFunc) Send(ctx context.Context, creds domain.Credentials, r domain.Recipient) error {
	return f(ctx, creds, r)
}
