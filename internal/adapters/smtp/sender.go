// Package smtp delivers messages through the mail relay with go-mail.
//
// Every Send opens its own connection: dial, STARTTLS, PLAIN auth, one
// message, quit. Nothing is pooled between recipients.
package smtp

import (
	"context"
	"fmt"
	"time"

	mail "github.com/wneessen/go-mail"

	"github.com/bft-labs/sheetmail/internal/domain"
	"github.com/bft-labs/sheetmail/internal/ports"
	"github.com/bft-labs/sheetmail/pkg/log"
)

// Relay endpoint used by the product.
const (
	DefaultHost = "smtp.gmail.com"
	DefaultPort = 587
)

// Option overrides relay settings. The product never sets these; they exist
// so tests can point the sender at a local listener.
type Option func(*options)

type options struct {
	host      string
	port      int
	tlsPolicy mail.TLSPolicy
}

// WithHost overrides the relay host.
func WithHost(host string) Option {
	return func(o *options) { o.host = host }
}

// WithPort overrides the relay port.
func WithPort(port int) Option {
	return func(o *options) { o.port = port }
}

// WithTLSPolicy overrides the STARTTLS policy.
func WithTLSPolicy(p mail.TLSPolicy) Option {
	return func(o *options) { o.tlsPolicy = p }
}

// Sender implements ports.MailSender.
type Sender struct {
	opts   options
	logger ports.Logger
}

// NewSender creates a sender for the fixed relay.
func NewSender(logger ports.Logger, opts ...Option) *Sender {
	o := options{
		host:      DefaultHost,
		port:      DefaultPort,
		tlsPolicy: mail.TLSMandatory,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Sender{opts: o, logger: logger}
}

// Send composes the message for r and transmits it on a fresh connection.
func (s *Sender) Send(ctx context.Context, creds domain.Credentials, r domain.Recipient) error {
	msg, err := composeMessage(creds.Address, r)
	if err != nil {
		return &domain.SendError{Recipient: r, Err: err}
	}

	client, err := s.newClient(creds)
	if err != nil {
		return &domain.SendError{Recipient: r, Err: fmt.Errorf("create client: %w", err)}
	}

	start := time.Now()
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return &domain.SendError{Recipient: r, Err: err}
	}

	s.logger.Debug("message delivered",
		log.String("address", r.Address),
		log.String("relay", fmt.Sprintf("%s:%d", s.opts.host, s.opts.port)),
		log.Duration("duration", time.Since(start)),
	)
	return nil
}

func (s *Sender) newClient(creds domain.Credentials) (*mail.Client, error) {
	return mail.NewClient(s.opts.host,
		mail.WithPort(s.opts.port),
		mail.WithTLSPolicy(s.opts.tlsPolicy),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(creds.Address),
		mail.WithPassword(creds.Secret),
	)
}

// composeMessage builds the single-part plain-text message for r.
// Malformed addresses are rejected here, before any connection is made.
func composeMessage(from string, r domain.Recipient) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", from, err)
	}
	if err := msg.To(r.Address); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", r.Address, err)
	}
	msg.Subject(domain.Subject(r))
	msg.SetBodyString(mail.TypeTextPlain, domain.Body(r))
	return msg, nil
}

var _ ports.MailSender = (*Sender)(nil)
