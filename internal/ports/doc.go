// Package ports defines the interfaces that connect the application layer
// to infrastructure adapters.
//
// # Port Interfaces
//
//   - [RecipientLoader]: reads the input table into recipients
//   - [MailSender]: delivers one personalized message through the relay
//   - [Logger]: structured logging abstraction
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters (internal/adapters) implement them with excelize, go-mail and
// zerolog, which keeps the batch loop testable with in-memory fakes.
package ports
