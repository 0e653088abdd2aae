package domain

import "fmt"

// Column names the input table must expose. Matching is exact and case-sensitive.
const (
	ColumnAddress = "RecipientEmail"
	ColumnName    = "Name"
	ColumnMessage = "Message"
)

// RequiredColumns lists the header fields in the order they are reported when missing.
var RequiredColumns = []string{ColumnAddress, ColumnName, ColumnMessage}

// Signature closes every message body.
const Signature = "Best regards,\nYour Automation Tool"

// Recipient is one row of the input table.
type Recipient struct {
	// Row is the 1-based row number in the source sheet, header included.
	Row int

	Address string
	Name    string
	Message string
}

// Credentials identify the sending account. They live in memory for one run.
type Credentials struct {
	Address string
	Secret  string
}

// Masked returns a copy safe to log.
func (c Credentials) Masked() Credentials {
	if c.Secret != "" {
		c.Secret = "*****"
	}
	return c
}

// Subject returns the personalized subject line for r.
func Subject(r Recipient) string {
	return fmt.Sprintf("Hello, %s!", r.Name)
}

// Body returns the personalized plain-text body for r.
func Body(r Recipient) string {
	return fmt.Sprintf("Dear %s,\n\n%s\n\n%s", r.Name, r.Message, Signature)
}
