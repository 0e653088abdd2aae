// Package domain contains the core entities of sheetmail.
//
// It has no dependencies on spreadsheets, SMTP, logging or the GUI.
//
// # Entities
//
//   - [Recipient]: one row of the input table (address, name, message)
//   - [Credentials]: the sender account used to authenticate at the relay
//   - [Result]: the outcome of one run (total, sent, ordered failures)
//
// The composition rules for the personalized message ([Subject], [Body])
// live here as well because they are pure functions of a Recipient.
package domain
