// Package log provides the structured logging abstraction used across
// sheetmail.
//
// Components depend on the Logger interface only. The zerolog adapter is
// the production implementation and the no-op logger is meant for tests:
//
//	logger := log.NewZerologLogger(log.Options{Level: "debug"})
//	logger.Info("run finished", log.Int("sent", 3))
//
// Secrets must never be passed as field values; callers mask them first.
package log
