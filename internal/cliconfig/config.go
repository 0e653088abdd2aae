package cliconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bft-labs/sheetmail/pkg/log"
)

// EnvPrefix prefixes every environment variable read by sheetmail.
const EnvPrefix = "SHEETMAIL_"

// Config holds CLI configuration for sheetmail.
type Config struct {
	// FilePath prefills the input file.
	FilePath string
	// From prefills the sender address.
	From string
	// Password is the sender secret. Only flags and the environment may set it.
	Password string

	LogLevel  string
	LogFormat string

	// WatchInput refreshes the row preview when the input file changes.
	WatchInput bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		LogLevel:   "info",
		LogFormat:  log.FormatConsole,
		WatchInput: true,
	}
}

// Validate checks the configuration for errors and normalizes values.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case "":
		c.LogFormat = log.FormatConsole
	case log.FormatConsole, log.FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q (want console or json)", c.LogFormat)
	}
	return nil
}

// Masked returns a copy safe to log.
func (c Config) Masked() Config {
	if c.Password != "" {
		c.Password = "*****"
	}
	return c
}

// errPasswordInFile rejects secrets stored on disk.
var errPasswordInFile = errors.New("password must not be stored in the config file; use " + EnvPrefix + "PASSWORD or --password")

// configSetter applies values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
