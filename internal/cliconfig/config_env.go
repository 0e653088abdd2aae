package cliconfig

import "os"

// ApplyEnvConfig applies SHEETMAIL_* environment variables, respecting changed flags.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("file", os.Getenv(EnvPrefix+"FILE"), &cfg.FilePath)
	s.setString("from", os.Getenv(EnvPrefix+"FROM"), &cfg.From)
	s.setString("password", os.Getenv(EnvPrefix+"PASSWORD"), &cfg.Password)
	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv(EnvPrefix+"LOG_FORMAT"), &cfg.LogFormat)
	s.setBoolFromString("watch", os.Getenv(EnvPrefix+"WATCH_INPUT"), &cfg.WatchInput)
}
