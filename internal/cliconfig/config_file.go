package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig is the TOML representation of Config.
type FileConfig struct {
	FilePath   string `toml:"file"`
	From       string `toml:"from"`
	Password   string `toml:"password"`
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`
	WatchInput *bool  `toml:"watch_input"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.sheetmail/config.toml, or "" without a home directory.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".sheetmail", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file, respecting changed flags.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	if fc.Password != "" {
		return errPasswordInFile
	}

	s := newConfigSetter(changed)
	s.setString("file", fc.FilePath, &cfg.FilePath)
	s.setString("from", fc.From, &cfg.From)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)
	s.setBool("watch", fc.WatchInput, &cfg.WatchInput)
	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
