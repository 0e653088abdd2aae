package cliconfig

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Load resolves the configuration: defaults, then the config file, then the
// environment, with explicitly set flags always winning. cfg must already
// hold the flag values.
func Load(cfg *Config, cfgPath string, flags *pflag.FlagSet) error {
	changed := map[string]bool{}
	if flags != nil {
		flags.Visit(func(f *pflag.Flag) { changed[f.Name] = true })
	}

	if cfgPath == "" {
		cfgPath = DefaultConfigPath()
	}
	if cfgPath != "" && FileExists(cfgPath) {
		fc, err := LoadFileConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	ApplyEnvConfig(cfg, changed)
	return cfg.Validate()
}
