package module

import "trainerbot/internal/platform/config"

// Options holds configuration settings for the materials module
type Options struct {
	// File is a YAML registry, empty uses the built in table
	File string
	// DefaultTask overrides the default named by the registry
	DefaultTask string
}

// FromConfig reads MATERIALS_* settings
func FromConfig(cfg config.Conf) Options {
	mf := cfg.Prefix("MATERIALS_")
	return Options{
		File:        mf.MayString("FILE", ""),
		DefaultTask: mf.MayString("DEFAULT_TASK", ""),
	}
}
