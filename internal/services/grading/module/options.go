package module

import (
	"time"

	"trainerbot/internal/platform/config"
	"trainerbot/internal/services/grading/service"
)

// Options holds configuration settings for the grading module
type Options struct {
	Timeout time.Duration

	// DrainTimeout bounds how long shutdown waits for background gradings
	DrainTimeout time.Duration
}

// FromConfig reads GRADING_* settings
func FromConfig(cfg config.Conf) Options {
	gf := cfg.Prefix("GRADING_")
	return Options{
		Timeout:      gf.MayDuration("TIMEOUT", service.DefaultTimeout),
		DrainTimeout: gf.MayDuration("DRAIN_TIMEOUT", 30*time.Second),
	}
}
