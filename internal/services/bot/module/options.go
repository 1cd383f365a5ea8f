package module

import (
	"time"

	"trainerbot/internal/platform/config"
)

// Options holds configuration settings for the bot module
type Options struct {
	Token       string
	APIURL      string
	PollTimeout time.Duration
	Retries     int
	Workers     int
	MiniAppURL  string

	// InitDataMaxAge rejects stale Mini App payloads, 0 disables the check
	InitDataMaxAge time.Duration
}

// FromConfig reads TELEGRAM_*, BOT_*, MINI_APP_URL and INITDATA_MAX_AGE
// The token and the Mini App url are required and panic when missing
func FromConfig(cfg config.Conf) Options {
	tf := cfg.Prefix("TELEGRAM_")
	bf := cfg.Prefix("BOT_")
	return Options{
		Token:          tf.MustString("BOT_TOKEN"),
		APIURL:         tf.MayString("API_URL", ""),
		PollTimeout:    tf.MayDuration("POLL_TIMEOUT", 30*time.Second),
		Retries:        tf.MayInt("RETRIES", 3),
		Workers:        bf.MayInt("WORKERS", 8),
		MiniAppURL:     cfg.MustURL("MINI_APP_URL").String(),
		InitDataMaxAge: cfg.MayDuration("INITDATA_MAX_AGE", 24*time.Hour),
	}
}
