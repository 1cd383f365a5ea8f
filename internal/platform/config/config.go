// Package config reads process configuration from environment variables
//
// Binaries call LoadDotenv first so a local .env can stand in for the real environment,
// then read their keys through a prefixed Conf (TELEGRAM_, GRADER_, CORE_API_ ...).
// Must* helpers panic on missing or malformed values, May* helpers fall back to a default
package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"trainerbot/internal/platform/logger"

	"github.com/joho/godotenv"
)

// LoadDotenv loads the given env files, or ".env" when none are named, and returns the
// ones it found. Variables already set in the process win. Missing files are skipped
// It runs before the logger exists so LOG_* can come from the file too
func LoadDotenv(files ...string) ([]string, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var loaded []string
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, err
		}
		loaded = append(loaded, f)
	}
	return loaded, nil
}

// Conf is a prefixed view over the environment
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix returns a child view, prefixes stack
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) get(key string) string { return strings.TrimSpace(os.Getenv(c.key(key))) }

func (c Conf) missing(key string) {
	logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
}

func (c Conf) invalid(key, value, want string) {
	logger.Get().Panic().Str("key", c.key(key)).Str("value", value).Msg("invalid env value, expected " + want)
}

func (c Conf) fallback(key, value string) {
	logger.Get().Warn().Str("key", c.key(key)).Str("value", value).Msg("invalid env value, using default")
}

// MustString returns the value of key or panics when it is empty
func (c Conf) MustString(key string) string {
	v := c.get(key)
	if v == "" {
		c.missing(key)
	}
	return v
}

// MustInt returns key as an int or panics
func (c Conf) MustInt(key string) int {
	s := c.MustString(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		c.invalid(key, s, "int")
	}
	return v
}

// MustDuration returns key as a duration (250ms, 20s) or panics
func (c Conf) MustDuration(key string) time.Duration {
	s := c.MustString(key)
	d, err := time.ParseDuration(s)
	if err != nil {
		c.invalid(key, s, "duration")
	}
	return d
}

// MustURL returns key as an absolute URL or panics
func (c Conf) MustURL(key string) *url.URL {
	s := c.MustString(key)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		c.invalid(key, s, "absolute url")
	}
	return u
}

// MayPort returns a listen address like ":4000" from key, def when empty
// An out of range port panics, a typo here would otherwise bind a random port
func (c Conf) MayPort(key string, def int) string {
	s := c.get(key)
	if s == "" {
		return ":" + strconv.Itoa(def)
	}
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		c.invalid(key, s, "tcp port 1..65535")
	}
	return ":" + s
}

// MayString returns the value of key or def
func (c Conf) MayString(key, def string) string {
	if v := c.get(key); v != "" {
		return v
	}
	return def
}

// MayInt returns key as an int, def when empty or malformed
func (c Conf) MayInt(key string, def int) int {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		c.fallback(key, s)
		return def
	}
	return v
}

// MayBool returns key as a bool, def when empty or malformed
func (c Conf) MayBool(key string, def bool) bool {
	s := c.get(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		c.fallback(key, s)
		return def
	}
	return v
}

// MayDuration returns key as a duration, def when empty or malformed
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.get(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		c.fallback(key, s)
		return def
	}
	return d
}

// MayCSV splits a comma separated value, dropping blanks; def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for p := range strings.SplitSeq(c.get(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns key lowercased when it is one of allowed, def when empty, panics otherwise
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.get(key)
	if v == "" {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
