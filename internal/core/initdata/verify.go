package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"time"
)

// Verifier checks payloads against one bot token
// The derived secret is computed once and never changes for the lifetime of the value
type Verifier struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// Option mutates a Verifier
type Option func(*Verifier)

// WithMaxAge rejects payloads whose auth_date is older than d, 0 disables the check
func WithMaxAge(d time.Duration) Option {
	return func(v *Verifier) { v.maxAge = d }
}

// WithClock overrides time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(v *Verifier) { v.now = now }
}

// NewVerifier derives the secret for botToken
func NewVerifier(botToken string, opts ...Option) *Verifier {
	v := &Verifier{
		secret: SecretKey(botToken),
		now:    time.Now,
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// SecretKey derives the verification secret from the bot token
func SecretKey(botToken string) []byte {
	mac := hmac.New(sha256.New, []byte(webAppDataKey))
	mac.Write([]byte(botToken))
	return mac.Sum(nil)
}

// Verify decodes raw and checks its signature, returning the trusted payload
func (v *Verifier) Verify(raw string) (Payload, error) {
	p, err := Parse(raw)
	if err != nil {
		return Payload{}, err
	}
	if p.hash == "" {
		return Payload{}, ErrMissingSignature
	}

	want := digest(v.secret, p.CheckString())
	// compare hex strings as bytes in constant time
	if !hmac.Equal([]byte(want), []byte(p.hash)) {
		return Payload{}, ErrSignatureMismatch
	}

	if v.maxAge > 0 {
		at := p.AuthDate()
		if at.IsZero() || v.now().Sub(at) > v.maxAge {
			return Payload{}, ErrExpired
		}
	}
	return p, nil
}

// Valid reports whether raw was signed with botToken
func Valid(raw, botToken string) bool {
	_, err := NewVerifier(botToken).Verify(raw)
	return err == nil
}

// Sign renders fields as a query string and appends the matching hash
// Used by tests and the cli to produce payloads the platform would send
// Repeated keys collapse with the same last wins rule Parse applies
func Sign(botToken string, fields []Field) string {
	fields = collapse(fields)
	hash := digest(SecretKey(botToken), checkString(fields))

	parts := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		parts = append(parts, url.QueryEscape(f.Key)+"="+url.QueryEscape(f.Value))
	}
	parts = append(parts, HashKey+"="+hash)
	return strings.Join(parts, "&")
}

func digest(secret []byte, msg string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}

// collapse drops hash fields and applies last wins to repeated keys
func collapse(fields []Field) []Field {
	idx := make(map[string]int, len(fields))
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.Key == HashKey {
			continue
		}
		if i, ok := idx[f.Key]; ok {
			out[i].Value = f.Value
			continue
		}
		idx[f.Key] = len(out)
		out = append(out, f)
	}
	return out
}
