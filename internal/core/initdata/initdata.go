// Package initdata verifies Telegram Mini App init data
//
// The web front-end receives a query-string payload from the platform and relays it to
// us unchanged. The payload carries a `hash` field computed as
//
//	secret = HMAC_SHA256(key="WebAppData", msg=botToken)
//	hash   = hex(HMAC_SHA256(key=secret, msg=checkString))
//
// where checkString is every other field rendered as `key=value`, sorted and joined with
// '\n'. Anything we cannot decode, anything without a hash, and anything whose hash
// does not match is rejected outright.
//
// Repeated keys: the last occurrence wins. The field keeps the position of its first
// occurrence, which only matters for Fields() since the check string is sorted anyway.
package initdata

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	perr "trainerbot/internal/platform/errors"
)

// HashKey is the field carrying the signature
const HashKey = "hash"

// webAppDataKey is the fixed HMAC key used to derive the secret from the bot token
const webAppDataKey = "WebAppData"

var (
	// ErrDecode is returned when the payload is not a well formed query string
	ErrDecode = perr.New(perr.ErrorCodeUnauthorized, "init data: malformed encoding")

	// ErrMissingSignature is returned when the payload carries no hash
	ErrMissingSignature = perr.New(perr.ErrorCodeUnauthorized, "init data: missing signature")

	// ErrSignatureMismatch is returned when the computed digest differs from the hash
	ErrSignatureMismatch = perr.New(perr.ErrorCodeUnauthorized, "init data: signature mismatch")

	// ErrExpired is returned when auth_date is older than the verifier max age
	ErrExpired = perr.New(perr.ErrorCodeUnauthorized, "init data: expired")
)

// Field is one decoded key value pair
type Field struct {
	Key   string
	Value string
}

// Payload is a decoded init data string with the hash split off
type Payload struct {
	fields []Field
	index  map[string]int
	hash   string
}

// Parse decodes raw into a Payload. It does not check the signature
// A payload without a hash parses fine, Verify is the one that rejects it
func Parse(raw string) (Payload, error) {
	p := Payload{index: map[string]int{}}

	for seg := range strings.SplitSeq(raw, "&") {
		if seg == "" {
			continue
		}
		k, v, _ := strings.Cut(seg, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return Payload{}, fmt.Errorf("%w: key %q: %v", ErrDecode, k, err)
		}
		if key == "" {
			return Payload{}, fmt.Errorf("%w: empty key", ErrDecode)
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			return Payload{}, fmt.Errorf("%w: value for %q: %v", ErrDecode, key, err)
		}

		if key == HashKey {
			p.hash = val
			continue
		}
		if i, ok := p.index[key]; ok {
			p.fields[i].Value = val
			continue
		}
		p.index[key] = len(p.fields)
		p.fields = append(p.fields, Field{Key: key, Value: val})
	}

	return p, nil
}

// Hash returns the signature carried by the payload, empty when absent
func (p Payload) Hash() string { return p.hash }

// Fields returns the signed fields in first occurrence order
func (p Payload) Fields() []Field {
	out := make([]Field, len(p.fields))
	copy(out, p.fields)
	return out
}

// Get returns the value of key
func (p Payload) Get(key string) (string, bool) {
	i, ok := p.index[key]
	if !ok {
		return "", false
	}
	return p.fields[i].Value, true
}

// CheckString renders the canonical string the signature is computed over
func (p Payload) CheckString() string {
	return checkString(p.fields)
}

func checkString(fields []Field) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Key == HashKey {
			continue
		}
		lines = append(lines, f.Key+"="+f.Value)
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

// QueryID returns the inline query id used by answerWebAppQuery
func (p Payload) QueryID() string {
	v, _ := p.Get("query_id")
	return v
}

// AuthDate returns the platform timestamp of the payload, zero when absent or invalid
func (p Payload) AuthDate() time.Time {
	v, ok := p.Get("auth_date")
	if !ok {
		return time.Time{}
	}
	sec, err := strconv.ParseInt(v, 10, 64)
	if err != nil || sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// User is the subset of the Telegram WebAppUser we rely on
type User struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// User decodes the JSON user field
func (p Payload) User() (User, error) {
	raw, ok := p.Get("user")
	if !ok {
		return User{}, perr.NotFoundf("init data: no user field")
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return User{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "init data: invalid user field")
	}
	if u.ID == 0 {
		return User{}, perr.InvalidArgf("init data: user without id")
	}
	return u, nil
}
