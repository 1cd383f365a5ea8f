package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	stderrs "errors"
	"strings"
	"testing"
	"time"

	perr "trainerbot/internal/platform/errors"
)

// refHash computes the signature independently of the package helpers
func refHash(token, check string) string {
	k := hmac.New(sha256.New, []byte("WebAppData"))
	k.Write([]byte(token))
	m := hmac.New(sha256.New, k.Sum(nil))
	m.Write([]byte(check))
	return hex.EncodeToString(m.Sum(nil))
}

func TestVerify_KnownSecret(t *testing.T) {
	t.Parallel()

	good := "a=1&b=2&hash=" + refHash("S", "a=1\nb=2")
	if !Valid(good, "S") {
		t.Fatalf("expected payload signed with S to verify")
	}

	// any other hex string must fail
	bad := "a=1&b=2&hash=" + strings.Repeat("0", 64)
	if Valid(bad, "S") {
		t.Fatalf("expected tampered hash to fail")
	}

	// wrong credential
	if Valid(good, "T") {
		t.Fatalf("expected payload to fail with a different bot token")
	}
}

func TestVerify_ErrorKinds(t *testing.T) {
	t.Parallel()

	v := NewVerifier("S")
	sig := refHash("S", "a=1\nb=2")

	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"missing hash", "a=1&b=2", ErrMissingSignature},
		{"empty hash", "a=1&b=2&hash=", ErrMissingSignature},
		{"mismatch", "a=1&b=3&hash=" + sig, ErrSignatureMismatch},
		{"uppercase hash is not the digest", "a=1&b=2&hash=" + strings.ToUpper(sig), ErrSignatureMismatch},
		{"bad escape in value", "a=%zz&hash=" + sig, ErrDecode},
		{"bad escape in key", "%g1=1&hash=" + sig, ErrDecode},
		{"empty key", "=1&hash=" + sig, ErrDecode},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := v.Verify(c.raw)
			if !stderrs.Is(err, c.want) {
				t.Fatalf("Verify(%q) err = %v, want %v", c.raw, err, c.want)
			}
			if perr.CodeOf(err) != perr.ErrorCodeUnauthorized {
				t.Fatalf("code = %v, want Unauthorized", perr.CodeOf(err))
			}
		})
	}
}

func TestVerify_FieldOrderIndependent(t *testing.T) {
	t.Parallel()

	sig := refHash("S", "a=1\nb=2\nc=x y")
	orders := []string{
		"a=1&b=2&c=x+y&hash=" + sig,
		"c=x%20y&a=1&b=2&hash=" + sig,
		"hash=" + sig + "&b=2&c=x+y&a=1",
	}
	for _, raw := range orders {
		if !Valid(raw, "S") {
			t.Fatalf("expected %q to verify", raw)
		}
	}
}

func TestVerify_HashRemovedBeforeDecoding(t *testing.T) {
	t.Parallel()

	signed := Sign("S", []Field{{"a", "1"}, {"b", "2"}})
	i := strings.Index(signed, "&hash=")
	if i < 0 {
		t.Fatalf("signed payload has no hash: %q", signed)
	}
	if Valid(signed[:i], "S") {
		t.Fatalf("expected payload without hash to fail")
	}
}

func TestVerify_SingleByteMutation(t *testing.T) {
	t.Parallel()

	raw := Sign("bot:token", []Field{
		{"auth_date", "1717171717"},
		{"query_id", "AAF-xyz"},
		{"user", `{"id":42,"first_name":"Ann"}`},
	})
	if !Valid(raw, "bot:token") {
		t.Fatalf("expected signed payload to verify")
	}

	for i := 0; i < len(raw); i++ {
		b := []byte(raw)
		b[i] ^= 0x01
		if Valid(string(b), "bot:token") {
			t.Fatalf("mutation at byte %d (%q) still verified", i, string(b))
		}
	}
}

// Repeated keys resolve to the last value, both for checking and for Get
func TestParse_RepeatedKeysLastWins(t *testing.T) {
	t.Parallel()

	sig := refHash("S", "a=2\nb=1")
	raw := "a=1&b=1&a=2&hash=" + sig
	p, err := NewVerifier("S").Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if v, _ := p.Get("a"); v != "2" {
		t.Fatalf("a = %q, want 2", v)
	}
	fs := p.Fields()
	if len(fs) != 2 || fs[0].Key != "a" || fs[1].Key != "b" {
		t.Fatalf("fields = %+v, want a then b", fs)
	}

	// signing with the first value must not verify
	firstWins := "a=1&b=1&a=2&hash=" + refHash("S", "a=1\nb=1")
	if Valid(firstWins, "S") {
		t.Fatalf("first wins signature must be rejected")
	}

	// repeated hash also resolves to the last one
	if !Valid("a=2&b=1&hash=deadbeef&hash="+sig, "S") {
		t.Fatalf("expected last hash occurrence to be used")
	}
}

func TestSign_RoundTripsThroughParse(t *testing.T) {
	t.Parallel()

	in := []Field{{"user", `{"id":7,"username":"neo"}`}, {"note", "a&b=c d"}, {"note", "final"}}
	raw := Sign("S", in)
	p, err := NewVerifier("S").Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if v, _ := p.Get("note"); v != "final" {
		t.Fatalf("note = %q, want final", v)
	}
	u, err := p.User()
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if u.ID != 7 || u.Username != "neo" {
		t.Fatalf("user = %+v", u)
	}
}

func TestVerify_MaxAge(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	fresh := Sign("S", []Field{{"auth_date", "1699999000"}})
	stale := Sign("S", []Field{{"auth_date", "1690000000"}})
	undated := Sign("S", []Field{{"a", "1"}})

	v := NewVerifier("S", WithMaxAge(time.Hour), WithClock(func() time.Time { return now }))
	if _, err := v.Verify(fresh); err != nil {
		t.Fatalf("fresh: %v", err)
	}
	if _, err := v.Verify(stale); !stderrs.Is(err, ErrExpired) {
		t.Fatalf("stale err = %v, want ErrExpired", err)
	}
	if _, err := v.Verify(undated); !stderrs.Is(err, ErrExpired) {
		t.Fatalf("undated err = %v, want ErrExpired", err)
	}

	// max age disabled accepts everything signed
	if _, err := NewVerifier("S").Verify(stale); err != nil {
		t.Fatalf("no max age: %v", err)
	}
}

func TestPayload_UserErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		code perr.ErrorCode
	}{
		{"absent", "a=1", perr.ErrorCodeNotFound},
		{"not json", "user=nope", perr.ErrorCodeInvalidArgument},
		{"no id", "user=%7B%7D", perr.ErrorCodeInvalidArgument},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := Parse(c.raw)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if _, err := p.User(); perr.CodeOf(err) != c.code {
				t.Fatalf("User() code = %v, want %v (err %v)", perr.CodeOf(err), c.code, err)
			}
		})
	}
}

func TestPayload_AuthDateAndQueryID(t *testing.T) {
	t.Parallel()

	p, err := Parse("auth_date=1700000000&query_id=Q1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := p.AuthDate(); !got.Equal(time.Unix(1_700_000_000, 0)) {
		t.Fatalf("AuthDate = %v", got)
	}
	if p.QueryID() != "Q1" {
		t.Fatalf("QueryID = %q", p.QueryID())
	}

	p, _ = Parse("auth_date=soon")
	if !p.AuthDate().IsZero() {
		t.Fatalf("invalid auth_date should be zero")
	}
}
