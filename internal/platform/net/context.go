// Package net carries request scoped identity between the HTTP middleware and handlers
package net

import (
	"context"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyPrincipal ctxKey = "principal"

// Principal is the Telegram user a verified init data payload speaks for
type Principal struct {
	UserID       int64
	Username     string
	FirstName    string
	LanguageCode string
	// QueryID is set when the Mini App was opened from an inline keyboard
	QueryID  string
	AuthDate time.Time
}

// WithRequestID stores id where chi's RequestID middleware would
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, id)
}

// RequestID returns the request id on ctx, empty when absent
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithPrincipal stores the verified caller on ctx
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, keyPrincipal, p)
}

// PrincipalFrom returns the verified caller, ok is false on unauthenticated routes
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(keyPrincipal).(Principal)
	return p, ok
}
