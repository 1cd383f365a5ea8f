package middleware

import (
	"net/http"
	"time"

	pstrings "trainerbot/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID reads or mints X-Request-ID and stores it on the context
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP rewrites RemoteAddr from the forwarding headers of the ingress proxy
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// Timeout cancels the request context after d
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// NoCache disables client caching, init data bound responses are per user
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// CORSOptions is the subset of go-chi/cors the Mini App needs
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// InitDataHeader carries the raw Mini App init data on every web app request
const InitDataHeader = "X-Telegram-Init-Data"

// CORS lets the Mini App origin call the API with the init data header
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"https://*"}),
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
			InitDataHeader,
		}),
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         o.MaxAge,
	})
}

// Defaults is the stack every API router starts with
func Defaults(timeout time.Duration) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		RealIP(),
		RequestID(),
		RecoverJSON,
		Timeout(timeout),
		NoCache(),
	}
}
