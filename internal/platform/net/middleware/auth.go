package middleware

import (
	"net/http"

	"trainerbot/internal/platform/logger"
	pnet "trainerbot/internal/platform/net"
)

// AuthPort establishes who is calling, the web app module backs it with init data verification
type AuthPort interface {
	Authenticate(r *http.Request) (pnet.Principal, error)
}

// AuthFunc adapts a function to AuthPort
type AuthFunc func(r *http.Request) (pnet.Principal, error)

// Authenticate calls f
func (f AuthFunc) Authenticate(r *http.Request) (pnet.Principal, error) { return f(r) }

// Auth rejects requests the port cannot authenticate with the error envelope and stores
// the principal on the context otherwise. A nil port panics, an unguarded route is a wiring bug
func Auth(p AuthPort) func(http.Handler) http.Handler {
	if p == nil {
		panic("middleware: Auth needs a port")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := p.Authenticate(r)
			if err != nil {
				logger.C(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("request rejected")
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				writeJSON(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithPrincipal(r.Context(), principal)))
		})
	}
}
