package httpkit

import (
	"net/http"

	"trainerbot/internal/platform/config"
	"trainerbot/internal/platform/net/middleware"
)

// CommonStack returns the middleware every API router starts with
// CORS origins and timeouts come from cfg so the Mini App host can change per deploy
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	stack := middleware.Defaults(cfg.MayDuration("HTTP_TIMEOUT", defaultTimeout))
	return append(stack,
		middleware.AccessLog(middleware.AccessLogOptions{
			Slow: cfg.MayDuration("HTTP_SLOW", defaultSlow),
		}),
		middleware.CORS(middleware.CORSOptions{
			AllowedOrigins: cfg.MayCSV("CORS_ORIGINS", nil),
			MaxAge:         cfg.MayInt("CORS_MAX_AGE", 300),
		}),
	)
}

// Auth guards a router with p
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p)
}
