// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"sort"
	"time"

	"trainerbot/internal/core/version"
	"trainerbot/internal/modkit/httpkit"
	perr "trainerbot/internal/platform/errors"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time

	// Checks are pinged by /ready, a nil value is reported as skipped
	Checks map[string]Pinger
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	r.Get("/ready", httpkit.Handle(h.ready))
	httpkit.Get(r, "/version", h.version)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"trainerbot-api"`
	Started string `json:"started" example:"2026-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-09-03T13:05:00Z"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} httpkit.Envelope
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) httpkit.Response {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	out := ReadyResponse{Status: "ok", Now: time.Now().UTC().Format(time.RFC3339)}
	var failed []string
	for name, p := range h.deps.Checks {
		c := ReadyCheck{Name: name, Status: "ok"}
		switch {
		case p == nil:
			c.Status = "skipped"
		default:
			if err := p.Ping(ctx); err != nil {
				c.Status, c.Error = "fail", err.Error()
				failed = append(failed, name)
			}
		}
		out.Checks = append(out.Checks, c)
	}
	sort.Slice(out.Checks, func(i, j int) bool { return out.Checks[i].Name < out.Checks[j].Name })

	if len(failed) > 0 {
		return httpkit.Error(perr.Unavailablef("not ready: %v", failed))
	}
	return httpkit.OK(out)
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}
