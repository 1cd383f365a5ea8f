// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	"trainerbot/internal/modkit"
	"trainerbot/internal/modkit/httpkit"
	str "trainerbot/internal/platform/strings"

	metahttp "trainerbot/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	deps   metahttp.Deps
}

// New constructs a meta module, service names the binary in health and version output
func New(deps modkit.Deps, service string, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	checks := map[string]metahttp.Pinger{}
	if deps.PG != nil {
		checks["pg"] = deps.PG
	}
	// extra checks come in through WithPorts
	if extra, ok := b.Ports.(map[string]metahttp.Pinger); ok {
		for k, v := range extra {
			checks[k] = v
		}
	}

	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		deps: metahttp.Deps{
			ServiceName: service,
			StartedAt:   time.Now(),
			Checks:      checks,
		},
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, str.MustPrefix(m.prefix), m.mws, func(rr httpkit.Router) {
		metahttp.Register(rr, m.deps)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
