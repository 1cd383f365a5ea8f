// Package module wires the Mini App endpoints into the API using modkit
package module

import (
	"net/http"

	"trainerbot/internal/core/initdata"
	"trainerbot/internal/modkit"
	"trainerbot/internal/modkit/httpkit"
	"trainerbot/internal/services/api/webapp/domain"
	whttp "trainerbot/internal/services/api/webapp/http"
	wsvc "trainerbot/internal/services/api/webapp/service"
	grading "trainerbot/internal/services/grading/domain"
	mat "trainerbot/internal/services/materials/domain"
)

// Needs are the ports the web app consumes, inject them with modkit.WithPorts
type Needs struct {
	Grading   grading.ServicePort
	Sink      grading.Sink
	Materials mat.LookupPort
	Answerer  domain.Answerer
	Verifier  *initdata.Verifier
}

// Module implements the web app API module
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	svc    *wsvc.Service
}

// New constructs the module, every route sits behind init data verification
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("webapp"),
		modkit.WithPrefix("/webapp"),
	}, opts...)...)

	needs, _ := b.Ports.(Needs)
	if needs.Grading == nil || needs.Sink == nil || needs.Materials == nil || needs.Answerer == nil || needs.Verifier == nil {
		panic("webapp module requires Grading, Sink, Materials, Answerer and Verifier ports")
	}

	deps.Log.Debug().Str("mod", b.Name).Str("prefix", b.Prefix).Msg("webapp: ready")

	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    append(b.Mw, httpkit.Auth(whttp.InitDataAuth{V: needs.Verifier})),
		svc: wsvc.New(wsvc.Options{
			Grading:   needs.Grading,
			Sink:      needs.Sink,
			Materials: needs.Materials,
			Answerer:  needs.Answerer,
		}),
	}
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		whttp.Register(rr, m.svc)
	})
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.name }

// Ports implements modkit.Module
func (m *Module) Ports() any { return nil }
