// Package module implements the grading module
package module

import (
	"trainerbot/internal/modkit"
	"trainerbot/internal/modkit/httpkit"
	"trainerbot/internal/services/grading/domain"
	"trainerbot/internal/services/grading/service"
)

// Needs are the ports the grading module consumes, inject them with modkit.WithPorts
type Needs struct {
	Grader domain.Grader
	Tasks  domain.TaskResolver
}

// Ports exposed by the grading module
type Ports struct {
	Service domain.ServicePort
}

// Module implements the grading module
type Module struct {
	deps  modkit.Deps
	b     modkit.Built
	ports Ports
}

// New constructs the grading module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("grading")}, opts...)...)
	needs, _ := b.Ports.(Needs)
	o := FromConfig(deps.Cfg)

	svc := service.New(service.Options{
		Grader:  needs.Grader,
		Tasks:   needs.Tasks,
		Timeout: o.Timeout,
	})
	deps.Log.Debug().Str("mod", b.Name).Dur("timeout", o.Timeout).Msg("grading: ready")

	return &Module{deps: deps, b: b, ports: Ports{Service: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module, grading has no routes of its own
func (m *Module) MountRoutes(r httpkit.Router) {}
