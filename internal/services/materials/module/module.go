// Package module implements the materials module
package module

import (
	"context"

	"trainerbot/internal/modkit"
	"trainerbot/internal/modkit/httpkit"
	"trainerbot/internal/services/materials/domain"
	"trainerbot/internal/services/materials/repo"
	"trainerbot/internal/services/materials/service"
)

// Ports exposed by the materials module
type Ports struct {
	Lookup domain.LookupPort
	// Tasks satisfies the grading task resolver
	Tasks *service.Registry
}

// Module implements the materials module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New loads the registry from Postgres when deps.PG is set, otherwise from YAML
func New(ctx context.Context, deps modkit.Deps) (*Module, error) {
	opts := FromConfig(deps.Cfg)
	l := deps.Log.With().Str("mod", "materials").Logger()

	var (
		src domain.SourcePort
		def = opts.DefaultTask
	)
	if deps.PG != nil {
		src = repo.NewPG(deps.PG)
		l.Info().Msg("materials: postgres source")
	} else {
		y := repo.NewYAML(opts.File)
		f, err := y.File(ctx)
		if err != nil {
			return nil, err
		}
		if def == "" {
			def = f.Default
		}
		src = y
		l.Info().Str("file", opts.File).Int("count", len(f.Materials)).Msg("materials: yaml source")
	}

	reg, err := service.New(ctx, src, def)
	if err != nil {
		return nil, err
	}
	return &Module{deps: deps, ports: Ports{Lookup: reg, Tasks: reg}}, nil
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "materials" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module, materials are served by the webapp module
func (m *Module) MountRoutes(r httpkit.Router) {}
