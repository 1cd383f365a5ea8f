// Package api composes the HTTP surface the Mini App talks to
package api

import (
	"trainerbot/internal/core/initdata"
	"trainerbot/internal/modkit"
	"trainerbot/internal/modkit/httpkit"
	"trainerbot/internal/modkit/swaggerkit"
	phttp "trainerbot/internal/platform/net/http"

	metamod "trainerbot/internal/services/api/meta/module"
	"trainerbot/internal/services/api/webapp/domain"
	webappmod "trainerbot/internal/services/api/webapp/module"
	grading "trainerbot/internal/services/grading/domain"
	mat "trainerbot/internal/services/materials/domain"
)

// Options are the API options
type Options struct {
	Deps        modkit.Deps
	ServiceName string

	Grading   grading.ServicePort
	Sink      grading.Sink
	Materials mat.LookupPort
	Answerer  domain.Answerer
	Verifier  *initdata.Verifier

	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts every module under /api/v1 plus the docs and profiler
func Mount(r phttp.Router, opt Options) []modkit.Module {
	mods := []modkit.Module{
		metamod.New(opt.Deps, opt.ServiceName),
		webappmod.New(opt.Deps, modkit.WithPorts(webappmod.Needs{
			Grading:   opt.Grading,
			Sink:      opt.Sink,
			Materials: opt.Materials,
			Answerer:  opt.Answerer,
			Verifier:  opt.Verifier,
		})),
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Deps.Cfg), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
			opt.Deps.Log.Debug().Str("mod", m.Name()).Msg("api: mounted")
		}
	})
	return mods
}
