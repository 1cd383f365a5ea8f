// Package module implements the Telegram bot module
package module

import (
	"context"

	"trainerbot/internal/adapters/telegram"
	"trainerbot/internal/core/initdata"
	"trainerbot/internal/modkit"
	"trainerbot/internal/modkit/httpkit"
	"trainerbot/internal/services/bot/service"
	grading "trainerbot/internal/services/grading/domain"
	mat "trainerbot/internal/services/materials/domain"
)

// Needs are the ports the bot consumes, inject them with modkit.WithPorts
type Needs struct {
	Grading   grading.ServicePort
	Materials mat.LookupPort
}

// Ports exposed by the bot module, the web app API reuses the client, the sink and the verifier
type Ports struct {
	Service  *service.Service
	Client   *telegram.Client
	Sink     grading.Sink
	Verifier *initdata.Verifier
}

// Module implements the bot module
type Module struct {
	deps   modkit.Deps
	b      modkit.Built
	opts   Options
	ports  Ports
	poller *telegram.Poller
}

// New builds the client, the verifier and the dispatcher
func New(deps modkit.Deps, o Options, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("bot")}, opts...)...)
	needs, _ := b.Ports.(Needs)

	client, err := telegram.New(telegram.Options{
		Token:       o.Token,
		APIURL:      o.APIURL,
		PollTimeout: o.PollTimeout,
		Retries:     o.Retries,
	})
	if err != nil {
		return nil, err
	}
	verifier := initdata.NewVerifier(o.Token, initdata.WithMaxAge(o.InitDataMaxAge))
	sink := service.NewSink(client)

	svc := service.New(service.Options{
		API:        client,
		Grading:    needs.Grading,
		Materials:  needs.Materials,
		MiniAppURL: o.MiniAppURL,
		Sink:       sink,
	})

	return &Module{
		deps:   deps,
		b:      b,
		opts:   o,
		poller: telegram.NewPoller(client, o.Workers),
		ports:  Ports{Service: svc, Client: client, Sink: sink, Verifier: verifier},
	}, nil
}

// Run long polls until ctx is done
// Gradings started by updates keep running, the process drains them through the grading port
func (m *Module) Run(ctx context.Context) error {
	l := m.deps.Log.With().Str("mod", m.b.Name).Logger()
	l.Info().Int("workers", m.opts.Workers).Msg("bot: polling")

	if err := m.poller.Run(ctx, m.ports.Service.Handle); err != nil {
		return err
	}
	l.Info().Msg("bot: polling stopped")
	return nil
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module, the bot talks over long polling only
func (m *Module) MountRoutes(r httpkit.Router) {}
