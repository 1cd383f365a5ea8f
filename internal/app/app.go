// Package app assembles the modules every binary shares: materials, grader, grading and
// the bot with its Telegram client
package app

import (
	"context"
	"time"

	"trainerbot/internal/adapters/grader/provider"
	"trainerbot/internal/modkit"
	"trainerbot/internal/platform/config"
	"trainerbot/internal/platform/logger"
	phttp "trainerbot/internal/platform/net/http"
	"trainerbot/internal/platform/store/pg"
	"trainerbot/internal/services/api"

	botmod "trainerbot/internal/services/bot/module"
	gradingmod "trainerbot/internal/services/grading/module"
	matmod "trainerbot/internal/services/materials/module"
)

// Core is the bot-less part: materials and grading, what the cli needs
type Core struct {
	Deps       modkit.Deps
	Materials  matmod.Ports
	Grading    gradingmod.Ports
	GraderName string

	drainTimeout time.Duration
	closers      []func()
}

// App is Core plus the Telegram bot
type App struct {
	*Core
	Bot *botmod.Module
}

// NewCore opens the optional Postgres pool, loads the material registry and builds the grader
func NewCore(ctx context.Context, cfg config.Conf) (*Core, error) {
	c := &Core{Deps: modkit.Deps{Log: *logger.Get(), Cfg: cfg}}

	if pc := cfg.Prefix("MATERIALS_PG_"); pc.MayString("DBURL", "") != "" {
		p, err := pg.Open(ctx, pg.Config{
			URL:      pc.MustString("DBURL"),
			MaxConns: int32(pc.MayInt("MAX_CONNS", 4)),
			LogSQL:   pc.MayBool("LOG_SQL", false),
			Slow:     pc.MayDuration("SLOW", 500*time.Millisecond),
		})
		if err != nil {
			return nil, err
		}
		c.Deps.PG = p
		c.closers = append(c.closers, p.Close)
	}

	mats, err := matmod.New(ctx, c.Deps)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Materials = mats.Ports().(matmod.Ports)

	g, name, err := provider.FromConfig(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.GraderName = name

	gm := gradingmod.New(c.Deps, modkit.WithPorts(gradingmod.Needs{Grader: g, Tasks: c.Materials.Tasks}))
	c.Grading = gm.Ports().(gradingmod.Ports)
	c.drainTimeout = gradingmod.FromConfig(cfg).DrainTimeout

	c.Deps.Log.Info().Str("grader", name).Msg("app: core ready")
	return c, nil
}

// New builds the Core and the bot module on top of it
func New(ctx context.Context, cfg config.Conf) (*App, error) {
	c, err := NewCore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	bot, err := botmod.New(c.Deps, botmod.FromConfig(cfg), modkit.WithPorts(botmod.Needs{
		Grading:   c.Grading.Service,
		Materials: c.Materials.Lookup,
	}))
	if err != nil {
		c.Close()
		return nil, err
	}
	return &App{Core: c, Bot: bot}, nil
}

// Mount mounts the web app API, service names the binary in meta output
func (a *App) Mount(r phttp.Router, service string, swagger, profiler bool) {
	bp := a.Bot.Ports().(botmod.Ports)
	api.Mount(r, api.Options{
		Deps:           a.Deps,
		ServiceName:    service,
		Grading:        a.Grading.Service,
		Sink:           bp.Sink,
		Materials:      a.Materials.Lookup,
		Answerer:       bp.Client,
		Verifier:       bp.Verifier,
		EnableSwagger:  swagger,
		EnableProfiler: profiler,
	})
}

// Drain waits for gradings still running in the background, bounded by GRADING_DRAIN_TIMEOUT
// Call it once every inbound surface has stopped and before Close
func (c *Core) Drain(ctx context.Context) error {
	l := c.Deps.Log.With().Str("mod", "app").Logger()
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.drainTimeout)
	defer cancel()

	start := time.Now()
	if err := c.Grading.Service.Wait(dctx); err != nil {
		l.Warn().Err(err).Dur("timeout", c.drainTimeout).Msg("app: gradings still running at shutdown")
		return err
	}
	l.Info().Dur("took", time.Since(start)).Msg("app: gradings drained")
	return nil
}

// Close releases what NewCore opened
func (c *Core) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
