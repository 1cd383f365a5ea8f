package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trainerbot/internal/app"
	"trainerbot/internal/platform/config"
	"trainerbot/internal/platform/logger"
	phttp "trainerbot/internal/platform/net/http"

	"golang.org/x/sync/errgroup"
)

const service = "trainerbot-bot"

func main() {
	envFiles, envErr := config.LoadDotenv()
	opts := logger.FromEnv()
	opts.Component = "bot"
	logger.Init(opts)
	l := logger.Get()
	if envErr != nil {
		l.Fatal().Err(envErr).Msg("env file")
	}
	l.Debug().Strs("files", envFiles).Msg("env loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	a, err := app.New(ctx, root)
	if err != nil {
		l.Fatal().Err(err).Msg("app init failed")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Bot.Run(gctx) })

	// the Mini App endpoints share the process unless disabled
	if apiCfg.MayBool("ENABLED", true) {
		srv := phttp.NewServer(apiCfg.MayPort("API_PORT", 8080))
		a.Mount(srv.Router(), service, apiCfg.MayBool("SWAGGER", true), apiCfg.MayBool("PROFILER", false))
		g.Go(func() error { return srv.Run(gctx, apiCfg.MayDuration("GRACE", 10*time.Second)) })
	}

	l.Info().Str("grader", a.GraderName).Msg("trainerbot running")
	runErr := g.Wait()

	// polling and http are down, let submissions already accepted deliver
	_ = a.Drain(ctx)
	a.Close()
	stop()

	if runErr != nil {
		l.Error().Err(runErr).Msg("trainerbot stopped")
		os.Exit(1)
	}
	l.Info().Msg("trainerbot stopped")
}
