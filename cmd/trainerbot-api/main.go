// @title         trainerbot web app API
// @version       1.0.0
// @description   Endpoints the Telegram Mini App calls

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
)

const service = "trainerbot-api"

func main() {
	envFiles, envErr := config.LoadDotenv()
	opts := logger.FromEnv()
	opts.Component = "api"
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

	srv := phttp.NewServer(apiCfg.MayPort("API_PORT", 8080))
	a.Mount(srv.Router(), service, apiCfg.MayBool("SWAGGER", true), apiCfg.MayBool("PROFILER", false))

	runErr := srv.Run(ctx, apiCfg.MayDuration("GRACE", 10*time.Second))

	// 202 was already answered for these, the verdict still has to reach the chat
	_ = a.Drain(ctx)
	a.Close()
	stop()

	if runErr != nil {
		l.Error().Err(runErr).Msg("http server stopped")
		os.Exit(1)
	}
}
