package main

import (
	"context"
	"os"
	"os/signal"

	"trainerbot/internal/cli"
	"trainerbot/internal/platform/config"
	"trainerbot/internal/platform/logger"
)

func main() {
	_, _ = config.LoadDotenv()
	opts := logger.FromEnv()
	opts.Component = "cli"
	if os.Getenv("LOG_LEVEL") == "" {
		opts.Level = "warn"
	}
	logger.Init(opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.RootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
