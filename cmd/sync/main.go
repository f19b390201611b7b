package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finleysg/bhmc-admin-sub001/internal/app"
	"github.com/finleysg/bhmc-admin-sub001/internal/config"
	"github.com/finleysg/bhmc-admin-sub001/internal/observability"
	"github.com/finleysg/bhmc-admin-sub001/internal/platform/logging"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

const (
	eventIDFlag  = "event-id"
	playerIDFlag = "player-id"
	formatsFlag  = "formats"
)

var version = "dev"

// runtime is the per-invocation state shared by subcommands.
type runtime struct {
	app       *app.App
	logger    *logging.Logger
	telemetry *observability.Telemetry
}

func main() {
	_ = godotenv.Load()

	var rt runtime
	cliApp := &cli.App{
		Name:    "sync",
		Usage:   "Synchronize club events, rosters, scores and results with Golf Genius",
		Version: version,
		Before: func(cCtx *cli.Context) error {
			return rt.setup(cCtx.Context)
		},
		After: func(cCtx *cli.Context) error {
			return rt.close()
		},
		Commands: []*cli.Command{
			eventCommand(&rt),
			exportCommand(&rt),
			membersCommand(&rt),
			playerCommand(&rt),
			scoresCommand(&rt),
			resultsCommand(&rt),
			scheduleCommand(&rt),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func (rt *runtime) setup(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Console: cfg.AppEnv == config.EnvDev,
		Output:  os.Stderr,
	}).With("service", cfg.ServiceName, "version", cfg.ServiceVersion)
	logging.SetDefault(logger)
	rt.logger = logger

	tel, err := observability.Start(cfg, logger)
	if err != nil {
		return fmt.Errorf("start telemetry: %w", err)
	}
	rt.telemetry = tel

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	a.Run(ctx)
	rt.app = a
	return nil
}

func (rt *runtime) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if rt.app != nil {
		if err := rt.app.Close(); err != nil {
			rt.logger.Error("close app failed", "error", err)
		}
	}
	if err := rt.telemetry.Shutdown(ctx); err != nil {
		rt.logger.Error("telemetry shutdown failed", "error", err)
	}
	if rt.logger != nil {
		_ = rt.logger.Sync()
	}
	return nil
}
