package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/feedmedia/internal/client/cli"
	"github.com/dmitrijs2005/feedmedia/internal/client/config"
	"github.com/dmitrijs2005/feedmedia/internal/logging"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.Verbose)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		logger.Error(ctx, "init failed", "error", err)
		os.Exit(cli.ExitUsage)
	}

	code := app.Run(ctx)
	stop()
	os.Exit(code)
}
