package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"stockfolio/internal/cli"
	"stockfolio/internal/config"
	"stockfolio/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	if cfg.Log == "" {
		cfg.Log = "dev"
		cfg.LogLevel = "warn"
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
