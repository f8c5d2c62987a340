package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dohr-michael/todobrain/cmd/commands"
	"github.com/dohr-michael/todobrain/internal/config"
)

func main() {
	loaded, err := config.LoadDotenv(config.DotenvPaths()...)
	if err != nil {
		slog.Warn("failed to load .env", "error", err)
	}
	for _, path := range loaded {
		slog.Debug("loaded .env", "path", path)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := commands.NewRootCommand()
	if err := cmd.Run(ctx, os.Args); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}
