package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/dohr-michael/todobrain/internal/brain"
	"github.com/dohr-michael/todobrain/internal/callbacks"
	"github.com/dohr-michael/todobrain/internal/config"
	"github.com/dohr-michael/todobrain/internal/events"
	"github.com/dohr-michael/todobrain/internal/gateway"
	"github.com/dohr-michael/todobrain/internal/models"
	"github.com/dohr-michael/todobrain/internal/storage"
	"github.com/dohr-michael/todobrain/internal/tasks"
)

// NewServeCommand returns the serve subcommand.
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the todobrain HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to listen on",
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "Port to listen on",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:  "static-dir",
				Usage: "Serve the web UI from this directory instead of the embedded copy",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd, slog.LevelInfo)

	cfg := loadConfig(cmd)
	if cmd.IsSet("host") {
		cfg.Gateway.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Gateway.Port = cmd.Int("port")
	}
	if cmd.IsSet("static-dir") {
		cfg.Gateway.StaticDir = cmd.String("static-dir")
	}

	bus := events.NewBus(cfg.Events.BufferSize)
	defer bus.Close()

	if cfg.Events.LogDir != "" {
		eventLog := storage.NewEventLogger(cfg.Events.LogDir, bus)
		defer eventLog.Close()
		slog.Info("event log enabled", "dir", cfg.Events.LogDir)
	}

	registry := models.NewRegistry(cfg.Models)
	completer, err := registry.DefaultCompleter(ctx, callbacks.NewEventBusHandler(bus))
	switch {
	case errors.Is(err, models.ErrNoModel):
		slog.Warn("no LLM provider configured, brain answers in text-only mode")
	case err != nil:
		slog.Warn("LLM provider init failed, brain answers in text-only mode", "provider", registry.DefaultName(), "error", err)
	}
	modelName := registry.DefaultModelName()
	slog.Info("llm", "available", completer != nil, "provider", registry.DefaultName(), "model", modelName)

	store := tasks.NewStore()
	store.SetBus(bus)

	b := brain.New(brain.NewRouter(completer, modelName), store)
	b.SetBus(bus)

	server := gateway.NewServer(bus, store, b, gateway.Options{
		Host:      cfg.Gateway.Host,
		Port:      cfg.Gateway.Port,
		StaticDir: cfg.Gateway.StaticDir,
		RateLimit: brainLimit(cfg.Brain),
		Burst:     cfg.Brain.Burst,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

func brainLimit(cfg config.BrainConfig) rate.Limit {
	if cfg.RateLimit <= 0 {
		return rate.Inf
	}
	return rate.Limit(cfg.RateLimit)
}
