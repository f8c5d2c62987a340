package commands

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/todobrain/internal/brain"
	"github.com/dohr-michael/todobrain/internal/events"
	todomcp "github.com/dohr-michael/todobrain/internal/mcp"
	"github.com/dohr-michael/todobrain/internal/storage"
	"github.com/dohr-michael/todobrain/internal/tasks"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewMCPServeCommand returns the mcp-serve subcommand.
func NewMCPServeCommand() *cli.Command {
	return &cli.Command{
		Name:   "mcp-serve",
		Usage:  "Expose the task tools as an MCP server (stdio)",
		Action: runMCPServe,
	}
}

func runMCPServe(ctx context.Context, cmd *cli.Command) error {
	// stdout carries the MCP stdio transport
	setupLogging(cmd, slog.LevelWarn)

	cfg := loadConfig(cmd)

	bus := events.NewBus(cfg.Events.BufferSize)
	defer bus.Close()

	if cfg.Events.LogDir != "" {
		eventLog := storage.NewEventLogger(cfg.Events.LogDir, bus)
		defer eventLog.Close()
	}

	// The store lives for the MCP session only.
	store := tasks.NewStore()
	store.SetBus(bus)

	slog.Debug("starting MCP server", "tools", len(brain.Functions))

	server := todomcp.NewMCPServer(brain.NewExecutor(store))
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}
