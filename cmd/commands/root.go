package commands

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/todobrain/internal/config"
)

// DefaultServerURL is the HTTP base URL the client commands talk to.
const DefaultServerURL = "http://127.0.0.1:5000"

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "todobrain",
		Usage: "A task tracker you can talk to",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
				Sources: cli.EnvVars("TODOBRAIN_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewServeCommand(),
			NewAskCommand(),
			NewTasksCommand(),
			NewStatusCommand(),
			NewMCPServeCommand(),
		},
		DefaultCommand: "serve",
	}
}

func setupLogging(cmd *cli.Command, level slog.Level) {
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig reads the config file, falling back to defaults when it is missing.
func loadConfig(cmd *cli.Command) *config.Config {
	path := cmd.String("config")
	if _, err := os.Stat(path); err != nil {
		slog.Debug("config not found, using defaults", "path", path)
		return config.Default()
	}

	cfg, err := config.Load(path)
	if err != nil {
		slog.Warn("invalid config, using defaults", "path", path, "error", err)
		return config.Default()
	}
	return cfg
}

func serverURLFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "server",
		Usage:   "todobrain server base URL",
		Value:   DefaultServerURL,
		Sources: cli.EnvVars("TODOBRAIN_URL"),
	}
}
