package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// NewStatusCommand returns the status subcommand.
func NewStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show todobrain server status",
		Flags: []cli.Flag{
			serverURLFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var health struct {
				Status  string `json:"status"`
				LLM     bool   `json:"llm"`
				Model   string `json:"model"`
				Clients int    `json:"clients"`
			}
			if err := getJSON(ctx, cmd.String("server"), "/api/health", &health); err != nil {
				fmt.Println("Server: NOT RUNNING")
				return nil
			}

			fmt.Printf("Server: %s\n", health.Status)
			if health.LLM {
				fmt.Printf("LLM: available (model %s)\n", health.Model)
			} else {
				fmt.Println("LLM: not configured (text-only mode)")
			}
			fmt.Printf("WebSocket clients: %d\n", health.Clients)
			return nil
		},
	}
}
