package commands

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	wsclient "github.com/dohr-michael/todobrain/clients/ws"
	"github.com/dohr-michael/todobrain/internal/brain"
)

// NewAskCommand returns the ask subcommand.
func NewAskCommand() *cli.Command {
	return &cli.Command{
		Name:      "ask",
		Usage:     "Send a message to a running server and print the reply",
		ArgsUsage: "<message>",
		Flags: []cli.Flag{
			serverURLFlag(),
			&cli.IntFlag{
				Name:  "timeout",
				Usage: "Response timeout in seconds",
				Value: 60,
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print the reply without markdown rendering",
			},
		},
		Action: runAsk,
	}
}

func runAsk(ctx context.Context, cmd *cli.Command) error {
	message := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(message) == "" {
		return errors.New("usage: todobrain ask <message>")
	}

	wsURL, err := websocketURL(cmd.String("server"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(cmd.Int("timeout"))*time.Second)
	defer cancel()

	client, err := wsclient.Dial(ctx, wsURL)
	if err != nil {
		return fmt.Errorf("connect to server: %w", err)
	}
	defer client.Close()

	resp, err := client.SendMessage(ctx, message)
	if err != nil {
		if ctx.Err() != nil {
			return errors.New("timeout waiting for response")
		}
		return fmt.Errorf("send message: %w", err)
	}

	fmt.Fprintln(os.Stdout, renderReply(resp, cmd.Bool("raw")))
	return nil
}

// renderReply formats a brain response, with markdown styling on a terminal.
func renderReply(resp brain.Response, raw bool) string {
	text := resp.Reply
	if resp.Mode == brain.ModeTool && resp.Result != nil && len(resp.Result.Tasks) > 0 {
		var sb strings.Builder
		sb.WriteString(text + "\n\n")
		for _, t := range resp.Result.Tasks {
			box := " "
			if t.Completed {
				box = "x"
			}
			fmt.Fprintf(&sb, "- [%s] %s\n", box, t.Description)
		}
		text = sb.String()
	}

	if raw || !term.IsTerminal(int(os.Stdout.Fd())) {
		return strings.TrimRight(text, "\n")
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// websocketURL derives the gateway WebSocket endpoint from the server base URL.
func websocketURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid server url %q: %w", base, err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http", "":
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/ws"
	return u.String(), nil
}
