package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/todobrain/internal/tasks"
)

// NewTasksCommand returns the tasks subcommand.
func NewTasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "List the tasks of a running server",
		Flags: []cli.Flag{
			serverURLFlag(),
		},
		Action: runTasksList,
	}
}

func runTasksList(ctx context.Context, cmd *cli.Command) error {
	var body struct {
		Tasks []tasks.Task `json:"tasks"`
	}
	if err := getJSON(ctx, cmd.String("server"), "/api/tasks", &body); err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	if len(body.Tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tDESCRIPTION\tCREATED")
	for _, t := range body.Tasks {
		done := ""
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, done, t.Description, t.CreatedAt)
	}
	return w.Flush()
}

// getJSON performs a GET against the server and decodes the JSON body into out.
func getJSON(ctx context.Context, base, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
