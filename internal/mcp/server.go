package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dohr-michael/todobrain/internal/brain"
)

// Version is reported in the MCP implementation info.
const Version = "0.1.0"

// NewMCPServer creates an MCP server exposing the four task intents, all
// executed through executor.
func NewMCPServer(executor *brain.Executor) *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "todobrain",
		Version: Version,
	}, nil)

	for _, fn := range brain.Functions {
		server.AddTool(intentTool(fn), toolHandler(executor, fn))
		slog.Debug("mcp tool registered", "tool", fn)
	}

	return server
}

func toolHandler(executor *brain.Executor, fn brain.Function) mcpsdk.ToolHandler {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		params := map[string]any{}
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
				return errorResult("invalid arguments: " + err.Error()), nil
			}
		}

		result := executor.Execute(brain.Intent{Function: fn, Parameters: params})
		data, err := json.Marshal(result)
		if err != nil {
			return nil, err
		}

		if !result.OK {
			slog.Debug("mcp tool error", "tool", fn, "error", result.Error)
		}
		return &mcpsdk.CallToolResult{
			IsError: !result.OK,
			Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
		}, nil
	}
}

func errorResult(msg string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		IsError: true,
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: msg}},
	}
}
