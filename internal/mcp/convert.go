// Package mcp exposes the task intents as Model Context Protocol tools.
package mcp

import (
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dohr-michael/todobrain/internal/brain"
)

var toolDescriptions = map[brain.Function]string{
	brain.FuncAddTask:      "Add a new task with the given description.",
	brain.FuncCompleteTask: "Mark the first task matching the description (case-insensitive) as completed.",
	brain.FuncDeleteTask:   "Delete the first task matching the description (case-insensitive).",
	brain.FuncViewTasks:    "List all tasks in insertion order.",
}

// intentTool builds the MCP tool definition for a task function.
func intentTool(fn brain.Function) *mcpsdk.Tool {
	inputSchema := map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
	if fn != brain.FuncViewTasks {
		inputSchema["properties"] = map[string]any{
			"description": map[string]any{
				"type":        "string",
				"description": "Task description",
			},
		}
		inputSchema["required"] = []string{"description"}
	}

	return &mcpsdk.Tool{
		Name:        string(fn),
		Description: toolDescriptions[fn],
		InputSchema: inputSchema,
	}
}
