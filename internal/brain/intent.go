// Package brain turns free-form user messages into task actions: the router
// asks an LLM for a constrained JSON intent and the executor applies it to
// the task store.
package brain

import (
	"encoding/json"
	"strings"
)

// Function names one of the four recognized actions.
type Function string

const (
	FuncAddTask      Function = "addTask"
	FuncCompleteTask Function = "completeTask"
	FuncDeleteTask   Function = "deleteTask"
	FuncViewTasks    Function = "viewTasks"
)

// Functions lists the closed set of recognized actions.
var Functions = []Function{FuncAddTask, FuncCompleteTask, FuncDeleteTask, FuncViewTasks}

// Known reports whether f is one of the recognized actions.
func (f Function) Known() bool {
	switch f {
	case FuncAddTask, FuncCompleteTask, FuncDeleteTask, FuncViewTasks:
		return true
	}
	return false
}

// Intent is a parsed tool call.
type Intent struct {
	Function   Function       `json:"function"`
	Parameters map[string]any `json:"parameters"`
}

// Description returns the trimmed "description" parameter, or "" when it is
// missing or not a string.
func (i Intent) Description() string {
	s, _ := i.Parameters["description"].(string)
	return strings.TrimSpace(s)
}

// StripFences removes a surrounding markdown code fence, including its
// language tag line, and trims whitespace.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.Trim(s, "`")
	if _, rest, ok := strings.Cut(s, "\n"); ok {
		s = rest
	}
	return strings.TrimSpace(s)
}

// ParseIntent parses text as a single JSON object with "function" and
// "parameters" keys. It succeeds only when function is a recognized name;
// malformed or missing parameters are tolerated and left to the executor.
func ParseIntent(text string) (Intent, bool) {
	var raw struct {
		Function   json.RawMessage `json:"function"`
		Parameters json.RawMessage `json:"parameters"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return Intent{}, false
	}

	var fn Function
	if err := json.Unmarshal(raw.Function, &fn); err != nil || !fn.Known() {
		return Intent{}, false
	}

	params := map[string]any{}
	if len(raw.Parameters) > 0 {
		if err := json.Unmarshal(raw.Parameters, &params); err != nil || params == nil {
			params = map[string]any{}
		}
	}

	return Intent{Function: fn, Parameters: params}, true
}
