package brain

import (
	"encoding/json"
	"errors"

	"github.com/dohr-michael/todobrain/internal/tasks"
)

// Result error messages.
const (
	ErrMsgDescriptionRequired = "description required"
	ErrMsgNotFound            = "not found"
	ErrMsgUnknown             = "unknown"
)

// Result is the structured outcome of an executed intent. Exactly one of
// OK or Error is set.
type Result struct {
	OK                 bool
	Error              string
	Task               *tasks.Task
	Tasks              []tasks.Task
	DeletedDescription string

	function Function
}

// MarshalJSON emits only the keys relevant to the executed function, so
// viewTasks always carries a "tasks" array, even when empty.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.OK {
		return json.Marshal(map[string]any{"error": r.Error})
	}
	out := map[string]any{"ok": true}
	switch r.function {
	case FuncViewTasks:
		list := r.Tasks
		if list == nil {
			list = []tasks.Task{}
		}
		out["tasks"] = list
	case FuncDeleteTask:
		out["deletedDescription"] = r.DeletedDescription
	default:
		if r.Task != nil {
			out["task"] = r.Task
		}
	}
	return json.Marshal(out)
}

// Executor applies intents to a task store.
type Executor struct {
	store *tasks.Store
}

// NewExecutor creates an executor over store.
func NewExecutor(store *tasks.Store) *Executor {
	return &Executor{store: store}
}

// Execute performs the store operation for intent. Failures are reported in
// the Result, never as Go errors.
func (e *Executor) Execute(intent Intent) Result {
	desc := intent.Description()

	switch intent.Function {
	case FuncAddTask:
		t, err := e.store.Create(desc)
		if err != nil {
			return fail(intent.Function, ErrMsgDescriptionRequired)
		}
		return Result{OK: true, Task: &t, function: intent.Function}

	case FuncViewTasks:
		return Result{OK: true, Tasks: e.store.List(), function: intent.Function}

	case FuncCompleteTask:
		t, err := e.store.Complete(desc)
		if err != nil {
			return fail(intent.Function, lookupError(err))
		}
		return Result{OK: true, Task: &t, function: intent.Function}

	case FuncDeleteTask:
		if _, err := e.store.Delete(desc); err != nil {
			return fail(intent.Function, lookupError(err))
		}
		return Result{OK: true, DeletedDescription: desc, function: intent.Function}

	default:
		return fail(intent.Function, ErrMsgUnknown)
	}
}

func fail(fn Function, msg string) Result {
	return Result{Error: msg, function: fn}
}

func lookupError(err error) string {
	if errors.Is(err, tasks.ErrNotFound) {
		return ErrMsgNotFound
	}
	return err.Error()
}
