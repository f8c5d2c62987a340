package brain

import (
	"encoding/json"
	"testing"

	"github.com/dohr-michael/todobrain/internal/tasks"
)

func intentOf(fn Function, desc string) Intent {
	params := map[string]any{}
	if desc != "" {
		params["description"] = desc
	}
	return Intent{Function: fn, Parameters: params}
}

func marshalResult(t *testing.T, r Result) map[string]any {
	t.Helper()
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	return out
}

func TestExecuteAddTask(t *testing.T) {
	store := tasks.NewStore()
	ex := NewExecutor(store)

	res := ex.Execute(intentOf(FuncAddTask, "Water plants"))
	if !res.OK || res.Task == nil {
		t.Fatalf("expected ok with task, got %+v", res)
	}
	if res.Task.Description != "Water plants" || res.Task.Completed {
		t.Errorf("unexpected task %+v", res.Task)
	}

	body := marshalResult(t, res)
	if body["ok"] != true {
		t.Errorf("ok = %v", body["ok"])
	}
	if _, ok := body["task"].(map[string]any); !ok {
		t.Errorf("expected task object, got %v", body["task"])
	}
}

func TestExecuteAddTaskEmpty(t *testing.T) {
	store := tasks.NewStore()
	ex := NewExecutor(store)

	for _, intent := range []Intent{intentOf(FuncAddTask, "   "), {Function: FuncAddTask, Parameters: map[string]any{}}} {
		res := ex.Execute(intent)
		if res.OK || res.Error != ErrMsgDescriptionRequired {
			t.Errorf("expected description required, got %+v", res)
		}
		body := marshalResult(t, res)
		if body["error"] != "description required" || len(body) != 1 {
			t.Errorf("unexpected body %v", body)
		}
	}
	if store.Len() != 0 {
		t.Errorf("store should be empty, has %d", store.Len())
	}
}

func TestExecuteViewTasks(t *testing.T) {
	store := tasks.NewStore()
	ex := NewExecutor(store)

	body := marshalResult(t, ex.Execute(intentOf(FuncViewTasks, "")))
	list, ok := body["tasks"].([]any)
	if !ok || len(list) != 0 {
		t.Fatalf("expected empty tasks array, got %#v", body["tasks"])
	}

	store.Create("a")
	store.Create("b")
	res := ex.Execute(intentOf(FuncViewTasks, ""))
	if !res.OK || len(res.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %+v", res)
	}
}

func TestExecuteCompleteTask(t *testing.T) {
	store := tasks.NewStore()
	ex := NewExecutor(store)
	store.Create("Buy milk")

	for i := 0; i < 2; i++ {
		res := ex.Execute(intentOf(FuncCompleteTask, "BUY MILK"))
		if !res.OK || res.Task == nil || !res.Task.Completed {
			t.Fatalf("attempt %d: expected completed task, got %+v", i+1, res)
		}
	}

	res := ex.Execute(intentOf(FuncCompleteTask, "nonexistent"))
	if res.OK || res.Error != ErrMsgNotFound {
		t.Errorf("expected not found, got %+v", res)
	}

	res = ex.Execute(intentOf(FuncCompleteTask, ""))
	if res.Error != ErrMsgNotFound {
		t.Errorf("empty description: expected not found, got %+v", res)
	}
}

func TestExecuteDeleteTask(t *testing.T) {
	store := tasks.NewStore()
	ex := NewExecutor(store)
	store.Create("buy milk")

	res := ex.Execute(intentOf(FuncDeleteTask, "Buy Milk"))
	if !res.OK {
		t.Fatalf("expected ok, got %+v", res)
	}

	body := marshalResult(t, res)
	if body["ok"] != true || body["deletedDescription"] != "Buy Milk" {
		t.Errorf("unexpected body %v", body)
	}
	if store.Len() != 0 {
		t.Errorf("task not removed")
	}

	res = ex.Execute(intentOf(FuncDeleteTask, "Buy Milk"))
	if res.Error != ErrMsgNotFound {
		t.Errorf("second delete: expected not found, got %+v", res)
	}
}

func TestExecuteUnknown(t *testing.T) {
	ex := NewExecutor(tasks.NewStore())

	res := ex.Execute(intentOf("renameTask", "x"))
	if res.OK || res.Error != ErrMsgUnknown {
		t.Fatalf("expected unknown, got %+v", res)
	}
	if body := marshalResult(t, res); body["error"] != "unknown" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestReply(t *testing.T) {
	tests := []struct {
		name   string
		intent Intent
		res    Result
		want   string
	}{
		{"added", intentOf(FuncAddTask, "Water plants"), Result{OK: true}, "Added “Water plants”."},
		{"completed", intentOf(FuncCompleteTask, "Buy milk"), Result{OK: true}, "Marked “Buy milk” as done."},
		{"deleted", intentOf(FuncDeleteTask, "Buy milk"), Result{OK: true}, "Deleted “Buy milk”."},
		{"view", intentOf(FuncViewTasks, ""), Result{OK: true, Tasks: make([]tasks.Task, 3)}, "You have 3 task(s)."},
		{"view empty", intentOf(FuncViewTasks, ""), Result{OK: true}, "You have 0 task(s)."},
		{"not found", intentOf(FuncDeleteTask, "ghost"), Result{Error: ErrMsgNotFound}, "I couldn't find a task matching “ghost”."},
		{"complete without description", intentOf(FuncCompleteTask, ""), Result{Error: ErrMsgNotFound}, "I need a description to complete a task."},
		{"delete without description", intentOf(FuncDeleteTask, ""), Result{Error: ErrMsgNotFound}, "I need a description to delete a task."},
		{"no description", intentOf(FuncAddTask, ""), Result{Error: ErrMsgDescriptionRequired}, "I need a description to add a task."},
		{"unknown", intentOf("renameTask", ""), Result{Error: ErrMsgUnknown}, UnavailableReply},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reply(tt.intent, tt.res); got != tt.want {
				t.Errorf("Reply = %q, want %q", got, tt.want)
			}
		})
	}
}
