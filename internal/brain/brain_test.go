package brain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dohr-michael/todobrain/internal/events"
	"github.com/dohr-michael/todobrain/internal/models"
	"github.com/dohr-michael/todobrain/internal/tasks"
)

// fakeCompleter returns a canned reply and records the last call.
type fakeCompleter struct {
	reply string
	err   error

	calls        int
	systemPrompt string
	message      string
	model        string
}

func (f *fakeCompleter) Complete(_ context.Context, systemPrompt, userMessage, modelName string) (string, error) {
	f.calls++
	f.systemPrompt = systemPrompt
	f.message = userMessage
	f.model = modelName
	return f.reply, f.err
}

func TestRouter_Unconfigured(t *testing.T) {
	r := NewRouter(nil, "")
	if r.Available() {
		t.Fatal("router without completer should not be available")
	}

	route, ok := r.Route(context.Background(), "hello").(*UnavailableRoute)
	if !ok {
		t.Fatalf("expected *UnavailableRoute, got %T", route)
	}
	if !errors.Is(route.Err, models.ErrNoModel) {
		t.Errorf("expected ErrNoModel, got %v", route.Err)
	}
}

func TestRouter_TransportFailure(t *testing.T) {
	fc := &fakeCompleter{err: &models.ErrModelUnavailable{Provider: "openai", Body: "boom"}}
	r := NewRouter(fc, "gpt-4o-mini")

	if _, ok := r.Route(context.Background(), "add milk").(*UnavailableRoute); !ok {
		t.Fatal("expected *UnavailableRoute on completion error")
	}
	if fc.calls != 1 {
		t.Errorf("expected a single attempt, got %d", fc.calls)
	}
}

func TestRouter_PassesPromptAndModel(t *testing.T) {
	fc := &fakeCompleter{reply: "Hi!"}
	r := NewRouter(fc, "gpt-4o-mini")

	r.Route(context.Background(), "hello")

	if fc.systemPrompt != SystemPrompt {
		t.Error("router must send SystemPrompt")
	}
	if fc.message != "hello" || fc.model != "gpt-4o-mini" {
		t.Errorf("unexpected call: message=%q model=%q", fc.message, fc.model)
	}
}

func TestRouter_Classification(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		wantTool  Function
		wantReply string
	}{
		{"tool", `{"function":"addTask","parameters":{"description":"Buy milk"}}`, FuncAddTask, ""},
		{"fenced tool", "```json\n{\"function\":\"viewTasks\",\"parameters\":{}}\n```", FuncViewTasks, ""},
		{"text", "Hello! What would you like to do?", "", "Hello! What would you like to do?"},
		{"unknown function", `{"function":"renameTask","parameters":{}}`, "", `{"function":"renameTask","parameters":{}}`},
		{"fenced text", "```\nnot json\n```", "", "not json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(&fakeCompleter{reply: tt.reply}, "")
			switch route := r.Route(context.Background(), "msg").(type) {
			case *ToolRoute:
				if tt.wantTool == "" {
					t.Fatalf("unexpected tool route %+v", route.Intent)
				}
				if route.Intent.Function != tt.wantTool {
					t.Errorf("function = %q, want %q", route.Intent.Function, tt.wantTool)
				}
			case *TextRoute:
				if tt.wantTool != "" {
					t.Fatalf("expected tool %q, got text %q", tt.wantTool, route.Reply)
				}
				if route.Reply != tt.wantReply {
					t.Errorf("reply = %q, want %q", route.Reply, tt.wantReply)
				}
			default:
				t.Fatalf("unexpected route %T", route)
			}
		})
	}
}

func TestBrain_UnavailableDegradesToText(t *testing.T) {
	b := New(NewRouter(nil, ""), tasks.NewStore())

	resp := b.Handle(context.Background(), "hello")
	if resp.Mode != ModeText {
		t.Errorf("mode = %q, want text", resp.Mode)
	}
	if resp.Reply != UnavailableReply {
		t.Errorf("reply = %q", resp.Reply)
	}
	if resp.Tool != nil || resp.Result != nil {
		t.Error("text response must not carry tool or result")
	}
}

func TestBrain_TextReply(t *testing.T) {
	b := New(NewRouter(&fakeCompleter{reply: "Which task do you mean?"}, ""), tasks.NewStore())

	resp := b.Handle(context.Background(), "delete it")
	if resp.Mode != ModeText || resp.Reply != "Which task do you mean?" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestBrain_DeleteExistingTask(t *testing.T) {
	store := tasks.NewStore()
	store.Create("buy milk")

	fc := &fakeCompleter{reply: `{"function":"deleteTask","parameters":{"description":"Buy Milk"}}`}
	b := New(NewRouter(fc, ""), store)

	resp := b.Handle(context.Background(), "I already bought the milk, remove it")
	if resp.Mode != ModeTool {
		t.Fatalf("mode = %q, want tool", resp.Mode)
	}
	if resp.Tool == nil || resp.Tool.Function != FuncDeleteTask {
		t.Fatalf("unexpected tool %+v", resp.Tool)
	}
	if !resp.Result.OK || resp.Result.DeletedDescription != "Buy Milk" {
		t.Errorf("unexpected result %+v", resp.Result)
	}
	if resp.Reply != "Deleted “Buy Milk”." {
		t.Errorf("reply = %q", resp.Reply)
	}
	if store.Len() != 0 {
		t.Errorf("task not removed, store has %d", store.Len())
	}
}

func TestBrain_AddThenList(t *testing.T) {
	store := tasks.NewStore()
	fc := &fakeCompleter{reply: `{"function":"addTask","parameters":{"description":"Water plants"}}`}
	b := New(NewRouter(fc, ""), store)

	resp := b.Handle(context.Background(), "  remind me to water plants  ")
	if fc.message != "remind me to water plants" {
		t.Errorf("message not trimmed: %q", fc.message)
	}
	if resp.Reply != "Added “Water plants”." {
		t.Errorf("reply = %q", resp.Reply)
	}

	list := store.List()
	if len(list) != 1 || list[0].Description != "Water plants" || list[0].Completed {
		t.Fatalf("unexpected store contents %+v", list)
	}

	fc.reply = `{"function":"viewTasks","parameters":{}}`
	resp = b.Handle(context.Background(), "what's on my list?")
	if resp.Reply != "You have 1 task(s)." {
		t.Errorf("reply = %q", resp.Reply)
	}
}

func TestBrain_FailureReplyReflectsError(t *testing.T) {
	fc := &fakeCompleter{reply: `{"function":"completeTask","parameters":{"description":"ghost"}}`}
	b := New(NewRouter(fc, ""), tasks.NewStore())

	resp := b.Handle(context.Background(), "finish ghost")
	if resp.Mode != ModeTool {
		t.Fatalf("mode = %q, want tool", resp.Mode)
	}
	if resp.Result.OK || resp.Result.Error != ErrMsgNotFound {
		t.Errorf("unexpected result %+v", resp.Result)
	}
	if resp.Reply == "OK" {
		t.Error("failure reply must not be a generic OK")
	}
}

func TestBrain_PublishesEvents(t *testing.T) {
	bus := events.NewBus(32)
	defer bus.Close()

	fc := &fakeCompleter{reply: `{"function":"viewTasks","parameters":{}}`}
	b := New(NewRouter(fc, ""), tasks.NewStore())
	b.SetBus(bus)

	b.Handle(context.Background(), "list")

	want := []events.EventType{
		events.EventUserMessage,
		events.EventBrainRouted,
		events.EventBrainExecuted,
		events.EventAssistantMessage,
	}

	var history []events.Event
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		history = bus.History(10)
		if len(history) >= len(want) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	if len(history) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(history))
	}
	for i, w := range want {
		if history[i].Type != w {
			t.Errorf("event %d: got %s, want %s", i, history[i].Type, w)
		}
	}
}
