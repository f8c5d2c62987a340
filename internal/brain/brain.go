package brain

import (
	"context"
	"strings"

	"github.com/dohr-michael/todobrain/internal/events"
	"github.com/dohr-michael/todobrain/internal/tasks"
)

// Response modes.
const (
	ModeText = "text"
	ModeTool = "tool"
)

// Response is the answer to a conversational message.
type Response struct {
	Mode   string  `json:"mode"`
	Tool   *Intent `json:"tool,omitempty"`
	Result *Result `json:"result,omitempty"`
	Reply  string  `json:"reply"`
}

// Brain chains the router and the executor.
type Brain struct {
	router   *Router
	executor *Executor
	bus      *events.Bus
}

// New creates a brain routing with router and executing against store.
func New(router *Router, store *tasks.Store) *Brain {
	return &Brain{
		router:   router,
		executor: NewExecutor(store),
	}
}

// SetBus attaches an event bus for conversation and routing events.
func (b *Brain) SetBus(bus *events.Bus) {
	b.bus = bus
}

// Router returns the underlying router.
func (b *Brain) Router() *Router {
	return b.router
}

// Executor returns the underlying executor.
func (b *Brain) Executor() *Executor {
	return b.executor
}

// Handle routes message and, for tool intents, executes it.
func (b *Brain) Handle(ctx context.Context, message string) Response {
	message = strings.TrimSpace(message)
	b.bus.Publish(events.NewTypedEvent(events.SourceBrain, events.UserMessagePayload{Content: message}))

	resp := b.handle(ctx, message)

	b.bus.Publish(events.NewTypedEvent(events.SourceBrain, events.AssistantMessagePayload{
		Mode:    resp.Mode,
		Content: resp.Reply,
	}))
	return resp
}

func (b *Brain) handle(ctx context.Context, message string) Response {
	switch r := b.router.Route(ctx, message).(type) {
	case *ToolRoute:
		b.bus.Publish(events.NewTypedEvent(events.SourceBrain, events.BrainRoutedPayload{
			Kind:     ModeTool,
			Function: string(r.Intent.Function),
		}))

		result := b.executor.Execute(r.Intent)
		b.bus.Publish(events.NewTypedEvent(events.SourceBrain, events.BrainExecutedPayload{
			Function: string(r.Intent.Function),
			OK:       result.OK,
			Error:    result.Error,
		}))

		intent := r.Intent
		return Response{
			Mode:   ModeTool,
			Tool:   &intent,
			Result: &result,
			Reply:  Reply(intent, result),
		}

	case *TextRoute:
		b.bus.Publish(events.NewTypedEvent(events.SourceBrain, events.BrainRoutedPayload{Kind: ModeText}))
		return Response{Mode: ModeText, Reply: r.Reply}

	case *UnavailableRoute:
		reason := ""
		if r.Err != nil {
			reason = r.Err.Error()
		}
		b.bus.Publish(events.NewTypedEvent(events.SourceBrain, events.BrainRoutedPayload{
			Kind:   "unavailable",
			Reason: reason,
		}))
		return Response{Mode: ModeText, Reply: UnavailableReply}
	}

	return Response{Mode: ModeText, Reply: UnavailableReply}
}
