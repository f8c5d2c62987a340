package brain

import (
	"context"
	"log/slog"

	"github.com/dohr-michael/todobrain/internal/models"
)

// Route is the outcome of routing a message: *ToolRoute, *TextRoute or
// *UnavailableRoute.
type Route interface {
	route()
}

// ToolRoute carries a recognized intent to execute.
type ToolRoute struct {
	Intent Intent
}

// TextRoute carries a conversational reply, returned verbatim to the user.
type TextRoute struct {
	Reply string
}

// UnavailableRoute means the LLM could not be used: either no model is
// configured or the call failed. Callers degrade to a canned reply.
type UnavailableRoute struct {
	Err error
}

func (*ToolRoute) route()        {}
func (*TextRoute) route()        {}
func (*UnavailableRoute) route() {}

// Router classifies user messages with an LLM.
type Router struct {
	completer models.Completer
	model     string
}

// NewRouter creates a router. A nil completer puts the router in degraded
// mode: every message routes to *UnavailableRoute.
func NewRouter(completer models.Completer, modelName string) *Router {
	return &Router{completer: completer, model: modelName}
}

// Available reports whether an LLM backend is configured.
func (r *Router) Available() bool {
	return r.completer != nil
}

// Model returns the model name sent with each completion ("" = provider default).
func (r *Router) Model() string {
	return r.model
}

// Route sends message to the LLM with SystemPrompt and classifies the answer.
// It never returns an error: backend failures become *UnavailableRoute.
func (r *Router) Route(ctx context.Context, message string) Route {
	if r.completer == nil {
		return &UnavailableRoute{Err: models.ErrNoModel}
	}

	raw, err := r.completer.Complete(ctx, SystemPrompt, message, r.model)
	if err != nil {
		slog.Warn("llm call failed", "model", r.model, "error", err)
		return &UnavailableRoute{Err: err}
	}

	content := StripFences(raw)
	if intent, ok := ParseIntent(content); ok {
		slog.Debug("llm routed to tool", "function", intent.Function)
		return &ToolRoute{Intent: intent}
	}
	return &TextRoute{Reply: content}
}
