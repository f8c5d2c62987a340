package models

import (
	"context"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Completer produces a single text completion for a system prompt and a
// user message. modelName overrides the provider's model when non-empty.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage, modelName string) (string, error)
}

// ChatCompleter adapts an eino chat model to Completer. Calls are made with
// temperature 0 and exactly two messages (system, user).
type ChatCompleter struct {
	provider string
	chat     model.BaseChatModel
	handlers []callbacks.Handler
}

// NewChatCompleter wraps chat; provider names it in errors and callbacks.
// handlers receive the model's start/end/error callbacks on every call.
func NewChatCompleter(provider string, chat model.BaseChatModel, handlers ...callbacks.Handler) *ChatCompleter {
	return &ChatCompleter{provider: provider, chat: chat, handlers: handlers}
}

func (c *ChatCompleter) Complete(ctx context.Context, systemPrompt, userMessage, modelName string) (string, error) {
	msgs := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userMessage),
	}

	opts := []model.Option{model.WithTemperature(0)}
	if modelName != "" {
		opts = append(opts, model.WithModel(modelName))
	}

	if len(c.handlers) > 0 {
		ctx = callbacks.InitCallbacks(ctx, &callbacks.RunInfo{
			Name:      c.provider,
			Type:      c.provider,
			Component: components.ComponentOfChatModel,
		}, c.handlers...)
	}

	resp, err := c.chat.Generate(ctx, msgs, opts...)
	if err != nil {
		return "", HandleError(err)
	}
	if resp == nil {
		return "", &ErrModelUnavailable{Provider: c.provider, Body: "empty response"}
	}
	return resp.Content, nil
}
