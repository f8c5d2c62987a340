// Package callbacks bridges eino chat model callbacks to the event bus.
package callbacks

import (
	"context"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	ub "github.com/cloudwego/eino/utils/callbacks"

	"github.com/dohr-michael/todobrain/internal/events"
)

const maxErrorLen = 500

// NewEventBusHandler creates a callback handler that publishes an llm.call
// event for each chat model request, response and error.
func NewEventBusHandler(bus *events.Bus) callbacks.Handler {
	publish := func(payload events.LLMCallPayload) {
		bus.Publish(events.NewTypedEvent(events.SourceBrain, payload))
	}

	modelHandler := &ub.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *callbacks.RunInfo, input *model.CallbackInput) context.Context {
			payload := events.LLMCallPayload{Phase: "request", Model: info.Name}
			if input != nil {
				payload.MessageCount = len(input.Messages)
			}
			publish(payload)
			return ctx
		},

		OnEnd: func(ctx context.Context, info *callbacks.RunInfo, output *model.CallbackOutput) context.Context {
			payload := events.LLMCallPayload{Phase: "response", Model: info.Name}
			if output != nil && output.Message != nil && output.Message.ResponseMeta != nil && output.Message.ResponseMeta.Usage != nil {
				payload.TokensInput = output.Message.ResponseMeta.Usage.PromptTokens
				payload.TokensOutput = output.Message.ResponseMeta.Usage.CompletionTokens
			}
			publish(payload)
			return ctx
		},

		OnError: func(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
			publish(events.LLMCallPayload{
				Phase: "error",
				Model: info.Name,
				Error: truncate(err.Error(), maxErrorLen),
			})
			return ctx
		},
	}

	return ub.NewHandlerHelper().
		ChatModel(modelHandler).
		Handler()
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "... (truncated)"
}
