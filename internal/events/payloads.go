package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventPayload is the interface all typed payloads implement.
type EventPayload interface {
	EventType() EventType
}

// TaskPayload describes a task store mutation.
type TaskPayload struct {
	Kind        EventType `json:"-"`
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
}

func (p TaskPayload) EventType() EventType { return p.Kind }

type UserMessagePayload struct {
	Content string `json:"content"`
}

func (UserMessagePayload) EventType() EventType { return EventUserMessage }

type AssistantMessagePayload struct {
	Mode    string `json:"mode"`
	Content string `json:"content"`
}

func (AssistantMessagePayload) EventType() EventType { return EventAssistantMessage }

// BrainRoutedPayload records how the router classified a message.
type BrainRoutedPayload struct {
	Kind     string `json:"kind"` // "tool" | "text" | "unavailable"
	Function string `json:"function,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func (BrainRoutedPayload) EventType() EventType { return EventBrainRouted }

// BrainExecutedPayload records the outcome of an executed intent.
type BrainExecutedPayload struct {
	Function string `json:"function"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

func (BrainExecutedPayload) EventType() EventType { return EventBrainExecuted }

// LLMCallPayload traces a chat model call.
type LLMCallPayload struct {
	Phase        string `json:"phase"` // "request" | "response" | "error"
	Model        string `json:"model"`
	MessageCount int    `json:"message_count,omitempty"`
	TokensInput  int    `json:"tokens_input,omitempty"`
	TokensOutput int    `json:"tokens_output,omitempty"`
	Error        string `json:"error,omitempty"`
}

func (LLMCallPayload) EventType() EventType { return EventLLMCall }

func NewTypedEvent(source EventSource, payload EventPayload) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      payload.EventType(),
		Timestamp: time.Now(),
		Source:    source,
		Payload:   toMap(payload),
	}
}

func toMap(v any) map[string]any {
	var result map[string]any
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return result
}

// ExtractPayload decodes an event payload back into its typed form.
func ExtractPayload[T EventPayload](e Event) (T, bool) {
	var result T
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return result, false
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, false
	}
	return result, true
}
