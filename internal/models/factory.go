package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"

	"github.com/dohr-michael/todobrain/internal/config"
)

// CreateModel creates a model.BaseChatModel from a provider config.
func CreateModel(ctx context.Context, cfg config.ProviderConfig) (model.BaseChatModel, error) {
	driver := strings.ToLower(cfg.Driver)
	if driver == "ollama" {
		return NewOllama(ctx, cfg)
	}

	apiKey, err := ResolveAPIKey(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve auth: %w", err)
	}

	switch driver {
	case "openai":
		return NewOpenAI(ctx, cfg, apiKey)
	case "mistral":
		return NewMistral(ctx, cfg, apiKey)
	case "anthropic":
		return NewAnthropic(ctx, cfg, apiKey)
	case "gemini":
		return NewGemini(ctx, cfg, apiKey)
	default:
		return nil, fmt.Errorf("unknown driver: %s", cfg.Driver)
	}
}
