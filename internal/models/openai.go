package models

import (
	"context"
	"time"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/dohr-michael/todobrain/internal/config"
)

const (
	defaultOpenAITimeout  = 60 * time.Second
	defaultMistralBaseURL = "https://api.mistral.ai/v1"
	defaultMistralModel   = "mistral-small-latest"
)

// NewOpenAI creates a new OpenAI ChatModel.
func NewOpenAI(ctx context.Context, cfg config.ProviderConfig, apiKey string) (model.BaseChatModel, error) {
	if cfg.Model == "" {
		cfg.Model = config.DefaultModel
	}
	return newOpenAICompatible(ctx, "openai", cfg, apiKey)
}

// NewMistral creates a new Mistral AI ChatModel via the OpenAI-compatible API.
func NewMistral(ctx context.Context, cfg config.ProviderConfig, apiKey string) (model.BaseChatModel, error) {
	if cfg.Model == "" {
		cfg.Model = defaultMistralModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultMistralBaseURL
	}
	return newOpenAICompatible(ctx, "mistral", cfg, apiKey)
}

func newOpenAICompatible(ctx context.Context, provider string, cfg config.ProviderConfig, apiKey string) (model.BaseChatModel, error) {
	modelConfig := &einoopenai.ChatModelConfig{
		APIKey:  apiKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: providerTimeout(cfg, defaultOpenAITimeout),
	}
	modelConfig.HTTPClient = guardedClient(provider, modelConfig.Timeout)

	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		modelConfig.MaxCompletionTokens = &maxTokens
	}

	if cfg.Options != nil {
		if topP, ok := cfg.Options["top_p"].(float64); ok {
			p := float32(topP)
			modelConfig.TopP = &p
		}
	}

	return einoopenai.NewChatModel(ctx, modelConfig)
}

func providerTimeout(cfg config.ProviderConfig, fallback time.Duration) time.Duration {
	if cfg.Timeout.Duration() > 0 {
		return cfg.Timeout.Duration()
	}
	return fallback
}
