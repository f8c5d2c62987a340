package models

import (
	"context"
	"time"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino/components/model"

	"github.com/dohr-michael/todobrain/internal/config"
)

const (
	defaultAnthropicModel     = "claude-sonnet-4-5"
	defaultAnthropicMaxTokens = 1024
)

// NewAnthropic creates a Claude ChatModel.
func NewAnthropic(ctx context.Context, cfg config.ProviderConfig, apiKey string) (model.BaseChatModel, error) {
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultAnthropicModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	claudeConfig := &claude.Config{
		APIKey:     apiKey,
		Model:      modelName,
		MaxTokens:  maxTokens,
		HTTPClient: guardedClient("anthropic", providerTimeout(cfg, 60*time.Second)),
	}
	if cfg.BaseURL != "" {
		baseURL := cfg.BaseURL
		claudeConfig.BaseURL = &baseURL
	}

	return claude.NewChatModel(ctx, claudeConfig)
}
