package models

import (
	"context"
	"time"

	einoollama "github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino/components/model"

	"github.com/dohr-michael/todobrain/internal/config"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "llama3.2"
)

// NewOllama creates a new Ollama ChatModel.
func NewOllama(ctx context.Context, cfg config.ProviderConfig) (model.BaseChatModel, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultOllamaModel
	}

	modelConfig := &einoollama.ChatModelConfig{
		BaseURL: baseURL,
		Model:   modelName,
		Timeout: providerTimeout(cfg, 300*time.Second),
		Options: &einoollama.Options{},
	}

	if cfg.MaxTokens > 0 {
		modelConfig.Options.NumPredict = cfg.MaxTokens
	}
	if numCtx, ok := cfg.Options["num_ctx"].(float64); ok {
		modelConfig.Options.NumCtx = int(numCtx)
	}

	modelConfig.HTTPClient = guardedClient("ollama", modelConfig.Timeout)

	return einoollama.NewChatModel(ctx, modelConfig)
}
