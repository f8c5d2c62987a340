// Package models builds LLM chat models from provider configuration and
// adapts them to the single-call Completer interface used by the brain.
package models

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"

	"github.com/dohr-michael/todobrain/internal/config"
)

// ProviderEntry holds a lazily-initialized model instance.
type ProviderEntry struct {
	Config config.ProviderConfig
	model  model.BaseChatModel
	once   sync.Once
	err    error
}

// Registry manages named model providers with lazy initialization.
type Registry struct {
	mu          sync.RWMutex
	providers   map[string]*ProviderEntry
	defaultName string
}

// NewRegistry creates a model registry from config.
func NewRegistry(cfg config.ModelsConfig) *Registry {
	r := &Registry{
		providers:   make(map[string]*ProviderEntry),
		defaultName: cfg.Default,
	}

	for name, provCfg := range cfg.Providers {
		r.providers[name] = &ProviderEntry{Config: provCfg}
	}

	return r
}

// Get returns the named model, initializing it lazily.
func (r *Registry) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	r.mu.RLock()
	entry, ok := r.providers[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("model provider %q not found", name)
	}

	entry.once.Do(func() {
		entry.model, entry.err = CreateModel(ctx, entry.Config)
	})

	return entry.model, entry.err
}

// Default returns the default model, or ErrNoModel when none is configured.
func (r *Registry) Default(ctx context.Context) (model.BaseChatModel, error) {
	if r.defaultName == "" {
		return nil, ErrNoModel
	}
	return r.Get(ctx, r.defaultName)
}

// DefaultName returns the name of the default provider.
func (r *Registry) DefaultName() string {
	return r.defaultName
}

// DefaultModelName returns the model identifier of the default provider, or "".
func (r *Registry) DefaultModelName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.providers[r.defaultName]; ok {
		return entry.Config.Model
	}
	return ""
}

// DefaultCompleter wraps the default model in a Completer.
func (r *Registry) DefaultCompleter(ctx context.Context, handlers ...callbacks.Handler) (Completer, error) {
	chat, err := r.Default(ctx)
	if err != nil {
		return nil, err
	}
	return NewChatCompleter(r.defaultName, chat, handlers...), nil
}
