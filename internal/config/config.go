// Package config loads todobrain configuration from JSONC/YAML files and the environment.
package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for todobrain.
type Config struct {
	Gateway GatewayConfig `json:"gateway" yaml:"gateway"`
	Models  ModelsConfig  `json:"models" yaml:"models"`
	Brain   BrainConfig   `json:"brain" yaml:"brain"`
	Events  EventsConfig  `json:"events" yaml:"events"`
}

// GatewayConfig holds the HTTP server settings.
type GatewayConfig struct {
	Host      string `json:"host" yaml:"host"`
	Port      int    `json:"port" yaml:"port"`
	StaticDir string `json:"static_dir,omitempty" yaml:"static_dir,omitempty"` // serve the UI from disk instead of the embedded copy
}

// ModelsConfig holds model provider configuration.
type ModelsConfig struct {
	Default   string                    `json:"default" yaml:"default"`
	Providers map[string]ProviderConfig `json:"providers" yaml:"providers"`
}

// ProviderConfig configures a single LLM provider.
type ProviderConfig struct {
	Driver    string         `json:"driver" yaml:"driver"` // "openai", "mistral", "ollama", "anthropic", "gemini"
	Model     string         `json:"model" yaml:"model"`
	BaseURL   string         `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Auth      AuthConfig     `json:"auth" yaml:"auth"`
	MaxTokens int            `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	Timeout   Duration       `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Options   map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// AuthConfig configures API key resolution.
type AuthConfig struct {
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"` // Direct API key, ${VAR} or ${{ .Env.VAR }} template
}

// BrainConfig tunes the conversational endpoint.
type BrainConfig struct {
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"` // requests per second, <=0 = unlimited
	Burst     int     `json:"burst" yaml:"burst"`
}

// EventsConfig holds event bus settings.
type EventsConfig struct {
	BufferSize int    `json:"buffer_size" yaml:"buffer_size"`
	LogDir     string `json:"log_dir,omitempty" yaml:"log_dir,omitempty"` // JSONL event log, disabled when empty
}

// Duration wraps time.Duration for JSON and YAML unmarshaling.
type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	// Remove quotes
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	dur, err := time.ParseDuration(value.Value)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}
