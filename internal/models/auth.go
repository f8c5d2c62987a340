package models

import (
	"fmt"
	"os"
	"strings"

	"github.com/dohr-michael/todobrain/internal/config"
)

// defaultKeyEnv maps drivers to the environment variable holding their API key.
var defaultKeyEnv = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"mistral":   "MISTRAL_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"gemini":    "GEMINI_API_KEY",
}

// ResolveAPIKey resolves the API key for a provider.
// Resolution order: direct api_key (or ${VAR} reference) → driver default env.
func ResolveAPIKey(cfg config.ProviderConfig) (string, error) {
	key := strings.TrimSpace(cfg.Auth.APIKey)
	if strings.HasPrefix(key, "${") && strings.HasSuffix(key, "}") {
		key = os.Getenv(key[2 : len(key)-1])
	}
	if key != "" {
		return key, nil
	}

	env, ok := defaultKeyEnv[strings.ToLower(cfg.Driver)]
	if !ok {
		return "", fmt.Errorf("unknown driver %q: cannot resolve auth", cfg.Driver)
	}
	if v := os.Getenv(env); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%s not set", env)
}
