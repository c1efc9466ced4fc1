package llm

import (
	"fmt"
	"strings"
)

var defaultModels = map[string]string{
	"gemini":    "gemini-2.5-pro",
	"openai":    "gpt-4o-mini",
	"anthropic": "claude-sonnet-4-5",
}

// NewProvider creates a new LLM provider based on configuration
func NewProvider(config Config) (Provider, error) {
	switch CanonicalProvider(config.Provider) {
	case "gemini":
		return NewGeminiProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("%w: %s (supported: gemini, openai, anthropic, ollama)", ErrUnknownProvider, config.Provider)
	}
}

// DefaultModel returns the model used when none is configured
func DefaultModel(provider string) string {
	return defaultModels[CanonicalProvider(provider)]
}

// ResolveModel picks the requested model, then the configured one, then the provider default
func ResolveModel(provider string, candidates ...string) string {
	for _, m := range candidates {
		if m = strings.TrimSpace(m); m != "" {
			return m
		}
	}
	return DefaultModel(provider)
}

// KnownProvider reports whether name, after aliasing, is a supported provider
func KnownProvider(name string) bool {
	switch CanonicalProvider(name) {
	case "gemini", "openai", "anthropic", "ollama":
		return true
	default:
		return false
	}
}

// RequiresAPIKey reports whether the provider needs a credential
func RequiresAPIKey(provider string) bool {
	return CanonicalProvider(provider) != "ollama"
}

// CanonicalProvider maps aliases ("", "google", "claude") to provider names
func CanonicalProvider(name string) string {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "", "google":
		return "gemini"
	case "claude":
		return "anthropic"
	default:
		return n
	}
}
