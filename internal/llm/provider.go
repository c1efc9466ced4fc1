package llm

import (
	"context"

	"github.com/ppiankov/factcheck/internal/model"
)

// Provider defines the interface for LLM transports
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate sends a single prompt and returns the raw reply envelope
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (*Reply, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// GenerateOptions tunes one Generate call. Zero values fall back to provider config.
type GenerateOptions struct {
	Model        string
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
	Tools        []Tool
}

// Tool is a capability the model may use while generating
type Tool struct {
	Type string
}

// ToolWebSearch asks the provider to ground the answer with live web search
var ToolWebSearch = Tool{Type: "web_search"}

// HasTool reports whether opts requests a tool of the given type
func (o GenerateOptions) HasTool(toolType string) bool {
	for _, t := range o.Tools {
		if t.Type == toolType {
			return true
		}
	}
	return false
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "gemini", "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific, empty means provider default)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (tests, proxies, Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens caps the response. 0 leaves the provider's own limit,
	// except anthropic which requires one.
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// ConfigFromModel converts model.Config to llm.Config
func ConfigFromModel(cfg *model.Config) Config {
	return Config{
		Provider:   cfg.LLM.Provider,
		Model:      cfg.LLM.Model,
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		Timeout:    cfg.LLM.Timeout,
		MaxTokens:  cfg.LLM.MaxTokens,
		HTTPProxy:  cfg.HTTP.HTTPProxy,
		HTTPSProxy: cfg.HTTP.HTTPSProxy,
		NoProxy:    cfg.HTTP.NoProxy,
	}
}
