package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ppiankov/factcheck/internal/model"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		apiKey   string
		wantName string
		wantErr  bool
	}{
		{provider: "", apiKey: "k", wantName: "gemini"},
		{provider: "gemini", apiKey: "k", wantName: "gemini"},
		{provider: "Google", apiKey: "k", wantName: "gemini"},
		{provider: "openai", apiKey: "k", wantName: "openai"},
		{provider: "claude", apiKey: "k", wantName: "anthropic"},
		{provider: "anthropic", apiKey: "k", wantName: "anthropic"},
		{provider: "ollama", wantName: "ollama"},
		{provider: "gemini", wantErr: true},
		{provider: "palm", apiKey: "k", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.provider+"/"+tt.apiKey, func(t *testing.T) {
			p, err := NewProvider(Config{Provider: tt.provider, APIKey: tt.apiKey})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q", tt.provider)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Expected %s, got %s", tt.wantName, p.Name())
			}
		})
	}
}

func TestResolveModel(t *testing.T) {
	if got := ResolveModel("gemini", "", "  "); got != "gemini-2.5-pro" {
		t.Errorf("Expected provider default, got %s", got)
	}
	if got := ResolveModel("openai", "", "gpt-4o"); got != "gpt-4o" {
		t.Errorf("Expected configured model, got %s", got)
	}
	if got := ResolveModel("openai", "o3", "gpt-4o"); got != "o3" {
		t.Errorf("Expected requested model, got %s", got)
	}
	if got := ResolveModel("ollama"); got != "" {
		t.Errorf("Expected no default for ollama, got %s", got)
	}
}

func TestKnownProvider(t *testing.T) {
	for _, name := range []string{"", "gemini", "Google", "openai", "claude", "anthropic", "ollama"} {
		if !KnownProvider(name) {
			t.Errorf("Expected %q to be known", name)
		}
	}
	if KnownProvider("palm") {
		t.Error("Expected palm to be unknown")
	}

	_, err := NewProvider(Config{Provider: "palm", APIKey: "k"})
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("Expected ErrUnknownProvider, got %v", err)
	}
}

func TestRequiresAPIKey(t *testing.T) {
	if !RequiresAPIKey("gemini") || !RequiresAPIKey("") || !RequiresAPIKey("claude") {
		t.Error("Expected hosted providers to require a key")
	}
	if RequiresAPIKey("ollama") {
		t.Error("Expected ollama not to require a key")
	}
}

func TestConfigFromModel(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.LLM.APIKey = "k"
	cfg.HTTP.HTTPSProxy = "http://proxy:3128"

	got := ConfigFromModel(cfg)
	if got.Provider != "gemini" || got.APIKey != "k" || got.Timeout != 60 {
		t.Errorf("Unexpected config: %+v", got)
	}
	if got.HTTPSProxy != "http://proxy:3128" {
		t.Errorf("Expected proxy to carry over, got %q", got.HTTPSProxy)
	}
}

func TestStatusCode(t *testing.T) {
	wrapped := fmt.Errorf("call failed: %w", &StatusError{Provider: "gemini", StatusCode: 403})
	if code, ok := StatusCode(wrapped); !ok || code != 403 {
		t.Errorf("Expected 403, got %d (ok=%v)", code, ok)
	}

	if _, ok := StatusCode(errors.New("plain")); ok {
		t.Error("Expected no status for plain error")
	}
	if _, ok := StatusCode(nil); ok {
		t.Error("Expected no status for nil")
	}
}

func TestStatusError_Message(t *testing.T) {
	err := &StatusError{Provider: "gemini", StatusCode: 500}
	if err.Error() != "gemini API error (500)" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	err.Message = "boom"
	if err.Error() != "gemini API error (500): boom" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestGenerateOptions_HasTool(t *testing.T) {
	opts := GenerateOptions{Tools: []Tool{ToolWebSearch}}
	if !opts.HasTool("web_search") {
		t.Error("Expected web_search tool")
	}
	if (GenerateOptions{}).HasTool("web_search") {
		t.Error("Expected no tools")
	}
}

func TestCanonicalProvider(t *testing.T) {
	tests := map[string]string{
		"":          "gemini",
		" Google ":  "gemini",
		"claude":    "anthropic",
		"OpenAI":    "openai",
		"ollama":    "ollama",
		"something": "something",
	}
	for in, want := range tests {
		if got := CanonicalProvider(in); got != want {
			t.Errorf("CanonicalProvider(%q) = %q, want %q", in, got, want)
		}
	}
}
