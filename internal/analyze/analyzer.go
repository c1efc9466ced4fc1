package analyze

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ppiankov/factcheck/internal/llm"
	"github.com/ppiankov/factcheck/internal/model"
)

// DefaultTemperature is used when the configuration leaves temperature unset
const DefaultTemperature = 0.1

// Analyzer verifies claims against a single provider. It holds no mutable
// state and is safe for concurrent use.
type Analyzer struct {
	provider   llm.Provider
	normalizer *Normalizer
	logger     *log.Logger
	now        func() time.Time

	model       string
	temperature float64
	maxTokens   int
	webSearch   bool
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithLogger sets the logger used for diagnostics
func WithLogger(logger *log.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithClock overrides the clock used to date prompts
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// New resolves the configured provider. Missing credentials and client
// construction failures are returned as configuration errors.
func New(cfg *model.Config, opts ...Option) (*Analyzer, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	if !llm.KnownProvider(cfg.LLM.Provider) {
		return nil, newError(CategoryConfiguration, MsgInitFailed, fmt.Errorf("%w: %s", llm.ErrUnknownProvider, cfg.LLM.Provider))
	}
	if llm.RequiresAPIKey(cfg.LLM.Provider) && cfg.LLM.APIKey == "" {
		return nil, newError(CategoryConfiguration, MsgMissingAPIKey, llm.ErrMissingAPIKey)
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg))
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return nil, newError(CategoryConfiguration, MsgMissingAPIKey, err)
		}
		return nil, newError(CategoryConfiguration, MsgInitFailed, err)
	}

	return NewWithProvider(provider, cfg, opts...), nil
}

// NewWithProvider builds an Analyzer around an existing provider
func NewWithProvider(provider llm.Provider, cfg *model.Config, opts ...Option) *Analyzer {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	a := &Analyzer{
		provider:    provider,
		logger:      log.Default(),
		now:         time.Now,
		model:       llm.ResolveModel(provider.Name(), cfg.LLM.Model),
		temperature: cfg.LLM.Temperature,
		maxTokens:   cfg.LLM.MaxTokens,
		webSearch:   cfg.LLM.WebSearch,
	}
	if a.temperature == 0 {
		a.temperature = DefaultTemperature
	}

	for _, opt := range opts {
		opt(a)
	}
	a.normalizer = NewNormalizer(a.logger)

	return a
}

// ProviderName returns the name of the underlying provider
func (a *Analyzer) ProviderName() string {
	return a.provider.Name()
}

// Model returns the resolved model identifier
func (a *Analyzer) Model() string {
	return a.model
}

// WebSearch reports whether requests ask for web search grounding
func (a *Analyzer) WebSearch() bool {
	return a.webSearch
}

// Analyze checks one claim. On failure the error is always an *Error.
func (a *Analyzer) Analyze(ctx context.Context, claim string) (*model.AnalysisResult, error) {
	opts := llm.GenerateOptions{
		Model:        a.model,
		SystemPrompt: SystemInstruction,
		Temperature:  a.temperature,
		MaxTokens:    a.maxTokens,
	}
	if a.webSearch {
		opts.Tools = []llm.Tool{llm.ToolWebSearch}
	}

	prompt := BuildPrompt(claim, a.now())

	start := time.Now()
	a.logger.Debug("calling provider", "provider", a.provider.Name(), "model", a.model, "web_search", a.webSearch)

	reply, err := a.provider.Generate(ctx, prompt, opts)
	if err != nil {
		classified := ClassifyTransport(err)
		a.logger.Error("provider call failed", "provider", a.provider.Name(), "category", classified.Category, "err", err)
		return nil, classified
	}

	if reply != nil {
		a.logger.Debug("provider call finished", "provider", a.provider.Name(), "duration", time.Since(start), "tokens", reply.TokensUsed)
	}

	result, err := a.normalizer.Normalize(reply)
	if err != nil {
		return nil, Classify(err)
	}
	return result, nil
}
