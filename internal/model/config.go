package model

import "time"

// Config is the complete application configuration.
// Hierarchy (highest first): CLI flags, environment, config file, defaults.
type Config struct {
	LLM     LLMConfig     `yaml:"llm" mapstructure:"llm"`
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	Sources SourcesConfig `yaml:"sources" mapstructure:"sources"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
}

// LLMConfig selects and tunes the model transport
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // gemini, openai, anthropic, ollama
	Model       string  `yaml:"model" mapstructure:"model"`       // Empty means provider default
	APIKey      string  `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL     string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout     int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	WebSearch   bool    `yaml:"web_search" mapstructure:"web_search"`
}

// HTTPConfig applies to outbound requests that are not model calls
type HTTPConfig struct {
	UserAgent  string        `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
	HTTPProxy  string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// SourcesConfig controls optional post-analysis source checks
type SourcesConfig struct {
	Check             bool            `yaml:"check" mapstructure:"check"`
	Workers           int             `yaml:"workers" mapstructure:"workers"`
	RequestsPerSecond float64         `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int             `yaml:"burst" mapstructure:"burst"`
	RespectRobots     bool            `yaml:"respect_robots" mapstructure:"respect_robots"`
	Authority         AuthorityConfig `yaml:"authority" mapstructure:"authority"`
}

// AuthorityConfig lists domains per authority tier
type AuthorityConfig struct {
	PrimaryDomains   []string          `yaml:"primary_domains" mapstructure:"primary_domains"`
	SecondaryDomains []string          `yaml:"secondary_domains" mapstructure:"secondary_domains"`
	DomainMap        map[string]string `yaml:"domain_map,omitempty" mapstructure:"domain_map"` // host -> tier name
}

// ServerConfig controls the JSON API
type ServerConfig struct {
	Addr           string        `yaml:"addr" mapstructure:"addr"`
	AllowedOrigins []string      `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
	TrustedProxies []string      `yaml:"trusted_proxies" mapstructure:"trusted_proxies"` // CIDRs or IPs allowed to set X-Forwarded-For
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "gemini",
			Timeout:     60,
			Temperature: 0.1,
		},
		HTTP: HTTPConfig{
			UserAgent: "factcheck/0.1 (+https://github.com/ppiankov/factcheck)",
			Timeout:   10 * time.Second,
		},
		Sources: SourcesConfig{
			Workers:           4,
			RequestsPerSecond: 2,
			Burst:             2,
			RespectRobots:     true,
			Authority: AuthorityConfig{
				PrimaryDomains: []string{
					"who.int",
					"cdc.gov",
					"nih.gov",
					"europa.eu",
					"un.org",
					"doi.org",
					"nature.com",
					"science.org",
				},
				SecondaryDomains: []string{
					"wikipedia.org",
					"reuters.com",
					"apnews.com",
					"bbc.co.uk",
					"bbc.com",
					"factcheck.org",
					"snopes.com",
					"politifact.com",
				},
			},
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
			RequestTimeout: 90 * time.Second,
		},
	}
}
