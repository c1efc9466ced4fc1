package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/factcheck/internal/llm"
	"github.com/ppiankov/factcheck/internal/logging"
	"github.com/ppiankov/factcheck/internal/model"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=..."
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "factcheck",
	Short: "Factcheck - claim verification with web-grounded LLM answers",
	Long: `Factcheck sends a claim to a hosted LLM configured to search the web,
validates the structured answer and reports a verdict with its sources.

Verdicts: TRUE, LIKELY TRUE, MISLEADING, LIKELY FALSE, FALSE, UNVERIFIABLE.

A verdict is the model's assessment of the evidence it found, not a ruling.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "factcheck %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.factcheck/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads .env, the config file and environment variables
func initConfig() {
	// A missing .env is normal
	_ = godotenv.Load()

	v := viper.GetViper()
	bindConfig(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".factcheck"))
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}
}

// envAliases are unprefixed variables accepted for compatibility with
// common provider setups
var envAliases = map[string][]string{
	"llm.web_search": {"ALLOW_WEB_SEARCH"},
}

// providerEnv holds per-provider fallbacks applied after unmarshalling
var providerEnv = map[string]struct {
	apiKey  string
	model   string
	baseURL string
}{
	"gemini":    {apiKey: "GEMINI_API_KEY", model: "GEMINI_MODEL"},
	"openai":    {apiKey: "OPENAI_API_KEY"},
	"anthropic": {apiKey: "ANTHROPIC_API_KEY"},
	"ollama":    {baseURL: "OLLAMA_BASE_URL"},
}

// bindConfig registers defaults and environment bindings on v.
// Every key gets a default so that AutomaticEnv can resolve it.
func bindConfig(v *viper.Viper) {
	d := model.DefaultConfig()

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.base_url", d.LLM.BaseURL)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.temperature", d.LLM.Temperature)
	v.SetDefault("llm.max_tokens", d.LLM.MaxTokens)
	v.SetDefault("llm.web_search", d.LLM.WebSearch)

	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.http_proxy", d.HTTP.HTTPProxy)
	v.SetDefault("http.https_proxy", d.HTTP.HTTPSProxy)
	v.SetDefault("http.no_proxy", d.HTTP.NoProxy)

	v.SetDefault("sources.check", d.Sources.Check)
	v.SetDefault("sources.workers", d.Sources.Workers)
	v.SetDefault("sources.requests_per_second", d.Sources.RequestsPerSecond)
	v.SetDefault("sources.burst", d.Sources.Burst)
	v.SetDefault("sources.respect_robots", d.Sources.RespectRobots)
	v.SetDefault("sources.authority.primary_domains", d.Sources.Authority.PrimaryDomains)
	v.SetDefault("sources.authority.secondary_domains", d.Sources.Authority.SecondaryDomains)
	v.SetDefault("sources.authority.domain_map", d.Sources.Authority.DomainMap)

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("server.request_timeout", d.Server.RequestTimeout)
	v.SetDefault("server.trusted_proxies", d.Server.TrustedProxies)

	// FACTCHECK_LLM_API_KEY -> llm.api_key
	v.SetEnvPrefix("FACTCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, names := range envAliases {
		envKey := "FACTCHECK_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(append([]string{key, envKey}, names...)...)
	}
}

// loadConfig resolves the effective configuration from v
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	applyProviderEnv(cfg)
	return cfg, nil
}

// applyProviderEnv fills credentials and endpoints from the provider's own
// environment variables when the config leaves them empty
func applyProviderEnv(cfg *model.Config) {
	env, ok := providerEnv[llm.CanonicalProvider(cfg.LLM.Provider)]
	if !ok {
		return
	}
	if cfg.LLM.APIKey == "" && env.apiKey != "" {
		cfg.LLM.APIKey = os.Getenv(env.apiKey)
	}
	if cfg.LLM.Model == "" && env.model != "" {
		cfg.LLM.Model = os.Getenv(env.model)
	}
	if cfg.LLM.BaseURL == "" && env.baseURL != "" {
		cfg.LLM.BaseURL = os.Getenv(env.baseURL)
	}
}

// newLogger builds the command logger on stderr
func newLogger() *log.Logger {
	return logging.New(os.Stderr, verbose)
}

// apiKeyHint names the variable a user should set for the provider
func apiKeyHint(provider string) string {
	if !llm.RequiresAPIKey(provider) {
		return ""
	}
	if env, ok := providerEnv[llm.CanonicalProvider(provider)]; ok && env.apiKey != "" {
		return env.apiKey + " or FACTCHECK_LLM_API_KEY"
	}
	return "FACTCHECK_LLM_API_KEY"
}
