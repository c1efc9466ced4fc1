package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/factcheck/internal/analyze"
	"github.com/ppiankov/factcheck/internal/model"
	"github.com/ppiankov/factcheck/internal/validate"
)

// msgBlankClaim matches the API's validation message
const msgBlankClaim = "Please enter a claim to analyze."

// errBlankClaim is returned before any request is made
var errBlankClaim = errors.New("claim is blank")

var (
	checkTimeout time.Duration
	checkJSON    bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim...>",
	Short: "Check a single claim and print the verdict",
	Long: `Check sends the claim to the configured LLM provider, validates the
structured answer and prints the verdict, summary, reasoning and sources.

With web search enabled (gemini only) sources come from the search results
the model used. Source checks optionally probe each source for reachability
and authority.

Example:
  factcheck check "The Great Wall of China is visible from space"
  factcheck check --web-search --check-sources "Coffee stunts growth"
  factcheck check --provider openai --model gpt-4o --json "Bats are blind"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().String("provider", "gemini", "LLM provider (gemini, openai, anthropic, ollama)")
	checkCmd.Flags().String("model", "", "model name (default: provider default)")
	checkCmd.Flags().Bool("web-search", false, "ground the answer with web search (gemini)")
	checkCmd.Flags().Bool("check-sources", false, "probe each source after analysis")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall timeout for the check")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the result as JSON")

	_ = viper.BindPFlag("llm.provider", checkCmd.Flags().Lookup("provider"))
	_ = viper.BindPFlag("llm.model", checkCmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("llm.web_search", checkCmd.Flags().Lookup("web-search"))
	_ = viper.BindPFlag("sources.check", checkCmd.Flags().Lookup("check-sources"))
}

func runCheck(cmd *cobra.Command, args []string) error {
	claim := strings.TrimSpace(strings.Join(args, " "))
	if claim == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), msgBlankClaim)
		return errBlankClaim
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
	defer cancel()

	return checkClaim(ctx, cfg, claim, newLogger(), cmd.OutOrStdout(), checkJSON)
}

// checkOutput is the --json shape
type checkOutput struct {
	*model.AnalysisResult
	SourceChecks []model.SourceCheck `json:"source_checks,omitempty"`
}

// checkClaim runs one analysis and writes the result to out
func checkClaim(ctx context.Context, cfg *model.Config, claim string, logger *log.Logger, out io.Writer, asJSON bool) error {
	analyzer, err := analyze.New(cfg, analyze.WithLogger(logger))
	if err != nil {
		if analyze.IsCategory(err, analyze.CategoryConfiguration) {
			if hint := apiKeyHint(cfg.LLM.Provider); hint != "" && cfg.LLM.APIKey == "" {
				return fmt.Errorf("%w (set %s)", err, hint)
			}
		}
		return err
	}

	logger.Debug("checking claim", "provider", analyzer.ProviderName(), "model", analyzer.Model(), "web_search", analyzer.WebSearch())

	result, err := analyzer.Analyze(ctx, claim)
	if err != nil {
		return err
	}

	var checks []model.SourceCheck
	if cfg.Sources.Check && len(result.Sources) > 0 {
		checks = validate.NewChecker(cfg, logger).Check(ctx, result.Sources)
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(checkOutput{AnalysisResult: result, SourceChecks: checks})
	}

	return renderText(out, result, checks)
}
