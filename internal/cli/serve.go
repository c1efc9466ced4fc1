package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/factcheck/internal/analyze"
	"github.com/ppiankov/factcheck/internal/server"
	"github.com/ppiankov/factcheck/internal/validate"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API for a browser front-end",
	Long: `Serve exposes claim checking over HTTP:

  POST /api/analyze   {"claim": "..."}  -> verdict, summary, reasoning, sources
  GET  /api/health                      -> provider, model, web search flag
  GET  /api/verdicts                    -> verdict values, labels and tones

Only one analysis per client runs at a time.

Example:
  factcheck serve
  factcheck serve --addr :9090 --origin https://factcheck.example`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().StringSlice("origin", []string{"http://localhost:3000"}, "allowed CORS origin (repeatable, * for any)")

	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.allowed_origins", serveCmd.Flags().Lookup("origin"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	logger := newLogger()

	analyzer, err := analyze.New(cfg, analyze.WithLogger(logger))
	if err != nil {
		if hint := apiKeyHint(cfg.LLM.Provider); hint != "" && cfg.LLM.APIKey == "" {
			return fmt.Errorf("%w (set %s)", err, hint)
		}
		return err
	}

	var checker server.SourceChecker
	if cfg.Sources.Check {
		checker = validate.NewChecker(cfg, logger)
	}

	logger.Info("starting API", "provider", analyzer.ProviderName(), "model", analyzer.Model(), "web_search", analyzer.WebSearch(), "source_checks", cfg.Sources.Check)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.Server, analyzer, checker, logger).Run(ctx)
}
