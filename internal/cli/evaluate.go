package cli

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/veracity/internal/logging"
	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/pipeline"
)

var (
	query       string
	outFormat   string
	outPath     string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	insecureTLS bool
	robots      bool
	similarity  string
	sentiment   string
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate <url>",
	Short: "Score the credibility of a URL for a query",
	Long: `Evaluate fetches a web page and rates it as a source for the query:
- Domain trust from the authority table
- Relevance of the paragraph text to the query
- Fact-check coverage of the opening text
- Bias from the sentiment of the opening text
- Scholarly citations of the URL

Example:
  veracity evaluate --query "What are the benefits of buying a house?" https://www.investopedia.com/buying-a-house
  veracity evaluate -q "mortgage rates" https://example.com --format md --out report.md
  veracity evaluate -q "mortgage rates" https://example.com --similarity openai --sentiment anthropic`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	defaults := model.DefaultConfig()

	evaluateCmd.Flags().StringVarP(&query, "query", "q", "", "the user query the page is evaluated against (required)")
	_ = evaluateCmd.MarkFlagRequired("query")

	// Output flags
	evaluateCmd.Flags().StringVar(&outFormat, "format", defaults.Output.Format, "output format: json, yaml, md, legacy")
	evaluateCmd.Flags().StringVar(&outPath, "out", "", "write the result to this path instead of stdout")

	// HTTP flags
	evaluateCmd.Flags().DurationVar(&timeout, "timeout", defaults.HTTP.Timeout, "page fetch timeout")
	evaluateCmd.Flags().StringVar(&userAgent, "ua", defaults.HTTP.UserAgent, "HTTP User-Agent")
	evaluateCmd.Flags().Int64Var(&maxBytes, "max-bytes", defaults.HTTP.MaxBodyBytes, "max response bytes to read")
	evaluateCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	evaluateCmd.Flags().BoolVar(&robots, "robots", false, "honor robots.txt before fetching")

	// Model flags
	evaluateCmd.Flags().StringVar(&similarity, "similarity", defaults.Models.Similarity.Backend, "similarity backend: lexical, openai, ollama, huggingface")
	evaluateCmd.Flags().StringVar(&sentiment, "sentiment", defaults.Models.Sentiment.Backend, "sentiment backend: lexical, openai, anthropic, ollama, huggingface")
}

// bindFlags maps flags onto configuration keys; a flag wins only when set
func bindFlags() {
	bindings := map[string]string{
		"output.format":             "format",
		"output.path":               "out",
		"http.timeout":              "timeout",
		"http.user_agent":           "ua",
		"http.max_body_bytes":       "max-bytes",
		"http.insecure_tls":         "insecure",
		"http.respect_robots":       "robots",
		"models.similarity.backend": "similarity",
		"models.sentiment.backend":  "sentiment",
	}
	for key, flag := range bindings {
		_ = viper.BindPFlag(key, evaluateCmd.Flags().Lookup(flag))
	}
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	url := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := pipeline.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	logger := logging.SetDefaultCLILogger(cfg.Log.Level)
	logger.Debug("evaluating", "url", url, "query", query,
		"similarity", cfg.Models.Similarity.Backend,
		"sentiment", cfg.Models.Sentiment.Backend,
		"timeout", cfg.HTTP.Timeout)

	p, err := pipeline.New(cfg, pipeline.WithLogger(logger.WithGroup("pipeline")))
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	defer p.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := p.Evaluate(ctx, model.Request{Query: query, URL: url})
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	if err := pipeline.WriteResult(result, format, cfg.Output.Path, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	if cfg.Output.Path != "" {
		logger.Info("wrote result", "path", cfg.Output.Path, "format", string(format))
	}

	pipeline.RenderSummary(cmd.ErrOrStderr(), result)
	return nil
}

