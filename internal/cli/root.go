package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/veracity/internal/model"
)

var (
	cfgFile  string
	verbose  bool
	logLevel string

	version = "dev"
	commit  = "none"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "veracity",
	Short: "Veracity - source credibility scoring for search results",
	Long: `Veracity rates how credible a web page is as an answer to a query.

It fetches the page, computes five signals (domain trust, relevance,
fact-check coverage, bias and citations), combines them into a 0-100
validity score and translates that into a 1-5 star rating with a short
explanation.

Every signal has a documented default, so an evaluation always completes:
an unreachable page or an unavailable model lowers confidence, it does not
fail the run.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion records build information for the version command
func SetVersion(v, c string) {
	version = v
	commit = c
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Veracity.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "veracity %s (commit: %s)\n", version, commit)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.veracity/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	registerDefaults()
	bindFlags()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".veracity"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match VERACITY_*, e.g. VERACITY_HTTP_TIMEOUT
	viper.SetEnvPrefix("VERACITY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Secrets are never written to the config file; they come from the environment
	_ = viper.BindEnv("lookups.factcheck.api_key", "VERACITY_LOOKUPS_FACTCHECK_API_KEY", "FACTCHECK_API_KEY")
	_ = viper.BindEnv("lookups.citation.api_key", "VERACITY_LOOKUPS_CITATION_API_KEY", "SERPAPI_API_KEY")
	_ = viper.BindEnv("models.similarity.api_key", "VERACITY_MODELS_SIMILARITY_API_KEY")
	_ = viper.BindEnv("models.sentiment.api_key", "VERACITY_MODELS_SENTIMENT_API_KEY")

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", cfgFile, err)
	}
}

// registerDefaults makes every key of the default configuration known to
// viper, so that environment variables can override keys absent from the file
func registerDefaults() {
	data, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return
	}

	defaults := viper.New()
	defaults.SetConfigType("yaml")
	if err := defaults.ReadConfig(bytes.NewReader(data)); err != nil {
		return
	}
	for _, key := range defaults.AllKeys() {
		viper.SetDefault(key, defaults.Get(key))
	}
}

// loadConfig assembles the effective configuration: defaults, config file,
// environment, then flags
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	if verbose {
		cfg.Log.Level = "debug"
	}

	resolveBackendSecrets(&cfg.Models.Similarity)
	resolveBackendSecrets(&cfg.Models.Sentiment)

	return cfg, nil
}

// resolveBackendSecrets fills the API key and base URL of a model backend
// from the provider's conventional environment variables
func resolveBackendSecrets(b *model.BackendConfig) {
	switch strings.ToLower(b.Backend) {
	case "openai":
		if b.APIKey == "" {
			b.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "anthropic", "claude":
		if b.APIKey == "" {
			b.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case "huggingface", "hf":
		if b.APIKey == "" {
			b.APIKey = os.Getenv("HF_API_TOKEN")
		}
	case "ollama":
		if b.BaseURL == "" {
			b.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
}
