package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/veracity/internal/model"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Veracity configuration",
	Long: `Manage Veracity configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (VERACITY_*)
3. Config file (~/.veracity/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after merging defaults, config file, environment variables and flags. API keys are never printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "No configuration file found (using defaults)\n\n")
		}

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprint(out, string(yamlData))
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, "# API keys:")
		printKeyStatus(cmd, "models.similarity", cfg.Models.Similarity.APIKey)
		printKeyStatus(cmd, "models.sentiment", cfg.Models.Sentiment.APIKey)
		printKeyStatus(cmd, "lookups.factcheck", cfg.Lookups.FactCheck.APIKey)
		printKeyStatus(cmd, "lookups.citation", cfg.Lookups.Citation.APIKey)

		return nil
	},
}

func printKeyStatus(cmd *cobra.Command, name, key string) {
	status := "not set"
	if key != "" {
		status = "set"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "#   %s: %s\n", name, status)
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.veracity/config.yaml (or the --config path) with all available options.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := cfgFile
		if configPath == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("error finding home directory: %w", err)
			}
			configPath = filepath.Join(home, ".veracity", "config.yaml")
		}

		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'veracity config show' to view it, or delete it first to recreate", configPath)
		}

		if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		data, err := renderDefaultConfig()
		if err != nil {
			return err
		}
		if err := os.WriteFile(configPath, data, 0o600); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "✓ Created default configuration: %s\n", configPath)
		_, _ = fmt.Fprintf(out, "\nTo view the configuration:\n")
		_, _ = fmt.Fprintf(out, "  veracity config show\n")
		return nil
	},
}

// renderDefaultConfig produces the commented default configuration file
func renderDefaultConfig() ([]byte, error) {
	yamlData, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("error marshaling config: %w", err)
	}

	header := `# Veracity Configuration File
#
# Configuration hierarchy (highest to lowest priority):
#   1. CLI flags
#   2. Environment variables (VERACITY_*, e.g. VERACITY_HTTP_TIMEOUT=20s)
#   3. This config file
#   4. Built-in defaults
#
# weights must be non-negative and sum to 1.0.
# authority.domain_scores pins a 0-100 trust score per domain; subdomains match too:
#   domain_scores:
#     - domain: investopedia.com
#       score: 70

`
	footer := `
# API keys are read from the environment only:
#   export OPENAI_API_KEY=sk-...          # models.*.backend: openai
#   export ANTHROPIC_API_KEY=sk-ant-...   # models.sentiment.backend: anthropic
#   export HF_API_TOKEN=hf_...            # models.*.backend: huggingface
#   export OLLAMA_BASE_URL=http://localhost:11434
#   export FACTCHECK_API_KEY=...          # Google Fact Check Tools
#   export SERPAPI_API_KEY=...            # SerpAPI Google Scholar
`
	return append(append([]byte(header), yamlData...), footer...), nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
