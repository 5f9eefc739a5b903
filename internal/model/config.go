package model

import "time"

// Config is the full configuration of an evaluation pipeline
type Config struct {
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	Weights   Weights         `yaml:"weights" mapstructure:"weights"`
	Authority AuthorityConfig `yaml:"authority" mapstructure:"authority"`
	Models    ModelsConfig    `yaml:"models" mapstructure:"models"`
	Lookups   LookupsConfig   `yaml:"lookups" mapstructure:"lookups"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// HTTPConfig controls page retrieval
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// AuthorityConfig feeds the domain trust table
type AuthorityConfig struct {
	DomainScores     []DomainScore `yaml:"domain_scores,omitempty" mapstructure:"domain_scores"` // checked first
	PrimaryDomains   []string      `yaml:"primary_domains" mapstructure:"primary_domains"`
	SecondaryDomains []string      `yaml:"secondary_domains" mapstructure:"secondary_domains"`
	DomainsFile      string        `yaml:"domains_file,omitempty" mapstructure:"domains_file"` // optional YAML file of host -> score
}

// DomainScore pins the trust score of a domain and its subdomains.
// A list rather than a map: config keys are split on dots, host names are not.
type DomainScore struct {
	Domain string  `yaml:"domain" mapstructure:"domain"`
	Score  float64 `yaml:"score" mapstructure:"score"`
}

// ModelsConfig selects the similarity and sentiment backends
type ModelsConfig struct {
	Similarity BackendConfig `yaml:"similarity" mapstructure:"similarity"`
	Sentiment  BackendConfig `yaml:"sentiment" mapstructure:"sentiment"`
}

// BackendConfig describes one model backend
type BackendConfig struct {
	Backend string        `yaml:"backend" mapstructure:"backend"` // lexical, openai, anthropic, ollama, huggingface
	Model   string        `yaml:"model,omitempty" mapstructure:"model"`
	BaseURL string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	APIKey  string        `yaml:"-" mapstructure:"api_key"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LookupsConfig configures the external fact-check and citation services
type LookupsConfig struct {
	FactCheck LookupConfig `yaml:"factcheck" mapstructure:"factcheck"`
	Citation  LookupConfig `yaml:"citation" mapstructure:"citation"`
}

// LookupConfig describes one external lookup service
type LookupConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	BaseURL string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	APIKey  string        `yaml:"-" mapstructure:"api_key"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// OutputConfig controls result rendering
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // json, yaml, md, legacy
	Path   string `yaml:"path,omitempty" mapstructure:"path"`
}

// LogConfig controls logging
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "Veracity/0.1 (+https://github.com/ppiankov/veracity)",
			MaxBodyBytes: 2_000_000,
		},
		Weights: DefaultWeights(),
		Authority: AuthorityConfig{
			PrimaryDomains: []string{
				"who.int",
				"nih.gov",
				"europa.eu",
				"un.org",
				"nature.com",
				"science.org",
				"arxiv.org",
				"doi.org",
			},
			SecondaryDomains: []string{
				"wikipedia.org",
				"britannica.com",
				"reuters.com",
				"apnews.com",
				"bbc.co.uk",
				"bbc.com",
				"nytimes.com",
				"theguardian.com",
				"investopedia.com",
			},
		},
		Models: ModelsConfig{
			Similarity: BackendConfig{Backend: "lexical", Timeout: 30 * time.Second},
			Sentiment:  BackendConfig{Backend: "lexical", Timeout: 30 * time.Second},
		},
		Lookups: LookupsConfig{
			FactCheck: LookupConfig{
				Enabled: true,
				BaseURL: "https://factchecktools.googleapis.com",
				Timeout: 10 * time.Second,
			},
			Citation: LookupConfig{
				Enabled: true,
				BaseURL: "https://serpapi.com",
				Timeout: 10 * time.Second,
			},
		},
		Output: OutputConfig{Format: "json"},
		Log:    LogConfig{Level: "info"},
	}
}
