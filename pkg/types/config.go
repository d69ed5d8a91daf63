package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-tracker/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// FetchConfig holds settings for the feed fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Category is the default arXiv category to sync (default "cs.AI").
	Category string `json:"category" yaml:"category" mapstructure:"category"`

	// MaxResults is the default number of records per sync (default 10).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// MaxRetries bounds rate-limit retries against the feed API (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// StoreConfig holds settings for the collection store.
type StoreConfig struct {
	// DataDir is the directory holding the snapshot database and exports
	// (default "data/").
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
}

// AnalysisConfig holds settings for the text-analysis stage.
type AnalysisConfig struct {
	// TopKeywords is how many keywords to keep per paper (default 5).
	TopKeywords int `json:"top_keywords" yaml:"top_keywords" mapstructure:"top_keywords"`
}

// Config groups all stage configurations for the tracker.
type Config struct {
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	Store    StoreConfig    `json:"store" yaml:"store" mapstructure:"store"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis" mapstructure:"analysis"`
}

// Defaults fills zero-valued fields with the documented defaults.
func (c *Config) Defaults() {
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = 30 * time.Second
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "arxiv-tracker/0.1"
	}
	if c.Fetch.Category == "" {
		c.Fetch.Category = "cs.AI"
	}
	if c.Fetch.MaxResults <= 0 {
		c.Fetch.MaxResults = 10
	}
	if c.Fetch.MaxRetries <= 0 {
		c.Fetch.MaxRetries = 3
	}
	if c.Store.DataDir == "" {
		c.Store.DataDir = "data"
	}
	if c.Analysis.TopKeywords <= 0 {
		c.Analysis.TopKeywords = 5
	}
}
