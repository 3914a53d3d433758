package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"passage/internal/adapter/analyzer"
)

// Config holds all configuration for the passage tool.
type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Retrieve RetrieveConfig `yaml:"retrieve"`
	Pack     PackConfig     `yaml:"pack"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// EngineConfig holds the ranking parameters shared by both retrievers.
// Each retriever picks its own stop-word policy.
type EngineConfig struct {
	K1              float64 `yaml:"k1"`
	B               float64 `yaml:"b"`
	PageStopWords   string  `yaml:"page_stop_words"`   // strict | lenient
	CorpusStopWords string  `yaml:"corpus_stop_words"` // strict | lenient
}

// CorpusConfig holds ingestion configuration.
type CorpusConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK int `yaml:"top_k"`
}

// PackConfig holds context assembly configuration.
type PackConfig struct {
	TokenBudget int `yaml:"token_budget"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			K1:              1.5,
			B:               0.75,
			PageStopWords:   "lenient",
			CorpusStopWords: "strict",
		},
		Corpus: CorpusConfig{
			Includes: []string{"**/*.md", "**/*.txt"},
			Excludes: []string{"**/node_modules/**", "**/.git/**", "**/vendor/**"},
		},
		Retrieve: RetrieveConfig{
			TopK: 5,
		},
		Pack: PackConfig{
			TokenBudget: 4000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate rejects parameter values that would silently corrupt ranking.
func (c *Config) Validate() error {
	if c.Engine.K1 < 0 {
		return fmt.Errorf("config: engine.k1 must be >= 0, got %v", c.Engine.K1)
	}
	if c.Engine.B < 0 || c.Engine.B > 1 {
		return fmt.Errorf("config: engine.b must be in [0, 1], got %v", c.Engine.B)
	}
	if _, ok := analyzer.ParsePolicy(c.Engine.PageStopWords); !ok {
		return fmt.Errorf("config: engine.page_stop_words must be strict or lenient, got %q", c.Engine.PageStopWords)
	}
	if _, ok := analyzer.ParsePolicy(c.Engine.CorpusStopWords); !ok {
		return fmt.Errorf("config: engine.corpus_stop_words must be strict or lenient, got %q", c.Engine.CorpusStopWords)
	}
	if c.Retrieve.TopK <= 0 {
		return fmt.Errorf("config: retrieve.top_k must be positive, got %d", c.Retrieve.TopK)
	}
	if c.Pack.TokenBudget <= 0 {
		return fmt.Errorf("config: pack.token_budget must be positive, got %d", c.Pack.TokenBudget)
	}
	return nil
}

// Load loads configuration from a YAML file, applying defaults for any
// missing keys. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for
// passage.yaml, then .passage/config.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "passage.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".passage", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CorpusDBPath returns the path to the stored corpus database.
func CorpusDBPath(dir string) string {
	return filepath.Join(dir, ".passage", "corpus.db")
}

// EnsureDir ensures the .passage directory exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".passage"), 0755)
}
