package model

import "time"

// Config holds the complete causalstats configuration
type Config struct {
	Data        DataConfig        `yaml:"data" mapstructure:"data"`
	Embedding   EmbeddingConfig   `yaml:"embedding" mapstructure:"embedding"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
}

// DataConfig locates the annotation sources
type DataConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`                 // Directory of per-author annotation JSON files
	DBPath     string `yaml:"db_path" mapstructure:"db_path"`         // SQLite store (unvalidated pool)
	ExportPath string `yaml:"export_path" mapstructure:"export_path"` // Final exported dataset JSON
}

// EmbeddingConfig configures the external embedding service boundary.
// Embedding vectors are consumed by the chart-rendering collaborator;
// this core only fetches and caches them.
type EmbeddingConfig struct {
	Model             string        `yaml:"model" mapstructure:"model"`
	APIKey            string        `yaml:"-" mapstructure:"-"` // From env, never persisted
	BaseURL           string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	BatchSize         int           `yaml:"batch_size" mapstructure:"batch_size"` // Texts per API request
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose      bool   `yaml:"verbose" mapstructure:"verbose"`
	LatexTables  bool   `yaml:"latex_tables" mapstructure:"latex_tables"`     // Emit delimiter-separated rows for the report
	TopSubdomain int    `yaml:"top_subdomains" mapstructure:"top_subdomains"` // Subdomains kept before folding into OTHER
	TopTrapTypes int    `yaml:"top_trap_types" mapstructure:"top_trap_types"`
	Delimiter    string `yaml:"delimiter" mapstructure:"delimiter"`           // Column separator for typeset rows
}

// ConcurrencyConfig sizes the embedding worker pool
type ConcurrencyConfig struct {
	EmbeddingWorkers int `yaml:"embedding_workers" mapstructure:"embedding_workers"`
}

// DefaultConfig returns the standard causalstats configuration
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:        "./data",
			DBPath:     "./prisma/dev.db",
			ExportPath: "./data/dataset.json",
		},
		Embedding: EmbeddingConfig{
			Model:             "text-embedding-3-small",
			Timeout:           2 * time.Minute,
			RequestsPerSecond: 2,
			Burst:             5,
			BatchSize:         64,
		},
		Output: OutputConfig{
			Verbose:      false,
			LatexTables:  true,
			TopSubdomain: 10,
			TopTrapTypes: 6,
			Delimiter:    " & ",
		},
		Concurrency: ConcurrencyConfig{
			EmbeddingWorkers: 4,
		},
	}
}
