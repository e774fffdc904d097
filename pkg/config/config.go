// Package config provides the unified configuration for the SDE converter.
// A single Config structure carries every knob the pipeline honors: input
// root, output layout, batch limit, default localization language, and
// logging. Values come from defaults, an optional JSON config file, and CLI
// flags, applied in that order.
package config

import (
	"os"
	"path/filepath"

	"github.com/zenevan/sde2sql/pkg/errors"
)

// DefaultBatchSize is the maximum number of rows per generated SQL file.
const DefaultBatchSize = 1000

// DefaultLanguage is the language key read from localized-text fields.
const DefaultLanguage = "en"

// Config is the single configuration structure for a conversion run.
type Config struct {
	// InputRoot is the SDE root directory to convert (required)
	InputRoot string `json:"input_root"`

	// OutputDir receives the generated SQL scripts; defaults to
	// <input_root>/sql when empty
	OutputDir string `json:"output_dir"`

	// BatchSize caps the number of rows per SQL file
	BatchSize int `json:"batch_size"`

	// Language selects the localized-text translation to emit
	Language string `json:"language"`

	// SpaceTypes lists the universe subtrees to traverse
	SpaceTypes []string `json:"space_types"`

	// ReportPath, when set, receives a JSON conversion report
	ReportPath string `json:"report_path"`

	// Logging controls log output
	Logging LoggingConfig `json:"logging"`
}

// LoggingConfig controls log verbosity and encoding.
type LoggingConfig struct {
	// Level is the minimum level to emit (debug, info, warn, error)
	Level string `json:"level"`
	// Format selects the encoder (console or json)
	Format string `json:"format"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		BatchSize:  DefaultBatchSize,
		Language:   DefaultLanguage,
		SpaceTypes: []string{"eve", "void", "wormhole", "abyssal"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ApplyDefaults fills zero-valued fields that depend on other fields.
func (c *Config) ApplyDefaults() {
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if len(c.SpaceTypes) == 0 {
		c.SpaceTypes = []string{"eve", "void", "wormhole", "abyssal"}
	}
	if c.OutputDir == "" && c.InputRoot != "" {
		c.OutputDir = filepath.Join(c.InputRoot, "sql")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}

// Validate checks the configuration for a runnable conversion.
func (c *Config) Validate() error {
	if c.InputRoot == "" {
		return errors.New(errors.ErrorTypeConfig, "input root is required")
	}

	info, err := os.Stat(c.InputRoot)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "input root does not exist").
			WithDetail("input_root", c.InputRoot)
	}
	if !info.IsDir() {
		return errors.New(errors.ErrorTypeConfig, "input root is not a directory").
			WithDetail("input_root", c.InputRoot)
	}

	if c.BatchSize <= 0 {
		return errors.New(errors.ErrorTypeConfig, "batch size must be positive").
			WithDetail("batch_size", c.BatchSize)
	}

	if c.Language == "" {
		return errors.New(errors.ErrorTypeConfig, "language must not be empty")
	}

	return nil
}
