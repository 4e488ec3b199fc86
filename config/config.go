// Package config holds the depbracket CLI configuration: engine modes,
// input format and logging, loaded from YAML and overridable from the
// environment and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/depbracket/bracket"
	"github.com/katalvlaran/depbracket/deptree"
	"github.com/katalvlaran/depbracket/format/conllu"
)

// Input formats.
const (
	FormatDisplacy = "displacy"
	FormatCoNLLU   = "conllu"
)

// Environment variables read by Load.
const (
	EnvLogLevel = "DEPBRACKET_LOG_LEVEL"
	EnvFormat   = "DEPBRACKET_FORMAT"
)

var (
	spanModes = map[string]deptree.SpanMode{
		"onehop":     deptree.SpanOneHop,
		"transitive": deptree.SpanTransitive,
	}
	rootPolicies = map[string]deptree.RootPolicy{
		"strict": deptree.RootStrict,
		"last":   deptree.RootLastFound,
	}
	labelSources = map[string]bracket.LabelSource{
		"boundary": bracket.LabelBoundary,
		"owner":    bracket.LabelOwner,
	}
	tagFields = map[string]conllu.TagField{
		"upos": conllu.TagUPOS,
		"xpos": conllu.TagXPOS,
	}
	formats   = []string{FormatDisplacy, FormatCoNLLU}
	levels    = []string{"debug", "info", "warn", "error"}
	encodings = []string{"console", "json"}
)

// Config holds all depbracket configuration.
type Config struct {
	// Engine selects span, root and label behavior
	Engine EngineConfig `yaml:"engine"`

	// Input describes how sentences are read
	Input InputConfig `yaml:"input"`

	// FailFast aborts on the first sentence that cannot be bracketed;
	// otherwise the sentence is logged and skipped.
	FailFast bool `yaml:"fail_fast"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig configures deptree and bracket.
type EngineConfig struct {
	Spans  string `yaml:"spans"`  // onehop, transitive
	Roots  string `yaml:"roots"`  // strict, last
	Labels string `yaml:"labels"` // boundary, owner
}

// InputConfig configures the sentence readers.
type InputConfig struct {
	Format string `yaml:"format"` // displacy, conllu
	Tag    string `yaml:"tag"`    // upos, xpos (conllu only)
	Limit  int    `yaml:"limit"`  // sentences per input, 0 = no limit
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // console, json
}

// DefaultConfig returns the legacy-compatible configuration.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Spans:  deptree.SpanOneHop.String(),
			Roots:  deptree.RootStrict.String(),
			Labels: bracket.LabelBoundary.String(),
		},
		Input: InputConfig{
			Format: FormatDisplacy,
			Tag:    conllu.TagUPOS.String(),
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Input.Format = strings.ToLower(v)
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, ok := spanModes[c.Engine.Spans]; !ok {
		return fmt.Errorf("invalid engine.spans: %q (valid: onehop, transitive)", c.Engine.Spans)
	}
	if _, ok := rootPolicies[c.Engine.Roots]; !ok {
		return fmt.Errorf("invalid engine.roots: %q (valid: strict, last)", c.Engine.Roots)
	}
	if _, ok := labelSources[c.Engine.Labels]; !ok {
		return fmt.Errorf("invalid engine.labels: %q (valid: boundary, owner)", c.Engine.Labels)
	}
	if !contains(formats, c.Input.Format) {
		return fmt.Errorf("invalid input.format: %q (valid: %v)", c.Input.Format, formats)
	}
	if _, ok := tagFields[c.Input.Tag]; !ok {
		return fmt.Errorf("invalid input.tag: %q (valid: upos, xpos)", c.Input.Tag)
	}
	if c.Input.Limit < 0 {
		return fmt.Errorf("invalid input.limit: %d", c.Input.Limit)
	}
	if !contains(levels, c.Logging.Level) {
		return fmt.Errorf("invalid logging.level: %q (valid: %v)", c.Logging.Level, levels)
	}
	if !contains(encodings, c.Logging.Encoding) {
		return fmt.Errorf("invalid logging.encoding: %q (valid: %v)", c.Logging.Encoding, encodings)
	}

	return nil
}

// BuildOptions returns the deptree options for the engine settings.
// Unknown values fall back to the defaults; call Validate first.
func (c *Config) BuildOptions() []deptree.Option {
	return []deptree.Option{
		deptree.WithSpanMode(spanModes[c.Engine.Spans]),
		deptree.WithRootPolicy(rootPolicies[c.Engine.Roots]),
	}
}

// BracketOptions returns the bracket options, build options included.
func (c *Config) BracketOptions() []bracket.Option {
	return []bracket.Option{
		bracket.WithLabelSource(labelSources[c.Engine.Labels]),
		bracket.WithBuildOptions(c.BuildOptions()...),
	}
}

// ReaderOptions returns the CoNLL-U reader options.
func (c *Config) ReaderOptions() []conllu.Option {
	return []conllu.Option{
		conllu.WithTagField(tagFields[c.Input.Tag]),
		conllu.WithLimit(c.Input.Limit),
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
