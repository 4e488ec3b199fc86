// Command depbracket marks syntactic constituents in dependency-parsed
// sentences. It reads displaCy parse_deps JSON or CoNLL-U and prints one
// bracketed line per sentence:
//
//	$ depbracket annotate parse.json
//	[NP [NP Jan NP] biegnie [ADVP szybko ADVP] ADVP]
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/depbracket/config"
)

const defaultConfigPath = "depbracket.yaml"

// app carries state shared by all subcommands.
type app struct {
	cfgPath string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd wires the command tree around a fresh app.
func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "depbracket",
		Short: "Mark constituents in dependency-parsed sentences",
		Long: `depbracket turns a dependency parse into a bracketed sentence.

Each word opens a bracket before the leftmost word it governs and closes
one after the rightmost, labeled with a phrase category (NP, VP, ADJP, ...)
derived from part-of-speech tags.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", defaultConfigPath, "path to YAML config (missing file = defaults)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.newAnnotateCmd(),
		a.newConvertCmd(),
		a.newCategoriesCmd(),
	)

	return root
}

// setup loads the config, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.Logging, a.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("config", a.cfgPath),
		zap.String("format", cfg.Input.Format),
		zap.String("spans", cfg.Engine.Spans),
		zap.String("roots", cfg.Engine.Roots),
		zap.String("labels", cfg.Engine.Labels))

	return nil
}

// applyFlags copies explicitly set command flags over config values.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	str := func(name string, dst *string) {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			*dst = strings.ToLower(f.Value.String())
		}
	}
	str("format", &cfg.Input.Format)
	str("tag", &cfg.Input.Tag)
	str("spans", &cfg.Engine.Spans)
	str("roots", &cfg.Engine.Roots)
	str("labels", &cfg.Engine.Labels)

	if f := cmd.Flags().Lookup("limit"); f != nil && f.Changed {
		if n, err := cmd.Flags().GetInt("limit"); err == nil {
			cfg.Input.Limit = n
		}
	}
	if f := cmd.Flags().Lookup("fail-fast"); f != nil && f.Changed {
		if v, err := cmd.Flags().GetBool("fail-fast"); err == nil {
			cfg.FailFast = v
		}
	}
}

// newLogger builds a zap production logger writing to stderr.
func newLogger(lc config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = lc.Encoding
	if lc.Encoding == "console" {
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}
