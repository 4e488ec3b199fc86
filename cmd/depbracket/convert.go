package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/depbracket/deptree"
	"github.com/katalvlaran/depbracket/format/displacy"
)

func (a *app) newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Rewrite input sentences as displaCy parse_deps JSON lines",
		Long: `Reads sentences like annotate does and writes each one as a displaCy
parse_deps document, one per line. Useful to inspect how CoNLL-U heads
were turned into left/right arcs. Malformed sentences are logged and
skipped, unless --fail-fast is set.

Example:
  depbracket convert --format conllu corpus.conllu > corpus.jsonl`,
		RunE: a.runConvert,
	}
	addInputFlags(cmd)

	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, args []string) error {
	var all []deptree.Sentence
	for _, name := range inputNames(args) {
		sentences, err := a.readInput(cmd, name)
		if err != nil {
			return err
		}
		for i, p := range sentences {
			if p.err != nil {
				if a.cfg.FailFast {
					return fmt.Errorf("%s: sentence %d: %w", name, i+1, p.err)
				}
				a.logger.Warn("skipping sentence",
					zap.String("input", name),
					zap.Int("sentence", i+1),
					zap.Error(p.err))
				continue
			}
			all = append(all, p.sentence)
		}
	}
	a.logger.Debug("converting", zap.Int("sentences", len(all)))

	return displacy.Encode(cmd.OutOrStdout(), all)
}
