package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/depbracket/bracket"
	"github.com/katalvlaran/depbracket/config"
	"github.com/katalvlaran/depbracket/deptree"
	"github.com/katalvlaran/depbracket/format/conllu"
	"github.com/katalvlaran/depbracket/format/displacy"
)

// stdinName stands for standard input in file arguments.
const stdinName = "-"

func (a *app) newAnnotateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate [files...]",
		Short: "Print every sentence with labeled constituent brackets",
		Long: `Reads dependency-parsed sentences from the given files (or stdin when
none, or "-") and prints one bracketed line per sentence.

Sentences that cannot be read or bracketed (malformed rows or arcs, no
root, several roots under --roots=strict) are logged and skipped, unless
--fail-fast is set.

Example:
  depbracket annotate --format conllu --spans transitive corpus.conllu`,
		RunE: a.runAnnotate,
	}
	addInputFlags(cmd)
	f := cmd.Flags()
	f.String("spans", deptree.SpanOneHop.String(), "span propagation: onehop (legacy), transitive")
	f.String("roots", deptree.RootStrict.String(), "root selection: strict, last")
	f.String("labels", bracket.LabelBoundary.String(), "bracket labels: boundary (legacy), owner")

	return cmd
}

// addInputFlags registers the reader flags shared by annotate and convert.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("format", config.FormatDisplacy, "input format: displacy, conllu")
	f.String("tag", conllu.TagUPOS.String(), "CoNLL-U tag column: upos, xpos")
	f.Int("limit", 0, "read at most this many sentences per input (0 = all)")
	f.Bool("fail-fast", false, "stop at the first sentence that cannot be processed")
}

// runAnnotate brackets every sentence of every input.
func (a *app) runAnnotate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	var done, skipped int

	for _, name := range inputNames(args) {
		sentences, err := a.readInput(cmd, name)
		if err != nil {
			if a.cfg.FailFast {
				return err
			}
			a.logger.Error("skipping input", zap.String("input", name), zap.Error(err))
			continue
		}

		for i, p := range sentences {
			line, err := "", p.err
			if err == nil {
				line, err = a.annotate(p.sentence)
			}
			if err != nil {
				if a.cfg.FailFast {
					return fmt.Errorf("%s: sentence %d: %w", name, i+1, err)
				}
				a.logger.Warn("skipping sentence",
					zap.String("input", name),
					zap.Int("sentence", i+1),
					zap.String("text", strings.Join(p.sentence.Texts(), " ")),
					zap.Error(err))
				skipped++
				continue
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
			done++
		}
	}

	a.logger.Info("annotation finished", zap.Int("sentences", done), zap.Int("skipped", skipped))

	return nil
}

// annotate builds and brackets a single sentence, reporting ambiguous roots
// kept under the last-found policy.
func (a *app) annotate(s deptree.Sentence) (string, error) {
	tree, err := deptree.BuildSentence(s, a.cfg.BuildOptions()...)
	if err != nil {
		return "", err
	}
	if c := tree.RootCandidates(); len(c) > 1 {
		a.logger.Warn("ambiguous root, keeping last candidate",
			zap.Ints("candidates", c),
			zap.Int("root", tree.Root()),
			zap.String("text", strings.Join(s.Texts(), " ")))
	}

	return bracket.Annotate(s.Words, tree, a.cfg.BracketOptions()...)
}

// parsed is one input sentence, or the reason it could not be read.
type parsed struct {
	sentence deptree.Sentence
	err      error
}

// inputNames defaults to stdin when no file is named.
func inputNames(args []string) []string {
	if len(args) == 0 {
		return []string{stdinName}
	}

	return args
}

// readInput opens name (or stdin) and decodes it in the configured format.
// Only failures that make the whole input unreadable are returned; a
// malformed sentence is carried in its parsed entry.
func (a *app) readInput(cmd *cobra.Command, name string) ([]parsed, error) {
	var r io.Reader = cmd.InOrStdin()
	if name != stdinName {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	sentences, err := a.decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	a.logger.Debug("input read", zap.String("input", name), zap.Int("sentences", len(sentences)))

	return sentences, nil
}

// decode dispatches on the configured input format, converting every
// sentence on its own.
func (a *app) decode(r io.Reader) ([]parsed, error) {
	var out []parsed
	switch a.cfg.Input.Format {
	case config.FormatCoNLLU:
		err := conllu.ReadEach(r, func(s deptree.Sentence, err error) error {
			out = append(out, parsed{sentence: s, err: err})
			return nil
		}, a.cfg.ReaderOptions()...)
		if err != nil {
			return nil, err
		}
	default:
		docs, err := displacy.DecodeDocuments(r)
		if err != nil {
			return nil, err
		}
		if n := a.cfg.Input.Limit; n > 0 && len(docs) > n {
			docs = docs[:n]
		}
		for _, d := range docs {
			s, err := d.Sentence()
			out = append(out, parsed{sentence: s, err: err})
		}
	}

	return out, nil
}
