package bracket

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/depbracket/deptree"
)

// Sentinel errors for annotation.
var (
	// ErrNilTree is returned when Annotate receives a nil tree.
	ErrNilTree = errors.New("bracket: tree is nil")

	// ErrWordMissing indicates a tree node or span with no word to print.
	ErrWordMissing = errors.New("bracket: word missing for tree position")

	// ErrPositionMismatch indicates words[i].Pos != i.
	ErrPositionMismatch = errors.New("bracket: word position does not match its index")
)

// LabelSource selects which word's tag names a bracket.
type LabelSource int

const (
	// LabelBoundary names a bracket after the word it is printed next to.
	LabelBoundary LabelSource = iota
	// LabelOwner names a bracket after the word whose span it delimits.
	LabelOwner
)

// String returns "boundary" or "owner".
func (s LabelSource) String() string {
	if s == LabelOwner {
		return "owner"
	}

	return "boundary"
}

// Option configures Annotate and Mark.
type Option func(*Options)

// Options holds annotation settings.
type Options struct {
	// Labels selects boundary-word or owner-word labeling.
	Labels LabelSource

	// Build is passed to deptree.Build by Mark; Annotate ignores it.
	Build []deptree.Option
}

// DefaultOptions returns LabelBoundary with default build options.
func DefaultOptions() Options {
	return Options{Labels: LabelBoundary}
}

// WithLabelSource sets the bracket labeling source.
func WithLabelSource(s LabelSource) Option {
	return func(o *Options) {
		o.Labels = s
	}
}

// WithBuildOptions appends deptree options used by Mark.
func WithBuildOptions(opts ...deptree.Option) Option {
	return func(o *Options) {
		o.Build = append(o.Build, opts...)
	}
}

// buckets groups node positions by the word where their bracket opens/closes.
type buckets struct {
	open  [][]int
	close [][]int
}

// Annotate inserts labeled brackets into the words of tree's sentence.
//
// For every word w, in order:
//  1. one "[label " per node whose LeftSpan is w, latest-discovered first;
//  2. the word text;
//  3. one " label]" per node whose RightSpan is w;
//  4. a single trailing space.
//
// Returns ErrNilTree, ErrPositionMismatch, or ErrWordMissing when a tree
// node has no matching word. No partial output is returned on error.
// Complexity: O(V log V) time, O(V) memory.
func Annotate(words []deptree.Word, tree *deptree.Tree, opts ...Option) (string, error) {
	if tree == nil {
		return "", ErrNilTree
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	for i, w := range words {
		if w.Pos != i {
			return "", fmt.Errorf("%w: words[%d].Pos = %d", ErrPositionMismatch, i, w.Pos)
		}
	}

	b, err := group(len(words), tree)
	if err != nil {
		return "", err
	}
	if o.Labels == LabelOwner {
		nest(b, tree)
	}

	var sb strings.Builder
	for w, word := range words {
		boundary := Category(word.Tag)
		label := func(owner int) string {
			if o.Labels == LabelOwner {
				return Category(words[owner].Tag)
			}
			return boundary
		}

		for i := len(b.open[w]) - 1; i >= 0; i-- {
			sb.WriteString("[")
			sb.WriteString(label(b.open[w][i]))
			sb.WriteString(" ")
		}
		sb.WriteString(word.Text)
		for _, owner := range b.close[w] {
			sb.WriteString(" ")
			sb.WriteString(label(owner))
			sb.WriteString("]")
		}
		sb.WriteString(" ")
	}

	return sb.String(), nil
}

// group assigns every node to the open bucket of its LeftSpan and the close
// bucket of its RightSpan, visiting positions in ascending order.
func group(n int, tree *deptree.Tree) (buckets, error) {
	b := buckets{open: make([][]int, n), close: make([][]int, n)}

	positions := tree.Positions()
	sort.Ints(positions)
	for _, pos := range positions {
		if pos >= n {
			return buckets{}, fmt.Errorf("%w: node %d, %d words", ErrWordMissing, pos, n)
		}
		l, r, _ := tree.Span(pos)
		if l < 0 || r >= n {
			return buckets{}, fmt.Errorf("%w: span [%d,%d] of node %d, %d words", ErrWordMissing, l, r, pos, n)
		}
		b.open[l] = append(b.open[l], pos)
		b.close[r] = append(b.close[r], pos)
	}

	return b, nil
}

// nest reorders close buckets so that the bracket opened last closes first:
// larger LeftSpan first, then (same LeftSpan, opened in reverse position
// order) smaller position first.
func nest(b buckets, tree *deptree.Tree) {
	for _, owners := range b.close {
		sort.SliceStable(owners, func(i, j int) bool {
			li, _, _ := tree.Span(owners[i])
			lj, _, _ := tree.Span(owners[j])
			if li != lj {
				return li > lj
			}
			return owners[i] < owners[j]
		})
	}
}

// Mark builds the tree of s and annotates it in one call.
// Build failures are returned unchanged so callers can match deptree sentinels.
func Mark(s deptree.Sentence, opts ...Option) (string, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	tree, err := deptree.BuildSentence(s, o.Build...)
	if err != nil {
		return "", err
	}

	return Annotate(s.Words, tree, opts...)
}

// Strip removes bracket markup from an annotated string, returning the
// words joined by single spaces. Words that themselves look like markup
// ("[NP", "VP]", "[", "]") are removed too.
func Strip(annotated string) string {
	fields := strings.Fields(annotated)
	kept := fields[:0]
	for _, f := range fields {
		if isMarkup(f) {
			continue
		}
		kept = append(kept, f)
	}

	return strings.Join(kept, " ")
}

// isMarkup reports whether tok is "[label" or "label]".
func isMarkup(tok string) bool {
	if rest, ok := strings.CutPrefix(tok, "["); ok {
		return isLabel(rest)
	}
	if rest, ok := strings.CutSuffix(tok, "]"); ok {
		return isLabel(rest)
	}

	return false
}
