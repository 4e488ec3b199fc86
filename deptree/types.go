package deptree

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for tree construction.
var (
	// ErrMalformedArc indicates an arc that cannot be resolved into a valid
	// head/dependent pair (negative position, unknown head, self-loop, bad direction).
	ErrMalformedArc = errors.New("deptree: malformed arc")

	// ErrNoRoot indicates that no word has zero incoming arcs.
	ErrNoRoot = errors.New("deptree: no root")

	// ErrAmbiguousRoot indicates that more than one word has zero incoming arcs.
	ErrAmbiguousRoot = errors.New("deptree: ambiguous root")

	// ErrCycle indicates a dependency cycle met while computing transitive spans.
	ErrCycle = errors.New("deptree: cycle detected")
)

// Direction tells on which side of its head a dependent lies.
type Direction int

const (
	// Left: the dependent lies to the left of its head (dependent = Start).
	Left Direction = iota
	// Right: the dependent lies to the right of its head (dependent = End).
	Right
)

// String returns "left" or "right".
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection maps "left"/"right" (case-insensitive) to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}

	return 0, fmt.Errorf("%w: unknown direction %q", ErrMalformedArc, s)
}

// Word is a single token of a sentence with its part-of-speech tag.
// Pos equals the word's index in the sentence.
type Word struct {
	Pos  int
	Text string
	Tag  string
}

// Arc is a directed, labeled dependency between two word positions.
type Arc struct {
	Start int
	End   int
	Dir   Direction
	Label string
}

// HeadDependent resolves the arc into its (head, dependent) pair.
func (a Arc) HeadDependent() (head, dependent int) {
	if a.Dir == Left {
		return a.End, a.Start
	}

	return a.Start, a.End
}

// Sentence pairs the words of one sentence with the arcs over them.
type Sentence struct {
	Words []Word
	Arcs  []Arc
}

// Texts returns the word texts in sentence order.
func (s Sentence) Texts() []string {
	out := make([]string, len(s.Words))
	for i, w := range s.Words {
		out[i] = w.Text
	}

	return out
}

// Edge points from a head to one of its dependents.
type Edge struct {
	Target int
	Label  string
}

// Node is the per-word view of the dependency structure.
//
// Left/Right hold dependents in the order their arcs were seen.
// Incoming counts how often this word is somebody's dependent.
// LeftSpan/RightSpan are the extreme word positions this word reaches;
// both start at Pos.
type Node struct {
	Pos       int
	Left      []Edge
	Right     []Edge
	Incoming  int
	LeftSpan  int
	RightSpan int
}

// newLeaf returns a self-spanning node with no dependents.
func newLeaf(pos int) *Node {
	return &Node{Pos: pos, LeftSpan: pos, RightSpan: pos}
}

// clone returns a copy that shares no slices with n.
func (n *Node) clone() Node {
	c := *n
	c.Left = append([]Edge(nil), n.Left...)
	c.Right = append([]Edge(nil), n.Right...)

	return c
}

// SpanMode selects how spans are propagated.
type SpanMode int

const (
	// SpanOneHop widens a head's span by its direct dependents only.
	SpanOneHop SpanMode = iota
	// SpanTransitive widens a head's span by every word in its subtree.
	SpanTransitive
)

// String returns "onehop" or "transitive".
func (m SpanMode) String() string {
	if m == SpanTransitive {
		return "transitive"
	}

	return "onehop"
}

// RootPolicy selects what Build does when several words qualify as root.
type RootPolicy int

const (
	// RootStrict fails with ErrAmbiguousRoot unless exactly one root exists.
	RootStrict RootPolicy = iota
	// RootLastFound keeps the last candidate in scan order.
	// All candidates stay available through Tree.RootCandidates.
	RootLastFound
)

// String returns "strict" or "last".
func (p RootPolicy) String() string {
	if p == RootLastFound {
		return "last"
	}

	return "strict"
}

// Option configures Build.
type Option func(*Options)

// Options holds the Build settings.
type Options struct {
	// Spans selects one-hop or transitive span propagation.
	Spans SpanMode

	// Roots selects strict or last-found-wins root selection.
	Roots RootPolicy
}

// DefaultOptions returns the legacy-compatible settings:
//   - SpanOneHop
//   - RootStrict
func DefaultOptions() Options {
	return Options{
		Spans: SpanOneHop,
		Roots: RootStrict,
	}
}

// WithSpanMode sets the span propagation mode.
func WithSpanMode(m SpanMode) Option {
	return func(o *Options) {
		o.Spans = m
	}
}

// WithRootPolicy sets the root selection policy.
func WithRootPolicy(p RootPolicy) Option {
	return func(o *Options) {
		o.Roots = p
	}
}
