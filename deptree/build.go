package deptree

import (
	"fmt"
)

// Build converts words and arcs into a Tree.
//
// Steps:
//  1. Create one self-spanning leaf per word.
//  2. For each arc, in input order, resolve (head, dependent), lazily
//     creating a leaf for an unseen dependent.
//  3. Count the arc on the dependent and record it on the head's
//     Left or Right list, widening the head's span by the dependent.
//  4. Select the root among zero-incoming nodes per the RootPolicy.
//  5. With SpanTransitive, recompute spans over whole subtrees.
//
// Returns ErrMalformedArc (wrapped with the arc index), ErrNoRoot,
// ErrAmbiguousRoot or ErrCycle.
// Complexity: O(V+E) time and memory.
func Build(words []Word, arcs []Arc, opts ...Option) (*Tree, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := &Tree{
		nodes: make(map[int]*Node, len(words)),
		order: make([]int, 0, len(words)),
		opts:  o,
	}
	// 1. Leaves for every word position
	for i := range words {
		t.add(i)
	}
	// 2-3. Fold arcs into the nodes
	for i, a := range arcs {
		if err := t.attach(a); err != nil {
			return nil, fmt.Errorf("arc %d (%d→%d %s %q): %w", i, a.Start, a.End, a.Dir, a.Label, err)
		}
	}
	// 4. Root selection
	if err := t.selectRoot(); err != nil {
		return nil, err
	}
	// 5. Optional full-subtree spans
	if o.Spans == SpanTransitive {
		if err := t.closeSpans(); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// BuildSentence is Build over a Sentence.
func BuildSentence(s Sentence, opts ...Option) (*Tree, error) {
	return Build(s.Words, s.Arcs, opts...)
}

// add registers a leaf for pos unless one exists, returning the node.
func (t *Tree) add(pos int) *Node {
	if n, ok := t.nodes[pos]; ok {
		return n
	}
	n := newLeaf(pos)
	t.nodes[pos] = n
	t.order = append(t.order, pos)

	return n
}

// attach records a single arc on its head and dependent.
func (t *Tree) attach(a Arc) error {
	if a.Dir != Left && a.Dir != Right {
		return fmt.Errorf("%w: unknown direction %d", ErrMalformedArc, int(a.Dir))
	}
	if a.Start < 0 || a.End < 0 {
		return fmt.Errorf("%w: negative position", ErrMalformedArc)
	}
	if a.Start == a.End {
		return fmt.Errorf("%w: self-loop on %d", ErrMalformedArc, a.Start)
	}
	head, dep := a.HeadDependent()
	h, ok := t.nodes[head]
	if !ok {
		return fmt.Errorf("%w: head %d has no word", ErrMalformedArc, head)
	}

	d := t.add(dep)
	d.Incoming++

	e := Edge{Target: dep, Label: a.Label}
	if a.Dir == Left {
		h.Left = append(h.Left, e)
		if dep < h.LeftSpan {
			h.LeftSpan = dep
		}

		return nil
	}
	h.Right = append(h.Right, e)
	if dep > h.RightSpan {
		h.RightSpan = dep
	}

	return nil
}

// selectRoot scans nodes in creation order for zero-incoming candidates.
func (t *Tree) selectRoot() error {
	t.candidates = t.candidates[:0]
	for _, pos := range t.order {
		if t.nodes[pos].Incoming == 0 {
			t.candidates = append(t.candidates, pos)
		}
	}

	switch {
	case len(t.candidates) == 0:
		return ErrNoRoot
	case len(t.candidates) > 1 && t.opts.Roots == RootStrict:
		return fmt.Errorf("%w: candidates %v", ErrAmbiguousRoot, t.candidates)
	}
	t.root = t.candidates[len(t.candidates)-1]

	return nil
}
