package deptree

// Tree is the immutable result of Build: the node of every word position,
// keyed by position, plus the selected root.
//
// Nodes are handed out as copies; a Tree is never modified after Build
// returns and may be read from several goroutines.
type Tree struct {
	nodes      map[int]*Node
	order      []int // positions in creation order: words first, then lazily added dependents
	root       int
	candidates []int
	opts       Options
}

// Root returns the position of the root word.
func (t *Tree) Root() int { return t.root }

// RootCandidates returns every zero-incoming position in scan order.
// It has more than one element only under RootLastFound.
func (t *Tree) RootCandidates() []int {
	return append([]int(nil), t.candidates...)
}

// Len reports the number of nodes, including lazily created ones.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns a copy of the node at pos.
func (t *Tree) Node(pos int) (Node, bool) {
	n, ok := t.nodes[pos]
	if !ok {
		return Node{}, false
	}

	return n.clone(), true
}

// Positions returns node positions in creation order.
func (t *Tree) Positions() []int {
	return append([]int(nil), t.order...)
}

// Span returns the (left, right) span of pos.
func (t *Tree) Span(pos int) (left, right int, ok bool) {
	n, ok := t.nodes[pos]
	if !ok {
		return 0, 0, false
	}

	return n.LeftSpan, n.RightSpan, true
}

// Options returns the settings the tree was built with.
func (t *Tree) Options() Options { return t.opts }
