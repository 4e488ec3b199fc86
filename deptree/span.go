package deptree

import "fmt"

// Visitation states used by closeSpans.
const (
	white = iota // not visited yet
	gray         // on the current DFS path
	black        // subtree finished, spans final
)

// spanCloser holds DFS state for transitive span computation.
type spanCloser struct {
	tree  *Tree
	state map[int]int
}

// closeSpans widens every node's span to the extremes of its whole subtree.
// Each node is finished once, so the walk is O(V+E); a gray node met again
// means the arcs contain a cycle.
func (t *Tree) closeSpans() error {
	c := &spanCloser{
		tree:  t,
		state: make(map[int]int, len(t.nodes)),
	}
	for _, pos := range t.order {
		if c.state[pos] == white {
			if err := c.visit(pos); err != nil {
				return err
			}
		}
	}

	return nil
}

// visit finishes pos after all of its dependents and folds their spans in.
func (c *spanCloser) visit(pos int) error {
	switch c.state[pos] {
	case gray:
		return fmt.Errorf("%w: through word %d", ErrCycle, pos)
	case black:
		return nil
	}
	c.state[pos] = gray

	n := c.tree.nodes[pos]
	for _, edges := range [2][]Edge{n.Left, n.Right} {
		for _, e := range edges {
			if err := c.visit(e.Target); err != nil {
				return err
			}
			d := c.tree.nodes[e.Target]
			n.LeftSpan = min(n.LeftSpan, d.LeftSpan)
			n.RightSpan = max(n.RightSpan, d.RightSpan)
		}
	}
	c.state[pos] = black

	return nil
}
