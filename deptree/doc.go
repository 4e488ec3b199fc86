// Package deptree turns a dependency parse (words plus directed, labeled
// arcs over word positions) into a per-word adjacency structure with
// precomputed span extremes, and identifies the root of the tree.
//
// What:
//
//   - Build: one Node per word position, holding its left/right dependents,
//     the number of times it appears as a dependent (Incoming), and the
//     leftmost/rightmost word positions it reaches (LeftSpan/RightSpan).
//   - Root selection: the unique node nobody depends on.
//   - Span computation in one of two modes (below).
//
// Span modes:
//
//   - SpanOneHop (default, legacy-compatible): a head's span is widened
//     only by the positions of its direct dependents.
//   - SpanTransitive: a head's span covers every word reachable through
//     any chain of arcs (the full yield of its subtree).
//
// Arc orientation:
//
//	dir=left   dependent = Start, head = End    (dependent sits left of head)
//	dir=right  dependent = End,   head = Start  (dependent sits right of head)
//
// Example ("Jan biegnie szybko"):
//
//	        biegnie(1)
//	   nsubj /    \ advmod
//	  Jan(0)       szybko(2)
//
//	root = 1; spans: 0→[0,0], 1→[0,2], 2→[2,2]
//
// Errors:
//
//   - ErrMalformedArc   arc cannot be resolved to a head/dependent pair
//   - ErrNoRoot         no word has zero incoming arcs
//   - ErrAmbiguousRoot  several words have zero incoming arcs (RootStrict)
//   - ErrCycle          cycle found while computing transitive spans
//
// Complexity:
//
//   - Build (one-hop):    Time O(V+E), Memory O(V+E)
//   - Build (transitive): Time O(V+E), Memory O(V+E) (memoized DFS)
//
// A Tree is built once per sentence and is read-only afterwards; it holds
// no shared state, so independent sentences may be processed concurrently.
package deptree
