// Package bracket renders a deptree.Tree as a constituency-style string:
// each word's span is wrapped in a pair of labeled brackets, the label being
// a traditional phrase category (NP, VP, ADJP, ...) derived from a
// part-of-speech tag.
//
// Example, for "Jan biegnie szybko" (root "biegnie", spans Jan[0,0],
// biegnie[0,2], szybko[2,2]):
//
//	[NP [NP Jan NP] biegnie [ADVP szybko ADVP] ADVP]
//
// Every node contributes exactly one opening bracket (before the word at
// its LeftSpan) and one closing bracket (after the word at its RightSpan),
// so the output is always balanced.
//
// By default a bracket is labeled with the category of the word it sits
// next to (LabelBoundary), not of the word that owns the span; that is the
// legacy output. WithLabelSource(LabelOwner) labels each bracket with its
// owner's category instead.
//
// Tags missing from the category table yield an empty label, so brackets
// print as "[ " and " ]".
package bracket
