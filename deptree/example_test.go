package deptree_test

import (
	"fmt"

	"github.com/katalvlaran/depbracket/deptree"
)

// ExampleBuild builds the tree of "Jan biegnie szybko":
//
//	        biegnie
//	  nsubj /     \ advmod
//	     Jan       szybko
func ExampleBuild() {
	ws := []deptree.Word{
		{Pos: 0, Text: "Jan", Tag: "NOUN"},
		{Pos: 1, Text: "biegnie", Tag: "VERB"},
		{Pos: 2, Text: "szybko", Tag: "ADV"},
	}
	arcs := []deptree.Arc{
		{Start: 1, End: 2, Dir: deptree.Right, Label: "advmod"},
		{Start: 1, End: 0, Dir: deptree.Left, Label: "nsubj"},
	}

	tree, err := deptree.Build(ws, arcs)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("root:", ws[tree.Root()].Text)
	for _, pos := range tree.Positions() {
		l, r, _ := tree.Span(pos)
		fmt.Printf("%s [%d,%d]\n", ws[pos].Text, l, r)
	}

	// Output:
	// root: biegnie
	// Jan [0,0]
	// biegnie [0,2]
	// szybko [2,2]
}

// ExampleWithSpanMode contrasts one-hop and transitive spans on a chain
// where "c" governs "b" and "b" governs "a".
func ExampleWithSpanMode() {
	ws := []deptree.Word{{Pos: 0, Text: "a"}, {Pos: 1, Text: "b"}, {Pos: 2, Text: "c"}}
	arcs := []deptree.Arc{
		{Start: 1, End: 2, Dir: deptree.Left},
		{Start: 0, End: 1, Dir: deptree.Left},
	}

	for _, mode := range []deptree.SpanMode{deptree.SpanOneHop, deptree.SpanTransitive} {
		tree, _ := deptree.Build(ws, arcs, deptree.WithSpanMode(mode))
		l, r, _ := tree.Span(2)
		fmt.Printf("%s: [%d,%d]\n", mode, l, r)
	}

	// Output:
	// onehop: [1,2]
	// transitive: [0,2]
}
