// Package depbracket marks syntactic constituents in dependency-parsed
// sentences: it turns per-word tags and labeled head/dependent arcs into a
// single string with nested, labeled brackets.
//
// Under the hood, everything is organized in small packages:
//
//	deptree/          — Word, Arc, Node, Tree; Build with one-hop or transitive spans
//	bracket/          — Annotate/Mark, the tag → phrase category table, Strip
//	format/displacy/  — displaCy parse_deps JSON decoder/encoder
//	format/conllu/    — CoNLL-U reader
//	config/           — YAML configuration for the CLI
//	cmd/depbracket/   — command-line front end
//
// Quick example ("Jan biegnie szybko", root "biegnie"):
//
//	s := deptree.Sentence{Words: words, Arcs: arcs}
//	out, err := bracket.Mark(s)
//	// out == "[NP [NP Jan NP] biegnie [ADVP szybko ADVP] ADVP] "
//
// The engine is pure: no I/O, no shared mutable state, safe for concurrent
// use on independent sentences.
package depbracket
