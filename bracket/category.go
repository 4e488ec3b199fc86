package bracket

// phraseNames maps a head's part-of-speech tag to its phrase category.
// It covers Universal Dependencies tags plus the NKJP tags (GER, BREV, FIN,
// PRAET) emitted by Polish pipelines. Read-only after init.
var phraseNames = map[string]string{
	"NOUN":  "NP",
	"PROPN": "NP",
	"PRON":  "NP",
	"GER":   "NP",
	"BREV":  "NP",
	"VERB":  "VP",
	"AUX":   "VP",
	"FIN":   "VP",
	"PRAET": "VP",
	"ADJ":   "ADJP",
	"NUM":   "ADJP",
	"ADV":   "ADVP",
	"PART":  "ADVP",
	"INTJ":  "INTP",
	"DET":   "DP",
	"CCONJ": "CP",
	"SCONJ": "CP",
	"ADP":   "PP",
}

// labelSet holds every label Category can return, "" included.
var labelSet = func() map[string]struct{} {
	s := map[string]struct{}{"": {}}
	for _, v := range phraseNames {
		s[v] = struct{}{}
	}

	return s
}()

// Category returns the phrase category for a head tag, or "" when the tag
// is unknown.
func Category(tag string) string {
	return phraseNames[tag]
}

// Categories returns a copy of the tag → category table.
func Categories() map[string]string {
	out := make(map[string]string, len(phraseNames))
	for k, v := range phraseNames {
		out[k] = v
	}

	return out
}

// isLabel reports whether s is a label Category can produce.
func isLabel(s string) bool {
	_, ok := labelSet[s]
	return ok
}
