// Package displacy decodes the dependency structure produced by spaCy's
// displacy.parse_deps into deptree sentences:
//
//	{"words": [{"text": "Jan", "tag": "NOUN"}, ...],
//	 "arcs":  [{"start": 1, "end": 2, "label": "advmod", "dir": "right"}, ...]}
//
// Decode accepts a single document, a JSON array of documents, or a stream
// of documents (one per line or simply concatenated).
package displacy

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/depbracket/deptree"
)

// ErrEmptyInput indicates that the reader held no document.
var ErrEmptyInput = errors.New("displacy: no document in input")

// Word is a word record of a parse_deps document.
type Word struct {
	Text  string `json:"text"`
	Tag   string `json:"tag"`
	Lemma string `json:"lemma,omitempty"`
}

// Arc is an arc record of a parse_deps document.
type Arc struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
	Dir   string `json:"dir"`
}

// Document is one parse_deps result.
type Document struct {
	Words []Word `json:"words"`
	Arcs  []Arc  `json:"arcs"`
}

// Sentence converts d into a deptree.Sentence.
// An arc with an unknown "dir" yields deptree.ErrMalformedArc.
func (d Document) Sentence() (deptree.Sentence, error) {
	s := deptree.Sentence{
		Words: make([]deptree.Word, len(d.Words)),
		Arcs:  make([]deptree.Arc, len(d.Arcs)),
	}
	for i, w := range d.Words {
		s.Words[i] = deptree.Word{Pos: i, Text: w.Text, Tag: w.Tag}
	}
	for i, a := range d.Arcs {
		dir, err := deptree.ParseDirection(a.Dir)
		if err != nil {
			return deptree.Sentence{}, fmt.Errorf("displacy: arc %d: %w", i, err)
		}
		s.Arcs[i] = deptree.Arc{Start: a.Start, End: a.End, Dir: dir, Label: a.Label}
	}

	return s, nil
}

// Decode reads every document from r and converts it to a sentence.
// Sentences are returned in input order.
func Decode(r io.Reader) ([]deptree.Sentence, error) {
	docs, err := DecodeDocuments(r)
	if err != nil {
		return nil, err
	}

	out := make([]deptree.Sentence, 0, len(docs))
	for i, d := range docs {
		s, err := d.Sentence()
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out = append(out, s)
	}

	return out, nil
}

// DecodeDocuments reads raw documents from r without converting them.
func DecodeDocuments(r io.Reader) ([]Document, error) {
	dec := json.NewDecoder(bufio.NewReader(r))

	var docs []Document
	for n := 0; ; n++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("displacy: value %d: %w", n, err)
		}

		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var batch []Document
			if err := json.Unmarshal(trimmed, &batch); err != nil {
				return nil, fmt.Errorf("displacy: value %d: %w", n, err)
			}
			docs = append(docs, batch...)
			continue
		}

		var d Document
		if err := json.Unmarshal(trimmed, &d); err != nil {
			return nil, fmt.Errorf("displacy: value %d: %w", n, err)
		}
		docs = append(docs, d)
	}

	if len(docs) == 0 {
		return nil, ErrEmptyInput
	}

	return docs, nil
}

// Encode writes sentences as JSON lines, one parse_deps document each.
func Encode(w io.Writer, sentences []deptree.Sentence) error {
	enc := json.NewEncoder(w)
	for i, s := range sentences {
		if err := enc.Encode(FromSentence(s)); err != nil {
			return fmt.Errorf("displacy: sentence %d: %w", i, err)
		}
	}

	return nil
}

// FromSentence converts s back into a parse_deps document.
func FromSentence(s deptree.Sentence) Document {
	d := Document{
		Words: make([]Word, len(s.Words)),
		Arcs:  make([]Arc, len(s.Arcs)),
	}
	for i, w := range s.Words {
		d.Words[i] = Word{Text: w.Text, Tag: w.Tag}
	}
	for i, a := range s.Arcs {
		d.Arcs[i] = Arc{Start: a.Start, End: a.End, Label: a.Label, Dir: a.Dir.String()}
	}

	return d
}
