// Package conllu reads CoNLL-U files into deptree sentences.
//
// Each sentence is a block of tab-separated rows with ten fields
// (ID FORM LEMMA UPOS XPOS FEATS HEAD DEPREL DEPS MISC), terminated by a
// blank line. Comment lines ('#'), multiword token ranges ("1-2") and empty
// nodes ("1.1") are skipped. HEAD/DEPREL become arcs oriented the way
// displaCy orients them: a dependent left of its head gives
// {start: dependent, end: head, dir: left}, otherwise
// {start: head, end: dependent, dir: right}. HEAD 0 (the root) gives no arc.
//
// See https://universaldependencies.org/format.html
package conllu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/depbracket/deptree"
)

const (
	fieldSeparator = "\t"
	numFields      = 10
	emptyField     = "_"
	maxLineBytes   = 1 << 20
)

// ErrMalformedRow indicates a row that cannot be parsed into a word.
var ErrMalformedRow = errors.New("conllu: malformed row")

// TagField selects which column provides Word.Tag.
type TagField int

const (
	// TagUPOS uses the universal part-of-speech column.
	TagUPOS TagField = iota
	// TagXPOS uses the language-specific part-of-speech column.
	TagXPOS
)

// String returns "upos" or "xpos".
func (f TagField) String() string {
	if f == TagXPOS {
		return "xpos"
	}

	return "upos"
}

// Option configures Read.
type Option func(*Options)

// Options holds reader settings.
type Options struct {
	Tag   TagField // column used for Word.Tag
	Limit int      // stop after Limit sentences; 0 reads everything
}

// DefaultOptions returns TagUPOS with no limit.
func DefaultOptions() Options {
	return Options{Tag: TagUPOS}
}

// WithTagField selects the tag column.
func WithTagField(f TagField) Option {
	return func(o *Options) { o.Tag = f }
}

// WithLimit stops reading after n sentences.
func WithLimit(n int) Option {
	return func(o *Options) { o.Limit = n }
}

// Row is one syntactic-word row of a CoNLL-U sentence.
type Row struct {
	ID     int
	Form   string
	Lemma  string
	UPos   string
	XPos   string
	Feats  string
	Head   int // -1 when the column is "_"
	DepRel string
	line   int
}

// parseField maps "_" to "".
func parseField(v string) string {
	if v == emptyField {
		return ""
	}

	return v
}

// ParseRow parses the ten fields of a word row.
// FORM is kept verbatim so that a "_" token survives.
func ParseRow(record []string) (Row, error) {
	if len(record) != numFields {
		return Row{}, fmt.Errorf("%w: %d fields, want %d", ErrMalformedRow, len(record), numFields)
	}
	id, err := strconv.Atoi(record[0])
	if err != nil || id < 1 {
		return Row{}, fmt.Errorf("%w: bad ID %q", ErrMalformedRow, record[0])
	}

	row := Row{
		ID:     id,
		Form:   record[1],
		Lemma:  parseField(record[2]),
		UPos:   parseField(record[3]),
		XPos:   parseField(record[4]),
		Feats:  parseField(record[5]),
		Head:   -1,
		DepRel: parseField(record[7]),
	}
	if record[6] != emptyField {
		head, err := strconv.Atoi(record[6])
		if err != nil || head < 0 {
			return Row{}, fmt.Errorf("%w: bad HEAD %q", ErrMalformedRow, record[6])
		}
		row.Head = head
	}

	return row, nil
}

// Read parses every sentence in r and stops at the first malformed one.
// A last sentence without a trailing blank line is kept.
func Read(r io.Reader, opts ...Option) ([]deptree.Sentence, error) {
	var out []deptree.Sentence
	err := ReadEach(r, func(s deptree.Sentence, err error) error {
		if err != nil {
			return err
		}
		out = append(out, s)

		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ReadEach calls fn once per sentence of r, in order. A malformed sentence
// is reported to fn with an ErrMalformedRow error carrying its line number,
// and reading resumes at the next sentence. A non-nil error from fn stops
// reading and is returned as is. WithLimit counts every sentence passed to
// fn, malformed ones included.
func ReadEach(r io.Reader, fn func(deptree.Sentence, error) error, opts ...Option) error {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		rows []Row
		bad  error // first row error of the current sentence
		line int
		n    int
	)
	emit := func() error {
		if len(rows) == 0 && bad == nil {
			return nil
		}
		var s deptree.Sentence
		err := bad
		if err == nil {
			s, err = toSentence(rows, o.Tag)
		}
		rows, bad = rows[:0], nil
		n++

		return fn(s, err)
	}

	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			if err := emit(); err != nil {
				return err
			}
			if o.Limit > 0 && n >= o.Limit {
				return nil
			}
			continue
		}
		if strings.HasPrefix(text, "#") || bad != nil {
			continue
		}

		record := strings.Split(text, fieldSeparator)
		if isRangeOrEmptyNode(record[0]) {
			continue
		}
		row, err := ParseRow(record)
		if err != nil {
			bad = fmt.Errorf("line %d: %w", line, err)
			continue
		}
		if row.ID != len(rows)+1 {
			bad = fmt.Errorf("line %d: %w: ID %d out of sequence", line, ErrMalformedRow, row.ID)
			continue
		}
		row.line = line
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("conllu: read: %w", err)
	}

	return emit()
}

// isRangeOrEmptyNode reports whether id is a multiword token range "N-M"
// or an empty node "N.M".
func isRangeOrEmptyNode(id string) bool {
	for _, sep := range []string{"-", "."} {
		if a, b, ok := strings.Cut(id, sep); ok {
			return isDigits(a) && isDigits(b)
		}
	}

	return false
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// toSentence turns the rows of one sentence into words and arcs.
func toSentence(rows []Row, tag TagField) (deptree.Sentence, error) {
	s := deptree.Sentence{
		Words: make([]deptree.Word, len(rows)),
		Arcs:  make([]deptree.Arc, 0, len(rows)),
	}
	for i, r := range rows {
		t := r.UPos
		if tag == TagXPOS {
			t = r.XPos
		}
		s.Words[i] = deptree.Word{Pos: i, Text: r.Form, Tag: t}

		if r.Head <= 0 {
			continue
		}
		if r.Head > len(rows) || r.Head == r.ID {
			return deptree.Sentence{}, fmt.Errorf("line %d: %w: HEAD %d for word %d of %d",
				r.line, ErrMalformedRow, r.Head, r.ID, len(rows))
		}
		dep, head := r.ID-1, r.Head-1
		if dep < head {
			s.Arcs = append(s.Arcs, deptree.Arc{Start: dep, End: head, Dir: deptree.Left, Label: r.DepRel})
		} else {
			s.Arcs = append(s.Arcs, deptree.Arc{Start: head, End: dep, Dir: deptree.Right, Label: r.DepRel})
		}
	}

	return s, nil
}
