package textdiff

import (
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/clipperhouse/uax29/v2/words"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Side selects the old (A) or new (B) text.
type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) String() string {
	if s == SideB {
		return "b"
	}
	return "a"
}

// Status marks a Span as unchanged or changed relative to the paired line.
type Status int

const (
	Unchanged Status = iota
	Changed
)

func (s Status) String() string {
	if s == Changed {
		return "changed"
	}
	return "unchanged"
}

// Span is a run of bytes [Start, End) of one line's Text.
type Span struct {
	Side   Side
	Start  int
	End    int
	Status Status
}

// SpanIndex holds the spans of every changed line of a diff, keyed by 0-based line index. Lines of equal opcodes have no
// entry.
type SpanIndex struct {
	A map[int][]Span
	B map[int][]Span
}

// Get returns the spans of line index on side, and whether the line has any.
func (x SpanIndex) Get(side Side, index int) ([]Span, bool) {
	m := x.A
	if side == SideB {
		m = x.B
	}
	spans, ok := m[index]
	return spans, ok
}

// Refine aligns the characters (or words, with GranularityWord) of two paired lines and returns the spans for each. The
// spans of each side partition its text in order; equal lines get a single unchanged span each. If either line is longer
// than opts.MaxLineBytes, both are marked changed as a whole.
func Refine(a, b string, opts Options) (spansA, spansB []Span) {
	opts = opts.withDefaults()
	if len(a) > opts.MaxLineBytes || len(b) > opts.MaxLineBytes {
		return wholeLine(SideA, a), wholeLine(SideB, b)
	}
	if a == b {
		return wholeLineStatus(SideA, a, Unchanged), wholeLineStatus(SideB, b, Unchanged)
	}

	tokA := splitTokens(a, opts.Granularity)
	tokB := splitTokens(b, opts.Granularity)
	syms := newSymbols(len(tokA) + len(tokB))
	ra, okA := syms.encode(tokenValues(tokA))
	rb, okB := syms.encode(tokenValues(tokB))
	if !okA || !okB {
		return wholeLine(SideA, a), wholeLine(SideB, b)
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	diffs := dmp.DiffCleanupMerge(dmp.DiffMainRunes(ra, rb, false))

	var sa, sb spanBuilder
	sa.side, sb.side = SideA, SideB
	ia, ib := 0, 0
	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sa.add(tokA[ia:ia+n], Unchanged)
			sb.add(tokB[ib:ib+n], Unchanged)
			ia += n
			ib += n
		case diffmatchpatch.DiffDelete:
			sa.add(tokA[ia:ia+n], Changed)
			ia += n
		case diffmatchpatch.DiffInsert:
			sb.add(tokB[ib:ib+n], Changed)
			ib += n
		}
	}
	return sa.spans, sb.spans
}

// RefineOpcodes computes spans for every line touched by a change in ops. Lines of a replace are paired by position from
// the start of the run; lines left over on the longer side, and all lines of inserts and deletes, are changed as a whole.
func RefineOpcodes(a, b []Line, ops []Opcode, opts Options) SpanIndex {
	idx := SpanIndex{A: map[int][]Span{}, B: map[int][]Span{}}
	for _, op := range ops {
		if !op.IsChange() {
			continue
		}
		paired := 0
		if op.Kind == OpReplace {
			paired = min(op.A.Len(), op.B.Len())
		}
		for k := 0; k < paired; k++ {
			i, j := op.A.Start+k, op.B.Start+k
			idx.A[i], idx.B[j] = Refine(a[i].Text, b[j].Text, opts)
		}
		for i := op.A.Start + paired; i < op.A.End; i++ {
			idx.A[i] = wholeLine(SideA, a[i].Text)
		}
		for j := op.B.Start + paired; j < op.B.End; j++ {
			idx.B[j] = wholeLine(SideB, b[j].Text)
		}
	}
	return idx
}

type token struct {
	value      string
	start, end int
}

func splitTokens(s string, g Granularity) []token {
	var out []token
	if g == GranularityWord {
		iter := words.FromString(s)
		for iter.Next() {
			out = append(out, token{value: iter.Value(), start: iter.Start(), end: iter.End()})
		}
		return out
	}
	iter := graphemes.FromString(s)
	for iter.Next() {
		out = append(out, token{value: iter.Value(), start: iter.Start(), end: iter.End()})
	}
	return out
}

func tokenValues(toks []token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.value
	}
	return out
}

type spanBuilder struct {
	side  Side
	spans []Span
}

func (b *spanBuilder) add(toks []token, status Status) {
	if len(toks) == 0 {
		return
	}
	start, end := toks[0].start, toks[len(toks)-1].end
	if n := len(b.spans); n > 0 && b.spans[n-1].Status == status && b.spans[n-1].End == start {
		b.spans[n-1].End = end
		return
	}
	b.spans = append(b.spans, Span{Side: b.side, Start: start, End: end, Status: status})
}

func wholeLine(side Side, text string) []Span {
	return wholeLineStatus(side, text, Changed)
}

func wholeLineStatus(side Side, text string, status Status) []Span {
	if text == "" {
		return nil
	}
	return []Span{{Side: side, Start: 0, End: len(text), Status: status}}
}

// ValidateSpans reports whether spans partition text in order with no empty span and no two adjacent spans sharing a
// status.
func ValidateSpans(spans []Span, text string) bool {
	pos := 0
	for k, s := range spans {
		if s.Start != pos || s.End <= s.Start || s.End > len(text) {
			return false
		}
		if k > 0 && spans[k-1].Status == s.Status {
			return false
		}
		pos = s.End
	}
	return pos == len(text)
}
