package diffview

import "textdiff/internal/textdiff"

// Project lays out the reduced opcodes of res as rows for mode. Both modes classify every line identically; they differ
// only in how the two sides of a change share rows. Context rows carry both line numbers in either mode; changed rows
// carry the number of each side they show. A TooLarge result has no rows.
func Project(res *textdiff.Result, mode Mode) []Row {
	if res == nil || res.TooLarge {
		return nil
	}
	p := projector{res: res}
	for _, op := range res.Reduced {
		switch op.Kind {
		case textdiff.OpEqual:
			for k := 0; k < op.A.Len(); k++ {
				p.rows = append(p.rows, p.context(op.A.Start+k, op.B.Start+k))
			}
		case textdiff.OpCollapsed:
			p.rows = append(p.rows, Row{Kind: RowGap, Hidden: op.A.Len()})
		case textdiff.OpDelete, textdiff.OpInsert, textdiff.OpReplace:
			if mode == ModeUnified {
				p.unifiedChange(op)
			} else {
				p.splitChange(op)
			}
		}
	}
	return p.rows
}

type projector struct {
	res  *textdiff.Result
	rows []Row
}

func (p *projector) context(i, j int) Row {
	a, b := p.res.A[i], p.res.B[j]
	return Row{
		Kind:    RowContext,
		OldLine: linePtr(a.Number()),
		NewLine: linePtr(b.Number()),
		OldText: a.Text,
		NewText: b.Text,
	}
}

func (p *projector) setOld(r *Row, i int) {
	l := p.res.A[i]
	r.OldLine = linePtr(l.Number())
	r.OldText = l.Text
	r.OldSpans, _ = p.res.Spans.Get(textdiff.SideA, i)
	r.OldNoEOL = l.EOL == ""
}

func (p *projector) setNew(r *Row, j int) {
	l := p.res.B[j]
	r.NewLine = linePtr(l.Number())
	r.NewText = l.Text
	r.NewSpans, _ = p.res.Spans.Get(textdiff.SideB, j)
	r.NewNoEOL = l.EOL == ""
}

// paired returns how many lines of op are refined against each other.
func paired(op textdiff.Opcode) int {
	if op.Kind != textdiff.OpReplace {
		return 0
	}
	return min(op.A.Len(), op.B.Len())
}

// splitChange emits one row per pair, then the leftover lines of the longer side against a blank cell.
func (p *projector) splitChange(op textdiff.Opcode) {
	n := paired(op)
	for k := 0; k < n; k++ {
		r := Row{Kind: RowModified}
		p.setOld(&r, op.A.Start+k)
		p.setNew(&r, op.B.Start+k)
		p.rows = append(p.rows, r)
	}
	for i := op.A.Start + n; i < op.A.End; i++ {
		r := Row{Kind: RowRemoved}
		p.setOld(&r, i)
		p.rows = append(p.rows, r)
	}
	for j := op.B.Start + n; j < op.B.End; j++ {
		r := Row{Kind: RowAdded}
		p.setNew(&r, j)
		p.rows = append(p.rows, r)
	}
}

// unifiedChange emits the old lines of op, then its new lines.
func (p *projector) unifiedChange(op textdiff.Opcode) {
	n := paired(op)
	for k := 0; k < op.A.Len(); k++ {
		r := Row{Kind: RowRemoved}
		if k < n {
			r.Kind = RowModified
		}
		p.setOld(&r, op.A.Start+k)
		p.rows = append(p.rows, r)
	}
	for k := 0; k < op.B.Len(); k++ {
		r := Row{Kind: RowAdded}
		if k < n {
			r.Kind = RowModified
		}
		p.setNew(&r, op.B.Start+k)
		p.rows = append(p.rows, r)
	}
}

// segment is a run of a line's text with its highlight.
type segment struct {
	Text    string
	Changed bool
}

// segments splits text by spans. Only modified rows get a nested highlight; other rows are a single plain segment.
func segments(text string, spans []textdiff.Span, kind RowKind) []segment {
	if kind != RowModified || len(spans) == 0 {
		if text == "" {
			return nil
		}
		return []segment{{Text: text}}
	}
	out := make([]segment, 0, len(spans))
	for _, s := range spans {
		if s.Start < 0 || s.End > len(text) || s.Start >= s.End {
			continue
		}
		out = append(out, segment{Text: text[s.Start:s.End], Changed: s.Status == textdiff.Changed})
	}
	return out
}
