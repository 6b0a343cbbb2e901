package textdiff

import (
	"bytes"
	"errors"
	"fmt"

	sgdiff "github.com/sourcegraph/go-diff/diff"
)

// WritePatch formats res as a single-file unified diff between oldName and newName. Hunks follow res.Reduced: every
// collapsed opcode separates two hunks, so a Result computed with ContextLines -1 yields one hunk covering both texts.
// Identical texts produce an empty patch. A TooLarge result returns ErrTooLarge.
func WritePatch(res *Result, oldName, newName string) ([]byte, error) {
	if res.TooLarge {
		return nil, ErrTooLarge
	}
	if !res.HasChanges() {
		return nil, nil
	}

	fd := &sgdiff.FileDiff{OrigName: oldName, NewName: newName}
	for _, group := range hunkGroups(res.Reduced) {
		fd.Hunks = append(fd.Hunks, buildHunk(res, group))
	}
	out, err := sgdiff.PrintFileDiff(fd)
	if err != nil {
		return nil, fmt.Errorf("print patch: %w", err)
	}
	return out, nil
}

// hunkGroups splits ops at collapsed opcodes, dropping groups without a change.
func hunkGroups(ops []Opcode) [][]Opcode {
	var groups [][]Opcode
	var cur []Opcode
	flush := func() {
		if hasChange(cur) {
			groups = append(groups, cur)
		}
		cur = nil
	}
	for _, op := range ops {
		if op.Kind == OpCollapsed {
			flush()
			continue
		}
		cur = append(cur, op)
	}
	flush()
	return groups
}

func buildHunk(res *Result, ops []Opcode) *sgdiff.Hunk {
	first, last := ops[0], ops[len(ops)-1]
	h := &sgdiff.Hunk{
		OrigLines: int32(last.A.End - first.A.Start),
		NewLines:  int32(last.B.End - first.B.Start),
	}
	h.OrigStartLine = hunkStart(first.A.Start, h.OrigLines)
	h.NewStartLine = hunkStart(first.B.Start, h.NewLines)

	var body bytes.Buffer
	writeLine := func(prefix byte, l Line) {
		body.WriteByte(prefix)
		body.WriteString(l.Text)
		switch {
		case l.EOL != "":
			body.WriteString(l.EOL)
		case prefix == '-':
			// The printer inserts the marker at OrigNoNewlineAt.
			body.WriteByte('\n')
		}
	}
	for _, op := range ops {
		switch op.Kind {
		case OpEqual:
			for i := op.A.Start; i < op.A.End; i++ {
				writeLine(' ', res.A[i])
			}
		default:
			for i := op.A.Start; i < op.A.End; i++ {
				writeLine('-', res.A[i])
				if res.A[i].EOL == "" {
					h.OrigNoNewlineAt = int32(body.Len())
				}
			}
			for j := op.B.Start; j < op.B.End; j++ {
				writeLine('+', res.B[j])
			}
		}
	}
	h.Body = body.Bytes()
	return h
}

// hunkStart returns the 1-based start line of a hunk beginning at 0-based index idx. Empty ranges name the line before
// them, as diff(1) does.
func hunkStart(idx int, count int32) int32 {
	if count == 0 {
		return int32(idx)
	}
	return int32(idx + 1)
}

// ReadPatch builds a Result from a single-file unified diff. Only the lines present in the hunks are known: the lines
// between hunks (and before the first one) are replaced by blank placeholders inside OpCollapsed opcodes, and nothing is
// known after the last hunk. Consecutive removed and added lines form one replace, so the character refinement of the
// result matches Compute's.
func ReadPatch(raw []byte, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	fileDiffs, err := sgdiff.ParseMultiFileDiff(raw)
	if err != nil {
		return nil, fmt.Errorf("parse patch: %w", err)
	}
	if len(fileDiffs) != 1 {
		return nil, fmt.Errorf("parse patch: want exactly one file, got %d", len(fileDiffs))
	}

	p := &patchReader{}
	for n, h := range fileDiffs[0].Hunks {
		if err := p.readHunk(h); err != nil {
			return nil, fmt.Errorf("parse patch: hunk %d: %w", n+1, err)
		}
	}
	if len(p.a) == 0 && len(p.b) == 0 {
		return nil, errors.New("parse patch: no hunks")
	}
	if err := Validate(p.ops, p.a, p.b); err != nil {
		return nil, fmt.Errorf("parse patch: %w", err)
	}

	res := &Result{
		A:            p.a,
		B:            p.b,
		Opcodes:      p.ops,
		ContextLines: opts.ContextLines,
		Limit:        opts.MaxInputBytes,
	}
	res.SizeA, res.SizeB = len(Join(p.a)), len(Join(p.b))
	res.Spans = RefineOpcodes(res.A, res.B, res.Opcodes, opts)
	res.Reduced = Reduce(res.Opcodes, opts.ContextLines)
	res.Stats = countStats(res.Opcodes)
	return res, nil
}

type patchReader struct {
	a, b []Line
	ops  []Opcode

	// pending lines of the current change run
	dels, adds []Line
}

type hunkLine struct {
	prefix byte
	text   string
	eol    string
	end    int // offset just past the line in the hunk body
}

func (p *patchReader) readHunk(h *sgdiff.Hunk) error {
	startA := int(h.OrigStartLine)
	if h.OrigLines > 0 {
		startA--
	}
	startB := int(h.NewStartLine)
	if h.NewLines > 0 {
		startB--
	}
	hiddenA, hiddenB := startA-len(p.a), startB-len(p.b)
	if hiddenA < 0 || hiddenA != hiddenB {
		return fmt.Errorf("hunk starts at -%d +%d, inconsistent with preceding lines", h.OrigStartLine, h.NewStartLine)
	}
	if hiddenA > 0 {
		p.hide(hiddenA)
	}

	lines := splitHunkBody(h.Body)
	for k, line := range lines {
		switch line.prefix {
		case ' ':
			eolA := origEOL(h, line)
			if eolA != line.eol {
				p.dels = append(p.dels, p.lineA(line.text, eolA))
				p.adds = append(p.adds, p.lineB(line.text, line.eol))
				continue
			}
			p.flush()
			p.equal(line.text, line.eol)
		case '-':
			p.dels = append(p.dels, p.lineA(line.text, origEOL(h, line)))
		case '+':
			p.adds = append(p.adds, p.lineB(line.text, line.eol))
		case '\\':
			// "\ No newline at end of file" left in the body applies to the line before it.
			if k > 0 {
				p.clearEOL(lines[k-1].prefix)
			}
		default:
			return fmt.Errorf("unexpected hunk line prefix %q", line.prefix)
		}
	}
	p.flush()

	if gotA, gotB := len(p.a)-startA, len(p.b)-startB; gotA != int(h.OrigLines) || gotB != int(h.NewLines) {
		return fmt.Errorf("hunk has -%d +%d lines, header says -%d +%d", gotA, gotB, h.OrigLines, h.NewLines)
	}
	return nil
}

// origEOL returns the line break of line on the old side, which the parser records separately.
func origEOL(h *sgdiff.Hunk, line hunkLine) string {
	if h.OrigNoNewlineAt > 0 && int32(line.end) == h.OrigNoNewlineAt {
		return ""
	}
	return line.eol
}

func (p *patchReader) lineA(text, eol string) Line {
	return Line{Index: len(p.a) + len(p.dels), Text: text, EOL: eol}
}

func (p *patchReader) lineB(text, eol string) Line {
	return Line{Index: len(p.b) + len(p.adds), Text: text, EOL: eol}
}

func (p *patchReader) hide(n int) {
	op := Opcode{Kind: OpCollapsed, A: Range{Start: len(p.a)}, B: Range{Start: len(p.b)}}
	for k := 0; k < n; k++ {
		p.a = append(p.a, Line{Index: len(p.a), EOL: "\n"})
		p.b = append(p.b, Line{Index: len(p.b), EOL: "\n"})
	}
	op.A.End, op.B.End = len(p.a), len(p.b)
	p.push(op)
}

func (p *patchReader) equal(text, eol string) {
	op := Opcode{Kind: OpEqual, A: Range{Start: len(p.a), End: len(p.a) + 1}, B: Range{Start: len(p.b), End: len(p.b) + 1}}
	p.a = append(p.a, Line{Index: len(p.a), Text: text, EOL: eol})
	p.b = append(p.b, Line{Index: len(p.b), Text: text, EOL: eol})
	p.push(op)
}

func (p *patchReader) flush() {
	alo, blo := len(p.a), len(p.b)
	p.a = append(p.a, p.dels...)
	p.b = append(p.b, p.adds...)
	p.dels, p.adds = nil, nil
	if op, ok := gapOpcode(alo, len(p.a), blo, len(p.b)); ok {
		p.push(op)
	}
}

// clearEOL drops the line break of the most recent line with the given prefix.
func (p *patchReader) clearEOL(prefix byte) {
	switch prefix {
	case '-':
		if n := len(p.dels); n > 0 {
			p.dels[n-1].EOL = ""
		}
	case '+':
		if n := len(p.adds); n > 0 {
			p.adds[n-1].EOL = ""
		}
	case ' ':
		if len(p.dels) == 0 && len(p.adds) == 0 && len(p.a) > 0 && len(p.b) > 0 {
			p.a[len(p.a)-1].EOL = ""
			p.b[len(p.b)-1].EOL = ""
		}
	}
}

// push appends op, extending the previous opcode when both are equal runs or both collapsed.
func (p *patchReader) push(op Opcode) {
	if n := len(p.ops); n > 0 {
		prev := &p.ops[n-1]
		if prev.Kind == op.Kind && (op.Kind == OpEqual || op.Kind == OpCollapsed) {
			prev.A.End, prev.B.End = op.A.End, op.B.End
			return
		}
	}
	p.ops = append(p.ops, op)
}

func splitHunkBody(body []byte) []hunkLine {
	var out []hunkLine
	pos := 0
	for pos < len(body) {
		line := body[pos:]
		end := bytes.IndexByte(line, '\n')
		eol := "\n"
		if end < 0 {
			end, eol = len(line), ""
		}
		raw := line[:end]
		if eol != "" && bytes.HasSuffix(raw, []byte("\r")) {
			raw, eol = raw[:len(raw)-1], "\r\n"
		}
		text := string(raw)
		pos += end
		if eol != "" {
			pos++
		}
		if text == "" {
			// Some tools drop the leading space of empty context lines.
			out = append(out, hunkLine{prefix: ' ', eol: eol, end: pos})
			continue
		}
		out = append(out, hunkLine{prefix: text[0], text: text[1:], eol: eol, end: pos})
	}
	return out
}
