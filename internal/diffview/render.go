package diffview

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"textdiff/internal/textdiff"
)

const splitSeparator = " │ "

// RenderTerminal renders rows as lines of styled terminal text at their natural width. Lines are never wrapped; callers
// with a fixed viewport truncate them.
func RenderTerminal(rows []Row, doc DocInfo) string {
	st := newTermStyles(doc.Theme.orDefault())

	lines := []string{
		st.title.Render(doc.title()) + "  " + st.addText.Render(fmt.Sprintf("+%d", doc.Stats.Additions)) + " " +
			st.delText.Render(fmt.Sprintf("-%d", doc.Stats.Deletions)),
	}
	switch {
	case doc.TooLarge:
		lines = append(lines, st.muted.Render(fmt.Sprintf("Diff too large to render in full: %d bytes exceed the limit of %d bytes.", doc.Size, doc.Limit)))
	case !doc.Changed:
		lines = append(lines, st.muted.Render("No differences found"))
	case doc.Mode == ModeUnified:
		lines = append(lines, renderUnifiedLines(rows, st)...)
	default:
		lines = append(lines, renderSplitLines(rows, st)...)
	}
	return strings.Join(lines, "\n")
}

type termStyles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	num     lipgloss.Style
	addText lipgloss.Style
	delText lipgloss.Style
	addRow  lipgloss.Style
	delRow  lipgloss.Style
	modRow  lipgloss.Style
	addChg  lipgloss.Style
	delChg  lipgloss.Style
	noEOL   lipgloss.Style
}

func newTermStyles(t Theme) termStyles {
	return termStyles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Text)),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)).Italic(true),
		num:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.LineNumber)),
		addText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.AddedText)),
		delText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.RemovedText)),
		addRow:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)).Background(lipgloss.Color(t.AddedBg)),
		delRow:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)).Background(lipgloss.Color(t.RemovedBg)),
		modRow:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)).Background(lipgloss.Color(t.ModifiedBg)),
		addChg:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)).Background(lipgloss.Color(t.AddedHighlight)).Bold(true),
		delChg:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)).Background(lipgloss.Color(t.RemovedHighlight)).Bold(true),
		noEOL:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
	}
}

// numberWidths returns the column widths of old and new line numbers.
func numberWidths(rows []Row) (int, int) {
	maxOld, maxNew := 0, 0
	for _, row := range rows {
		if row.OldLine != nil && *row.OldLine > maxOld {
			maxOld = *row.OldLine
		}
		if row.NewLine != nil && *row.NewLine > maxNew {
			maxNew = *row.NewLine
		}
	}
	return max(3, digits(maxOld)), max(3, digits(maxNew))
}

func renderUnifiedLines(rows []Row, st termStyles) []string {
	oldNumW, newNumW := numberWidths(rows)
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Kind == RowGap {
			out = append(out, strings.Repeat(" ", oldNumW+newNumW+2)+st.muted.Render("⋯ "+gapLabel(row.Hidden)))
			continue
		}
		nums := padLeft(lineNumber(row.OldLine), oldNumW) + " " + padLeft(lineNumber(row.NewLine), newNumW)
		var code string
		switch {
		case row.Kind == RowContext:
			code = "  " + sanitize(row.NewText)
		case row.OldLine != nil:
			code = renderCode(oldMarker(row.Kind), row.OldText, row.OldSpans, row.Kind, row.OldNoEOL, st.delRow, st.delChg, st)
		default:
			code = renderCode(newMarker(row.Kind), row.NewText, row.NewSpans, row.Kind, row.NewNoEOL, st.addRow, st.addChg, st)
		}
		out = append(out, st.num.Render(nums)+" "+code)
	}
	return out
}

func renderSplitLines(rows []Row, st termStyles) []string {
	oldNumW, newNumW := numberWidths(rows)

	left := make([]string, len(rows))
	right := make([]string, len(rows))
	leftW := 0
	for i, row := range rows {
		if row.Kind == RowGap {
			left[i] = strings.Repeat(" ", oldNumW+1) + st.muted.Render("⋯ "+gapLabel(row.Hidden))
			right[i] = strings.Repeat(" ", newNumW+1) + st.muted.Render("⋯ "+gapLabel(row.Hidden))
		} else {
			left[i] = renderSide(row.OldLine, oldNumW, oldMarker(row.Kind), row.OldText, row.OldSpans, row.Kind, row.OldNoEOL, st.delRow, st.delChg, st)
			right[i] = renderSide(row.NewLine, newNumW, newMarker(row.Kind), row.NewText, row.NewSpans, row.Kind, row.NewNoEOL, st.addRow, st.addChg, st)
		}
		leftW = max(leftW, ansi.StringWidth(left[i]))
	}

	out := make([]string, len(rows))
	for i := range rows {
		out[i] = strings.TrimRight(padRight(left[i], leftW)+splitSeparator+right[i], " ")
	}
	return out
}

func renderSide(line *int, numW int, marker, text string, spans []textdiff.Span, kind RowKind, noEOL bool, row, chg lipgloss.Style, st termStyles) string {
	if line == nil {
		return ""
	}
	return st.num.Render(padLeft(strconv.Itoa(*line), numW)) + " " + renderCode(marker, text, spans, kind, noEOL, row, chg, st)
}

// renderCode renders the marker and text of one side of a row. Context text is unstyled, added and removed rows get the
// row style, and modified rows get the modified background with the side's highlight on changed spans.
func renderCode(marker, text string, spans []textdiff.Span, kind RowKind, noEOL bool, row, chg lipgloss.Style, st termStyles) string {
	if kind == RowContext {
		return marker + " " + sanitize(text)
	}
	var b strings.Builder
	if kind == RowModified {
		row = st.modRow
	}
	b.WriteString(row.Render(marker + " "))
	for _, seg := range segments(text, spans, kind) {
		if seg.Changed {
			b.WriteString(chg.Render(sanitize(seg.Text)))
		} else {
			b.WriteString(row.Render(sanitize(seg.Text)))
		}
	}
	if noEOL {
		b.WriteString(" " + st.noEOL.Render(noEOLGlyph))
	}
	return b.String()
}

// sanitize expands tabs and replaces other control characters, which would move the cursor or start escape sequences.
func sanitize(s string) string {
	if !strings.ContainsFunc(s, unicode.IsControl) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\t':
			b.WriteString("    ")
		case unicode.IsControl(r):
			b.WriteRune('�')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func lineNumber(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func padLeft(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func digits(n int) int {
	if n <= 0 {
		return 1
	}
	d := 0
	for n > 0 {
		d++
		n /= 10
	}
	return d
}
