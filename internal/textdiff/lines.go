package textdiff

import "strings"

// Line is one line of an input text.
type Line struct {
	Index int    // 0-based position within its own side.
	Text  string // Content without the line break.
	EOL   string // "\n", "\r\n", or "" when the text ends without a break.
}

// Number returns the 1-based display number of l.
func (l Line) Number() int {
	return l.Index + 1
}

// key identifies l for matching. Text never contains '\n', so Text+EOL is unambiguous.
func (l Line) key() string {
	return l.Text + l.EOL
}

// Tokenize splits text into lines. A trailing line break does not produce a phantom empty line, so "a\nb\n" and "a\nb" both
// have two lines. The empty string yields exactly one empty line.
func Tokenize(text string) []Line {
	if text == "" {
		return []Line{{Index: 0}}
	}

	lines := make([]Line, 0, strings.Count(text, "\n")+1)
	for text != "" {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			lines = append(lines, Line{Index: len(lines), Text: text})
			break
		}
		body, eol := text[:idx], "\n"
		if strings.HasSuffix(body, "\r") {
			body, eol = body[:len(body)-1], "\r\n"
		}
		lines = append(lines, Line{Index: len(lines), Text: body, EOL: eol})
		text = text[idx+1:]
	}
	return lines
}

// Join is the inverse of Tokenize.
func Join(lines []Line) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Text)
		b.WriteString(l.EOL)
	}
	return b.String()
}
