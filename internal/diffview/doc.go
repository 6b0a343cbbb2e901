package diffview

import (
	"fmt"

	"textdiff/internal/textdiff"
)

// DocInfo is what a renderer needs besides the rows.
type DocInfo struct {
	Mode  Mode
	Title string
	Stats textdiff.Stats
	// Changed is false when the texts are identical; documents then show a "No differences found" panel.
	Changed bool

	TooLarge bool
	Size     int // len(textA)+len(textB)
	Limit    int

	Theme Theme
}

// NewDocInfo describes res for a document in mode.
func NewDocInfo(res *textdiff.Result, mode Mode, title string, theme Theme) DocInfo {
	return DocInfo{
		Mode:     mode,
		Title:    title,
		Stats:    res.Stats,
		Changed:  res.HasChanges(),
		TooLarge: res.TooLarge,
		Size:     res.SizeA + res.SizeB,
		Limit:    res.Limit,
		Theme:    theme,
	}
}

func (d DocInfo) title() string {
	if d.Title == "" {
		return "textdiff"
	}
	return d.Title
}

func gapLabel(n int) string {
	if n == 1 {
		return "1 unchanged line"
	}
	return fmt.Sprintf("%d unchanged lines", n)
}
