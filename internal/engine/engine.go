// Package engine turns two texts into the pair of documents a display holds: it computes the diff once and renders both
// layouts from it.
package engine

import (
	"fmt"
	"strings"

	"textdiff/internal/diffview"
	"textdiff/internal/results"
	"textdiff/internal/textdiff"
)

// Format selects the document encoding.
type Format int

const (
	FormatHTML Format = iota
	FormatTerminal
)

func (f Format) String() string {
	if f == FormatTerminal {
		return "terminal"
	}
	return "html"
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "html":
		return FormatHTML, nil
	case "terminal", "text":
		return FormatTerminal, nil
	}
	return 0, fmt.Errorf("unknown document format %q", s)
}

// Request is one engine invocation.
type Request struct {
	TextA string
	TextB string
	// Options.ContextLines is the number of unchanged lines kept around each change; -1 keeps everything.
	Options textdiff.Options
	// Mode is echoed in the result as the view to show first.
	Mode   diffview.Mode
	Format Format
	Title  string
	Theme  diffview.Theme
}

// NewRequest returns a request with default options, the side-by-side view, HTML documents and the built-in theme.
func NewRequest(textA, textB string, contextLines int) Request {
	opts := textdiff.DefaultOptions()
	opts.ContextLines = contextLines
	return Request{
		TextA:   textA,
		TextB:   textB,
		Options: opts,
		Mode:    diffview.ModeSideBySide,
		Theme:   diffview.DefaultTheme(),
	}
}

// Run computes the diff of req and renders both documents. Invalid options return an error matching
// textdiff.ErrInvalidConfig before anything is computed. Run does no I/O and may be called concurrently.
func Run(req Request) (results.Set, error) {
	res, err := textdiff.Compute(req.TextA, req.TextB, req.Options)
	if err != nil {
		return results.Set{}, err
	}
	return Render(res, req), nil
}

// Render renders both documents of an already computed diff. Only the presentation fields of req are used.
func Render(res *textdiff.Result, req Request) results.Set {
	render := diffview.RenderHTML
	if req.Format == FormatTerminal {
		render = diffview.RenderTerminal
	}
	doc := func(mode diffview.Mode) string {
		return render(diffview.Project(res, mode), diffview.NewDocInfo(res, mode, req.Title, req.Theme))
	}
	return results.Set{
		Mode:       req.Mode,
		Format:     req.Format.String(),
		Unified:    doc(diffview.ModeUnified),
		SideBySide: doc(diffview.ModeSideBySide),
	}
}
