// Package results holds the documents of one diff on the display side: the pair of documents, view switching between
// them, and persistence so a reloaded display can resume without recomputing the diff.
package results

import "textdiff/internal/diffview"

// Set is the output of one computation: the unified and side-by-side documents and the view to show first. A Set recovered
// from storage that held a single legacy document has only Fallback and cannot switch views.
type Set struct {
	Mode       diffview.Mode `json:"view_mode"`
	Format     string        `json:"format,omitempty"`
	Unified    string        `json:"unified,omitempty"`
	SideBySide string        `json:"side_by_side,omitempty"`
	Fallback   string        `json:"fallback,omitempty"`
}

// Switchable reports whether s holds both documents.
func (s Set) Switchable() bool {
	return s.Unified != "" && s.SideBySide != ""
}

// Empty reports whether s holds no document at all.
func (s Set) Empty() bool {
	return s.Unified == "" && s.SideBySide == "" && s.Fallback == ""
}

// View returns the document for mode. If s has no document for mode, it returns the document it does have and false.
func (s Set) View(mode diffview.Mode) (string, bool) {
	switch {
	case mode == diffview.ModeUnified && s.Unified != "":
		return s.Unified, true
	case mode == diffview.ModeSideBySide && s.SideBySide != "":
		return s.SideBySide, true
	case s.Fallback != "":
		return s.Fallback, false
	case s.Unified != "":
		return s.Unified, false
	default:
		return s.SideBySide, false
	}
}
