package results

import (
	"strings"

	"textdiff/internal/diffview"
)

// Host widgets persist a flat list of values. Documents are recognized by their doctype.
const doctype = "<!doctype"

func isDocument(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	return len(s) >= len(doctype) && strings.EqualFold(s[:len(doctype)], doctype)
}

// PersistWidgetValues returns a copy of values with every earlier document removed and the documents of set appended,
// unified first. values itself is not modified.
func PersistWidgetValues(values []any, set Set) []any {
	out := make([]any, 0, len(values)+2)
	for _, v := range values {
		if !isDocument(v) {
			out = append(out, v)
		}
	}
	if set.Switchable() {
		return append(out, set.Unified, set.SideBySide)
	}
	if doc, _ := set.View(set.Mode); doc != "" {
		out = append(out, doc)
	}
	return out
}

// RecoverWidgetValues restores the documents persisted by PersistWidgetValues. With two or more documents the last two
// are the unified and side-by-side ones; a single document is a legacy fallback that cannot switch views. The view mode
// is taken from the first value naming one, defaulting to side-by-side. It returns false if values hold no document.
func RecoverWidgetValues(values []any) (Set, bool) {
	var docs []string
	set := Set{Mode: diffview.ModeSideBySide}
	modeFound := false
	for _, v := range values {
		if isDocument(v) {
			docs = append(docs, v.(string))
			continue
		}
		if s, ok := v.(string); ok && !modeFound {
			switch s {
			case diffview.ModeUnified.String(), diffview.ModeSideBySide.String():
				set.Mode, _ = diffview.ParseMode(s)
				modeFound = true
			}
		}
	}

	switch len(docs) {
	case 0:
		return set, false
	case 1:
		set.Fallback = docs[0]
	default:
		set.Unified, set.SideBySide = docs[len(docs)-2], docs[len(docs)-1]
	}
	set.Format = "html"
	return set, true
}
