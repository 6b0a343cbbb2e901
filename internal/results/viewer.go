package results

import (
	"sync"

	"textdiff/internal/diffview"
)

// Viewer holds the live Set of a display and the selected view. Switching returns a retained document; nothing is
// recomputed. A Viewer is safe for concurrent use.
type Viewer struct {
	mu   sync.Mutex
	set  Set
	mode diffview.Mode
}

func NewViewer(set Set) *Viewer {
	return &Viewer{set: set, mode: set.Mode}
}

// Current returns the document for the selected view and the view itself.
func (v *Viewer) Current() (string, diffview.Mode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	doc, _ := v.set.View(v.mode)
	return doc, v.mode
}

func (v *Viewer) Mode() diffview.Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

func (v *Viewer) Set() Set {
	v.mu.Lock()
	defer v.mu.Unlock()
	set := v.set
	set.Mode = v.mode
	return set
}

// Switch selects mode and returns its document. It returns false, leaving the selection unchanged, when the Set cannot
// switch views.
func (v *Viewer) Switch(mode diffview.Mode) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.switchTo(mode)
}

// Toggle switches to the other view.
func (v *Viewer) Toggle() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.switchTo(v.mode.Other())
}

func (v *Viewer) switchTo(mode diffview.Mode) (string, bool) {
	if !v.set.Switchable() {
		doc, _ := v.set.View(v.mode)
		return doc, false
	}
	v.mode = mode
	doc, _ := v.set.View(mode)
	return doc, true
}

// Replace installs the documents of a newer computation. The selected view is kept when the new Set can show it.
func (v *Viewer) Replace(set Set) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.set = set
	if !set.Switchable() {
		v.mode = set.Mode
	}
}
