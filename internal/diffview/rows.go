package diffview

import (
	"fmt"
	"strings"

	"textdiff/internal/textdiff"
)

// Mode is a document layout.
type Mode int

const (
	ModeSideBySide Mode = iota
	ModeUnified
)

// String returns the wire name of m ("side_by_side" or "unified").
func (m Mode) String() string {
	if m == ModeUnified {
		return "unified"
	}
	return "side_by_side"
}

// Other returns the layout m is not.
func (m Mode) Other() Mode {
	if m == ModeUnified {
		return ModeSideBySide
	}
	return ModeUnified
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "side_by_side", "side-by-side", "split":
		return ModeSideBySide, nil
	case "unified":
		return ModeUnified, nil
	}
	return 0, &textdiff.ConfigError{Field: "view_mode", Value: s, Reason: `must be "unified" or "side_by_side"`}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

type RowKind int

const (
	RowContext RowKind = iota
	RowRemoved
	RowAdded
	RowModified
	RowGap
)

func (k RowKind) String() string {
	switch k {
	case RowContext:
		return "context"
	case RowRemoved:
		return "removed"
	case RowAdded:
		return "added"
	case RowModified:
		return "modified"
	case RowGap:
		return "collapsed-gap"
	default:
		return fmt.Sprintf("RowKind(%d)", int(k))
	}
}

// Row is one display line. OldLine and NewLine are 1-based and nil on the side the row does not show. A RowGap carries
// only Hidden.
type Row struct {
	Kind     RowKind
	OldLine  *int
	NewLine  *int
	OldText  string
	NewText  string
	OldSpans []textdiff.Span
	NewSpans []textdiff.Span
	// OldNoEOL and NewNoEOL mark changed lines that end without a line break.
	OldNoEOL bool
	NewNoEOL bool
	Hidden   int
}

func linePtr(n int) *int {
	v := n
	return &v
}
