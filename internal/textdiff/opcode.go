package textdiff

import "fmt"

// Kind is the kind of an Opcode.
type Kind int

const (
	OpEqual Kind = iota
	OpInsert
	OpDelete
	OpReplace
	OpCollapsed // hidden equal lines; produced by Reduce only
)

func (k Kind) String() string {
	switch k {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	case OpCollapsed:
		return "collapsed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Range is a half-open range [Start, End) of 0-based line indices.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

// Opcode aligns the lines A of the old text with the lines B of the new text.
type Opcode struct {
	Kind Kind
	A    Range
	B    Range
}

func (op Opcode) String() string {
	return fmt.Sprintf("%s a[%d:%d] b[%d:%d]", op.Kind, op.A.Start, op.A.End, op.B.Start, op.B.End)
}

// IsChange reports whether op changes anything (insert, delete or replace).
func (op Opcode) IsChange() bool {
	return op.Kind == OpInsert || op.Kind == OpDelete || op.Kind == OpReplace
}

// sub returns the part of an equal-like op covering offsets [from, to) of its run, with the given kind.
func (op Opcode) sub(from, to int, kind Kind) Opcode {
	return Opcode{
		Kind: kind,
		A:    Range{Start: op.A.Start + from, End: op.A.Start + to},
		B:    Range{Start: op.B.Start + from, End: op.B.Start + to},
	}
}

// gapOpcode classifies the unmatched region between two anchors. It returns false if the region is empty.
func gapOpcode(alo, ahi, blo, bhi int) (Opcode, bool) {
	op := Opcode{A: Range{Start: alo, End: ahi}, B: Range{Start: blo, End: bhi}}
	switch {
	case ahi > alo && bhi > blo:
		op.Kind = OpReplace
	case ahi > alo:
		op.Kind = OpDelete
	case bhi > blo:
		op.Kind = OpInsert
	default:
		return Opcode{}, false
	}
	return op, true
}
