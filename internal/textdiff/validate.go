package textdiff

import "fmt"

// Validate checks the opcode invariants for ops over lines a and b and returns an error on the first violation.
func Validate(ops []Opcode, a, b []Line) error {
	nextA, nextB := 0, 0
	for i, op := range ops {
		if op.A.Start != nextA || op.B.Start != nextB {
			return fmt.Errorf("opcode[%d] %v: expected ranges to start at a=%d b=%d", i, op, nextA, nextB)
		}
		if op.A.Len() < 0 || op.B.Len() < 0 {
			return fmt.Errorf("opcode[%d] %v: negative range", i, op)
		}
		if op.A.End > len(a) || op.B.End > len(b) {
			return fmt.Errorf("opcode[%d] %v: range exceeds input (len a=%d, len b=%d)", i, op, len(a), len(b))
		}

		switch op.Kind {
		case OpEqual, OpCollapsed:
			if op.A.Len() != op.B.Len() {
				return fmt.Errorf("opcode[%d] %v: %s requires ranges of equal length", i, op, op.Kind)
			}
			if op.A.Len() == 0 {
				return fmt.Errorf("opcode[%d] %v: empty %s", i, op, op.Kind)
			}
			for k := 0; k < op.A.Len(); k++ {
				if a[op.A.Start+k].key() != b[op.B.Start+k].key() {
					return fmt.Errorf("opcode[%d] %v: line a[%d] differs from b[%d]", i, op, op.A.Start+k, op.B.Start+k)
				}
			}
		case OpInsert:
			if op.A.Len() != 0 || op.B.Len() == 0 {
				return fmt.Errorf("opcode[%d] %v: insert requires empty a range and non-empty b range", i, op)
			}
		case OpDelete:
			if op.A.Len() == 0 || op.B.Len() != 0 {
				return fmt.Errorf("opcode[%d] %v: delete requires non-empty a range and empty b range", i, op)
			}
		case OpReplace:
			if op.A.Len() == 0 || op.B.Len() == 0 {
				return fmt.Errorf("opcode[%d] %v: replace requires non-empty ranges", i, op)
			}
		default:
			return fmt.Errorf("opcode[%d]: unknown kind %d", i, int(op.Kind))
		}

		if i > 0 && op.IsChange() && ops[i-1].IsChange() {
			return fmt.Errorf("opcode[%d] %v: adjacent to another change opcode", i, op)
		}

		nextA, nextB = op.A.End, op.B.End
	}
	if nextA != len(a) || nextB != len(b) {
		return fmt.Errorf("opcodes cover a[0:%d] b[0:%d], want a[0:%d] b[0:%d]", nextA, nextB, len(a), len(b))
	}
	return nil
}
