package textdiff

// Reduce hides unchanged lines far from any change. With contextLines < 0, ops is returned unchanged (as a copy).
// Otherwise every maximal run of equal lines keeps contextLines lines next to each neighboring change and the rest of the
// run becomes a single OpCollapsed opcode. A run with no change on one side (the start or end of the document) keeps no
// lines on that side. If ops contain no change at all, nothing is hidden.
//
// Existing OpCollapsed opcodes are kept and treated like the document edge; adjacent collapsed opcodes are merged.
func Reduce(ops []Opcode, contextLines int) []Opcode {
	if contextLines < 0 || !hasChange(ops) {
		return append([]Opcode(nil), ops...)
	}

	out := make([]Opcode, 0, len(ops)+2)
	for i := 0; i < len(ops); {
		if ops[i].Kind != OpEqual {
			out = appendMerged(out, ops[i])
			i++
			continue
		}

		run := ops[i]
		j := i + 1
		for j < len(ops) && ops[j].Kind == OpEqual {
			run.A.End, run.B.End = ops[j].A.End, ops[j].B.End
			j++
		}
		before := i > 0 && ops[i-1].IsChange()
		after := j < len(ops) && ops[j].IsChange()
		for _, op := range reduceRun(run, contextLines, before, after) {
			out = appendMerged(out, op)
		}
		i = j
	}
	return out
}

// reduceRun splits an equal run into visible head, collapsed middle and visible tail.
func reduceRun(run Opcode, c int, before, after bool) []Opcode {
	n := run.A.Len()
	head, tail := 0, 0
	if before {
		head = min(c, n)
	}
	if after {
		tail = min(c, n-head)
	}
	if head+tail >= n {
		return []Opcode{run}
	}

	parts := make([]Opcode, 0, 3)
	if head > 0 {
		parts = append(parts, run.sub(0, head, OpEqual))
	}
	parts = append(parts, run.sub(head, n-tail, OpCollapsed))
	if tail > 0 {
		parts = append(parts, run.sub(n-tail, n, OpEqual))
	}
	return parts
}

func appendMerged(out []Opcode, op Opcode) []Opcode {
	if n := len(out); n > 0 && op.Kind == OpCollapsed && out[n-1].Kind == OpCollapsed {
		out[n-1].A.End, out[n-1].B.End = op.A.End, op.B.End
		return out
	}
	return append(out, op)
}

func hasChange(ops []Opcode) bool {
	for _, op := range ops {
		if op.IsChange() {
			return true
		}
	}
	return false
}
