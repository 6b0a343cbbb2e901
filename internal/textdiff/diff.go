package textdiff

// Stats counts the lines of a diff. A modified pair also counts as one addition and one deletion.
type Stats struct {
	Additions int // lines only in B, including modified ones
	Deletions int // lines only in A, including modified ones
	Modified  int // paired lines of replace opcodes
	Unchanged int // lines of equal opcodes
}

// Result is the diff of two texts. It is immutable once returned by Compute or ReadPatch and may be shared between
// goroutines.
type Result struct {
	A []Line
	B []Line

	// Opcodes is the full alignment; Reduced is Opcodes after context reduction.
	Opcodes []Opcode
	Reduced []Opcode

	Spans        SpanIndex
	Stats        Stats
	ContextLines int

	// TooLarge is set when the inputs exceeded Limit bytes. A and B, the opcodes and the spans are empty in that case.
	TooLarge bool
	SizeA    int
	SizeB    int
	Limit    int
}

// HasChanges reports whether r contains any insert, delete or replace.
func (r *Result) HasChanges() bool {
	return hasChange(r.Opcodes)
}

// Compute diffs textA against textB. It returns a *ConfigError (matching ErrInvalidConfig) when opts are invalid;
// oversized input is not an error but yields a Result with TooLarge set.
//
// Compute is a pure function of its arguments and is safe for concurrent use.
func Compute(textA, textB string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	res := &Result{
		ContextLines: opts.ContextLines,
		SizeA:        len(textA),
		SizeB:        len(textB),
		Limit:        opts.MaxInputBytes,
	}
	if len(textA)+len(textB) > opts.MaxInputBytes {
		res.TooLarge = true
		return res, nil
	}

	res.A = Tokenize(textA)
	res.B = Tokenize(textB)
	if textA == textB {
		res.Opcodes = []Opcode{{Kind: OpEqual, A: Range{End: len(res.A)}, B: Range{End: len(res.B)}}}
	} else {
		res.Opcodes = Match(res.A, res.B, opts)
	}
	res.Spans = RefineOpcodes(res.A, res.B, res.Opcodes, opts)
	res.Reduced = Reduce(res.Opcodes, opts.ContextLines)
	res.Stats = countStats(res.Opcodes)
	return res, nil
}

func countStats(ops []Opcode) Stats {
	var s Stats
	for _, op := range ops {
		switch op.Kind {
		case OpEqual, OpCollapsed:
			s.Unchanged += op.A.Len()
		case OpInsert:
			s.Additions += op.B.Len()
		case OpDelete:
			s.Deletions += op.A.Len()
		case OpReplace:
			s.Additions += op.B.Len()
			s.Deletions += op.A.Len()
			s.Modified += min(op.A.Len(), op.B.Len())
		}
	}
	return s
}
