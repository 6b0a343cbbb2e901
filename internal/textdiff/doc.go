// Package textdiff computes a line-level diff between two texts and refines changed lines into character spans.
//
// The pipeline is:
//
//	Tokenize -> Match -> RefineOpcodes -> Reduce
//
// Compute runs all four steps and returns a Result. A Result is immutable once built and owned by the caller; nothing is
// cached or shared between calls, so Compute may be called from any number of goroutines.
//
// Invariants of an opcode sequence (see Validate):
//   - The A ranges, concatenated, cover every line of A exactly once; likewise for B.
//   - OpEqual has ranges of equal length with pairwise-identical lines.
//   - OpInsert has an empty A range, OpDelete an empty B range, OpReplace two non-empty ranges.
//   - OpCollapsed only appears after Reduce and stands for hidden equal lines.
//
// Spans for a line partition its Text, are ordered left to right, and never repeat a status twice in a row.
package textdiff
