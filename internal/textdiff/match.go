package textdiff

import (
	"sort"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Gaps with no unique anchor left are aligned with a leftmost LCS table while len(a)*len(b) stays within maxDPCells,
// and with Myers' algorithm beyond that. maxSymbols is the number of distinct lines symbolRune can encode.
const (
	maxDPCells = 1 << 22
	maxSymbols = 0x10FFFF - 0x800
)

// Match aligns a and b and returns opcodes covering both. Lines match when Text and EOL are identical.
//
// With AlgorithmAnchored (the default), common prefix and suffix lines are matched first, then lines occurring exactly
// once on each side are used as anchors (the longest increasing run of them), recursively. Whatever remains between
// anchors is aligned by a longest common subsequence that prefers the earliest matches. Unmatched lines between two
// matched ones form one opcode: replace when both sides have lines, otherwise insert or delete.
//
// The result is deterministic: equal inputs always produce equal opcodes.
func Match(a, b []Line, opts Options) []Opcode {
	if opts.Algorithm == AlgorithmDifflib {
		return matchDifflib(a, b)
	}

	m := newMatcher(a, b)
	m.align(0, len(a), 0, len(b))
	return buildOpcodes(m.pairs, len(a), len(b))
}

type pair struct {
	i, j int
}

type matcher struct {
	a, b  []int // interned line ids
	pairs []pair
}

func newMatcher(a, b []Line) *matcher {
	ids := make(map[string]int, len(a)+len(b))
	intern := func(lines []Line) []int {
		out := make([]int, len(lines))
		for i, l := range lines {
			id, ok := ids[l.key()]
			if !ok {
				id = len(ids)
				ids[l.key()] = id
			}
			out[i] = id
		}
		return out
	}
	return &matcher{a: intern(a), b: intern(b)}
}

func (m *matcher) emit(i, j int) {
	m.pairs = append(m.pairs, pair{i: i, j: j})
}

func (m *matcher) align(alo, ahi, blo, bhi int) {
	for alo < ahi && blo < bhi && m.a[alo] == m.b[blo] {
		m.emit(alo, blo)
		alo++
		blo++
	}
	suffix := 0
	for ahi-suffix > alo && bhi-suffix > blo && m.a[ahi-suffix-1] == m.b[bhi-suffix-1] {
		suffix++
	}
	ahi -= suffix
	bhi -= suffix

	if alo < ahi && blo < bhi {
		anchors := m.uniqueAnchors(alo, ahi, blo, bhi)
		if len(anchors) == 0 {
			m.alignGap(alo, ahi, blo, bhi)
		} else {
			i, j := alo, blo
			for _, an := range anchors {
				m.align(i, an.i, j, an.j)
				m.emit(an.i, an.j)
				i, j = an.i+1, an.j+1
			}
			m.align(i, ahi, j, bhi)
		}
	}

	for k := 0; k < suffix; k++ {
		m.emit(ahi+k, bhi+k)
	}
}

// uniqueAnchors returns the longest chain of lines that occur exactly once in a[alo:ahi] and once in b[blo:bhi], in
// increasing order on both sides.
func (m *matcher) uniqueAnchors(alo, ahi, blo, bhi int) []pair {
	type occurrence struct {
		countA, countB int
		posA, posB     int
	}
	occ := make(map[int]*occurrence)
	for i := alo; i < ahi; i++ {
		o := occ[m.a[i]]
		if o == nil {
			o = &occurrence{}
			occ[m.a[i]] = o
		}
		o.countA++
		o.posA = i
	}
	for j := blo; j < bhi; j++ {
		if o := occ[m.b[j]]; o != nil {
			o.countB++
			o.posB = j
		}
	}

	var candidates []pair
	for i := alo; i < ahi; i++ {
		if o := occ[m.a[i]]; o.countA == 1 && o.countB == 1 {
			candidates = append(candidates, pair{i: o.posA, j: o.posB})
		}
	}
	return longestIncreasing(candidates)
}

// longestIncreasing returns the longest subsequence of candidates (already increasing in i) that is also increasing in j.
// Among chains of equal length the one found first by patience sorting wins, which keeps the choice deterministic.
func longestIncreasing(candidates []pair) []pair {
	if len(candidates) == 0 {
		return nil
	}
	tails := make([]int, 0, len(candidates)) // index into candidates of the smallest tail per chain length
	prev := make([]int, len(candidates))
	for k, c := range candidates {
		n := sort.Search(len(tails), func(x int) bool {
			return candidates[tails[x]].j >= c.j
		})
		if n > 0 {
			prev[k] = tails[n-1]
		} else {
			prev[k] = -1
		}
		if n == len(tails) {
			tails = append(tails, k)
		} else {
			tails[n] = k
		}
	}

	out := make([]pair, len(tails))
	for k, x := len(tails)-1, tails[len(tails)-1]; k >= 0; k, x = k-1, prev[x] {
		out[k] = candidates[x]
	}
	return out
}

func (m *matcher) alignGap(alo, ahi, blo, bhi int) {
	if n, w := ahi-alo, bhi-blo; n*w <= maxDPCells {
		m.alignLCS(alo, ahi, blo, bhi)
		return
	}
	m.alignMyers(alo, ahi, blo, bhi)
}

// alignLCS matches a longest common subsequence of the window, taking a match as soon as one is available so that
// matches land as close to the start of both sides as possible.
func (m *matcher) alignLCS(alo, ahi, blo, bhi int) {
	n, w := ahi-alo, bhi-blo
	stride := w + 1
	// suffix[i*stride+j] is the LCS length of a[alo+i:ahi] and b[blo+j:bhi].
	suffix := make([]int32, (n+1)*stride)
	for i := n - 1; i >= 0; i-- {
		for j := w - 1; j >= 0; j-- {
			switch {
			case m.a[alo+i] == m.b[blo+j]:
				suffix[i*stride+j] = suffix[(i+1)*stride+j+1] + 1
			case suffix[(i+1)*stride+j] >= suffix[i*stride+j+1]:
				suffix[i*stride+j] = suffix[(i+1)*stride+j]
			default:
				suffix[i*stride+j] = suffix[i*stride+j+1]
			}
		}
	}

	i, j := 0, 0
	for i < n && j < w {
		switch {
		case m.a[alo+i] == m.b[blo+j]:
			m.emit(alo+i, blo+j)
			i++
			j++
		case suffix[(i+1)*stride+j] >= suffix[i*stride+j+1]:
			i++
		default:
			j++
		}
	}
}

// alignMyers aligns the window with diffmatchpatch. Lines missing from the other side can never match, so only shared
// lines take part. The timeout is disabled so the result is minimal and reproducible.
func (m *matcher) alignMyers(alo, ahi, blo, bhi int) {
	inA := make(map[int]bool, ahi-alo)
	for _, id := range m.a[alo:ahi] {
		inA[id] = true
	}
	inB := make(map[int]bool, bhi-blo)
	for _, id := range m.b[blo:bhi] {
		inB[id] = true
	}

	local := make(map[int]rune)
	shared := func(lo int, ids []int, other map[int]bool) ([]int, []rune) {
		var pos []int
		var out []rune
		for k, id := range ids {
			if !other[id] {
				continue
			}
			r, ok := local[id]
			if !ok {
				r = symbolRune(len(local))
				local[id] = r
			}
			pos = append(pos, lo+k)
			out = append(out, r)
		}
		return pos, out
	}
	posA, ra := shared(alo, m.a[alo:ahi], inB)
	posB, rb := shared(blo, m.b[blo:bhi], inA)
	if len(ra) == 0 || len(rb) == 0 || len(local) > maxSymbols {
		return
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	i, j := 0, 0
	for _, d := range dmp.DiffMainRunes(ra, rb, false) {
		k := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			for x := 0; x < k; x++ {
				m.emit(posA[i+x], posB[j+x])
			}
			i += k
			j += k
		case diffmatchpatch.DiffDelete:
			i += k
		case diffmatchpatch.DiffInsert:
			j += k
		}
	}
}

// buildOpcodes turns matched pairs (increasing on both sides) into opcodes covering a[0:n] and b[0:m].
func buildOpcodes(pairs []pair, n, m int) []Opcode {
	ops := make([]Opcode, 0, 2*len(pairs)/3+2)
	i, j := 0, 0
	for k := 0; k < len(pairs); {
		start := pairs[k]
		if op, ok := gapOpcode(i, start.i, j, start.j); ok {
			ops = append(ops, op)
		}
		for k+1 < len(pairs) && pairs[k+1].i == pairs[k].i+1 && pairs[k+1].j == pairs[k].j+1 {
			k++
		}
		end := pairs[k]
		ops = append(ops, Opcode{
			Kind: OpEqual,
			A:    Range{Start: start.i, End: end.i + 1},
			B:    Range{Start: start.j, End: end.j + 1},
		})
		i, j = end.i+1, end.j+1
		k++
	}
	if op, ok := gapOpcode(i, n, j, m); ok {
		ops = append(ops, op)
	}
	return ops
}

func matchDifflib(a, b []Line) []Opcode {
	keys := func(lines []Line) []string {
		out := make([]string, len(lines))
		for i, l := range lines {
			out[i] = l.key()
		}
		return out
	}
	sm := difflib.NewMatcherWithJunk(keys(a), keys(b), false, nil)

	codes := sm.GetOpCodes()
	ops := make([]Opcode, 0, len(codes))
	for _, c := range codes {
		op := Opcode{A: Range{Start: c.I1, End: c.I2}, B: Range{Start: c.J1, End: c.J2}}
		switch c.Tag {
		case 'e':
			op.Kind = OpEqual
		case 'r':
			op.Kind = OpReplace
		case 'd':
			op.Kind = OpDelete
		case 'i':
			op.Kind = OpInsert
		default:
			continue
		}
		if op.A.Len() == 0 && op.B.Len() == 0 {
			continue
		}
		ops = append(ops, op)
	}
	return ops
}
