package textdiff

// symbols interns strings as runes so diffmatchpatch can align sequences of arbitrary tokens. The surrogate block is
// skipped: diffmatchpatch round-trips runes through strings, which would turn surrogates into U+FFFD.
type symbols struct {
	ids   map[string]rune
	items []string
}

func newSymbols(sizeHint int) *symbols {
	return &symbols{ids: make(map[string]rune, sizeHint)}
}

// encode returns the runes for tokens. ok is false if the alphabet is exhausted.
func (s *symbols) encode(tokens []string) (out []rune, ok bool) {
	out = make([]rune, len(tokens))
	for i, t := range tokens {
		r, found := s.ids[t]
		if !found {
			if len(s.items) >= maxSymbols {
				return nil, false
			}
			r = symbolRune(len(s.items))
			s.ids[t] = r
			s.items = append(s.items, t)
		}
		out[i] = r
	}
	return out, true
}

func symbolRune(n int) rune {
	r := rune(n + 1)
	if r >= 0xD800 {
		r += 0x800
	}
	return r
}
