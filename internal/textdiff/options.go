package textdiff

import "strings"

// Granularity selects the unit the Char Refiner aligns within a changed line.
type Granularity int

const (
	GranularityChar Granularity = iota // grapheme clusters
	GranularityWord                    // UAX #29 words (whitespace and punctuation are their own tokens)
)

func (g Granularity) String() string {
	if g == GranularityWord {
		return "word"
	}
	return "char"
}

func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "char", "character":
		return GranularityChar, nil
	case "word":
		return GranularityWord, nil
	}
	return 0, &ConfigError{Field: "granularity", Value: s, Reason: `must be "char" or "word"`}
}

// Algorithm selects the Line Matcher.
type Algorithm int

const (
	// AlgorithmAnchored anchors on lines unique to both sides, then aligns the gaps exactly.
	AlgorithmAnchored Algorithm = iota
	// AlgorithmDifflib uses difflib's SequenceMatcher (autojunk disabled).
	AlgorithmDifflib
)

func (a Algorithm) String() string {
	if a == AlgorithmDifflib {
		return "difflib"
	}
	return "anchored"
}

func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "anchored":
		return AlgorithmAnchored, nil
	case "difflib":
		return AlgorithmDifflib, nil
	}
	return 0, &ConfigError{Field: "algorithm", Value: s, Reason: `must be "anchored" or "difflib"`}
}

const (
	// MaxContextLines bounds Options.ContextLines.
	MaxContextLines = 10000

	DefaultMaxLineBytes  = 4096
	DefaultMaxInputBytes = 8 << 20
)

// Options configure Compute. The zero value is usable: it shows no context lines and applies default limits. Use
// DefaultOptions for full context.
type Options struct {
	// ContextLines is the number of unchanged lines kept next to each change. -1 disables reduction.
	ContextLines int
	Granularity  Granularity
	Algorithm    Algorithm
	// MaxLineBytes is the longest line the Char Refiner aligns; longer pairs are marked changed as a whole. 0 means
	// DefaultMaxLineBytes.
	MaxLineBytes int
	// MaxInputBytes bounds len(textA)+len(textB). Larger inputs produce a Result with TooLarge set. 0 means
	// DefaultMaxInputBytes.
	MaxInputBytes int
}

func DefaultOptions() Options {
	return Options{
		ContextLines:  -1,
		MaxLineBytes:  DefaultMaxLineBytes,
		MaxInputBytes: DefaultMaxInputBytes,
	}
}

// Validate returns a *ConfigError for the first field out of range.
func (o Options) Validate() error {
	if o.ContextLines < -1 || o.ContextLines > MaxContextLines {
		return &ConfigError{Field: "context_lines", Value: o.ContextLines, Reason: "must be between -1 and 10000"}
	}
	if o.Granularity != GranularityChar && o.Granularity != GranularityWord {
		return &ConfigError{Field: "granularity", Value: int(o.Granularity), Reason: "unknown granularity"}
	}
	if o.Algorithm != AlgorithmAnchored && o.Algorithm != AlgorithmDifflib {
		return &ConfigError{Field: "algorithm", Value: int(o.Algorithm), Reason: "unknown algorithm"}
	}
	if o.MaxLineBytes < 0 {
		return &ConfigError{Field: "max_line_bytes", Value: o.MaxLineBytes, Reason: "must not be negative"}
	}
	if o.MaxInputBytes < 0 {
		return &ConfigError{Field: "max_input_bytes", Value: o.MaxInputBytes, Reason: "must not be negative"}
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.MaxLineBytes == 0 {
		o.MaxLineBytes = DefaultMaxLineBytes
	}
	if o.MaxInputBytes == 0 {
		o.MaxInputBytes = DefaultMaxInputBytes
	}
	return o
}
