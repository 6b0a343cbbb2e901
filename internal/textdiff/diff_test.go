package textdiff

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var propertyCorpus = []struct {
	name string
	a, b string
}{
	{"both empty", "", ""},
	{"empty to text", "", "a\nb\n"},
	{"text to empty", "a\nb\n", ""},
	{"equal", "one\ntwo\nthree\n", "one\ntwo\nthree\n"},
	{"single replace", "a\nb\nc", "a\nx\nc"},
	{"append line", "1\n2\n3\n4\n5", "1\n2\n3\n4\n5\n6"},
	{"final newline added", "x\ny", "x\ny\n"},
	{"crlf vs lf", "a\r\nb\r\n", "a\nb\n"},
	{"blank lines", "\n\n\n", "\n\nx\n\n"},
	{"swap", "x\ny\n", "y\nx\n"},
	{"repeats", "a\na\nb\na\n", "a\nb\nb\na\na\n"},
	{"reorder block", "p\nq\nr\ns\nt\n", "s\nt\np\nq\nr\n"},
	{"unicode", "héllo\nwörld\n👍🏽\n", "hello\nwörld\n👍\n"},
	{"interleaved", "a\n1\nb\n2\nc\n3\n", "a\nb\nc\n1\n2\n3\n"},
	{
		"code edit",
		"package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n",
		"package main\n\nimport (\n\t\"fmt\"\n\t\"os\"\n)\n\nfunc main() {\n\tfmt.Fprintln(os.Stdout, \"hi\")\n}\n",
	},
	{"long file", strings.Repeat("same\n", 50) + "old\n" + strings.Repeat("same\n", 50), strings.Repeat("same\n", 50) + "new\n" + strings.Repeat("same\n", 51)},
}

func TestCompute_SingleReplace(t *testing.T) {
	res, err := Compute("a\nb\nc", "a\nx\nc", DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, []Opcode{
		{Kind: OpEqual, A: Range{0, 1}, B: Range{0, 1}},
		{Kind: OpReplace, A: Range{1, 2}, B: Range{1, 2}},
		{Kind: OpEqual, A: Range{2, 3}, B: Range{2, 3}},
	}, res.Opcodes)
	require.Equal(t, res.Opcodes, res.Reduced)

	spans, ok := res.Spans.Get(SideA, 1)
	require.True(t, ok)
	require.Equal(t, []Span{{SideA, 0, 1, Changed}}, spans)
	spans, ok = res.Spans.Get(SideB, 1)
	require.True(t, ok)
	require.Equal(t, []Span{{SideB, 0, 1, Changed}}, spans)

	require.Equal(t, Stats{Additions: 1, Deletions: 1, Modified: 1, Unchanged: 2}, res.Stats)
	require.True(t, res.HasChanges())
}

func TestCompute_EmptyInputs(t *testing.T) {
	res, err := Compute("", "", DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []Line{{Index: 0}}, res.A)
	require.Equal(t, []Line{{Index: 0}}, res.B)
	require.Equal(t, []Opcode{{Kind: OpEqual, A: Range{0, 1}, B: Range{0, 1}}}, res.Opcodes)
	require.False(t, res.HasChanges())
	require.Empty(t, res.Spans.A)
	require.Empty(t, res.Spans.B)
}

func TestCompute_ContextAroundAppendedLine(t *testing.T) {
	opts := DefaultOptions()
	opts.ContextLines = 1
	res, err := Compute("1\n2\n3\n4\n5", "1\n2\n3\n4\n5\n6", opts)
	require.NoError(t, err)

	require.Equal(t, []Opcode{
		{Kind: OpCollapsed, A: Range{0, 3}, B: Range{0, 3}},
		{Kind: OpEqual, A: Range{3, 4}, B: Range{3, 4}},
		{Kind: OpReplace, A: Range{4, 5}, B: Range{4, 6}},
	}, res.Reduced)
	require.Equal(t, 1, res.ContextLines)

	// "5" only gains its newline: the pair is modified without any changed character.
	spans, _ := res.Spans.Get(SideA, 4)
	require.Equal(t, []Span{{SideA, 0, 1, Unchanged}}, spans)
	spans, _ = res.Spans.Get(SideB, 5)
	require.Equal(t, []Span{{SideB, 0, 1, Changed}}, spans)
}

func TestCompute_InvalidContextLines(t *testing.T) {
	for _, c := range []int{-2, MaxContextLines + 1} {
		opts := DefaultOptions()
		opts.ContextLines = c
		res, err := Compute("a", "b", opts)
		require.Nil(t, res)
		require.ErrorIs(t, err, ErrInvalidConfig)

		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		require.Equal(t, "context_lines", cfgErr.Field)
	}
}

func TestCompute_TooLarge(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxInputBytes = 10
	res, err := Compute("0123456", "789012", opts)
	require.NoError(t, err)
	require.True(t, res.TooLarge)
	require.Equal(t, 7, res.SizeA)
	require.Equal(t, 6, res.SizeB)
	require.Equal(t, 10, res.Limit)
	require.Empty(t, res.Opcodes)
	require.False(t, res.HasChanges())
}

func TestCompute_LargeRepeatedDocument(t *testing.T) {
	var a, b strings.Builder
	b.WriteString("head\n")
	for i := 0; i < 30000; i++ {
		row := fmt.Sprintf("row %d\n", i%50)
		a.WriteString(row)
		if i == 15000 {
			row = "edited\n"
		}
		b.WriteString(row)
	}
	b.WriteString("tail\n")

	res, err := Compute(a.String(), b.String(), DefaultOptions())
	require.NoError(t, err)
	require.False(t, res.TooLarge)
	require.NoError(t, Validate(res.Opcodes, res.A, res.B))
	require.Equal(t, 29999, res.Stats.Unchanged)
	require.Equal(t, 3, res.Stats.Additions)
	require.Equal(t, 1, res.Stats.Deletions)
	require.LessOrEqual(t, res.Stats.Modified, 1)
}

func TestCompute_Properties(t *testing.T) {
	for _, tc := range propertyCorpus {
		for _, c := range []int{-1, 0, 1, 3} {
			opts := DefaultOptions()
			opts.ContextLines = c
			res, err := Compute(tc.a, tc.b, opts)
			require.NoError(t, err)

			require.NoError(t, Validate(res.Opcodes, res.A, res.B), tc.name)
			require.NoError(t, Validate(res.Reduced, res.A, res.B), tc.name)

			// Concatenating the ranges reconstructs both texts.
			var ra, rb strings.Builder
			for _, op := range res.Opcodes {
				ra.WriteString(Join(res.A[op.A.Start:op.A.End]))
				rb.WriteString(Join(res.B[op.B.Start:op.B.End]))
			}
			require.Equal(t, tc.a, ra.String(), tc.name)
			require.Equal(t, tc.b, rb.String(), tc.name)

			for _, op := range res.Opcodes {
				if !op.IsChange() {
					continue
				}
				for i := op.A.Start; i < op.A.End; i++ {
					spans, ok := res.Spans.Get(SideA, i)
					require.True(t, ok || res.A[i].Text == "", "%s a[%d]", tc.name, i)
					require.True(t, ValidateSpans(spans, res.A[i].Text), "%s a[%d]", tc.name, i)
				}
				for j := op.B.Start; j < op.B.End; j++ {
					spans, ok := res.Spans.Get(SideB, j)
					require.True(t, ok || res.B[j].Text == "", "%s b[%d]", tc.name, j)
					require.True(t, ValidateSpans(spans, res.B[j].Text), "%s b[%d]", tc.name, j)
				}
			}

			if tc.a == tc.b {
				require.Len(t, res.Opcodes, 1, tc.name)
				require.Equal(t, OpEqual, res.Opcodes[0].Kind, tc.name)
			}
			if c == 0 {
				for _, op := range res.Reduced {
					require.True(t, op.Kind != OpEqual || !res.HasChanges(), "%s: %v visible with zero context", tc.name, op)
				}
			}
		}
	}
}

func TestCompute_Concurrent(t *testing.T) {
	want := make([]*Result, len(propertyCorpus))
	for i, tc := range propertyCorpus {
		res, err := Compute(tc.a, tc.b, DefaultOptions())
		require.NoError(t, err)
		want[i] = res
	}

	var wg sync.WaitGroup
	got := make([][]*Result, 8)
	for w := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, tc := range propertyCorpus {
				res, _ := Compute(tc.a, tc.b, DefaultOptions())
				got[w] = append(got[w], res)
			}
		}()
	}
	wg.Wait()

	for _, results := range got {
		require.Equal(t, want, results)
	}
}

func TestParseOptions(t *testing.T) {
	g, err := ParseGranularity(" Word ")
	require.NoError(t, err)
	require.Equal(t, GranularityWord, g)
	_, err = ParseGranularity("line")
	require.ErrorIs(t, err, ErrInvalidConfig)

	a, err := ParseAlgorithm("difflib")
	require.NoError(t, err)
	require.Equal(t, AlgorithmDifflib, a)
	_, err = ParseAlgorithm("patience")
	require.ErrorIs(t, err, ErrInvalidConfig)

	require.Error(t, Options{MaxLineBytes: -1}.Validate())
	require.NoError(t, Options{}.Validate())
}
