package textdiff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWritePatch_SingleHunk(t *testing.T) {
	res, err := Compute("a\nb\nc\n", "a\nx\nc\n", DefaultOptions())
	require.NoError(t, err)

	out, err := WritePatch(res, "a/sample.txt", "b/sample.txt")
	require.NoError(t, err)
	require.Equal(t, "--- a/sample.txt\n+++ b/sample.txt\n@@ -1,3 +1,3 @@\n a\n-b\n+x\n c\n", string(out))
}

func TestWritePatch_NoNewlineMarkers(t *testing.T) {
	res, err := Compute("1\n2\n3\n4\n5", "1\n2\n3\n4\n5\n6", DefaultOptions())
	require.NoError(t, err)

	out, err := WritePatch(res, "old", "new")
	require.NoError(t, err)
	require.Contains(t, string(out), "-5\n\\ No newline at end of file\n+5\n+6\n")
}

func TestWritePatch_HunksFollowContext(t *testing.T) {
	var a, b strings.Builder
	for i := 0; i < 40; i++ {
		line := "line " + string(rune('A'+i%26)) + "\n"
		a.WriteString(line)
		switch i {
		case 5, 30:
			b.WriteString("edited\n")
		default:
			b.WriteString(line)
		}
	}
	opts := DefaultOptions()
	opts.ContextLines = 3
	res, err := Compute(a.String(), b.String(), opts)
	require.NoError(t, err)

	out, err := WritePatch(res, "old", "new")
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(string(out), "@@ -"))
	require.Contains(t, string(out), "@@ -3,7 +3,7 @@")
	require.Contains(t, string(out), "@@ -28,7 +28,7 @@")
}

func TestWritePatch_IdenticalAndTooLarge(t *testing.T) {
	res, err := Compute("same\n", "same\n", DefaultOptions())
	require.NoError(t, err)
	out, err := WritePatch(res, "old", "new")
	require.NoError(t, err)
	require.Empty(t, out)

	opts := DefaultOptions()
	opts.MaxInputBytes = 1
	res, err = Compute("ab", "cd", opts)
	require.NoError(t, err)
	_, err = WritePatch(res, "old", "new")
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestReadPatch_PairsDeleteAndAddRuns(t *testing.T) {
	raw := []byte(`diff --git a/sample.txt b/sample.txt
index 1111111..2222222 100644
--- a/sample.txt
+++ b/sample.txt
@@ -1,4 +1,5 @@
 keep
-oldA
-oldB
+newA
+newB
+newC
 tail
`)
	res, err := ReadPatch(raw, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []Opcode{
		{Kind: OpEqual, A: Range{0, 1}, B: Range{0, 1}},
		{Kind: OpReplace, A: Range{1, 3}, B: Range{1, 4}},
		{Kind: OpEqual, A: Range{3, 4}, B: Range{4, 5}},
	}, res.Opcodes)
	require.Equal(t, "keep\noldA\noldB\ntail\n", Join(res.A))
	require.Equal(t, Stats{Additions: 3, Deletions: 2, Modified: 2, Unchanged: 2}, res.Stats)

	spans, ok := res.Spans.Get(SideB, 3)
	require.True(t, ok)
	require.Equal(t, []Span{{SideB, 0, 4, Changed}}, spans)
}

func TestReadPatch_NewFile(t *testing.T) {
	raw := []byte(`diff --git a/new.txt b/new.txt
new file mode 100644
index 0000000..3b18e13
--- /dev/null
+++ b/new.txt
@@ -0,0 +1,2 @@
+line1
+line2
`)
	res, err := ReadPatch(raw, DefaultOptions())
	require.NoError(t, err)
	require.Empty(t, res.A)
	require.Equal(t, []Opcode{{Kind: OpInsert, A: Range{0, 0}, B: Range{0, 2}}}, res.Opcodes)
}

func TestReadPatch_HiddenLinesBecomeCollapsed(t *testing.T) {
	raw := []byte(`--- old
+++ new
@@ -4,3 +4,3 @@
 c
-d
+D
 e
@@ -10,2 +10,3 @@
 j
+J
 k
`)
	res, err := ReadPatch(raw, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []Opcode{
		{Kind: OpCollapsed, A: Range{0, 3}, B: Range{0, 3}},
		{Kind: OpEqual, A: Range{3, 4}, B: Range{3, 4}},
		{Kind: OpReplace, A: Range{4, 5}, B: Range{4, 5}},
		{Kind: OpEqual, A: Range{5, 6}, B: Range{5, 6}},
		{Kind: OpCollapsed, A: Range{6, 9}, B: Range{6, 9}},
		{Kind: OpEqual, A: Range{9, 10}, B: Range{9, 10}},
		{Kind: OpInsert, A: Range{10, 10}, B: Range{10, 11}},
		{Kind: OpEqual, A: Range{10, 11}, B: Range{11, 12}},
	}, res.Opcodes)
	require.Equal(t, 9, res.B[9].Index)
	require.Equal(t, "J", res.B[10].Text)
	require.Equal(t, Stats{Additions: 2, Deletions: 1, Modified: 1, Unchanged: 10}, res.Stats)
}

func TestReadPatch_Errors(t *testing.T) {
	_, err := ReadPatch([]byte(""), DefaultOptions())
	require.Error(t, err)

	twoFiles := []byte("--- a\n+++ a\n@@ -1 +1 @@\n-x\n+y\n--- b\n+++ b\n@@ -1 +1 @@\n-x\n+y\n")
	_, err = ReadPatch(twoFiles, DefaultOptions())
	require.Error(t, err)

	bad := DefaultOptions()
	bad.ContextLines = -5
	_, err = ReadPatch([]byte("--- a\n+++ a\n@@ -1 +1 @@\n-x\n+y\n"), bad)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestReadPatch_RoundTripKeepsClassification(t *testing.T) {
	for _, tc := range propertyCorpus {
		if strings.Contains(tc.a+tc.b, "\r") {
			// The patch parser drops carriage returns.
			continue
		}
		for _, c := range []int{-1, 0, 2} {
			opts := DefaultOptions()
			opts.ContextLines = c
			res, err := Compute(tc.a, tc.b, opts)
			require.NoError(t, err)
			if !res.HasChanges() {
				continue
			}

			raw, err := WritePatch(res, "old", "new")
			require.NoError(t, err)
			back, err := ReadPatch(raw, opts)
			require.NoError(t, err, "%s c=%d\n%s", tc.name, c, raw)

			require.Equal(t, changeOps(res), changeOps(back), "%s c=%d\n%s", tc.name, c, raw)
			require.Equal(t, res.Stats.Additions, back.Stats.Additions, tc.name)
			require.Equal(t, res.Stats.Deletions, back.Stats.Deletions, tc.name)
			require.Equal(t, res.Stats.Modified, back.Stats.Modified, tc.name)
		}
	}
}

type changeSummary struct {
	op   Opcode
	a, b []Line
}

func changeOps(res *Result) []changeSummary {
	var out []changeSummary
	for _, op := range res.Opcodes {
		if op.IsChange() {
			out = append(out, changeSummary{op: op, a: res.A[op.A.Start:op.A.End], b: res.B[op.B.Start:op.B.End]})
		}
	}
	return out
}
