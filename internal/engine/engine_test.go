package engine

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"textdiff/internal/diffview"
	"textdiff/internal/textdiff"
)

func TestRun_ProducesBothDocuments(t *testing.T) {
	req := NewRequest("a\nb\nc", "a\nx\nc", -1)
	set, err := Run(req)
	require.NoError(t, err)

	require.True(t, set.Switchable())
	require.Equal(t, diffview.ModeSideBySide, set.Mode)
	require.Equal(t, "html", set.Format)
	require.Contains(t, set.Unified, "td-unified")
	require.Contains(t, set.SideBySide, "td-split")

	doc, ok := set.View(diffview.ModeUnified)
	require.True(t, ok)
	require.Equal(t, set.Unified, doc)
}

func TestRun_EchoesMode(t *testing.T) {
	req := NewRequest("a", "b", 3)
	req.Mode = diffview.ModeUnified
	set, err := Run(req)
	require.NoError(t, err)
	require.Equal(t, diffview.ModeUnified, set.Mode)
}

func TestRun_InvalidContextLines(t *testing.T) {
	set, err := Run(NewRequest("a", "b", -7))
	require.ErrorIs(t, err, textdiff.ErrInvalidConfig)
	require.True(t, set.Empty())
}

func TestRun_TooLargeStillRenders(t *testing.T) {
	req := NewRequest(strings.Repeat("a", 64), strings.Repeat("b", 64), -1)
	req.Options.MaxInputBytes = 100
	set, err := Run(req)
	require.NoError(t, err)
	require.Contains(t, set.Unified, "Diff too large to render in full")
	require.Contains(t, set.SideBySide, "Diff too large to render in full")
}

func TestRun_TerminalFormat(t *testing.T) {
	req := NewRequest("a\nb\n", "a\nc\n", -1)
	req.Format = FormatTerminal
	set, err := Run(req)
	require.NoError(t, err)
	require.Equal(t, "terminal", set.Format)
	require.NotContains(t, set.Unified, "<!DOCTYPE")
	require.Contains(t, set.SideBySide, "│")
}

func TestRun_ConcurrentCallsAgree(t *testing.T) {
	req := NewRequest("one\ntwo\nthree\n", "one\n2\nthree\nfour\n", 1)
	want, err := Run(req)
	require.NoError(t, err)

	var wg sync.WaitGroup
	got := make([]string, 16)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			set, _ := Run(req)
			got[i] = set.Unified + set.SideBySide
		}()
	}
	wg.Wait()
	for _, g := range got {
		require.Equal(t, want.Unified+want.SideBySide, g)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("text")
	require.NoError(t, err)
	require.Equal(t, FormatTerminal, f)
	f, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatHTML, f)
	_, err = ParseFormat("pdf")
	require.Error(t, err)
}
