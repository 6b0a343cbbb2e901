package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"textdiff/internal/app"
	"textdiff/internal/results"
	"textdiff/internal/textdiff"
)

// workspace writes old.txt and new.txt into a fresh directory and isolates the config lookup from the user's files.
func workspace(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.txt"), []byte("a\nb\nc\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("a\nx\nc\n"), 0o644))
	return dir
}

func run(t *testing.T, dir string, argv ...string) (string, error) {
	t.Helper()
	a, err := ParseArgs(argv)
	require.NoError(t, err)
	var out bytes.Buffer
	err = Run(context.Background(), a, Env{Stdout: &out, Dir: dir, Stdin: strings.NewReader("a\nb\nc\n")})
	return out.String(), err
}

func TestRun_PatchOutput(t *testing.T) {
	dir := workspace(t)
	out, err := run(t, dir, "-f", "patch", "-c", "3", "old.txt", "new.txt")
	require.NoError(t, err)
	require.Equal(t, "--- old.txt\n+++ new.txt\n@@ -1,3 +1,3 @@\n a\n-b\n+x\n c\n", out)
}

func TestRun_TextOutput(t *testing.T) {
	dir := workspace(t)
	out, err := run(t, dir, "-f", "text", "--view", "unified", "old.txt", "new.txt")
	require.NoError(t, err)
	out = ansi.Strip(out)
	require.Contains(t, out, "old.txt vs new.txt")
	require.Contains(t, out, "+1 -1")
	require.Contains(t, out, "- b")
	require.Contains(t, out, "+ x")
}

func TestRun_StdinInput(t *testing.T) {
	dir := workspace(t)
	out, err := run(t, dir, "-f", "patch", "-", "new.txt")
	require.NoError(t, err)
	require.Contains(t, out, "-b\n+x\n")
}

func TestRun_HTMLDocumentsInDirectory(t *testing.T) {
	dir := workspace(t)
	_, err := run(t, dir, "-o", "site", "old.txt", "new.txt")
	require.NoError(t, err)

	for _, name := range []string{unifiedFile, sideBySideFile} {
		data, err := os.ReadFile(filepath.Join(dir, "site", name))
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"), name)
		require.Contains(t, string(data), "old.txt vs new.txt")
	}
}

func TestRun_SaveThenLoad(t *testing.T) {
	dir := workspace(t)
	html, err := run(t, dir, "-f", "html", "--save", "saved.json.br", "old.txt", "new.txt")
	require.NoError(t, err)

	set, err := results.NewStore(filepath.Join(dir, "saved.json.br")).Load()
	require.NoError(t, err)
	require.True(t, set.Switchable())
	require.Equal(t, html, set.SideBySide)

	out, err := run(t, dir, "--load", "saved.json.br", "--view", "unified")
	require.NoError(t, err)
	require.Equal(t, set.Unified, out)
}

func TestRun_LoadEmptyFileFails(t *testing.T) {
	dir := workspace(t)
	_, err := run(t, dir, "--load", "missing.json")
	require.Error(t, err)
}

func TestRun_PatchInput(t *testing.T) {
	dir := workspace(t)
	patch, err := run(t, dir, "-f", "patch", "-c", "3", "old.txt", "new.txt")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "change.diff"), []byte(patch), 0o644))

	out, err := run(t, dir, "--patch", "change.diff", "-f", "text")
	require.NoError(t, err)
	out = ansi.Strip(out)
	require.Contains(t, out, "change.diff")
	require.Contains(t, out, "+1 -1")
}

func TestRun_ConfigFileAndFlagOverride(t *testing.T) {
	dir := workspace(t)
	cfgPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"context_lines": 20000}`), 0o644))

	_, err := run(t, dir, "--config", cfgPath, "-f", "patch", "old.txt", "new.txt")
	require.ErrorIs(t, err, textdiff.ErrInvalidConfig)

	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"context_lines": 0, "view_mode": "unified"}`), 0o644))
	out, err := run(t, dir, "--config", cfgPath, "-f", "patch", "old.txt", "new.txt")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(out, "-b\n+x\n"), out)
	require.NotContains(t, out, " a\n")
	require.NotContains(t, out, " c\n")
}

func TestRun_InvalidViewAndTheme(t *testing.T) {
	dir := workspace(t)
	var usage *UsageError

	_, err := run(t, dir, "--view", "columns", "old.txt", "new.txt")
	require.True(t, errors.As(err, &usage), "err = %v", err)

	_, err = run(t, dir, "--theme", "no-such-style", "old.txt", "new.txt")
	require.True(t, errors.As(err, &usage), "err = %v", err)
}

func TestRun_MissingInput(t *testing.T) {
	dir := workspace(t)
	_, err := run(t, dir, "-f", "text", "old.txt", "absent.txt")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_TUIReceivesModel(t *testing.T) {
	dir := workspace(t)
	a, err := ParseArgs([]string{"old.txt", "new.txt"})
	require.NoError(t, err)

	var got tea.Model
	err = Run(context.Background(), a, Env{Dir: dir, Stdout: &bytes.Buffer{}, RunTUI: func(m tea.Model) error {
		got = m
		return nil
	}})
	require.NoError(t, err)

	m, ok := got.(app.Model)
	require.True(t, ok)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	require.Contains(t, next.View(), "old.txt vs new.txt")
}
