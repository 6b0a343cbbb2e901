package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"textdiff/internal/util"
)

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	ctx := context.Background()
	run := func(args ...string) {
		t.Helper()
		if _, err := util.Run(ctx, dir, "git", args...); err != nil {
			t.Fatalf("git %v: %v", args, err)
		}
	}
	run("init", "-q")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "test")
	run("config", "commit.gpgsign", "false")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("a\nb\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	run("add", "notes.txt")
	run("commit", "-q", "-m", "init")
	return dir
}

func TestPairReadsRevisionAndWorkingTree(t *testing.T) {
	dir := initRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("a\nc\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	oldText, newText, err := NewRevisionService().Pair(context.Background(), dir, "HEAD", "notes.txt")
	if err != nil {
		t.Fatalf("Pair() error = %v", err)
	}
	if oldText != "a\nb\n" || newText != "a\nc\n" {
		t.Fatalf("Pair()=%q,%q", oldText, newText)
	}
}

func TestPairTreatsUntrackedFileAsAdded(t *testing.T) {
	dir := initRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	oldText, newText, err := NewRevisionService().Pair(context.Background(), dir, "HEAD", "new.txt")
	if err != nil {
		t.Fatalf("Pair() error = %v", err)
	}
	if oldText != "" || newText != "x\n" {
		t.Fatalf("Pair()=%q,%q", oldText, newText)
	}
}

func TestShowFileUnknownRevision(t *testing.T) {
	dir := initRepo(t)
	if _, err := NewRevisionService().ShowFile(context.Background(), dir, "no-such-rev", "notes.txt"); err == nil {
		t.Fatalf("expected error for unknown revision")
	}
}

func TestDiscoverRepoRoot(t *testing.T) {
	dir := initRepo(t)
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}
	root, err := DiscoverRepoRoot(context.Background(), sub)
	if err != nil {
		t.Fatalf("DiscoverRepoRoot() error = %v", err)
	}
	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(root)
	if got != want {
		t.Fatalf("DiscoverRepoRoot()=%q want %q", got, want)
	}
}
