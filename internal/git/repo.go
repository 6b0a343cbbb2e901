// Package git reads file revisions for diffing through the git command line.
package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"textdiff/internal/util"
)

func DiscoverRepoRoot(ctx context.Context, cwd string) (string, error) {
	out, err := util.Run(ctx, cwd, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

type RevisionService interface {
	// ShowFile returns path as recorded at rev. The path is relative to cwd.
	ShowFile(ctx context.Context, cwd, rev, path string) (string, error)
	// Pair returns path at rev and the working-tree copy. A path unknown at rev reads as empty on the old side.
	Pair(ctx context.Context, cwd, rev, path string) (oldText, newText string, err error)
}

type revisionService struct{}

func NewRevisionService() RevisionService {
	return revisionService{}
}

func (revisionService) ShowFile(ctx context.Context, cwd, rev, path string) (string, error) {
	return util.Run(ctx, cwd, "git", "show", rev+":./"+filepath.ToSlash(path))
}

func (s revisionService) Pair(ctx context.Context, cwd, rev, path string) (string, string, error) {
	oldText, err := s.ShowFile(ctx, cwd, rev, path)
	if err != nil {
		if !missingAtRevision(err) {
			return "", "", err
		}
		oldText = ""
	}

	full := path
	if cwd != "" && !filepath.IsAbs(path) {
		full = filepath.Join(cwd, path)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", "", err
	}
	return oldText, string(data), nil
}

// missingAtRevision matches git's messages for a path absent from the tree, such as newly added files.
func missingAtRevision(err error) bool {
	var cmdErr *util.CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	msg := cmdErr.Stderr
	return strings.Contains(msg, "does not exist in") || strings.Contains(msg, "exists on disk, but not in")
}
