// Package cli parses the textdiff command line and runs the requested comparison.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"textdiff/internal/app"
	"textdiff/internal/config"
	"textdiff/internal/diffview"
	"textdiff/internal/engine"
	gitint "textdiff/internal/git"
	"textdiff/internal/logging"
	"textdiff/internal/results"
	"textdiff/internal/textdiff"
)

const (
	unifiedFile    = "unified.html"
	sideBySideFile = "side_by_side.html"
)

// Env carries the process resources Run may use.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	// Dir is the working directory for relative paths and git; empty means the current directory.
	Dir    string
	Logger *slog.Logger
	// RunTUI starts the interactive viewer; nil runs a full-screen bubbletea program.
	RunTUI func(tea.Model) error
}

// settings is the config file merged with the flags that were given.
type settings struct {
	opts  textdiff.Options
	mode  diffview.Mode
	theme diffview.Theme
}

func Run(ctx context.Context, a *Args, env Env) error {
	if env.Logger == nil {
		env.Logger = logging.Discard()
	}
	s, err := resolveSettings(a)
	if err != nil {
		return err
	}

	if a.Load != "" {
		return runLoad(a, s, env)
	}

	res, title, names, err := compute(ctx, a, s.opts, env)
	if err != nil {
		return err
	}
	env.Logger.Debug("diff computed",
		"title", title,
		"additions", res.Stats.Additions,
		"deletions", res.Stats.Deletions,
		"too_large", res.TooLarge,
	)

	req := engine.Request{Options: s.opts, Mode: s.mode, Title: title, Theme: s.theme, Format: engine.FormatHTML}
	htmlSet := engine.Render(res, req)

	var store *results.Store
	if a.SavePath != "" {
		st := results.NewStore(resolvePath(env.Dir, a.SavePath))
		if err := st.Save(htmlSet); err != nil {
			return fmt.Errorf("save results: %w", err)
		}
		env.Logger.Info("results saved", "path", st.Path())
		store = &st
	}

	switch a.Output {
	case OutputHTML:
		return writeDocuments(htmlSet, resolveOutDir(env.Dir, a.OutDir), env.Stdout)
	case OutputPatch:
		patch, err := textdiff.WritePatch(res, names[0], names[1])
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(patch)
		return err
	}

	req.Format = engine.FormatTerminal
	termSet := engine.Render(res, req)
	if a.Output == OutputText {
		doc, _ := termSet.View(s.mode)
		_, err := io.WriteString(env.Stdout, doc+"\n")
		return err
	}

	model := app.NewModel(termSet, app.Options{
		Title:  title,
		Export: htmlSet,
		Store:  store,
		Logger: env.Logger,
	})
	runTUI := env.RunTUI
	if runTUI == nil {
		runTUI = runProgram
	}
	return runTUI(model)
}

func runProgram(model tea.Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func resolveSettings(a *Args) (settings, error) {
	var (
		cfg config.AppConfig
		err error
	)
	if a.ConfigPath != "" {
		cfg, err = config.LoadFromPath(a.ConfigPath)
	} else {
		cfg, _, err = config.Load()
	}
	if err != nil {
		return settings{}, err
	}

	if a.ContextLines != nil {
		cfg.ContextLines = *a.ContextLines
	}
	if a.Granularity != nil {
		cfg.Granularity = *a.Granularity
	}
	if a.Algorithm != nil {
		cfg.Algorithm = *a.Algorithm
	}
	if a.Theme != nil {
		cfg.Theme = *a.Theme
	}
	if a.View != nil {
		mode, err := diffview.ParseMode(*a.View)
		if err != nil {
			return settings{}, &UsageError{Msg: err.Error()}
		}
		cfg.ViewMode = mode
	}

	opts, err := cfg.Options()
	if err != nil {
		return settings{}, err
	}
	theme, err := diffview.LoadTheme(cfg.Theme)
	if err != nil {
		return settings{}, &UsageError{Msg: err.Error()}
	}
	return settings{opts: opts, mode: cfg.ViewMode, theme: theme}, nil
}

// compute returns the diff, its document title and the file names used in patches.
func compute(ctx context.Context, a *Args, opts textdiff.Options, env Env) (*textdiff.Result, string, [2]string, error) {
	switch {
	case a.Patch != "":
		raw, err := os.ReadFile(resolvePath(env.Dir, a.Patch))
		if err != nil {
			return nil, "", [2]string{}, err
		}
		res, err := textdiff.ReadPatch(raw, opts)
		if err != nil {
			return nil, "", [2]string{}, fmt.Errorf("read patch %s: %w", a.Patch, err)
		}
		return res, a.Patch, [2]string{"a", "b"}, nil

	case a.GitRev != "":
		oldText, newText, err := gitint.NewRevisionService().Pair(ctx, env.Dir, a.GitRev, a.GitPath)
		if err != nil {
			return nil, "", [2]string{}, err
		}
		res, err := textdiff.Compute(oldText, newText, opts)
		if err != nil {
			return nil, "", [2]string{}, err
		}
		title := fmt.Sprintf("%s (%s vs working tree)", a.GitPath, a.GitRev)
		names := [2]string{"a/" + filepath.ToSlash(a.GitPath), "b/" + filepath.ToSlash(a.GitPath)}
		return res, title, names, nil
	}

	oldText, err := readInput(env, a.OldPath)
	if err != nil {
		return nil, "", [2]string{}, err
	}
	newText, err := readInput(env, a.NewPath)
	if err != nil {
		return nil, "", [2]string{}, err
	}
	res, err := textdiff.Compute(oldText, newText, opts)
	if err != nil {
		return nil, "", [2]string{}, err
	}
	return res, fmt.Sprintf("%s vs %s", a.OldPath, a.NewPath), [2]string{a.OldPath, a.NewPath}, nil
}

func readInput(env Env, path string) (string, error) {
	if path == "-" {
		if env.Stdin == nil {
			return "", nil
		}
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(resolvePath(env.Dir, path))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func runLoad(a *Args, s settings, env Env) error {
	set, err := results.NewStore(resolvePath(env.Dir, a.Load)).Load()
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}
	if set.Empty() {
		return fmt.Errorf("load results: %s holds no documents", a.Load)
	}
	if a.View != nil {
		set.Mode = s.mode
	}
	env.Logger.Debug("results loaded", "path", a.Load, "switchable", set.Switchable())
	return writeDocuments(set, resolveOutDir(env.Dir, a.OutDir), env.Stdout)
}

// writeDocuments writes both documents into dir, or the document for set.Mode to w when dir is empty. A set holding a
// single legacy document writes it under the name of its own view.
func writeDocuments(set results.Set, dir string, w io.Writer) error {
	if dir == "" {
		doc, _ := set.View(set.Mode)
		_, err := io.WriteString(w, doc)
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	docs := map[string]string{
		unifiedFile:    set.Unified,
		sideBySideFile: set.SideBySide,
	}
	if !set.Switchable() && set.Fallback != "" {
		docs = map[string]string{sideBySideFile: set.Fallback}
		if set.Mode == diffview.ModeUnified {
			docs = map[string]string{unifiedFile: set.Fallback}
		}
	}
	for name, doc := range docs {
		if doc == "" {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func resolvePath(dir, path string) string {
	if dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func resolveOutDir(dir, out string) string {
	if out == "" {
		return ""
	}
	return resolvePath(dir, out)
}
