package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// ErrHelp is returned by ParseArgs when -h or --help was given.
var ErrHelp = errors.New("help requested")

// UsageError reports an invocation that cannot be run. The caller prints it with Usage and exits with status 2.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// Output names what Run produces.
type Output string

const (
	OutputTUI   Output = "tui"
	OutputHTML  Output = "html"
	OutputText  Output = "text"
	OutputPatch Output = "patch"
)

// Args holds the parsed command line. Pointer fields are nil when the flag was not given, so config file values apply.
type Args struct {
	OldPath string
	NewPath string
	GitRev  string
	GitPath string
	Patch   string
	Load    string

	ContextLines *int
	View         *string
	Granularity  *string
	Algorithm    *string
	Theme        *string

	Output     Output
	OutDir     string
	ConfigPath string
	SavePath   string
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("textdiff", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.IntP("context", "c", -1, "Unchanged lines kept around each change (-1 keeps all).")
	fs.StringP("view", "v", "side_by_side", "View shown first: side_by_side or unified.")
	fs.StringP("format", "f", "", "Output: tui, html, text or patch (default tui, or html with --out or --load).")
	fs.StringP("out", "o", "", "Write unified.html and side_by_side.html into this directory.")
	fs.String("granularity", "char", "Intra-line highlighting unit: char or word.")
	fs.String("algorithm", "anchored", "Line matcher: anchored or difflib.")
	fs.String("theme", "", "Chroma style name for document colors (default built-in dark).")
	fs.String("config", "", "Config file (default $XDG_CONFIG_HOME/textdiff/config.json).")
	fs.String("save", "", "Persist the result set to FILE (.br compresses).")
	fs.String("load", "", "Write the documents of a result set saved with --save instead of computing a diff.")
	fs.String("git", "", "Diff PATH at revision REV against the working tree.")
	fs.String("patch", "", "Read a single-file unified diff instead of two texts.")
	return fs
}

// Usage writes the help text to w.
func Usage(w io.Writer) {
	fs := newFlagSet()
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  textdiff [flags] OLD NEW")
	fmt.Fprintln(w, "  textdiff [flags] --git REV PATH")
	fmt.Fprintln(w, "  textdiff [flags] --patch FILE")
	fmt.Fprintln(w, "  textdiff [flags] --load FILE")
	fmt.Fprintln(w, "\nCompare two texts line by line with intra-line highlighting. Either OLD or NEW may be - for stdin.")
	fmt.Fprintln(w, "\nFlags:")
	fmt.Fprint(w, fs.FlagUsages())
}

// ParseArgs parses argv without the program name.
func ParseArgs(argv []string) (*Args, error) {
	fs := newFlagSet()
	fs.SetOutput(io.Discard)
	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, &UsageError{Msg: err.Error()}
	}

	a := &Args{}
	a.ContextLines = changedInt(fs, "context")
	a.View = changedString(fs, "view")
	a.Granularity = changedString(fs, "granularity")
	a.Algorithm = changedString(fs, "algorithm")
	a.Theme = changedString(fs, "theme")
	a.OutDir, _ = fs.GetString("out")
	a.ConfigPath, _ = fs.GetString("config")
	a.SavePath, _ = fs.GetString("save")
	a.Load, _ = fs.GetString("load")
	a.GitRev, _ = fs.GetString("git")
	a.Patch, _ = fs.GetString("patch")

	format, _ := fs.GetString("format")
	switch Output(strings.ToLower(strings.TrimSpace(format))) {
	case "":
		a.Output = OutputTUI
		if a.OutDir != "" || a.Load != "" {
			a.Output = OutputHTML
		}
	case OutputTUI:
		a.Output = OutputTUI
	case OutputHTML:
		a.Output = OutputHTML
	case OutputText, "terminal":
		a.Output = OutputText
	case OutputPatch:
		a.Output = OutputPatch
	default:
		return nil, usageErrorf("invalid --format %q: must be tui, html, text or patch", format)
	}
	if a.OutDir != "" && a.Output != OutputHTML {
		return nil, usageErrorf("--out writes HTML documents and cannot be combined with --format %s", a.Output)
	}

	sources := 0
	for _, set := range []bool{a.GitRev != "", a.Patch != "", a.Load != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, usageErrorf("--git, --patch and --load are mutually exclusive")
	}

	rest := fs.Args()
	switch {
	case a.GitRev != "":
		if len(rest) != 1 {
			return nil, usageErrorf("--git needs exactly one PATH argument")
		}
		a.GitPath = rest[0]
	case a.Patch != "" || a.Load != "":
		if len(rest) != 0 {
			return nil, usageErrorf("unexpected arguments: %s", strings.Join(rest, " "))
		}
	default:
		if len(rest) != 2 {
			return nil, usageErrorf("expected OLD and NEW arguments, got %d", len(rest))
		}
		if rest[0] == "-" && rest[1] == "-" {
			return nil, usageErrorf("only one of OLD and NEW can read stdin")
		}
		a.OldPath, a.NewPath = rest[0], rest[1]
	}

	if a.Load != "" && a.Output != OutputHTML {
		return nil, usageErrorf("--load writes the stored HTML documents and cannot be combined with --format %s", a.Output)
	}
	if a.Load != "" && a.SavePath != "" {
		return nil, usageErrorf("--load and --save cannot be combined")
	}
	return a, nil
}

func changedInt(fs *pflag.FlagSet, name string) *int {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetInt(name)
	return &v
}

func changedString(fs *pflag.FlagSet, name string) *string {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetString(name)
	return &v
}
