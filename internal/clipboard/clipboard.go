package clipboard

import (
	"context"
	"errors"
	"runtime"

	"github.com/atotto/clipboard"

	"textdiff/internal/util"
)

var ErrUnsupported = errors.New("no clipboard available")

var (
	systemWrite = clipboard.WriteAll
	unsupported = func() bool { return clipboard.Unsupported }
	commandCopy = copyWithCommand
)

// CopyText puts text on the system clipboard. When the clipboard library finds no backend, the platform's copy
// command is tried instead.
func CopyText(ctx context.Context, text string) error {
	if !unsupported() {
		if err := systemWrite(text); err == nil {
			return nil
		}
	}
	return commandCopy(ctx, text)
}

func copyWithCommand(ctx context.Context, text string) error {
	switch runtime.GOOS {
	case "darwin":
		_, err := util.RunWithStdin(ctx, "", text, "pbcopy")
		return err
	case "linux":
		_, err := util.RunWithStdin(ctx, "", text, "xclip", "-selection", "clipboard")
		return err
	case "windows":
		_, err := util.RunWithStdin(ctx, "", text, "clip")
		return err
	default:
		return ErrUnsupported
	}
}
