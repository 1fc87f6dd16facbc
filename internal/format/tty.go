package format

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// UseColor decides whether output should carry ANSI colors, honoring
// explicit force flags before terminal detection.
func UseColor(out *os.File, force, forceNo bool) bool {
	if forceNo {
		return false
	}
	if force {
		return true
	}
	if out == nil {
		return false
	}
	fd := out.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TerminalWidth returns the terminal column width for out, or fallback
// when out is not a terminal.
func TerminalWidth(out *os.File, fallback int) int {
	if out == nil {
		return fallback
	}
	if w, _, err := term.GetSize(int(out.Fd())); err == nil && w > 0 {
		return w
	}
	return fallback
}
