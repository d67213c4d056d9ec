package listing

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// TerminalColumns reports the terminal width. An explicit COLUMNS
// override wins; without a terminal the default applies.
func TerminalColumns() int {
	if v, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && v > 0 {
		return v
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultColumns
}

// TerminalRows reports the terminal height, 0 when unknown. ROWS
// overrides detection the same way COLUMNS does for width.
func TerminalRows() int {
	if v, err := strconv.Atoi(os.Getenv("ROWS")); err == nil && v > 0 {
		return v
	}
	if _, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && h > 0 {
		return h
	}
	return 0
}
