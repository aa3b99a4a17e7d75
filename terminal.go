package main

import (
	"io"
	"os"

	"golang.org/x/term"
)

// terminalFd returns the descriptor behind v if it is a terminal.
func terminalFd(v any) (int, bool) {
	f, ok := v.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, term.IsTerminal(fd)
}

// Return true if r appears to be interactive
func isInteractive(r io.Reader) bool {
	_, ok := terminalFd(r)
	return ok
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	_, ok := terminalFd(w)
	return ok && os.Getenv("NO_COLOR") == ""
}

// terminalColumns returns the terminal width, or 0 if w is not a terminal.
func terminalColumns(w io.Writer) int {
	fd, ok := terminalFd(w)
	if !ok {
		return 0
	}
	cols, _, err := term.GetSize(fd)
	if err != nil || cols <= 0 {
		return 0
	}
	return cols
}
