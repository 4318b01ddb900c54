// Package cliutil holds small helpers for terminal output.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to w. A nil w discards the output.
// Write failures are reported on stderr since the caller has no better
// place to surface them.
func Writef(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Writeln writes s followed by a newline to w. A nil w discards the output.
func Writeln(w io.Writer, s string) {
	Writef(w, "%s\n", s)
}
