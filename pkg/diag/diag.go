// Package diag reports errors and warnings to the user.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Can be changed for testing.
var stderr io.Writer = os.Stderr

var color = isatty.IsTerminal(os.Stderr.Fd())

// SetColor overrides the automatic detection of whether stderr supports
// ANSI colors.
func SetColor(on bool) { color = on }

// Shower wraps the Show function.
type Shower interface {
	// Show takes an indentation string and shows.
	Show(indent string) string
}

// ShowError shows an error. It uses the Show method if the error
// implements Shower, and uses Complain to print the error message otherwise.
func ShowError(err error) {
	if shower, ok := err.(Shower); ok {
		fmt.Fprintln(stderr, shower.Show(""))
	} else {
		Complain(err.Error())
	}
}

// Complain prints a message to stderr in bold and red, adding a trailing
// newline.
func Complain(msg string) {
	if color {
		fmt.Fprintf(stderr, "\033[31;1m%s\033[m\n", msg)
	} else {
		fmt.Fprintln(stderr, msg)
	}
}

// Complainf is like Complain, but accepts a format string and arguments.
func Complainf(format string, args ...any) {
	Complain(fmt.Sprintf(format, args...))
}
