// Package console reports progress and diagnostics to the user.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Console is the reporting surface handed to long-running operations.
type Console interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Debugf(format string, args ...any)
}

// Terminal writes to standard streams. Debug output is suppressed
// unless Verbose is set.
type Terminal struct {
	Out     io.Writer
	Err     io.Writer
	Verbose bool
}

var _ Console = (*Terminal)(nil)

// Default returns a Terminal bound to stdout and stderr.
func Default(verbose bool) *Terminal {
	return &Terminal{Out: os.Stdout, Err: os.Stderr, Verbose: verbose}
}

// Discard returns a Terminal that swallows all output.
func Discard() *Terminal {
	return &Terminal{Out: io.Discard, Err: io.Discard}
}

func (t *Terminal) Infof(format string, args ...any) {
	fmt.Fprintf(t.Out, format+"\n", args...)
}

func (t *Terminal) Warnf(format string, args ...any) {
	fmt.Fprintf(t.Err, "%s "+format+"\n", append([]any{color.YellowString("Warning:")}, args...)...)
}

func (t *Terminal) Debugf(format string, args ...any) {
	if !t.Verbose {
		return
	}
	fmt.Fprintf(t.Out, format+"\n", args...)
}
