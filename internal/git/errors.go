package git

import (
	"fmt"
	"strings"
)

// ExecError reports that the log tool could not be started at all,
// typically because the binary is missing from PATH.
type ExecError struct {
	Args []string
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("failed to execute %q: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// CommandError reports that the tool started but exited with a
// non-zero status. Stderr holds the trimmed diagnostic output.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%q exited with status %d", strings.Join(e.Args, " "), e.ExitCode)
	}
	return fmt.Sprintf("%q exited with status %d: %s", strings.Join(e.Args, " "), e.ExitCode, e.Stderr)
}
