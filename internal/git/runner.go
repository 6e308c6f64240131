package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/blang/semver/v4"
)

// MinSupportedVersion is the oldest git release the log format used by
// the collector is known to work with.
var MinSupportedVersion = semver.MustParse("2.0.0")

// commandContext is swapped out in tests to exercise spawn failures.
var commandContext = exec.CommandContext

// Runner executes git inside a fixed repository directory and returns
// decoded standard output.
type Runner struct {
	RepoPath string
}

// NewRunner returns a Runner for the repository at path.
func NewRunner(path string) *Runner {
	return &Runner{RepoPath: path}
}

// Run invokes git with --no-pager prepended to args and returns stdout
// decoded as UTF-8. Invalid byte sequences are replaced with U+FFFD
// rather than rejected. A start failure yields *ExecError; a non-zero
// exit yields *CommandError carrying the trimmed stderr.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	argv := append([]string{"git", "--no-pager"}, args...)

	cmd := commandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.RepoPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &CommandError{
				Args:     argv,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return "", &ExecError{Args: argv, Err: err}
	}

	return strings.ToValidUTF8(stdout.String(), "�"), nil
}

// Version reports the version of the installed git binary.
func (r *Runner) Version(ctx context.Context) (semver.Version, error) {
	out, err := r.Run(ctx, "version")
	if err != nil {
		return semver.Version{}, err
	}
	return parseGitVersion(out)
}

// parseGitVersion extracts the numeric version from output such as
// "git version 2.39.2" or "git version 2.39.2 (Apple Git-143)".
func parseGitVersion(s string) (semver.Version, error) {
	fields := strings.Fields(s)
	if len(fields) < 3 || fields[0] != "git" || fields[1] != "version" {
		return semver.Version{}, fmt.Errorf("unrecognized git version output %q", strings.TrimSpace(s))
	}

	raw := fields[2]
	// Windows builds report e.g. "2.39.2.windows.1".
	if parts := strings.Split(raw, "."); len(parts) > 3 {
		raw = strings.Join(parts[:3], ".")
	}

	v, err := semver.ParseTolerant(raw)
	if err != nil {
		return semver.Version{}, fmt.Errorf("parse git version %q: %w", raw, err)
	}
	return v, nil
}
