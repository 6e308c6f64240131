package git

import "context"

// HistorySource reads commit history from a repository.
type HistorySource interface {
	// Name identifies the source in diagnostics.
	Name() string
	// Commits returns the history, newest first.
	Commits(ctx context.Context) ([]Commit, error)
}

// commandRunner abstracts subprocess execution so sources and the
// collector can run against captured output in tests.
type commandRunner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// Interface conformance checks.
var (
	_ HistorySource = (*LogSource)(nil)
	_ HistorySource = (*GoGitSource)(nil)
	_ HistorySource = (*MockSource)(nil)
	_ commandRunner = (*Runner)(nil)
)
