package git

import "context"

// MockSource serves canned history, for tests and offline wiring.
type MockSource struct {
	History []Commit
	Err     error
}

func (m *MockSource) Name() string { return "mock" }

// Commits returns the canned history or the configured error.
func (m *MockSource) Commits(ctx context.Context) ([]Commit, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.History, nil
}
