package git

// Commit is one history record collected from the repository log.
type Commit struct {
	Hash    string       `json:"hash"`
	Author  string       `json:"author"`
	Date    string       `json:"date"`
	Message string       `json:"message"`
	Files   []FileChange `json:"files"`
}

// FileChange records one file touched by a commit.
type FileChange struct {
	Path      string `json:"path"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Status    string `json:"status"`
}

// Churn returns total lines changed (added + deleted).
func (f FileChange) Churn() int {
	return f.Additions + f.Deletions
}

// WorkingChange records uncommitted modifications to one file,
// as reported by a diff against the working tree.
type WorkingChange struct {
	Path      string `json:"path"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// Churn returns total lines changed (added + deleted).
func (w WorkingChange) Churn() int {
	return w.Additions + w.Deletions
}
