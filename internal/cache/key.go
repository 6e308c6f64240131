// Package cache persists collected history between runs so repeated
// queries with the same parameters skip the expensive log walk.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"path/filepath"
	"strconv"
	"strings"
)

// KeyParams are the collection parameters that partition cache entries.
type KeyParams struct {
	RepoPath   string
	MaxCommits int
	SinceDays  int
	Patterns   []string
}

// Key derives the deterministic cache key for a parameter tuple. The
// repository path is canonicalized so equivalent spellings share an
// entry, and zero limits or empty pattern lists collapse to an "all"
// sentinel. The digest partitions cache files and carries no security
// meaning.
func Key(p KeyParams) string {
	repo := canonicalPath(p.RepoPath)

	limit := "all"
	if p.MaxCommits > 0 {
		limit = strconv.Itoa(p.MaxCommits)
	}
	window := "all"
	if p.SinceDays > 0 {
		window = strconv.Itoa(p.SinceDays)
	}
	patterns := "all"
	if len(p.Patterns) > 0 {
		patterns = strings.Join(p.Patterns, ",")
	}

	sum := md5.Sum([]byte(strings.Join([]string{repo, limit, window, patterns}, "_")))
	return hex.EncodeToString(sum[:])
}

// canonicalPath resolves path to an absolute, symlink-free form,
// falling back to the raw string when resolution fails.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs
	}
	return resolved
}
