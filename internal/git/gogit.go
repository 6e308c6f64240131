package git

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// gitDateLayout mirrors the default date format of the log tool, so
// records look the same regardless of the collecting source.
const gitDateLayout = "Mon Jan 2 15:04:05 2006 -0700"

// GoGitSource collects history in-process through go-git instead of
// spawning the external tool. Useful where no git binary is installed.
type GoGitSource struct {
	opts Options
}

// NewGoGitSource returns a GoGitSource for the repository in opts.
func NewGoGitSource(opts Options) *GoGitSource {
	return &GoGitSource{opts: opts}
}

func (s *GoGitSource) Name() string { return "go-git" }

// Commits walks the repository head and derives per-file statuses from
// tree diffs against the first parent.
func (s *GoGitSource) Commits(ctx context.Context) ([]Commit, error) {
	repo, err := git.PlainOpen(s.opts.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", s.opts.RepoPath, err)
	}

	ref, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	logOpts := &git.LogOptions{From: ref.Hash()}
	if s.opts.SinceDays > 0 {
		since := time.Now().AddDate(0, 0, -s.opts.SinceDays)
		logOpts.Since = &since
	}

	iter, err := repo.Log(logOpts)
	if err != nil {
		return nil, fmt.Errorf("walk history: %w", err)
	}
	defer iter.Close()

	filter := s.opts.filter()
	var commits []Commit

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.opts.MaxCommits > 0 && len(commits) >= s.opts.MaxCommits {
			return storer.ErrStop
		}

		files, err := changedFiles(c)
		if err != nil {
			return err
		}

		kept := make([]FileChange, 0, len(files))
		for _, fc := range files {
			if filter.Match(fc.Path) {
				kept = append(kept, fc)
			}
		}
		if filter.Active() && len(kept) == 0 {
			return nil
		}

		commits = append(commits, Commit{
			Hash:    c.Hash.String(),
			Author:  c.Author.Name,
			Date:    c.Author.When.Format(gitDateLayout),
			Message: firstLine(c.Message),
			Files:   kept,
		})
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, fmt.Errorf("walk history: %w", err)
	}

	return commits, nil
}

// changedFiles diffs a commit against its first parent, or against the
// empty tree for the initial commit. Merge commits report no files,
// matching the default log output of the external tool.
func changedFiles(c *object.Commit) ([]FileChange, error) {
	if c.NumParents() > 1 {
		return nil, nil
	}

	tree, err := c.Tree()
	if err != nil {
		return nil, fmt.Errorf("load tree of %s: %w", c.Hash, err)
	}

	var parentTree *object.Tree
	if c.NumParents() == 1 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("load parent of %s: %w", c.Hash, err)
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return nil, fmt.Errorf("load parent tree of %s: %w", c.Hash, err)
		}
	}

	diff, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, fmt.Errorf("diff trees of %s: %w", c.Hash, err)
	}

	files := make([]FileChange, 0, len(diff))
	for _, ch := range diff {
		var status, path string

		switch {
		case ch.From.Name == "":
			status, path = "A", ch.To.Name
		case ch.To.Name == "":
			status, path = "D", ch.From.Name
		case ch.From.Name != ch.To.Name:
			status, path = "R", ch.To.Name
		default:
			status, path = "M", ch.To.Name
		}
		if path == "" {
			continue
		}

		additions, deletions := statusCounts(status)
		files = append(files, FileChange{
			Path:      path,
			Additions: additions,
			Deletions: deletions,
			Status:    status,
		})
	}
	return files, nil
}

// firstLine trims a full message to its summary line.
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		return strings.TrimRight(s[:idx], "\r")
	}
	return s
}
