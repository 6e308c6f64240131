package git

import (
	"context"
	"fmt"

	"github.com/masmgr/gitsect/internal/cache"
	"github.com/masmgr/gitsect/internal/console"
)

// Store is the cache surface the collector persists history through.
type Store interface {
	Load(key string, v any) bool
	Save(key string, v any) error
	Clear() error
}

// Options configure a Collector.
type Options struct {
	// RepoPath is the repository to collect from; empty means the
	// current directory.
	RepoPath string
	// MaxCommits caps the collected history; zero means unlimited.
	MaxCommits int
	// SinceDays restricts history to a trailing day window; zero means
	// the full history.
	SinceDays int
	// Include and Exclude filter file paths within each commit.
	Include []string
	Exclude []string
	// UseGoGit collects through the in-process library instead of the
	// external tool.
	UseGoGit bool
	// OnProgress, when non-nil, observes record decoding during log
	// parsing.
	OnProgress func(done, total int)
}

func (o Options) filter() FileFilter {
	return FileFilter{Include: o.Include, Exclude: o.Exclude}
}

// keyPatterns flattens the filter lists into the deterministic form
// used for cache partitioning. Excludes are prefixed so an include and
// an exclude of the same glob produce different keys.
func (o Options) keyPatterns() []string {
	patterns := make([]string, 0, len(o.Include)+len(o.Exclude))
	patterns = append(patterns, o.Include...)
	for _, p := range o.Exclude {
		patterns = append(patterns, "!"+p)
	}
	return patterns
}

// Collector orchestrates history collection: cache lookup, source
// invocation, and cache write-back.
type Collector struct {
	opts    Options
	runner  commandRunner
	source  HistorySource
	store   Store
	console console.Console
}

// NewCollector wires a collector over store for the repository named
// in opts.
func NewCollector(opts Options, store Store, c console.Console) *Collector {
	if opts.RepoPath == "" {
		opts.RepoPath = "."
	}
	runner := NewRunner(opts.RepoPath)

	var source HistorySource
	if opts.UseGoGit {
		source = NewGoGitSource(opts)
	} else {
		source = NewLogSource(runner, opts)
	}

	return &Collector{
		opts:    opts,
		runner:  runner,
		source:  source,
		store:   store,
		console: c,
	}
}

func (c *Collector) cacheKey() string {
	return cache.Key(cache.KeyParams{
		RepoPath:   c.opts.RepoPath,
		MaxCommits: c.opts.MaxCommits,
		SinceDays:  c.opts.SinceDays,
		Patterns:   c.opts.keyPatterns(),
	})
}

// CollectHistory returns the repository history, preferring a fresh
// cache entry over a new collection. Fresh collections are written
// back before returning. Individual malformed records reduce the
// count silently; subprocess and cache-write failures do not.
func (c *Collector) CollectHistory(ctx context.Context) ([]Commit, error) {
	key := c.cacheKey()

	var cached []Commit
	if c.store.Load(key, &cached) {
		c.console.Infof("Loaded %d commits from cache", len(cached))
		return cached, nil
	}

	c.console.Debugf("Collecting history via %s", c.source.Name())
	commits, err := c.source.Commits(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect history: %w", err)
	}
	c.console.Infof("Collected %d commits", len(commits))

	if err := c.store.Save(key, commits); err != nil {
		return nil, fmt.Errorf("cache history: %w", err)
	}
	return commits, nil
}

// CurrentChanges reports uncommitted working-tree modifications as
// real line counts per file. The query always runs the external tool;
// the history cache is not involved.
func (c *Collector) CurrentChanges(ctx context.Context) (map[string]WorkingChange, error) {
	out, err := c.runner.Run(ctx, "diff", "--stat")
	if err != nil {
		return nil, fmt.Errorf("diff working tree: %w", err)
	}
	return ParseDiffStat(out, c.opts.filter()), nil
}

// ClearCache drops every cached collection.
func (c *Collector) ClearCache() error {
	return c.store.Clear()
}
