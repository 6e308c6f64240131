package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitsect/config"
	"github.com/masmgr/gitsect/internal/cache"
	"github.com/masmgr/gitsect/internal/console"
	"github.com/masmgr/gitsect/internal/git"
	"github.com/masmgr/gitsect/internal/metrics"
	"github.com/masmgr/gitsect/internal/output"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across all commands.
type CommandContext struct {
	Config    *config.Config
	Console   *console.Terminal
	RepoPath  string
	Collector *git.Collector
	Registry  *metrics.Registry

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration, prepares the cache store, and wires the
// history collector.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	// Load configuration
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	// Keep stdout parseable when a machine format was requested.
	term := console.Default(c.Bool("verbose"))
	if getOutputFormat(c.String("format")) != output.FormatConsole {
		term.Out = os.Stderr
	}

	// Prepare the cache store
	store, err := openStore(cfg, term)
	if err != nil {
		return nil, err
	}

	ctx := &CommandContext{
		Config:   cfg,
		Console:  term,
		RepoPath: c.String("repo"),
		Registry: metrics.NewRegistry(cfg.Metrics),
	}

	// Wire the collector
	opts := git.Options{
		RepoPath:   ctx.RepoPath,
		MaxCommits: cfg.Collection.MaxCommits,
		SinceDays:  cfg.Collection.SinceDays,
		Include:    cfg.Collection.Include,
		Exclude:    cfg.Collection.Exclude,
		UseGoGit:   cfg.Collection.UseGoGit,
	}
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		opts.OnProgress = ctx.reportProgress
	}
	ctx.Collector = git.NewCollector(opts, store, term)

	if !cfg.Collection.UseGoGit {
		warnOldGit(c.Context, ctx.RepoPath, term)
	}

	return ctx, nil
}

// openStore builds the cache store from configuration, falling back to
// the per-user default directory.
func openStore(cfg *config.Config, term *console.Terminal) (*cache.Store, error) {
	dir := cfg.Cache.Dir
	if dir == "" {
		fallback, err := cache.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve cache directory: %w", err)
		}
		dir = fallback
	}
	store, err := cache.NewStore(dir, time.Duration(cfg.Cache.TTLHours)*time.Hour, term)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare cache: %w", err)
	}
	return store, nil
}

// warnOldGit checks the installed git version once per invocation and
// warns when it predates the supported baseline. A failed probe is
// reported on the debug channel only; the real run will surface it.
func warnOldGit(ctx context.Context, repoPath string, term *console.Terminal) {
	version, err := git.NewRunner(repoPath).Version(ctx)
	if err != nil {
		term.Debugf("git version probe failed: %v", err)
		return
	}
	if version.LT(git.MinSupportedVersion) {
		term.Warnf("git %s is older than the supported %s; output may not parse cleanly",
			version, git.MinSupportedVersion)
	}
}

// reportProgress renders record-decoding progress. Parse workers call
// it concurrently.
func (ctx *CommandContext) reportProgress(done, total int) {
	ctx.mu.Lock()
	if ctx.bar == nil {
		ctx.bar = newProgressBar(total)
	}
	bar := ctx.bar
	ctx.mu.Unlock()
	_ = bar.Set(done)
}

// FinishProgress clears the progress bar if one was started.
func (ctx *CommandContext) FinishProgress() {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	if ctx.bar != nil {
		_ = ctx.bar.Finish()
		ctx.bar = nil
	}
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Parsing commits"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{Saucer: "#", SaucerPadding: " ", BarStart: "|", BarEnd: "|"}),
		progressbar.OptionClearOnFinish(),
	)
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		OutputPath: c.String("output"),
	}
}
