package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitsect/internal/metrics"
	"github.com/masmgr/gitsect/internal/output"
)

// MetricsCmd returns the metrics command.
func MetricsCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringSliceFlag{
			Name:    "metrics",
			Aliases: []string{"m"},
			Usage:   "Metric IDs to run (default: all, see `gitsect plugins`)",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "Number of top entries per metric",
		},
		&cli.BoolFlag{
			Name:  "clear-cache",
			Usage: "Clear the history cache and exit",
		},
	)

	return &cli.Command{
		Name:    "metrics",
		Aliases: []string{"m"},
		Usage:   "Rank files and authors by maintenance metrics",
		Flags:   flags,
		Action:  metricsAction,
	}
}

func metricsAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	if c.Bool("clear-cache") {
		if err := ctx.Collector.ClearCache(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		ctx.Console.Infof("Cache cleared")
		return nil
	}

	// Collect history
	commits, err := ctx.Collector.CollectHistory(c.Context)
	ctx.FinishProgress()
	if err != nil {
		return err
	}
	if len(commits) == 0 {
		fmt.Println("No commits found in the specified range.")
		return nil
	}

	selected, err := selectedMetrics(c, ctx)
	if err != nil {
		return err
	}

	// Calculate rankings
	rankings := make([]metrics.Ranking, 0, len(selected))
	for _, metric := range selected {
		result := metric.Calculate(commits)
		rankings = append(rankings, result.Ranking(ctx.Config.Metrics.Limit))
	}

	report := &output.MetricReport{
		RepoPath:    ctx.RepoPath,
		GeneratedAt: time.Now(),
		Commits:     len(commits),
		Rankings:    rankings,
	}

	return writeMetricReport(c, report)
}

// selectedMetrics resolves the metric set from the CLI flag, falling
// back to the configured set and then to every registered metric.
func selectedMetrics(c *cli.Context, ctx *CommandContext) ([]metrics.Metric, error) {
	ids := c.StringSlice("metrics")
	if len(ids) == 0 {
		ids = ctx.Config.Metrics.Enabled
	}
	return ctx.Registry.Select(ids)
}
