package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitsect/internal/metrics"
	"github.com/masmgr/gitsect/internal/output"
)

// ImpactCmd returns the impact command.
func ImpactCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringSliceFlag{
			Name:    "metrics",
			Aliases: []string{"m"},
			Usage:   "Metric IDs to consult (default: all)",
		},
	)

	return &cli.Command{
		Name:    "impact",
		Aliases: []string{"i"},
		Usage:   "Assess the risk of uncommitted changes against history",
		Flags:   flags,
		Action:  impactAction,
	}
}

func impactAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	// The working tree is checked first so a clean tree skips collection.
	changes, err := ctx.Collector.CurrentChanges(c.Context)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		fmt.Println("No uncommitted changes found.")
		return nil
	}

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

	// Grade the changes against each metric
	var impacts [][]metrics.FileImpact
	var team []metrics.Finding
	for _, metric := range selected {
		result := metric.Calculate(commits)
		impacts = append(impacts, result.AnalyzeImpact(changes))
		if advisor, ok := result.(metrics.TeamAdvisor); ok {
			team = append(team, advisor.TeamFindings(changes)...)
		}
	}

	report := &output.ImpactReport{
		RepoPath:    ctx.RepoPath,
		GeneratedAt: time.Now(),
		Changes:     changes,
		Files:       metrics.MergeImpacts(impacts...),
		Team:        team,
	}

	return writeImpactReport(c, report)
}
