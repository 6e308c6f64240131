package cmd

import (
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitsect/internal/output"
)

// ChangesCmd returns the changes command.
func ChangesCmd() *cli.Command {
	return &cli.Command{
		Name:   "changes",
		Usage:  "Show uncommitted working-tree changes with line counts",
		Flags:  commonFlags(),
		Action: changesAction,
	}
}

func changesAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	changes, err := ctx.Collector.CurrentChanges(c.Context)
	if err != nil {
		return err
	}

	report := &output.ChangesReport{
		RepoPath:    ctx.RepoPath,
		GeneratedAt: time.Now(),
		Changes:     changes,
	}

	return writeChangesReport(c, report)
}
