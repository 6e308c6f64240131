package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitsect/internal/output"
)

// HistoryCmd returns the history command.
func HistoryCmd() *cli.Command {
	return &cli.Command{
		Name:   "history",
		Usage:  "Dump the collected commit history",
		Flags:  commonFlags(),
		Action: historyAction,
	}
}

func historyAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
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

	report := &output.HistoryReport{
		RepoPath:    ctx.RepoPath,
		GeneratedAt: time.Now(),
		Commits:     commits,
	}

	return writeHistoryReport(c, report)
}
