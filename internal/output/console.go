package output

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/samber/lo"

	"github.com/masmgr/gitsect/internal/git"
	"github.com/masmgr/gitsect/internal/metrics"
)

// ConsoleMetricWriter writes metric reports to the console.
type ConsoleMetricWriter struct{}

// Write outputs each ranking as an aligned table.
func (w *ConsoleMetricWriter) Write(report *MetricReport, options OutputOptions) error {
	color.Green("Repository Metrics")
	fmt.Printf("Repository: %s\n", report.RepoPath)
	fmt.Printf("Commits analyzed: %s\n\n", humanize.Comma(int64(report.Commits)))

	for _, ranking := range report.Rankings {
		color.Cyan("%s", ranking.MetricName)
		if len(ranking.Entries) == 0 {
			fmt.Println("No data for this metric.")
			fmt.Println()
			continue
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

		// Write header
		header := append([]string{"#", ranking.SubjectCol, ranking.ScoreCol}, ranking.ExtraCols...)
		fmt.Fprintln(tw, strings.Join(header, "\t"))

		// Write rows
		for i, entry := range ranking.Entries {
			row := append([]string{strconv.Itoa(i + 1), entry.Subject, scoreCell(entry)}, entry.Extra...)
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}

		tw.Flush()
		fmt.Println()
	}

	return nil
}

// ConsoleImpactWriter writes impact reports to the console.
type ConsoleImpactWriter struct{}

// Write outputs per-file findings followed by team-level findings.
func (w *ConsoleImpactWriter) Write(report *ImpactReport, options OutputOptions) error {
	color.Green("Change Impact Assessment")
	fmt.Printf("Repository: %s\n", report.RepoPath)
	fmt.Printf("Files changed: %d\n\n", len(report.Changes))

	if len(report.Files) == 0 && len(report.Team) == 0 {
		fmt.Println("No findings for the current changes.")
		return nil
	}

	if len(report.Files) > 0 {
		overall := metrics.RiskLow
		for _, file := range report.Files {
			if file.Level.MoreSevere(overall) {
				overall = file.Level
			}
		}
		fmt.Printf("Overall risk: %s\n\n", getLevelColor(overall)(strings.ToUpper(string(overall))))
	}

	for _, file := range report.Files {
		levelColor := getLevelColor(file.Level)
		fmt.Printf("%s %s\n", levelColor("["+string(file.Level)+"]"), file.Path)
		for _, finding := range file.Findings {
			fmt.Printf("  - %s\n", finding.Note)
			if finding.Recommendation != "" {
				fmt.Printf("    %s\n", finding.Recommendation)
			}
		}
	}
	if len(report.Files) > 0 && len(report.Team) > 0 {
		fmt.Println()
	}

	for _, finding := range report.Team {
		levelColor := getLevelColor(finding.Level)
		fmt.Printf("%s %s\n", levelColor("["+string(finding.Level)+"]"), finding.Note)
		if finding.Recommendation != "" {
			fmt.Printf("  %s\n", finding.Recommendation)
		}
	}

	return nil
}

// ConsoleHistoryWriter writes history reports to the console.
type ConsoleHistoryWriter struct{}

// Write outputs the commit list as an aligned table.
func (w *ConsoleHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	color.Green("Commit History")
	fmt.Printf("Repository: %s\n", report.RepoPath)
	fmt.Printf("Commits: %s\n\n", humanize.Comma(int64(len(report.Commits))))

	if len(report.Commits) == 0 {
		fmt.Println("No commits collected.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	// Write header
	fmt.Fprintln(tw, "Hash\tAuthor\tDate\tFiles\tMessage")

	// Write rows
	for _, commit := range report.Commits {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			shortHash(commit.Hash),
			commit.Author,
			commit.Date,
			len(commit.Files),
			truncateMessage(commit.Message, 50),
		)
	}

	tw.Flush()

	return nil
}

// ConsoleChangesWriter writes working-changes reports to the console.
type ConsoleChangesWriter struct{}

// Write outputs per-file insertion and deletion counts.
func (w *ConsoleChangesWriter) Write(report *ChangesReport, options OutputOptions) error {
	color.Green("Uncommitted Changes")
	fmt.Printf("Repository: %s\n\n", report.RepoPath)

	if len(report.Changes) == 0 {
		fmt.Println("Working tree is clean.")
		return nil
	}

	var additions, deletions int
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	// Write header
	fmt.Fprintln(tw, "File\t+\t-\tChurn")

	// Write rows
	for _, path := range sortedChangePaths(report.Changes) {
		change := report.Changes[path]
		additions += change.Additions
		deletions += change.Deletions
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", path, change.Additions, change.Deletions, change.Churn())
	}

	tw.Flush()

	fmt.Printf("\n%d files changed, %d insertions(+), %d deletions(-)\n",
		len(report.Changes), additions, deletions)

	return nil
}

// Helper functions

func truncateMessage(msg string, maxLen int) string {
	if len(msg) <= maxLen {
		return msg
	}
	return msg[:maxLen-3] + "..."
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

func scoreCell(entry metrics.Entry) string {
	if entry.ScoreText != "" {
		return entry.ScoreText
	}
	return fmt.Sprintf("%.4f", entry.Score)
}

func sortedChangePaths(changes map[string]git.WorkingChange) []string {
	paths := lo.Keys(changes)
	sort.Strings(paths)
	return paths
}

func getLevelColor(level metrics.RiskLevel) func(string, ...interface{}) string {
	switch level {
	case metrics.RiskCritical, metrics.RiskHigh:
		return color.RedString
	case metrics.RiskMedium, metrics.RiskElevated:
		return color.YellowString
	default:
		return color.GreenString
	}
}
