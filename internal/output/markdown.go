package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// MarkdownMetricWriter writes metric reports as Markdown.
type MarkdownMetricWriter struct{}

// Write outputs the metric report as Markdown, one table per metric.
func (w *MarkdownMetricWriter) Write(report *MetricReport, options OutputOptions) error {
	out, file, err := createWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Header
	fmt.Fprintln(out, "# Repository Metrics")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.RepoPath)
	fmt.Fprintf(out, "**Commits Analyzed:** %d\n\n", report.Commits)

	for _, ranking := range report.Rankings {
		fmt.Fprintf(out, "## %s\n\n", ranking.MetricName)

		if len(ranking.Entries) == 0 {
			fmt.Fprintln(out, "No data for this metric.")
			fmt.Fprintln(out)
			continue
		}

		// Table header
		columns := append([]string{"#", ranking.SubjectCol, ranking.ScoreCol}, ranking.ExtraCols...)
		fmt.Fprintf(out, "| %s |\n", strings.Join(columns, " | "))
		separators := make([]string, len(columns))
		for i := range separators {
			separators[i] = "---"
		}
		fmt.Fprintf(out, "|%s|\n", strings.Join(separators, "|"))

		// Table rows
		for i, entry := range ranking.Entries {
			cells := []string{
				fmt.Sprintf("%d", i+1),
				fmt.Sprintf("`%s`", escapeMarkdown(entry.Subject)),
				scoreCell(entry),
			}
			for _, extra := range entry.Extra {
				cells = append(cells, escapeMarkdown(extra))
			}
			fmt.Fprintf(out, "| %s |\n", strings.Join(cells, " | "))
		}
		fmt.Fprintln(out)
	}

	return nil
}

func createWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return file, file, nil
	}
	return os.Stdout, nil, nil
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
