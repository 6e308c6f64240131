package output

import (
	"strings"
	"testing"
	"time"

	"github.com/masmgr/gitsect/internal/metrics"
)

func TestMarkdownMetricWriter_Write(t *testing.T) {
	report := &MetricReport{
		RepoPath:    "/test/repo",
		GeneratedAt: time.Now(),
		Commits:     42,
		Rankings: []metrics.Ranking{
			{
				MetricID:   "code_churn",
				MetricName: "Code Churn",
				SubjectCol: "File",
				ScoreCol:   "Churn",
				ExtraCols:  []string{"Changes"},
				Entries: []metrics.Entry{
					{Subject: "my_file.go", Score: 10, ScoreText: "10.0", Extra: []string{"5"}},
				},
			},
			{
				MetricID:   "change_coupling",
				MetricName: "Change Coupling",
				SubjectCol: "Pair",
				ScoreCol:   "Strength",
			},
		},
	}

	tmpFile := t.TempDir() + "/metrics.md"
	options := OutputOptions{Format: FormatMarkdown, OutputPath: tmpFile}

	writer := &MarkdownMetricWriter{}
	if err := writer.Write(report, options); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := readTestFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	output := string(data)

	checks := []struct {
		name     string
		expected string
	}{
		{name: "Title", expected: "# Repository Metrics"},
		{name: "Repository line", expected: "**Repository:** /test/repo"},
		{name: "Commits line", expected: "**Commits Analyzed:** 42"},
		{name: "Metric heading", expected: "## Code Churn"},
		{name: "Table header", expected: "| # | File | Churn | Changes |"},
		{name: "Separator row", expected: "|---|---|---|---|"},
		{name: "Escaped subject row", expected: "| 1 | `my\\_file.go` | 10.0 | 5 |"},
		{name: "Empty metric heading", expected: "## Change Coupling"},
		{name: "Empty metric placeholder", expected: "No data for this metric."},
	}

	for _, tt := range checks {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(output, tt.expected) {
				t.Errorf("output does not contain %q:\n%s", tt.expected, output)
			}
		})
	}
}
