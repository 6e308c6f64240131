package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/masmgr/gitsect/internal/git"
	"github.com/masmgr/gitsect/internal/metrics"
)

// JSONMetricWriter writes metric reports as JSON.
type JSONMetricWriter struct{}

// JSONMetricReport is the JSON output structure for metric reports.
type JSONMetricReport struct {
	RepoPath    string             `json:"repo"`
	GeneratedAt string             `json:"generatedAt"`
	Commits     int                `json:"commits"`
	Metrics     []JSONRankedMetric `json:"metrics"`
}

// JSONRankedMetric is the JSON output structure for one metric ranking.
type JSONRankedMetric struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Entries []JSONEntry `json:"entries"`
}

// JSONEntry is the JSON output structure for a single ranked row.
type JSONEntry struct {
	Rank      int      `json:"rank"`
	Subject   string   `json:"subject"`
	Score     float64  `json:"score"`
	ScoreText string   `json:"scoreText,omitempty"`
	Details   []string `json:"details,omitempty"`
}

// Write outputs the metric report as JSON.
func (w *JSONMetricWriter) Write(report *MetricReport, options OutputOptions) error {
	jsonMetrics := make([]JSONRankedMetric, len(report.Rankings))
	for i, ranking := range report.Rankings {
		entries := make([]JSONEntry, len(ranking.Entries))
		for j, entry := range ranking.Entries {
			entries[j] = JSONEntry{
				Rank:      j + 1,
				Subject:   entry.Subject,
				Score:     entry.Score,
				ScoreText: entry.ScoreText,
				Details:   entry.Extra,
			}
		}
		jsonMetrics[i] = JSONRankedMetric{
			ID:      ranking.MetricID,
			Name:    ranking.MetricName,
			Entries: entries,
		}
	}

	jsonReport := JSONMetricReport{
		RepoPath:    report.RepoPath,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Commits:     report.Commits,
		Metrics:     jsonMetrics,
	}

	return writeJSON(jsonReport, options.OutputPath)
}

// JSONImpactWriter writes impact reports as JSON.
type JSONImpactWriter struct{}

// JSONImpactReport is the JSON output structure for impact reports.
type JSONImpactReport struct {
	RepoPath     string           `json:"repo"`
	GeneratedAt  string           `json:"generatedAt"`
	FilesChanged int              `json:"filesChanged"`
	Files        []JSONFileImpact `json:"files"`
	Team         []JSONFinding    `json:"team,omitempty"`
}

// JSONFileImpact is the JSON output structure for one changed file.
type JSONFileImpact struct {
	Path     string        `json:"path"`
	Level    string        `json:"level"`
	Findings []JSONFinding `json:"findings"`
}

// JSONFinding is the JSON output structure for a single finding.
type JSONFinding struct {
	Metric         string `json:"metric"`
	Level          string `json:"level"`
	Note           string `json:"note"`
	Recommendation string `json:"recommendation,omitempty"`
}

// Write outputs the impact report as JSON.
func (w *JSONImpactWriter) Write(report *ImpactReport, options OutputOptions) error {
	files := make([]JSONFileImpact, len(report.Files))
	for i, file := range report.Files {
		files[i] = JSONFileImpact{
			Path:     file.Path,
			Level:    string(file.Level),
			Findings: jsonFindings(file.Findings),
		}
	}

	jsonReport := JSONImpactReport{
		RepoPath:     report.RepoPath,
		GeneratedAt:  report.GeneratedAt.Format(time.RFC3339),
		FilesChanged: len(report.Changes),
		Files:        files,
		Team:         jsonFindings(report.Team),
	}

	return writeJSON(jsonReport, options.OutputPath)
}

func jsonFindings(findings []metrics.Finding) []JSONFinding {
	if len(findings) == 0 {
		return nil
	}
	out := make([]JSONFinding, len(findings))
	for i, finding := range findings {
		out[i] = JSONFinding{
			Metric:         finding.Metric,
			Level:          string(finding.Level),
			Note:           finding.Note,
			Recommendation: finding.Recommendation,
		}
	}
	return out
}

// JSONHistoryWriter writes history reports as JSON.
type JSONHistoryWriter struct{}

// JSONHistoryReport is the JSON output structure for history reports.
// Commits reuse the collector's wire shape.
type JSONHistoryReport struct {
	RepoPath     string       `json:"repo"`
	GeneratedAt  string       `json:"generatedAt"`
	TotalCommits int          `json:"totalCommits"`
	Commits      []git.Commit `json:"commits"`
}

// Write outputs the history report as JSON.
func (w *JSONHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	jsonReport := JSONHistoryReport{
		RepoPath:     report.RepoPath,
		GeneratedAt:  report.GeneratedAt.Format(time.RFC3339),
		TotalCommits: len(report.Commits),
		Commits:      report.Commits,
	}

	return writeJSON(jsonReport, options.OutputPath)
}

// JSONChangesWriter writes working-changes reports as JSON.
type JSONChangesWriter struct{}

// JSONChangesReport is the JSON output structure for working changes.
type JSONChangesReport struct {
	RepoPath    string            `json:"repo"`
	GeneratedAt string            `json:"generatedAt"`
	TotalFiles  int               `json:"totalFiles"`
	Changes     []JSONFileChanges `json:"changes"`
}

// JSONFileChanges is the JSON output structure for one changed file.
type JSONFileChanges struct {
	Path      string `json:"path"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Churn     int    `json:"churn"`
}

// Write outputs the working-changes report as JSON.
func (w *JSONChangesWriter) Write(report *ChangesReport, options OutputOptions) error {
	changes := make([]JSONFileChanges, 0, len(report.Changes))
	for _, path := range sortedChangePaths(report.Changes) {
		change := report.Changes[path]
		changes = append(changes, JSONFileChanges{
			Path:      path,
			Additions: change.Additions,
			Deletions: change.Deletions,
			Churn:     change.Churn(),
		})
	}

	jsonReport := JSONChangesReport{
		RepoPath:    report.RepoPath,
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		TotalFiles:  len(report.Changes),
		Changes:     changes,
	}

	return writeJSON(jsonReport, options.OutputPath)
}

func writeJSON(data interface{}, outputPath string) error {
	encoder := json.NewEncoder(os.Stdout)
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		encoder = json.NewEncoder(file)
	}

	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
