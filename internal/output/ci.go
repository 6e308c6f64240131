package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/masmgr/gitsect/internal/metrics"
)

// CIImpactWriter writes impact reports as NDJSON (one JSON object per line) for CI pipelines.
type CIImpactWriter struct{}

// CISummary is the first line of CI output, containing aggregate statistics.
type CISummary struct {
	Type          string `json:"type"`
	FilesChanged  int    `json:"filesChanged"`
	CriticalCount int    `json:"criticalCount"`
	HighCount     int    `json:"highCount"`
	MediumCount   int    `json:"mediumCount"`
	OverallLevel  string `json:"overallLevel"`
}

// CIFileEntry represents a single changed file in CI output.
type CIFileEntry struct {
	Type     string   `json:"type"`
	Path     string   `json:"path"`
	Level    string   `json:"level"`
	Findings []string `json:"findings,omitempty"`
}

// CITeamEntry represents a team-level finding in CI output.
type CITeamEntry struct {
	Type           string `json:"type"`
	Level          string `json:"level"`
	Note           string `json:"note"`
	Recommendation string `json:"recommendation,omitempty"`
}

// Write outputs the impact report as NDJSON.
func (w *CIImpactWriter) Write(report *ImpactReport, options OutputOptions) error {
	out, file, err := createWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	// Classify and count risk levels
	var criticalCount, highCount, mediumCount int
	overall := metrics.RiskLow
	for _, fi := range report.Files {
		switch fi.Level {
		case metrics.RiskCritical:
			criticalCount++
		case metrics.RiskHigh:
			highCount++
		case metrics.RiskMedium:
			mediumCount++
		}
		if fi.Level.MoreSevere(overall) {
			overall = fi.Level
		}
	}
	for _, finding := range report.Team {
		if finding.Level.MoreSevere(overall) {
			overall = finding.Level
		}
	}

	// Write summary line
	summary := CISummary{
		Type:          "summary",
		FilesChanged:  len(report.Changes),
		CriticalCount: criticalCount,
		HighCount:     highCount,
		MediumCount:   mediumCount,
		OverallLevel:  string(overall),
	}
	if err := writeNDJSONLine(out, summary); err != nil {
		return err
	}

	// Write file entries
	for _, fi := range report.Files {
		entry := CIFileEntry{
			Type:  "file",
			Path:  fi.Path,
			Level: string(fi.Level),
			Findings: lo.Map(fi.Findings, func(f metrics.Finding, _ int) string {
				return f.Note
			}),
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	// Write team entries
	for _, finding := range report.Team {
		entry := CITeamEntry{
			Type:           "team",
			Level:          string(finding.Level),
			Note:           finding.Note,
			Recommendation: finding.Recommendation,
		}
		if err := writeNDJSONLine(out, entry); err != nil {
			return err
		}
	}

	return nil
}

func writeNDJSONLine(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal NDJSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
