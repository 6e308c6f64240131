package metrics

import (
	"fmt"
	"strconv"

	"github.com/masmgr/gitsect/config"
	"github.com/masmgr/gitsect/internal/git"
)

const (
	hotspotID   = "hotspot_analysis"
	hotspotName = "Hotspot Analysis"
)

// hotspotMetric scores files by change frequency weighted with average
// change size, after Tornhill's hotspot heuristic.
type hotspotMetric struct {
	cfg config.HotspotConfig
}

func newHotspotMetric(cfg config.HotspotConfig) *hotspotMetric {
	return &hotspotMetric{cfg: cfg}
}

func (m *hotspotMetric) ID() string   { return hotspotID }
func (m *hotspotMetric) Name() string { return hotspotName }
func (m *hotspotMetric) Description() string {
	return "Files where frequent change and change size combine; prime refactoring candidates (Tornhill, 2015)."
}

func (m *hotspotMetric) Calculate(commits []git.Commit) Result {
	res := &hotspotResult{
		cfg:     m.cfg,
		churn:   make(map[string]int),
		changes: make(map[string]int),
	}
	for _, c := range commits {
		for _, f := range c.Files {
			res.churn[f.Path] += f.Churn()
			res.changes[f.Path]++
		}
	}
	return res
}

type hotspotResult struct {
	cfg     config.HotspotConfig
	churn   map[string]int
	changes map[string]int
}

// avgChurn is the mean change size of one file's history.
func (r *hotspotResult) avgChurn(path string) float64 {
	n := r.changes[path]
	if n == 0 {
		return 0
	}
	return float64(r.churn[path]) / float64(n)
}

// score weights change frequency by average change size.
func (r *hotspotResult) score(path string) float64 {
	return float64(r.changes[path]) * r.avgChurn(path)
}

func (r *hotspotResult) Ranking(limit int) Ranking {
	entries := make([]Entry, 0, len(r.changes))
	for path := range r.changes {
		entries = append(entries, Entry{
			Subject:   path,
			Score:     r.score(path),
			ScoreText: fmt.Sprintf("%.1f", r.score(path)),
			Extra: []string{
				strconv.Itoa(r.changes[path]),
				fmt.Sprintf("%.1f", r.avgChurn(path)),
			},
		})
	}
	sortEntries(entries)

	return Ranking{
		MetricID:   hotspotID,
		MetricName: hotspotName,
		SubjectCol: "File",
		ScoreCol:   "Score",
		ExtraCols:  []string{"Changes", "Avg Churn"},
		Entries:    top(entries, limit),
	}
}

// AnalyzeImpact flags changed files that already rank as hotspots, and
// pending changes noticeably larger than the file's average.
func (r *hotspotResult) AnalyzeImpact(changes map[string]git.WorkingChange) []FileImpact {
	values := make([]float64, 0, len(r.changes))
	for path := range r.changes {
		values = append(values, r.score(path))
	}

	var impacts []FileImpact
	for _, path := range sortedPaths(changes) {
		var findings []Finding

		if _, known := r.changes[path]; known {
			if pct := percentileOf(values, r.score(path)); pct > r.cfg.Percentile {
				findings = append(findings, Finding{
					Metric:         hotspotID,
					Level:          RiskHigh,
					Note:           fmt.Sprintf("File is a change hotspot (%.0fth score percentile)", pct*100),
					Recommendation: "Treat as a refactoring candidate before adding more change.",
				})
			}
			if avg := r.avgChurn(path); avg > 0 && float64(changes[path].Churn()) > avg*1.5 {
				findings = append(findings, Finding{
					Metric:         hotspotID,
					Level:          RiskMedium,
					Note:           fmt.Sprintf("Pending change is larger than the file's average (%.1f)", avg),
					Recommendation: "Large changes to hot files deserve a second reviewer.",
				})
			}
		}
		if len(findings) == 0 {
			continue
		}

		level := findings[0].Level
		for _, f := range findings[1:] {
			if f.Level.MoreSevere(level) {
				level = f.Level
			}
		}
		impacts = append(impacts, FileImpact{Path: path, Level: level, Findings: findings})
	}
	return impacts
}
