package metrics

import (
	"fmt"
	"strconv"

	"github.com/masmgr/gitsect/config"
	"github.com/masmgr/gitsect/internal/git"
)

const (
	churnID   = "code_churn"
	churnName = "Code Churn"
)

// churnMetric totals change activity per file. History counts are
// categorical, so churn tracks how often a file is touched rather than
// true line volume.
type churnMetric struct {
	cfg config.ChurnConfig
}

func newChurnMetric(cfg config.ChurnConfig) *churnMetric {
	return &churnMetric{cfg: cfg}
}

func (m *churnMetric) ID() string   { return churnID }
func (m *churnMetric) Name() string { return churnName }
func (m *churnMetric) Description() string {
	return "Files with the highest change activity; frequent change predicts defects (Nagappan & Ball, 2005)."
}

func (m *churnMetric) Calculate(commits []git.Commit) Result {
	res := &churnResult{
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

type churnResult struct {
	cfg     config.ChurnConfig
	churn   map[string]int
	changes map[string]int
}

func (r *churnResult) Ranking(limit int) Ranking {
	entries := make([]Entry, 0, len(r.churn))
	for path, churn := range r.churn {
		entries = append(entries, Entry{
			Subject: path,
			Score:   float64(churn),
			Extra:   []string{strconv.Itoa(r.changes[path])},
		})
	}
	sortEntries(entries)

	return Ranking{
		MetricID:   churnID,
		MetricName: churnName,
		SubjectCol: "File",
		ScoreCol:   "Churn",
		ExtraCols:  []string{"Changes"},
		Entries:    top(entries, limit),
	}
}

// AnalyzeImpact grades each changed file by where its historical churn
// sits in the distribution, with an elevated grade when the pending
// change is large relative to that history.
func (r *churnResult) AnalyzeImpact(changes map[string]git.WorkingChange) []FileImpact {
	values := make([]float64, 0, len(r.churn))
	for _, c := range r.churn {
		values = append(values, float64(c))
	}

	impacts := make([]FileImpact, 0, len(changes))
	for _, path := range sortedPaths(changes) {
		current := changes[path].Churn()
		hist := r.churn[path]
		pct := percentileOf(values, float64(hist))

		level := RiskLevel(r.cfg.Risk.Classify(pct))
		if level == RiskLow && float64(current) > float64(hist)*0.3 {
			level = RiskElevated
		}

		fi := FileImpact{Path: path, Level: level}
		switch level {
		case RiskCritical, RiskHigh, RiskMedium:
			fi.Findings = append(fi.Findings, Finding{
				Metric:         churnID,
				Level:          level,
				Note:           fmt.Sprintf("Historically high-churn file (%.0fth percentile)", pct*100),
				Recommendation: "Budget extra review time; this file changes often.",
			})
		case RiskElevated:
			fi.Findings = append(fi.Findings, Finding{
				Metric:         churnID,
				Level:          level,
				Note:           "Pending change is large relative to the file's history",
				Recommendation: "Consider splitting the change into smaller pieces.",
			})
		}
		impacts = append(impacts, fi)
	}
	return impacts
}
