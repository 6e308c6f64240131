// Package metrics derives maintenance signals from collected history:
// churn, change coupling, entropy, ownership, hotspots, and knowledge
// distribution.
package metrics

import (
	"sort"

	"github.com/samber/lo"

	"github.com/masmgr/gitsect/internal/git"
)

// Metric analyzes collected history from one angle.
type Metric interface {
	// ID is the stable identifier used in config and output.
	ID() string
	// Name is the human-readable title.
	Name() string
	// Description summarizes what the metric measures.
	Description() string
	// Calculate computes the metric over the collected history.
	Calculate(commits []git.Commit) Result
}

// Result is one metric computed over one history collection.
type Result interface {
	// Ranking returns the top subjects, highest score first.
	Ranking(limit int) Ranking
	// AnalyzeImpact grades uncommitted changes against the history.
	AnalyzeImpact(changes map[string]git.WorkingChange) []FileImpact
}

// TeamAdvisor is implemented by results that can also report findings
// about the team as a whole rather than about a single changed file.
type TeamAdvisor interface {
	TeamFindings(changes map[string]git.WorkingChange) []Finding
}

// Ranking is a tabular view of a metric's top subjects.
type Ranking struct {
	MetricID   string
	MetricName string
	SubjectCol string
	ScoreCol   string
	ExtraCols  []string
	Entries    []Entry
}

// Entry is one ranked row. ScoreText, when set, is the display form of
// the score; otherwise writers format the raw value.
type Entry struct {
	Subject   string
	Score     float64
	ScoreText string
	Extra     []string
}

// RiskLevel grades the severity of an impact finding.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskElevated RiskLevel = "elevated"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

var riskOrder = map[RiskLevel]int{
	RiskLow:      0,
	RiskElevated: 1,
	RiskMedium:   2,
	RiskHigh:     3,
	RiskCritical: 4,
}

// MoreSevere reports whether r outranks other.
func (r RiskLevel) MoreSevere(other RiskLevel) bool {
	return riskOrder[r] > riskOrder[other]
}

// Finding is one observation a metric makes about pending changes.
type Finding struct {
	Metric         string
	Level          RiskLevel
	Note           string
	Recommendation string
}

// FileImpact aggregates findings about one changed file. Level is the
// most severe level across Findings.
type FileImpact struct {
	Path     string
	Level    RiskLevel
	Findings []Finding
}

// MergeImpacts combines per-metric impacts by path. Findings keep
// their input order and each file's level is the most severe seen.
func MergeImpacts(impacts ...[]FileImpact) []FileImpact {
	merged := make(map[string]*FileImpact)
	var order []string

	for _, batch := range impacts {
		for _, fi := range batch {
			cur, ok := merged[fi.Path]
			if !ok {
				cp := fi
				merged[fi.Path] = &cp
				order = append(order, fi.Path)
				continue
			}
			cur.Findings = append(cur.Findings, fi.Findings...)
			if fi.Level.MoreSevere(cur.Level) {
				cur.Level = fi.Level
			}
		}
	}

	out := make([]FileImpact, 0, len(order))
	for _, path := range order {
		out = append(out, *merged[path])
	}
	return out
}

// sortedPaths returns the change paths in stable order so impact
// output does not depend on map iteration.
func sortedPaths(changes map[string]git.WorkingChange) []string {
	paths := lo.Keys(changes)
	sort.Strings(paths)
	return paths
}

// percentileOf reports the fraction of values not exceeding v.
func percentileOf(values []float64, v float64) float64 {
	if len(values) == 0 {
		return 0
	}
	n := lo.CountBy(values, func(x float64) bool { return x <= v })
	return float64(n) / float64(len(values))
}

// sortEntries orders entries by score descending, subject ascending on
// ties, so rankings are stable across runs.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Subject < entries[j].Subject
	})
}

// top returns at most limit entries; a non-positive limit keeps all.
func top(entries []Entry, limit int) []Entry {
	if limit <= 0 || limit >= len(entries) {
		return entries
	}
	return entries[:limit]
}
