package metrics

import (
	"strings"
	"testing"

	"github.com/masmgr/gitsect/config"
	"github.com/masmgr/gitsect/internal/git"
)

func defaultChurnConfig() config.ChurnConfig {
	return config.ChurnConfig{Risk: config.RiskBands{Critical: 0.9, High: 0.8, Medium: 0.6}}
}

func TestChurnMetric_Identity(t *testing.T) {
	m := newChurnMetric(defaultChurnConfig())
	if m.ID() != "code_churn" {
		t.Errorf("ID() = %q, expected code_churn", m.ID())
	}
	if m.Name() != "Code Churn" {
		t.Errorf("Name() = %q, expected Code Churn", m.Name())
	}
	if m.Description() == "" {
		t.Error("Description() is empty")
	}
}

func TestChurnMetric_Ranking(t *testing.T) {
	m := newChurnMetric(defaultChurnConfig())
	ranking := m.Calculate(historyFixture()).Ranking(0)

	if ranking.MetricID != "code_churn" || ranking.SubjectCol != "File" || ranking.ScoreCol != "Churn" {
		t.Errorf("ranking header = %+v, expected the churn columns", ranking)
	}
	if len(ranking.Entries) != 3 {
		t.Fatalf("ranking has %d entries, expected 3", len(ranking.Entries))
	}

	first := ranking.Entries[0]
	if first.Subject != "a.go" || first.Score != 10 {
		t.Errorf("top entry = %+v, expected a.go with churn 10", first)
	}
	if len(first.Extra) != 1 || first.Extra[0] != "5" {
		t.Errorf("top entry extra = %v, expected the change count 5", first.Extra)
	}
	if ranking.Entries[1].Subject != "b.go" || ranking.Entries[2].Subject != "c.go" {
		t.Errorf("ranking order = %v, expected b.go then c.go", ranking.Entries)
	}
}

func TestChurnMetric_RankingLimit(t *testing.T) {
	m := newChurnMetric(defaultChurnConfig())
	ranking := m.Calculate(historyFixture()).Ranking(2)
	if len(ranking.Entries) != 2 {
		t.Errorf("ranking has %d entries, expected the limit of 2", len(ranking.Entries))
	}
}

func TestChurnMetric_EmptyHistory(t *testing.T) {
	m := newChurnMetric(defaultChurnConfig())
	ranking := m.Calculate(nil).Ranking(10)
	if len(ranking.Entries) != 0 {
		t.Errorf("ranking has %d entries for empty history, expected 0", len(ranking.Entries))
	}
}

func TestChurnResult_AnalyzeImpact(t *testing.T) {
	m := newChurnMetric(defaultChurnConfig())
	result := m.Calculate(historyFixture())

	changes := map[string]git.WorkingChange{
		"a.go": {Path: "a.go", Additions: 1, Deletions: 0},
		"d.go": {Path: "d.go", Additions: 8, Deletions: 2},
	}
	impacts := result.AnalyzeImpact(changes)
	if len(impacts) != 2 {
		t.Fatalf("AnalyzeImpact() returned %d impacts, expected 2", len(impacts))
	}

	top := impacts[0]
	if top.Path != "a.go" || top.Level != RiskCritical {
		t.Errorf("a.go impact = %+v, expected critical for the highest-churn file", top)
	}
	if len(top.Findings) != 1 || !strings.Contains(top.Findings[0].Note, "high-churn") {
		t.Errorf("a.go findings = %+v, expected a high-churn note", top.Findings)
	}

	fresh := impacts[1]
	if fresh.Path != "d.go" || fresh.Level != RiskElevated {
		t.Errorf("d.go impact = %+v, expected elevated for a large change to an unknown file", fresh)
	}
	if len(fresh.Findings) != 1 || !strings.Contains(fresh.Findings[0].Recommendation, "splitting") {
		t.Errorf("d.go findings = %+v, expected the split recommendation", fresh.Findings)
	}
}
