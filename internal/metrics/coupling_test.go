package metrics

import (
	"math"
	"strings"
	"testing"

	"github.com/masmgr/gitsect/config"
	"github.com/masmgr/gitsect/internal/git"
)

func TestNewFilePair_CanonicalOrder(t *testing.T) {
	if newFilePair("b.go", "a.go") != newFilePair("a.go", "b.go") {
		t.Error("newFilePair() is order sensitive, expected a canonical pair")
	}
}

func TestCouplingMetric_Ranking(t *testing.T) {
	m := newCouplingMetric(config.CouplingConfig{MinStrength: 0.7})
	ranking := m.Calculate(historyFixture()).Ranking(0)

	if ranking.SubjectCol != "File Pair" || ranking.ScoreCol != "Strength" {
		t.Errorf("ranking header = %+v, expected the coupling columns", ranking)
	}
	if len(ranking.Entries) != 2 {
		t.Fatalf("ranking has %d entries, expected 2 pairs", len(ranking.Entries))
	}

	top := ranking.Entries[0]
	if top.Subject != "a.go <-> b.go" {
		t.Errorf("top pair = %q, expected a.go <-> b.go", top.Subject)
	}
	// 2 co-changes over 5 a.go changes and 2 b.go changes.
	if math.Abs(top.Score-0.4) > 1e-9 || top.ScoreText != "0.40" {
		t.Errorf("top strength = %f (%q), expected 0.40", top.Score, top.ScoreText)
	}
	if len(top.Extra) != 1 || top.Extra[0] != "2" {
		t.Errorf("top extra = %v, expected the co-change count 2", top.Extra)
	}
}

func TestCouplingResult_AnalyzeImpact(t *testing.T) {
	m := newCouplingMetric(config.CouplingConfig{MinStrength: 0.3})
	result := m.Calculate(historyFixture())

	impacts := result.AnalyzeImpact(map[string]git.WorkingChange{
		"a.go": {Path: "a.go", Additions: 1},
	})
	if len(impacts) != 1 {
		t.Fatalf("AnalyzeImpact() returned %d impacts, expected 1", len(impacts))
	}

	got := impacts[0]
	if got.Path != "a.go" || got.Level != RiskMedium {
		t.Errorf("impact = %+v, expected a medium finding on a.go", got)
	}
	note := got.Findings[0].Note
	if !strings.Contains(note, "b.go (40% co-change)") {
		t.Errorf("note = %q, expected the strong partner b.go listed", note)
	}
	if strings.Contains(note, "c.go") {
		t.Errorf("note = %q, expected the weak partner c.go omitted", note)
	}
}

func TestCouplingResult_AnalyzeImpact_PendingPartnerSkipped(t *testing.T) {
	m := newCouplingMetric(config.CouplingConfig{MinStrength: 0.3})
	result := m.Calculate(historyFixture())

	impacts := result.AnalyzeImpact(map[string]git.WorkingChange{
		"a.go": {Path: "a.go", Additions: 1},
		"b.go": {Path: "b.go", Additions: 1},
	})
	if len(impacts) != 0 {
		t.Errorf("AnalyzeImpact() = %+v, expected no findings when partners are already changed", impacts)
	}
}

func TestCouplingResult_AnalyzeImpact_UnknownFile(t *testing.T) {
	m := newCouplingMetric(config.CouplingConfig{MinStrength: 0.3})
	result := m.Calculate(historyFixture())

	impacts := result.AnalyzeImpact(map[string]git.WorkingChange{
		"brand_new.go": {Path: "brand_new.go", Additions: 1},
	})
	if len(impacts) != 0 {
		t.Errorf("AnalyzeImpact() = %+v, expected nothing for a file with no history", impacts)
	}
}
