package metrics

import (
	"math"
	"strings"
	"testing"

	"github.com/masmgr/gitsect/internal/git"
)

func TestDominantOwner(t *testing.T) {
	tests := []struct {
		name          string
		byAuthor      map[string]int
		expectedOwner string
		expectedRatio float64
	}{
		{name: "Empty", byAuthor: map[string]int{}, expectedOwner: "", expectedRatio: 0},
		{name: "Single", byAuthor: map[string]int{"Alice": 4}, expectedOwner: "Alice", expectedRatio: 1.0},
		{name: "Majority", byAuthor: map[string]int{"Alice": 3, "Bob": 1}, expectedOwner: "Alice", expectedRatio: 0.75},
		{name: "TieBreaksAlphabetically", byAuthor: map[string]int{"Bob": 2, "Alice": 2}, expectedOwner: "Alice", expectedRatio: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, ratio := dominantOwner(tt.byAuthor)
			if owner != tt.expectedOwner {
				t.Errorf("owner = %q, expected %q", owner, tt.expectedOwner)
			}
			if math.Abs(ratio-tt.expectedRatio) > 1e-9 {
				t.Errorf("ratio = %f, expected %f", ratio, tt.expectedRatio)
			}
		})
	}
}

func TestOwnershipCategory(t *testing.T) {
	tests := []struct {
		name         string
		ratio        float64
		contributors int
		expected     string
	}{
		{name: "Exclusive", ratio: 1.0, contributors: 1, expected: "exclusive"},
		{name: "Strong", ratio: 0.9, contributors: 3, expected: "strong"},
		{name: "StrongBoundary", ratio: 0.8, contributors: 2, expected: "moderate"},
		{name: "Moderate", ratio: 0.6, contributors: 2, expected: "moderate"},
		{name: "Shared", ratio: 0.4, contributors: 3, expected: "shared"},
		{name: "Dispersed", ratio: 0.2, contributors: 6, expected: "dispersed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ownershipCategory(tt.ratio, tt.contributors); got != tt.expected {
				t.Errorf("ownershipCategory(%f, %d) = %q, expected %q", tt.ratio, tt.contributors, got, tt.expected)
			}
		})
	}
}

func TestOwnershipMetric_Ranking(t *testing.T) {
	m := newOwnershipMetric()
	ranking := m.Calculate(historyFixture()).Ranking(0)

	if ranking.ScoreCol != "Ownership" {
		t.Errorf("score column = %q, expected Ownership", ranking.ScoreCol)
	}
	if len(ranking.Entries) != 3 {
		t.Fatalf("ranking has %d entries, expected 3", len(ranking.Entries))
	}

	// b.go and c.go are fully owned and tie at 1.0.
	if ranking.Entries[0].Subject != "b.go" || ranking.Entries[1].Subject != "c.go" {
		t.Errorf("top entries = %q, %q; expected b.go then c.go", ranking.Entries[0].Subject, ranking.Entries[1].Subject)
	}
	if got := ranking.Entries[0].Extra; len(got) != 3 || got[0] != "Alice" || got[1] != "exclusive" || got[2] != "1" {
		t.Errorf("b.go extra = %v, expected Alice exclusive with 1 contributor", got)
	}

	shared := ranking.Entries[2]
	if shared.Subject != "a.go" || shared.ScoreText != "0.60" {
		t.Errorf("a.go entry = %+v, expected ownership 0.60", shared)
	}
	if shared.Extra[1] != "moderate" || shared.Extra[2] != "3" {
		t.Errorf("a.go extra = %v, expected moderate with 3 contributors", shared.Extra)
	}
}

func TestOwnershipResult_AnalyzeImpact(t *testing.T) {
	m := newOwnershipMetric()
	result := m.Calculate(historyFixture())

	impacts := result.AnalyzeImpact(map[string]git.WorkingChange{
		"a.go": {Path: "a.go", Additions: 1},
		"b.go": {Path: "b.go", Additions: 1},
	})
	if len(impacts) != 1 {
		t.Fatalf("AnalyzeImpact() returned %d impacts, expected only the exclusive file", len(impacts))
	}
	got := impacts[0]
	if got.Path != "b.go" || got.Level != RiskMedium {
		t.Errorf("impact = %+v, expected a medium finding on b.go", got)
	}
	if !strings.Contains(got.Findings[0].Note, "Alice") {
		t.Errorf("note = %q, expected the sole owner named", got.Findings[0].Note)
	}
}
