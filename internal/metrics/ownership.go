package metrics

import (
	"fmt"
	"strconv"

	"github.com/masmgr/gitsect/internal/git"
)

const (
	ownershipID   = "developer_ownership"
	ownershipName = "Developer Ownership"
)

// ownershipMetric identifies each file's dominant contributor and how
// concentrated that dominance is.
type ownershipMetric struct{}

func newOwnershipMetric() *ownershipMetric { return &ownershipMetric{} }

func (m *ownershipMetric) ID() string   { return ownershipID }
func (m *ownershipMetric) Name() string { return ownershipName }
func (m *ownershipMetric) Description() string {
	return "Share of each file's changes made by its dominant author (Bird et al., 2011)."
}

func (m *ownershipMetric) Calculate(commits []git.Commit) Result {
	res := &ownershipResult{contributions: make(map[string]map[string]int)}
	for _, c := range commits {
		for _, f := range c.Files {
			byAuthor := res.contributions[f.Path]
			if byAuthor == nil {
				byAuthor = make(map[string]int)
				res.contributions[f.Path] = byAuthor
			}
			byAuthor[c.Author]++
		}
	}
	return res
}

type ownershipResult struct {
	// contributions maps path -> author -> change count.
	contributions map[string]map[string]int
}

// dominantOwner returns the author with the most changes to the file
// and that author's share of every change. Name ties break
// alphabetically so results are stable.
func dominantOwner(byAuthor map[string]int) (owner string, ratio float64) {
	total, best := 0, 0
	for author, n := range byAuthor {
		total += n
		if n > best || (n == best && author < owner) {
			best, owner = n, author
		}
	}
	if total == 0 {
		return "", 0
	}
	return owner, float64(best) / float64(total)
}

// ownershipCategory buckets a dominance ratio into a label.
func ownershipCategory(ratio float64, contributors int) string {
	switch {
	case ratio > 0.8 && contributors == 1:
		return "exclusive"
	case ratio > 0.8:
		return "strong"
	case ratio > 0.5:
		return "moderate"
	case ratio > 0.3:
		return "shared"
	}
	return "dispersed"
}

func (r *ownershipResult) Ranking(limit int) Ranking {
	entries := make([]Entry, 0, len(r.contributions))
	for path, byAuthor := range r.contributions {
		owner, ratio := dominantOwner(byAuthor)
		entries = append(entries, Entry{
			Subject:   path,
			Score:     ratio,
			ScoreText: fmt.Sprintf("%.2f", ratio),
			Extra: []string{
				owner,
				ownershipCategory(ratio, len(byAuthor)),
				strconv.Itoa(len(byAuthor)),
			},
		})
	}
	sortEntries(entries)

	return Ranking{
		MetricID:   ownershipID,
		MetricName: ownershipName,
		SubjectCol: "File",
		ScoreCol:   "Ownership",
		ExtraCols:  []string{"Owner", "Category", "Contributors"},
		Entries:    top(entries, limit),
	}
}

// AnalyzeImpact flags changed files only one person has ever touched.
func (r *ownershipResult) AnalyzeImpact(changes map[string]git.WorkingChange) []FileImpact {
	var impacts []FileImpact
	for _, path := range sortedPaths(changes) {
		byAuthor, ok := r.contributions[path]
		if !ok {
			continue
		}
		owner, ratio := dominantOwner(byAuthor)
		if ownershipCategory(ratio, len(byAuthor)) != "exclusive" {
			continue
		}

		impacts = append(impacts, FileImpact{
			Path:  path,
			Level: RiskMedium,
			Findings: []Finding{{
				Metric:         ownershipID,
				Level:          RiskMedium,
				Note:           fmt.Sprintf("Every previous change was made by %s", owner),
				Recommendation: fmt.Sprintf("Request a review from %s and spread knowledge of this file.", owner),
			}},
		})
	}
	return impacts
}
