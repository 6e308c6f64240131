package metrics

import (
	"fmt"
	"math"
	"strconv"

	"github.com/masmgr/gitsect/internal/git"
)

const (
	entropyID   = "change_entropy"
	entropyName = "Change Entropy"
)

// entropyMetric measures how evenly a file's changes spread across
// authors. High entropy means fragmented ownership.
type entropyMetric struct{}

func newEntropyMetric() *entropyMetric { return &entropyMetric{} }

func (m *entropyMetric) ID() string   { return entropyID }
func (m *entropyMetric) Name() string { return entropyName }
func (m *entropyMetric) Description() string {
	return "Shannon entropy of per-author change counts; scattered change correlates with faults (Hassan, 2009)."
}

func (m *entropyMetric) Calculate(commits []git.Commit) Result {
	res := &entropyResult{contributions: make(map[string]map[string]int)}
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

type entropyResult struct {
	// contributions maps path -> author -> change count.
	contributions map[string]map[string]int
}

// normalizedEntropy is the Shannon entropy of an author distribution,
// scaled into [0, 1] by the maximum possible for that author count. A
// single author always yields zero.
func normalizedEntropy(byAuthor map[string]int) float64 {
	if len(byAuthor) <= 1 {
		return 0
	}

	total := 0
	for _, n := range byAuthor {
		total += n
	}
	if total == 0 {
		return 0
	}

	h := 0.0
	for _, n := range byAuthor {
		if n == 0 {
			continue
		}
		p := float64(n) / float64(total)
		h -= p * math.Log2(p)
	}
	return h / math.Log2(float64(len(byAuthor)))
}

func (r *entropyResult) Ranking(limit int) Ranking {
	entries := make([]Entry, 0, len(r.contributions))
	for path, byAuthor := range r.contributions {
		total := 0
		for _, n := range byAuthor {
			total += n
		}
		h := normalizedEntropy(byAuthor)
		entries = append(entries, Entry{
			Subject:   path,
			Score:     h,
			ScoreText: fmt.Sprintf("%.2f", h),
			Extra:     []string{strconv.Itoa(len(byAuthor)), strconv.Itoa(total)},
		})
	}
	sortEntries(entries)

	return Ranking{
		MetricID:   entropyID,
		MetricName: entropyName,
		SubjectCol: "File",
		ScoreCol:   "Entropy",
		ExtraCols:  []string{"Contributors", "Changes"},
		Entries:    top(entries, limit),
	}
}

// AnalyzeImpact notes changed files whose author distribution is
// either badly fragmented or suspiciously concentrated.
func (r *entropyResult) AnalyzeImpact(changes map[string]git.WorkingChange) []FileImpact {
	var impacts []FileImpact
	for _, path := range sortedPaths(changes) {
		byAuthor, ok := r.contributions[path]
		if !ok {
			continue
		}
		h := normalizedEntropy(byAuthor)
		n := len(byAuthor)

		var finding *Finding
		switch {
		case h > 0.8 && n > 3:
			finding = &Finding{
				Metric:         entropyID,
				Level:          RiskHigh,
				Note:           fmt.Sprintf("Ownership is fragmented across %d contributors (entropy %.2f)", n, h),
				Recommendation: "Agree a primary owner before piling on further changes.",
			}
		case h < 0.3 && n > 1:
			finding = &Finding{
				Metric:         entropyID,
				Level:          RiskLow,
				Note:           fmt.Sprintf("Changes concentrate on one contributor despite %d involved (entropy %.2f)", n, h),
				Recommendation: "Consider pairing to spread knowledge of this file.",
			}
		}
		if finding == nil {
			continue
		}

		impacts = append(impacts, FileImpact{
			Path:     path,
			Level:    finding.Level,
			Findings: []Finding{*finding},
		})
	}
	return impacts
}
