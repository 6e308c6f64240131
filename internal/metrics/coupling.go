package metrics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/masmgr/gitsect/config"
	"github.com/masmgr/gitsect/internal/git"
)

const (
	couplingID   = "change_coupling"
	couplingName = "Change Coupling"
)

// filePair is an unordered pair of paths stored in canonical order.
type filePair struct {
	A, B string
}

func newFilePair(a, b string) filePair {
	if b < a {
		a, b = b, a
	}
	return filePair{A: a, B: b}
}

// couplingMetric finds files that habitually change in the same
// commit, a signal of hidden dependencies.
type couplingMetric struct {
	cfg config.CouplingConfig
}

func newCouplingMetric(cfg config.CouplingConfig) *couplingMetric {
	return &couplingMetric{cfg: cfg}
}

func (m *couplingMetric) ID() string   { return couplingID }
func (m *couplingMetric) Name() string { return couplingName }
func (m *couplingMetric) Description() string {
	return "File pairs that change together; co-change reveals dependencies the import graph misses (D'Ambros et al., 2009)."
}

func (m *couplingMetric) Calculate(commits []git.Commit) Result {
	res := &couplingResult{
		cfg:        m.cfg,
		pairCounts: make(map[filePair]int),
		fileCounts: make(map[string]int),
	}
	for _, c := range commits {
		files := c.Files
		for i := 0; i < len(files); i++ {
			res.fileCounts[files[i].Path]++
			for j := i + 1; j < len(files); j++ {
				if files[i].Path == files[j].Path {
					continue
				}
				res.pairCounts[newFilePair(files[i].Path, files[j].Path)]++
			}
		}
	}
	return res
}

type couplingResult struct {
	cfg        config.CouplingConfig
	pairCounts map[filePair]int
	fileCounts map[string]int
}

// strength is the Jaccard co-change ratio: commits touching both files
// over commits touching either.
func (r *couplingResult) strength(p filePair, count int) float64 {
	union := r.fileCounts[p.A] + r.fileCounts[p.B] - count
	if union <= 0 {
		return 0
	}
	return float64(count) / float64(union)
}

func (r *couplingResult) Ranking(limit int) Ranking {
	entries := make([]Entry, 0, len(r.pairCounts))
	for pair, count := range r.pairCounts {
		s := r.strength(pair, count)
		entries = append(entries, Entry{
			Subject:   pair.A + " <-> " + pair.B,
			Score:     s,
			ScoreText: fmt.Sprintf("%.2f", s),
			Extra:     []string{strconv.Itoa(count)},
		})
	}
	sortEntries(entries)

	return Ranking{
		MetricID:   couplingID,
		MetricName: couplingName,
		SubjectCol: "File Pair",
		ScoreCol:   "Strength",
		ExtraCols:  []string{"Co-changes"},
		Entries:    top(entries, limit),
	}
}

// AnalyzeImpact flags changed files whose strongest co-change partners
// carry no pending modification of their own.
func (r *couplingResult) AnalyzeImpact(changes map[string]git.WorkingChange) []FileImpact {
	var impacts []FileImpact
	for _, path := range sortedPaths(changes) {
		partners := r.coupledPartners(path, changes)
		if len(partners) == 0 {
			continue
		}

		described := lo.Map(partners, func(p coupledPartner, _ int) string {
			return fmt.Sprintf("%s (%.0f%% co-change)", p.path, p.strength*100)
		})
		impacts = append(impacts, FileImpact{
			Path:  path,
			Level: RiskMedium,
			Findings: []Finding{{
				Metric:         couplingID,
				Level:          RiskMedium,
				Note:           "Frequently changes together with " + strings.Join(described, ", "),
				Recommendation: "Check whether the coupled files need a matching change.",
			}},
		})
	}
	return impacts
}

type coupledPartner struct {
	path     string
	strength float64
}

// coupledPartners lists up to three files that historically co-change
// with path above the configured strength and are not already part of
// the pending change set.
func (r *couplingResult) coupledPartners(path string, changes map[string]git.WorkingChange) []coupledPartner {
	var partners []coupledPartner
	for pair, count := range r.pairCounts {
		var other string
		switch path {
		case pair.A:
			other = pair.B
		case pair.B:
			other = pair.A
		default:
			continue
		}
		if _, pending := changes[other]; pending {
			continue
		}
		if s := r.strength(pair, count); s > r.cfg.MinStrength {
			partners = append(partners, coupledPartner{path: other, strength: s})
		}
	}

	sort.Slice(partners, func(i, j int) bool {
		if partners[i].strength != partners[j].strength {
			return partners[i].strength > partners[j].strength
		}
		return partners[i].path < partners[j].path
	})
	if len(partners) > 3 {
		partners = partners[:3]
	}
	return partners
}
