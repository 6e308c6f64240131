package metrics

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/masmgr/gitsect/internal/git"
)

const (
	knowledgeID   = "knowledge_distribution"
	knowledgeName = "Knowledge Distribution"
)

// knowledgeMetric maps how repository knowledge spreads across
// authors: who covers how much of the tree, and how thinly held the
// whole is.
type knowledgeMetric struct{}

func newKnowledgeMetric() *knowledgeMetric { return &knowledgeMetric{} }

func (m *knowledgeMetric) ID() string   { return knowledgeID }
func (m *knowledgeMetric) Name() string { return knowledgeName }
func (m *knowledgeMetric) Description() string {
	return "Coverage and depth of per-author knowledge, with the team's bus factor (Mockus, 2010)."
}

func (m *knowledgeMetric) Calculate(commits []git.Commit) Result {
	res := &knowledgeResult{
		contributions: make(map[string]map[string]int),
		filesTouched:  make(map[string]map[string]bool),
	}
	for _, c := range commits {
		for _, f := range c.Files {
			byAuthor := res.contributions[f.Path]
			if byAuthor == nil {
				byAuthor = make(map[string]int)
				res.contributions[f.Path] = byAuthor
			}
			byAuthor[c.Author]++

			touched := res.filesTouched[c.Author]
			if touched == nil {
				touched = make(map[string]bool)
				res.filesTouched[c.Author] = touched
			}
			touched[f.Path] = true
		}
	}
	return res
}

type knowledgeResult struct {
	// contributions maps path -> author -> change count.
	contributions map[string]map[string]int
	// filesTouched maps author -> set of files they changed.
	filesTouched map[string]map[string]bool
}

// ownedFiles maps each author to the files they dominate.
func (r *knowledgeResult) ownedFiles() map[string][]string {
	owned := make(map[string][]string)
	for path, byAuthor := range r.contributions {
		owner, _ := dominantOwner(byAuthor)
		if owner != "" {
			owned[owner] = append(owned[owner], path)
		}
	}
	return owned
}

// depth is the average dominance ratio over the files an author owns.
func (r *knowledgeResult) depth(paths []string) float64 {
	if len(paths) == 0 {
		return 0
	}
	sum := 0.0
	for _, path := range paths {
		_, ratio := dominantOwner(r.contributions[path])
		sum += ratio
	}
	return sum / float64(len(paths))
}

// BusFactor counts the fewest authors whose owned files cover half the
// repository. Small values mean the history sits with few heads.
func (r *knowledgeResult) BusFactor() int {
	total := len(r.contributions)
	if total == 0 {
		return 0
	}

	counts := make([]int, 0, len(r.filesTouched))
	for _, paths := range r.ownedFiles() {
		counts = append(counts, len(paths))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	cum := 0
	for i, c := range counts {
		cum += c
		if float64(cum) >= float64(total)*0.5 {
			return i + 1
		}
	}
	return len(counts)
}

// Redundancy is the average number of contributors per file.
func (r *knowledgeResult) Redundancy() float64 {
	if len(r.contributions) == 0 {
		return 0
	}
	sum := 0
	for _, byAuthor := range r.contributions {
		sum += len(byAuthor)
	}
	return float64(sum) / float64(len(r.contributions))
}

func (r *knowledgeResult) Ranking(limit int) Ranking {
	owned := r.ownedFiles()
	total := len(r.contributions)

	entries := make([]Entry, 0, len(r.filesTouched))
	for author, touched := range r.filesTouched {
		coverage := 0.0
		if total > 0 {
			coverage = float64(len(touched)) / float64(total)
		}
		entries = append(entries, Entry{
			Subject:   author,
			Score:     coverage,
			ScoreText: fmt.Sprintf("%.2f", coverage),
			Extra: []string{
				strconv.Itoa(len(touched)),
				strconv.Itoa(len(owned[author])),
				fmt.Sprintf("%.2f", r.depth(owned[author])),
			},
		})
	}
	sortEntries(entries)

	return Ranking{
		MetricID:   knowledgeID,
		MetricName: knowledgeName,
		SubjectCol: "Author",
		ScoreCol:   "Coverage",
		ExtraCols:  []string{"Files", "Owned", "Depth"},
		Entries:    top(entries, limit),
	}
}

// AnalyzeImpact suggests consulting the dominant author of a changed
// file when most of its history is theirs.
func (r *knowledgeResult) AnalyzeImpact(changes map[string]git.WorkingChange) []FileImpact {
	var impacts []FileImpact
	for _, path := range sortedPaths(changes) {
		byAuthor, ok := r.contributions[path]
		if !ok {
			continue
		}
		owner, ratio := dominantOwner(byAuthor)
		if ratio <= 0.7 {
			continue
		}

		impacts = append(impacts, FileImpact{
			Path:  path,
			Level: RiskLow,
			Findings: []Finding{{
				Metric:         knowledgeID,
				Level:          RiskLow,
				Note:           fmt.Sprintf("%s made %.0f%% of the changes to this file", owner, ratio*100),
				Recommendation: fmt.Sprintf("Consult %s about this change.", owner),
			}},
		})
	}
	return impacts
}

// TeamFindings raises a team-wide flag when too few people own half
// the repository.
func (r *knowledgeResult) TeamFindings(changes map[string]git.WorkingChange) []Finding {
	bus := r.BusFactor()
	if bus == 0 || bus > 2 {
		return nil
	}
	return []Finding{{
		Metric:         knowledgeID,
		Level:          RiskHigh,
		Note:           fmt.Sprintf("Bus factor is %d: half the files are owned by %d author(s) (redundancy %.1f contributors per file)", bus, bus, r.Redundancy()),
		Recommendation: "Spread ownership through pairing and review rotation.",
	}}
}
