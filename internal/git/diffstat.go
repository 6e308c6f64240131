package git

import (
	"strconv"
	"strings"
)

// ParseDiffStat decodes working-tree diff summary output. One line per
// file reads "<path> | <stats>"; the trailing aggregate line carries no
// pipe and is skipped. Paths rejected by the filter are dropped.
func ParseDiffStat(out string, filter FileFilter) map[string]WorkingChange {
	changes := make(map[string]WorkingChange)
	for _, line := range strings.Split(out, "\n") {
		wc, ok := parseDiffStatLine(line, filter)
		if !ok {
			continue
		}
		changes[wc.Path] = wc
	}
	return changes
}

// parseDiffStatLine decodes a single summary line. Anything other than
// exactly one pipe separator means the line is not a per-file entry.
func parseDiffStatLine(line string, filter FileFilter) (WorkingChange, bool) {
	parts := strings.Split(line, "|")
	if len(parts) != 2 {
		return WorkingChange{}, false
	}

	path := strings.TrimSpace(parts[0])
	if path == "" || !filter.Match(path) {
		return WorkingChange{}, false
	}

	additions, deletions := decodeStats(parts[1])
	return WorkingChange{Path: path, Additions: additions, Deletions: deletions}, true
}

// The stats side of a diff-stat line appears in one of several
// encodings depending on tool version and terminal width:
//
//	"5 insertions(+), 3 deletions(-)"
//	"++--"
//	"10"
//
// decodeStats tries each in turn. The worded insertion and deletion
// counts are independent, so either or both may contribute before the
// symbolic and bare-total fallbacks are consulted.
func decodeStats(stats string) (additions, deletions int) {
	var worded bool
	if n, ok := statInsertions(stats); ok {
		additions, worded = n, true
	}
	if n, ok := statDeletions(stats); ok {
		deletions, worded = n, true
	}
	if worded {
		return additions, deletions
	}

	if a, d, ok := statSymbols(stats); ok {
		return a, d
	}
	if a, d, ok := statTotal(stats); ok {
		return a, d
	}
	return 0, 0
}

// statInsertions reads the leading token of a stats segment mentioning
// "insertion" as the insertion count.
func statInsertions(stats string) (int, bool) {
	if !strings.Contains(stats, "insertion") {
		return 0, false
	}
	fields := strings.Fields(stats)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return n, true
}

// statDeletions reads the token preceding the "deletion" word as the
// deletion count.
func statDeletions(stats string) (int, bool) {
	if !strings.Contains(stats, "deletion") {
		return 0, false
	}
	fields := strings.Fields(stats)
	for i, f := range fields {
		if strings.Contains(f, "deletion") && i > 0 {
			n, err := strconv.Atoi(fields[i-1])
			if err != nil {
				return 0, false
			}
			return n, true
		}
	}
	return 0, false
}

// statSymbols counts the +/- histogram used by width-scaled summaries.
func statSymbols(stats string) (additions, deletions int, ok bool) {
	additions = strings.Count(stats, "+")
	deletions = strings.Count(stats, "-")
	return additions, deletions, additions+deletions > 0
}

// statTotal splits a bare leading total evenly, assigning the odd
// remainder to additions.
func statTotal(stats string) (additions, deletions int, ok bool) {
	fields := strings.Fields(stats)
	if len(fields) == 0 {
		return 0, 0, false
	}
	total, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, false
	}
	return total - total/2, total / 2, true
}
