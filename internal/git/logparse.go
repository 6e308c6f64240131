package git

import (
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
)

// LogFormat is the pretty-format string handed to the log invocation.
// Each commit renders as a sentinel-delimited block: four header lines
// (hash, author, date, subject), the body, and a terminator.
const LogFormat = "COMMIT_START%n%H%n%an%n%ad%n%s%n%b%nCOMMIT_END"

const (
	commitStart = "COMMIT_START"
	commitEnd   = "COMMIT_END"
)

// ParseLog splits raw log output into sentinel-delimited chunks and
// decodes them into commits, preserving chunk order in the result.
// Malformed chunks are dropped rather than failing the batch. Chunks
// are independent, so decoding fans out across CPUs; progress, when
// non-nil, receives (done, total) counts as chunks complete.
func ParseLog(out string, filter FileFilter, progress func(done, total int)) []Commit {
	raw := strings.Split(out, commitStart+"\n")
	if len(raw) < 2 {
		return nil
	}
	// Text before the first sentinel is not part of any record.
	chunks := raw[1:]

	type parsed struct {
		commit Commit
		ok     bool
	}
	results := make([]parsed, len(chunks))

	workers := runtime.NumCPU()
	if workers > len(chunks) {
		workers = len(chunks)
	}

	var done atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(start int) {
			defer wg.Done()
			for i := start; i < len(chunks); i += workers {
				c, ok := parseChunk(chunks[i], filter)
				results[i] = parsed{commit: c, ok: ok}
				if progress != nil {
					progress(int(done.Add(1)), len(chunks))
				}
			}
		}(w)
	}
	wg.Wait()

	commits := make([]Commit, 0, len(chunks))
	for _, p := range results {
		if p.ok {
			commits = append(commits, p.commit)
		}
	}
	return commits
}

// parseChunk decodes one sentinel-delimited block. The block is dropped
// when the terminator line is missing or fewer than four header lines
// precede it. File entries are "status\tpath" lines; git emits them
// after the terminator whenever the record carries a body, so the scan
// covers both the interior and the tail of the chunk.
func parseChunk(chunk string, filter FileFilter) (Commit, bool) {
	lines := strings.Split(chunk, "\n")

	end := -1
	for i, line := range lines {
		if line == commitEnd {
			end = i
			break
		}
	}
	if end < 4 {
		return Commit{}, false
	}

	var files []FileChange
	scan := func(lines []string) {
		for _, line := range lines {
			if fc, ok := parseFileLine(line, filter); ok {
				files = append(files, fc)
			}
		}
	}
	scan(lines[4:end])
	scan(lines[end+1:])

	// A filtered commit that matched nothing contributes no changes.
	if filter.Active() && len(files) == 0 {
		return Commit{}, false
	}

	return Commit{
		Hash:    lines[0],
		Author:  lines[1],
		Date:    lines[2],
		Message: lines[3],
		Files:   files,
	}, true
}

// parseFileLine decodes one "status\tpath" entry. Lines without a tab
// are body text and are skipped, as are paths rejected by the filter.
func parseFileLine(line string, filter FileFilter) (FileChange, bool) {
	parts := strings.Split(line, "\t")
	if len(parts) < 2 {
		return FileChange{}, false
	}

	status, path := parts[0], parts[1]
	if !filter.Match(path) {
		return FileChange{}, false
	}

	additions, deletions := statusCounts(status)
	return FileChange{
		Path:      path,
		Additions: additions,
		Deletions: deletions,
		Status:    status,
	}, true
}

// statusCounts maps a name-status code to the categorical counts kept
// on history records: adds count one insertion, deletes one deletion,
// and modifies, renames, and copies one of each. The first character
// discriminates; a similarity suffix such as "R100" is ignored, and
// codes outside the known set contribute nothing.
func statusCounts(status string) (additions, deletions int) {
	if status == "" {
		return 0, 0
	}
	switch status[0] {
	case 'A':
		return 1, 0
	case 'D':
		return 0, 1
	case 'M', 'R', 'C':
		return 1, 1
	}
	return 0, 0
}
