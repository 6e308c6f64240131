package git

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchesPattern reports whether name matches a single include pattern.
// A pattern of the form "*.ext" matches any name with that suffix. Any
// other pattern containing "*" is matched as a prefix wildcard, and a
// pattern without wildcards must equal the name exactly.
func MatchesPattern(name, pattern string) bool {
	if strings.HasPrefix(pattern, "*.") && strings.HasSuffix(name, pattern[1:]) {
		return true
	}
	if strings.Contains(pattern, "*") {
		expr := strings.ReplaceAll(pattern, ".", `\.`)
		expr = strings.ReplaceAll(expr, "*", ".*")
		re, err := regexp.Compile("^" + expr)
		if err != nil {
			return false
		}
		return re.MatchString(name)
	}
	return name == pattern
}

// FileFilter selects paths by include and exclude pattern lists.
type FileFilter struct {
	Include []string
	Exclude []string
}

// Active reports whether any pattern is configured.
func (f FileFilter) Active() bool {
	return len(f.Include) > 0 || len(f.Exclude) > 0
}

// Match reports whether path passes the filter. Exclude patterns are
// consulted first and an empty include list accepts every path.
func (f FileFilter) Match(path string) bool {
	p := strings.ReplaceAll(path, "\\", "/")

	for _, pattern := range f.Exclude {
		if matched, err := doublestar.Match(pattern, p); err == nil && matched {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, pattern := range f.Include {
		if MatchesPattern(p, pattern) {
			return true
		}
	}
	return false
}
