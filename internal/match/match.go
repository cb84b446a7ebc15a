// Package match evaluates ignore patterns against relative paths.
package match

import (
	"strings"

	"github.com/danwakefield/fnmatch"
)

const (
	// NegationPrefix marks a pattern whose match forces inclusion.
	NegationPrefix = "!"

	pathSegmentSeparator = "/"
)

// ShouldIgnore reports whether the relative path is excluded by the ordered
// pattern list. Patterns are evaluated in reverse declaration order and the
// first match decides the outcome, so the last-declared matching rule wins.
// A pattern prefixed with "!" negates: its match forces inclusion regardless
// of earlier ignore rules. Directory paths must carry a trailing separator
// so that directory-only patterns (ending in "/") match correctly; callers
// that know the entry is a directory can rely on the separator being
// appended here. Globs use shell wildcard semantics applied to the whole
// relative path. No match among any pattern means the path is not ignored.
func ShouldIgnore(relativePath string, isDirectory bool, ignorePatterns []string) bool {
	normalizedPath := strings.ReplaceAll(relativePath, "\\", pathSegmentSeparator)
	if isDirectory && !strings.HasSuffix(normalizedPath, pathSegmentSeparator) {
		normalizedPath += pathSegmentSeparator
	}

	for patternIndex := len(ignorePatterns) - 1; patternIndex >= 0; patternIndex-- {
		patternValue := strings.ReplaceAll(ignorePatterns[patternIndex], "\\", pathSegmentSeparator)
		isNegation := strings.HasPrefix(patternValue, NegationPrefix)
		if isNegation {
			patternValue = strings.TrimPrefix(patternValue, NegationPrefix)
		}
		if patternValue == "" {
			continue
		}
		if matchesPattern(patternValue, normalizedPath) {
			return !isNegation
		}
	}
	return false
}

// matchesPattern applies one glob to the candidate path. A candidate with a
// trailing separator additionally matches patterns written without one, so
// a bare name pattern still excludes the directory of that name.
func matchesPattern(patternValue string, candidatePath string) bool {
	if fnmatch.Match(patternValue, candidatePath, 0) {
		return true
	}
	if !strings.HasSuffix(patternValue, pathSegmentSeparator) && strings.HasSuffix(candidatePath, pathSegmentSeparator) {
		trimmedCandidate := strings.TrimSuffix(candidatePath, pathSegmentSeparator)
		return fnmatch.Match(patternValue, trimmedCandidate, 0)
	}
	return false
}
