package auth

import "strings"

// Pattern matches request paths segment by segment. Two wildcard forms are
// supported: "*" matches exactly one segment, "**" matches any number of
// segments including none. Matching is left-to-right with no
// partial-segment wildcards.
type Pattern struct {
	raw      string
	segments []string
}

const (
	wildcardSegment  = "*"
	wildcardAnyDepth = "**"
	pathSeparator    = "/"
)

func CompilePattern(raw string) Pattern {
	return Pattern{
		raw:      raw,
		segments: splitPath(raw),
	}
}

func CompilePatterns(raw []string) []Pattern {
	patterns := make([]Pattern, 0, len(raw))
	for _, r := range raw {
		patterns = append(patterns, CompilePattern(r))
	}
	return patterns
}

func (p Pattern) String() string {
	return p.raw
}

func (p Pattern) Match(path string) bool {
	return matchSegments(p.segments, splitPath(path))
}

// MatchAny reports whether any pattern in the ordered list matches.
func MatchAny(patterns []Pattern, path string) bool {
	for _, p := range patterns {
		if p.Match(path) {
			return true
		}
	}
	return false
}

func matchSegments(pattern, path []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}

	if pattern[0] == wildcardAnyDepth {
		// "**" consumes zero or more path segments.
		for i := 0; i <= len(path); i++ {
			if matchSegments(pattern[1:], path[i:]) {
				return true
			}
		}
		return false
	}

	if len(path) == 0 {
		return false
	}

	if pattern[0] != wildcardSegment && pattern[0] != path[0] {
		return false
	}

	return matchSegments(pattern[1:], path[1:])
}

func splitPath(path string) []string {
	path = strings.Trim(path, pathSeparator)
	if path == "" {
		return nil
	}
	return strings.Split(path, pathSeparator)
}

// NormalizePath strips the deployment base path and any query string,
// yielding the canonical path used for allowlist and policy matching.
func NormalizePath(path, basePath string) string {
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}

	if basePath != "" && strings.HasPrefix(path, basePath) {
		path = path[len(basePath):]
	}

	if !strings.HasPrefix(path, pathSeparator) {
		path = pathSeparator + path
	}

	return path
}
