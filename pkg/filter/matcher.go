// Package filter decides which files of a source tree are included in the
// generated document. A PatternSet holds allow and deny glob lists loaded from
// one or more profiles; deny always wins over allow and an empty allow list
// admits nothing.
package filter

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PatternSet is the immutable allow/deny rule set for one run.
type PatternSet struct {
	allow []string
	deny  []string
}

// NewPatternSet builds a PatternSet, dropping blank and duplicate patterns.
// Every pattern must be a valid glob.
func NewPatternSet(allow, deny []string) (PatternSet, error) {
	a, err := cleanPatterns(allow)
	if err != nil {
		return PatternSet{}, err
	}
	d, err := cleanPatterns(deny)
	if err != nil {
		return PatternSet{}, err
	}
	return PatternSet{allow: a, deny: d}, nil
}

// Allow returns a copy of the allow patterns.
func (ps PatternSet) Allow() []string { return append([]string(nil), ps.allow...) }

// Deny returns a copy of the deny patterns.
func (ps PatternSet) Deny() []string { return append([]string(nil), ps.deny...) }

// Allows reports whether relPath passes the set.
func (ps PatternSet) Allows(relPath string) bool {
	return IsAllowed(relPath, ps.allow, ps.deny)
}

// MatchedBy returns the first deny pattern matching relPath, or failing that
// the first allow pattern. The bool is true when the match came from deny.
func (ps PatternSet) MatchedBy(relPath string) (pattern string, denied bool) {
	p := NormalizePath(relPath)
	if m, ok := firstMatch(ps.deny, p); ok {
		return m, true
	}
	m, _ := firstMatch(ps.allow, p)
	return m, false
}

// IsAllowed returns false as soon as any deny pattern matches relPath, and
// otherwise true iff at least one allow pattern matches.
func IsAllowed(relPath string, allow, deny []string) bool {
	p := NormalizePath(relPath)
	if _, ok := firstMatch(deny, p); ok {
		return false
	}
	_, ok := firstMatch(allow, p)
	return ok
}

// NormalizePath converts relPath to the form patterns are matched against:
// forward slashes, no leading "./" or "/".
func NormalizePath(relPath string) string {
	p := filepath.ToSlash(relPath)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return strings.TrimPrefix(p, "/")
}

func firstMatch(patterns []string, path string) (string, bool) {
	for _, pattern := range patterns {
		// Patterns are validated on construction; raw slices passed to
		// IsAllowed may still be malformed and simply never match.
		if ok, err := doublestar.Match(anchor(pattern), path); err == nil && ok {
			return pattern, true
		}
	}
	return "", false
}

// anchor strips a leading "/" so "/build/**" means build/ at the root.
func anchor(pattern string) string {
	return strings.TrimPrefix(pattern, "/")
}

func cleanPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]struct{}, len(patterns))
	out := make([]string, 0, len(patterns))
	for _, raw := range patterns {
		p := strings.TrimSpace(raw)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		if !doublestar.ValidatePattern(anchor(p)) {
			return nil, &InvalidPatternError{Pattern: p}
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

// InvalidPatternError reports a pattern doublestar cannot parse.
type InvalidPatternError struct {
	Pattern string
}

func (e *InvalidPatternError) Error() string {
	return "invalid glob pattern: " + e.Pattern
}
