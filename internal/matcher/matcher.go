// Package matcher selects names (workbook sheets, overlay sections) by glob
// or regex pattern.
package matcher

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Glob uses shell-style glob patterns (*, ?, []).
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
	// Auto attempts to detect the pattern type.
	Auto
)

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// Matcher checks a single pattern. Matching is case-insensitive since sheet
// names are typed by hand.
type Matcher struct {
	pattern     string
	patternType PatternType
	glob        string
	compiled    *regexp.Regexp
}

// New compiles pattern.
func New(patternType PatternType, pattern string) (*Matcher, error) {
	m := &Matcher{pattern: pattern, patternType: patternType}
	if patternType == Auto {
		m.patternType = detectPatternType(pattern)
	}

	switch m.patternType {
	case Glob:
		m.glob = strings.ToLower(pattern)
		if _, err := filepath.Match(m.glob, ""); err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
	case Regex:
		expr := pattern
		if !strings.HasPrefix(expr, "(?i)") {
			expr = "(?i)" + expr
		}
		compiled, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		m.compiled = compiled
	default:
		return nil, fmt.Errorf("unsupported pattern type: %v", patternType)
	}
	return m, nil
}

// Match checks if the input matches the pattern.
func (m *Matcher) Match(input string) bool {
	if m.patternType == Regex {
		return m.compiled.MatchString(input)
	}
	matched, _ := filepath.Match(m.glob, strings.ToLower(strings.TrimSpace(input)))
	return matched
}

// Pattern returns the original pattern string.
func (m *Matcher) Pattern() string { return m.pattern }

// Type returns the pattern type being used.
func (m *Matcher) Type() PatternType { return m.patternType }

// detectPatternType treats a pattern carrying regex-only syntax as a regex
// and everything else as a glob.
func detectPatternType(pattern string) PatternType {
	for _, indicator := range []string{"^", "$", "\\d", "\\w", "\\s", "(?", "{", "}", "+", "|", "(", ")"} {
		if strings.Contains(pattern, indicator) {
			return Regex
		}
	}
	return Glob
}

// Set matches when any of its patterns matches. An empty set matches everything.
type Set []*Matcher

// Compile builds a Set from patterns, auto-detecting each pattern's type.
// Blank patterns are ignored.
func Compile(patterns ...string) (Set, error) {
	var set Set
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		m, err := New(Auto, p)
		if err != nil {
			return nil, err
		}
		set = append(set, m)
	}
	return set, nil
}

// Match reports whether input matches any pattern in the set.
func (s Set) Match(input string) bool {
	if len(s) == 0 {
		return true
	}
	for _, m := range s {
		if m.Match(input) {
			return true
		}
	}
	return false
}

// Filter returns the inputs that match, in order.
func (s Set) Filter(inputs ...string) []string {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if s.Match(in) {
			out = append(out, in)
		}
	}
	return out
}
