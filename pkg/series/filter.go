package series

import (
	"fmt"

	"github.com/gobwas/glob"
)

// maxFilterLength bounds the whole filter string, all patterns included.
const maxFilterLength = 200

// filterMatcher is a compiled, OR'd set of glob patterns.
type filterMatcher struct {
	globs []glob.Glob
}

// compileFilter validates and compiles a comma-separated glob filter.
// A nil result means "no filter": everything matches.
func compileFilter(filter string) (*filterMatcher, error) {
	if filter == "" {
		return nil, nil
	}

	if len(filter) > maxFilterLength {
		return nil, fmt.Errorf("%w: %d > %d", ErrFilterTooLong, len(filter), maxFilterLength)
	}

	if err := checkFilterSyntax(filter); err != nil {
		return nil, err
	}

	patterns := splitPatterns(filter)

	matcher := &filterMatcher{globs: make([]glob.Glob, 0, len(patterns))}

	for _, pattern := range patterns {
		if pattern == "" {
			return nil, ErrFilterEmptyClause
		}

		// '*' stays within one '/'-separated path segment; '{a,b}'
		// alternation is native glob syntax.
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrFilterSyntax, pattern)
		}

		matcher.globs = append(matcher.globs, g)
	}

	return matcher, nil
}

// Match reports whether any pattern matches the series path.
func (m *filterMatcher) Match(path string) bool {
	if m == nil {
		return true
	}

	for _, g := range m.globs {
		if g.Match(path) {
			return true
		}
	}

	return false
}

// checkFilterSyntax enforces the allowed character set and brace balance.
func checkFilterSyntax(filter string) error {
	depth := 0

	for _, r := range filter {
		switch {
		case r == '{':
			depth++
		case r == '}':
			depth--
			if depth < 0 {
				return ErrFilterBraces
			}
		case !isFilterRune(r):
			return fmt.Errorf("%w: %q", ErrFilterCharacter, r)
		}
	}

	if depth != 0 {
		return ErrFilterBraces
	}

	return nil
}

func isFilterRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	}

	switch r {
	case '_', '.', '*', ',', '/', '-':
		return true
	}

	return false
}

// splitPatterns splits on commas outside braces, so "{a,b}" alternation
// survives intact.
func splitPatterns(filter string) []string {
	var (
		patterns []string
		start    int
		depth    int
	)

	for i, r := range filter {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				patterns = append(patterns, filter[start:i])
				start = i + 1
			}
		}
	}

	return append(patterns, filter[start:])
}
