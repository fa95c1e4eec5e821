package filter

import (
	"fmt"
	"unicode/utf8"
)

// Match reports whether path matches pattern using find -path semantics:
// fnmatch(3) without FNM_PATHNAME, so * ? and [...] all match '/'.
func Match(pattern, path string) (bool, error) {
	if err := validate(pattern); err != nil {
		return false, err
	}

	return match([]rune(pattern), []rune(path)), nil
}

// Matcher holds validated patterns for reuse across many paths.
type Matcher struct {
	patterns [][]rune
}

// NewMatcher validates the given patterns into a reusable matcher.
func NewMatcher(patterns []string) (*Matcher, error) {
	matcher := &Matcher{patterns: make([][]rune, 0, len(patterns))}

	for _, p := range patterns {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}

		matcher.patterns = append(matcher.patterns, []rune(p))
	}

	return matcher, nil
}

// MatchAny reports whether path matches any of the patterns.
func (m *Matcher) MatchAny(path string) bool {
	name := []rune(path)

	for _, p := range m.patterns {
		if match(p, name) {
			return true
		}
	}

	return false
}

// match is the usual single-star backtracking glob matcher. On a mismatch it
// resumes after the most recent '*', letting that star absorb one more rune.
func match(pattern, name []rune) bool {
	var (
		px, nx         int
		starPx, starNx = -1, 0
	)

	for px < len(pattern) || nx < len(name) {
		if px < len(pattern) {
			switch pattern[px] {
			case '*':
				starPx, starNx = px, nx+1
				px++

				continue
			case '?':
				if nx < len(name) {
					px++
					nx++

					continue
				}
			case '[':
				if nx < len(name) {
					if ok, width := matchClass(pattern[px:], name[nx]); ok {
						px += width
						nx++

						continue
					}
				}
			case '\\':
				if nx < len(name) && name[nx] == pattern[px+1] {
					px += 2
					nx++

					continue
				}
			default:
				if nx < len(name) && name[nx] == pattern[px] {
					px++
					nx++

					continue
				}
			}
		}

		if starPx >= 0 && starNx <= len(name) {
			px, nx = starPx+1, starNx
			starNx++

			continue
		}

		return false
	}

	return true
}

// matchClass matches r against the bracket expression at the start of class
// and returns the width of the expression in runes.
func matchClass(class []rune, r rune) (bool, int) {
	idx := 1

	negate := idx < len(class) && (class[idx] == '!' || class[idx] == '^')
	if negate {
		idx++
	}

	matched := false

	for first := true; class[idx] != ']' || first; first = false {
		lo := class[idx]
		if lo == '\\' {
			idx++
			lo = class[idx]
		}

		hi := lo

		if class[idx+1] == '-' && class[idx+2] != ']' {
			hi = class[idx+2]
			if hi == '\\' {
				idx++
				hi = class[idx+2]
			}

			idx += 2
		}

		if lo <= r && r <= hi {
			matched = true
		}

		idx++
	}

	return matched != negate, idx + 1
}

// validate rejects patterns the matcher cannot interpret, so match can index freely.
func validate(pattern string) error {
	if !utf8.ValidString(pattern) {
		return fmt.Errorf("invalid UTF-8 in pattern %q", pattern)
	}

	runes := []rune(pattern)

	for pos := 0; pos < len(runes); pos++ {
		switch runes[pos] {
		case '\\':
			if pos+1 >= len(runes) {
				return fmt.Errorf("trailing backslash in pattern %q", pattern)
			}

			pos++
		case '[':
			end, err := closingBracket(runes, pos)
			if err != nil {
				return fmt.Errorf("%w in pattern %q", err, pattern)
			}

			pos = end
		}
	}

	return nil
}

// closingBracket finds the index of the ] closing the class that starts at pos.
// A ] directly after [ or [! is a literal member.
func closingBracket(runes []rune, pos int) (int, error) {
	idx := pos + 1

	if idx < len(runes) && (runes[idx] == '!' || runes[idx] == '^') {
		idx++
	}

	if idx < len(runes) && runes[idx] == ']' {
		idx++
	}

	for ; idx < len(runes); idx++ {
		switch runes[idx] {
		case '\\':
			idx++
		case ']':
			return idx, nil
		}
	}

	return 0, fmt.Errorf("unclosed character class")
}
