// Package wildcard implements SQL LIKE style name patterns used by table
// configuration entries. A '%' matches any run of characters (including none)
// and a '?' matches exactly one character. Every other character, including
// '_', matches itself.
package wildcard

import (
	"strings"

	"golang.org/x/text/cases"
)

const (
	// Any matches zero or more characters.
	Any = '%'
	// One matches exactly one character.
	One = '?'
)

// HasWildcard reports whether s contains a wildcard character and must be
// matched with Match instead of compared literally.
func HasWildcard(s string) bool {
	return strings.ContainsRune(s, Any) || strings.ContainsRune(s, One)
}

// Match reports whether candidate matches pattern.
//
// The scan keeps one pointer into each string. When a mismatch happens after a
// '%' was seen, the candidate pointer rolls back to one past the position the
// last '%' started matching from, and the pattern resumes right after it.
func Match(candidate, pattern string) bool {
	var (
		c, p = []rune(candidate), []rune(pattern)
		ci   int
		pi   int
		star = -1
		mark int
	)
	for ci < len(c) {
		switch {
		case pi < len(p) && p[pi] == Any:
			star, mark = pi, ci
			pi++
		case pi < len(p) && (p[pi] == One || p[pi] == c[ci]):
			ci++
			pi++
		case star >= 0:
			mark++
			ci, pi = mark, star+1
		default:
			return false
		}
	}
	for pi < len(p) && p[pi] == Any {
		pi++
	}
	return pi == len(p)
}

// MatchFold is like Match, but compares the Unicode case folded forms of
// candidate and pattern.
func MatchFold(candidate, pattern string) bool {
	return Match(cases.Fold().String(candidate), cases.Fold().String(pattern))
}
