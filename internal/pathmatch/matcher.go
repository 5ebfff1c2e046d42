package pathmatch

import (
	"path"
	"regexp"
	"strings"

	"github.com/roach88/mockingbird/internal/ir"
)

// wellFormed accepts alphanumerics, underscore and the wildcard tokens,
// segments separated by the delimiter.
var wellFormed = regexp.MustCompile(`^[A-Za-z0-9_*?]+(?:\.[A-Za-z0-9_*?]+)*$`)

// globstar matches zero or more whole segments.
const globstar = "**"

// Matches reports whether path matches pattern.
//
// Examples:
//
//	Matches("foo.bar.baz", "foo.*.baz")      // true
//	Matches("foo.bar.qux.baz", "foo.*.baz")  // false
//	Matches("foo.bar.qux.baz", "foo.**.baz") // true
//	Matches("foo.baz", "foo.**.baz")         // true
//	Matches("field.isActive", "field.is*")   // true
func Matches(p ir.Path, pattern ir.Pattern) bool {
	if p == pattern {
		return true
	}
	if !hasWildcard(pattern) {
		return false
	}
	return matchSegments(split(p), split(pattern))
}

// FindAll returns every pattern that matches path, preserving input order.
func FindAll(p ir.Path, patterns []ir.Pattern) []ir.Pattern {
	var out []ir.Pattern
	for _, pat := range patterns {
		if Matches(p, pat) {
			out = append(out, pat)
		}
	}
	return out
}

// Exists reports whether any pattern matches path.
func Exists(p ir.Path, patterns []ir.Pattern) bool {
	for _, pat := range patterns {
		if Matches(p, pat) {
			return true
		}
	}
	return false
}

// IsWellFormed reports whether p satisfies the path/pattern grammar.
func IsWellFormed(p string) bool {
	return wellFormed.MatchString(p)
}

// ValidateAll returns a MalformedPathError for the first malformed entry.
// source labels the error ("override", "rule", ...).
func ValidateAll(source string, paths ...string) error {
	for _, p := range paths {
		if !IsWellFormed(p) {
			return &MalformedPathError{Path: p, Source: source}
		}
	}
	return nil
}

// Join appends child to parent. An empty parent yields child.
func Join(parent ir.Path, child string) ir.Path {
	if parent == "" {
		return child
	}
	return parent + ir.Delimiter + child
}

// LastSegment returns the field name at the end of a path.
func LastSegment(p ir.Path) string {
	if i := strings.LastIndex(p, ir.Delimiter); i >= 0 {
		return p[i+len(ir.Delimiter):]
	}
	return p
}

func hasWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?")
}

func split(p string) []string {
	if p == "" {
		return nil
	}
	return strings.Split(p, ir.Delimiter)
}

// matchSegments matches path segments against pattern segments. A globstar
// segment tries every possible split of the remaining path.
func matchSegments(segs, pats []string) bool {
	for len(pats) > 0 {
		if pats[0] == globstar {
			// collapse consecutive globstars
			for len(pats) > 0 && pats[0] == globstar {
				pats = pats[1:]
			}
			if len(pats) == 0 {
				return true
			}
			for i := 0; i <= len(segs); i++ {
				if matchSegments(segs[i:], pats) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 || !matchSegment(segs[0], pats[0]) {
			return false
		}
		segs, pats = segs[1:], pats[1:]
	}
	return len(segs) == 0
}

// matchSegment matches a single segment. Segments never contain "/", so
// path.Match gives exactly the "*" and "?" semantics needed here.
func matchSegment(seg, pat string) bool {
	if !hasWildcard(pat) {
		return seg == pat
	}
	ok, err := path.Match(pat, seg)
	return err == nil && ok
}
