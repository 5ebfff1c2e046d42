// Package pathmatch matches dotted field paths against glob-style patterns.
//
// A path is a sequence of field names joined by "." (for example
// "cart.items.price"). A pattern uses the same grammar but its segments may
// contain wildcards:
//
//   - "*" matches one whole segment, or the remaining characters of a
//     segment ("field.is*" matches "field.isActive")
//   - "**" matches zero or more whole segments ("a.**.c" matches "a.c" and
//     "a.b.d.c")
//   - "?" matches exactly one character inside a segment
//
// Matching is anchored and case sensitive; "*" and "?" never cross a
// delimiter. FindAll returns every matching pattern and leaves the "at most
// one match" policy to the callers in package resolve.
package pathmatch
