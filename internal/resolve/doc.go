// Package resolve applies the "at most one match" discipline to the pattern
// keyed inputs of a generation call (overrides, rules and relations) and
// reconciles schema constraints with caller rules.
//
// Every lookup returns an ambiguity error rather than picking a winner when
// more than one pattern matches a path. Merge lets caller rules tighten
// schema constraints but never loosen them.
package resolve
