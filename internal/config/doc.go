// Package config loads the files and settings that drive fixture
// generation from outside Go code.
//
// Three sources feed a generate call:
//   - an options file (exclude, rules, relations and switches), YAML or JSON
//   - an overrides file mapping patterns to literal values
//   - CLI settings from .mockingbird.yaml and MOCKINGBIRD_* variables
//
// All file access goes through AppFs so tests can swap in an in-memory
// filesystem.
package config
