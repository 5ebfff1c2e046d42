package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/mockingbird/internal/config"
	"github.com/roach88/mockingbird/internal/ir"
)

// Scenario defines an end-to-end generation case.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Schema is inline CUE source.
	Schema string `yaml:"schema"`

	// Root selects the CUE value to generate from, e.g. "#User".
	// Empty means the whole schema.
	Root string `yaml:"root,omitempty"`

	// Seed seeds the generator. Zero is replaced by DefaultSeed so
	// scenarios stay deterministic.
	Seed uint64 `yaml:"seed,omitempty"`

	// Count is the number of fixtures to generate (default 1).
	Count int `yaml:"count,omitempty"`

	// Overrides maps patterns to literal values. The !undefined tag forces
	// absence.
	Overrides yaml.Node `yaml:"overrides,omitempty"`

	// Options are applied to every generate call.
	Options *config.Options `yaml:"options,omitempty"`

	// Expect holds the properties every fixture must have.
	Expect Expect `yaml:"expect"`
}

// Expect specifies the expected outcome.
type Expect struct {
	// Error is the expected error code. When set, generation must fail
	// with exactly this code and the other fields are ignored.
	Error ir.ErrorCode `yaml:"error,omitempty"`

	// Values maps flattened paths to exact values.
	Values map[string]any `yaml:"values,omitempty"`

	// Absent lists paths that must not appear in the fixture.
	Absent []string `yaml:"absent,omitempty"`

	// Present lists paths that must appear, with any value.
	Present []string `yaml:"present,omitempty"`

	// Ranges maps flattened paths to inclusive numeric bounds.
	Ranges map[string]Range `yaml:"ranges,omitempty"`

	// OneOf maps flattened paths to the set of allowed values.
	OneOf map[string][]any `yaml:"one_of,omitempty"`

	// Same maps a flattened path to another path holding an equal value.
	Same map[string]string `yaml:"same,omitempty"`
}

// Range is an inclusive numeric bound. Either side may be omitted.
type Range struct {
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`
}

// DefaultSeed is used when a scenario leaves seed unset.
const DefaultSeed uint64 = 1

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// EffectiveSeed returns Seed, or DefaultSeed when Seed is zero.
func (s *Scenario) EffectiveSeed() uint64 {
	if s.Seed == 0 {
		return DefaultSeed
	}
	return s.Seed
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string)
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		if prev, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate scenario name %q (also in %s)", filepath.Base(p), s.Name, prev)
		}
		seen[s.Name] = filepath.Base(p)
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Schema == "" {
		return fmt.Errorf("schema is required")
	}
	if s.Count < 0 {
		return fmt.Errorf("count must be non-negative")
	}
	if s.Overrides.Kind != 0 && s.Overrides.Kind != yaml.MappingNode {
		return fmt.Errorf("overrides must be a mapping")
	}

	e := s.Expect
	if e.Error == "" && len(e.Values) == 0 && len(e.Absent) == 0 &&
		len(e.Present) == 0 && len(e.Ranges) == 0 && len(e.OneOf) == 0 && len(e.Same) == 0 {
		return fmt.Errorf("expect must name an error or at least one property")
	}
	for path, r := range e.Ranges {
		if r.Min == nil && r.Max == nil {
			return fmt.Errorf("expect.ranges[%s]: min or max is required", path)
		}
	}
	for path, vals := range e.OneOf {
		if len(vals) == 0 {
			return fmt.Errorf("expect.one_of[%s]: must be non-empty", path)
		}
	}
	return nil
}
