package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/mockingbird/internal/ir"
)

// Snapshot captures the fixtures of a scenario execution.
type Snapshot struct {
	ScenarioName string
	Seed         uint64
	Fixtures     []map[string]any
}

// toCanonicalMap converts a Snapshot to a map[string]any for canonical JSON
// serialization.
func (s *Snapshot) toCanonicalMap() map[string]any {
	fixtures := make([]any, len(s.Fixtures))
	for i, f := range s.Fixtures {
		fixtures[i] = f
	}
	return map[string]any{
		"scenario_name": s.ScenarioName,
		"seed":          s.Seed,
		"fixtures":      fixtures,
	}
}

// RunWithGolden executes a scenario and compares its fixtures against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can still check expectations. Test
// failure (via goldie) occurs if the fixtures don't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, scenario.EffectiveSeed(), result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's fixtures against a golden
// file without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, seed uint64, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenarioName, seed, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}

// MarshalSnapshot renders a result's fixtures as the canonical JSON stored
// in golden files.
func MarshalSnapshot(scenarioName string, seed uint64, result *Result) ([]byte, error) {
	snapshot := Snapshot{
		ScenarioName: scenarioName,
		Seed:         seed,
		Fixtures:     result.Fixtures,
	}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}
