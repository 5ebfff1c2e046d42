package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mockingbird/internal/ir"
)

// Golden files live in testdata/golden. To regenerate:
//
//	go test ./internal/harness -run TestGolden -update

func TestGolden_OverridesFull(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/overrides_full.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Len(t, result.Fixtures, 2)
}

func TestGolden_TypeNames(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/type_names.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestSnapshot_CanonicalForm(t *testing.T) {
	s := Snapshot{
		ScenarioName: "snap",
		Seed:         7,
		Fixtures: []map[string]any{
			{"b": 2, "a": "x", "gone": ir.Undefined},
		},
	}
	data, err := ir.MarshalCanonical(s.toCanonicalMap())
	require.NoError(t, err)
	assert.Equal(t, `{"fixtures":[{"a":"x","b":2}],"scenario_name":"snap","seed":7}`, string(data))
}

func TestSnapshot_EmptyFixtures(t *testing.T) {
	s := Snapshot{ScenarioName: "none", Seed: 1}
	data, err := ir.MarshalCanonical(s.toCanonicalMap())
	require.NoError(t, err)
	assert.Equal(t, `{"fixtures":[],"scenario_name":"none","seed":1}`, string(data))
}
