package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/mockingbird/internal/ir"
)

// writeScenario writes content to dir/name and returns the path.
func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadScenario_ValidFile(t *testing.T) {
	dir := t.TempDir()
	p := writeScenario(t, dir, "user.yaml", `
name: user_basic
description: "Basic user scenario"
root: "#User"
seed: 9
count: 4
schema: |
  #User: {
  	name: string
  	age:  int & >=18
  }
overrides:
  name: Ada
options:
  exclude: [nickname]
expect:
  values:
    name: Ada
  ranges:
    age:
      min: 18
`)

	scenario, err := LoadScenario(p)
	require.NoError(t, err)

	assert.Equal(t, "user_basic", scenario.Name)
	assert.Equal(t, "Basic user scenario", scenario.Description)
	assert.Equal(t, "#User", scenario.Root)
	assert.Equal(t, uint64(9), scenario.Seed)
	assert.Equal(t, 4, scenario.Count)
	assert.Contains(t, scenario.Schema, "#User")
	assert.Equal(t, yaml.MappingNode, scenario.Overrides.Kind)
	require.NotNil(t, scenario.Options)
	assert.Equal(t, []string{"nickname"}, scenario.Options.Exclude)
	assert.Equal(t, "Ada", scenario.Expect.Values["name"])
	require.Contains(t, scenario.Expect.Ranges, "age")
	assert.InDelta(t, 18.0, *scenario.Expect.Ranges["age"].Min, 0)
	assert.Nil(t, scenario.Expect.Ranges["age"].Max)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_ExpectError(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: conflict
description: "Rule conflict"
schema: "age: int & >=18"
expect:
  error: CONSTRAINT_CONFLICT
`))
	require.NoError(t, err)
	assert.Equal(t, ir.ErrCodeConstraintConflict, scenario.Expect.Error)
	assert.Equal(t, yaml.Kind(0), scenario.Overrides.Kind)
	assert.Nil(t, scenario.Options)
}

func TestParseScenario_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
description: d
schema: "a: string"
expect: {present: [a]}
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: n
schema: "a: string"
expect: {present: [a]}
`,
			wantErr: "description is required",
		},
		{
			name: "missing schema",
			content: `
name: n
description: d
expect: {present: [a]}
`,
			wantErr: "schema is required",
		},
		{
			name: "negative count",
			content: `
name: n
description: d
schema: "a: string"
count: -1
expect: {present: [a]}
`,
			wantErr: "count must be non-negative",
		},
		{
			name: "overrides not a mapping",
			content: `
name: n
description: d
schema: "a: string"
overrides: [a, b]
expect: {present: [a]}
`,
			wantErr: "overrides must be a mapping",
		},
		{
			name: "empty expect",
			content: `
name: n
description: d
schema: "a: string"
expect: {}
`,
			wantErr: "expect must name an error or at least one property",
		},
		{
			name: "range without bounds",
			content: `
name: n
description: d
schema: "a: int"
expect:
  ranges:
    a: {}
`,
			wantErr: "expect.ranges[a]: min or max is required",
		},
		{
			name: "empty one_of",
			content: `
name: n
description: d
schema: "a: string"
expect:
  one_of:
    a: []
`,
			wantErr: "expect.one_of[a]: must be non-empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_UnknownField(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: n
description: d
schema: "a: string"
flow: []
expect: {present: [a]}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_InvalidYAML(t *testing.T) {
	_, err := ParseScenario([]byte("name: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenarios_SortedByFileName(t *testing.T) {
	dir := t.TempDir()
	body := `
description: d
schema: "a: string"
expect: {present: [a]}
`
	writeScenario(t, dir, "b.yaml", "name: second\n"+body)
	writeScenario(t, dir, "a.yaml", "name: first\n"+body)
	writeScenario(t, dir, "notes.txt", "ignored")

	scenarios, err := LoadScenarios(dir)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "first", scenarios[0].Name)
	assert.Equal(t, "second", scenarios[1].Name)
}

func TestLoadScenarios_DuplicateName(t *testing.T) {
	dir := t.TempDir()
	body := `
name: same
description: d
schema: "a: string"
expect: {present: [a]}
`
	writeScenario(t, dir, "a.yaml", body)
	writeScenario(t, dir, "b.yaml", body)

	_, err := LoadScenarios(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate scenario name "same"`)
	assert.Contains(t, err.Error(), "a.yaml")
}

func TestLoadScenarios_ReportsFile(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "broken.yaml", "name: x\n")

	_, err := LoadScenarios(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestLoadScenarios_Testdata(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	assert.NotEmpty(t, scenarios)
}
