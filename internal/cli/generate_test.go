package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/mockingbird/internal/adapter/jsonschema"
	"github.com/roach88/mockingbird/internal/ir"
)

func TestGenerate_OverriddenFixtureGolden(t *testing.T) {
	out, _, err := execute(t, "generate", "testdata/user.cue",
		"--root", "#User",
		"--overrides", "testdata/overrides.yaml",
	)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "generate_overridden", []byte(out))
}

func TestGenerate_SeedIsDeterministic(t *testing.T) {
	args := []string{"generate", "testdata/user.cue", "--root", "#User", "--seed", "42", "--count", "3", "--format", "json"}

	first, _, err := execute(t, args...)
	require.NoError(t, err)
	second, _, err := execute(t, args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var result GenerateResult
	resp := decodeResponse(t, first, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, uint64(42), result.Seed)
	assert.Equal(t, 3, result.Count)
	require.Len(t, result.Fixtures, 3)
	require.Len(t, result.Digests, 3)
	assert.NotEqual(t, result.Digests[0], result.Digests[1])

	for i, f := range result.Fixtures {
		assert.Equal(t, ir.MustFixtureDigest(f), result.Digests[i])
		fixture := f.(map[string]any)
		assert.Contains(t, []any{"admin", "member"}, fixture["role"])
		age := fixture["age"].(float64)
		assert.GreaterOrEqual(t, age, 18.0)
		assert.LessOrEqual(t, age, 99.0)
		assert.Len(t, fixture["id"], 36)
		assert.Contains(t, fixture, "address")
	}
}

func TestGenerate_OptionsFile(t *testing.T) {
	out, _, err := execute(t, "generate", "testdata/user.cue",
		"--root", "#User",
		"--options", "testdata/options.yaml",
		"--seed", "3",
		"--count", "5",
		"--format", "json",
	)
	require.NoError(t, err)

	var result GenerateResult
	decodeResponse(t, out, &result)
	require.Len(t, result.Fixtures, 5)
	for _, f := range result.Fixtures {
		fixture := f.(map[string]any)
		assert.NotContains(t, fixture, "nickname")
		assert.Len(t, fixture["tags"], 2)
		age := fixture["age"].(float64)
		assert.GreaterOrEqual(t, age, 30.0)
		assert.LessOrEqual(t, age, 40.0)
	}
}

func TestGenerate_RequiredOnlyFlag(t *testing.T) {
	out, _, err := execute(t, "generate", "testdata/user.cue",
		"--root", "#User", "--required-only", "--seed", "8", "--count", "4", "--format", "json")
	require.NoError(t, err)

	var result GenerateResult
	decodeResponse(t, out, &result)
	for _, f := range result.Fixtures {
		fixture := f.(map[string]any)
		assert.NotContains(t, fixture, "nickname")
		assert.NotContains(t, fixture["address"], "zip")
	}
}

func TestGenerate_ConstraintConflict(t *testing.T) {
	out, stderr, err := execute(t, "generate", "testdata/user.cue",
		"--root", "#User", "--options", "testdata/conflict.yaml")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [CONSTRAINT_CONFLICT]")
	assert.Empty(t, stderr)
}

func TestGenerate_ConstraintConflictJSON(t *testing.T) {
	out, _, err := execute(t, "generate", "testdata/user.cue",
		"--root", "#User", "--options", "testdata/conflict.yaml", "--format", "json")
	require.Error(t, err)

	resp := decodeResponse(t, out, nil)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CONSTRAINT_CONFLICT", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "age")
}

func TestGenerate_JSONSchema(t *testing.T) {
	out, _, err := execute(t, "generate", "testdata/user.schema.json", "--seed", "9", "--count", "4", "--format", "json")
	require.NoError(t, err)

	var result GenerateResult
	decodeResponse(t, out, &result)
	require.Len(t, result.Fixtures, 4)

	data, err := os.ReadFile("testdata/user.schema.json")
	require.NoError(t, err)
	schema, err := jsonschema.Parse(data)
	require.NoError(t, err)
	for _, f := range result.Fixtures {
		assert.NoError(t, schema.Validate(f))
		fixture := f.(map[string]any)
		assert.Len(t, fixture["roles"], 2)
	}
}

func TestGenerate_GraphQLOperation(t *testing.T) {
	out, _, err := execute(t, "generate", "testdata/schema.graphql",
		"--query", "testdata/get_user.graphql",
		"--options", "testdata/gql_options.yaml",
		"--seed", "4",
		"--format", "json",
	)
	require.NoError(t, err)

	var result GenerateResult
	decodeResponse(t, out, &result)
	require.Len(t, result.Fixtures, 1)

	fixture := result.Fixtures[0].(map[string]any)
	variables := fixture["variables"].(map[string]any)
	user := fixture["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, variables["id"], user["id"], "relation copies the variable into the response")
	assert.Contains(t, []any{"ACTIVE", "SUSPENDED"}, user["status"])
	assert.IsType(t, float64(0), user["balance"])
	assert.Len(t, user["friends"], 1)
}

func TestGenerate_GraphQLNeedsQuery(t *testing.T) {
	out, _, err := execute(t, "generate", "testdata/schema.graphql")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E004]")
}

func TestGenerate_CommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"unknown extension", []string{"generate", "schema.txt"}, ErrCodeUnknownKind},
		{"missing schema", []string{"generate", "testdata/missing.cue"}, ErrCodeNotFound},
		{"missing overrides", []string{"generate", "testdata/user.cue", "--root", "#User", "--overrides", "testdata/nope.yaml"}, ErrCodeNotFound},
		{"bad overrides extension", []string{"generate", "testdata/user.cue", "--root", "#User", "--overrides", "testdata/user.cue"}, ErrCodeBadInput},
		{"unknown root", []string{"generate", "testdata/user.cue", "--root", "#Nope"}, ErrCodeSchema},
		{"negative count", []string{"generate", "testdata/user.cue", "--count=-1"}, ErrCodeBadInput},
		{"bad output extension", []string{"generate", "testdata/user.cue", "--root", "#User", "--output", "out.txt"}, ErrCodeBadInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, append(tt.args, "--format", "json")...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			resp := decodeResponse(t, out, nil)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestGenerate_Flat(t *testing.T) {
	out, _, err := execute(t, "generate", "testdata/user.cue",
		"--root", "#User", "--overrides", "testdata/overrides.yaml", "--flat")
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &flat))
	assert.Equal(t, "London", flat["address.city"])
	assert.Equal(t, "engines", flat["tags.1"])
	assert.NotContains(t, flat, "address")
}

func TestGenerate_OutputFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		target := filepath.Join(dir, "out", "users.json")
		out, _, err := execute(t, "generate", "testdata/user.cue",
			"--root", "#User", "--overrides", "testdata/overrides.yaml", "--count", "2", "--output", target)
		require.NoError(t, err)
		assert.Contains(t, out, "wrote 2 fixture(s) to "+target)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		var fixtures []map[string]any
		require.NoError(t, json.Unmarshal(data, &fixtures))
		require.Len(t, fixtures, 2)
		assert.Equal(t, "Ada Lovelace", fixtures[1]["name"])
	})

	t.Run("yaml", func(t *testing.T) {
		target := filepath.Join(dir, "user.yaml")
		out, _, err := execute(t, "generate", "testdata/user.cue",
			"--root", "#User", "--overrides", "testdata/overrides.yaml", "--output", target, "--format", "json")
		require.NoError(t, err)

		var result GenerateResult
		decodeResponse(t, out, &result)
		assert.Equal(t, target, result.Output)
		assert.Empty(t, result.Fixtures)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		var fixture map[string]any
		require.NoError(t, yaml.Unmarshal(data, &fixture))
		assert.Equal(t, 36, fixture["age"])
	})
}

func TestGenerate_SettingsFile(t *testing.T) {
	configDir := t.TempDir()
	writeFile(t, configDir, ".mockingbird.yaml", "seed: 5\ncount: 2\nroot: \"#User\"\nformat: json\n")

	out, _, err := executeIn(t, configDir, "generate", "testdata/user.cue")
	require.NoError(t, err)

	var result GenerateResult
	decodeResponse(t, out, &result)
	assert.Equal(t, uint64(5), result.Seed)
	assert.Len(t, result.Fixtures, 2)

	out, _, err = executeIn(t, configDir, "generate", "testdata/user.cue", "--count", "1", "--format", "json")
	require.NoError(t, err)
	decodeResponse(t, out, &result)
	assert.Len(t, result.Fixtures, 1, "flags win over settings")
}

func TestGenerate_VerboseLogsToStderr(t *testing.T) {
	out, stderr, err := execute(t, "generate", "testdata/user.cue", "--root", "#User", "--seed", "1", "--format", "json", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Generating 1 fixture(s)")
	assert.Contains(t, stderr, "generating fixture")

	decodeResponse(t, out, &GenerateResult{})
}
