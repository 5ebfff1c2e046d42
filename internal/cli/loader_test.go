package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mockingbird/internal/ir"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		path string
		want SchemaKind
	}{
		{"user.cue", KindCUE},
		{"schemas/user.json", KindJSONSchema},
		{"api.graphql", KindGraphQL},
		{"API.GQL", KindGraphQL},
		{"api.graphqls", KindGraphQL},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := KindOf(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := KindOf("user.proto")
	require.Error(t, err)
	assert.Equal(t, ErrCodeUnknownKind, loadErrorCode(err))
}

func TestLoadSchema(t *testing.T) {
	t.Run("cue", func(t *testing.T) {
		schema, err := LoadSchema(SchemaInput{Path: "testdata/user.cue", Root: "#User"})
		require.NoError(t, err)
		age, ok := schema.Root().Child("age")
		require.True(t, ok)
		assert.Equal(t, ir.TypeInt, age.Type)
	})

	t.Run("json schema", func(t *testing.T) {
		schema, err := LoadSchema(SchemaInput{Path: "testdata/user.schema.json"})
		require.NoError(t, err)
		_, ok := schema.Root().Child("email")
		assert.True(t, ok)
	})

	t.Run("graphql", func(t *testing.T) {
		schema, err := LoadSchema(SchemaInput{Path: "testdata/schema.graphql", Query: "testdata/get_user.graphql", Operation: "GetUser"})
		require.NoError(t, err)
		_, ok := schema.Root().Child("variables")
		assert.True(t, ok)
		_, ok = schema.Root().Child("data")
		assert.True(t, ok)
	})
}

func TestLoadSchema_Errors(t *testing.T) {
	dir := t.TempDir()
	brokenJSON := writeFile(t, dir, "broken.json", "{")
	brokenCUE := writeFile(t, dir, "broken.cue", "name: string &\n")

	tests := []struct {
		name string
		in   SchemaInput
		code string
	}{
		{"unknown kind", SchemaInput{Path: "user.xsd"}, ErrCodeUnknownKind},
		{"missing file", SchemaInput{Path: "testdata/none.cue"}, ErrCodeNotFound},
		{"cue syntax", SchemaInput{Path: brokenCUE}, ErrCodeSchema},
		{"unknown root", SchemaInput{Path: "testdata/user.cue", Root: "#Post"}, ErrCodeSchema},
		{"json syntax", SchemaInput{Path: brokenJSON}, ErrCodeSchema},
		{"graphql without query", SchemaInput{Path: "testdata/schema.graphql"}, ErrCodeQuery},
		{"graphql missing query file", SchemaInput{Path: "testdata/schema.graphql", Query: "testdata/none.graphql"}, ErrCodeNotFound},
		{"graphql unknown operation", SchemaInput{Path: "testdata/schema.graphql", Query: "testdata/get_user.graphql", Operation: "ListUsers"}, ErrCodeQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSchema(tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.code, loadErrorCode(err))
		})
	}
}

func TestLoadError_Position(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.cue", "#User: {\n\tname: string &\n}\n")

	_, err := LoadSchema(SchemaInput{Path: path, Root: "#User"})
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeSchema, loadErr.Code)
	if loadErr.Pos.IsValid() {
		assert.Contains(t, err.Error(), "broken.cue:")
	}
}

func TestLoadInputs(t *testing.T) {
	t.Run("empty paths", func(t *testing.T) {
		overrides, options, err := loadInputs("", "")
		require.NoError(t, err)
		assert.Empty(t, overrides)
		assert.Nil(t, options)
	})

	t.Run("yaml files", func(t *testing.T) {
		overrides, options, err := loadInputs("testdata/overrides.yaml", "testdata/options.yaml")
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", overrides["name"])
		assert.True(t, ir.IsUndefined(overrides["nickname"]))
		require.NotNil(t, options)
		assert.Equal(t, []string{"nickname"}, options.Exclude)
		assert.Len(t, options.Rules, 2)
	})

	t.Run("json overrides", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "overrides.json", `{"age": 40, "nickname": {"$undefined": true}}`)
		overrides, _, err := loadInputs(path, "")
		require.NoError(t, err)
		assert.EqualValues(t, 40, overrides["age"])
		assert.True(t, ir.IsUndefined(overrides["nickname"]))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "options.yaml", "rules: [\n")
		_, _, err := loadInputs("", path)
		require.Error(t, err)
		assert.Equal(t, ErrCodeBadInput, loadErrorCode(err))
	})

	t.Run("missing", func(t *testing.T) {
		_, _, err := loadInputs("testdata/none.yaml", "")
		require.Error(t, err)
		assert.Equal(t, ErrCodeNotFound, loadErrorCode(err))
	})
}

func TestLoadErrorCode_Foreign(t *testing.T) {
	assert.Equal(t, ErrCodeGeneric, loadErrorCode(assert.AnError))
}
