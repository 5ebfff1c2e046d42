package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mockingbird/internal/engine"
	"github.com/roach88/mockingbird/internal/ir"
)

// useMemFs swaps AppFs for the duration of the test.
func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	orig := AppFs
	fs := afero.NewMemMapFs()
	AppFs = fs
	t.Cleanup(func() { AppFs = orig })
	return fs
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"opts.yaml": FormatYAML,
		"opts.YML":  FormatYAML,
		"opts.json": FormatJSON,
	}
	for path, want := range tests {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got)
	}

	_, err := FormatOf("opts.toml")
	assert.ErrorContains(t, err, ".toml")
}

const optionsYAML = `
exclude: [user.nickname]
rules:
  - path: user.age
    min: 30
    max: 40
  - path: "**.code"
    pattern: "^[A-Z]{3}$"
required_only: false
accurate: false
relations:
  user.id: [posts.authorId]
add_type_name: true
scalars:
  Email:
    type: string
    default: a@b.c
`

func TestDecodeOptionsYAML(t *testing.T) {
	o, err := DecodeOptions([]byte(optionsYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, []string{"user.nickname"}, o.Exclude)
	require.Len(t, o.Rules, 2)
	assert.Equal(t, 30.0, *o.Rules[0].Min)
	assert.Equal(t, []string{"posts.authorId"}, o.Relations["user.id"])
	assert.False(t, *o.Accurate)
	assert.True(t, *o.AddTypeName)
	assert.Nil(t, o.IgnoreCustomScalars)

	opts, err := o.EngineOptions()
	require.NoError(t, err)

	resolved := engine.NewRegistry().Snapshot(opts...)
	assert.Equal(t, []string{"user.nickname"}, resolved.Exclude)
	assert.False(t, resolved.Accurate)
	assert.True(t, resolved.AddTypeName)
	require.Len(t, resolved.Rules, 2)
	assert.True(t, resolved.Rules[1].Pattern.MatchString("ABC"))
	assert.Equal(t, ir.TypeString, resolved.ScalarDefinitions["Email"].Type)
	assert.Equal(t, "a@b.c", resolved.ScalarDefinitions["Email"].Default)
}

func TestDecodeOptionsJSON(t *testing.T) {
	o, err := DecodeOptions([]byte(`{"exclude": ["a.b"], "required_only": true}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.b"}, o.Exclude)
	assert.True(t, *o.RequiredOnly)
}

func TestDecodeOptionsRejectsUnknownKeys(t *testing.T) {
	_, err := DecodeOptions([]byte("exclud: [a]\n"), FormatYAML)
	assert.Error(t, err)

	_, err = DecodeOptions([]byte(`{"exclud": ["a"]}`), FormatJSON)
	assert.Error(t, err)
}

func TestDecodeOptionsEmpty(t *testing.T) {
	o, err := DecodeOptions(nil, FormatYAML)
	require.NoError(t, err)
	opts, err := o.EngineOptions()
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestEngineOptionsErrors(t *testing.T) {
	o := &Options{Rules: []Rule{{Path: "a", Pattern: "("}}}
	_, err := o.EngineOptions()
	assert.ErrorContains(t, err, `rule "a"`)

	o = &Options{Scalars: map[string]ScalarConfig{"Money": {Type: "decimal"}}}
	_, err = o.EngineOptions()
	assert.ErrorContains(t, err, `scalar "Money"`)
}

func TestDecodeOverridesYAML(t *testing.T) {
	doc := `
user.name: Ada
user.age: 36
user.nickname: !undefined
user.bio: null
posts.tags: [go, cue]
user.deleted: {"$undefined": true}
`
	o, err := DecodeOverrides([]byte(doc), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "Ada", o["user.name"])
	assert.Equal(t, 36, o["user.age"])
	assert.True(t, ir.IsUndefined(o["user.nickname"]))
	assert.True(t, ir.IsUndefined(o["user.deleted"]))
	assert.Contains(t, o, "user.bio")
	assert.Nil(t, o["user.bio"])
	assert.Equal(t, []any{"go", "cue"}, o["posts.tags"])
}

func TestDecodeOverridesJSON(t *testing.T) {
	o, err := DecodeOverrides([]byte(`{"a": "x", "b": {"$undefined": true}, "c": {"$undefined": true, "d": 1}}`), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "x", o["a"])
	assert.True(t, ir.IsUndefined(o["b"]))
	assert.False(t, ir.IsUndefined(o["c"]))
}

func TestDecodeOverridesRejectsNonMapping(t *testing.T) {
	_, err := DecodeOverrides([]byte("- a\n- b\n"), FormatYAML)
	assert.ErrorContains(t, err, "want a mapping")
}

func TestLoadFromAppFs(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "in/opts.yaml", []byte("exclude: [x]\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "in/over.json", []byte(`{"x": 1}`), 0o644))

	o, err := LoadOptions("in/opts.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, o.Exclude)

	over, err := LoadOverrides("in/over.json")
	require.NoError(t, err)
	assert.EqualValues(t, 1, over["x"])

	_, err = LoadOptions("in/missing.yaml")
	assert.ErrorContains(t, err, "read in/missing.yaml")
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, WriteFile("out/deep/fixture.json", []byte("{}")))

	data, err := afero.ReadFile(fs, "out/deep/fixture.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestLoadSettingsDefaults(t *testing.T) {
	useMemFs(t)
	s, err := LoadSettings(NewViper("/project"))
	require.NoError(t, err)

	assert.Equal(t, uint64(0), s.Seed)
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, "text", s.Format)
	assert.True(t, s.Accurate)
}

func TestLoadSettingsFromFileAndEnv(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "/project/.mockingbird.yaml", []byte("seed: 7\ncount: 3\nroot: \"#User\"\n"), 0o644))
	t.Setenv("MOCKINGBIRD_COUNT", "5")

	s, err := LoadSettings(NewViper("/project"))
	require.NoError(t, err)

	assert.Equal(t, uint64(7), s.Seed)
	assert.Equal(t, 5, s.Count, "environment wins over the file")
	assert.Equal(t, "#User", s.Root)
}

func TestLoadSettingsRejectsNegativeCount(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "/p/.mockingbird.yaml", []byte("count: -1\n"), 0o644))

	_, err := LoadSettings(NewViper("/p"))
	assert.ErrorContains(t, err, "non-negative")
}
