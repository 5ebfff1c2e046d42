package resolve

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mockingbird/internal/ir"
)

func TestOverride_NoMatch(t *testing.T) {
	v, found, err := Override("user.name", ir.Overrides{"user.age": 3})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, v)

	_, found, err = Override("user.name", nil)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOverride_SingleMatch(t *testing.T) {
	v, found, err := Override("user.name", ir.Overrides{"user.*": "Ada", "post.title": "x"})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Ada", v)
}

func TestOverride_UndefinedIsFound(t *testing.T) {
	v, found, err := Override("user.name", ir.Overrides{"user.name": ir.Undefined})
	require.NoError(t, err)
	assert.True(t, found, "explicit undefined differs from a missing key")
	assert.True(t, ir.IsUndefined(v))
}

func TestOverride_NilIsFound(t *testing.T) {
	v, found, err := Override("user.name", ir.Overrides{"user.name": nil})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Nil(t, v)
}

func TestOverride_Ambiguous(t *testing.T) {
	_, _, err := Override("a.x.name", ir.Overrides{"a.*.name": 1, "a.**.name": 2, "b": 3})
	require.Error(t, err)

	var ae *AmbiguousOverrideError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "a.x.name", ae.Path)
	assert.Equal(t, []string{"a.**.name", "a.*.name"}, ae.Keys)
	assert.True(t, IsAmbiguous(err))
	assert.Equal(t, ir.ErrCodeAmbiguousOverride, ae.ErrorCode())
}

func TestFindRule(t *testing.T) {
	rules := []ir.Rule{
		{Path: "user.age", Constraints: ir.Constraints{Min: ir.Float(18)}},
		{Path: "post.*", Constraints: ir.Constraints{Size: ir.Int(3)}},
	}

	r, err := FindRule("post.title", rules)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "post.*", r.Path)
	assert.Equal(t, 3, *r.Size)

	r, err = FindRule("user.name", rules)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestFindRule_Ambiguous(t *testing.T) {
	rules := []ir.Rule{{Path: "a.*.name"}, {Path: "a.**.name"}}

	_, err := FindRule("a.x.name", rules)
	var ae *AmbiguousRuleError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, []string{"a.*.name", "a.**.name"}, ae.Patterns)

	// only the globstar reaches a deeper path
	r, err := FindRule("a.x.y.name", rules)
	require.NoError(t, err)
	assert.Equal(t, "a.**.name", r.Path)
}

func TestMerge_CallerTightens(t *testing.T) {
	schema := ir.Constraints{Min: ir.Float(18), Max: ir.Float(99)}

	merged, err := Merge("user.age", schema, ir.Constraints{Min: ir.Float(25), Max: ir.Float(30)})
	require.NoError(t, err)
	assert.Equal(t, 25.0, *merged.Min)
	assert.Equal(t, 30.0, *merged.Max)

	// schema untouched
	assert.Equal(t, 18.0, *schema.Min)
}

func TestMerge_Conflicts(t *testing.T) {
	tests := []struct {
		name   string
		schema ir.Constraints
		caller ir.Constraints
		field  ConflictField
	}{
		{
			name:   "lowered min",
			schema: ir.Constraints{Min: ir.Float(18), Max: ir.Float(99)},
			caller: ir.Constraints{Min: ir.Float(10)},
			field:  ConflictMin,
		},
		{
			name:   "raised max",
			schema: ir.Constraints{Min: ir.Float(18), Max: ir.Float(99)},
			caller: ir.Constraints{Max: ir.Float(120)},
			field:  ConflictMax,
		},
		{
			name:   "required made optional",
			schema: ir.Constraints{Required: ir.Bool(true)},
			caller: ir.Constraints{Required: ir.Bool(false)},
			field:  ConflictRequired,
		},
		{
			name:   "enum outside schema enum",
			schema: ir.Constraints{Enum: []any{"a", "b"}},
			caller: ir.Constraints{Enum: []any{"a", "z"}},
			field:  ConflictEnum,
		},
		{
			name:   "merged range empty",
			schema: ir.Constraints{Max: ir.Float(10)},
			caller: ir.Constraints{Min: ir.Float(20)},
			field:  ConflictRange,
		},
		{
			name:   "negative size",
			schema: ir.Constraints{},
			caller: ir.Constraints{Size: ir.Int(-1)},
			field:  ConflictSize,
		},
		{
			name:   "caller range inverted",
			schema: ir.Constraints{},
			caller: ir.Constraints{Min: ir.Float(5), Max: ir.Float(1)},
			field:  ConflictRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Merge("p", tt.schema, tt.caller)
			require.Error(t, err)

			var ce *ConstraintConflictError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
			assert.Equal(t, "p", ce.Path)
			assert.True(t, IsConstraintConflict(err))
			assert.Contains(t, err.Error(), "CONSTRAINT_CONFLICT")
		})
	}
}

func TestMerge_FieldByField(t *testing.T) {
	pat := regexp.MustCompile(`^[a-z]+$`)
	schema := ir.Constraints{
		Required: ir.Bool(true),
		Size:     ir.Int(4),
		Enum:     []any{1, 2, 3},
	}
	caller := ir.Constraints{
		Required: ir.Bool(true),
		Size:     ir.Int(2),
		Enum:     []any{2.0},
		Pattern:  pat,
	}

	merged, err := Merge("p", schema, caller)
	require.NoError(t, err)
	assert.True(t, merged.IsRequired())
	assert.Equal(t, 2, *merged.Size)
	assert.Equal(t, []any{2.0}, merged.Enum, "numeric enum values compare by value")
	assert.Same(t, pat, merged.Pattern)
}

func TestMerge_OptionalMadeRequired(t *testing.T) {
	merged, err := Merge("p", ir.Constraints{}, ir.Constraints{Required: ir.Bool(true)})
	require.NoError(t, err)
	assert.True(t, merged.IsRequired())
}

func TestMerge_EmptyCallerKeepsSchema(t *testing.T) {
	schema := ir.Constraints{Min: ir.Float(1), Enum: []any{"x"}}
	merged, err := Merge("p", schema, ir.Constraints{})
	require.NoError(t, err)
	assert.Equal(t, schema, merged)
}

func TestFindRelation(t *testing.T) {
	relations := ir.Relations{
		"variables.id": {"data.cart.id"},
		"data.user.id": {"data.posts.*.authorId", "data.comments.*.authorId"},
	}

	src, ok, err := FindRelation("data.cart.id", relations)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "variables.id", src)

	src, ok, err = FindRelation("data.comments.c1.authorId", relations)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "data.user.id", src)

	_, ok, err = FindRelation("data.user.id", relations)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindRelation_Ambiguous(t *testing.T) {
	relations := ir.Relations{
		"a.id": {"c.id"},
		"b.id": {"c.*"},
	}

	_, _, err := FindRelation("c.id", relations)
	var ae *AmbiguousRelationError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, []string{"a.id", "b.id"}, ae.Sources)
	assert.True(t, IsAmbiguous(err))
}
