package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mockingbird/internal/ir"
)

func TestStubGenerator_Sequence(t *testing.T) {
	g := NewStubGenerator()

	v, err := g.GenerateOne("name", ir.TypeString, ir.Constraints{}, true)
	require.NoError(t, err)
	assert.Equal(t, "name-1", v)

	v, err = g.GenerateOne("age", ir.TypeInt, ir.Constraints{}, true)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = g.GenerateOne("age", ir.TypeInt, ir.Constraints{Min: ir.Float(18)}, true)
	require.NoError(t, err)
	assert.Equal(t, 18, v)

	v, err = g.GenerateOne("color", ir.TypeString, ir.Constraints{Enum: []any{"red", "blue"}}, true)
	require.NoError(t, err)
	assert.Equal(t, "red", v)

	vals, err := g.GenerateMany("tags", ir.TypeString, 2, ir.Constraints{}, false)
	require.NoError(t, err)
	assert.Equal(t, []any{"tags-5", "tags-6"}, vals)

	calls := g.Calls()
	require.Len(t, calls, 5)
	assert.Equal(t, 2, calls[4].Count)
	assert.False(t, calls[4].Accurate)
}

func TestStubGenerator_Err(t *testing.T) {
	g := NewStubGenerator()
	g.Err = errors.New("boom")

	_, err := g.GenerateOne("x", ir.TypeString, ir.Constraints{}, false)
	assert.EqualError(t, err, "boom")
	_, err = g.GenerateMany("x", ir.TypeString, 1, ir.Constraints{}, false)
	assert.EqualError(t, err, "boom")
}

func TestNodeBuilders(t *testing.T) {
	s := NewSchema(
		Leaf("id", ir.TypeUUID, Required()),
		Object("items", []*ir.Node{
			Leaf("price", ir.TypeFloat, Bounds(0, 10)),
		}, Array(), TypeName("Item")),
	)

	root := s.Root()
	require.Len(t, root.Children, 2)

	id, ok := root.Child("id")
	require.True(t, ok)
	assert.True(t, id.Required)
	assert.True(t, id.IsLeaf())

	items, _ := root.Child("items")
	assert.True(t, items.Array)
	assert.Equal(t, "Item", items.TypeName)
	price, _ := items.Child("price")
	assert.Equal(t, 10.0, *price.Constraints.Max)
}
