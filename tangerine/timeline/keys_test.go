package timeline

import (
	"testing"

	"github.com/phanxgames/lime"
	"github.com/phanxgames/lime/tangerine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectedKeysNodeRow(t *testing.T) {
	doc := newDoc()
	PerformSelectGridSpan(doc, 0, NewGridSpan(0, 6))

	keys := SelectedKeys(doc)
	// Position@0, Scale@5, Size@0.
	require.Len(t, keys, 3)
	for _, k := range keys {
		assert.Equal(t, "Image 00", k.Node.Id)
	}
}

func TestSelectedKeysPropertyRow(t *testing.T) {
	doc := newDoc()
	n := doc.Row(0).Node
	core.PerformExpandNode(doc, n, true)
	// Rows: 0 node, 1 Position, 2 Scale, 3 Size, 4 Rotation.
	require.Equal(t, lime.PropPosition, doc.Row(1).Property)

	PerformSelectGridSpan(doc, 1, NewGridSpan(0, 20))
	keys := SelectedKeys(doc)
	require.Len(t, keys, 5)
	for _, k := range keys {
		assert.Equal(t, lime.PropPosition, k.Property)
	}
}

func TestDeleteSelectedKeys(t *testing.T) {
	doc := newDoc()
	n := doc.Row(0).Node
	PerformSelectGridSpan(doc, 0, NewGridSpan(0, 6))

	removed := DeleteSelectedKeys(doc)
	assert.Equal(t, 3, removed)
	pos, _ := n.Animators.Get(lime.PropPosition)
	assert.False(t, pos.HasKey(0))

	doc.History().Undo()
	assert.True(t, pos.HasKey(0))
	assert.False(t, doc.IsModified())
}

func TestShiftSelectedKeys(t *testing.T) {
	doc := newDoc()
	n := doc.Row(0).Node
	PerformSelectGridSpan(doc, 0, NewGridSpan(50, 101))

	ShiftSelectedKeys(doc, 5)

	size := lime.AnimatorFor[lime.Vec2](n, lime.PropSize)
	assert.Equal(t, []int{0, 55, 105}, size.Frames())
	rot := lime.AnimatorFor[float64](n, lime.PropRotation)
	assert.Equal(t, []int{15, 65}, rot.Frames())

	doc.History().Undo()
	assert.Equal(t, []int{0, 50, 100}, size.Frames())
	assert.Equal(t, []int{15, 60}, rot.Frames())
}
