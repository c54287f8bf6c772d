package timeline

import (
	"testing"

	"github.com/phanxgames/lime"
	"github.com/phanxgames/lime/tangerine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc() *core.Document {
	return core.NewSampleDocument(core.WithDebug(true))
}

func TestSelectGridSpanUndoRedo(t *testing.T) {
	doc := newDoc()
	span := NewGridSpan(0, 5)

	PerformSelectGridSpan(doc, 2, span)
	require.Equal(t, []GridSpan{span}, Spans(doc.Row(2)))
	assert.True(t, doc.IsRowSelected(doc.Row(2)))

	doc.History().Undo()
	assert.Empty(t, Spans(doc.Row(2)))
	assert.False(t, doc.IsRowSelected(doc.Row(2)))

	doc.History().Redo()
	assert.Equal(t, []GridSpan{span}, Spans(doc.Row(2)))
	assert.True(t, doc.IsRowSelected(doc.Row(2)))
}

func TestSelectGridSpanIsOneUnit(t *testing.T) {
	doc := newDoc()
	PerformSelectGridSpan(doc, 1, NewGridSpan(3, 8))
	assert.Equal(t, 1, doc.History().Len())
	assert.False(t, doc.IsModified(), "span selection does not modify the document")
}

func TestSelectGridSpanUndoKeepsEarlierSpans(t *testing.T) {
	doc := newDoc()
	PerformSelectGridSpan(doc, 2, NewGridSpan(0, 5))
	PerformSelectGridSpan(doc, 2, NewGridSpan(10, 12))
	PerformSelectGridSpan(doc, 2, NewGridSpan(0, 5))

	doc.History().Undo()
	assert.Equal(t, []GridSpan{{0, 5}, {10, 12}}, Spans(doc.Row(2)))
}

func TestSelectGridSpanBadRowPanics(t *testing.T) {
	doc := newDoc()
	assert.Panics(t, func() { PerformSelectGridSpan(doc, 99, NewGridSpan(0, 1)) })
}

func TestDeselectGridSpan(t *testing.T) {
	doc := newDoc()
	PerformSelectGridSpan(doc, 0, NewGridSpan(0, 2))
	PerformSelectGridSpan(doc, 0, NewGridSpan(4, 6))
	PerformSelectGridSpan(doc, 0, NewGridSpan(8, 9))

	PerformDeselectGridSpan(doc, 0, NewGridSpan(4, 6))
	assert.Equal(t, []GridSpan{{0, 2}, {8, 9}}, Spans(doc.Row(0)))

	doc.History().Undo()
	assert.Equal(t, []GridSpan{{0, 2}, {4, 6}, {8, 9}}, Spans(doc.Row(0)))
}

func TestDeselectGridSpanAbsentIsNoOp(t *testing.T) {
	doc := newDoc()
	PerformDeselectGridSpan(doc, 0, NewGridSpan(0, 2))
	doc.History().Undo()
	assert.Nil(t, lime.Get[GridSpanList](&doc.Row(0).Components))
}

func TestClearGridSpans(t *testing.T) {
	doc := newDoc()
	PerformSelectGridSpan(doc, 0, NewGridSpan(0, 2))
	PerformSelectGridSpan(doc, 3, NewGridSpan(1, 4))

	PerformClearGridSpans(doc)
	assert.Empty(t, Spans(doc.Row(0)))
	assert.Empty(t, Spans(doc.Row(3)))

	doc.History().Undo()
	assert.Equal(t, []GridSpan{{0, 2}}, Spans(doc.Row(0)))
	assert.Equal(t, []GridSpan{{1, 4}}, Spans(doc.Row(3)))
}

func TestGridSpan(t *testing.T) {
	s := NewGridSpan(5, 0)
	assert.Equal(t, GridSpan{0, 5}, s)
	assert.Equal(t, 5, s.Len())
	assert.True(t, s.Contains(0))
	assert.True(t, s.Contains(4))
	assert.False(t, s.Contains(5))
	assert.Equal(t, "[0,5)", s.String())
}
