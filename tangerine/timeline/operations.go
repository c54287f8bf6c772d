package timeline

import (
	"fmt"

	"github.com/phanxgames/lime"
	"github.com/phanxgames/lime/tangerine/core"
)

// SelectGridSpan appends a span to a row's GridSpanList.
type SelectGridSpan struct {
	row  int
	span GridSpan

	added bool
}

// NewSelectGridSpan creates a SelectGridSpan operation.
func NewSelectGridSpan(row int, span GridSpan) *SelectGridSpan {
	return &SelectGridSpan{row: row, span: span}
}

// PerformSelectGridSpan selects span on row and selects the row itself, as a
// single undo unit.
func PerformSelectGridSpan(doc *core.Document, row int, span GridSpan) {
	doc.History().Transaction(func() {
		doc.History().Perform(NewSelectGridSpan(row, span))
		core.PerformSelectRow(doc, mustRow(doc, row), true)
	})
}

func (op *SelectGridSpan) IsChangingDocument() bool { return false }

// Row returns the target row index.
func (op *SelectGridSpan) Row() int { return op.row }

// Span returns the selected span.
func (op *SelectGridSpan) Span() GridSpan { return op.span }

// DeselectGridSpan removes the first occurrence of a span from a row's
// GridSpanList. Removing a span that is not selected is a no-op.
type DeselectGridSpan struct {
	row  int
	span GridSpan

	index int
}

// NewDeselectGridSpan creates a DeselectGridSpan operation.
func NewDeselectGridSpan(row int, span GridSpan) *DeselectGridSpan {
	return &DeselectGridSpan{row: row, span: span}
}

// PerformDeselectGridSpan creates a DeselectGridSpan operation and performs
// it on doc.
func PerformDeselectGridSpan(doc *core.Document, row int, span GridSpan) {
	doc.History().Perform(NewDeselectGridSpan(row, span))
}

func (op *DeselectGridSpan) IsChangingDocument() bool { return false }

// ClearGridSpans empties the span list of every row.
type ClearGridSpans struct {
	cleared []clearedSpans
}

type clearedSpans struct {
	row   *core.Row
	spans []GridSpan
}

// NewClearGridSpans creates a ClearGridSpans operation.
func NewClearGridSpans() *ClearGridSpans {
	return &ClearGridSpans{}
}

// PerformClearGridSpans creates a ClearGridSpans operation and performs it on
// doc.
func PerformClearGridSpans(doc *core.Document) {
	doc.History().Perform(NewClearGridSpans())
}

func (op *ClearGridSpans) IsChangingDocument() bool { return false }

func mustRow(doc *core.Document, index int) *core.Row {
	r := doc.Row(index)
	if r == nil {
		panic(fmt.Sprintf("tangerine: row %d out of range [0,%d)", index, len(doc.Rows())))
	}
	return r
}

// Spans returns the spans selected on r, or nil.
func Spans(r *core.Row) []GridSpan {
	if l := lime.Get[GridSpanList](&r.Components); l != nil {
		return l.Spans
	}
	return nil
}

func init() {
	core.RegisterProcessor(
		func(doc *core.Document, op *SelectGridSpan) {
			r := mustRow(doc, op.row)
			var l *GridSpanList
			l, op.added = lime.Ensure[GridSpanList](&r.Components)
			l.Spans = append(l.Spans, op.span)
		},
		func(doc *core.Document, op *SelectGridSpan) {
			r := mustRow(doc, op.row)
			if op.added {
				lime.Remove[GridSpanList](&r.Components)
				return
			}
			l := lime.GetOrAdd[GridSpanList](&r.Components)
			if i := l.lastIndexOf(op.span); i >= 0 {
				l.removeAt(i)
			}
		},
	)
	core.RegisterProcessor(
		func(doc *core.Document, op *DeselectGridSpan) {
			op.index = -1
			l := lime.Get[GridSpanList](&mustRow(doc, op.row).Components)
			if l == nil {
				return
			}
			if op.index = l.indexOf(op.span); op.index >= 0 {
				l.removeAt(op.index)
			}
		},
		func(doc *core.Document, op *DeselectGridSpan) {
			if op.index < 0 {
				return
			}
			l := lime.GetOrAdd[GridSpanList](&mustRow(doc, op.row).Components)
			l.insertAt(op.index, op.span)
		},
	)
	core.RegisterProcessor(
		func(doc *core.Document, op *ClearGridSpans) {
			op.cleared = op.cleared[:0]
			for _, r := range doc.Rows() {
				l := lime.Get[GridSpanList](&r.Components)
				if l == nil || len(l.Spans) == 0 {
					continue
				}
				op.cleared = append(op.cleared, clearedSpans{row: r, spans: l.Spans})
				l.Spans = nil
			}
		},
		func(doc *core.Document, op *ClearGridSpans) {
			for _, c := range op.cleared {
				lime.GetOrAdd[GridSpanList](&c.row.Components).Spans = c.spans
			}
		},
	)
}
