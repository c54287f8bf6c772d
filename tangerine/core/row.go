package core

import (
	"github.com/google/uuid"
	"github.com/phanxgames/lime"
)

type rowKey struct {
	node     uuid.UUID
	property string
}

// Row is one timeline track. A node row has an empty Property; a property
// row is bound to one animator of its node. Rows own their components, and
// a row for the same (node, property) pair is reused every time the row list
// is rebuilt, so components attached by the timeline survive.
type Row struct {
	Node       *lime.Node
	Property   string
	Components lime.Components

	index int
}

// Index returns the row position in the last built row list, or -1 if the
// row is not in it.
func (r *Row) Index() int { return r.index }

// IsPropertyRow reports whether the row is bound to an animator.
func (r *Row) IsPropertyRow() bool { return r.Property != "" }

// Caption returns the text shown in the row header.
func (r *Row) Caption() string {
	if r.Property != "" {
		return r.Property
	}
	return r.Node.Id
}

func (r *Row) key() rowKey {
	return rowKey{node: r.Node.GUID, property: r.Property}
}

// Expanded marks a node whose property rows are shown in the timeline.
type Expanded struct{}

// IsExpanded reports whether n shows its property rows.
func IsExpanded(n *lime.Node) bool {
	return lime.Has[Expanded](&n.Components)
}

// Rows returns the timeline rows: every descendant of the root in depth-first
// order, each followed by one row per animator when the node is expanded.
// The list is rebuilt lazily after structural operations.
func (d *Document) Rows() []*Row {
	if d.rowsDirty {
		d.rebuildRows()
	}
	return d.rows
}

// Row returns the row at index, or nil when index is out of range.
func (d *Document) Row(index int) *Row {
	rows := d.Rows()
	if index < 0 || index >= len(rows) {
		return nil
	}
	return rows[index]
}

// RowFor returns the row of node, or of one of its animators when property
// is not empty. The row is created if needed, even if it is not visible.
func (d *Document) RowFor(node *lime.Node, property string) *Row {
	key := rowKey{node: node.GUID, property: property}
	r, ok := d.rowCache[key]
	if !ok {
		r = &Row{Node: node, Property: property, index: -1}
		d.rowCache[key] = r
	}
	return r
}

func (d *Document) invalidateRows() {
	d.rowsDirty = true
}

func (d *Document) rebuildRows() {
	for _, r := range d.rows {
		r.index = -1
	}
	d.rows = make([]*Row, 0, len(d.rows))
	for _, child := range d.root.Children() {
		child.Walk(func(n *lime.Node) bool {
			d.appendRow(d.RowFor(n, ""))
			if IsExpanded(n) {
				for _, prop := range n.Animators.Properties() {
					d.appendRow(d.RowFor(n, prop))
				}
			}
			return true
		})
	}
	d.rowsDirty = false
	d.publish(Event{Kind: EventRowsRebuilt})
}

func (d *Document) appendRow(r *Row) {
	r.index = len(d.rows)
	d.rows = append(d.rows, r)
}

// SelectedRows returns the selected rows that are in the current row list,
// in selection order.
func (d *Document) SelectedRows() []*Row {
	d.Rows()
	out := make([]*Row, 0, len(d.selected))
	for _, k := range d.selected {
		if r := d.rowCache[k]; r != nil && r.index >= 0 {
			out = append(out, r)
		}
	}
	return out
}

// IsRowSelected reports whether r is selected.
func (d *Document) IsRowSelected(r *Row) bool {
	return d.selectionIndex(r.key()) >= 0
}

func (d *Document) selectionIndex(k rowKey) int {
	for i, x := range d.selected {
		if x == k {
			return i
		}
	}
	return -1
}
