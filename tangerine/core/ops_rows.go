package core

import "github.com/phanxgames/lime"

// SelectRow adds a row to, or removes it from, the row selection.
type SelectRow struct {
	row      *Row
	selected bool

	was   bool
	index int
}

// NewSelectRow creates a SelectRow operation.
func NewSelectRow(row *Row, selected bool) *SelectRow {
	if row == nil {
		panic("tangerine: SelectRow needs a row")
	}
	return &SelectRow{row: row, selected: selected}
}

// PerformSelectRow creates a SelectRow operation and performs it on doc.
func PerformSelectRow(doc *Document, row *Row, selected bool) {
	doc.History().Perform(NewSelectRow(row, selected))
}

func (op *SelectRow) IsChangingDocument() bool { return false }

// ClearRowSelection deselects every row.
type ClearRowSelection struct {
	old []rowKey
}

// NewClearRowSelection creates a ClearRowSelection operation.
func NewClearRowSelection() *ClearRowSelection {
	return &ClearRowSelection{}
}

// PerformClearRowSelection creates a ClearRowSelection operation and performs
// it on doc.
func PerformClearRowSelection(doc *Document) {
	doc.History().Perform(NewClearRowSelection())
}

func (op *ClearRowSelection) IsChangingDocument() bool { return false }

// ExpandNode shows or hides the property rows of a node.
type ExpandNode struct {
	node   *lime.Node
	expand bool

	was bool
}

// NewExpandNode creates an ExpandNode operation.
func NewExpandNode(node *lime.Node, expand bool) *ExpandNode {
	if node == nil {
		panic("tangerine: ExpandNode needs a node")
	}
	return &ExpandNode{node: node, expand: expand}
}

// PerformExpandNode creates an ExpandNode operation and performs it on doc.
func PerformExpandNode(doc *Document, node *lime.Node, expand bool) {
	doc.History().Perform(NewExpandNode(node, expand))
}

func (op *ExpandNode) IsChangingDocument() bool { return false }

func setExpanded(n *lime.Node, expand bool) {
	if expand {
		lime.GetOrAdd[Expanded](&n.Components)
	} else {
		lime.Remove[Expanded](&n.Components)
	}
}

func init() {
	RegisterProcessor(
		func(doc *Document, op *SelectRow) {
			k := op.row.key()
			op.index = doc.selectionIndex(k)
			op.was = op.index >= 0
			switch {
			case op.selected && !op.was:
				doc.selected = append(doc.selected, k)
			case !op.selected && op.was:
				doc.selected = append(doc.selected[:op.index], doc.selected[op.index+1:]...)
			}
		},
		func(doc *Document, op *SelectRow) {
			k := op.row.key()
			switch {
			case op.selected && !op.was:
				doc.selected = doc.selected[:len(doc.selected)-1]
			case !op.selected && op.was:
				doc.selected = append(doc.selected, rowKey{})
				copy(doc.selected[op.index+1:], doc.selected[op.index:])
				doc.selected[op.index] = k
			}
		},
	)
	RegisterProcessor(
		func(doc *Document, op *ClearRowSelection) {
			op.old = append([]rowKey(nil), doc.selected...)
			doc.selected = nil
		},
		func(doc *Document, op *ClearRowSelection) {
			doc.selected = op.old
		},
	)
	RegisterProcessor(
		func(doc *Document, op *ExpandNode) {
			op.was = IsExpanded(op.node)
			setExpanded(op.node, op.expand)
			doc.invalidateRows()
		},
		func(doc *Document, op *ExpandNode) {
			setExpanded(op.node, op.was)
			doc.invalidateRows()
		},
	)
}
