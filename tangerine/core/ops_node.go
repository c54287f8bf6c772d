package core

import "github.com/phanxgames/lime"

// InsertNode inserts a node into a parent at an index. A node that already
// has a parent is moved; undo puts it back where it was.
type InsertNode struct {
	parent *lime.Node
	index  int
	node   *lime.Node

	oldParent *lime.Node
	oldIndex  int
}

// NewInsertNode creates an InsertNode operation.
// Panics if node or parent is nil.
func NewInsertNode(parent *lime.Node, index int, node *lime.Node) *InsertNode {
	if parent == nil || node == nil {
		panic("tangerine: InsertNode needs a parent and a node")
	}
	return &InsertNode{parent: parent, index: index, node: node}
}

// PerformInsertNode creates an InsertNode operation and performs it on doc.
func PerformInsertNode(doc *Document, parent *lime.Node, index int, node *lime.Node) {
	doc.History().Perform(NewInsertNode(parent, index, node))
}

func (op *InsertNode) IsChangingDocument() bool { return true }

// UnlinkNode detaches a node from its parent.
type UnlinkNode struct {
	node   *lime.Node
	parent *lime.Node
	index  int
}

// NewUnlinkNode creates an UnlinkNode operation.
// Panics if node has no parent.
func NewUnlinkNode(node *lime.Node) *UnlinkNode {
	if node == nil || node.Parent == nil {
		panic("tangerine: UnlinkNode needs a node with a parent")
	}
	return &UnlinkNode{node: node}
}

// PerformUnlinkNode creates an UnlinkNode operation and performs it on doc.
func PerformUnlinkNode(doc *Document, node *lime.Node) {
	doc.History().Perform(NewUnlinkNode(node))
}

func (op *UnlinkNode) IsChangingDocument() bool { return true }

func init() {
	RegisterProcessor(
		func(doc *Document, op *InsertNode) {
			op.oldParent = op.node.Parent
			if op.oldParent != nil {
				op.oldIndex = op.oldParent.IndexOf(op.node)
			}
			op.parent.InsertNode(op.index, op.node)
			doc.invalidateRows()
		},
		func(doc *Document, op *InsertNode) {
			op.node.Unlink()
			if op.oldParent != nil {
				op.oldParent.InsertNode(op.oldIndex, op.node)
			}
			doc.invalidateRows()
		},
	)
	RegisterProcessor(
		func(doc *Document, op *UnlinkNode) {
			op.parent = op.node.Parent
			op.index = op.parent.IndexOf(op.node)
			op.node.Unlink()
			doc.invalidateRows()
		},
		func(doc *Document, op *UnlinkNode) {
			op.parent.InsertNode(op.index, op.node)
			doc.invalidateRows()
		},
	)
}
