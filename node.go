package lime

import (
	"github.com/google/uuid"
)

// Node is the fundamental scene graph element. A single flat struct is used
// for every node type; Type selects rendering behavior.
//
// Nodes own typed Components and one Animator per animated property. Editor
// code must not mutate nodes directly; it goes through operations that keep
// every change reversible.
type Node struct {
	// Identity
	GUID uuid.UUID
	Id   string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Animatable properties (see property.go)
	Position Vec2
	Scale    Vec2
	Size     Vec2
	Pivot    Vec2
	Rotation float64
	Opacity  float64
	Color    Color
	Visible  bool

	// Rendering
	BlendMode BlendMode
	Texture   *Texture

	Components Components
	Animators  Animators

	// Computed during traversal
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.GUID = uuid.New()
	n.Scale = Vec2{1, 1}
	n.Opacity = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
}

// NewWidget creates a group node with no visual representation.
func NewWidget(id string) *Node {
	n := &Node{Id: id, Type: NodeTypeWidget}
	nodeDefaults(n)
	return n
}

// NewFrame creates a frame node, the usual container for animated content.
func NewFrame(id string) *Node {
	n := &Node{Id: id, Type: NodeTypeFrame}
	nodeDefaults(n)
	return n
}

// NewImage creates an image node of the given size. A nil texture renders a
// solid quad tinted by Color.
func NewImage(id string, tex *Texture, size Vec2) *Node {
	n := &Node{Id: id, Type: NodeTypeImage, Texture: tex, Size: size}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddNode appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddNode(child *Node) {
	n.InsertNode(len(n.children), child)
}

// InsertNode inserts child at the given index.
// Same reparenting and cycle-check behavior as AddNode. When child is already
// a child of n, index refers to the list after child is taken out.
func (n *Node) InsertNode(index int, child *Node) {
	if child == nil {
		panic("lime: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "InsertNode (parent)")
		debugCheckDisposed(child, "InsertNode (child)")
	}
	if isAncestor(child, n) {
		panic("lime: adding child would create a cycle")
	}
	limit := len(n.children)
	if child.Parent == n {
		limit--
	}
	if index < 0 || index > limit {
		panic("lime: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveNode detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveNode(child *Node) {
	if child.Parent != n {
		panic("lime: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// Unlink detaches this node from its parent. No-op if it has no parent.
func (n *Node) Unlink() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveNode(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// IndexOf returns the position of child among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// IsAncestorOf reports whether n is an ancestor of other (or other itself).
func (n *Node) IsAncestorOf(other *Node) bool {
	return isAncestor(n, other)
}

// Walk visits n and its descendants depth-first in child order. Returning
// false from fn skips that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}

// Find returns the first descendant (depth-first, excluding n) with the given
// Id, or nil.
func (n *Node) Find(id string) *Node {
	for _, child := range n.children {
		if child.Id == id {
			return child
		}
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// FindGUID returns the node in n's subtree (including n) with the given GUID.
func (n *Node) FindGUID(guid uuid.UUID) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.GUID == guid {
			found = c
			return false
		}
		return true
	})
	return found
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed, disposes
// textures and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.Unlink()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	if n.Texture != nil {
		n.Texture.Dispose()
		n.Texture = nil
	}
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
