package core

import (
	"reflect"

	"github.com/davecgh/go-spew/spew"
	"github.com/phanxgames/lime"
	"github.com/pmezard/go-difflib/difflib"
)

var snapshotConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

type keySnapshot struct {
	Frame  int
	Value  any
	Easing string
}

type nodeSnapshot struct {
	GUID       string
	Parent     string
	Type       string
	Properties map[string]any
	Animators  map[string][]keySnapshot
	Components map[string]any
}

type rowSnapshot struct {
	Node       string
	Property   string
	Components map[string]any
}

type documentSnapshot struct {
	Nodes    []nodeSnapshot
	Rows     []rowSnapshot
	Selected []string
}

// Snapshot returns a deterministic dump of the undoable state of doc: the
// node tree with property values, keyframes and components, the row list
// with row components, and the row selection. Values of animated properties
// are left out since evaluating animators overwrites them. Two documents in
// the same state produce the same string.
func Snapshot(doc *Document) string {
	var s documentSnapshot
	props := lime.PropertyNames()
	doc.root.Walk(func(n *lime.Node) bool {
		ns := nodeSnapshot{
			GUID:       n.GUID.String(),
			Type:       n.Type.String(),
			Properties: make(map[string]any, len(props)),
			Animators:  make(map[string][]keySnapshot, n.Animators.Len()),
			Components: componentsSnapshot(&n.Components),
		}
		if n.Parent != nil {
			ns.Parent = n.Parent.GUID.String()
		}
		for _, p := range props {
			// Animated values are rewritten by every render pass; the keys
			// below are the state.
			if _, animated := n.Animators.Get(p); animated {
				continue
			}
			ns.Properties[p] = n.Get(p)
		}
		for _, p := range n.Animators.Properties() {
			a, _ := n.Animators.Get(p)
			keys := make([]keySnapshot, 0, a.Len())
			for _, f := range a.Frames() {
				v, e, _ := a.KeyValue(f)
				keys = append(keys, keySnapshot{Frame: f, Value: v, Easing: e.String()})
			}
			ns.Animators[p] = keys
		}
		s.Nodes = append(s.Nodes, ns)
		return true
	})
	for _, r := range doc.Rows() {
		s.Rows = append(s.Rows, rowSnapshot{
			Node:       r.Node.GUID.String(),
			Property:   r.Property,
			Components: componentsSnapshot(&r.Components),
		})
	}
	for _, r := range doc.SelectedRows() {
		s.Selected = append(s.Selected, r.Node.GUID.String()+"/"+r.Property)
	}
	return snapshotConfig.Sdump(s)
}

func componentsSnapshot(c *lime.Components) map[string]any {
	out := make(map[string]any, c.Len())
	c.Each(func(t reflect.Type, v any) {
		out[t.String()] = v
	})
	return out
}

func diffSnapshots(before, after string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "before",
		ToFile:   "after undo",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}
