package timeline

import (
	"github.com/phanxgames/lime"
	"github.com/phanxgames/lime/tangerine/core"
)

// SelectedKey is one keyframe covered by a selected grid span.
type SelectedKey struct {
	Node     *lime.Node
	Property string
	Frame    int
}

// SelectedKeys returns the keyframes covered by the spans of the current
// rows. A node row covers every animator of its node; a property row covers
// only its animator. Each key is reported once.
func SelectedKeys(doc *core.Document) []SelectedKey {
	type keyID struct {
		node     *lime.Node
		property string
		frame    int
	}
	seen := map[keyID]bool{}
	var out []SelectedKey
	for _, r := range doc.Rows() {
		l := lime.Get[GridSpanList](&r.Components)
		if l == nil || len(l.Spans) == 0 {
			continue
		}
		props := r.Node.Animators.Properties()
		if r.IsPropertyRow() {
			props = []string{r.Property}
		}
		for _, p := range props {
			a, ok := r.Node.Animators.Get(p)
			if !ok {
				continue
			}
			for _, f := range a.Frames() {
				id := keyID{r.Node, p, f}
				if seen[id] || !l.Contains(f) {
					continue
				}
				seen[id] = true
				out = append(out, SelectedKey{Node: r.Node, Property: p, Frame: f})
			}
		}
	}
	return out
}

// DeleteSelectedKeys removes every keyframe covered by a selected span, as a
// single undo unit. Returns the number of keys removed.
func DeleteSelectedKeys(doc *core.Document) int {
	keys := SelectedKeys(doc)
	doc.History().Transaction(func() {
		for _, k := range keys {
			core.PerformRemoveKeyframe(doc, k.Node, k.Property, k.Frame)
		}
	})
	return len(keys)
}

// ShiftSelectedKeys moves every keyframe covered by a selected span by delta
// frames, as a single undo unit. Keys landing on an existing key replace it.
// Keys that would move before frame 0 are clamped to 0.
func ShiftSelectedKeys(doc *core.Document, delta int) {
	if delta == 0 {
		return
	}
	keys := SelectedKeys(doc)
	type moved struct {
		key    SelectedKey
		value  any
		easing lime.Easing
	}
	moves := make([]moved, 0, len(keys))
	for _, k := range keys {
		a, _ := k.Node.Animators.Get(k.Property)
		v, e, _ := a.KeyValue(k.Frame)
		moves = append(moves, moved{key: k, value: v, easing: e})
	}
	doc.History().Transaction(func() {
		for _, m := range moves {
			core.PerformRemoveKeyframe(doc, m.key.Node, m.key.Property, m.key.Frame)
		}
		for _, m := range moves {
			f := m.key.Frame + delta
			if f < 0 {
				f = 0
			}
			core.PerformSetKeyframe(doc, m.key.Node, m.key.Property, f, m.value, m.easing)
		}
	})
}
