package core

import (
	"fmt"
	"reflect"

	"github.com/phanxgames/lime"
)

// SetProperty assigns a value to a node property.
type SetProperty struct {
	node     *lime.Node
	property string
	value    any
	old      any
}

// NewSetProperty creates a SetProperty operation.
// Panics if the property is unknown or value has the wrong type.
func NewSetProperty(node *lime.Node, property string, value any) *SetProperty {
	checkPropertyValue(property, value)
	return &SetProperty{node: node, property: property, value: value}
}

// PerformSetProperty creates a SetProperty operation and performs it on doc.
func PerformSetProperty(doc *Document, node *lime.Node, property string, value any) {
	doc.History().Perform(NewSetProperty(node, property, value))
}

func (op *SetProperty) IsChangingDocument() bool { return true }

// Node returns the target node.
func (op *SetProperty) Node() *lime.Node { return op.node }

// Property returns the target property name.
func (op *SetProperty) Property() string { return op.property }

// Value returns the assigned value.
func (op *SetProperty) Value() any { return op.value }

// SetKeyframe adds or replaces the key at a frame of a node property's
// animator, creating the animator if the node has none for the property.
type SetKeyframe struct {
	node     *lime.Node
	property string
	frame    int
	value    any
	easing   lime.Easing

	createdAnimator bool
	// propertyValue is the value before the animator existed; undo restores
	// it once the animator is gone.
	propertyValue any
	hadKey        bool
	oldValue      any
	oldEasing     lime.Easing
}

// NewSetKeyframe creates a SetKeyframe operation.
// Panics if the property is unknown, not animatable, or value has the wrong
// type.
func NewSetKeyframe(node *lime.Node, property string, frame int, value any, easing lime.Easing) *SetKeyframe {
	p := checkPropertyValue(property, value)
	if !p.Animatable() {
		panic(fmt.Sprintf("tangerine: property %q is not animatable", property))
	}
	return &SetKeyframe{node: node, property: property, frame: frame, value: value, easing: easing}
}

// PerformSetKeyframe creates a SetKeyframe operation and performs it on doc.
func PerformSetKeyframe(doc *Document, node *lime.Node, property string, frame int, value any, easing lime.Easing) {
	doc.History().Perform(NewSetKeyframe(node, property, frame, value, easing))
}

func (op *SetKeyframe) IsChangingDocument() bool { return true }

// RemoveKeyframe deletes the key at a frame of a node property's animator.
// Removing an absent key is a no-op.
type RemoveKeyframe struct {
	node     *lime.Node
	property string
	frame    int

	removed bool
	value   any
	easing  lime.Easing
}

// NewRemoveKeyframe creates a RemoveKeyframe operation.
func NewRemoveKeyframe(node *lime.Node, property string, frame int) *RemoveKeyframe {
	return &RemoveKeyframe{node: node, property: property, frame: frame}
}

// PerformRemoveKeyframe creates a RemoveKeyframe operation and performs it on
// doc.
func PerformRemoveKeyframe(doc *Document, node *lime.Node, property string, frame int) {
	doc.History().Perform(NewRemoveKeyframe(node, property, frame))
}

func (op *RemoveKeyframe) IsChangingDocument() bool { return true }

func checkPropertyValue(property string, value any) *lime.Property {
	p, ok := lime.LookupProperty(property)
	if !ok {
		panic(fmt.Sprintf("tangerine: unknown property %q", property))
	}
	if reflect.TypeOf(value) != p.Type {
		panic(fmt.Sprintf("tangerine: property %q expects %v, got %T", property, p.Type, value))
	}
	return p
}

func init() {
	RegisterProcessor(
		func(doc *Document, op *SetProperty) {
			op.old = op.node.Get(op.property)
			op.node.Set(op.property, op.value)
		},
		func(doc *Document, op *SetProperty) {
			op.node.Set(op.property, op.old)
		},
	)
	RegisterProcessor(
		func(doc *Document, op *SetKeyframe) {
			a, ok := op.node.Animators.Get(op.property)
			op.createdAnimator = !ok
			if !ok {
				op.propertyValue = op.node.Get(op.property)
				a = op.node.Animator(op.property)
				doc.invalidateRows()
			}
			op.oldValue, op.oldEasing, op.hadKey = a.KeyValue(op.frame)
			a.SetKeyValue(op.frame, op.value, op.easing)
		},
		func(doc *Document, op *SetKeyframe) {
			if op.createdAnimator {
				op.node.Animators.Detach(op.property)
				op.node.Set(op.property, op.propertyValue)
				doc.invalidateRows()
				return
			}
			a, _ := op.node.Animators.Get(op.property)
			if op.hadKey {
				a.SetKeyValue(op.frame, op.oldValue, op.oldEasing)
			} else {
				a.RemoveKey(op.frame)
			}
		},
	)
	RegisterProcessor(
		func(doc *Document, op *RemoveKeyframe) {
			op.removed = false
			a, ok := op.node.Animators.Get(op.property)
			if !ok {
				return
			}
			op.value, op.easing, op.removed = a.KeyValue(op.frame)
			if op.removed {
				a.RemoveKey(op.frame)
			}
		},
		func(doc *Document, op *RemoveKeyframe) {
			if !op.removed {
				return
			}
			a, _ := op.node.Animators.Get(op.property)
			a.SetKeyValue(op.frame, op.value, op.easing)
		},
	)
}

// SetAnimableProperty sets a property the way the inspector does: the value
// is assigned, and the current frame is keyed too when auto-keyframing is on
// or the property is already animated. Both changes form one undo unit.
func SetAnimableProperty(doc *Document, node *lime.Node, property string, value any) {
	p := checkPropertyValue(property, value)
	doc.History().Transaction(func() {
		PerformSetProperty(doc, node, property, value)
		if !p.Animatable() {
			return
		}
		_, animated := node.Animators.Get(property)
		if doc.Settings().AutoKeyframes || animated {
			PerformSetKeyframe(doc, node, property, doc.CurrentFrame(), value, doc.Settings().DefaultEasing)
		}
	})
}

// BakeTween replaces an eased transition of a float property with linear
// keys sampled every step frames, starting at start and lasting frames
// frames. All keys form one undo unit.
func BakeTween(doc *Document, node *lime.Node, property string, from, to float64, start, frames, step int, easing lime.Easing) {
	keys := lime.BakeTween(from, to, start, frames, step, easing.TweenFunc())
	doc.History().Transaction(func() {
		for _, k := range keys {
			PerformSetKeyframe(doc, node, property, k.Frame, k.Value, lime.EaseLinear)
		}
	})
}
