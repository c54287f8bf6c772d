package lime

import (
	"fmt"
	"reflect"
	"sort"
)

// Property describes a typed, named node property that can be read and written
// generically and, when animatable, driven by an Animator.
type Property struct {
	Name string
	Type reflect.Type

	get         func(n *Node) any
	set         func(n *Node, v any)
	newAnimator func() AnimatorBase
}

// Animatable reports whether the property accepts keyframes.
func (p *Property) Animatable() bool {
	return p.newAnimator != nil
}

var properties = map[string]*Property{}

// RegisterProperty adds a property descriptor. A nil interp registers a
// property that cannot be animated. Panics on duplicate names.
func RegisterProperty[T any](name string, interp Interpolator[T], get func(*Node) T, set func(*Node, T)) {
	if _, ok := properties[name]; ok {
		panic(fmt.Sprintf("lime: property %q already registered", name))
	}
	p := &Property{
		Name: name,
		Type: typeKey[T](),
		get:  func(n *Node) any { return get(n) },
		set: func(n *Node, v any) {
			tv, ok := v.(T)
			if !ok {
				var zero T
				panic(fmt.Sprintf("lime: property %q expects %T, got %T", name, zero, v))
			}
			set(n, tv)
		},
	}
	if interp != nil {
		p.newAnimator = func() AnimatorBase { return NewAnimator(name, interp) }
	}
	properties[name] = p
}

// LookupProperty returns the descriptor registered under name.
func LookupProperty(name string) (*Property, bool) {
	p, ok := properties[name]
	return p, ok
}

// PropertyNames returns all registered property names, sorted.
func PropertyNames() []string {
	out := make([]string, 0, len(properties))
	for name := range properties {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func mustProperty(name string) *Property {
	p, ok := properties[name]
	if !ok {
		panic(fmt.Sprintf("lime: unknown property %q", name))
	}
	return p
}

// Get returns the current value of the named property.
// Panics if the property is unknown.
func (n *Node) Get(property string) any {
	return mustProperty(property).get(n)
}

// Set assigns the named property. Panics if the property is unknown or value
// has the wrong type.
func (n *Node) Set(property string, value any) {
	mustProperty(property).set(n, value)
}

// Built-in properties.
const (
	PropId       = "Id"
	PropPosition = "Position"
	PropScale    = "Scale"
	PropSize     = "Size"
	PropPivot    = "Pivot"
	PropRotation = "Rotation"
	PropOpacity  = "Opacity"
	PropColor    = "Color"
	PropVisible  = "Visible"
)

func init() {
	RegisterProperty[string](PropId, nil,
		func(n *Node) string { return n.Id },
		func(n *Node, v string) { n.Id = v })
	RegisterProperty(PropPosition, LerpVec2,
		func(n *Node) Vec2 { return n.Position },
		func(n *Node, v Vec2) { n.Position = v; n.transformDirty = true })
	RegisterProperty(PropScale, LerpVec2,
		func(n *Node) Vec2 { return n.Scale },
		func(n *Node, v Vec2) { n.Scale = v; n.transformDirty = true })
	RegisterProperty(PropSize, LerpVec2,
		func(n *Node) Vec2 { return n.Size },
		func(n *Node, v Vec2) { n.Size = v })
	RegisterProperty(PropPivot, LerpVec2,
		func(n *Node) Vec2 { return n.Pivot },
		func(n *Node, v Vec2) { n.Pivot = v; n.transformDirty = true })
	RegisterProperty(PropRotation, LerpFloat,
		func(n *Node) float64 { return n.Rotation },
		func(n *Node, v float64) { n.Rotation = v; n.transformDirty = true })
	RegisterProperty(PropOpacity, LerpFloat,
		func(n *Node) float64 { return n.Opacity },
		func(n *Node, v float64) { n.Opacity = v; n.transformDirty = true })
	RegisterProperty(PropColor, LerpColor,
		func(n *Node) Color { return n.Color },
		func(n *Node, v Color) { n.Color = v })
	RegisterProperty(PropVisible, Step[bool],
		func(n *Node) bool { return n.Visible },
		func(n *Node, v bool) { n.Visible = v })
}
