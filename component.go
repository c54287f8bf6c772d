package lime

import (
	"fmt"
	"reflect"
	"sort"
)

// Components is a type-indexed side table of attachable state. At most one
// instance of each concrete type is stored. The zero value is ready to use.
//
// Go methods cannot be generic, so access goes through the package-level
// functions [GetOrAdd], [Get], [Has], [Set] and [Remove].
type Components struct {
	m map[reflect.Type]any
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetOrAdd returns the component of type T, creating and attaching a zero
// value first if none exists. Repeated calls return the same pointer until
// Remove is called.
func GetOrAdd[T any](c *Components) *T {
	key := typeKey[T]()
	if v, ok := c.m[key]; ok {
		return v.(*T)
	}
	if c.m == nil {
		c.m = make(map[reflect.Type]any)
	}
	v := new(T)
	c.m[key] = v
	return v
}

// Get returns the component of type T, or nil if none is attached.
func Get[T any](c *Components) *T {
	if v, ok := c.m[typeKey[T]()]; ok {
		return v.(*T)
	}
	return nil
}

// Has reports whether a component of type T is attached.
func Has[T any](c *Components) bool {
	_, ok := c.m[typeKey[T]()]
	return ok
}

// Set attaches v as the component of type T.
// Panics if v is nil or a component of type T is already attached.
func Set[T any](c *Components, v *T) {
	if v == nil {
		panic("lime: cannot attach nil component")
	}
	key := typeKey[T]()
	if _, ok := c.m[key]; ok {
		panic(fmt.Sprintf("lime: component %v already attached", key))
	}
	if c.m == nil {
		c.m = make(map[reflect.Type]any)
	}
	c.m[key] = v
}

// Remove detaches the component of type T and returns it.
// Returns nil if no such component was attached.
func Remove[T any](c *Components) *T {
	key := typeKey[T]()
	v, ok := c.m[key]
	if !ok {
		return nil
	}
	delete(c.m, key)
	return v.(*T)
}

// Len returns the number of attached components.
func (c *Components) Len() int {
	return len(c.m)
}

// Types returns the types of the attached components sorted by type name.
func (c *Components) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(c.m))
	for t := range c.m {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })
	return types
}

// Each calls fn for every attached component in Types order. The component
// values are pointers to the stored instances.
func (c *Components) Each(fn func(t reflect.Type, v any)) {
	for _, t := range c.Types() {
		fn(t, c.m[t])
	}
}

// Ensure is GetOrAdd that also reports whether the component was created by
// this call. Operations use it to undo exactly what they did.
func Ensure[T any](c *Components) (v *T, added bool) {
	if v := Get[T](c); v != nil {
		return v, false
	}
	return GetOrAdd[T](c), true
}
