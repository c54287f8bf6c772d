package lime

import (
	"fmt"
	"sort"
)

// Keyframe is a timestamped property value. Easing shapes the segment that
// starts at this key.
type Keyframe[T any] struct {
	Frame  int
	Value  T
	Easing Easing
}

// AnimatorBase is the type-erased view of an Animator used by code that
// handles every property uniformly (rows, history, render pass).
type AnimatorBase interface {
	// Property returns the name of the animated node property.
	Property() string
	// Len returns the number of keyframes.
	Len() int
	// Frames returns the keyed frames in increasing order.
	Frames() []int
	// HasKey reports whether a keyframe exists at frame.
	HasKey(frame int) bool
	// KeyValue returns the value and easing stored at frame.
	KeyValue(frame int) (value any, easing Easing, ok bool)
	// SetKeyValue inserts or replaces the key at frame.
	// Panics if value has the wrong type.
	SetKeyValue(frame int, value any, easing Easing)
	// RemoveKey deletes the key at frame. Reports whether a key was removed.
	RemoveKey(frame int) bool
	// ValueAt evaluates the animator. ok is false for an empty animator.
	ValueAt(frame int) (value any, ok bool)
	// Clone returns a deep copy.
	Clone() AnimatorBase
}

// Animator is an ordered sequence of keyframes for one property.
//
// Frames are kept strictly increasing. Adding a key at an existing frame
// replaces that key (last write wins).
type Animator[T any] struct {
	property string
	keys     []Keyframe[T]
	interp   Interpolator[T]
}

// NewAnimator creates an empty animator for property. A nil interp selects
// step interpolation.
func NewAnimator[T any](property string, interp Interpolator[T]) *Animator[T] {
	if interp == nil {
		interp = Step[T]
	}
	return &Animator[T]{property: property, interp: interp}
}

// Property returns the animated property name.
func (a *Animator[T]) Property() string {
	return a.property
}

// Len returns the number of keyframes.
func (a *Animator[T]) Len() int {
	return len(a.keys)
}

// search returns the index of the first key with Frame >= frame.
func (a *Animator[T]) search(frame int) int {
	return sort.Search(len(a.keys), func(i int) bool { return a.keys[i].Frame >= frame })
}

// Add inserts a linear keyframe, replacing any key at the same frame.
func (a *Animator[T]) Add(frame int, value T) {
	a.AddKey(Keyframe[T]{Frame: frame, Value: value})
}

// AddKey inserts k, replacing any key at k.Frame.
func (a *Animator[T]) AddKey(k Keyframe[T]) {
	i := a.search(k.Frame)
	if i < len(a.keys) && a.keys[i].Frame == k.Frame {
		a.keys[i] = k
		return
	}
	a.keys = append(a.keys, Keyframe[T]{})
	copy(a.keys[i+1:], a.keys[i:])
	a.keys[i] = k
}

// Remove deletes the key at frame and returns it. No-op if absent.
func (a *Animator[T]) Remove(frame int) (Keyframe[T], bool) {
	i := a.search(frame)
	if i >= len(a.keys) || a.keys[i].Frame != frame {
		return Keyframe[T]{}, false
	}
	k := a.keys[i]
	copy(a.keys[i:], a.keys[i+1:])
	a.keys[len(a.keys)-1] = Keyframe[T]{}
	a.keys = a.keys[:len(a.keys)-1]
	return k, true
}

// Key returns the keyframe at frame.
func (a *Animator[T]) Key(frame int) (Keyframe[T], bool) {
	i := a.search(frame)
	if i < len(a.keys) && a.keys[i].Frame == frame {
		return a.keys[i], true
	}
	return Keyframe[T]{}, false
}

// Keys returns a copy of the keyframes in frame order.
func (a *Animator[T]) Keys() []Keyframe[T] {
	out := make([]Keyframe[T], len(a.keys))
	copy(out, a.keys)
	return out
}

// Evaluate returns the animated value at frame. Frames before the first key
// yield the first value and frames after the last key yield the last value.
// An empty animator yields the zero value.
func (a *Animator[T]) Evaluate(frame int) T {
	v, _ := a.TryEvaluate(frame)
	return v
}

// TryEvaluate is Evaluate with an ok result that is false when the animator
// has no keys.
func (a *Animator[T]) TryEvaluate(frame int) (T, bool) {
	n := len(a.keys)
	if n == 0 {
		var zero T
		return zero, false
	}
	if frame <= a.keys[0].Frame {
		return a.keys[0].Value, true
	}
	if frame >= a.keys[n-1].Frame {
		return a.keys[n-1].Value, true
	}
	i := a.search(frame)
	if a.keys[i].Frame == frame {
		return a.keys[i].Value, true
	}
	k0, k1 := a.keys[i-1], a.keys[i]
	if k0.Easing == EaseStep {
		return k0.Value, true
	}
	t := float64(frame-k0.Frame) / float64(k1.Frame-k0.Frame)
	return a.interp(k0.Value, k1.Value, k0.Easing.shape(t)), true
}

// Frames returns the keyed frames in increasing order.
func (a *Animator[T]) Frames() []int {
	out := make([]int, len(a.keys))
	for i, k := range a.keys {
		out[i] = k.Frame
	}
	return out
}

// HasKey reports whether a key exists at frame.
func (a *Animator[T]) HasKey(frame int) bool {
	_, ok := a.Key(frame)
	return ok
}

// KeyValue implements AnimatorBase.
func (a *Animator[T]) KeyValue(frame int) (any, Easing, bool) {
	k, ok := a.Key(frame)
	if !ok {
		return nil, EaseLinear, false
	}
	return k.Value, k.Easing, true
}

// SetKeyValue implements AnimatorBase.
func (a *Animator[T]) SetKeyValue(frame int, value any, easing Easing) {
	v, ok := value.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("lime: animator %q expects %T, got %T", a.property, zero, value))
	}
	a.AddKey(Keyframe[T]{Frame: frame, Value: v, Easing: easing})
}

// RemoveKey implements AnimatorBase.
func (a *Animator[T]) RemoveKey(frame int) bool {
	_, ok := a.Remove(frame)
	return ok
}

// ValueAt implements AnimatorBase.
func (a *Animator[T]) ValueAt(frame int) (any, bool) {
	v, ok := a.TryEvaluate(frame)
	if !ok {
		return nil, false
	}
	return v, true
}

// Clone implements AnimatorBase.
func (a *Animator[T]) Clone() AnimatorBase {
	return &Animator[T]{property: a.property, keys: a.Keys(), interp: a.interp}
}

// Animators is a node's set of animators, at most one per property name.
type Animators struct {
	m     map[string]AnimatorBase
	order []string
}

// Get returns the animator for property.
func (s *Animators) Get(property string) (AnimatorBase, bool) {
	a, ok := s.m[property]
	return a, ok
}

// Len returns the number of animators.
func (s *Animators) Len() int {
	return len(s.m)
}

// Properties returns the animated property names in attachment order.
func (s *Animators) Properties() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Attach adds a. Panics if an animator for the same property exists.
func (s *Animators) Attach(a AnimatorBase) {
	p := a.Property()
	if _, ok := s.m[p]; ok {
		panic(fmt.Sprintf("lime: animator for %q already attached", p))
	}
	if s.m == nil {
		s.m = make(map[string]AnimatorBase)
	}
	s.m[p] = a
	s.order = append(s.order, p)
}

// Detach removes and returns the animator for property, or nil.
func (s *Animators) Detach(property string) AnimatorBase {
	a, ok := s.m[property]
	if !ok {
		return nil
	}
	delete(s.m, property)
	for i, p := range s.order {
		if p == property {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return a
}

// AnimatorFor returns the typed animator for property on n, creating it on
// first access. Panics if property is unknown, not animatable or not of type T.
func AnimatorFor[T any](n *Node, property string) *Animator[T] {
	a := n.Animator(property)
	typed, ok := a.(*Animator[T])
	if !ok {
		var zero T
		panic(fmt.Sprintf("lime: property %q is not of type %T", property, zero))
	}
	return typed
}

// Animator returns the animator for property on n, creating it on first
// access. Panics if property is unknown or not animatable.
func (n *Node) Animator(property string) AnimatorBase {
	if a, ok := n.Animators.Get(property); ok {
		return a
	}
	p := mustProperty(property)
	if p.newAnimator == nil {
		panic(fmt.Sprintf("lime: property %q is not animatable", property))
	}
	a := p.newAnimator()
	n.Animators.Attach(a)
	return a
}

// ApplyAnimators writes every non-empty animator's value at frame into the
// node's properties, recursing into children.
func (n *Node) ApplyAnimators(frame int) {
	for _, name := range n.Animators.order {
		if v, ok := n.Animators.m[name].ValueAt(frame); ok {
			n.Set(name, v)
		}
	}
	for _, child := range n.children {
		child.ApplyAnimators(frame)
	}
}
