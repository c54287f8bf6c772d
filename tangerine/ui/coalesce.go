package ui

import (
	"strconv"
	"strings"

	"github.com/phanxgames/lime"
)

// ManyValuesText is shown by an editor whose nodes disagree on the value.
const ManyValuesText = "<many values>"

// CoalescedValue is the common value of a property across the edited nodes.
// Many is set when the nodes disagree; Value then holds the first node's
// value.
type CoalescedValue[T comparable] struct {
	Value T
	Many  bool
}

// Coalesce reads property from every node. An empty node list yields the zero
// value. Panics if the property is unknown or is not of type T.
func Coalesce[T comparable](nodes []*lime.Node, property string) CoalescedValue[T] {
	var c CoalescedValue[T]
	for i, n := range nodes {
		v := n.Get(property).(T)
		if i == 0 {
			c.Value = v
		} else if v != c.Value {
			c.Many = true
		}
	}
	return c
}

// Component projects a coalesced value onto one of its components, so a Vec2
// editor can show X while Y differs between nodes.
func Component[T comparable, C comparable](nodes []*lime.Node, property string, get func(T) C) CoalescedValue[C] {
	var c CoalescedValue[C]
	for i, n := range nodes {
		v := get(n.Get(property).(T))
		if i == 0 {
			c.Value = v
		} else if v != c.Value {
			c.Many = true
		}
	}
	return c
}

// FormatFloat formats v with at most three decimals and no trailing zeros.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}

func floatText(c CoalescedValue[float64]) string {
	if c.Many {
		return ManyValuesText
	}
	return FormatFloat(c.Value)
}
