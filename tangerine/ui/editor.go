package ui

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/phanxgames/lime"
	"github.com/phanxgames/lime/tangerine/core"
	"github.com/pkg/errors"
)

// ErrReadOnly is returned when submitting to an editor of a read-only
// document.
var ErrReadOnly = errors.New("document is read-only")

// Params binds an editor to a property of a set of nodes in a document.
type Params struct {
	Document *core.Document
	Nodes    []*lime.Node
	Property string
}

// PropertyEditor is the text surface shared by all property editors. Text
// shows the coalesced value; Submit parses, validates and applies user input.
// Rejected input leaves the document untouched and returns an error.
type PropertyEditor interface {
	Property() string
	Text() string
	Submit(text string) error
}

type commonEditor struct {
	Params
}

func (e *commonEditor) Property() string { return e.Params.Property }

// apply sets value on every node as one undo unit.
func (e *commonEditor) apply(value any) error {
	doc := e.Document
	if doc.IsReadOnly() {
		return ErrReadOnly
	}
	if err := ValidateValue(e.Params.Property, value); err != nil {
		return err
	}
	doc.History().Transaction(func() {
		for _, n := range e.Nodes {
			core.SetAnimableProperty(doc, n, e.Params.Property, value)
		}
	})
	return nil
}

// FloatEditor edits a float64 property. Input is an arithmetic expression.
type FloatEditor struct {
	commonEditor
}

// NewFloatEditor creates an editor for a float64 property.
func NewFloatEditor(p Params) *FloatEditor {
	return &FloatEditor{commonEditor{p}}
}

// Value returns the coalesced value.
func (e *FloatEditor) Value() CoalescedValue[float64] {
	return Coalesce[float64](e.Nodes, e.Params.Property)
}

// Text implements PropertyEditor.
func (e *FloatEditor) Text() string {
	return floatText(e.Value())
}

// Submit implements PropertyEditor.
func (e *FloatEditor) Submit(text string) error {
	v, err := ParseExpression(text)
	if err != nil {
		return err
	}
	return e.apply(v)
}

// Vector2Editor edits a Vec2 property one component at a time.
type Vector2Editor struct {
	commonEditor
}

// NewVector2Editor creates an editor for a Vec2 property.
func NewVector2Editor(p Params) *Vector2Editor {
	return &Vector2Editor{commonEditor{p}}
}

// X returns the coalesced X component.
func (e *Vector2Editor) X() CoalescedValue[float64] {
	return Component(e.Nodes, e.Params.Property, func(v lime.Vec2) float64 { return v.X })
}

// Y returns the coalesced Y component.
func (e *Vector2Editor) Y() CoalescedValue[float64] {
	return Component(e.Nodes, e.Params.Property, func(v lime.Vec2) float64 { return v.Y })
}

// Text implements PropertyEditor as "x, y".
func (e *Vector2Editor) Text() string {
	return floatText(e.X()) + ", " + floatText(e.Y())
}

// Submit implements PropertyEditor. The text holds two expressions separated
// by a semicolon or by a comma outside parentheses.
func (e *Vector2Editor) Submit(text string) error {
	parts := splitComponents(text)
	if len(parts) != 2 {
		return errors.Wrapf(ErrSyntax, "%q: want two components", text)
	}
	x, err := ParseExpression(parts[0])
	if err != nil {
		return err
	}
	y, err := ParseExpression(parts[1])
	if err != nil {
		return err
	}
	return e.apply(lime.Vec2{X: x, Y: y})
}

// SubmitComponent sets one component (0 for X, 1 for Y) on every node and
// keeps each node's other component.
func (e *Vector2Editor) SubmitComponent(axis int, text string) error {
	if axis != 0 && axis != 1 {
		return errors.Errorf("bad axis %d", axis)
	}
	v, err := ParseExpression(text)
	if err != nil {
		return err
	}
	doc := e.Document
	if doc.IsReadOnly() {
		return ErrReadOnly
	}
	values := make([]lime.Vec2, len(e.Nodes))
	for i, n := range e.Nodes {
		cur := n.Get(e.Params.Property).(lime.Vec2)
		if axis == 0 {
			cur.X = v
		} else {
			cur.Y = v
		}
		if err := ValidateValue(e.Params.Property, cur); err != nil {
			return err
		}
		values[i] = cur
	}
	doc.History().Transaction(func() {
		for i, n := range e.Nodes {
			core.SetAnimableProperty(doc, n, e.Params.Property, values[i])
		}
	})
	return nil
}

func splitComponents(text string) []string {
	if strings.Contains(text, ";") {
		return strings.Split(text, ";")
	}
	var parts []string
	depth, start := 0, 0
	for i, r := range text {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, text[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, text[start:])
}

// BoolEditor edits a bool property.
type BoolEditor struct {
	commonEditor
}

// NewBoolEditor creates an editor for a bool property.
func NewBoolEditor(p Params) *BoolEditor {
	return &BoolEditor{commonEditor{p}}
}

// Value returns the coalesced value.
func (e *BoolEditor) Value() CoalescedValue[bool] {
	return Coalesce[bool](e.Nodes, e.Params.Property)
}

// Text implements PropertyEditor.
func (e *BoolEditor) Text() string {
	c := e.Value()
	if c.Many {
		return ManyValuesText
	}
	return strconv.FormatBool(c.Value)
}

// Submit implements PropertyEditor.
func (e *BoolEditor) Submit(text string) error {
	v, err := strconv.ParseBool(strings.TrimSpace(text))
	if err != nil {
		return errors.Wrapf(ErrSyntax, "%q is not a boolean", text)
	}
	return e.apply(v)
}

// Toggle sets every node to the negation of the coalesced value. Mixed
// values become true.
func (e *BoolEditor) Toggle() error {
	c := e.Value()
	return e.apply(c.Many || !c.Value)
}

// StringEditor edits a string property.
type StringEditor struct {
	commonEditor
}

// NewStringEditor creates an editor for a string property.
func NewStringEditor(p Params) *StringEditor {
	return &StringEditor{commonEditor{p}}
}

// Text implements PropertyEditor.
func (e *StringEditor) Text() string {
	c := Coalesce[string](e.Nodes, e.Params.Property)
	if c.Many {
		return ManyValuesText
	}
	return c.Value
}

// Submit implements PropertyEditor.
func (e *StringEditor) Submit(text string) error {
	return e.apply(text)
}

var vec2Type = reflect.TypeOf(lime.Vec2{})

// NewEditor picks an editor for the property's type. Returns an error for
// property types without an editor.
func NewEditor(p Params) (PropertyEditor, error) {
	prop, ok := lime.LookupProperty(p.Property)
	if !ok {
		return nil, errors.Errorf("unknown property %q", p.Property)
	}
	switch prop.Type.Kind() {
	case reflect.Float64:
		return NewFloatEditor(p), nil
	case reflect.Bool:
		return NewBoolEditor(p), nil
	case reflect.String:
		return NewStringEditor(p), nil
	}
	if prop.Type == vec2Type {
		return NewVector2Editor(p), nil
	}
	return nil, errors.Errorf("no editor for property %q of type %v", p.Property, prop.Type)
}
