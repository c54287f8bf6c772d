package ui

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/phanxgames/lime"
	"github.com/phanxgames/lime/tangerine/core"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleParams(property string, ids ...string) Params {
	doc := core.NewSampleDocument(core.WithDebug(true))
	var nodes []*lime.Node
	for _, id := range ids {
		nodes = append(nodes, doc.Root().Find(id))
	}
	return Params{Document: doc, Nodes: nodes, Property: property}
}

func TestFloatEditorSubmit(t *testing.T) {
	p := sampleParams(lime.PropOpacity, "Image 00", "Image 01")
	e := NewFloatEditor(p)
	assert.Equal(t, "1", e.Text())

	require.NoError(t, e.Submit("1/4"))
	assert.Equal(t, "0.25", e.Text())
	assert.Equal(t, 1, p.Document.History().Len(), "multi-node edit is one unit")

	p.Document.History().Undo()
	assert.Equal(t, "1", e.Text())
}

func TestFloatEditorRejectsInvalid(t *testing.T) {
	p := sampleParams(lime.PropOpacity, "Image 00")
	e := NewFloatEditor(p)

	err := e.Submit("2")
	require.Error(t, err)
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs), "cause should be ValidationErrors")
	assert.Equal(t, 0, p.Document.History().Len())

	require.Error(t, e.Submit("nonsense"))
	assert.Equal(t, 0, p.Document.History().Len())
}

func TestFloatEditorManyValues(t *testing.T) {
	p := sampleParams(lime.PropRotation, "Image 00", "Image 01")
	p.Nodes[1].Rotation = 2
	e := NewFloatEditor(p)
	assert.Equal(t, ManyValuesText, e.Text())

	require.NoError(t, e.Submit("0.5"))
	assert.Equal(t, "0.5", e.Text())
}

func TestVector2EditorSubmitComponent(t *testing.T) {
	p := sampleParams(lime.PropPosition, "Image 00", "Image 01")
	e := NewVector2Editor(p)
	assert.False(t, e.X().Many)
	assert.True(t, e.Y().Many)
	assert.Equal(t, "0, "+ManyValuesText, e.Text())

	require.NoError(t, e.SubmitComponent(0, "10*2"))
	assert.Equal(t, lime.Vec2{X: 20, Y: 0}, p.Nodes[0].Position)
	assert.Equal(t, lime.Vec2{X: 20, Y: 28}, p.Nodes[1].Position)
}

func TestVector2EditorSubmit(t *testing.T) {
	p := sampleParams(lime.PropSize, "Image 00")
	e := NewVector2Editor(p)

	require.NoError(t, e.Submit("max(1, 2), 3"))
	assert.Equal(t, lime.Vec2{X: 2, Y: 3}, p.Nodes[0].Size)

	assert.Error(t, e.Submit("-1; 3"), "negative size is rejected")
	assert.Error(t, e.Submit("1"))
}

func TestBoolEditor(t *testing.T) {
	p := sampleParams(lime.PropVisible, "Image 00", "Image 01")
	e := NewBoolEditor(p)
	assert.Equal(t, "true", e.Text())

	require.NoError(t, e.Toggle())
	assert.Equal(t, "false", e.Text())
	assert.Error(t, e.Submit("maybe"))

	p.Nodes[0].Visible = true
	assert.Equal(t, ManyValuesText, e.Text())
}

func TestStringEditor(t *testing.T) {
	p := sampleParams(lime.PropId, "Image 00")
	e := NewStringEditor(p)
	require.NoError(t, e.Submit("Hero"))
	assert.Equal(t, "Hero", e.Text())
}

func TestEditorReadOnly(t *testing.T) {
	doc := core.NullDocument()
	e := NewFloatEditor(Params{Document: doc, Nodes: []*lime.Node{doc.Root()}, Property: lime.PropRotation})
	assert.ErrorIs(t, e.Submit("1"), ErrReadOnly)
}

func TestNewEditorByType(t *testing.T) {
	p := sampleParams("", "Image 00")
	cases := map[string]any{
		lime.PropOpacity:  &FloatEditor{},
		lime.PropPosition: &Vector2Editor{},
		lime.PropVisible:  &BoolEditor{},
		lime.PropId:       &StringEditor{},
	}
	for prop, want := range cases {
		p.Property = prop
		e, err := NewEditor(p)
		require.NoError(t, err)
		assert.IsType(t, want, e)
		assert.Equal(t, prop, e.Property())
	}
	p.Property = lime.PropColor
	_, err := NewEditor(p)
	assert.Error(t, err)
}

func TestRegisterRule(t *testing.T) {
	RegisterRule(lime.PropRotation, "lte=10")
	defer RegisterRule(lime.PropRotation, "")
	assert.Error(t, ValidateValue(lime.PropRotation, 11.0))
	assert.NoError(t, ValidateValue(lime.PropRotation, 9.0))
}
