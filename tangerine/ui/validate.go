package ui

import (
	"github.com/go-playground/validator/v10"
	"github.com/phanxgames/lime"
	"github.com/pkg/errors"
)

var validate = validator.New()

var rules = map[string]string{
	lime.PropOpacity: "gte=0,lte=1",
	lime.PropSize:    "gte=0",
	lime.PropId:      "max=256",
}

// RegisterRule sets the validator tag applied to values of property. For
// Vec2 and Color properties the tag applies to each component. An empty tag
// removes the rule.
func RegisterRule(property, tag string) {
	if tag == "" {
		delete(rules, property)
		return
	}
	rules[property] = tag
}

// Rule returns the validator tag for property, if any.
func Rule(property string) (string, bool) {
	tag, ok := rules[property]
	return tag, ok
}

// ValidateValue checks value against the rule registered for property. The
// returned error wraps validator.ValidationErrors.
func ValidateValue(property string, value any) error {
	tag, ok := Rule(property)
	if !ok {
		return nil
	}
	var fields []any
	switch v := value.(type) {
	case lime.Vec2:
		fields = []any{v.X, v.Y}
	case lime.Color:
		fields = []any{v.R, v.G, v.B, v.A}
	default:
		fields = []any{value}
	}
	for _, f := range fields {
		if err := validate.Var(f, tag); err != nil {
			return errors.Wrapf(err, "invalid %s", property)
		}
	}
	return nil
}
