package script

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Step is one scripted editor action.
type Step struct {
	Action   string `json:"action" yaml:"action" validate:"required,oneof=selectSpan deselectSpan clearSpans setProperty setKeyframe removeKeyframe selectRow deselectRow clearSelection expand collapse deleteKeys shiftKeys frame begin end undo redo wait"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Node     string `json:"node,omitempty" yaml:"node,omitempty"`
	Row      int    `json:"row,omitempty" yaml:"row,omitempty" validate:"gte=0"`
	From     int    `json:"from,omitempty" yaml:"from,omitempty"`
	To       int    `json:"to,omitempty" yaml:"to,omitempty"`
	Property string `json:"property,omitempty" yaml:"property,omitempty"`
	Value    any    `json:"value,omitempty" yaml:"value,omitempty"`
	Frame    int    `json:"frame,omitempty" yaml:"frame,omitempty" validate:"gte=0"`
	Easing   string `json:"easing,omitempty" yaml:"easing,omitempty"`
	Frames   int    `json:"frames,omitempty" yaml:"frames,omitempty" validate:"gte=0"`
	Delta    int    `json:"delta,omitempty" yaml:"delta,omitempty"`
}

// Script is the top-level structure of a script file.
type Script struct {
	Steps []Step `json:"steps" yaml:"steps" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Parse decodes a script from JSON or YAML and validates it.
func Parse(data []byte) (*Script, error) {
	var s Script
	var err error
	if json.Valid(data) {
		err = json.Unmarshal(data, &s)
	} else {
		err = yaml.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, errors.Wrap(err, "parse script")
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	if err := validate.Struct(s); err != nil {
		return nil, errors.Wrap(err, "parse script")
	}
	return &s, nil
}

// Load parses data and returns a runner for it.
func Load(data []byte) (*Runner, error) {
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return NewRunner(s), nil
}

// LoadFile reads and parses the script at path.
func LoadFile(path string) (*Runner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read script %s", path)
	}
	r, err := Load(data)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return r, nil
}
