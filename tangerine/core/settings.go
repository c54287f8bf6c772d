package core

import (
	"github.com/go-playground/validator/v10"
	"github.com/phanxgames/lime"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Settings holds per-document editor settings.
type Settings struct {
	// AutoKeyframes makes property edits also key the current frame.
	AutoKeyframes bool `yaml:"auto_keyframes"`
	// AnimationFPS is the playback rate of the timeline.
	AnimationFPS int `yaml:"animation_fps" validate:"min=1,max=240"`
	// FrameCount is the length of the timeline ruler.
	FrameCount    int         `yaml:"frame_count" validate:"min=1"`
	DefaultEasing lime.Easing `yaml:"default_easing"`
	// SceneWidth and SceneHeight size the root frame of new documents.
	SceneWidth  float64 `yaml:"scene_width" validate:"gt=0"`
	SceneHeight float64 `yaml:"scene_height" validate:"gt=0"`
}

// DefaultSettings returns the settings used by NewDocument.
func DefaultSettings() Settings {
	return Settings{
		AutoKeyframes: true,
		AnimationFPS:  30,
		FrameCount:    100,
		DefaultEasing: lime.EaseLinear,
		SceneWidth:    800,
		SceneHeight:   600,
	}
}

// Validate checks the settings against their constraints.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return errors.Wrap(err, "invalid document settings")
	}
	return nil
}

// ParseSettings decodes YAML on top of DefaultSettings and validates the
// result.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, errors.Wrap(err, "parse document settings")
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
