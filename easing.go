package lime

import (
	"fmt"

	"github.com/tanema/gween/ease"
	"golang.org/x/exp/constraints"
)

// Easing selects how the segment between a keyframe and the next one is
// shaped. The easing of the left keyframe applies to the whole segment.
type Easing uint8

const (
	EaseLinear Easing = iota
	EaseStep          // hold the left value until the next key
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
	EaseInSine
	EaseOutSine
	EaseInOutSine
	EaseOutBounce
	EaseOutBack
)

var easingNames = [...]string{
	EaseLinear:     "linear",
	EaseStep:       "step",
	EaseInQuad:     "inQuad",
	EaseOutQuad:    "outQuad",
	EaseInOutQuad:  "inOutQuad",
	EaseInCubic:    "inCubic",
	EaseOutCubic:   "outCubic",
	EaseInOutCubic: "inOutCubic",
	EaseInSine:     "inSine",
	EaseOutSine:    "outSine",
	EaseInOutSine:  "inOutSine",
	EaseOutBounce:  "outBounce",
	EaseOutBack:    "outBack",
}

var easingFuncs = [...]ease.TweenFunc{
	EaseLinear:     ease.Linear,
	EaseInQuad:     ease.InQuad,
	EaseOutQuad:    ease.OutQuad,
	EaseInOutQuad:  ease.InOutQuad,
	EaseInCubic:    ease.InCubic,
	EaseOutCubic:   ease.OutCubic,
	EaseInOutCubic: ease.InOutCubic,
	EaseInSine:     ease.InSine,
	EaseOutSine:    ease.OutSine,
	EaseInOutSine:  ease.InOutSine,
	EaseOutBounce:  ease.OutBounce,
	EaseOutBack:    ease.OutBack,
}

// String returns the easing name as accepted by ParseEasing.
func (e Easing) String() string {
	if int(e) < len(easingNames) {
		return easingNames[e]
	}
	return fmt.Sprintf("Easing(%d)", e)
}

// ParseEasing returns the Easing with the given name.
func ParseEasing(name string) (Easing, error) {
	for i, n := range easingNames {
		if n == name {
			return Easing(i), nil
		}
	}
	return EaseLinear, fmt.Errorf("unknown easing %q", name)
}

// MarshalText implements encoding.TextMarshaler so easings read naturally in
// YAML and JSON settings.
func (e Easing) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Easing) UnmarshalText(text []byte) error {
	v, err := ParseEasing(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// TweenFunc returns the gween easing function for e. EaseStep and unknown
// values map to ease.Linear.
func (e Easing) TweenFunc() ease.TweenFunc {
	if int(e) < len(easingFuncs) && easingFuncs[e] != nil {
		return easingFuncs[e]
	}
	return ease.Linear
}

// shape maps a normalized segment position t in [0, 1] through the easing.
func (e Easing) shape(t float64) float64 {
	if e == EaseLinear {
		return t
	}
	return float64(e.TweenFunc()(float32(t), 0, 1, 1))
}

// Interpolator blends a toward b by t in [0, 1] (t may overshoot for
// elastic easings). Interpolators must return a when t == 0.
type Interpolator[T any] func(a, b T, t float64) T

func lerp[T constraints.Float](a, b T, t float64) T {
	return a + (b-a)*T(t)
}

// LerpFloat linearly interpolates scalars.
func LerpFloat(a, b float64, t float64) float64 {
	return lerp(a, b, t)
}

// LerpVec2 linearly interpolates both components.
func LerpVec2(a, b Vec2, t float64) Vec2 {
	return Vec2{lerp(a.X, b.X, t), lerp(a.Y, b.Y, t)}
}

// LerpColor linearly interpolates all four channels.
func LerpColor(a, b Color, t float64) Color {
	return Color{lerp(a.R, b.R, t), lerp(a.G, b.G, t), lerp(a.B, b.B, t), lerp(a.A, b.A, t)}
}

// Step holds the left value. Used for discrete property types.
func Step[T any](a, _ T, _ float64) T {
	return a
}
