package script

import (
	"reflect"

	"github.com/phanxgames/lime"
	"github.com/pkg/errors"
)

// convertValue turns a decoded JSON or YAML value into the Go type of prop.
// Vec2 accepts [x, y] or {x, y}; Color accepts [r, g, b, a] or {r, g, b, a}.
func convertValue(prop *lime.Property, raw any) (any, error) {
	switch prop.Type {
	case reflect.TypeOf(float64(0)):
		return toFloat(raw)
	case reflect.TypeOf(false):
		if b, ok := raw.(bool); ok {
			return b, nil
		}
	case reflect.TypeOf(""):
		if s, ok := raw.(string); ok {
			return s, nil
		}
	case reflect.TypeOf(lime.Vec2{}):
		f, err := toFloats(raw, "x", "y")
		if err != nil {
			return nil, err
		}
		return lime.Vec2{X: f[0], Y: f[1]}, nil
	case reflect.TypeOf(lime.Color{}):
		f, err := toFloats(raw, "r", "g", "b", "a")
		if err != nil {
			return nil, err
		}
		return lime.Color{R: f[0], G: f[1], B: f[2], A: f[3]}, nil
	}
	return nil, errors.Errorf("value %v does not fit property %s of type %v", raw, prop.Name, prop.Type)
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, errors.Errorf("value %v is not a number", raw)
}

func toFloats(raw any, keys ...string) ([]float64, error) {
	out := make([]float64, len(keys))
	switch v := raw.(type) {
	case []any:
		if len(v) != len(keys) {
			return nil, errors.Errorf("want %d components, got %d", len(keys), len(v))
		}
		for i, x := range v {
			f, err := toFloat(x)
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return out, nil
	case map[string]any:
		for i, k := range keys {
			x, ok := v[k]
			if !ok {
				return nil, errors.Errorf("missing component %q", k)
			}
			f, err := toFloat(x)
			if err != nil {
				return nil, err
			}
			out[i] = f
		}
		return out, nil
	}
	return nil, errors.Errorf("value %v is not a list or map", raw)
}
