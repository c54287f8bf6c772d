package lime

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously in real time.
// It is meant for transient editor state (scroll offsets, highlight colors),
// not for document data, which changes only through operations.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenValue animates *field to the target value over duration seconds.
func TweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(field, to, duration, fn)
	return g
}

// TweenVec2 animates both components of *field.
func TweenVec2(field *Vec2, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&field.X, to.X, duration, fn)
	g.add(&field.Y, to.Y, duration, fn)
	return g
}

// TweenColor animates all four channels of *field.
func TweenColor(field *Color, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(&field.R, to.R, duration, fn)
	g.add(&field.G, to.G, duration, fn)
	g.add(&field.B, to.B, duration, fn)
	g.add(&field.A, to.A, duration, fn)
	return g
}

// BakeTween samples an eased transition from -> to into keyframes. Keys are
// placed every step frames from start to start+frames inclusive; the last key
// always lands on start+frames. Keys are linear so that playback between
// samples stays close to the easing curve.
func BakeTween(from, to float64, start, frames, step int, fn ease.TweenFunc) []Keyframe[float64] {
	if frames <= 0 {
		return []Keyframe[float64]{{Frame: start, Value: to}}
	}
	if step <= 0 {
		step = 1
	}
	tw := gween.New(float32(from), float32(to), float32(frames), fn)
	keys := make([]Keyframe[float64], 0, frames/step+2)
	for f := 0; f < frames; f += step {
		v, _ := tw.Set(float32(f))
		keys = append(keys, Keyframe[float64]{Frame: start + f, Value: float64(v)})
	}
	keys = append(keys, Keyframe[float64]{Frame: start + frames, Value: to})
	return keys
}
