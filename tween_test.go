package lime

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenVec2ReachesTarget(t *testing.T) {
	p := Vec2{10, 20}
	g := TweenVec2(&p, Vec2{100, 200}, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(p.X-100) > 0.5 || math.Abs(p.Y-200) > 0.5 {
		t.Errorf("p = %v, want ~{100 200}", p)
	}
}

func TestTweenValueHalfway(t *testing.T) {
	v := 0.0
	g := TweenValue(&v, 10, 1.0, ease.Linear)
	g.Update(0.5)

	if g.Done {
		t.Error("should not be done at half duration")
	}
	if math.Abs(v-5) > 0.01 {
		t.Errorf("v = %v, want ~5", v)
	}
}

func TestTweenColorAllChannels(t *testing.T) {
	c := Color{0, 0, 0, 0}
	g := TweenColor(&c, ColorWhite, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done")
	}
	if math.Abs(c.R-1) > 0.01 || math.Abs(c.A-1) > 0.01 {
		t.Errorf("c = %v, want ~white", c)
	}
}

func TestTweenDoneIgnoresUpdate(t *testing.T) {
	v := 0.0
	g := TweenValue(&v, 1, 0.1, ease.Linear)
	g.Update(1)
	v = 42
	g.Update(1)
	if v != 42 {
		t.Errorf("v = %v, finished tween should not write", v)
	}
}

func TestBakeTweenEndpoints(t *testing.T) {
	keys := BakeTween(0, 100, 10, 20, 5, ease.Linear)

	want := []int{10, 15, 20, 25, 30}
	if len(keys) != len(want) {
		t.Fatalf("len = %d, want %d", len(keys), len(want))
	}
	for i, f := range want {
		if keys[i].Frame != f {
			t.Errorf("keys[%d].Frame = %d, want %d", i, keys[i].Frame, f)
		}
	}
	if keys[0].Value != 0 {
		t.Errorf("first value = %v, want 0", keys[0].Value)
	}
	if keys[len(keys)-1].Value != 100 {
		t.Errorf("last value = %v, want 100", keys[len(keys)-1].Value)
	}
	if math.Abs(keys[2].Value-50) > 0.01 {
		t.Errorf("middle value = %v, want ~50", keys[2].Value)
	}
}

func TestBakeTweenZeroFrames(t *testing.T) {
	keys := BakeTween(0, 7, 3, 0, 1, ease.Linear)
	if len(keys) != 1 || keys[0].Frame != 3 || keys[0].Value != 7 {
		t.Errorf("keys = %v, want single key {3 7}", keys)
	}
}
