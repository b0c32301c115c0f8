package weather

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

// --- Tweens ---

func TestTweenAlphaReachesTarget(t *testing.T) {
	n := NewContainer("n")
	g := TweenAlpha(n, 0, 1.0, ease.Linear)

	g.Update(0.5)
	if math.Abs(n.Alpha-0.5) > 0.01 {
		t.Errorf("Alpha at half = %v, want ~0.5", n.Alpha)
	}
	if g.Done {
		t.Error("should not be done at half")
	}

	g.Update(0.5)
	if n.Alpha != 0 {
		t.Errorf("Alpha = %v, want 0", n.Alpha)
	}
	if !g.Done {
		t.Error("should be done")
	}
}

func TestTweenOnCompleteRunsOnce(t *testing.T) {
	n := NewContainer("n")
	g := TweenAlpha(n, 0.2, 0.5, ease.Linear)
	calls := 0
	g.OnComplete = func() { calls++ }

	g.Update(1)
	g.Update(1)
	if calls != 1 {
		t.Errorf("OnComplete calls = %d, want 1", calls)
	}
}

func TestTweenStopsOnDisposedTarget(t *testing.T) {
	n := NewContainer("n")
	g := TweenAlpha(n, 0, 1.0, ease.Linear)
	called := false
	g.OnComplete = func() { called = true }

	n.Dispose()
	g.Update(0.5)
	if !g.Done {
		t.Error("group should stop once the target is disposed")
	}
	if called {
		t.Error("OnComplete should not run for a disposed target")
	}
}

// --- Cubic bezier ---

func TestCubicBezierEndpoints(t *testing.T) {
	fn := CubicBezier(0.33, 0, 0.2, 1)
	if v := fn(0, 0, 1, 1); v != 0 {
		t.Errorf("f(0) = %v, want 0", v)
	}
	if v := fn(1, 0, 1, 1); v != 1 {
		t.Errorf("f(1) = %v, want 1", v)
	}
	if v := fn(0, 3, 2, 0); v != 5 {
		t.Errorf("zero duration = %v, want b+c", v)
	}
}

func TestCubicBezierMonotonic(t *testing.T) {
	for _, fn := range []ease.TweenFunc{easeTransition, easeBreath, easeDrift} {
		prev := float32(-1)
		for i := 0; i <= 100; i++ {
			v := fn(float32(i)/100, 0, 1, 1)
			if v < prev-1e-5 {
				t.Fatalf("not monotonic at %d: %v < %v", i, v, prev)
			}
			prev = v
		}
	}
}

func TestCubicBezierLinear(t *testing.T) {
	fn := CubicBezier(0, 0, 1, 1)
	for _, p := range []float32{0.1, 0.25, 0.5, 0.9} {
		if v := fn(p, 0, 1, 1); math.Abs(float64(v-p)) > 1e-4 {
			t.Errorf("f(%v) = %v, want %v", p, v, p)
		}
	}
}

// --- Keyframes ---

func TestKeyframesSample(t *testing.T) {
	k := NewWeatherStyleSheet(0).Keyframes["weather-sunny-pulse"]
	tests := []struct {
		p, want float64
	}{
		{0, 0.5},
		{0.25, 0.625},
		{0.5, 0.75},
		{0.75, 0.625},
	}
	for _, tt := range tests {
		st := k.sample(tt.p, nil)
		if math.Abs(st.opacity-tt.want) > 1e-9 {
			t.Errorf("sample(%v).opacity = %v, want %v", tt.p, st.opacity, tt.want)
		}
		if st.scale != 1 {
			t.Errorf("opacity-only keyframes changed scale to %v", st.scale)
		}
	}
}

func TestKeyframesSampleShift(t *testing.T) {
	k := NewWeatherStyleSheet(0).Keyframes["weather-cloud-drift"]
	st := k.sample(0.5, nil)
	if math.Abs(st.shiftX-0.5) > 1e-9 {
		t.Errorf("shiftX = %v, want 0.5", st.shiftX)
	}
}

func TestAnimationNegativeDelayStartsMidCycle(t *testing.T) {
	a := &Animation{Duration: 10 * time.Second, Delay: -5 * time.Second}
	p, ok := a.progress()
	if !ok || math.Abs(p-0.5) > 1e-9 {
		t.Errorf("progress = %v, %v; want 0.5, true", p, ok)
	}
}

func TestAnimationPositiveDelayHoldsRest(t *testing.T) {
	a := &Animation{Duration: 10 * time.Second, Delay: 2 * time.Second}
	a.advance(time.Second)
	if _, ok := a.progress(); ok {
		t.Error("animation should be at rest during its delay")
	}
	a.advance(2 * time.Second)
	p, ok := a.progress()
	if !ok || math.Abs(p-0.1) > 1e-9 {
		t.Errorf("progress = %v, %v; want 0.1, true", p, ok)
	}
}

func TestAnimationLoops(t *testing.T) {
	a := &Animation{Duration: 4 * time.Second}
	a.advance(9 * time.Second)
	p, _ := a.progress()
	if math.Abs(p-0.25) > 1e-9 {
		t.Errorf("progress = %v, want 0.25", p)
	}
}

func TestDocumentAnimatesOnlyWithSheet(t *testing.T) {
	d := NewDocument(100, 100)
	n := NewContainer("pulse")
	n.Alpha = 0.9
	n.Animation = &Animation{Keyframes: "weather-sunny-pulse", Duration: 16 * time.Second}
	d.Root().AddChild(n)

	d.Tick(4 * time.Second)
	if n.effectiveAlpha() != 0.9 {
		t.Errorf("without keyframes alpha = %v, want static 0.9", n.effectiveAlpha())
	}

	d.InjectStyle(NewWeatherStyleSheet(time.Second))
	d.Tick(4 * time.Second) // 8s into a 16s cycle
	if math.Abs(n.effectiveAlpha()-0.75) > 1e-9 {
		t.Errorf("animated alpha = %v, want 0.75", n.effectiveAlpha())
	}
}
