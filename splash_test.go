package weather

import "testing"

// splashRig returns a simulation with no drops and one zone spanning
// x in [80, 120] at y = 50.
func splashRig(t *testing.T) *RainSimulation {
	t.Helper()
	s, _, _ := newRain(t, 800, 600)
	s.backDrops = nil
	s.frontDrops = nil
	s.zones = []SplashZone{{Top: 50, Left: 80, Right: 120}}
	return s
}

func crossingDrop(x float64) Drop {
	return Drop{X: x, Y: 49, Len: 10, Speed: 2, Layer: 1, Opacity: 0.2}
}

func TestSplashLifecycle(t *testing.T) {
	s := splashRig(t)
	s.frontDrops = []Drop{crossingDrop(100)}

	s.Step(0)
	sp := s.Splashes()
	if len(sp) != 1 {
		t.Fatalf("splashes = %d, want 1", len(sp))
	}
	if sp[0].X != 100 || sp[0].Y != 50 {
		t.Errorf("splash at (%v, %v), want (100, 50)", sp[0].X, sp[0].Y)
	}
	if sp[0].Life != 1 || sp[0].MaxLife != 22 {
		t.Errorf("Life = %d, MaxLife = %d; want 1, 22", sp[0].Life, sp[0].MaxLife)
	}
	if sp[0].Rays != 5 && sp[0].Rays != 6 {
		t.Errorf("Rays = %d, want 5 or 6", sp[0].Rays)
	}
	if sp[0].Opacity < 0.28 || sp[0].Opacity >= 0.48 {
		t.Errorf("Opacity = %v, want in [0.28, 0.48)", sp[0].Opacity)
	}

	for range 20 {
		s.Step(0)
	}
	if len(s.Splashes()) != 1 {
		t.Fatalf("splash expired early")
	}
	s.Step(0)
	if len(s.Splashes()) != 0 {
		t.Errorf("splash should be gone after 22 frames, have %d", len(s.Splashes()))
	}
}

func TestSplashRequiresCrossing(t *testing.T) {
	tests := []struct {
		name string
		drop Drop
		want int
	}{
		{"inside span", crossingDrop(100), 1},
		{"left edge", crossingDrop(80), 1},
		{"right edge", crossingDrop(120), 1},
		{"outside span", crossingDrop(130), 0},
		{"already below", Drop{X: 100, Y: 50, Len: 10, Speed: 2, Layer: 1}, 0},
		{"not reached", Drop{X: 100, Y: 40, Len: 10, Speed: 2, Layer: 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := splashRig(t)
			s.frontDrops = []Drop{tt.drop}
			s.Step(0)
			if got := len(s.Splashes()); got != tt.want {
				t.Errorf("splashes = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSplashBackLayerNeverSplashes(t *testing.T) {
	s := splashRig(t)
	d := crossingDrop(100)
	d.Layer = 0
	s.backDrops = []Drop{d}
	s.Step(0)
	if len(s.Splashes()) != 0 {
		t.Error("back layer drops should not splash")
	}
}

func TestSplashPerFrameCap(t *testing.T) {
	s := splashRig(t)
	for range 10 {
		s.frontDrops = append(s.frontDrops, crossingDrop(100))
	}
	s.Step(0)
	if got := len(s.Splashes()); got != 4 {
		t.Errorf("splashes = %d, want 4 per frame", got)
	}
}

func TestSplashGlobalCap(t *testing.T) {
	s := splashRig(t)
	for range 48 {
		s.splashes = append(s.splashes, Splash{X: 0, Y: 0, MaxLife: 100, Rays: 5, Opacity: 0.3})
	}
	s.frontDrops = []Drop{crossingDrop(100)}
	s.Step(0)

	sp := s.Splashes()
	if len(sp) != 48 {
		t.Fatalf("splashes = %d, want cap 48", len(sp))
	}
	for _, x := range sp {
		if x.X == 100 {
			t.Fatal("no splash should be added at the cap")
		}
	}
}

func TestSplashFirstZoneWins(t *testing.T) {
	s := splashRig(t)
	s.zones = []SplashZone{
		{Top: 50, Left: 80, Right: 120},
		{Top: 49.5, Left: 80, Right: 120},
	}
	s.frontDrops = []Drop{crossingDrop(100)}
	s.Step(0)

	sp := s.Splashes()
	if len(sp) != 1 || sp[0].Y != 50 {
		t.Errorf("splashes = %+v, want one at the first zone's top", sp)
	}
}
