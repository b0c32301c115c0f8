package weather

import (
	"testing"
	"time"
)

// renderInto lays out r's layers in a w x h document with the weather sheet
// installed.
func renderInto(t *testing.T, w, h int, r Renderer, env RenderEnv) (*Document, *Node) {
	t.Helper()
	d := NewDocument(w, h)
	d.InjectStyle(NewWeatherStyleSheet(time.Second))
	c := NewContainer("weather-effect")
	c.AddClass(baseClasses...)
	d.Root().AddChild(c)
	env.Doc = d
	env.Config = DefaultConfig()
	r(c, env)
	d.layout()
	return d, c
}

func findNode(root *Node, name string) *Node {
	var found *Node
	root.Walk(func(n *Node) bool {
		if found == nil && n.Name == name {
			found = n
		}
		return found == nil
	})
	return found
}

func TestRenderSunnyLayers(t *testing.T) {
	_, c := renderInto(t, 1920, 1080, RenderSunny, RenderEnv{})
	if c.NumChildren() != 1 {
		t.Fatalf("container children = %d, want 1", c.NumChildren())
	}
	wrap := c.ChildAt(0)
	if !wrap.HasClass("weather-sunny") || wrap.Width != 1920 || wrap.Height != 1080 {
		t.Errorf("wrapper = %v %vx%v", wrap.Classes(), wrap.Width, wrap.Height)
	}
	want := []string{"weather-sunny-haze", "weather-sun-band", "weather-sunny-base", "weather-sunny-ray"}
	got := wrap.orderedChildren()
	if len(got) != len(want) {
		t.Fatalf("layers = %d, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("layer %d = %q, want %q", i, got[i].Name, name)
		}
		if !got[i].Decorative {
			t.Errorf("%s should be decorative", name)
		}
	}
	if base := findNode(wrap, "weather-sunny-base"); base.Animation == nil || base.Animation.Keyframes != "weather-sunny-pulse" {
		t.Error("base glow should pulse")
	}
}

func TestSunSizing(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		size     float64
		pad      float64
		bandH    float64
		glowSize float64
	}{
		// vmin 1080: size caps at 48, inner glow blur caps at 24.
		{"1080p", 1920, 1080, 48, 19.2, 302.4, 48 + 2*(10.8+24)},
		// vmin 300: size floors at 32.
		{"small", 400, 300, 32, 8, 84, 32 + 2*(4+12)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := renderInto(t, tt.w, tt.h, RenderSunny, RenderEnv{})
			band := findNode(c, "weather-sun-band")
			if !approxEqual(band.Height, tt.bandH, 1e-9) {
				t.Errorf("band height = %v, want %v", band.Height, tt.bandH)
			}
			sun := findNode(c, "weather-sun")
			if sun.Width != tt.size || sun.Height != tt.size {
				t.Errorf("sun = %vx%v, want %v", sun.Width, sun.Height, tt.size)
			}
			if !approxEqual(sun.Y, tt.pad, 1e-9) {
				t.Errorf("sun.Y = %v, want %v", sun.Y, tt.pad)
			}
			if !approxEqual(sun.X, (float64(tt.w)-tt.size)/2, 1e-9) {
				t.Errorf("sun.X = %v, want centered", sun.X)
			}
			glow := findNode(sun, "weather-sun-glow")
			if !approxEqual(glow.Width, tt.glowSize, 1e-9) {
				t.Errorf("glow = %v, want %v", glow.Width, tt.glowSize)
			}
			disc := findNode(sun, "weather-sun-disc")
			if disc.Width != tt.size {
				t.Errorf("disc = %v, want %v", disc.Width, tt.size)
			}
		})
	}
}

func TestSunDiscDrawsOverGlows(t *testing.T) {
	_, c := renderInto(t, 800, 600, RenderSunny, RenderEnv{})
	ordered := findNode(c, "weather-sun").orderedChildren()
	if last := ordered[len(ordered)-1]; last.Name != "weather-sun-disc" {
		t.Errorf("topmost sun child = %q, want the disc", last.Name)
	}
}

func TestRenderSunnyNilRoot(t *testing.T) {
	if RenderSunny(nil, RenderEnv{}) != nil {
		t.Error("nil root should return nil")
	}
}
