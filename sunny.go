package weather

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderEnv is what a layer renderer may read besides its own root. Dark and
// ReducedMotion are sampled once, when the engine rebuilds.
type RenderEnv struct {
	Doc           *Document
	Config        Config
	Dark          bool
	ReducedMotion bool
	Logger        *log.Logger
}

// Renderer populates root with one mode's layers. Renderers only append under
// root. The rain renderer returns its live simulation, the others nil.
type Renderer func(root *Node, env RenderEnv) *RainSimulation

// Gradient texture resolutions. Textures are stretched over their box.
const (
	skyTextureW, skyTextureH = 192, 108
	sunTextureSize           = 64
)

// sunPalette holds the sun's gradient stops for one color scheme.
type sunPalette struct {
	core, mid, outer, halo Color
}

var (
	sunLight = sunPalette{
		core:  rgba(255, 252, 248, 0.5),
		mid:   rgba(255, 245, 225, 0.35),
		outer: rgba(255, 232, 210, 0.18),
		halo:  rgba(255, 218, 190, 0.06),
	}
	sunDark = sunPalette{
		core:  rgba(255, 248, 235, 0.45),
		mid:   rgba(255, 240, 210, 0.28),
		outer: rgba(255, 228, 200, 0.12),
		halo:  rgba(255, 220, 180, 0.04),
	}
)

// RenderSunny builds the clear-sky layers: a far haze, the sun disc in the
// top band, and two breathing glows.
func RenderSunny(root *Node, env RenderEnv) *RainSimulation {
	if root == nil {
		return nil
	}
	wrap := NewContainer("weather-sunny")
	wrap.AddClass("weather-layer", "weather-sunny")

	haze := skyLayer("weather-sunny-haze", &RadialGradient{
		CenterX: 0.5, CenterY: -0.25,
		RadiusX: 2, RadiusY: 1.4,
		Stops: []GradientStop{
			{Offset: 0, Color: rgba(255, 248, 240, 0.04)},
			{Offset: 0.40, Color: rgba(255, 242, 230, 0.015)},
			{Offset: 0.65, Color: rgba(255, 242, 230, 0)},
		},
	})
	haze.SetZIndex(0)
	wrap.AddChild(haze)

	wrap.AddChild(sunBand(env.Dark))

	base := skyLayer("weather-sunny-base", &RadialGradient{
		CenterX: 0.5, CenterY: -0.18,
		RadiusX: 1.3, RadiusY: 0.85,
		Stops: []GradientStop{
			{Offset: 0, Color: rgba(255, 242, 220, 0.12)},
			{Offset: 0.38, Color: rgba(255, 232, 200, 0.05)},
			{Offset: 0.58, Color: rgba(255, 225, 190, 0.02)},
			{Offset: 0.72, Color: rgba(255, 225, 190, 0)},
		},
	})
	base.SetZIndex(2)
	base.Animation = &Animation{Keyframes: "weather-sunny-pulse", Duration: 16 * time.Second, Easing: easeBreath}
	wrap.AddChild(base)

	ray := skyLayer("weather-sunny-ray", &RadialGradient{
		CenterX: 0.5, CenterY: 0,
		RadiusX: 0.55, RadiusY: 0.38,
		Stops: []GradientStop{
			{Offset: 0, Color: rgba(255, 250, 240, 0.18)},
			{Offset: 0.45, Color: rgba(255, 246, 230, 0.06)},
			{Offset: 0.62, Color: rgba(255, 246, 230, 0)},
		},
	})
	ray.SetZIndex(3)
	ray.Animation = &Animation{Keyframes: "weather-sunny-ray", Duration: 18 * time.Second, Easing: easeBreath}
	wrap.AddChild(ray)

	root.AddChild(wrap)
	return nil
}

// skyLayer is a full-box decorative sprite painted with g.
func skyLayer(name string, g *RadialGradient) *Node {
	n := NewSprite(name, 0, 0)
	n.AddClass("weather-layer")
	n.Decorative = true
	n.SetOwnedImage(g.Texture(skyTextureW, skyTextureH))
	return n
}

// sunBand is the top 28% of the viewport with the sun centered in it.
func sunBand(dark bool) *Node {
	pal := sunLight
	if dark {
		pal = sunDark
	}

	band := NewContainer("weather-sun-band")
	band.Decorative = true
	band.SetZIndex(1)
	band.Layout = func(n *Node, w, h float64) {
		n.X, n.Y = 0, 0
		n.Width, n.Height = w, h*0.28
	}

	// vmin is the viewport's smaller side, seen through the band.
	var vmin float64
	sun := NewContainer("weather-sun")
	sun.AddClass("weather-sun")
	sun.Decorative = true
	sun.Animation = &Animation{Keyframes: "weather-sunny-sun", Duration: 22 * time.Second, Easing: easeBreath}
	sun.Layout = func(n *Node, w, h float64) {
		vmin = math.Min(w, h/0.28)
		size := clampf(vmin*0.06, 32, 48)
		pad := clampf(8, w*0.01, w*0.03)
		n.Width, n.Height = size, size
		n.X, n.Y = (w-size)/2, pad
	}

	for i, g := range []struct {
		blur, spread [3]float64 // min, vmin fraction, max
		color        Color
	}{
		{[3]float64{12, 0.025, 24}, [3]float64{4, 0.01, 12}, rgba(255, 238, 210, 0.12)},
		{[3]float64{24, 0.05, 48}, [3]float64{6, 0.015, 16}, rgba(255, 225, 190, 0.06)},
	} {
		glow := NewSprite("weather-sun-glow", 0, 0)
		glow.Decorative = true
		glow.SetZIndex(-1 - i)
		glow.SetOwnedImage(glowTexture(g.color))
		glow.Layout = func(n *Node, sw, sh float64) {
			blur := clampf(vmin*g.blur[1], g.blur[0], g.blur[2])
			spread := clampf(vmin*g.spread[1], g.spread[0], g.spread[2])
			size := sw + 2*(spread+blur)
			n.Width, n.Height = size, size
			n.X, n.Y = (sw-size)/2, (sh-size)/2
		}
		sun.AddChild(glow)
	}

	disc := NewSprite("weather-sun-disc", 0, 0)
	disc.Decorative = true
	disc.SetOwnedImage((&RadialGradient{
		CenterX: 0.3, CenterY: 0.3,
		RadiusX: 0.99, RadiusY: 0.99,
		ClipEllipse: true,
		Stops: []GradientStop{
			{Offset: 0, Color: pal.core},
			{Offset: 0.28, Color: pal.mid},
			{Offset: 0.55, Color: pal.outer},
			{Offset: 0.78, Color: pal.halo},
			{Offset: 1, Color: pal.halo.WithAlpha(0)},
		},
	}).Texture(sunTextureSize, sunTextureSize))
	disc.Layout = func(n *Node, w, h float64) {
		n.X, n.Y = 0, 0
		n.Width, n.Height = w, h
	}
	sun.AddChild(disc)

	band.AddChild(sun)
	return band
}

// glowTexture is a soft disc that fades from c at half radius to nothing.
func glowTexture(c Color) *ebiten.Image {
	return (&RadialGradient{
		CenterX: 0.5, CenterY: 0.5,
		RadiusX: 0.5, RadiusY: 0.5,
		Stops: []GradientStop{
			{Offset: 0, Color: c},
			{Offset: 0.5, Color: c},
			{Offset: 1, Color: c.WithAlpha(0)},
		},
	}).Texture(sunTextureSize, sunTextureSize)
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
