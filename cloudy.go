package weather

import (
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// cloudLayer describes one depth band of clouds. Farther bands are smaller on
// screen, blurrier and fainter.
type cloudLayer struct {
	count, reducedCount int
	size                Range // px, cloud width
	top                 Range // percent of viewport height
	duration            Range // seconds per drift cycle
	keyframes           string
	opacity             float64
	blur                float64 // px
	zIndex              int
	scale               float64
	dark, light         Color
}

var cloudLayers = [3]cloudLayer{
	{
		count: 4, reducedCount: 2,
		size: Range{120, 220}, top: Range{2, 14}, duration: Range{72, 110},
		keyframes: "weather-cloud-drift-slow",
		opacity: 0.05, blur: 10, zIndex: 1, scale: 0.82,
		dark: rgba(248, 250, 252, 0.05), light: rgba(248, 252, 255, 0.09),
	},
	{
		count: 5, reducedCount: 2,
		size: Range{80, 165}, top: Range{5, 24}, duration: Range{52, 88},
		keyframes: "weather-cloud-drift",
		opacity: 0.085, blur: 5, zIndex: 2, scale: 0.94,
		dark: rgba(255, 255, 255, 0.06), light: rgba(255, 255, 255, 0.11),
	},
	{
		count: 4, reducedCount: 1,
		size: Range{50, 115}, top: Range{9, 30}, duration: Range{34, 58},
		keyframes: "weather-cloud-drift",
		opacity: 0.14, blur: 1.5, zIndex: 3, scale: 1.04,
		dark: rgba(255, 255, 255, 0.07), light: rgba(255, 255, 255, 0.13),
	},
}

const (
	cloudAspect     = 0.52
	cloudMaxDelay   = 35 * time.Second
	cloudTextureW   = 96
	cloudTextureH   = 50
	cloudShadowOffX = 0.18
	cloudShadowOffY = 0.10
	cloudShadowBlur = 0.38
)

var cloudShadowColor = rgba(255, 255, 255, 0.05)

// RenderCloudy renders the sunny sky, then three bands of drifting clouds.
// Reduced motion lowers the cloud counts.
func RenderCloudy(root *Node, env RenderEnv) *RainSimulation {
	if root == nil {
		return nil
	}
	RenderSunny(root, env)

	for _, cfg := range cloudLayers {
		count := cfg.count
		if env.ReducedMotion {
			count = cfg.reducedCount
		}
		bg := cfg.light
		if env.Dark {
			bg = cfg.dark
		}
		for range count {
			root.AddChild(newCloud(cfg, bg))
		}
	}
	return nil
}

// newCloud builds one cloud: a positioned, scaled outer box holding the
// drifting cloud body and its soft shadow.
func newCloud(cfg cloudLayer, bg Color) *Node {
	size := cfg.size.Random()
	top := cfg.top.Random()
	duration := time.Duration(cfg.duration.Random() * float64(time.Second))
	delay := -time.Duration(rand.Float64() * float64(cloudMaxDelay))

	outer := NewContainer("weather-cloud-outer")
	outer.AddClass("weather-cloud-outer")
	outer.Decorative = true
	outer.SetZIndex(cfg.zIndex)
	outer.SetScale(cfg.scale, cfg.scale)
	outer.Layout = func(n *Node, w, h float64) {
		n.X, n.Y = -0.1*w, top/100*h
	}

	w, h := size, size*cloudAspect
	cloud := NewContainer("weather-cloud")
	cloud.AddClass("weather-cloud")
	cloud.Decorative = true
	cloud.SetSize(w, h)
	cloud.Alpha = cfg.opacity
	cloud.Animation = &Animation{
		Keyframes: cfg.keyframes,
		Duration:  duration,
		Delay:     delay,
		Easing:    easeDrift,
	}

	// Blur is baked into the texture edge: the fade spans about twice the
	// blur radius, measured against the short semi-axis.
	feather := clamp01(2 * cfg.blur / (h / 2))
	body := NewSprite("weather-cloud-body", w, h)
	body.Decorative = true
	body.SetOwnedImage(ebiten.NewImageFromImage(softEllipse(cloudTextureW, cloudTextureH, bg, feather)))

	sblur := size * cloudShadowBlur
	shadow := NewSprite("weather-cloud-shadow", w+2*sblur, h+2*sblur)
	shadow.Decorative = true
	shadow.SetZIndex(-1)
	shadow.SetPosition(size*cloudShadowOffX-sblur, size*cloudShadowOffY-sblur)
	shadow.SetOwnedImage(ebiten.NewImageFromImage(softEllipse(cloudTextureW, cloudTextureH, cloudShadowColor, 1)))

	cloud.AddChild(shadow)
	cloud.AddChild(body)
	outer.AddChild(cloud)
	return outer
}
