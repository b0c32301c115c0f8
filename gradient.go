package weather

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// GradientStop is one color stop. Offset is the fraction of the way from the
// gradient center to its edge ellipse.
type GradientStop struct {
	Offset float64
	Color  Color
}

// RadialGradient is an elliptical gradient laid out in fractions of the box it
// fills, so one texture can be stretched over any box size. Past the last
// stop the gradient is transparent.
type RadialGradient struct {
	// CenterX, CenterY locate the center. Values outside [0, 1] place it
	// outside the box.
	CenterX, CenterY float64
	// RadiusX, RadiusY are the ellipse radii.
	RadiusX, RadiusY float64
	Stops            []GradientStop
	// ClipEllipse limits painting to the ellipse inscribed in the box.
	ClipEllipse bool
}

// at returns the premultiplied color at gradient distance t.
func (g *RadialGradient) at(t float64) (c colorful.Color, a float64) {
	stops := g.Stops
	if len(stops) == 0 || t >= stops[len(stops)-1].Offset {
		return colorful.Color{}, 0
	}
	if t <= stops[0].Offset {
		return premultiplied(stops[0].Color), stops[0].Color.A
	}
	for i := 1; i < len(stops); i++ {
		s0, s1 := stops[i-1], stops[i]
		if t > s1.Offset {
			continue
		}
		u := 0.0
		if span := s1.Offset - s0.Offset; span > 0 {
			u = (t - s0.Offset) / span
		}
		c = premultiplied(s0.Color).BlendRgb(premultiplied(s1.Color), u)
		return c, lerp(s0.Color.A, s1.Color.A, u)
	}
	return colorful.Color{}, 0
}

func premultiplied(c Color) colorful.Color {
	return colorful.Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A}
}

// Rasterize renders the gradient into a w x h premultiplied RGBA image.
func (g *RadialGradient) Rasterize(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 || g.RadiusX <= 0 || g.RadiusY <= 0 {
		return img
	}
	for py := 0; py < h; py++ {
		fy := (float64(py) + 0.5) / float64(h)
		for px := 0; px < w; px++ {
			fx := (float64(px) + 0.5) / float64(w)
			if g.ClipEllipse {
				ex, ey := (fx-0.5)*2, (fy-0.5)*2
				if ex*ex+ey*ey > 1 {
					continue
				}
			}
			dx := (fx - g.CenterX) / g.RadiusX
			dy := (fy - g.CenterY) / g.RadiusY
			c, a := g.at(math.Hypot(dx, dy))
			if a <= 0 {
				continue
			}
			img.SetRGBA(px, py, color.RGBA{
				R: uint8(clamp01(c.R)*255 + 0.5),
				G: uint8(clamp01(c.G)*255 + 0.5),
				B: uint8(clamp01(c.B)*255 + 0.5),
				A: uint8(clamp01(a)*255 + 0.5),
			})
		}
	}
	return img
}

// Texture rasterizes the gradient into a new ebiten image.
func (g *RadialGradient) Texture(w, h int) *ebiten.Image {
	return ebiten.NewImageFromImage(g.Rasterize(w, h))
}

// softEllipse renders a filled ellipse of color c whose edge fades out over
// feather, a fraction of the radius in [0, 1]. It stands in for a blurred
// rounded box.
func softEllipse(w, h int, c Color, feather float64) *image.RGBA {
	feather = clamp01(feather)
	inner := 1 - feather
	g := &RadialGradient{
		CenterX: 0.5, CenterY: 0.5,
		RadiusX: 0.5, RadiusY: 0.5,
		Stops: []GradientStop{
			{Offset: 0, Color: c},
			{Offset: inner, Color: c},
			{Offset: 1, Color: c.WithAlpha(0)},
		},
	}
	if feather == 0 {
		g.ClipEllipse = true
		g.Stops = g.Stops[:2]
		g.Stops[1].Offset = 1
		g.Stops = append(g.Stops, GradientStop{Offset: 1.0001, Color: c.WithAlpha(0)})
	}
	return g.Rasterize(w, h)
}
