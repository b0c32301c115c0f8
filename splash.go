package weather

import (
	"math"
	"math/rand/v2"
)

// Splash is a short-lived burst of rays where a drop hit a zone top. It ages
// one tick per drawn frame and is removed when Life reaches MaxLife.
type Splash struct {
	X, Y    float64
	Life    int
	MaxLife int
	Opacity float64
	Rays    int
}

var (
	splashLight = ColorWhite.WithAlpha(0.6)
	splashDark  = ColorWhite.WithAlpha(0.45)
)

const (
	splashLineWidth = 1
	splashBaseLen   = 2
	splashGrowLen   = 14
)

// trySplash creates a splash when a drop moving from prevY to y at x crossed
// the top of a zone within its span. The first matching zone wins. It
// reports false when nothing matched or the splash cap is reached.
func (s *RainSimulation) trySplash(x, prevY, y float64) bool {
	for _, z := range s.zones {
		if y < z.Top || prevY >= z.Top {
			continue
		}
		if x < z.Left || x > z.Right {
			continue
		}
		if len(s.splashes) >= s.cfg.SplashCap {
			return false
		}
		s.splashes = append(s.splashes, Splash{
			X:       x,
			Y:       z.Top,
			MaxLife: s.cfg.SplashMaxLife,
			Opacity: 0.28 + rand.Float64()*0.2,
			Rays:    s.cfg.SplashRays + rand.IntN(2),
		})
		return true
	}
	return false
}

// stepSplashes draws every splash onto ctx, then ages it and drops the
// expired ones. Each ray's length grows with an ease-out curve while its
// alpha decays on a power curve.
func (s *RainSimulation) stepSplashes(ctx *Context2D) {
	if ctx == nil {
		return
	}
	c := ctx.Canvas()
	if c.Width() <= 0 || c.Height() <= 0 {
		return
	}
	stroke := splashLight
	if s.doc.Dark() {
		stroke = splashDark
	}
	for i := len(s.splashes) - 1; i >= 0; i-- {
		sp := &s.splashes[i]
		t := float64(sp.Life) / float64(sp.MaxLife)
		length := splashBaseLen + (1-math.Pow(1-t, 1.6))*splashGrowLen
		alpha := math.Pow(1-t, 1.3) * sp.Opacity
		for r := range sp.Rays {
			angle := -math.Pi*0.28 -
				float64(r)/float64(max(1, sp.Rays-1))*math.Pi*0.6 +
				(rand.Float64()-0.5)*0.35
			ex := sp.X + math.Cos(angle)*length*(0.55+rand.Float64()*0.45)
			ey := sp.Y + math.Sin(angle)*length*0.5
			ctx.StrokeLine(sp.X, sp.Y, ex, ey, splashLineWidth, stroke, alpha)
		}
		sp.Life++
		if sp.Life >= sp.MaxLife {
			s.splashes = append(s.splashes[:i], s.splashes[i+1:]...)
		}
	}
}
