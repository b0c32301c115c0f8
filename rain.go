package weather

import (
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// Drop is one rain streak. Layer is fixed at creation: layer 0 draws on the
// back canvas, layers 1 and 2 on the front canvas.
type Drop struct {
	X, Y    float64
	Len     float64
	Speed   float64
	Opacity float64
	Wind    float64
	Layer   int
	Phase   float64
}

// RainStats describes the most recent simulation frame.
type RainStats struct {
	Frame      int
	BackDrops  int
	FrontDrops int
	Splashes   int
	Zones      int
	StepTime   time.Duration
	DrawTime   time.Duration
}

// Stroke colors. Alpha is scaled per drop by its opacity.
var (
	strokeBackLight  = ColorWhite.WithAlpha(0.3)
	strokeBackDark   = ColorWhite.WithAlpha(0.18)
	strokeFrontLight = ColorWhite.WithAlpha(0.38)
	strokeFrontDark  = ColorWhite.WithAlpha(0.22)
)

const (
	dropLineWidth = 0.9
	windDrift     = 0.6
	wobbleRate    = 0.002 // radians per millisecond
	wobbleAmp     = 0.8
	wrapMargin    = 10
)

// RainSimulation owns the drops and splashes of one rain layer and redraws
// its two canvases every frame until destroyed or detached.
type RainSimulation struct {
	doc       *Document
	cfg       Config
	logger    *log.Logger
	container *Node
	wrap      *Node
	back      *Canvas
	front     *Canvas
	ctxBack   *Context2D
	ctxFront  *Context2D

	backDrops  []Drop
	frontDrops []Drop
	splashes   []Splash
	zones      []SplashZone

	frame        int
	lastW, lastH int

	strokeBack, strokeFront Color

	frameID   FrameID
	resizeID  ListenerID
	destroyed bool
	stats     RainStats
}

// PopulationSize returns the drop budget for a viewport before the per-layer
// split: the viewport area over cfg.AreaPerDrop, scaled by cfg.ReducedFactor
// under reduced motion, capped at cfg.MaxDrops.
func PopulationSize(w, h int, reduced bool, cfg Config) float64 {
	n := math.Floor(float64(max(w, 0)) * float64(max(h, 0)) / cfg.AreaPerDrop)
	if reduced {
		n *= cfg.ReducedFactor
	}
	return math.Min(float64(cfg.MaxDrops), n)
}

// perLayer splits a population evenly over three layers, at least one each.
func perLayer(population float64) int {
	return max(1, int(math.Floor(population/3)))
}

// RenderRain attaches the rain wrapper with its back and front canvases
// under root and starts the simulation. When either canvas cannot provide
// a 2D context the layer stays blank and nil is returned.
func RenderRain(root *Node, env RenderEnv) *RainSimulation {
	if root == nil || env.Doc == nil {
		return nil
	}
	d := env.Doc
	logger := env.Logger
	if logger == nil {
		logger = d.logger
	}

	wrap := NewContainer("weather-rain")
	wrap.AddClass("weather-layer")

	back := d.NewCanvasNode("weather-rain-back")
	back.AddClass("weather-rain-canvas", "weather-layer", "weather-rain-back")
	back.Decorative = true
	wrap.AddChild(back)

	front := d.NewCanvasNode("weather-rain-front")
	front.AddClass("weather-rain-canvas", "weather-layer", "weather-rain-front")
	front.Decorative = true
	wrap.AddChild(front)

	root.AddChild(wrap)

	ctxBack, ctxFront := back.Canvas().Context(), front.Canvas().Context()
	if ctxBack == nil || ctxFront == nil {
		logger.Debug("rain: 2d context unavailable")
		return nil
	}

	s := &RainSimulation{
		doc:       d,
		cfg:       env.Config,
		logger:    logger,
		container: root,
		wrap:      wrap,
		back:      back.Canvas(),
		front:     front.Canvas(),
		ctxBack:   ctxBack,
		ctxFront:  ctxFront,
	}
	s.strokeBack, s.strokeFront = strokeBackLight, strokeFrontLight
	if env.Dark {
		s.strokeBack, s.strokeFront = strokeBackDark, strokeFrontDark
	}

	vw, vh := d.Viewport()
	s.populate(vw, vh, env.ReducedMotion)
	s.zones = ProbeZones(d, s.cfg)

	s.resize(vw, vh)
	s.resizeID = d.AddResizeListener(s.resize)
	s.frameID = d.RequestFrame(s.onFrame)
	return s
}

// populate seeds every layer with randomized drops spread over the viewport
// and a margin above and to both sides of it.
func (s *RainSimulation) populate(vw, vh int, reduced bool) {
	pop := PopulationSize(vw, vh, reduced, s.cfg)
	n := perLayer(pop)
	s.logger.Debug("rain population", "viewport", [2]int{vw, vh}, "reduced", reduced, "budget", pop, "perLayer", n)

	s.backDrops = make([]Drop, 0, n)
	s.frontDrops = make([]Drop, 0, 2*n)
	for layer, lc := range s.cfg.Layers {
		for range n {
			d := Drop{
				X:       rand.Float64()*float64(vw+100) - 50,
				Y:       rand.Float64()*float64(vh+50) - 50,
				Len:     lc.Length.Random(),
				Speed:   lc.Speed.Random(),
				Opacity: lc.Opacity.Random(),
				Wind:    lc.Wind,
				Layer:   layer,
				Phase:   rand.Float64() * 2 * math.Pi,
			}
			if layer == 0 {
				s.backDrops = append(s.backDrops, d)
			} else {
				s.frontDrops = append(s.frontDrops, d)
			}
		}
	}
}

// onFrame is the scheduled frame callback. It stops for good once the
// simulation is destroyed or its wrapper has left the document.
func (s *RainSimulation) onFrame(now time.Duration) {
	s.frameID = 0
	if s.destroyed || !s.attached() {
		return
	}
	if s.back.Width() > 0 && s.back.Height() > 0 {
		s.Step(now)
	}
	s.frameID = s.doc.RequestFrame(s.onFrame)
}

// attached reports whether the wrapper is still inside the container and
// the container is still in the document.
func (s *RainSimulation) attached() bool {
	return s.wrap.Parent != nil && s.container.Contains(s.wrap) && s.doc.Attached(s.container)
}

// Step advances the simulation by one frame and redraws both canvases. now
// is the document clock, used for the draw-time wobble.
func (s *RainSimulation) Step(now time.Duration) {
	start := time.Now()
	s.update()
	mid := time.Now()
	s.draw(now)

	s.stats = RainStats{
		Frame:      s.frame,
		BackDrops:  len(s.backDrops),
		FrontDrops: len(s.frontDrops),
		Splashes:   len(s.splashes),
		Zones:      len(s.zones),
		StepTime:   mid.Sub(start),
		DrawTime:   time.Since(mid),
	}
	s.doc.debugLogRain(s.stats)
}

// update moves every drop, spawns splashes for front drops that crossed a
// zone top, and wraps drops that left the canvas.
func (s *RainSimulation) update() {
	w, h := float64(s.back.Width()), float64(s.back.Height())

	s.frame++
	if s.frame%s.cfg.ZoneRefreshFrames == 0 {
		s.zones = ProbeZones(s.doc, s.cfg)
		s.logger.Debug("rain zones refreshed", "frame", s.frame, "zones", len(s.zones))
	}

	for i := range s.backDrops {
		d := &s.backDrops[i]
		d.Y += d.Speed
		d.X += d.Wind * windDrift
		wrapDrop(d, w, h)
	}

	added := 0
	for i := range s.frontDrops {
		d := &s.frontDrops[i]
		prevY := d.Y
		d.Y += d.Speed
		d.X += d.Wind * windDrift
		if added < s.cfg.SplashesPerFrame && s.trySplash(d.X, prevY, d.Y) {
			added++
		}
		wrapDrop(d, w, h)
	}
}

// wrapDrop recycles a drop that left the w x h canvas at the opposite edge.
func wrapDrop(d *Drop, w, h float64) {
	if d.Y > h {
		d.Y = -d.Len
	}
	if d.Y < -d.Len {
		d.Y = h + d.Y
	}
	if d.X > w+wrapMargin {
		d.X = -wrapMargin
	}
	if d.X < -wrapMargin {
		d.X = w + wrapMargin
	}
}

// draw clears and repaints both canvases, then ages the splashes.
func (s *RainSimulation) draw(now time.Duration) {
	t := float64(now) / float64(time.Millisecond) * wobbleRate
	drawDrops(s.ctxBack, s.backDrops, s.strokeBack, t)
	drawDrops(s.ctxFront, s.frontDrops, s.strokeFront, t)
	s.stepSplashes(s.ctxFront)
}

func drawDrops(ctx *Context2D, drops []Drop, stroke Color, t float64) {
	c := ctx.Canvas()
	if c.Width() <= 0 || c.Height() <= 0 {
		return
	}
	ctx.Clear()
	for i := range drops {
		d := &drops[i]
		wobble := math.Sin(t+d.Phase) * wobbleAmp
		ctx.StrokeLine(d.X, d.Y, d.X+d.Wind+wobble, d.Y+d.Len, dropLineWidth, stroke, d.Opacity)
	}
}

// resize matches both canvases to the viewport and remaps drops that fell
// outside the new bounds instead of reseeding.
func (s *RainSimulation) resize(vw, vh int) {
	if s.destroyed || s.wrap.Parent == nil {
		return
	}
	w, h := max(1, vw), max(1, vh)
	if w == s.lastW && h == s.lastH {
		return
	}
	s.lastW, s.lastH = w, h
	s.back.Resize(w, h)
	s.front.Resize(w, h)

	fw, fh := float64(w), float64(h)
	for _, drops := range [2][]Drop{s.backDrops, s.frontDrops} {
		for i := range drops {
			remapDrop(&drops[i], fw, fh)
		}
	}
}

func remapDrop(d *Drop, w, h float64) {
	if d.X > w {
		d.X = math.Mod(d.X, w)
	}
	if d.X < 0 {
		d.X = w + d.X
	}
	if d.Y > h {
		d.Y = -d.Len
	}
	if d.Y < -d.Len {
		d.Y = h + d.Y
	}
}

// Destroy stops the simulation: the pending frame is cancelled and the
// resize listener removed. Safe to call more than once.
func (s *RainSimulation) Destroy() {
	if s == nil || s.destroyed {
		return
	}
	s.destroyed = true
	if s.frameID != 0 {
		s.doc.CancelFrame(s.frameID)
		s.frameID = 0
	}
	s.doc.RemoveResizeListener(s.resizeID)
}

// Destroyed reports whether Destroy has been called.
func (s *RainSimulation) Destroyed() bool {
	return s.destroyed
}

// Running reports whether a next frame is scheduled.
func (s *RainSimulation) Running() bool {
	return s.frameID != 0
}

// DropCount returns the number of drops over all layers.
func (s *RainSimulation) DropCount() int {
	return len(s.backDrops) + len(s.frontDrops)
}

// Drops returns a copy of the drops in the given layer.
func (s *RainSimulation) Drops(layer int) []Drop {
	if layer == 0 {
		return slices.Clone(s.backDrops)
	}
	var out []Drop
	for _, d := range s.frontDrops {
		if d.Layer == layer {
			out = append(out, d)
		}
	}
	return out
}

// Splashes returns a copy of the live splashes.
func (s *RainSimulation) Splashes() []Splash {
	return slices.Clone(s.splashes)
}

// Zones returns the current splash zone snapshot.
func (s *RainSimulation) Zones() []SplashZone {
	return slices.Clone(s.zones)
}

// Stats returns the stats of the last frame.
func (s *RainSimulation) Stats() RainStats {
	return s.stats
}
