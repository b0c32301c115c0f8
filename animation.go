package weather

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// --- Tweens ---

// TweenGroup animates float64 fields on a Node. Create one via TweenAlpha and
// call Update(dt) each frame, or hand it to a Document which advances it every
// tick. If the target node is disposed, the group stops immediately and
// OnComplete is not called.
type TweenGroup struct {
	tweens [1]*gween.Tween
	count  int
	fields [1]*float64
	target *Node
	Done   bool

	// OnComplete runs once, on the update that finishes the group.
	OnComplete func()
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
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

	if g.Done && g.OnComplete != nil {
		fn := g.OnComplete
		g.OnComplete = nil
		fn()
	}
}

// Target returns the node the group writes to.
func (g *TweenGroup) Target() *Node {
	return g.target
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	g.fields[0] = &node.Alpha
	return g
}

// CubicBezier returns an easing function equivalent to the CSS
// cubic-bezier(x1, y1, x2, y2) timing function.
func CubicBezier(x1, y1, x2, y2 float64) ease.TweenFunc {
	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		p := float64(t / d)
		return b + c*float32(bezierY(x1, y1, x2, y2, p))
	}
}

// bezierY solves the curve's x(s) = p for s with Newton iterations (falling
// back to bisection) and returns y(s).
func bezierY(x1, y1, x2, y2, p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	coord := func(a, b, s float64) float64 {
		return 3*a*s*(1-s)*(1-s) + 3*b*s*s*(1-s) + s*s*s
	}
	slope := func(a, b, s float64) float64 {
		return 3*a*(1-s)*(1-s) + 6*(b-a)*s*(1-s) + 3*(1-b)*s*s
	}

	s := p
	for range 8 {
		dx := coord(x1, x2, s) - p
		if math.Abs(dx) < 1e-6 {
			return coord(y1, y2, s)
		}
		m := slope(x1, x2, s)
		if math.Abs(m) < 1e-6 {
			break
		}
		s -= dx / m
	}

	lo, hi := 0.0, 1.0
	s = p
	for range 40 {
		x := coord(x1, x2, s)
		if math.Abs(x-p) < 1e-6 {
			break
		}
		if x < p {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return coord(y1, y2, s)
}

// --- Keyframe animations ---

// KeyframeProps is a bitmask of the properties a keyframe set animates.
type KeyframeProps uint8

const (
	PropOpacity KeyframeProps = 1 << iota // replaces the node's static Alpha
	PropScale                             // uniform scale about the node center
	PropShiftX                            // horizontal shift as a fraction of Width
)

// KeyframeStop is one stop of a keyframe set. Offset is in [0, 1].
type KeyframeStop struct {
	Offset  float64
	Opacity float64
	Scale   float64
	ShiftX  float64
}

// Keyframes is a named, looping sequence of stops declared by a StyleSheet.
type Keyframes struct {
	Name  string
	Props KeyframeProps
	Stops []KeyframeStop
}

// Animation binds a node to a keyframe set by name. The name is resolved
// against the document's installed style sheets every tick, so an animation
// whose keyframes are not installed leaves the node at rest.
type Animation struct {
	Keyframes string
	Duration  time.Duration
	// Delay offsets the cycle start. A negative delay starts mid-cycle.
	Delay  time.Duration
	Easing ease.TweenFunc

	elapsed time.Duration
}

// animState is the sampled animation output applied at render time.
type animState struct {
	props   KeyframeProps
	opacity float64
	scale   float64
	shiftX  float64
}

var restAnimState = animState{opacity: 1, scale: 1}

// advance moves the animation clock forward by dt.
func (a *Animation) advance(dt time.Duration) {
	a.elapsed += dt
}

// progress returns the position within the current cycle in [0, 1), or
// false while a positive delay has not yet elapsed.
func (a *Animation) progress() (float64, bool) {
	if a.Duration <= 0 {
		return 0, false
	}
	local := a.elapsed - a.Delay
	if local < 0 {
		return 0, false
	}
	local %= a.Duration
	return float64(local) / float64(a.Duration), true
}

// sample evaluates the keyframes at cycle position p. Easing applies per
// segment between adjacent stops.
func (k *Keyframes) sample(p float64, fn ease.TweenFunc) animState {
	st := restAnimState
	st.props = k.Props
	if len(k.Stops) == 0 {
		return st
	}
	a, b := k.Stops[0], k.Stops[len(k.Stops)-1]
	for i := 1; i < len(k.Stops); i++ {
		if p <= k.Stops[i].Offset {
			a, b = k.Stops[i-1], k.Stops[i]
			break
		}
	}
	t := 0.0
	if span := b.Offset - a.Offset; span > 0 {
		t = clamp01((p - a.Offset) / span)
	}
	if fn != nil {
		t = float64(fn(float32(t), 0, 1, 1))
	}
	if k.Props&PropOpacity != 0 {
		st.opacity = lerp(a.Opacity, b.Opacity, t)
	}
	if k.Props&PropScale != 0 {
		st.scale = lerp(a.Scale, b.Scale, t)
	}
	if k.Props&PropShiftX != 0 {
		st.shiftX = lerp(a.ShiftX, b.ShiftX, t)
	}
	return st
}

// effectiveAlpha returns the node's own opacity, taking an animated opacity
// in place of the static Alpha.
func (n *Node) effectiveAlpha() float64 {
	if n.anim.props&PropOpacity != 0 {
		return n.anim.opacity
	}
	return n.Alpha
}
