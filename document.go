package weather

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// ListenerID identifies a registered resize listener.
type ListenerID uint64

// Document is the host page the weather engine renders into. It owns the
// node tree, the installed style sheets, the environment signals (viewport,
// color scheme, reduced-motion preference) and the cooperative frame
// scheduler. It implements ebiten.Game.
//
// A Document is single-threaded: every method must be called from the
// goroutine that drives Update and Draw.
type Document struct {
	root   *Node
	styles []*StyleSheet
	sched  scheduler
	tweens []*TweenGroup

	width, height   int
	dark            bool
	reducedMotion   bool
	canvasSupported bool

	resizeNext  ListenerID
	resizeOrder []ListenerID
	resize      map[ListenerID]func(w, h int)

	// ClearColor fills the screen before the tree is drawn. Zero alpha skips the fill.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// ShowFPS draws an FPS/TPS readout over the scene.
	ShowFPS bool

	debug  bool
	logger *log.Logger
	rtPool renderTexturePool
	blurs  map[int]*BlurFilter

	testRunner      *TestRunner
	screenshotQueue []string
	updateFunc      func() error
}

// NewDocument creates a document with a pre-created root ("body") node and
// the given viewport size.
func NewDocument(width, height int) *Document {
	root := NewContainer("body")
	d := &Document{
		root:            root,
		canvasSupported: true,
		ScreenshotDir:   "screenshots",
		logger:          defaultLogger(),
	}
	d.width, d.height = max(width, 0), max(height, 0)
	root.SetSize(float64(d.width), float64(d.height))
	return d
}

// Root returns the document's root node.
func (d *Document) Root() *Node {
	return d.root
}

// ElementByID returns the first node in tree order whose Name is id, or nil.
// Safe to call on a nil Document.
func (d *Document) ElementByID(id string) *Node {
	if d == nil || id == "" {
		return nil
	}
	var found *Node
	d.root.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Name == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// QueryAll returns every node in tree order for which match reports true.
func (d *Document) QueryAll(match func(*Node) bool) []*Node {
	if d == nil {
		return nil
	}
	var out []*Node
	d.root.Walk(func(n *Node) bool {
		if match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Attached reports whether n is part of the document tree.
func (d *Document) Attached(n *Node) bool {
	return d != nil && n != nil && d.root.Contains(n)
}

// --- Environment ---

// Viewport returns the current viewport size in pixels.
func (d *Document) Viewport() (w, h int) {
	return d.width, d.height
}

// SetViewport changes the viewport size and notifies resize listeners.
// No-op when the size is unchanged.
func (d *Document) SetViewport(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if w == d.width && h == d.height {
		return
	}
	d.width, d.height = w, h
	d.root.SetSize(float64(w), float64(h))
	d.layout()
	for _, id := range slices.Clone(d.resizeOrder) {
		if fn, ok := d.resize[id]; ok {
			fn(w, h)
		}
	}
}

// AddResizeListener registers fn to run after every viewport change.
func (d *Document) AddResizeListener(fn func(w, h int)) ListenerID {
	if d.resize == nil {
		d.resize = make(map[ListenerID]func(w, h int))
	}
	d.resizeNext++
	id := d.resizeNext
	d.resize[id] = fn
	d.resizeOrder = append(d.resizeOrder, id)
	return id
}

// RemoveResizeListener unregisters a listener. Unknown IDs are ignored.
func (d *Document) RemoveResizeListener(id ListenerID) {
	if _, ok := d.resize[id]; !ok {
		return
	}
	delete(d.resize, id)
	d.resizeOrder = slices.DeleteFunc(d.resizeOrder, func(x ListenerID) bool { return x == id })
}

// NumResizeListeners returns the number of registered resize listeners.
func (d *Document) NumResizeListeners() int {
	return len(d.resize)
}

// Dark reports whether the dark color scheme is active. Read at render time;
// rendered layers do not follow later changes.
func (d *Document) Dark() bool { return d.dark }

// SetDark switches the color scheme flag.
func (d *Document) SetDark(dark bool) { d.dark = dark }

// ReducedMotion reports the reduced-motion preference.
func (d *Document) ReducedMotion() bool { return d.reducedMotion }

// SetReducedMotion sets the reduced-motion preference.
func (d *Document) SetReducedMotion(reduced bool) { d.reducedMotion = reduced }

// CanvasSupported reports whether canvases can hand out a 2D context.
func (d *Document) CanvasSupported() bool { return d.canvasSupported }

// SetCanvasSupported enables or disables 2D contexts for canvases.
func (d *Document) SetCanvasSupported(ok bool) { d.canvasSupported = ok }

// --- Scheduling ---

// Now returns the document clock.
func (d *Document) Now() time.Duration {
	return d.sched.now
}

// RequestFrame schedules fn to run once on the next tick.
func (d *Document) RequestFrame(fn FrameFunc) FrameID {
	return d.sched.requestFrame(fn)
}

// CancelFrame cancels a pending frame callback. Unknown IDs are ignored.
func (d *Document) CancelFrame(id FrameID) {
	d.sched.cancelFrame(id)
}

// SetTimeout schedules fn to run once the document clock has advanced by delay.
func (d *Document) SetTimeout(delay time.Duration, fn func()) TimerID {
	return d.sched.setTimeout(delay, fn)
}

// ClearTimeout cancels a pending timer. Unknown IDs are ignored.
func (d *Document) ClearTimeout(id TimerID) {
	d.sched.clearTimeout(id)
}

// PendingTimers returns the number of armed timers.
func (d *Document) PendingTimers() int {
	return d.sched.pendingTimers()
}

// PendingFrames returns the number of queued frame callbacks.
func (d *Document) PendingFrames() int {
	return d.sched.pendingFrames()
}

// --- Opacity transitions ---

// FadeTo moves n's opacity to alpha. When one of n's classes declares a
// transition the change is tweened and onDone runs when it completes;
// otherwise the value is applied and onDone runs immediately. A fade already
// running on n is replaced without calling its onDone.
func (d *Document) FadeTo(n *Node, alpha float64, onDone func()) *TweenGroup {
	d.CancelFade(n)
	tr := d.computedStyle(n).Transition
	if tr == nil || tr.Duration <= 0 || n.Alpha == alpha {
		n.Alpha = alpha
		if onDone != nil {
			onDone()
		}
		return nil
	}
	g := TweenAlpha(n, alpha, float32(tr.Duration.Seconds()), tr.Easing)
	g.OnComplete = onDone
	d.tweens = append(d.tweens, g)
	return g
}

// CancelFade stops any running fade on n, leaving its opacity where it is.
func (d *Document) CancelFade(n *Node) {
	d.tweens = slices.DeleteFunc(d.tweens, func(g *TweenGroup) bool { return g.target == n })
}

// Fading reports whether a fade is running on n.
func (d *Document) Fading(n *Node) bool {
	for _, g := range d.tweens {
		if g.target == n && !g.Done {
			return true
		}
	}
	return false
}

// --- Loop ---

// Tick advances the document by dt: timers, frame callbacks, fades, keyframe
// animations, then layout.
func (d *Document) Tick(dt time.Duration) {
	d.sched.advance(dt)

	if len(d.tweens) > 0 {
		secs := float32(dt.Seconds())
		for _, g := range slices.Clone(d.tweens) {
			g.Update(secs)
		}
		d.tweens = slices.DeleteFunc(d.tweens, func(g *TweenGroup) bool { return g.Done })
	}

	d.root.Walk(func(n *Node) bool {
		if n.Animation != nil {
			d.sampleAnimation(n, dt)
		}
		return true
	})

	d.layout()
}

// sampleAnimation advances a node's animation clock and resolves its keyframes.
func (d *Document) sampleAnimation(n *Node, dt time.Duration) {
	a := n.Animation
	a.advance(dt)
	k := d.keyframes(a.Keyframes)
	if k == nil {
		n.anim = restAnimState
		return
	}
	p, ok := a.progress()
	if !ok {
		n.anim = restAnimState
		return
	}
	n.anim = k.sample(p, a.Easing)
}

// layout sizes inset nodes to their parent's box, then runs Layout hooks.
func (d *Document) layout() {
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.children {
			if d.computedStyle(c).Inset {
				c.X, c.Y = 0, 0
				c.Width, c.Height = n.Width, n.Height
			}
			if c.Layout != nil {
				c.Layout(c, n.Width, n.Height)
			}
			walk(c)
		}
	}
	walk(d.root)
}

// SetUpdateFunc sets a callback run at the start of every Update, before the
// document ticks.
func (d *Document) SetUpdateFunc(fn func() error) {
	d.updateFunc = fn
}

// Update implements ebiten.Game. It steps the test runner, runs the update
// callback and ticks the document by one TPS interval.
func (d *Document) Update() error {
	if d.testRunner != nil {
		d.testRunner.step(d)
	}
	if d.updateFunc != nil {
		if err := d.updateFunc(); err != nil {
			return err
		}
	}
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	d.Tick(time.Second / time.Duration(tps))
	return nil
}

// Layout implements ebiten.Game. The outside size becomes the viewport.
func (d *Document) Layout(outsideWidth, outsideHeight int) (int, int) {
	d.SetViewport(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and rain
// simulations log periodic frame stats.
func (d *Document) SetDebugMode(enabled bool) {
	d.debug = enabled
	globalDebug = enabled
	if enabled {
		d.logger.SetLevel(log.DebugLevel)
	}
}

// SetLogger replaces the document logger.
func (d *Document) SetLogger(l *log.Logger) {
	if l != nil {
		d.logger = l
	}
}

// Logger returns the document logger.
func (d *Document) Logger() *log.Logger {
	return d.logger
}

// globalDebug mirrors the most recently set Document debug flag so that node
// operations (which lack a Document pointer) can check it cheaply.
var globalDebug bool
