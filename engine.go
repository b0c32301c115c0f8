package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// TransitionState is the phase of a mode change.
type TransitionState uint8

const (
	StateIdle       TransitionState = iota // current mode fully shown
	StateFadingOut                         // container fading to 0, rebuild timer armed
	StateRebuilding                        // old layers torn down, new ones being built
	StateFadingIn                          // new layers in place, container fading to 1
)

func (s TransitionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFadingOut:
		return "fading-out"
	case StateRebuilding:
		return "rebuilding"
	case StateFadingIn:
		return "fading-in"
	}
	return fmt.Sprintf("TransitionState(%d)", s)
}

// baseClasses are the container's classes with no mode applied.
var baseClasses = []string{"weather-effect", "pointer-events-none", "fixed", "inset-0"}

// storeTimeout bounds each store call.
const storeTimeout = 2 * time.Second

// Option configures an Engine.
type Option func(*Engine)

// WithStore sets where the selected mode is persisted. Defaults to an empty
// MemoryStore.
func WithStore(s ModeStore) Option {
	return func(e *Engine) { e.store = s }
}

// WithConfig replaces the tuning constants.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithLogger sets the engine logger. Defaults to the document's logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithContainerID overrides the Name of the container node.
func WithContainerID(id string) Option {
	return func(e *Engine) { e.cfg.ContainerID = id }
}

// WithRenderer replaces the layer renderer for one mode.
func WithRenderer(m Mode, r Renderer) Option {
	return func(e *Engine) {
		if m.Valid() && r != nil {
			e.renderers[m] = r
		}
	}
}

// Engine drives the weather effect in one container node: it owns the
// current mode, sequences cross-fades and keeps at most one rain simulation
// alive. Every method is a no-op while the container is missing from the
// document. An Engine must only be used from the document's goroutine.
type Engine struct {
	doc       *Document
	cfg       Config
	store     ModeStore
	logger    *log.Logger
	renderers [len(modeNames)]Renderer

	mode      Mode
	target    Mode
	state     TransitionState
	container *Node
	sim       *RainSimulation
	timer     TimerID
	fadeFrame FrameID
	destroyed bool
}

// NewEngine creates an engine for doc. Call Init to show the first mode.
func NewEngine(doc *Document, opts ...Option) *Engine {
	e := &Engine{
		doc:       doc,
		cfg:       DefaultConfig(),
		renderers: [len(modeNames)]Renderer{RenderSunny, RenderCloudy, RenderRain},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = &MemoryStore{}
	}
	if e.logger == nil {
		if doc != nil {
			e.logger = doc.Logger()
		} else {
			e.logger = defaultLogger()
		}
	}
	return e
}

// Mode returns the mode currently applied. During a fade-out it is still the
// outgoing mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// State returns the transition phase.
func (e *Engine) State() TransitionState {
	return e.state
}

// Target returns the mode the pending transition is heading to, or the
// current mode when idle.
func (e *Engine) Target() Mode {
	if e.state == StateIdle {
		return e.mode
	}
	return e.target
}

// Simulation returns the live rain simulation, or nil.
func (e *Engine) Simulation() *RainSimulation {
	return e.sim
}

// Ready reports whether the container can be found. It is for diagnostics
// only; operations on an engine that is not ready are ignored.
func (e *Engine) Ready() error {
	if e.containerNode() == nil {
		return fmt.Errorf("%w: %q", ErrNoContainer, e.cfg.ContainerID)
	}
	return nil
}

func (e *Engine) containerNode() *Node {
	return e.doc.ElementByID(e.cfg.ContainerID)
}

// Init shows the persisted mode immediately, without a fade. When the store
// holds nothing valid, the first defaultMode is used, then ModeSunny.
func (e *Engine) Init(defaultMode ...Mode) {
	if e.doc == nil {
		return
	}
	m := ModeSunny
	if len(defaultMode) > 0 && defaultMode[0].Valid() {
		m = defaultMode[0]
	}
	if stored, ok := e.loadMode(); ok {
		m = stored
	}
	e.destroyed = false
	e.applyImmediate(m)
}

// loadMode reads the store. Failures and unknown values report false.
func (e *Engine) loadMode() (Mode, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	s, err := e.store.Load(ctx)
	if err != nil {
		e.logger.Warn("load mode", "err", err)
		return ModeSunny, false
	}
	if s == "" {
		return ModeSunny, false
	}
	m, ok := ParseMode(s)
	if !ok {
		e.logger.Debug("load mode", "err", fmt.Errorf("%w: %q", ErrInvalidMode, s))
	}
	return m, ok
}

// persist saves m. Failures are logged and otherwise ignored.
func (e *Engine) persist(m Mode) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := e.store.Save(ctx, m.String()); err != nil {
		e.logger.Warn("save mode", "mode", m, "err", err)
	}
}

// SetMode persists m, then cross-fades to it. A call made while an earlier
// transition has not yet rebuilt replaces that transition's target; only
// the last requested mode is ever rendered. Invalid modes become ModeSunny.
func (e *Engine) SetMode(m Mode) {
	if e.doc == nil || e.destroyed {
		return
	}
	if !m.Valid() {
		m = ModeSunny
	}
	e.persist(m)
	e.runTransition(m)
}

// SetModeString is SetMode for persisted names. Unknown names select
// ModeSunny.
func (e *Engine) SetModeString(s string) {
	m, ok := ParseMode(s)
	if !ok {
		m = ModeSunny
	}
	e.SetMode(m)
}

func (e *Engine) runTransition(to Mode) {
	el := e.containerNode()
	if el == nil {
		return
	}
	e.container = el
	e.cancelPending()

	e.logger.Debug("transition", "from", e.mode, "to", to)
	e.target = to
	e.state = StateFadingOut
	e.doc.FadeTo(el, 0, nil)
	e.timer = e.doc.SetTimeout(e.cfg.Transition, func() {
		e.timer = 0
		e.rebuildTo(to)
	})
}

// rebuildTo swaps the container's content for mode to while it is
// invisible, then fades it back in on the next frame.
func (e *Engine) rebuildTo(to Mode) {
	e.teardown()
	el := e.containerNode()
	if el == nil {
		e.container = nil
		e.state = StateIdle
		return
	}
	e.container = el
	e.state = StateRebuilding
	e.mode = to
	el.Alpha = 0
	e.build(el, to)

	e.state = StateFadingIn
	e.fadeFrame = e.doc.RequestFrame(func(time.Duration) {
		e.fadeFrame = 0
		if e.container == nil {
			return
		}
		e.doc.FadeTo(e.container, 1, func() {
			e.state = StateIdle
			e.logger.Debug("transition done", "mode", e.mode)
		})
	})
}

// applyImmediate shows m with no fade.
func (e *Engine) applyImmediate(m Mode) {
	e.teardown()
	el := e.containerNode()
	if el == nil {
		return
	}
	e.container = el
	e.mode = m
	e.target = m
	e.build(el, m)
	e.state = StateIdle
}

// build marks the container with m, installs the shared sheet and runs the
// mode's renderer.
func (e *Engine) build(el *Node, m Mode) {
	el.AddClass(m.Class())
	e.doc.InjectStyle(NewWeatherStyleSheet(e.cfg.Transition))
	env := RenderEnv{
		Doc:           e.doc,
		Config:        e.cfg,
		Dark:          e.doc.Dark(),
		ReducedMotion: e.doc.ReducedMotion(),
		Logger:        e.logger,
	}
	e.sim = e.renderers[m](el, env)
	e.doc.layout()
}

// cancelPending drops an armed rebuild timer and a queued fade-in.
func (e *Engine) cancelPending() {
	if e.timer != 0 {
		e.doc.ClearTimeout(e.timer)
		e.timer = 0
	}
	if e.fadeFrame != 0 {
		e.doc.CancelFrame(e.fadeFrame)
		e.fadeFrame = 0
	}
}

// teardown stops the simulation and returns the container to its base
// state: no children, base classes only, fully opaque.
func (e *Engine) teardown() {
	e.cancelPending()
	if e.sim != nil {
		e.sim.Destroy()
		e.sim = nil
	}
	el := e.container
	if el == nil {
		el = e.containerNode()
	}
	if el == nil {
		return
	}
	el.DisposeChildren()
	el.ResetClasses(baseClasses...)
	e.doc.CancelFade(el)
	el.Alpha = 1
}

// Destroy stops everything and empties the container. The mode resets to
// ModeSunny and the engine ignores SetMode until Init is called again.
// Safe to call more than once.
func (e *Engine) Destroy() {
	if e.destroyed || e.doc == nil {
		return
	}
	e.teardown()
	e.container = nil
	e.mode = ModeSunny
	e.target = ModeSunny
	e.state = StateIdle
	e.destroyed = true
}
