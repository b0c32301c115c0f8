package weather

import (
	"time"

	"github.com/tanema/gween/ease"
)

// StyleSheetID identifies the shared weather stylesheet in the document head.
const StyleSheetID = "weather-effect-styles"

// Transition animates a property change on nodes carrying the class.
type Transition struct {
	Duration time.Duration
	Easing   ease.TweenFunc
}

// ClassStyle is the rendering effect of one class while its sheet is installed.
type ClassStyle struct {
	// Inset sizes the node to its parent's box during layout.
	Inset bool
	// Opacity multiplies the node's alpha. Zero leaves it unchanged.
	Opacity float64
	// Blur renders the node's subtree through a BlurFilter of this radius.
	Blur int
	// Opacity changes through Document.FadeTo use this transition.
	Transition *Transition
}

// StyleSheet bundles keyframe sets and class styles under one ID.
type StyleSheet struct {
	ID        string
	Keyframes map[string]*Keyframes
	Classes   map[string]ClassStyle
}

// Easing curves shared by the weather sheet and its renderers.
var (
	easeTransition = CubicBezier(0.33, 0, 0.2, 1)
	easeBreath     = CubicBezier(0.45, 0, 0.55, 1)
	easeDrift      = CubicBezier(0.4, 0, 0.6, 1)
)

// NewWeatherStyleSheet returns the sheet shared by all weather layers: the
// container transition, layer base classes, and every looping keyframe set.
func NewWeatherStyleSheet(transition time.Duration) *StyleSheet {
	breathe := func(name string, props KeyframeProps, lo, hi, scale float64) *Keyframes {
		return &Keyframes{
			Name:  name,
			Props: props,
			Stops: []KeyframeStop{
				{Offset: 0, Opacity: lo, Scale: 1},
				{Offset: 0.5, Opacity: hi, Scale: scale},
				{Offset: 1, Opacity: lo, Scale: 1},
			},
		}
	}
	drift := func(name string, from, to float64) *Keyframes {
		return &Keyframes{
			Name:  name,
			Props: PropShiftX,
			Stops: []KeyframeStop{
				{Offset: 0, ShiftX: from},
				{Offset: 1, ShiftX: to},
			},
		}
	}
	sheet := &StyleSheet{
		ID: StyleSheetID,
		Keyframes: map[string]*Keyframes{
			"weather-sunny-pulse":      breathe("weather-sunny-pulse", PropOpacity, 0.5, 0.75, 1),
			"weather-sunny-ray":        breathe("weather-sunny-ray", PropOpacity|PropScale, 0.15, 0.28, 1.008),
			"weather-sunny-sun":        breathe("weather-sunny-sun", PropOpacity|PropScale, 0.55, 0.7, 1.01),
			"weather-cloud-drift":      drift("weather-cloud-drift", -0.12, 1.12),
			"weather-cloud-drift-slow": drift("weather-cloud-drift-slow", -0.08, 1.08),
		},
		Classes: map[string]ClassStyle{
			"weather-effect": {
				Inset:      true,
				Transition: &Transition{Duration: transition, Easing: easeTransition},
			},
			"weather-layer":      {Inset: true},
			"weather-rain-back":  {Blur: 6, Opacity: 0.78},
			"weather-rain-front": {},
		},
	}
	return sheet
}

// InjectStyle installs sheet into the document head. Installing is
// idempotent by ID: it reports false and changes nothing when a sheet with
// the same ID is already present.
func (d *Document) InjectStyle(sheet *StyleSheet) bool {
	if d == nil || sheet == nil {
		return false
	}
	if d.HasStyle(sheet.ID) {
		return false
	}
	d.styles = append(d.styles, sheet)
	return true
}

// HasStyle reports whether a sheet with the given ID is installed.
func (d *Document) HasStyle(id string) bool {
	for _, s := range d.styles {
		if s.ID == id {
			return true
		}
	}
	return false
}

// NumStyles returns the number of installed sheets.
func (d *Document) NumStyles() int {
	return len(d.styles)
}

// keyframes resolves a keyframe set by name. Later sheets win.
func (d *Document) keyframes(name string) *Keyframes {
	for i := len(d.styles) - 1; i >= 0; i-- {
		if k, ok := d.styles[i].Keyframes[name]; ok {
			return k
		}
	}
	return nil
}

// computedStyle merges the class styles that apply to n.
func (d *Document) computedStyle(n *Node) ClassStyle {
	var out ClassStyle
	if len(n.classes) == 0 || len(d.styles) == 0 {
		return out
	}
	for _, s := range d.styles {
		for _, c := range n.classes {
			cs, ok := s.Classes[c]
			if !ok {
				continue
			}
			out.Inset = out.Inset || cs.Inset
			if cs.Opacity != 0 {
				out.Opacity = cs.Opacity
			}
			out.Blur = max(out.Blur, cs.Blur)
			if cs.Transition != nil {
				out.Transition = cs.Transition
			}
		}
	}
	return out
}
