package weather

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas is a resizable offscreen drawing surface attached to a canvas node.
// Its backing store does not exist until the first Resize to a positive size,
// and it is NOT cleared between frames; owners clear and redraw it.
type Canvas struct {
	doc   *Document
	image *ebiten.Image
	w, h  int
	ctx   *Context2D
}

func newCanvas(d *Document) *Canvas {
	return &Canvas{doc: d}
}

// Context returns the canvas's 2D context, or nil when the document does not
// support canvas rendering.
func (c *Canvas) Context() *Context2D {
	if c == nil || c.doc == nil || !c.doc.CanvasSupported() {
		return nil
	}
	if c.ctx == nil {
		c.ctx = &Context2D{canvas: c}
	}
	return c.ctx
}

// Width returns the backing-store width in pixels.
func (c *Canvas) Width() int { return c.w }

// Height returns the backing-store height in pixels.
func (c *Canvas) Height() int { return c.h }

// Image returns the backing image, or nil before the first Resize.
func (c *Canvas) Image() *ebiten.Image { return c.image }

// Resize reallocates the backing store. Like an HTML canvas, resizing
// discards the previous contents. Non-positive sizes release the store.
func (c *Canvas) Resize(w, h int) {
	if w == c.w && h == c.h && c.image != nil {
		return
	}
	if c.image != nil {
		c.image.Deallocate()
		c.image = nil
	}
	c.w, c.h = max(w, 0), max(h, 0)
	if c.w > 0 && c.h > 0 {
		c.image = ebiten.NewImage(c.w, c.h)
	}
}

func (c *Canvas) dispose() {
	if c.image != nil {
		c.image.Deallocate()
		c.image = nil
	}
	c.w, c.h = 0, 0
	c.ctx = nil
}

// Context2D issues immediate-mode drawing commands onto a Canvas. Every
// method is a no-op while the canvas has no backing store.
type Context2D struct {
	canvas *Canvas
}

// Canvas returns the context's canvas.
func (x *Context2D) Canvas() *Canvas {
	return x.canvas
}

// Clear fills the canvas with transparent black.
func (x *Context2D) Clear() {
	if img := x.canvas.image; img != nil {
		img.Clear()
	}
}

// StrokeLine draws an antialiased line segment. alpha multiplies the
// color's own alpha, like globalAlpha.
func (x *Context2D) StrokeLine(x1, y1, x2, y2, width float64, c Color, alpha float64) {
	img := x.canvas.image
	if img == nil || alpha <= 0 {
		return
	}
	clr := c.WithAlpha(c.A * alpha).toRGBA()
	vector.StrokeLine(img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), clr, true)
}
