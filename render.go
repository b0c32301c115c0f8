package weather

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Draw implements ebiten.Game. It renders the document tree depth-first in
// ZIndex order, then the FPS readout and any queued screenshots.
func (d *Document) Draw(screen *ebiten.Image) {
	if d.ClearColor.A > 0 {
		screen.Fill(d.ClearColor.toRGBA())
	}

	d.drawNode(screen, d.root, identityTransform, 1)

	if d.ShowFPS {
		drawFPS(screen)
	}
	d.flushScreenshots(screen)
}

// drawNode renders n and its subtree onto dst. Nodes whose computed style
// asks for blur, or that carry Filters, are rendered offscreen first and
// composited with their alpha in one draw.
func (d *Document) drawNode(dst *ebiten.Image, n *Node, parent [6]float64, parentAlpha float64) {
	if !n.Visible {
		return
	}
	st := d.computedStyle(n)
	alpha := parentAlpha * n.effectiveAlpha()
	if st.Opacity != 0 {
		alpha *= st.Opacity
	}
	if alpha <= 0 {
		return
	}
	world := multiplyAffine(parent, computeLocalTransform(n))

	filters := n.Filters
	if st.Blur > 0 {
		filters = append(filters[:len(filters):len(filters)], d.blurFilter(st.Blur))
	}
	if len(filters) == 0 {
		d.drawContent(dst, n, world, alpha)
		return
	}

	b := dst.Bounds()
	off := d.rtPool.Acquire(b.Dx(), b.Dy())
	d.drawContent(off, n, world, 1)
	result := applyFilters(filters, off, &d.rtPool)

	var op ebiten.DrawImageOptions
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(result, &op)
	d.rtPool.Release(result)
}

// drawContent draws n's own visual, then its children.
func (d *Document) drawContent(dst *ebiten.Image, n *Node, world [6]float64, alpha float64) {
	switch n.Type {
	case NodeTypeSprite:
		drawSprite(dst, n, world, alpha)
	case NodeTypeCanvas:
		if img := n.canvas.Image(); img != nil {
			var op ebiten.DrawImageOptions
			op.GeoM = geoM(world)
			op.ColorScale.ScaleAlpha(float32(alpha))
			op.Blend = n.BlendMode.EbitenBlend()
			dst.DrawImage(img, &op)
		}
	}
	for _, child := range n.orderedChildren() {
		d.drawNode(dst, child, world, alpha)
	}
}

// drawSprite stretches the sprite's image (or the white pixel) over its
// Width x Height box, tinted by Color.
func drawSprite(dst *ebiten.Image, n *Node, world [6]float64, alpha float64) {
	if n.Width <= 0 || n.Height <= 0 {
		return
	}
	img := n.customImage
	if img == nil {
		img = WhitePixel
	}
	b := img.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(n.Width/float64(b.Dx()), n.Height/float64(b.Dy()))
	op.GeoM.Concat(geoM(world))
	c := n.Color
	a := c.A * alpha
	op.ColorScale.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
	op.Blend = n.BlendMode.EbitenBlend()
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, &op)
}

// blurFilter returns the shared blur filter for a radius. Filters keep their
// temp images between frames.
func (d *Document) blurFilter(radius int) *BlurFilter {
	if d.blurs == nil {
		d.blurs = make(map[int]*BlurFilter)
	}
	f, ok := d.blurs[radius]
	if !ok {
		f = NewBlurFilter(radius)
		d.blurs[radius] = f
	}
	return f
}
