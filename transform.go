package weather

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// transform properties and its current animation sample. Returns
// [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Animation (shift, scale about center) -> Translate(-PivotX, -PivotY) -> Scale -> Rotate -> Translate(X, Y)
func computeLocalTransform(n *Node) [6]float64 {
	sx := n.ScaleX
	sy := n.ScaleY

	sin, cos := math.Sincos(n.Rotation)

	preTx := -n.PivotX * sx
	preTy := -n.PivotY * sy

	base := [6]float64{
		cos * sx, sin * sx,
		-sin * sy, cos * sy,
		cos*preTx - sin*preTy + n.X,
		sin*preTx + cos*preTy + n.Y,
	}

	if n.anim.scale == 1 && n.anim.shiftX == 0 {
		return base
	}

	// Animated transforms use the node center as origin, like a CSS
	// transform-origin of 50% 50%. Shift is a fraction of the node's width.
	s := n.anim.scale
	cx, cy := n.Width/2, n.Height/2
	shift := n.anim.shiftX * n.Width
	anim := [6]float64{s, 0, 0, s, s*(shift-cx) + cx, -s*cy + cy}
	return multiplyAffine(base, anim)
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// WorldTransform composes the local transforms from the root down to n.
// Computed on demand; the document never caches world geometry between frames.
func (n *Node) WorldTransform() [6]float64 {
	if n.Parent == nil {
		return computeLocalTransform(n)
	}
	return multiplyAffine(n.Parent.WorldTransform(), computeLocalTransform(n))
}

// Bounds returns the axis-aligned world-space rectangle covered by the
// node's Width x Height box. Canvas nodes use their backing-store size.
func (n *Node) Bounds() Rect {
	w, h := n.Width, n.Height
	if n.canvas != nil {
		w, h = float64(n.canvas.Width()), float64(n.canvas.Height())
	}
	m := n.WorldTransform()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4]Vec2{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		x, y := transformPoint(m, p.X, p.Y)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// SetSize sets the node's layout Width and Height.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
}

// SetScale sets the node's ScaleX and ScaleY.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.WorldTransform(), lx, ly)
}
