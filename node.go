package weather

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// nodeIDCounter is a plain counter (no atomic, the document is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
//
// Name doubles as the element identifier looked up by Document.ElementByID.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Layout size in local units. Sprites are stretched to fill it; inset
	// class styles overwrite it with the parent's size during layout.
	Width, Height float64

	// Visibility
	Alpha   float64
	Visible bool

	// Decorative marks purely visual nodes: hidden from assistive queries
	// and never interactive.
	Decorative   bool
	Interactable bool

	// Ordering
	ZIndex int

	// Sprite fields
	BlendMode   BlendMode
	Color       Color
	customImage *ebiten.Image
	ownsImage   bool

	// Canvas fields (NodeTypeCanvas)
	canvas *Canvas

	// Filters run on the node's rendered subtree.
	Filters []Filter

	// Layout, when set, positions and sizes the node from its parent's box
	// every document layout pass, after inset styles apply.
	Layout func(n *Node, parentW, parentH float64)

	// Animation is an optional declarative keyframe animation.
	Animation *Animation
	anim      animState

	// Metadata
	UserData any

	classes        []string
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = Color{1, 1, 1, 1}
	n.Visible = true
	n.childrenSorted = true
	n.anim = restAnimState
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a solid-color sprite node of the given size.
func NewSprite(name string, w, h float64) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Width: w, Height: h}
	nodeDefaults(n)
	return n
}

// NewImageSprite creates a sprite that displays img stretched to w x h.
func NewImageSprite(name string, img *ebiten.Image, w, h float64) *Node {
	n := NewSprite(name, w, h)
	n.customImage = img
	return n
}

// NewCanvasNode creates a canvas node whose 2D context is gated by the
// document's canvas support.
func (d *Document) NewCanvasNode(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeCanvas}
	nodeDefaults(n)
	n.canvas = newCanvas(d)
	return n
}

// SetCustomImage sets the image displayed by a sprite node.
func (n *Node) SetCustomImage(img *ebiten.Image) {
	n.customImage = img
	n.ownsImage = false
}

// SetOwnedImage sets the sprite image and hands its ownership to the node:
// the image is deallocated when the node is disposed.
func (n *Node) SetOwnedImage(img *ebiten.Image) {
	n.customImage = img
	n.ownsImage = img != nil
}

// CustomImage returns the sprite image, or nil for solid color sprites.
func (n *Node) CustomImage() *ebiten.Image {
	return n.customImage
}

// Canvas returns the node's drawing surface, or nil for non-canvas nodes.
func (n *Node) Canvas() *Canvas {
	return n.canvas
}

// --- Class list ---

// Classes returns the node's class list. The returned slice MUST NOT be mutated.
func (n *Node) Classes() []string {
	return n.classes
}

// HasClass reports whether the node carries class c.
func (n *Node) HasClass(c string) bool {
	return slices.Contains(n.classes, c)
}

// AddClass appends each class not already present.
func (n *Node) AddClass(classes ...string) {
	for _, c := range classes {
		if c != "" && !n.HasClass(c) {
			n.classes = append(n.classes, c)
		}
	}
}

// RemoveClass removes each given class if present.
func (n *Node) RemoveClass(classes ...string) {
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool {
		return slices.Contains(classes, c)
	})
}

// ResetClasses replaces the class list wholesale.
func (n *Node) ResetClasses(classes ...string) {
	n.classes = n.classes[:0]
	n.AddClass(classes...)
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("weather: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("weather: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("weather: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
	}
	clear(n.children)
	n.children = n.children[:0]
	n.childrenSorted = true
}

// DisposeChildren detaches and disposes every child in one step, so there is
// no point at which old and new content coexist under n.
func (n *Node) DisposeChildren() {
	old := n.children
	n.children = nil
	n.sortedChildren = nil
	n.childrenSorted = true
	for _, child := range old {
		child.Parent = nil
		child.dispose()
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	if other == nil {
		return false
	}
	return isAncestor(n, other)
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// Walk calls fn for n and every descendant in tree order. Returning false
// from fn skips that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.Filters = nil
	n.Animation = nil
	if n.ownsImage && n.customImage != nil {
		n.customImage.Deallocate()
	}
	n.customImage = nil
	n.ownsImage = false
	n.Layout = nil
	if n.canvas != nil {
		n.canvas.dispose()
		n.canvas = nil
	}
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// orderedChildren returns the children sorted by ZIndex, stable on insertion order.
func (n *Node) orderedChildren() []*Node {
	if n.childrenSorted && len(n.sortedChildren) == len(n.children) {
		return n.sortedChildren
	}
	n.sortedChildren = append(n.sortedChildren[:0], n.children...)
	slices.SortStableFunc(n.sortedChildren, func(a, b *Node) int {
		return a.ZIndex - b.ZIndex
	})
	n.childrenSorted = true
	return n.sortedChildren
}
