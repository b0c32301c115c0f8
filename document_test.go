package weather

import (
	"testing"
	"time"
)

func TestNewDocumentRoot(t *testing.T) {
	d := NewDocument(800, 600)
	if d.Root() == nil || d.Root().Name != "body" {
		t.Fatal("root should be a node named body")
	}
	if d.Root().Width != 800 || d.Root().Height != 600 {
		t.Errorf("root size = %vx%v, want 800x600", d.Root().Width, d.Root().Height)
	}
	if !d.CanvasSupported() {
		t.Error("canvas should be supported by default")
	}
}

func TestElementByID(t *testing.T) {
	d := NewDocument(100, 100)
	outer := NewContainer("outer")
	inner := NewContainer("weather-effect")
	outer.AddChild(inner)
	d.Root().AddChild(outer)

	if got := d.ElementByID("weather-effect"); got != inner {
		t.Errorf("ElementByID = %v, want inner", got)
	}
	if d.ElementByID("missing") != nil {
		t.Error("missing id should return nil")
	}
	if d.ElementByID("") != nil {
		t.Error("empty id should return nil")
	}
	var nilDoc *Document
	if nilDoc.ElementByID("weather-effect") != nil {
		t.Error("nil document should return nil")
	}
}

func TestQueryAll(t *testing.T) {
	d := NewDocument(100, 100)
	for _, name := range []string{"a", "b", "c"} {
		n := NewContainer(name)
		if name != "b" {
			n.AddClass("card-base")
		}
		d.Root().AddChild(n)
	}
	got := d.QueryAll(func(n *Node) bool { return n.HasClass("card-base") })
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "c" {
		t.Errorf("QueryAll = %v, want [a c]", got)
	}
}

func TestAttached(t *testing.T) {
	d := NewDocument(100, 100)
	n := NewContainer("n")
	if d.Attached(n) {
		t.Error("detached node reported attached")
	}
	d.Root().AddChild(n)
	if !d.Attached(n) {
		t.Error("attached node reported detached")
	}
}

func TestResizeListeners(t *testing.T) {
	d := NewDocument(100, 100)
	var calls [][2]int
	id := d.AddResizeListener(func(w, h int) { calls = append(calls, [2]int{w, h}) })

	d.SetViewport(200, 150)
	d.SetViewport(200, 150) // unchanged
	if len(calls) != 1 || calls[0] != [2]int{200, 150} {
		t.Fatalf("calls = %v, want [[200 150]]", calls)
	}
	if w, h := d.Viewport(); w != 200 || h != 150 {
		t.Errorf("Viewport = %dx%d, want 200x150", w, h)
	}

	d.RemoveResizeListener(id)
	d.RemoveResizeListener(id)
	d.SetViewport(300, 300)
	if len(calls) != 1 {
		t.Errorf("removed listener still called: %v", calls)
	}
	if d.NumResizeListeners() != 0 {
		t.Errorf("NumResizeListeners = %d, want 0", d.NumResizeListeners())
	}
}

func TestLayoutInsetAndHook(t *testing.T) {
	d := NewDocument(640, 480)
	d.InjectStyle(NewWeatherStyleSheet(time.Second))

	layer := NewContainer("layer")
	layer.AddClass("weather-layer")
	layer.SetPosition(5, 5)
	d.Root().AddChild(layer)

	var gotW, gotH float64
	child := NewContainer("child")
	child.Layout = func(n *Node, w, h float64) {
		gotW, gotH = w, h
		n.X = w / 2
	}
	layer.AddChild(child)

	d.layout()
	if layer.X != 0 || layer.Y != 0 || layer.Width != 640 || layer.Height != 480 {
		t.Errorf("inset layer = (%v, %v) %vx%v, want (0, 0) 640x480", layer.X, layer.Y, layer.Width, layer.Height)
	}
	if gotW != 640 || gotH != 480 {
		t.Errorf("hook saw %vx%v, want 640x480", gotW, gotH)
	}
	if child.X != 320 {
		t.Errorf("child.X = %v, want 320", child.X)
	}

	d.SetViewport(320, 240)
	if layer.Width != 320 || child.X != 160 {
		t.Errorf("after resize width = %v, child.X = %v; want 320, 160", layer.Width, child.X)
	}
}

func TestFadeToWithoutTransition(t *testing.T) {
	d := NewDocument(100, 100)
	n := NewContainer("n")
	d.Root().AddChild(n)

	done := false
	if g := d.FadeTo(n, 0.25, func() { done = true }); g != nil {
		t.Error("untransitioned fade should not create a tween")
	}
	if n.Alpha != 0.25 || !done {
		t.Errorf("Alpha = %v, done = %v; want 0.25, true", n.Alpha, done)
	}
}

func TestFadeToWithTransition(t *testing.T) {
	d := NewDocument(100, 100)
	d.InjectStyle(NewWeatherStyleSheet(100 * time.Millisecond))
	n := NewContainer("weather-effect")
	n.AddClass("weather-effect")
	d.Root().AddChild(n)

	done := false
	d.FadeTo(n, 0, func() { done = true })
	if !d.Fading(n) {
		t.Fatal("fade should be running")
	}

	d.Tick(50 * time.Millisecond)
	if n.Alpha <= 0 || n.Alpha >= 1 {
		t.Errorf("mid-fade Alpha = %v, want in (0, 1)", n.Alpha)
	}
	if done {
		t.Error("onDone ran early")
	}

	d.Tick(60 * time.Millisecond)
	if n.Alpha != 0 || !done {
		t.Errorf("Alpha = %v, done = %v; want 0, true", n.Alpha, done)
	}
	if d.Fading(n) {
		t.Error("fade should have finished")
	}
}

func TestFadeToReplacesRunningFade(t *testing.T) {
	d := NewDocument(100, 100)
	d.InjectStyle(NewWeatherStyleSheet(100 * time.Millisecond))
	n := NewContainer("weather-effect")
	n.AddClass("weather-effect")
	d.Root().AddChild(n)

	firstDone := false
	d.FadeTo(n, 0, func() { firstDone = true })
	d.Tick(50 * time.Millisecond)
	d.FadeTo(n, 1, nil)
	d.Tick(200 * time.Millisecond)

	if firstDone {
		t.Error("replaced fade should not call its onDone")
	}
	if !approxEqual(n.Alpha, 1, 1e-6) {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
}

func TestDocumentTimers(t *testing.T) {
	d := NewDocument(100, 100)
	fired := false
	id := d.SetTimeout(20*time.Millisecond, func() { fired = true })
	if d.PendingTimers() != 1 {
		t.Fatalf("PendingTimers = %d, want 1", d.PendingTimers())
	}
	d.ClearTimeout(id)
	d.Tick(time.Second)
	if fired {
		t.Error("cleared timer fired")
	}
	if d.Now() != time.Second {
		t.Errorf("Now = %v, want 1s", d.Now())
	}
}
