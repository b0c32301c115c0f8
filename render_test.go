package weather

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestDrawEveryMode(t *testing.T) {
	for _, m := range Modes {
		t.Run(m.String(), func(t *testing.T) {
			d, _ := newEngineDoc()
			d.ClearColor = Color{0.1, 0.1, 0.2, 1}
			e := NewEngine(d)
			e.Init(m)
			tickFor(d, 100*testFrame)

			screen := ebiten.NewImage(800, 600)
			d.Draw(screen) // should not panic
			d.Draw(screen)
		})
	}
}

func TestDrawSkipsInvisible(t *testing.T) {
	d := NewDocument(100, 100)
	hidden := NewSprite("hidden", 10, 10)
	hidden.Visible = false
	faded := NewSprite("faded", 10, 10)
	faded.Alpha = 0
	d.Root().AddChild(hidden)
	d.Root().AddChild(faded)

	d.Draw(ebiten.NewImage(100, 100))
}
