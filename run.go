package weather

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	ShowFPS   bool
	Debug     bool
}

// Run opens a window and drives doc as the game until the window closes or
// the update callback returns an error. ebiten.Termination ends it cleanly.
func Run(doc *Document, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	doc.ShowFPS = cfg.ShowFPS
	if cfg.Debug {
		doc.SetDebugMode(true)
	}
	doc.SetViewport(cfg.Width, cfg.Height)
	return ebiten.RunGame(doc)
}
