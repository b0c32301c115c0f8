// Command weatherfx opens a window showing the weather effect over a mock
// page of panels.
//
// Keys 1, 2 and 3 select sunny, cloudy and rain. D toggles the dark color
// scheme and M the reduced-motion preference; both take effect on the next
// mode change, the same way a page reads them at render time.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"github.com/phanxgames/weather"
	"github.com/phanxgames/weather/redisstore"
)

type options struct {
	mode          string
	configPath    string
	store         string
	storePath     string
	redisAddr     string
	script        string
	width, height int
	dark          bool
	reducedMotion bool
	verbose       bool
	showFPS       bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:          "weatherfx",
		Short:        "Show the ambient weather effect in a window",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.mode, "mode", "", "initial mode when none is stored (sunny, cloudy, rain)")
	f.StringVar(&o.configPath, "config", "", "TOML file overriding the default tuning")
	f.StringVar(&o.store, "store", "memory", "where the mode is persisted: memory, file or redis")
	f.StringVar(&o.storePath, "store-path", "weather.toml", "file for --store=file")
	f.StringVar(&o.redisAddr, "redis-addr", "localhost:6379", "server for --store=redis")
	f.StringVar(&o.script, "script", "", "JSON test script to play, exiting when it ends")
	f.IntVar(&o.width, "width", 1280, "window width")
	f.IntVar(&o.height, "height", 720, "window height")
	f.BoolVar(&o.dark, "dark", true, "start with the dark color scheme")
	f.BoolVar(&o.reducedMotion, "reduced-motion", false, "start with reduced motion")
	f.BoolVar(&o.showFPS, "fps", false, "show an FPS readout")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func run(ctx context.Context, o options) error {
	level := log.InfoLevel
	if o.verbose {
		level = log.DebugLevel
	}
	logger := weather.NewLogger(os.Stderr, level)

	cfg := weather.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = weather.LoadConfig(o.configPath); err != nil {
			return err
		}
	}

	store, closeStore, err := openStore(ctx, o, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	doc := weather.NewDocument(o.width, o.height)
	doc.SetLogger(logger)
	doc.ClearColor = backdrop(o.dark)
	doc.SetDark(o.dark)
	doc.SetReducedMotion(o.reducedMotion)
	buildPage(doc, cfg.ContainerID)

	eng := weather.NewEngine(doc, weather.WithConfig(cfg), weather.WithStore(store), weather.WithLogger(logger))
	var defaults []weather.Mode
	if o.mode != "" {
		m, ok := weather.ParseMode(o.mode)
		if !ok {
			return fmt.Errorf("%w: %q", weather.ErrInvalidMode, o.mode)
		}
		defaults = append(defaults, m)
	}
	eng.Init(defaults...)
	logger.Info("weather ready", "mode", eng.Mode(), "store", o.store)

	var runner *weather.TestRunner
	if o.script != "" {
		data, err := os.ReadFile(o.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		if runner, err = weather.LoadTestScript(data, eng); err != nil {
			return err
		}
		doc.SetTestRunner(runner)
	}

	doc.SetUpdateFunc(func() error {
		if ctx.Err() != nil || (runner != nil && runner.Done()) {
			return ebiten.Termination
		}
		handleKeys(doc, eng, logger)
		return nil
	})
	defer eng.Destroy()

	err = weather.Run(doc, weather.RunConfig{
		Title:     "weatherfx",
		Width:     o.width,
		Height:    o.height,
		Resizable: true,
		ShowFPS:   o.showFPS,
		Debug:     o.verbose,
	})
	if errors.Is(err, ebiten.Termination) {
		return ctx.Err()
	}
	return err
}

func openStore(ctx context.Context, o options, cfg weather.Config) (weather.ModeStore, func(), error) {
	switch o.store {
	case "memory":
		return &weather.MemoryStore{}, func() {}, nil
	case "file":
		return weather.NewFileStore(o.storePath, cfg.StoreKey), func() {}, nil
	case "redis":
		s, err := redisstore.New(ctx, redisstore.Config{Addr: o.redisAddr, Key: cfg.StoreKey})
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q (want memory, file or redis)", o.store)
}

func handleKeys(doc *weather.Document, eng *weather.Engine, logger *log.Logger) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		eng.SetMode(weather.ModeSunny)
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		eng.SetMode(weather.ModeCloudy)
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		eng.SetMode(weather.ModeRain)
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		doc.SetDark(!doc.Dark())
		doc.ClearColor = backdrop(doc.Dark())
		logger.Info("color scheme", "dark", doc.Dark())
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		doc.SetReducedMotion(!doc.ReducedMotion())
		logger.Info("reduced motion", "on", doc.ReducedMotion())
	}
}

func backdrop(dark bool) weather.Color {
	if dark {
		return weather.Color{R: 0.07, G: 0.09, B: 0.13, A: 1}
	}
	return weather.Color{R: 0.52, G: 0.66, B: 0.82, A: 1}
}

// buildPage lays out a mock page: the weather container on top of a column
// of cards and a floating panel for the rain to splash on.
func buildPage(doc *weather.Document, containerID string) {
	page := weather.NewContainer("page")
	doc.Root().AddChild(page)

	card := func(name, class string, x, y, w, h float64) {
		n := weather.NewSprite(name, w, h)
		n.AddClass(class)
		n.SetPosition(x, y)
		n.Color = weather.Color{R: 1, G: 1, B: 1, A: 0.08}
		page.AddChild(n)
	}
	card("nav", "float-panel-nav", 40, 24, 560, 44)
	card("card-1", "card-base", 40, 140, 520, 180)
	card("card-2", "card-base", 40, 360, 520, 220)
	card("side", "card-base", 600, 140, 240, 300)
	card("button", "btn-card", 600, 480, 120, 36)
	card("tiny", "btn-card", 740, 480, 30, 30) // below the minimum width: no splashes

	container := weather.NewContainer(containerID)
	container.SetZIndex(35)
	doc.Root().AddChild(container)
}
