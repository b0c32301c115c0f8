package weather

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Sentinel errors for diagnostics. Engine operations never return them; they
// surface through Engine.Ready, LoadConfig and the stores.
var (
	ErrInvalidMode   = errors.New("weather: invalid mode")
	ErrNoContainer   = errors.New("weather: container not found")
	ErrInvalidConfig = errors.New("weather: invalid config")
)

// DropLayer bounds the randomized attributes of one rain depth layer.
type DropLayer struct {
	Length  Range   `toml:"length"`
	Speed   Range   `toml:"speed"`
	Opacity Range   `toml:"opacity"`
	Wind    float64 `toml:"wind"`
}

// Config holds every tuning constant of the engine. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// ContainerID is the Name of the node the engine renders into.
	ContainerID string `toml:"container_id"`
	// StoreKey is the key the mode string is persisted under.
	StoreKey string `toml:"store_key"`
	// Transition is the length of each half of a cross-fade.
	Transition time.Duration `toml:"transition"`

	MaxDrops      int     `toml:"max_drops"`
	AreaPerDrop   float64 `toml:"area_per_drop"`
	ReducedFactor float64 `toml:"reduced_factor"`
	// Layers are the back, middle and near rain layers. Layer 0 draws on the
	// back canvas, the rest on the front canvas.
	Layers []DropLayer `toml:"layer"`

	SplashCap        int `toml:"splash_cap"`
	SplashesPerFrame int `toml:"splashes_per_frame"`
	SplashMaxLife    int `toml:"splash_max_life"`
	SplashRays       int `toml:"splash_rays"`

	ZoneRefreshFrames int      `toml:"zone_refresh_frames"`
	ZoneMinWidth      float64  `toml:"zone_min_width"`
	ZoneMinHeight     float64  `toml:"zone_min_height"`
	ZoneClasses       []string `toml:"zone_classes"`
	ZoneClassContains []string `toml:"zone_class_contains"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		ContainerID: "weather-effect",
		StoreKey:    "theme-fuwari-weather",
		Transition:  950 * time.Millisecond,

		MaxDrops:      2200,
		AreaPerDrop:   4500,
		ReducedFactor: 0.25,
		Layers: []DropLayer{
			{Length: Range{6, 12}, Speed: Range{2, 5}, Opacity: Range{0.07, 0.16}, Wind: 0.12},
			{Length: Range{10, 18}, Speed: Range{4, 8}, Opacity: Range{0.10, 0.24}, Wind: 0.30},
			{Length: Range{14, 24}, Speed: Range{5.5, 11}, Opacity: Range{0.15, 0.32}, Wind: 0.45},
		},

		SplashCap:        48,
		SplashesPerFrame: 4,
		SplashMaxLife:    22,
		SplashRays:       5,

		ZoneRefreshFrames: 45,
		ZoneMinWidth:      40,
		ZoneMinHeight:     4,
		ZoneClasses:       []string{"card-base", "btn-card"},
		ZoneClassContains: []string{"float-panel"},
	}
}

// LoadConfig reads a TOML file over DefaultConfig. Keys absent from the file
// keep their defaults. The result is validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return cfg, fmt.Errorf("load config %s: %w: unknown key %q", path, ErrInvalidConfig, undec[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first out-of-range field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	bad := func(field string, v any) error {
		return fmt.Errorf("%w: %s = %v", ErrInvalidConfig, field, v)
	}
	switch {
	case c.ContainerID == "":
		return bad("container_id", `""`)
	case c.StoreKey == "":
		return bad("store_key", `""`)
	case c.Transition < 0:
		return bad("transition", c.Transition)
	case c.MaxDrops < 3:
		return bad("max_drops", c.MaxDrops)
	case c.AreaPerDrop <= 0:
		return bad("area_per_drop", c.AreaPerDrop)
	case c.ReducedFactor <= 0 || c.ReducedFactor >= 1:
		return bad("reduced_factor", c.ReducedFactor)
	case len(c.Layers) != 3:
		return bad("layer count", len(c.Layers))
	case c.SplashCap < 0:
		return bad("splash_cap", c.SplashCap)
	case c.SplashesPerFrame < 0:
		return bad("splashes_per_frame", c.SplashesPerFrame)
	case c.SplashMaxLife <= 0:
		return bad("splash_max_life", c.SplashMaxLife)
	case c.SplashRays < 1:
		return bad("splash_rays", c.SplashRays)
	case c.ZoneRefreshFrames <= 0:
		return bad("zone_refresh_frames", c.ZoneRefreshFrames)
	}
	for i, l := range c.Layers {
		if l.Length.Min <= 0 || l.Length.Max < l.Length.Min {
			return bad(fmt.Sprintf("layer[%d].length", i), l.Length)
		}
		if l.Speed.Max < l.Speed.Min {
			return bad(fmt.Sprintf("layer[%d].speed", i), l.Speed)
		}
		if l.Opacity.Min < 0 || l.Opacity.Max > 1 || l.Opacity.Max < l.Opacity.Min {
			return bad(fmt.Sprintf("layer[%d].opacity", i), l.Opacity)
		}
	}
	return nil
}
