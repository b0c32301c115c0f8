package weather

// Mode is one of the three weather effects.
type Mode uint8

const (
	ModeSunny Mode = iota
	ModeCloudy
	ModeRain
)

var modeNames = [...]string{
	ModeSunny:  "sunny",
	ModeCloudy: "cloudy",
	ModeRain:   "rain",
}

// Modes lists every mode in declaration order.
var Modes = []Mode{ModeSunny, ModeCloudy, ModeRain}

// String returns the persisted name of the mode: "sunny", "cloudy" or "rain".
func (m Mode) String() string {
	if !m.Valid() {
		return "unknown"
	}
	return modeNames[m]
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return int(m) < len(modeNames)
}

// Class returns the container marker class for the mode, e.g. "weather-rain".
func (m Mode) Class() string {
	return "weather-" + m.String()
}

// ParseMode maps a persisted name back to a Mode. Matching is exact; any other
// string reports false.
func ParseMode(s string) (Mode, bool) {
	for i, name := range modeNames {
		if s == name {
			return Mode(i), true
		}
	}
	return ModeSunny, false
}
