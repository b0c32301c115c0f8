package weather

import "testing"

func TestModeString(t *testing.T) {
	tests := []struct {
		m     Mode
		want  string
		class string
	}{
		{ModeSunny, "sunny", "weather-sunny"},
		{ModeCloudy, "cloudy", "weather-cloudy"},
		{ModeRain, "rain", "weather-rain"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.m, got, tt.want)
		}
		if got := tt.m.Class(); got != tt.class {
			t.Errorf("Mode(%d).Class() = %q, want %q", tt.m, got, tt.class)
		}
	}
	if got := Mode(9).String(); got != "unknown" {
		t.Errorf("invalid mode String() = %q, want unknown", got)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, ok := ParseMode(m.String())
		if !ok || got != m {
			t.Errorf("ParseMode(%q) = %v, %v; want %v, true", m.String(), got, ok, m)
		}
	}
	for _, s := range []string{"", "Rain", "snow", " sunny", "weather-rain"} {
		got, ok := ParseMode(s)
		if ok {
			t.Errorf("ParseMode(%q) should fail", s)
		}
		if got != ModeSunny {
			t.Errorf("ParseMode(%q) = %v, want sunny fallback", s, got)
		}
	}
}

func TestModeValid(t *testing.T) {
	if !ModeRain.Valid() {
		t.Error("ModeRain should be valid")
	}
	if Mode(3).Valid() {
		t.Error("Mode(3) should be invalid")
	}
}
