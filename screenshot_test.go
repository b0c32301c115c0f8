package weather

import "testing"

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-rain", "after-rain"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	d := NewDocument(100, 100)
	d.Screenshot("a")
	d.Screenshot("b")
	d.Screenshot("c")
	if len(d.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(d.screenshotQueue))
	}
	if d.screenshotQueue[0] != "a" || d.screenshotQueue[1] != "b" || d.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", d.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	d := NewDocument(100, 100)
	if d.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", d.ScreenshotDir, "screenshots")
	}
}
