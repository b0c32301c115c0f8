package weather

import "testing"

// --- nextPowerOfTwo ---

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		input, want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{127, 128},
		{128, 128},
		{129, 256},
		{1000, 1024},
		{1920, 2048},
		{1080, 2048},
	}
	for _, tt := range tests {
		got := nextPowerOfTwo(tt.input)
		if got != tt.want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

// --- Pool ---

func TestPoolAcquireReturnsPow2(t *testing.T) {
	var pool renderTexturePool
	img := pool.Acquire(100, 50)
	defer pool.Release(img)

	b := img.Bounds()
	if b.Dx() != 128 {
		t.Errorf("width = %d, want 128 (next pow2 of 100)", b.Dx())
	}
	if b.Dy() != 64 {
		t.Errorf("height = %d, want 64 (next pow2 of 50)", b.Dy())
	}
}

func TestPoolReleaseAndReacquire(t *testing.T) {
	var pool renderTexturePool
	img1 := pool.Acquire(64, 64)
	pool.Release(img1)

	img2 := pool.Acquire(60, 60)
	if img1 != img2 {
		t.Error("expected pool to return the same image for the same pow2 bucket")
	}
	pool.Release(img2)
}

func TestPoolDifferentSizes(t *testing.T) {
	var pool renderTexturePool
	a := pool.Acquire(32, 32)
	b := pool.Acquire(64, 64)
	if a == b {
		t.Error("different sizes should return different images")
	}
	pool.Release(a)
	pool.Release(b)
}

func TestPoolReleaseNilNoPanic(t *testing.T) {
	var pool renderTexturePool
	pool.Release(nil) // should not panic
}
