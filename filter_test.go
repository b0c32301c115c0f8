package weather

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewBlurFilter(t *testing.T) {
	f := NewBlurFilter(12)
	if f.Radius != 12 {
		t.Errorf("Radius = %d, want 12", f.Radius)
	}
}

func TestBlurFilterNegativeRadius(t *testing.T) {
	f := NewBlurFilter(-5)
	if f.Radius != 0 {
		t.Errorf("negative radius should clamp to 0, got %d", f.Radius)
	}
}

func TestBlurFilterTemps(t *testing.T) {
	f := NewBlurFilter(6)
	src := ebiten.NewImage(64, 64)
	dst := ebiten.NewImage(64, 64)
	f.Apply(src, dst)
	// ceil(log2(6)) = 3 downscale passes.
	if len(f.temps) != 3 {
		t.Fatalf("temps = %d, want 3", len(f.temps))
	}
	if b := f.temps[2].Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("smallest temp = %dx%d, want 8x8", b.Dx(), b.Dy())
	}

	f.Radius = 2
	f.Apply(src, dst)
	if len(f.temps) != 1 {
		t.Errorf("temps after shrinking radius = %d, want 1", len(f.temps))
	}
}

type countingFilter struct{ calls int }

func (c *countingFilter) Apply(src, dst *ebiten.Image) {
	c.calls++
	dst.DrawImage(src, nil)
}

func TestApplyFiltersChain(t *testing.T) {
	var pool renderTexturePool
	a, b := &countingFilter{}, &countingFilter{}
	src := pool.Acquire(32, 32)

	out := applyFilters([]Filter{a, b}, src, &pool)
	if a.calls != 1 || b.calls != 1 {
		t.Errorf("calls = %d, %d; want 1, 1", a.calls, b.calls)
	}
	if n := len(pool.buckets[poolKey(32, 32)]); n != 1 {
		t.Errorf("pooled intermediates = %d, want 1", n)
	}
	if bd := out.Bounds(); bd.Dx() != 32 || bd.Dy() != 32 {
		t.Errorf("result = %dx%d, want 32x32", bd.Dx(), bd.Dy())
	}
	pool.Release(out)
}

func TestDocumentBlurFilterCached(t *testing.T) {
	d := NewDocument(10, 10)
	if d.blurFilter(6) != d.blurFilter(6) {
		t.Error("same radius should share one filter")
	}
	if d.blurFilter(6) == d.blurFilter(3) {
		t.Error("different radii should not share a filter")
	}
}
