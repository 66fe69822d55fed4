package image_test

import (
	"testing"

	"github.com/example/go-morphology/internal/image"
)

func TestNew_AllPixelsZero(t *testing.T) {
	m := image.New(3, 2, false)
	if m.Width() != 3 || m.Height() != 2 {
		t.Fatalf("dims = %dx%d, want 3x2", m.Width(), m.Height())
	}
	if m.At(1, 1) != (image.Pixel{}) {
		t.Errorf("At(1,1) = %+v, want zero value", m.At(1, 1))
	}
}

func TestSet_OutOfBoundsIsNoOp(t *testing.T) {
	m := image.New(2, 2, false)
	m.Set(5, 5, image.Pixel{R: 99})
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if m.At(x, y).R != 0 {
				t.Fatalf("out-of-bounds Set leaked into (%d,%d)", x, y)
			}
		}
	}
}

func TestAt_OutOfBoundsReturnsZeroPixel(t *testing.T) {
	m := image.New(2, 2, false)
	if m.At(-1, 0) != (image.Pixel{}) {
		t.Error("At(-1,0) must return the zero pixel")
	}
	if m.At(0, 10) != (image.Pixel{}) {
		t.Error("At(0,10) must return the zero pixel")
	}
}

func TestClone_IsIndependentCopy(t *testing.T) {
	m := image.New(2, 2, false)
	m.Set(0, 0, image.Pixel{R: 10})
	c := m.Clone()
	c.Set(0, 0, image.Pixel{R: 99})
	if m.At(0, 0).R != 10 {
		t.Error("mutating a clone must not affect the original")
	}
}

func TestFill_SetsEveryPixel(t *testing.T) {
	m := image.New(2, 2, false)
	m.Fill(image.Pixel{R: 7, G: 8, B: 9})
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			p := m.At(x, y)
			if p.R != 7 || p.G != 8 || p.B != 9 {
				t.Fatalf("Fill left (%d,%d) = %+v", x, y, p)
			}
		}
	}
}

func TestHasAlpha_ReflectsConstructor(t *testing.T) {
	if !image.New(1, 1, true).HasAlpha() {
		t.Error("HasAlpha() = false, want true")
	}
	if image.New(1, 1, false).HasAlpha() {
		t.Error("HasAlpha() = true, want false")
	}
}

func TestEqual_DetectsDimensionAndValueMismatch(t *testing.T) {
	a := image.New(2, 2, false)
	b := image.New(2, 2, false)
	if !a.Equal(b) {
		t.Error("two fresh same-size images must be equal")
	}
	b.Set(0, 0, image.Pixel{R: 1})
	if a.Equal(b) {
		t.Error("images with differing pixels must not be equal")
	}
	c := image.New(3, 3, false)
	if a.Equal(c) {
		t.Error("images with differing dimensions must not be equal")
	}
}

func TestPixel_ClampBounds(t *testing.T) {
	p := image.Pixel{R: -10, G: 300, B: 128}.Clamp()
	if p.R != 0 {
		t.Errorf("R = %v, want clamped to 0", p.R)
	}
	if p.G != image.QMax {
		t.Errorf("G = %v, want clamped to QMax", p.G)
	}
	if p.B != 128 {
		t.Errorf("B = %v, want unchanged", p.B)
	}
}

func TestPixel_ComponentAndWithComponent(t *testing.T) {
	p := image.Pixel{R: 1, G: 2, B: 3, A: 4, Aux: 5}
	if p.Component(image.Green) != 2 {
		t.Errorf("Component(Green) = %v, want 2", p.Component(image.Green))
	}
	q := p.WithComponent(image.Blue, 99)
	if q.B != 99 || p.B != 3 {
		t.Errorf("WithComponent must return a modified copy, got q=%+v p=%+v", q, p)
	}
}

func TestIntensity_WeightedLuma(t *testing.T) {
	white := image.Pixel{R: 255, G: 255, B: 255}
	black := image.Pixel{}
	if image.Intensity(white) <= image.Intensity(black) {
		t.Error("Intensity(white) must exceed Intensity(black)")
	}
}
