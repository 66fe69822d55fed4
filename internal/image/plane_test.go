package image_test

import (
	"testing"

	"github.com/example/go-morphology/internal/image"
)

func TestWindow_RepeatsEdgePixels(t *testing.T) {
	m := image.New(2, 2, false)
	m.Set(0, 0, image.Pixel{R: 1})
	m.Set(1, 0, image.Pixel{R: 2})
	m.Set(0, 1, image.Pixel{R: 3})
	m.Set(1, 1, image.Pixel{R: 4})

	win := image.NewWindow(m)

	if got := win.At(-1, -1); got.R != 1 {
		t.Errorf("At(-1,-1) = %v, want edge-replicated 1", got.R)
	}
	if got := win.At(5, 5); got.R != 4 {
		t.Errorf("At(5,5) = %v, want edge-replicated 4", got.R)
	}
	if got := win.At(-3, 0); got.R != 1 {
		t.Errorf("At(-3,0) = %v, want edge-replicated 1", got.R)
	}
}

func TestWindow_InBoundsPassesThrough(t *testing.T) {
	m := image.New(2, 2, false)
	m.Set(1, 0, image.Pixel{R: 42})
	win := image.NewWindow(m)
	if got := win.At(1, 0); got.R != 42 {
		t.Errorf("At(1,0) = %v, want 42", got.R)
	}
}

func TestMask_Has(t *testing.T) {
	m := image.MaskRed | image.MaskBlue
	if !m.Has(image.MaskRed) {
		t.Error("Has(MaskRed) = false, want true")
	}
	if m.Has(image.MaskGreen) {
		t.Error("Has(MaskGreen) = true, want false")
	}
}
