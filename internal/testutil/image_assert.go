package testutil

import (
	"math"
	"testing"

	"github.com/example/go-morphology/internal/image"
)

// AssertImagesEqual fails the test if a and b differ in any pixel beyond
// eps, per channel.
func AssertImagesEqual(tb testing.TB, a, b *image.MemImage, eps float64) {
	tb.Helper()

	if a.Width() != b.Width() || a.Height() != b.Height() {
		tb.Fatalf("size mismatch: %dx%d vs %dx%d", a.Width(), a.Height(), b.Width(), b.Height())
	}
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			pa, pb := a.At(x, y), b.At(x, y)
			if !pixelApprox(pa, pb, eps) {
				tb.Fatalf("pixel (%d,%d) differs: %+v vs %+v", x, y, pa, pb)
			}
		}
	}
}

// AssertChangedWithin fails the test unless changed falls within [lo, hi].
func AssertChangedWithin(tb testing.TB, changed, lo, hi int) {
	tb.Helper()
	if changed < lo || changed > hi {
		tb.Fatalf("changed pixel count %d out of expected range [%d, %d]", changed, lo, hi)
	}
}

func pixelApprox(a, b image.Pixel, eps float64) bool {
	return approx(a.R, b.R, eps) && approx(a.G, b.G, eps) && approx(a.B, b.B, eps) &&
		approx(a.A, b.A, eps) && approx(a.Aux, b.Aux, eps)
}

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
