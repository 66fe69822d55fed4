package morphology

import (
	"testing"

	"github.com/example/go-morphology/internal/image"
	"github.com/example/go-morphology/internal/kernel"
)

func flatKernel(w, h int, v float64) *kernel.Kernel {
	k := kernel.New(w, h)
	for i := range k.Values {
		k.Values[i] = v
	}
	k.RecomputeStatistics()
	return k
}

func threeByThreeWindow(vals [9]float64) image.Window {
	m := image.New(3, 3, false)
	for i, v := range vals {
		x, y := i%3, i/3
		m.Set(x, y, image.Pixel{R: v, G: v, B: v, A: 255})
	}
	return image.NewWindow(m)
}

func TestErodeCell_TakesMinimumOverFlatKernel(t *testing.T) {
	win := threeByThreeWindow([9]float64{
		10, 20, 30,
		40, 5, 60,
		70, 80, 90,
	})
	k := flatKernel(3, 3, 1)
	in := win.At(1, 1)
	out := erodeCell(k, win, 1, 1, k.X, k.Y, in, image.MaskAll)
	if out.R != 5 {
		t.Errorf("erode R = %v, want 5", out.R)
	}
}

func TestDilateCell_TakesMaximumOverFlatKernel(t *testing.T) {
	win := threeByThreeWindow([9]float64{
		10, 20, 30,
		40, 5, 60,
		70, 80, 90,
	})
	k := flatKernel(3, 3, 1)
	in := win.At(1, 1)
	out := dilateCell(k, win, 1, 1, k.X, k.Y, in, image.MaskAll)
	if out.R != 90 {
		t.Errorf("dilate R = %v, want 90", out.R)
	}
}

func TestErodeCell_IgnoresCellsBelowHalf(t *testing.T) {
	win := threeByThreeWindow([9]float64{
		10, 20, 30,
		40, 5, 60,
		70, 80, 90,
	})
	k := kernel.New(3, 3)
	for i := range k.Values {
		k.Values[i] = 1
	}
	k.Set(1, 0, 0) // zero the weight of the cell holding value 20, so erosion skips it
	k.RecomputeStatistics()
	in := win.At(1, 1)
	out := erodeCell(k, win, 1, 1, k.X, k.Y, in, image.MaskAll)
	if out.R != 5 {
		t.Errorf("erode R with a zero-weight cell = %v, want 5 (centre still included)", out.R)
	}
}

func TestIntensityCell_SelectsDarkestPixelWholesale(t *testing.T) {
	m := image.New(3, 3, false)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			m.Set(x, y, image.Pixel{R: 150, G: 150, B: 150})
		}
	}
	m.Set(0, 0, image.Pixel{R: 200, G: 0, B: 0}) // bright R, dark others -> low intensity
	win := image.NewWindow(m)
	k := flatKernel(3, 3, 1)
	in := win.At(1, 1)
	out := intensityCell(k, win, 1, 1, k.X, k.Y, in, false)
	if out.G != 0 || out.B != 0 {
		t.Errorf("ErodeIntensity did not select the darkest whole pixel: %+v", out)
	}
}

func TestIntensityCell_SelectsBrightestPixelWholesale(t *testing.T) {
	m := image.New(3, 3, false)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			m.Set(x, y, image.Pixel{R: 10, G: 10, B: 10})
		}
	}
	m.Set(2, 2, image.Pixel{R: 250, G: 250, B: 250})
	win := image.NewWindow(m)
	k := flatKernel(3, 3, 1)
	in := win.At(1, 1)
	out := intensityCell(k, win, 1, 1, k.X, k.Y, in, true)
	if out.R != 250 {
		t.Errorf("DilateIntensity did not select the brightest whole pixel: %+v", out)
	}
}

func TestHitMissCell_HitAndMissReportsDirectly(t *testing.T) {
	win := threeByThreeWindow([9]float64{
		255, 255, 255,
		255, 255, 0,
		0, 0, 0,
	})
	k := kernel.New(3, 3)
	// foreground in the top-left quadrant, background in the bottom-right.
	k.Values = []float64{
		1, 1, kernel.MaskedCell,
		1, kernel.MaskedCell, 0,
		kernel.MaskedCell, 0, 0,
	}
	k.RecomputeStatistics()
	in := win.At(1, 1)
	out := hitMissCell(k, win, 1, 1, k.X, k.Y, in, image.MaskAll, false, false)
	if out.R != 255 {
		t.Errorf("hit-and-miss R = %v, want 255 (fmin-bmax)", out.R)
	}
}

func TestHitMissCell_ThinSubtractsFromInput(t *testing.T) {
	win := threeByThreeWindow([9]float64{
		255, 255, 255,
		255, 255, 0,
		0, 0, 0,
	})
	k := kernel.New(3, 3)
	k.Values = []float64{
		1, 1, kernel.MaskedCell,
		1, kernel.MaskedCell, 0,
		kernel.MaskedCell, 0, 0,
	}
	k.RecomputeStatistics()
	in := win.At(1, 1)
	out := hitMissCell(k, win, 1, 1, k.X, k.Y, in, image.MaskAll, true, false)
	if out.R != 0 {
		t.Errorf("thin R = %v, want 0 (255 input minus 255 hit)", out.R)
	}
}

func TestDistanceCell_TakesMinimumOfKernelPlusPixel(t *testing.T) {
	win := threeByThreeWindow([9]float64{
		10, 10, 10,
		10, 10, 10,
		10, 10, 10,
	})
	k := kernel.New(3, 3)
	for i := range k.Values {
		k.Values[i] = 5
	}
	k.Set(1, 1, 0)
	k.RecomputeStatistics()
	in := win.At(1, 1)
	out := distanceCell(k, win, 1, 1, k.X, k.Y, in, image.MaskAll)
	if out.R != 10 {
		t.Errorf("distance R = %v, want 10 (min of 10+0 and 10+5)", out.R)
	}
}
