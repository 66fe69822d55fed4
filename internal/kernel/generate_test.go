package kernel

import (
	"math"
	"testing"
)

func geomArgs(vals ...float64) geometryArgs {
	var g geometryArgs
	for i, v := range vals {
		g.values[i] = v
		g.given[i] = true
	}
	return g
}

func TestGenerate_Unity(t *testing.T) {
	k, err := Generate("unity", geomArgs())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if k.Width != 3 || k.Height != 3 {
		t.Fatalf("unity = %dx%d, want 3x3", k.Width, k.Height)
	}
	if k.At(1, 1) != 1 {
		t.Errorf("centre = %v, want 1", k.At(1, 1))
	}
}

func TestGenerate_UnknownNameFails(t *testing.T) {
	_, err := Generate("not-a-family", geomArgs())
	if err == nil {
		t.Fatal("want error for an unknown family")
	}
}

func TestGenerate_Gaussian_SymmetricAndNormalised(t *testing.T) {
	k, err := Generate("gaussian", geomArgs(2, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if k.Width != k.Height {
		t.Fatalf("gaussian kernel not square: %dx%d", k.Width, k.Height)
	}
	sum := 0.0
	for _, v := range k.Values {
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("correlate-normalised gaussian sums to %v, want 1", sum)
	}
	w, h := k.Width, k.Height
	for v := 0; v < h; v++ {
		for u := 0; u < w; u++ {
			mirrored := k.At(w-1-u, h-1-v)
			if math.Abs(k.At(u, v)-mirrored) > 1e-9 {
				t.Fatalf("gaussian not point-symmetric at (%d,%d)", u, v)
			}
		}
	}
}

func TestGenerate_DoG_SumsToZero(t *testing.T) {
	k, err := Generate("dog", geomArgs(3, 1, 2))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	sum := 0.0
	for _, v := range k.Values {
		sum += v
	}
	if math.Abs(sum) > 1e-6 {
		t.Errorf("DoG cells sum to %v, want ~0", sum)
	}
}

func TestGenerate_LoG_SumsToZero(t *testing.T) {
	k, err := Generate("log", geomArgs(2, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	sum := 0.0
	for _, v := range k.Values {
		sum += v
	}
	if math.Abs(sum) > 1e-6 {
		t.Errorf("LoG cells sum to %v, want ~0", sum)
	}
}

func TestGenerate_Blur_IsRowNormalised(t *testing.T) {
	k, err := Generate("blur", geomArgs(2, 1, 0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if k.Height != 1 {
		t.Fatalf("unrotated blur height = %d, want 1", k.Height)
	}
	sum := 0.0
	for _, v := range k.Values {
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("blur sums to %v, want 1", sum)
	}
}

func TestGenerate_Comet_MonotonicDecay(t *testing.T) {
	k, err := Generate("comet", geomArgs(5, 1, 0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if k.Width != 5 || k.Height != 1 {
		t.Fatalf("comet = %dx%d, want 5x1", k.Width, k.Height)
	}
	for u := 1; u < k.Width; u++ {
		if k.At(u, 0) > k.At(u-1, 0) {
			t.Fatalf("comet not monotonically decaying at u=%d", u)
		}
	}
}

func TestGenerate_Laplacian_KnownVariant(t *testing.T) {
	k, err := Generate("laplacian", geomArgs(0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if k.Width != 3 || k.Height != 3 {
		t.Fatalf("laplacian 0 = %dx%d, want 3x3", k.Width, k.Height)
	}
	if k.At(1, 1) != -4 {
		t.Errorf("centre = %v, want -4", k.At(1, 1))
	}
}

func TestGenerate_Laplacian_UnknownVariantFails(t *testing.T) {
	_, err := Generate("laplacian", geomArgs(4))
	if err == nil {
		t.Fatal("want error for an unused laplacian variant id")
	}
}

func TestGenerate_Sobel_Fixed3x3(t *testing.T) {
	k, err := Generate("sobel", geomArgs(0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if k.Width != 3 || k.Height != 3 {
		t.Fatalf("sobel = %dx%d, want 3x3", k.Width, k.Height)
	}
}

func TestGenerate_FreiChen_KnownVariant(t *testing.T) {
	k, err := Generate("freichen", geomArgs(8, 0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := 1.0 / 3
	for _, v := range k.Values {
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("freichen variant 8 cell = %v, want %v", v, want)
		}
	}
}

func TestGenerate_FreiChen_UnknownVariantFails(t *testing.T) {
	_, err := Generate("freichen", geomArgs(99))
	if err == nil {
		t.Fatal("want error for an unknown freichen variant")
	}
}

func TestGenerate_Diamond_Shape(t *testing.T) {
	k, err := Generate("diamond", geomArgs(1, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if k.Width != 3 || k.Height != 3 {
		t.Fatalf("diamond rho=1 = %dx%d, want 3x3", k.Width, k.Height)
	}
	if Masked(k.At(1, 1)) {
		t.Error("diamond centre must not be masked")
	}
	if !Masked(k.At(0, 0)) {
		t.Error("diamond corner at rho=1 must be masked")
	}
}

func TestGenerate_Square_DefaultValueOne(t *testing.T) {
	k, err := Generate("square", geomArgs(1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, v := range k.Values {
		if v != 1 {
			t.Fatalf("square cell = %v, want 1", v)
		}
	}
}

func TestGenerate_Rectangle_RequiresPositiveDims(t *testing.T) {
	_, err := Generate("rectangle", geomArgs(0, 0))
	if err == nil {
		t.Fatal("want error for a zero-size rectangle")
	}
}

func TestGenerate_Rectangle_OriginOutsideFails(t *testing.T) {
	_, err := Generate("rectangle", geomArgs(3, 3, 5, 5))
	if err == nil {
		t.Fatal("want error for an out-of-bounds rectangle origin")
	}
}

func TestGenerate_Disk_CentreUnmasked(t *testing.T) {
	k, err := Generate("disk", geomArgs())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	cx, cy := k.Width/2, k.Height/2
	if Masked(k.At(cx, cy)) {
		t.Error("disk centre must not be masked")
	}
}

func TestGenerate_Plus_ArmsUnmasked(t *testing.T) {
	k, err := Generate("plus", geomArgs(1, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if Masked(k.At(1, 0)) || Masked(k.At(1, 2)) || Masked(k.At(0, 1)) || Masked(k.At(2, 1)) {
		t.Error("plus arms must not be masked")
	}
	if !Masked(k.At(0, 0)) {
		t.Error("plus corner must be masked")
	}
}

func TestGenerate_Cross_DiagonalsUnmasked(t *testing.T) {
	k, err := Generate("cross", geomArgs(1, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if Masked(k.At(0, 0)) || Masked(k.At(2, 2)) || Masked(k.At(0, 2)) || Masked(k.At(2, 0)) {
		t.Error("cross diagonal cells must not be masked")
	}
	if !Masked(k.At(1, 0)) {
		t.Error("cross axis cell must be masked")
	}
}

func TestGenerate_Ring_AnnulusOnly(t *testing.T) {
	k, err := Generate("ring", geomArgs(1, 2, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	cx, cy := k.Width/2, k.Height/2
	if !Masked(k.At(cx, cy)) {
		t.Error("ring centre must be masked (outside the annulus)")
	}
}

func TestGenerate_Peak_CentreForcedToOne(t *testing.T) {
	k, err := Generate("peak", geomArgs(1, 2, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	cx, cy := k.Width/2, k.Height/2
	if k.At(cx, cy) != 1 {
		t.Errorf("peak centre = %v, want 1", k.At(cx, cy))
	}
}

func TestGenerate_Chebyshev(t *testing.T) {
	k, err := Generate("chebyshev", geomArgs(2))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if k.HasFiniteCell() == false {
		t.Fatal("chebyshev distance kernel has no finite cells")
	}
}

func TestGenerate_Manhattan(t *testing.T) {
	k, err := Generate("manhattan", geomArgs(2))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if k.HasFiniteCell() == false {
		t.Fatal("manhattan distance kernel has no finite cells")
	}
}

func TestGenerate_Euclidean(t *testing.T) {
	k, err := Generate("euclidean", geomArgs(2))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if k.HasFiniteCell() == false {
		t.Fatal("euclidean distance kernel has no finite cells")
	}
}

func TestGenerate_Edges(t *testing.T) {
	k, err := Generate("edges", geomArgs(0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if k == nil {
		t.Fatal("want a non-nil edges kernel")
	}
}

func TestGenerate_CaseInsensitiveName(t *testing.T) {
	_, err := Generate("UNITY", geomArgs())
	if err != nil {
		t.Fatalf("Generate with uppercase name: %v", err)
	}
}
