package kernel

import (
	"fmt"
	"strings"
)

// Generate builds a kernel (or kernel list, for the rotation-expanded
// families) from a named family and its (rho, sigma, xi, psi) geometry
// arguments.
func Generate(name string, g geometryArgs) (*Kernel, error) {
	switch strings.ToLower(name) {
	case "unity":
		return genUnity(g), nil
	case "gaussian":
		return genGaussian(g)
	case "dog":
		return genDoG(g)
	case "log":
		return genLoG(g)
	case "blur":
		return genBlur(g)
	case "dob":
		return genDoB(g)
	case "comet":
		return genComet(g)
	case "laplacian":
		return genLaplacian(g)
	case "sobel":
		return genFixed3x3(TypeSobel, sobelKernel, g.at(0, 0)), nil
	case "roberts":
		return genFixed3x3(TypeRoberts, robertsKernel, g.at(0, 0)), nil
	case "prewitt":
		return genFixed3x3(TypePrewitt, prewittKernel, g.at(0, 0)), nil
	case "compass":
		return genFixed3x3(TypeCompass, compassKernel, g.at(0, 0)), nil
	case "kirsch":
		return genFixed3x3(TypeKirsch, kirschKernel, g.at(0, 0)), nil
	case "freichen":
		return genFreiChen(g)
	case "diamond":
		return genDiamond(g), nil
	case "square":
		return genSquare(g), nil
	case "rectangle":
		return genRectangle(g)
	case "disk":
		return genDisk(g), nil
	case "plus":
		return genPlus(g), nil
	case "cross":
		return genCross(g), nil
	case "ring":
		return genRing(g), nil
	case "peak":
		return genPeak(g), nil
	case "edges":
		return genEdges(g.at(0, 0)), nil
	case "corners":
		return genCorners(g.at(0, 0)), nil
	case "ridges":
		return genRidges(g.at(0, 0)), nil
	case "lineends":
		return genLineEnds(g.at(0, 0)), nil
	case "linejunctions":
		return genLineJunctions(g.at(0, 0)), nil
	case "convexhull":
		return genConvexHull(g.at(0, 0)), nil
	case "skeleton":
		return genSkeleton(g.at(0, 0)), nil
	case "chebyshev":
		return genChebyshev(g), nil
	case "manhattan":
		return genManhattan(g), nil
	case "euclidean":
		return genEuclidean(g), nil
	default:
		return nil, fmt.Errorf("unknown kernel name %q", name)
	}
}

// genUnity returns the 3x3 no-op convolution kernel: 1 at the centre, 0
// elsewhere.
func genUnity(_ geometryArgs) *Kernel {
	k := New(3, 3)
	k.Set(1, 1, 1)
	k.Type = TypeUnity
	k.RecomputeStatistics()
	return k
}

// genDiamond builds a (2*rho+1)^2 kernel holding flat value s inside the
// diamond |u|+|v| <= rho and masked cells outside.
func genDiamond(g geometryArgs) *Kernel {
	rho := intArg(g.at(0, 1), 1)
	s := g.at(1, 1)

	side := 2*rho + 1
	k := New(side, side)
	k.Type = TypeDiamond
	for v := -rho; v <= rho; v++ {
		for u := -rho; u <= rho; u++ {
			val := MaskedCell
			if abs(u)+abs(v) <= rho {
				val = s
			}
			k.Set(u+rho, v+rho, val)
		}
	}
	k.RecomputeStatistics()
	return k
}

// genSquare builds a filled (2*rho+1)^2 kernel at value s (default 1).
func genSquare(g geometryArgs) *Kernel {
	rho := intArg(g.at(0, 1), 1)
	s := g.at(1, 1)
	if !g.hasAt(1) {
		s = 1
	}
	side := 2*rho + 1
	k := New(side, side)
	k.Type = TypeSquare
	for i := range k.Values {
		k.Values[i] = s
	}
	k.RecomputeStatistics()
	return k
}

// genRectangle builds a filled W x H kernel at value 1, with origin (X,Y).
func genRectangle(g geometryArgs) (*Kernel, error) {
	w := intArg(g.at(0, 0), 0)
	h := intArg(g.at(1, 0), 0)
	x := intArg(g.at(2, 0), 0)
	y := intArg(g.at(3, 0), 0)

	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("rectangle kernel requires positive width/height, got %dx%d", w, h)
	}
	if x < 0 || x >= w || y < 0 || y >= h {
		return nil, fmt.Errorf("rectangle origin (%d,%d) outside %dx%d", x, y, w, h)
	}

	k := New(w, h)
	k.X, k.Y = x, y
	k.Type = TypeRectangle
	for i := range k.Values {
		k.Values[i] = 1
	}
	k.RecomputeStatistics()
	return k, nil
}

// genDisk builds a kernel of flat value s over cells with u^2+v^2 <= rho^2.
// The default radius (rho~3.5) yields the canonical 7x7 disk.
func genDisk(g geometryArgs) *Kernel {
	rho := g.at(0, 3.5)
	s := g.at(1, 1)
	if !g.hasAt(1) {
		s = 1
	}
	limit := int(rho) // floor; rho~3.5 yields the canonical 7x7 disk (limit=3)
	if limit < 1 {
		limit = 1
	}

	k := New(2*limit+1, 2*limit+1)
	k.Type = TypeDisk
	r2 := rho * rho
	for v := -limit; v <= limit; v++ {
		for u := -limit; u <= limit; u++ {
			val := MaskedCell
			if float64(u*u+v*v) <= r2 {
				val = s
			}
			k.Set(u+limit, v+limit, val)
		}
	}
	k.RecomputeStatistics()
	return k
}

// genPlus builds an axis-cross kernel: the horizontal and vertical arms of
// length 2*rho+1 set to s, all other cells masked.
func genPlus(g geometryArgs) *Kernel {
	rho := intArg(g.at(0, 1), 1)
	s := g.at(1, 1)
	if !g.hasAt(1) {
		s = 1
	}
	side := 2*rho + 1
	k := New(side, side)
	k.Type = TypePlus
	for i := range k.Values {
		k.Values[i] = MaskedCell
	}
	for i := 0; i < side; i++ {
		k.Set(i, rho, s)
		k.Set(rho, i, s)
	}
	k.RecomputeStatistics()
	return k
}

// genCross builds the diagonal analogue of Plus.
func genCross(g geometryArgs) *Kernel {
	rho := intArg(g.at(0, 1), 1)
	s := g.at(1, 1)
	if !g.hasAt(1) {
		s = 1
	}
	side := 2*rho + 1
	k := New(side, side)
	k.Type = TypeCross
	for i := range k.Values {
		k.Values[i] = MaskedCell
	}
	for i := 0; i < side; i++ {
		k.Set(i, i, s)
		k.Set(side-1-i, i, s)
	}
	k.RecomputeStatistics()
	return k
}

// genRing builds a kernel holding points with min(rho)^2 < u^2+v^2 <=
// max(rho)^2 set to s, masked elsewhere.
func genRing(g geometryArgs) *Kernel {
	rho1 := g.at(0, 0)
	rho2 := g.at(1, 0)
	s := g.at(2, 1)
	if !g.hasAt(2) {
		s = 1
	}
	lo, hi := rho1, rho2
	if lo > hi {
		lo, hi = hi, lo
	}
	limit := int(hi + 0.5)
	if limit < 1 {
		limit = 1
	}
	side := 2*limit + 1
	k := New(side, side)
	k.Type = TypeRing
	lo2, hi2 := lo*lo, hi*hi
	for i := range k.Values {
		k.Values[i] = MaskedCell
	}
	for v := -limit; v <= limit; v++ {
		for u := -limit; u <= limit; u++ {
			d2 := float64(u*u + v*v)
			if d2 > lo2 && d2 <= hi2 {
				k.Set(u+limit, v+limit, s)
			}
		}
	}
	k.RecomputeStatistics()
	return k
}

// genPeak is Ring with the centre cell additionally forced to 1, a marker
// used to locate local maxima surrounded by a flat ring.
func genPeak(g geometryArgs) *Kernel {
	k := genRing(g)
	k.Type = TypePeak
	k.Set(k.Width/2, k.Height/2, 1)
	k.RecomputeStatistics()
	return k
}

func intArg(v float64, def int) int {
	if v == 0 {
		return def
	}
	return int(v + 0.5)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
