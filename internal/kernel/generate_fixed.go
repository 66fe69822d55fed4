package kernel

import "fmt"

// fixed3x3 builds a 3x3 kernel from 9 row-major values, centred, origin at
// (1,1).
func fixed3x3(t Type, vals [9]float64) *Kernel {
	k := New(3, 3)
	copy(k.Values, vals[:])
	k.Type = t
	k.RecomputeStatistics()
	return k
}

// genFixed3x3 builds a fixed 3x3 pattern and rotates it by theta.
func genFixed3x3(t Type, vals [9]float64, theta float64) *Kernel {
	k := fixed3x3(t, vals)
	rotated, err := Rotate(k, theta)
	if err != nil {
		// Fixed 3x3 templates always accept 45/90/180 rotation; this path
		// is unreachable in practice.
		return k
	}
	return rotated
}

var sobelKernel = [9]float64{
	-1, 0, 1,
	-2, 0, 2,
	-1, 0, 1,
}

var robertsKernel = [9]float64{
	0, 0, 0,
	0, 1, 0,
	0, 0, -1,
}

var prewittKernel = [9]float64{
	-1, 0, 1,
	-1, 0, 1,
	-1, 0, 1,
}

var compassKernel = [9]float64{
	-1, 1, 1,
	-1, -2, 1,
	-1, 1, 1,
}

var kirschKernel = [9]float64{
	-3, -3, 5,
	-3, 0, 5,
	-3, -3, 5,
}

// laplacianVariants holds the eight discrete Laplacian templates selected by
// the integer type field.
var laplacianVariants = map[int]struct {
	w, h int
	vals []float64
}{
	0: {3, 3, []float64{
		0, 1, 0,
		1, -4, 1,
		0, 1, 0,
	}},
	1: {3, 3, []float64{
		1, 1, 1,
		1, -8, 1,
		1, 1, 1,
	}},
	2: {3, 3, []float64{
		-1, 2, -1,
		2, -4, 2,
		-1, 2, -1,
	}},
	3: {3, 3, []float64{
		0, -1, 0,
		-1, 4, -1,
		0, -1, 0,
	}},
	5: {5, 5, []float64{
		0, 0, -1, 0, 0,
		0, -1, -2, -1, 0,
		-1, -2, 16, -2, -1,
		0, -1, -2, -1, 0,
		0, 0, -1, 0, 0,
	}},
	7: {7, 7, sevenBySevenLaplacian()},
	15: {9, 9, nineByNineLaplacianA()},
	19: {9, 9, nineByNineLaplacianB()},
}

// sevenBySevenLaplacian is a wide Mexican-hat-shaped discrete Laplacian: a
// positive centre lobe surrounded by a negative annulus, summing to zero.
func sevenBySevenLaplacian() []float64 {
	k := make([]float64, 49)
	for v := -3; v <= 3; v++ {
		for u := -3; u <= 3; u++ {
			d2 := u*u + v*v
			var val float64
			switch {
			case d2 == 0:
				val = 32
			case d2 <= 2:
				val = -2
			case d2 <= 8:
				val = -1
			default:
				val = 0
			}
			k[(v+3)*7+(u+3)] = val
		}
	}
	return k
}

func nineByNineLaplacianA() []float64 {
	k := make([]float64, 81)
	for v := -4; v <= 4; v++ {
		for u := -4; u <= 4; u++ {
			d2 := u*u + v*v
			var val float64
			switch {
			case d2 == 0:
				val = 40
			case d2 <= 4:
				val = -2
			case d2 <= 16:
				val = -1
			default:
				val = 0
			}
			k[(v+4)*9+(u+4)] = val
		}
	}
	return k
}

func nineByNineLaplacianB() []float64 {
	k := make([]float64, 81)
	for v := -4; v <= 4; v++ {
		for u := -4; u <= 4; u++ {
			d2 := u*u + v*v
			var val float64
			switch {
			case d2 == 0:
				val = 60
			case d2 <= 2:
				val = -3
			case d2 <= 10:
				val = -1
			default:
				val = 0
			}
			k[(v+4)*9+(u+4)] = val
		}
	}
	return k
}

// genLaplacian selects one of the eight discrete variants by integer type t.
func genLaplacian(g geometryArgs) (*Kernel, error) {
	t := intArg(g.at(0, 0), 0)
	v, ok := laplacianVariants[t]
	if !ok {
		return nil, fmt.Errorf("unknown laplacian variant %d", t)
	}
	k := New(v.w, v.h)
	copy(k.Values, v.vals)
	k.Type = TypeLaplacian
	k.RecomputeStatistics()
	return k, nil
}

const sqrt2 = 1.4142135623730951

// freiChenVariants holds the nine FreiChen edge/line templates and their
// fixed normalisers.
var freiChenVariants = map[int]struct {
	vals  [9]float64
	scale float64
}{
	0: {[9]float64{1, sqrt2, 1, 0, 0, 0, -1, -sqrt2, -1}, 1 / (2 * sqrt2)},
	1: {[9]float64{1, 0, -1, sqrt2, 0, -sqrt2, 1, 0, -1}, 1 / (2 * sqrt2)},
	2: {[9]float64{0, -1, sqrt2, 1, 0, -1, -sqrt2, 1, 0}, 1 / (2 * sqrt2)},
	3: {[9]float64{sqrt2, -1, 0, -1, 0, 1, 0, 1, -sqrt2}, 1 / (2 * sqrt2)},
	4: {[9]float64{0, 1, 0, -1, 0, -1, 0, 1, 0}, 0.5},
	5: {[9]float64{-1, 0, 1, 0, 0, 0, 1, 0, -1}, 0.5},
	6: {[9]float64{1, -2, 1, -2, 4, -2, 1, -2, 1}, 1.0 / 6},
	7: {[9]float64{-2, 1, -2, 1, 4, 1, -2, 1, -2}, 1.0 / 6},
	8: {[9]float64{1, 1, 1, 1, 1, 1, 1, 1, 1}, 1.0 / 3},
}

// genFreiChen selects one of the nine FreiChen variants by integer type t
// and rotates it by theta.
func genFreiChen(g geometryArgs) (*Kernel, error) {
	t := intArg(g.at(0, 0), 0)
	theta := g.at(1, 0)
	v, ok := freiChenVariants[t]
	if !ok {
		return nil, fmt.Errorf("unknown freichen variant %d", t)
	}
	k := New(3, 3)
	for i, c := range v.vals {
		k.Values[i] = c * v.scale
	}
	k.Type = TypeFreiChen
	k.RecomputeStatistics()
	return Rotate(k, theta)
}
