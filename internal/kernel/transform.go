package kernel

import (
	"fmt"
	"math"
)

// rotationInvariant families short-circuit Rotate entirely: their shape is
// the same from every angle, so spinning them would only waste a sweep.
var rotationInvariant = map[Type]bool{
	TypeGaussian:  true,
	TypeDoG:       true,
	TypeDisk:      true,
	TypePeak:      true,
	TypeLaplacian: true,
	TypeChebyshev: true,
	TypeManhattan: true,
	TypeEuclidean: true,
	TypeSquare:    true,
	TypeDiamond:   true,
	TypePlus:      true,
	TypeCross:     true,
}

// Rotate rotates k (and, recursively, k.Next) into the canonical
// orientation nearest theta degrees: theta is rounded to a multiple of 45,
// and within 22.5 of a multiple of 360 nothing rotates. 45, 90 and 180 are
// single steps; 135, 225, 270 and 315 are composed of 180, 90 and 45 degree
// steps. A 45-degree step needs a 3x3 kernel and a 90-degree step a square
// or 1-D kernel. Rotation-invariant families and Blur/Rectangle at 180
// degrees collapse to identity.
func Rotate(k *Kernel, theta float64) (*Kernel, error) {
	if k == nil {
		return nil, nil
	}

	next, err := Rotate(k.Next, theta)
	if err != nil {
		return nil, err
	}

	out, err := rotateOne(k, theta)
	if err != nil {
		return nil, err
	}
	out.Next = next
	return out, nil
}

func rotateOne(k *Kernel, theta float64) (*Kernel, error) {
	norm := normalizeAngle(theta)

	if rotationInvariant[k.Type] {
		return k.Clone(), nil
	}

	if norm < -22.5 {
		norm += 360 // negative angles turn the same way as positive ones
	}
	if first := 180.0; norm > 202.5 || (norm > 112.5 && norm <= 157.5) {
		if norm <= 157.5 {
			first = 90 // 135 = 90 + 45
		}
		mid, err := rotateOne(k, first)
		if err != nil {
			return nil, err
		}
		return rotateOne(mid, norm-first)
	}

	step := nearestStep(norm)

	switch step {
	case 0:
		return k.Clone(), nil
	case 45:
		if k.Width != 3 || k.Height != 3 {
			return nil, fmt.Errorf("kernel: 45-degree rotation requires a 3x3 kernel, got %dx%d", k.Width, k.Height)
		}
		out := rotate45(k)
		out.Angle = k.Angle + 45
		return out, nil
	case 90:
		if k.Height == 1 || k.Width == 1 {
			out := transpose1D(k)
			out.Angle = k.Angle + 90
			return out, nil
		}
		if k.Width != k.Height {
			return nil, fmt.Errorf("kernel: 90-degree rotation requires a square kernel, got %dx%d", k.Width, k.Height)
		}
		if k.Type == TypeBlur || k.Type == TypeRectangle {
			return k.Clone(), nil
		}
		out := rotate90Square(k)
		out.Angle = k.Angle + 90
		return out, nil
	case 180:
		if k.Type == TypeBlur || k.Type == TypeRectangle {
			return k.Clone(), nil
		}
		out := rotate180(k)
		out.Angle = k.Angle + 180
		return out, nil
	default:
		return k.Clone(), nil
	}
}

// normalizeAngle folds theta into (-180, 180].
func normalizeAngle(theta float64) float64 {
	a := math.Mod(theta, 360)
	if a <= -180 {
		a += 360
	} else if a > 180 {
		a -= 360
	}
	return a
}

// nearestStep maps a normalized angle to the nearest canonical step.
func nearestStep(a float64) int {
	m := math.Abs(a)
	switch {
	case m <= 22.5:
		return 0
	case m <= 67.5:
		return 45
	case m <= 112.5:
		return 90
	case m <= 157.5:
		return 135 // not reached from rotateOne, which composes 135 as 90 + 45
	default:
		return 180
	}
}

// rotate180 reverses Values end-to-end and reflects the origin.
func rotate180(k *Kernel) *Kernel {
	out := k.Clone()
	n := len(out.Values)
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		out.Values[i], out.Values[j] = out.Values[j], out.Values[i]
	}
	out.X = out.Width - 1 - out.X
	out.Y = out.Height - 1 - out.Y
	out.RecomputeStatistics()
	return out
}

// transpose1D rotates a 1xW (or Wx1) kernel 90 degrees by swapping width and
// height.
func transpose1D(k *Kernel) *Kernel {
	out := k.Clone()
	out.Width, out.Height = k.Height, k.Width
	out.X, out.Y = k.Y, k.X
	return out
}

// rotate90Square performs a layered shell rotation of a square kernel: the
// cell at (col,row) moves to (n-1-row,col), i.e. a clockwise quarter turn.
func rotate90Square(k *Kernel) *Kernel {
	n := k.Width
	out := k.Clone()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			v := k.At(col, row)
			out.Set(n-1-row, col, v)
		}
	}
	ox, oy := k.X, k.Y
	out.X, out.Y = n-1-oy, ox
	out.RecomputeStatistics()
	return out
}

// rotate45 cyclically permutes the 8 border cells of a 3x3 kernel by one
// position clockwise, leaving the centre untouched.
func rotate45(k *Kernel) *Kernel {
	// Border cells in clockwise order starting at top-left.
	order := [8][2]int{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1}}
	out := k.Clone()
	vals := make([]float64, 8)
	for i, p := range order {
		vals[i] = k.At(p[0], p[1])
	}
	for i, p := range order {
		src := (i + 7) % 8
		out.Set(p[0], p[1], vals[src])
	}
	out.RecomputeStatistics()
	return out
}

// ExpandIntoList produces a list whose first element is k and each
// subsequent element is the previous element rotated by theta degrees.
// Expansion stops (and the cycle is closed, not included twice) when the
// candidate rotation equals an earlier member of the list within epsilon,
// NaN-aware. A nil k returns nil.
func ExpandIntoList(k *Kernel, theta float64) *Kernel {
	if k == nil {
		return nil
	}

	const eps = 1e-9
	const maxMembers = 16 // 360/22.5, generous upper bound; guards runaway cycles

	head := k.Clone()
	seen := []*Kernel{head}
	cur := head

	for i := 1; i < maxMembers; i++ {
		rotated, err := rotateOne(cur, theta)
		if err != nil {
			break
		}
		cycled := false
		for _, s := range seen {
			if EqualCells(rotated, s, eps) {
				cycled = true
				break
			}
		}
		if cycled {
			break
		}
		cur.Next = rotated
		cur = rotated
		seen = append(seen, rotated)
	}

	return head
}

// ScaleFlags selects the normalisation mode ScaleAndNormalise applies.
type ScaleFlags int

const (
	ScaleNone ScaleFlags = iota
	ScaleNormalise
	ScaleCorrelateNormalise
)

const normaliseEpsilon = 1e-12

// ScaleAndNormalise scales every finite cell of k (and its whole list) by s,
// after first applying the requested normalisation. Masked cells are left
// untouched. Statistics are recomputed from the scaled cells, so for a
// negative s the positive and negative ranges (and min/max) come out
// swapped and negated relative to the input.
func ScaleAndNormalise(k *Kernel, s float64, flags ScaleFlags) *Kernel {
	if k == nil {
		return nil
	}
	out := k.Clone()
	out.Next = ScaleAndNormalise(k.Next, s, flags)

	posScale, negScale := 1.0, 1.0

	switch flags {
	case ScaleNormalise:
		signedSum := out.PositiveRange + out.NegativeRange
		if math.Abs(signedSum) > normaliseEpsilon {
			posScale = 1 / math.Abs(signedSum)
			negScale = posScale
		} else if out.PositiveRange > normaliseEpsilon {
			posScale = 1 / out.PositiveRange
			negScale = posScale
		}
	case ScaleCorrelateNormalise:
		posScale = 1 / math.Max(out.PositiveRange, normaliseEpsilon)
		negScale = 1 / math.Max(-out.NegativeRange, normaliseEpsilon)
	}

	posScale *= s
	negScale *= s

	for i, v := range out.Values {
		if Masked(v) {
			continue
		}
		if v >= 0 {
			out.Values[i] = v * posScale
		} else {
			out.Values[i] = v * negScale
		}
	}

	out.RecomputeStatistics()
	return out
}

// UnityAdd adds alpha to the origin cell of every kernel in the list, then
// recomputes statistics.
func UnityAdd(k *Kernel, alpha float64) *Kernel {
	if k == nil {
		return nil
	}
	out := k.Clone()
	out.Next = UnityAdd(k.Next, alpha)

	origin := out.Y*out.Width + out.X
	if !Masked(out.Values[origin]) {
		out.Values[origin] += alpha
	} else {
		out.Values[origin] = alpha
	}
	out.RecomputeStatistics()
	return out
}

// ZeroMask replaces every masked cell of the list with 0, for back-ends that
// cannot honour masks.
func ZeroMask(k *Kernel) *Kernel {
	if k == nil {
		return nil
	}
	out := k.Clone()
	out.Next = ZeroMask(k.Next)
	for i, v := range out.Values {
		if Masked(v) {
			out.Values[i] = 0
		}
	}
	out.RecomputeStatistics()
	return out
}

// correlateNormalise applies the correlate-normalise composition used
// internally by the convolution-family generators (§4.2): if the signed sum
// is above epsilon, divide by its absolute value; otherwise divide by the
// positive sum; if the kernel has negative cells, positive and negative
// halves are scaled independently so the result sums to zero.
func correlateNormalise(k *Kernel) {
	signedSum := k.PositiveRange + k.NegativeRange
	if k.NegativeRange < 0 {
		// Has negative cells: force zero-sum by scaling halves independently.
		posScale := 1 / math.Max(k.PositiveRange, normaliseEpsilon)
		negScale := 1 / math.Max(-k.NegativeRange, normaliseEpsilon)
		for i, v := range k.Values {
			if Masked(v) {
				continue
			}
			if v >= 0 {
				k.Values[i] = v * posScale
			} else {
				k.Values[i] = v * negScale
			}
		}
	} else if math.Abs(signedSum) > normaliseEpsilon {
		scale := 1 / math.Abs(signedSum)
		for i, v := range k.Values {
			if Masked(v) {
				continue
			}
			k.Values[i] = v * scale
		}
	} else if k.PositiveRange > normaliseEpsilon {
		scale := 1 / k.PositiveRange
		for i, v := range k.Values {
			if Masked(v) {
				continue
			}
			k.Values[i] = v * scale
		}
	}
	k.RecomputeStatistics()
}
