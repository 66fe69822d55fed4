// Package kernel implements the numeric kernel value domain, the textual
// kernel grammar, the named-family generators, and the algebraic transforms
// applied to kernels before they reach the morphology engine.
//
// A Kernel is a small, dense, row-major grid of real cells. A cell may be
// "masked" — excluded from any reduction a primitive performs over the
// kernel — which is represented as a NaN sentinel, exploiting IEEE 754's
// self-inequality (NaN != NaN) as the mask test. Masked() below is the one
// place that test lives; callers should never compare a cell to
// math.NaN() directly.
package kernel

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Type identifies which generator or parser path produced a Kernel.
// It is informational only — it does not change how a Kernel is consumed.
type Type int

const (
	TypeUnknown Type = iota
	TypeUserDefined
	TypeUnity
	TypeGaussian
	TypeDoG
	TypeLoG
	TypeBlur
	TypeDoB
	TypeComet
	TypeLaplacian
	TypeSobel
	TypeRoberts
	TypePrewitt
	TypeCompass
	TypeKirsch
	TypeFreiChen
	TypeDiamond
	TypeSquare
	TypeRectangle
	TypeDisk
	TypePlus
	TypeCross
	TypeRing
	TypePeak
	TypeEdges
	TypeCorners
	TypeRidges
	TypeLineEnds
	TypeLineJunctions
	TypeConvexHull
	TypeSkeleton
	TypeChebyshev
	TypeManhattan
	TypeEuclidean
)

var typeNames = map[Type]string{
	TypeUnknown:       "Unknown",
	TypeUserDefined:   "UserDefined",
	TypeUnity:         "Unity",
	TypeGaussian:      "Gaussian",
	TypeDoG:           "DoG",
	TypeLoG:           "LoG",
	TypeBlur:          "Blur",
	TypeDoB:           "DoB",
	TypeComet:         "Comet",
	TypeLaplacian:     "Laplacian",
	TypeSobel:         "Sobel",
	TypeRoberts:       "Roberts",
	TypePrewitt:       "Prewitt",
	TypeCompass:       "Compass",
	TypeKirsch:        "Kirsch",
	TypeFreiChen:      "FreiChen",
	TypeDiamond:       "Diamond",
	TypeSquare:        "Square",
	TypeRectangle:     "Rectangle",
	TypeDisk:          "Disk",
	TypePlus:          "Plus",
	TypeCross:         "Cross",
	TypeRing:          "Ring",
	TypePeak:          "Peak",
	TypeEdges:         "Edges",
	TypeCorners:       "Corners",
	TypeRidges:        "Ridges",
	TypeLineEnds:      "LineEnds",
	TypeLineJunctions: "LineJunctions",
	TypeConvexHull:    "ConvexHull",
	TypeSkeleton:      "Skeleton",
	TypeChebyshev:     "Chebyshev",
	TypeManhattan:     "Manhattan",
	TypeEuclidean:     "Euclidean",
}

// String returns the canonical name used by the kernel-string grammar.
func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// Masked reports whether v is the masked-cell sentinel. The check relies on
// IEEE 754 self-inequality and must be used instead of any direct NaN
// comparison so the invariant stays in one place.
func Masked(v float64) bool {
	return v != v
}

// MaskedCell is the sentinel value stored in Kernel.Values for excluded
// cells.
var MaskedCell = math.NaN()

// Kernel is one entry of a (possibly chained) kernel list.
type Kernel struct {
	Width, Height int
	X, Y          int // origin: the cell aligned with the output pixel
	Values        []float64

	Minimum, Maximum             float64
	PositiveRange, NegativeRange float64
	Angle                        float64
	Type                         Type
	Next                         *Kernel
}

// New allocates a kernel of the given geometry with all cells zeroed, origin
// defaulted to the geometric centre, and recomputes statistics. Width and
// height are clamped to at least 1.
func New(width, height int) *Kernel {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	k := &Kernel{
		Width:  width,
		Height: height,
		X:      (width - 1) / 2,
		Y:      (height - 1) / 2,
		Values: make([]float64, width*height),
	}
	k.RecomputeStatistics()
	return k
}

// At returns the cell at grid position (col, row).
func (k *Kernel) At(col, row int) float64 {
	return k.Values[row*k.Width+col]
}

// Set writes the cell at grid position (col, row).
func (k *Kernel) Set(col, row int, v float64) {
	k.Values[row*k.Width+col] = v
}

// RecomputeStatistics recomputes Minimum, Maximum, PositiveRange and
// NegativeRange from Values, skipping masked cells. It is called after every
// construction or mutation that changes cell contents.
func (k *Kernel) RecomputeStatistics() {
	finite := make([]float64, 0, len(k.Values))
	var pos, neg float64
	for _, v := range k.Values {
		if Masked(v) {
			continue
		}
		finite = append(finite, v)
		if v >= 0 {
			pos += v
		} else {
			neg += v
		}
	}
	if len(finite) == 0 {
		// No finite cell: leave a degenerate, internally consistent state.
		// Callers that require at least one finite cell (the parser, the
		// generators) check for this before returning the kernel.
		k.Minimum, k.Maximum = 0, 0
	} else {
		// floats.Min/Max can't be run over k.Values directly: NaN-masked
		// cells compare false against everything, so a masked cell sitting
		// first in the slice would poison the result. Filtering to the
		// finite cells first keeps the aggregate sound.
		k.Minimum, k.Maximum = floats.Min(finite), floats.Max(finite)
	}
	k.PositiveRange, k.NegativeRange = pos, neg
}

// HasFiniteCell reports whether at least one cell is not masked, the
// invariant every constructed kernel must satisfy.
func (k *Kernel) HasFiniteCell() bool {
	for _, v := range k.Values {
		if !Masked(v) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of k, not following Next.
func (k *Kernel) Clone() *Kernel {
	c := *k
	c.Values = append([]float64(nil), k.Values...)
	c.Next = nil
	return &c
}

// CloneList returns a deep copy of the whole chain starting at k.
func CloneList(k *Kernel) *Kernel {
	if k == nil {
		return nil
	}
	head := k.Clone()
	head.Next = CloneList(k.Next)
	return head
}

// Length returns the number of kernels in the chain starting at k.
func Length(k *Kernel) int {
	n := 0
	for ; k != nil; k = k.Next {
		n++
	}
	return n
}

// Append returns the chain formed by attaching tail after the last element
// of head (following head's own chain to its end). A nil head returns tail.
func Append(head, tail *Kernel) *Kernel {
	if head == nil {
		return tail
	}
	cur := head
	for cur.Next != nil {
		cur = cur.Next
	}
	cur.Next = tail
	return head
}

// EqualCells reports whether a and b have identical geometry and cell
// values within eps, with masked cells compared mask-for-mask (NaN-aware:
// two masked cells at the same position are considered equal).
func EqualCells(a, b *Kernel, eps float64) bool {
	if a.Width != b.Width || a.Height != b.Height {
		return false
	}
	for i := range a.Values {
		av, bv := a.Values[i], b.Values[i]
		am, bm := Masked(av), Masked(bv)
		if am != bm {
			return false
		}
		if am {
			continue
		}
		if math.Abs(av-bv) > eps {
			return false
		}
	}
	return true
}
