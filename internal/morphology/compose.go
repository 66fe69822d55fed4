package morphology

import "github.com/example/go-morphology/internal/image"

// ComposeKind selects the per-channel binary fold applied between the
// per-kernel outputs of a multi-kernel list.
type ComposeKind int

const (
	// ComposeNone means "no-op": each kernel's output feeds the next
	// kernel's input instead of being folded.
	ComposeNone ComposeKind = iota
	// ComposeUnion is the "lighten" fold: the per-channel maximum. This is
	// HitAndMiss's default compose.
	ComposeUnion
	// ComposeIntersect is the "darken" fold: the per-channel minimum.
	ComposeIntersect
)

// ComposeFunc is a host-supplied (or built-in) per-channel composite
// operator, given the pure numeric pair with the "sync" channel-mask bit
// cleared before the fold runs.
type ComposeFunc func(a, b image.Pixel) image.Pixel

func composeFor(kind ComposeKind) ComposeFunc {
	switch kind {
	case ComposeUnion:
		return func(a, b image.Pixel) image.Pixel {
			return image.Pixel{
				R:   maxf(a.R, b.R),
				G:   maxf(a.G, b.G),
				B:   maxf(a.B, b.B),
				A:   maxf(a.A, b.A),
				Aux: maxf(a.Aux, b.Aux),
			}
		}
	case ComposeIntersect:
		return func(a, b image.Pixel) image.Pixel {
			return image.Pixel{
				R:   minf(a.R, b.R),
				G:   minf(a.G, b.G),
				B:   minf(a.B, b.B),
				A:   minf(a.A, b.A),
				Aux: minf(a.Aux, b.Aux),
			}
		}
	default:
		return nil
	}
}

func maxf(a, b float64) float64 {
	if b > a {
		return b
	}
	return a
}

func minf(a, b float64) float64 {
	if b < a {
		return b
	}
	return a
}

// diffAbs computes the per-channel absolute difference between a and b,
// used by the differencing stages (EdgeIn/EdgeOut/TopHat/BottomHat/Edge).
func diffAbs(a, b image.Pixel) image.Pixel {
	return image.Pixel{
		R:   absf(a.R - b.R),
		G:   absf(a.G - b.G),
		B:   absf(a.B - b.B),
		A:   absf(a.A - b.A),
		Aux: absf(a.Aux - b.Aux),
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
