package kernel

// Hit-and-miss pattern kernels: fixed 3x3 templates expanded through the
// 90-degree (or, where noted, 45-degree) rotation set. Foreground cells are
// 1, background cells 0, "don't care" cells masked, matching the
// foreground/background partition the aggregator applies at thresholds 0.7
// / 0.3.
const (
	fg = 1.0
	bg = 0.0
)

var dc = MaskedCell

func patternKernel(t Type, vals [9]float64) *Kernel {
	k := New(3, 3)
	copy(k.Values, vals[:])
	k.Type = t
	k.RecomputeStatistics()
	return k
}

// genEdges expands a single-pixel-wide edge template through 90-degree
// rotation.
func genEdges(theta float64) *Kernel {
	k := patternKernel(TypeEdges, [9]float64{
		dc, bg, dc,
		fg, fg, fg,
		dc, dc, dc,
	})
	return ExpandIntoList(k, 90)
}

// genCorners expands a convex-corner template through 90-degree rotation.
func genCorners(theta float64) *Kernel {
	k := patternKernel(TypeCorners, [9]float64{
		bg, bg, dc,
		bg, fg, fg,
		dc, fg, dc,
	})
	return ExpandIntoList(k, 90)
}

// genRidges expands a one-pixel-wide ridge template through 90-degree
// rotation.
func genRidges(theta float64) *Kernel {
	k := patternKernel(TypeRidges, [9]float64{
		bg, fg, bg,
		bg, fg, bg,
		bg, fg, bg,
	})
	return ExpandIntoList(k, 90)
}

// genLineEnds is the concatenation of two 90-degree rotation lists: one for
// an end-of-line on a straight segment, one for an end-of-line on a
// diagonal segment.
func genLineEnds(theta float64) *Kernel {
	straight := patternKernel(TypeLineEnds, [9]float64{
		bg, bg, bg,
		bg, fg, bg,
		bg, fg, bg,
	})
	diagonal := patternKernel(TypeLineEnds, [9]float64{
		bg, bg, bg,
		bg, fg, bg,
		bg, bg, fg,
	})
	return Append(ExpandIntoList(straight, 90), ExpandIntoList(diagonal, 90))
}

// genLineJunctions is the concatenation of two 90-degree rotation lists: a
// T-junction and a Y-junction template.
func genLineJunctions(theta float64) *Kernel {
	tJunction := patternKernel(TypeLineJunctions, [9]float64{
		fg, dc, fg,
		dc, fg, dc,
		dc, fg, dc,
	})
	yJunction := patternKernel(TypeLineJunctions, [9]float64{
		fg, dc, fg,
		dc, fg, dc,
		fg, dc, dc,
	})
	return Append(ExpandIntoList(tJunction, 90), ExpandIntoList(yJunction, 90))
}

// genConvexHull is the concatenation of two 90-degree rotation lists
// locating concave corners to fill in when computing a convex hull.
func genConvexHull(theta float64) *Kernel {
	a := patternKernel(TypeConvexHull, [9]float64{
		bg, fg, dc,
		fg, bg, fg,
		dc, fg, dc,
	})
	b := patternKernel(TypeConvexHull, [9]float64{
		fg, bg, dc,
		bg, bg, fg,
		dc, fg, dc,
	})
	return Append(ExpandIntoList(a, 90), ExpandIntoList(b, 90))
}

// genSkeleton expands the classic thinning template (a single foreground
// pixel with a background neighbour flanked by two foreground neighbours)
// through 90-degree rotation. Used as the default kernel for Thin/Thicken.
func genSkeleton(theta float64) *Kernel {
	k := patternKernel(TypeSkeleton, [9]float64{
		bg, bg, bg,
		dc, fg, dc,
		fg, fg, fg,
	})
	return ExpandIntoList(k, 90)
}
