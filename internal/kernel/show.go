package kernel

import (
	"fmt"
	"math"
	"strings"
)

// Dump renders the human-readable diagnostic for a kernel: a header, a
// range classification line, and a rectangular value table printed at the
// given decimal precision, with masked cells spelled "nan".
func Dump(k *Kernel, precision int) string {
	var b strings.Builder

	name := k.Type.String()
	if k.Angle != 0 {
		fmt.Fprintf(&b, "Kernel %q@%g of size %dx%d%+d%+d with values from %s to %s\n",
			name, k.Angle, k.Width, k.Height, k.X, k.Y, formatCell(k.Minimum, precision), formatCell(k.Maximum, precision))
	} else {
		fmt.Fprintf(&b, "Kernel %q of size %dx%d%+d%+d with values from %s to %s\n",
			name, k.Width, k.Height, k.X, k.Y, formatCell(k.Minimum, precision), formatCell(k.Maximum, precision))
	}

	b.WriteString(rangeLine(k))
	b.WriteByte('\n')

	for row := 0; row < k.Height; row++ {
		for col := 0; col < k.Width; col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(formatCell(k.At(col, row), precision))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// rangeLine classifies the kernel as zero-summing, normalised (sums to 1),
// or reports its raw sum.
func rangeLine(k *Kernel) string {
	const eps = 1e-7
	sum := k.PositiveRange + k.NegativeRange
	switch {
	case math.Abs(sum) < eps:
		return "Kernel is zero-summing"
	case math.Abs(sum-1) < eps:
		return "Kernel is normalised"
	default:
		return fmt.Sprintf("Kernel sum=%g", sum)
	}
}

func formatCell(v float64, precision int) string {
	if Masked(v) {
		return "nan"
	}
	return fmt.Sprintf("%.*f", precision, v)
}

// DumpList renders Dump for every kernel in the chain starting at k.
func DumpList(k *Kernel, precision int) string {
	var b strings.Builder
	for cur := k; cur != nil; cur = cur.Next {
		b.WriteString(Dump(cur, precision))
		if cur.Next != nil {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
