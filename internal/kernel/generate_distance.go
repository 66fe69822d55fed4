package kernel

import "math"

// distanceKernel builds a (2*rho+1)^2 kernel where each cell holds s times
// the chosen distance metric from the origin.
func distanceKernel(t Type, g geometryArgs, metric func(u, v int) float64) *Kernel {
	rho := intArg(g.at(0, 1), 1)
	s := g.at(1, 1)
	if !g.hasAt(1) {
		s = 1
	}
	side := 2*rho + 1
	k := New(side, side)
	k.Type = t
	for v := -rho; v <= rho; v++ {
		for u := -rho; u <= rho; u++ {
			k.Set(u+rho, v+rho, s*metric(u, v))
		}
	}
	k.RecomputeStatistics()
	return k
}

func genChebyshev(g geometryArgs) *Kernel {
	return distanceKernel(TypeChebyshev, g, func(u, v int) float64 {
		return float64(maxInt(abs(u), abs(v)))
	})
}

func genManhattan(g geometryArgs) *Kernel {
	return distanceKernel(TypeManhattan, g, func(u, v int) float64 {
		return float64(abs(u) + abs(v))
	})
}

func genEuclidean(g geometryArgs) *Kernel {
	return distanceKernel(TypeEuclidean, g, func(u, v int) float64 {
		return math.Sqrt(float64(u*u + v*v))
	})
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
