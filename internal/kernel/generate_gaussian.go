package kernel

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// gaussian1D samples the centred 1-D Gaussian density of standard deviation
// sigma at offset x. The result carries distuv's 1/(sigma*sqrt(2*pi)) scale
// factor. Gaussian, LoG, Blur and Comet divide it out via correlateNormalise;
// DoG and DoB subtract two densities of different sigma, so each keeps its
// own factor in the difference before normalisation. Grounded on the sampled-Gaussian approach in rimage's
// gaussianFunction1D / gaussianKernel (viamrobotics-rdk, via the retrieval
// pack) and go-img-proc's GaussianFilterKernel, with the density itself
// computed by gonum's stat/distuv rather than a hand-rolled exp formula.
func gaussian1D(x, sigma float64) float64 {
	return distuv.Normal{Mu: 0, Sigma: sigma}.Prob(x)
}

// radiusFor returns the generator radius: rho if >= 1, else derived from
// sigma (3 standard deviations, the common "effective support" choice).
func radiusFor(rho, sigma float64) int {
	if rho >= 1 {
		return int(rho + 0.5)
	}
	r := int(3*sigma + 0.5)
	if r < 1 {
		r = 1
	}
	return r
}

// sampleGaussianSquare builds a (2r+1)x(2r+1) kernel of samples of the 2-D
// Gaussian with standard deviation sigma, unnormalised.
func sampleGaussianSquare(r int, sigma float64) *Kernel {
	side := 2*r + 1
	k := New(side, side)
	for v := -r; v <= r; v++ {
		for u := -r; u <= r; u++ {
			g := gaussian1D(float64(u), sigma) * gaussian1D(float64(v), sigma)
			k.Set(u+r, v+r, g)
		}
	}
	return k
}

// genGaussian implements Gaussian(rho, sigma): a sampled Gaussian,
// correlate-normalised. sigma defaults to 1 when omitted. Minimum and
// maximum are taken over the cells only: an all-equal kernel reports
// minimum = maximum = its cell value, and 0 is not added to that range.
func genGaussian(g geometryArgs) (*Kernel, error) {
	rho := g.at(0, 0)
	sigma := g.at(1, 1)
	if sigma <= 0 {
		sigma = 1
	}
	r := radiusFor(rho, sigma)
	k := sampleGaussianSquare(r, sigma)
	k.Type = TypeGaussian
	k.RecomputeStatistics()
	correlateNormalise(k)
	return k, nil
}

// genDoG implements DoG(rho, sigma1, sigma2) = G(sigma1) - G(sigma2),
// correlate-normalised.
func genDoG(g geometryArgs) (*Kernel, error) {
	rho := g.at(0, 0)
	sigma1 := g.at(1, 1)
	sigma2 := g.at(2, 0)
	if sigma1 <= 0 {
		sigma1 = 1
	}
	r := radiusFor(rho, math.Max(sigma1, sigma2))
	a := sampleGaussianSquare(r, sigma1)
	b := sampleGaussianSquare(r, sigma2)
	k := New(a.Width, a.Height)
	k.Type = TypeDoG
	for i := range k.Values {
		k.Values[i] = a.Values[i] - b.Values[i]
	}
	k.RecomputeStatistics()
	correlateNormalise(k)
	return k, nil
}

// genLoG implements the Laplacian-of-Gaussian: the discrete Laplacian of a
// sampled Gaussian, correlate-normalised.
func genLoG(g geometryArgs) (*Kernel, error) {
	rho := g.at(0, 0)
	sigma := g.at(1, 1)
	if sigma <= 0 {
		sigma = 1
	}
	r := radiusFor(rho, sigma)
	if r < 2 {
		r = 2
	}
	gauss := sampleGaussianSquare(r, sigma)
	k := New(gauss.Width, gauss.Height)
	k.Type = TypeLoG
	w, h := gauss.Width, gauss.Height
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			centre := gauss.At(col, row)
			sum := 0.0
			n := 0
			for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				nc, nr := col+d[0], row+d[1]
				if nc < 0 || nc >= w || nr < 0 || nr >= h {
					continue
				}
				sum += gauss.At(nc, nr)
				n++
			}
			k.Set(col, row, sum-float64(n)*centre)
		}
	}
	k.RecomputeStatistics()
	correlateNormalise(k)
	return k, nil
}

// genBlur implements Blur(rho, sigma, theta): a 1x(2r+1) Gaussian computed
// by oversampling at rank 3 into the output bins (improving normalisation
// for small sigma), then rotated by theta.
func genBlur(g geometryArgs) (*Kernel, error) {
	rho := g.at(0, 0)
	sigma := g.at(1, 1)
	theta := g.at(2, 0)
	if sigma <= 0 {
		sigma = 1
	}
	r := radiusFor(rho, sigma)

	k := oversampledBlur1D(r, sigma)
	k.Type = TypeBlur
	k.RecomputeStatistics()
	correlateNormalise(k)

	rotated, err := Rotate(k, theta)
	if err != nil {
		return nil, err
	}
	return rotated, nil
}

// oversampledBlur1D builds a 1x(2r+1) row kernel, each bin the average of 3
// Gaussian samples taken at offsets -1/3, 0, +1/3 within the bin.
func oversampledBlur1D(r int, sigma float64) *Kernel {
	side := 2*r + 1
	k := New(side, 1)
	for u := -r; u <= r; u++ {
		sum := 0.0
		for _, off := range []float64{-1.0 / 3, 0, 1.0 / 3} {
			sum += gaussian1D(float64(u)+off, sigma)
		}
		k.Set(u+r, 0, sum/3)
	}
	return k
}

// genDoB implements DoB(rho, sigma1, sigma2, theta) = Blur(sigma1) -
// Blur(sigma2), rotated by theta.
func genDoB(g geometryArgs) (*Kernel, error) {
	rho := g.at(0, 0)
	sigma1 := g.at(1, 1)
	sigma2 := g.at(2, 0)
	theta := g.at(3, 0)
	if sigma1 <= 0 {
		sigma1 = 1
	}
	r := radiusFor(rho, math.Max(sigma1, sigma2))
	a := oversampledBlur1D(r, sigma1)
	b := oversampledBlur1D(r, sigma2)
	k := New(a.Width, 1)
	k.Type = TypeDoB
	for i := range k.Values {
		k.Values[i] = a.Values[i] - b.Values[i]
	}
	k.RecomputeStatistics()
	correlateNormalise(k)
	return Rotate(k, theta)
}

// genComet implements Comet(w, sigma, theta): a half-Gaussian of width w,
// normalised, rotated by theta.
func genComet(g geometryArgs) (*Kernel, error) {
	w := intArg(g.at(0, 5), 5)
	sigma := g.at(1, 1)
	theta := g.at(2, 0)
	if sigma <= 0 {
		sigma = 1
	}
	if w < 1 {
		w = 1
	}

	k := New(w, 1)
	k.Type = TypeComet
	for u := 0; u < w; u++ {
		k.Set(u, 0, gaussian1D(float64(u), sigma))
	}
	k.RecomputeStatistics()
	correlateNormalise(k)
	return Rotate(k, theta)
}
