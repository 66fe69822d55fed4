package morphology

import (
	"math"

	"github.com/example/go-morphology/internal/image"
	"github.com/example/go-morphology/internal/kernel"
)

// neighbour returns the window pixel aligned with kernel cell (col,row)
// when the kernel's chosen origin is (originX,originY) and the output
// pixel is (x,y).
func neighbour(win image.Window, x, y, originX, originY, col, row int) image.Pixel {
	return win.At(x+col-originX, y+row-originY)
}

// convolveCell implements the Convolve reduction, including the
// alpha-weighted "sync" colour mixing.
func convolveCell(k *kernel.Kernel, win image.Window, x, y, originX, originY int, in image.Pixel, mask image.Mask, bias float64) image.Pixel {
	out := in

	sync := mask.Has(image.MaskSync) && in.HasAlpha

	var rSum, gSum, bSum, alphaWeightSum float64
	var aSum, auxSum float64

	for row := 0; row < k.Height; row++ {
		for col := 0; col < k.Width; col++ {
			kv := k.At(col, row)
			if kernel.Masked(kv) {
				continue
			}
			p := neighbour(win, x, y, originX, originY, col, row)

			if sync {
				alpha := kv * p.A
				rSum += alpha * p.R
				gSum += alpha * p.G
				bSum += alpha * p.B
				alphaWeightSum += alpha
				aSum += kv * p.A
			} else {
				rSum += kv * p.R
				gSum += kv * p.G
				bSum += kv * p.B
				aSum += kv * p.A
			}
			auxSum += kv * p.Aux
		}
	}

	if sync && math.Abs(alphaWeightSum) > 1e-12 {
		rSum /= alphaWeightSum
		gSum /= alphaWeightSum
		bSum /= alphaWeightSum
	}

	if mask.Has(image.MaskRed) {
		out.R = bias + rSum
	}
	if mask.Has(image.MaskGreen) {
		out.G = bias + gSum
	}
	if mask.Has(image.MaskBlue) {
		out.B = bias + bSum
	}
	if mask.Has(image.MaskOpacity) {
		out.A = bias + aSum
	}
	if mask.Has(image.MaskAuxiliary) {
		out.Aux = bias + auxSum
	}
	return out
}

// erodeCell implements the Erode reduction: the cellwise minimum
// over cells where k >= 0.5 and k is not masked.
func erodeCell(k *kernel.Kernel, win image.Window, x, y, originX, originY int, in image.Pixel, mask image.Mask) image.Pixel {
	return minMaxCell(k, win, x, y, originX, originY, in, mask, false)
}

// dilateCell implements the Dilate reduction: the cellwise
// maximum, over the reflected walk (the caller selects originX/originY
// accordingly).
func dilateCell(k *kernel.Kernel, win image.Window, x, y, originX, originY int, in image.Pixel, mask image.Mask) image.Pixel {
	return minMaxCell(k, win, x, y, originX, originY, in, mask, true)
}

func minMaxCell(k *kernel.Kernel, win image.Window, x, y, originX, originY int, in image.Pixel, mask image.Mask, useMax bool) image.Pixel {
	out := in
	first := true
	var rAcc, gAcc, bAcc, aAcc, auxAcc float64

	for row := 0; row < k.Height; row++ {
		for col := 0; col < k.Width; col++ {
			kv := k.At(col, row)
			if kernel.Masked(kv) || kv < 0.5 {
				continue
			}
			p := neighbour(win, x, y, originX, originY, col, row)
			if first {
				rAcc, gAcc, bAcc, aAcc, auxAcc = p.R, p.G, p.B, p.A, p.Aux
				first = false
				continue
			}
			rAcc = pick(rAcc, p.R, useMax)
			gAcc = pick(gAcc, p.G, useMax)
			bAcc = pick(bAcc, p.B, useMax)
			aAcc = pick(aAcc, p.A, useMax)
			auxAcc = pick(auxAcc, p.Aux, useMax)
		}
	}
	if first {
		return in
	}
	if mask.Has(image.MaskRed) {
		out.R = rAcc
	}
	if mask.Has(image.MaskGreen) {
		out.G = gAcc
	}
	if mask.Has(image.MaskBlue) {
		out.B = bAcc
	}
	if mask.Has(image.MaskOpacity) {
		out.A = aAcc
	}
	if mask.Has(image.MaskAuxiliary) {
		out.Aux = auxAcc
	}
	return out
}

func pick(a, b float64, useMax bool) float64 {
	if useMax {
		if b > a {
			return b
		}
		return a
	}
	if b < a {
		return b
	}
	return a
}

// hitMissCell implements HitAndMiss/Thin/Thicken. Cells with
// k>0.7 are foreground, k<0.3 background, the rest "don't care". fmin/bmax
// are taken per channel; the reported value is max(fmin-bmax,0).
// asThin subtracts that from the input; asThicken takes max(input, fmin-bmax);
// otherwise (HitAndMiss) the value is reported directly.
func hitMissCell(k *kernel.Kernel, win image.Window, x, y, originX, originY int, in image.Pixel, mask image.Mask, asThin, asThicken bool) image.Pixel {
	out := in

	chans := []image.Channel{image.Red, image.Green, image.Blue, image.Opacity, image.Auxiliary}
	masks := []image.Mask{image.MaskRed, image.MaskGreen, image.MaskBlue, image.MaskOpacity, image.MaskAuxiliary}

	for i, ch := range chans {
		if !mask.Has(masks[i]) {
			continue
		}
		fmin, hasFg := math.Inf(1), false
		bmax, hasBg := math.Inf(-1), false

		for row := 0; row < k.Height; row++ {
			for col := 0; col < k.Width; col++ {
				kv := k.At(col, row)
				if kernel.Masked(kv) {
					continue
				}
				v := neighbour(win, x, y, originX, originY, col, row).Component(ch)
				switch {
				case kv > 0.7:
					if v < fmin {
						fmin = v
					}
					hasFg = true
				case kv < 0.3:
					if v > bmax {
						bmax = v
					}
					hasBg = true
				}
			}
		}

		var hit float64
		if hasFg && hasBg {
			hit = fmin - bmax
		}
		if hit < 0 {
			hit = 0
		}

		cur := in.Component(ch)
		var v float64
		switch {
		case asThin:
			v = cur - hit
		case asThicken:
			v = math.Max(cur, hit)
		default:
			v = hit
		}
		out = out.WithComponent(ch, v)
	}

	return out
}

// intensityCell implements ErodeIntensity/DilateIntensity:
// select the whole neighbourhood pixel with least (resp. greatest)
// Intensity() among cells with k>=0.5, and copy it unconditionally.
func intensityCell(k *kernel.Kernel, win image.Window, x, y, originX, originY int, in image.Pixel, useMax bool) image.Pixel {
	best := in
	haveBest := false
	var bestIntensity float64

	for row := 0; row < k.Height; row++ {
		for col := 0; col < k.Width; col++ {
			kv := k.At(col, row)
			if kernel.Masked(kv) || kv < 0.5 {
				continue
			}
			p := neighbour(win, x, y, originX, originY, col, row)
			pIntensity := image.Intensity(p)
			if !haveBest {
				best, bestIntensity, haveBest = p, pIntensity, true
				continue
			}
			if (useMax && pIntensity > bestIntensity) || (!useMax && pIntensity < bestIntensity) {
				best, bestIntensity = p, pIntensity
			}
		}
	}
	return best
}

// distanceCell implements Distance: the minimum over cells
// of k + component(u,v).
func distanceCell(k *kernel.Kernel, win image.Window, x, y, originX, originY int, in image.Pixel, mask image.Mask) image.Pixel {
	out := in
	chans := []image.Channel{image.Red, image.Green, image.Blue, image.Opacity, image.Auxiliary}
	masks := []image.Mask{image.MaskRed, image.MaskGreen, image.MaskBlue, image.MaskOpacity, image.MaskAuxiliary}

	for i, ch := range chans {
		if !mask.Has(masks[i]) {
			continue
		}
		best := math.Inf(1)
		found := false
		for row := 0; row < k.Height; row++ {
			for col := 0; col < k.Width; col++ {
				kv := k.At(col, row)
				if kernel.Masked(kv) {
					continue
				}
				v := kv + neighbour(win, x, y, originX, originY, col, row).Component(ch)
				if v < best {
					best = v
				}
				found = true
			}
		}
		if found {
			out = out.WithComponent(ch, best)
		}
	}
	return out
}
