// Package morphology implements the pixel aggregator (C5) and method
// orchestrator (C6) of the morphology engine: the per-pixel primitive
// reductions and the compound-method driver that sequences them against a
// kernel list.
//
// The row-parallel sweep in Apply follows the same pattern as the
// package's other fixed worker pools: disjoint output rows are handed to a
// fixed worker pool, a shared atomic counter accumulates the changed-pixel
// count, and a shared status flag lets any worker abort the remaining rows
// on failure.
package morphology

import (
	"sync"
	"sync/atomic"

	"github.com/example/go-morphology/internal/image"
	"github.com/example/go-morphology/internal/kernel"
)

// Primitive is the closed set of atomic per-pixel reductions a method can
// sequence against a kernel.
type Primitive int

const (
	Convolve Primitive = iota
	Erode
	Dilate
	HitMiss
	Thin
	Thicken
	ErodeIntensity
	DilateIntensity
	Distance
)

// reflectedWalk reports whether a primitive walks its kernel in reflected
// order (from the last cell toward the first).
func reflectedWalk(p Primitive) bool {
	switch p {
	case Convolve, Dilate, DilateIntensity, Distance:
		return true
	default:
		return false
	}
}

// sweepWorkers bounds the goroutine count used by Apply. 0 or 1 means
// sequential execution.
var sweepWorkers atomic.Int32

// SetWorkers sets the maximum number of goroutines Apply uses to process
// output rows in parallel. n <= 1 disables parallelism.
func SetWorkers(n int) {
	if n < 0 {
		n = 0
	}
	sweepWorkers.Store(int32(n))
}

func getWorkers() int { return int(sweepWorkers.Load()) }

// parallelRows splits [0,rows) into chunks and runs fn(lo,hi) concurrently
// across at most workers goroutines. workers <= 1 runs fn sequentially.
func parallelRows(rows, workers int, fn func(lo, hi int)) {
	if workers <= 1 || rows <= 1 {
		fn(0, rows)
		return
	}
	if workers > rows {
		workers = rows
	}

	var wg sync.WaitGroup
	chunk := (rows + workers - 1) / workers
	for lo := 0; lo < rows; lo += chunk {
		hi := lo + chunk
		if hi > rows {
			hi = rows
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// Apply runs one primitive, against one kernel (not a list — callers walk a
// kernel list themselves), over src, writing into dst, under the given
// channel mask and convolution bias. It returns the number of pixels whose
// output differs from the co-located input pixel.
//
// src and dst must have identical geometry and must not alias: the engine
// never writes into its own input.
func Apply(src image.Plane, dst image.Sink, p Primitive, k *kernel.Kernel, mask image.Mask, bias float64) (changed int, err error) {
	if k == nil {
		return 0, ErrNilKernel
	}

	w, h := src.Width(), src.Height()
	win := image.NewWindow(src)

	originX, originY := k.X, k.Y
	if reflectedWalk(p) {
		originX = k.Width - 1 - k.X
		originY = k.Height - 1 - k.Y
	}

	var status atomic.Bool // true means "failed"
	var total atomic.Int64

	parallelRows(h, getWorkers(), func(lo, hi int) {
		for y := lo; y < hi; y++ {
			if status.Load() {
				return
			}
			rowChanged := 0
			for x := 0; x < w; x++ {
				in := win.At(x, y)
				out, didChange := reduceCell(p, k, win, x, y, originX, originY, in, mask, bias)
				if didChange {
					rowChanged++
				}
				dst.Set(x, y, out)
			}
			total.Add(int64(rowChanged))
		}
	})

	if status.Load() {
		return 0, ErrAggregatorAborted
	}

	return int(total.Load()), nil
}

// reduceCell computes the output pixel at (x,y) for primitive p and reports
// whether it differs from the input pixel.
func reduceCell(p Primitive, k *kernel.Kernel, win image.Window, x, y, originX, originY int, in image.Pixel, mask image.Mask, bias float64) (image.Pixel, bool) {
	var out image.Pixel

	switch p {
	case Convolve:
		out = convolveCell(k, win, x, y, originX, originY, in, mask, bias)
	case Erode:
		out = erodeCell(k, win, x, y, originX, originY, in, mask)
	case Dilate:
		out = dilateCell(k, win, x, y, originX, originY, in, mask)
	case HitMiss:
		out = hitMissCell(k, win, x, y, originX, originY, in, mask, false, false)
	case Thin:
		out = hitMissCell(k, win, x, y, originX, originY, in, mask, true, false)
	case Thicken:
		out = hitMissCell(k, win, x, y, originX, originY, in, mask, false, true)
	case ErodeIntensity:
		out = intensityCell(k, win, x, y, originX, originY, in, false)
	case DilateIntensity:
		out = intensityCell(k, win, x, y, originX, originY, in, true)
	case Distance:
		out = distanceCell(k, win, x, y, originX, originY, in, mask)
	default:
		out = in
	}

	out = out.Clamp()
	return out, out != in
}
