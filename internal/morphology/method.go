package morphology

import (
	"github.com/example/go-morphology/internal/image"
	"github.com/example/go-morphology/internal/kernel"
)

// Method is the user-visible operation, possibly compound, that a request
// names.
type Method int

const (
	MConvolve Method = iota
	MCorrelate
	MErode
	MDilate
	MErodeIntensity
	MDilateIntensity
	MOpen
	MClose
	MOpenIntensity
	MCloseIntensity
	MTopHat
	MBottomHat
	MEdgeIn
	MEdgeOut
	MEdge
	MSmooth
	MHitAndMiss
	MThin
	MThicken
	MDistance
)

// diffMode selects how a method's final stage output is turned into the
// per-kernel result.
type diffMode int

const (
	diffNone diffMode = iota
	diffVsOriginal
	diffVsEachOther // Edge: difference between the two stage outputs
)

// stageSpec is one primitive application within a method's stage loop.
type stageSpec struct {
	primitive    Primitive
	reflected    bool // use the pre-built 180-degree-rotated kernel clone
	fromOriginal bool // feed this stage from the untouched source, not the prior stage's output
}

// methodConfig is the orchestrator's static per-method configuration table,
// dispatching each Method to its primitive stage sequence and diffing mode.
type methodConfig struct {
	stages         []stageSpec
	diff           diffMode
	composeDefault ComposeKind
	kernelLimit    int // 0 means "governed by the iteration count N"
	methodLimit    int // 0 means a single pass; -1 (Thin/Thicken) means "governed by N"
	needsReflected bool
}

var methodTable = map[Method]methodConfig{
	MConvolve:        {stages: []stageSpec{{primitive: Convolve}}},
	MCorrelate:       {stages: []stageSpec{{primitive: Convolve, reflected: true}}, needsReflected: true},
	MErode:           {stages: []stageSpec{{primitive: Erode}}},
	MDilate:          {stages: []stageSpec{{primitive: Dilate}}},
	MErodeIntensity:  {stages: []stageSpec{{primitive: ErodeIntensity}}},
	MDilateIntensity: {stages: []stageSpec{{primitive: DilateIntensity}}},
	MOpen:            {stages: []stageSpec{{primitive: Erode}, {primitive: Dilate}}},
	MClose: {
		stages:         []stageSpec{{primitive: Dilate, reflected: true}, {primitive: Erode, reflected: true}},
		needsReflected: true,
	},
	MOpenIntensity: {stages: []stageSpec{{primitive: ErodeIntensity}, {primitive: DilateIntensity}}},
	MCloseIntensity: {
		stages:         []stageSpec{{primitive: DilateIntensity, reflected: true}, {primitive: ErodeIntensity, reflected: true}},
		needsReflected: true,
	},
	MTopHat: {stages: []stageSpec{{primitive: Erode}, {primitive: Dilate}}, diff: diffVsOriginal},
	MBottomHat: {
		stages:         []stageSpec{{primitive: Dilate, reflected: true}, {primitive: Erode, reflected: true}},
		diff:           diffVsOriginal,
		needsReflected: true,
	},
	MEdgeIn:  {stages: []stageSpec{{primitive: Erode}}, diff: diffVsOriginal},
	MEdgeOut: {stages: []stageSpec{{primitive: Dilate}}, diff: diffVsOriginal},
	MEdge: {
		stages: []stageSpec{{primitive: Dilate}, {primitive: Erode, fromOriginal: true}},
		diff:   diffVsEachOther,
	},
	MSmooth: {
		stages: []stageSpec{
			{primitive: Erode},
			{primitive: Dilate},
			{primitive: Dilate, reflected: true},
			{primitive: Erode, reflected: true},
		},
		needsReflected: true,
	},
	MHitAndMiss: {stages: []stageSpec{{primitive: HitMiss}}, kernelLimit: 1, composeDefault: ComposeUnion},
	MThin:       {stages: []stageSpec{{primitive: Thin}}, kernelLimit: 1, methodLimit: -1},
	MThicken:    {stages: []stageSpec{{primitive: Thicken}}, kernelLimit: 1, methodLimit: -1},
	MDistance:   {stages: []stageSpec{{primitive: Distance}}},
}

// Options carries the inputs to Run beyond the image itself.
type Options struct {
	Mask    image.Mask
	Method  Method
	N       int // iteration count; negative means "unbounded" (clamped to max(rows,cols))
	Kernels *kernel.Kernel
	Compose *ComposeKind // overrides the method's default compose, when set
	Bias    float64
}

// Run is the method orchestrator: it decomposes Options.Method into a
// sequence of primitive stages and drives them through four nested loops
// (method, kernel, stage, primitive), recycling image buffers and never
// mutating src.
func Run(src *image.MemImage, opts Options) (out *image.MemImage, changed int, err error) {
	if opts.N == 0 {
		return nil, 0, ErrZeroIterations
	}
	cfg, ok := methodTable[opts.Method]
	if !ok {
		return nil, 0, ErrUnknownMethod
	}
	if opts.Kernels == nil {
		return nil, 0, ErrNilKernel
	}

	n := opts.N
	if n < 0 {
		n = maxInt(src.Width(), src.Height())
	}

	kernelLimit := cfg.kernelLimit
	if kernelLimit == 0 {
		kernelLimit = n
	}
	methodLimit := cfg.methodLimit
	switch {
	case methodLimit < 0: // Thin/Thicken: the method loop absorbs N
		methodLimit = n
	case methodLimit == 0:
		methodLimit = 1
	}

	compose := cfg.composeDefault
	if opts.Compose != nil {
		compose = *opts.Compose
	}
	composeFn := composeFor(compose)

	var reflected *kernel.Kernel
	if cfg.needsReflected {
		reflected, err = kernel.Rotate(kernel.CloneList(opts.Kernels), 180)
		if err != nil {
			return nil, 0, err
		}
	}

	original := src.Clone()
	cur := src.Clone()
	totalChanged := 0

	for mi := 0; mi < methodLimit; mi++ {
		kcur := cur
		var folded []*image.MemImage
		iterChanged := 0

		originalK := opts.Kernels
		reflectedK := reflected
		for originalK != nil {
			kUse := originalK

			stageImg := kcur
			var stageOutputs []*image.MemImage
			for _, st := range cfg.stages {
				use := kUse
				if st.reflected {
					use = reflectedK
				}
				in := stageImg
				if st.fromOriginal {
					in = original
				}
				next, sc, serr := runPrimitiveLoop(in, st.primitive, use, opts.Mask, opts.Bias, kernelLimit)
				if serr != nil {
					return nil, 0, serr
				}
				stageOutputs = append(stageOutputs, next)
				stageImg = next
				iterChanged += sc
			}

			var kernelOut *image.MemImage
			switch cfg.diff {
			case diffVsOriginal:
				kernelOut = diffImages(stageImg, original, clearSync(opts.Mask))
			case diffVsEachOther:
				kernelOut = diffImages(stageOutputs[len(stageOutputs)-1], stageOutputs[0], clearSync(opts.Mask))
			default:
				kernelOut = stageImg
			}

			if composeFn == nil {
				kcur = kernelOut
			} else {
				folded = append(folded, kernelOut)
			}

			originalK = originalK.Next
			if reflectedK != nil {
				reflectedK = reflectedK.Next
			}
		}

		if composeFn != nil && len(folded) > 0 {
			kcur = foldAll(folded, composeFn)
		}

		cur = kcur
		totalChanged += iterChanged
		if iterChanged == 0 {
			break
		}
	}

	return cur, totalChanged, nil
}

func clearSync(m image.Mask) image.Mask {
	return m &^ image.MaskSync
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// runPrimitiveLoop is the primitive loop (C6 loop 4): up to limit
// applications of primitive p against kernel k, stopping early when a sweep
// reports zero changes. A fresh scratch image is used for each application;
// src is never mutated.
func runPrimitiveLoop(src *image.MemImage, p Primitive, k *kernel.Kernel, mask image.Mask, bias float64, limit int) (*image.MemImage, int, error) {
	cur := src
	total := 0
	for i := 0; i < limit; i++ {
		dst := image.New(cur.Width(), cur.Height(), cur.HasAlpha())
		c, err := Apply(cur, dst, p, k, mask, bias)
		if err != nil {
			return nil, 0, err
		}
		cur = dst
		total += c
		if c == 0 {
			break
		}
	}
	return cur, total, nil
}

// diffImages computes the per-channel absolute difference between a and b
// under mask, writing unmasked channels through from a.
func diffImages(a, b *image.MemImage, mask image.Mask) *image.MemImage {
	out := image.New(a.Width(), a.Height(), a.HasAlpha())
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			pa, pb := a.At(x, y), b.At(x, y)
			d := diffAbs(pa, pb)
			res := pa
			if mask.Has(image.MaskRed) {
				res.R = d.R
			}
			if mask.Has(image.MaskGreen) {
				res.G = d.G
			}
			if mask.Has(image.MaskBlue) {
				res.B = d.B
			}
			if mask.Has(image.MaskOpacity) {
				res.A = d.A
			}
			if mask.Has(image.MaskAuxiliary) {
				res.Aux = d.Aux
			}
			out.Set(x, y, res.Clamp())
		}
	}
	return out
}

// foldAll combines a list of per-kernel results with fn, left to right.
func foldAll(imgs []*image.MemImage, fn ComposeFunc) *image.MemImage {
	if len(imgs) == 0 {
		return nil
	}
	out := imgs[0].Clone()
	for _, im := range imgs[1:] {
		for y := 0; y < out.Height(); y++ {
			for x := 0; x < out.Width(); x++ {
				out.Set(x, y, fn(out.At(x, y), im.At(x, y)).Clamp())
			}
		}
	}
	return out
}
