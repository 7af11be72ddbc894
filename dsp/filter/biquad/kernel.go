package biquad

import (
	"sort"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// blockFn runs one Direct Form II section over buf in place, taking and
// returning the two history values.
type blockFn func(c Coefficients, w1, w2 float64, buf []float64) (float64, float64)

// kernel is one block-processing implementation. Higher priority wins among
// the kernels the detected CPU supports.
type kernel struct {
	name     string
	level    cpu.SIMDLevel
	priority int
	run      blockFn
}

var kernels = []kernel{
	{name: "generic", level: cpu.SIMDNone, priority: 0, run: processBlockGeneric},
	{name: "unrolled2", level: cpu.SIMDNone, priority: 10, run: processBlockUnrolled2},
}

var (
	activeKernel     kernel
	activeKernelOnce sync.Once
)

// selectKernel returns the highest-priority kernel supported by features.
// ForceGeneric pins the plain loop.
func selectKernel(features cpu.Features) kernel {
	candidates := make([]kernel, len(kernels))
	copy(candidates, kernels)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].priority > candidates[j].priority
	})

	if features.ForceGeneric {
		return kernels[0]
	}

	for _, k := range candidates {
		if cpu.Supports(features, k.level) {
			return k
		}
	}

	return kernels[0]
}

func blockKernel() blockFn {
	activeKernelOnce.Do(func() {
		activeKernel = selectKernel(cpu.DetectFeatures())
	})

	return activeKernel.run
}

// KernelName reports which block kernel ProcessBlock dispatches to.
func KernelName() string {
	blockKernel()
	return activeKernel.name
}

func processBlockGeneric(c Coefficients, w1, w2 float64, buf []float64) (float64, float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	for i, x := range buf {
		w := x - a1*w1 - a2*w2
		buf[i] = b0*w + b1*w1 + b2*w2
		w2 = w1
		w1 = w
	}

	return w1, w2
}

// processBlockUnrolled2 handles two samples per iteration to shorten the
// loop-carried dependency bookkeeping.
func processBlockUnrolled2(c Coefficients, w1, w2 float64, buf []float64) (float64, float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	i := 0
	n := len(buf)

	for ; i+1 < n; i += 2 {
		wa := buf[i] - a1*w1 - a2*w2
		ya := b0*wa + b1*w1 + b2*w2

		wb := buf[i+1] - a1*wa - a2*w1
		yb := b0*wb + b1*wa + b2*w1

		buf[i] = ya
		buf[i+1] = yb
		w2 = wa
		w1 = wb
	}

	if i < n {
		w := buf[i] - a1*w1 - a2*w2
		buf[i] = b0*w + b1*w1 + b2*w2
		w2 = w1
		w1 = w
	}

	return w1, w2
}
