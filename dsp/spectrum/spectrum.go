package spectrum

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	if cap(buf.data) < 2*n {
		buf.data = make([]float64, 2*n)
	}

	buf.data = buf.data[:2*n]

	return buf.data[:n], buf.data[n:], buf
}

// Magnitude returns |X[k]| for each complex bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	scratchPool.Put(buf)

	return out
}

// MagnitudeDB returns 20*log10(|X[k]|) with a floor of -300 dB.
func MagnitudeDB(in []complex128) []float64 {
	out := Magnitude(in)
	for i, m := range out {
		if m <= 1e-15 {
			out[i] = -300
			continue
		}

		out[i] = 20 * math.Log10(m)
	}

	return out
}

// PeakBin returns the index of the largest value in mag. It returns -1 for
// an empty slice.
func PeakBin(mag []float64) int {
	peak := -1
	best := math.Inf(-1)

	for i, v := range mag {
		if v > best {
			peak, best = i, v
		}
	}

	return peak
}

// BinFrequency returns the centre frequency of bin k of an n-point FFT.
func BinFrequency(k, n int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(n)
}
