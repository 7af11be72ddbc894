package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-chanfilter/dsp/core"
	"github.com/cwbudde/algo-chanfilter/dsp/spectrum"
)

// DefaultFFTSize gives 1.95 Hz resolution at 8 kHz.
const DefaultFFTSize = 4096

// ErrInvalidParams is returned for an FFT size that is not a power of two of
// at least 2, or a non-positive sample rate.
var ErrInvalidParams = errors.New("response: invalid parameters")

// PCMProcessor filters 16-bit samples in place.
type PCMProcessor interface {
	ProcessBlock(samples []int16)
}

// Response is a one-sided magnitude response, bins 0..N/2.
type Response struct {
	SampleRate float64
	FFTSize    int
	Magnitude  []float64
}

// FromImpulse transforms an impulse response. ir is zero-padded or truncated
// to fftSize.
func FromImpulse(ir []float64, fftSize int, sampleRate float64) (*Response, error) {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 || !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: fft size %d, sample rate %v", ErrInvalidParams, fftSize, sampleRate)
	}

	in := make([]complex128, fftSize)
	for i := range min(len(ir), fftSize) {
		in[i] = complex(ir[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: fft: %w", err)
	}

	return &Response{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		Magnitude:  spectrum.Magnitude(out[:fftSize/2+1]),
	}, nil
}

// FromPCM drives p with an impulse of the given amplitude followed by
// silence and measures the normalized response. p is left in whatever state
// the impulse put it in.
func FromPCM(p PCMProcessor, amplitude int16, fftSize int, sampleRate float64) (*Response, error) {
	if amplitude == 0 {
		return nil, fmt.Errorf("%w: zero impulse amplitude", ErrInvalidParams)
	}

	buf := make([]int16, fftSize)
	if len(buf) > 0 {
		buf[0] = amplitude
	}

	p.ProcessBlock(buf)

	ir := make([]float64, len(buf))
	core.PCMToFloat(ir, buf)

	scale := 1 / float64(amplitude)
	for i := range ir {
		ir[i] *= scale
	}

	return FromImpulse(ir, fftSize, sampleRate)
}

// BinWidth returns the frequency spacing of the bins in Hz.
func (r *Response) BinWidth() float64 {
	return r.SampleRate / float64(r.FFTSize)
}

// At returns the linear magnitude at freq, interpolated between the two
// nearest bins.
func (r *Response) At(freq float64) float64 {
	pos := core.Clamp(freq/r.BinWidth(), 0, float64(len(r.Magnitude)-1))
	lo := int(math.Floor(pos))
	hi := min(lo+1, len(r.Magnitude)-1)
	frac := pos - float64(lo)

	return r.Magnitude[lo]*(1-frac) + r.Magnitude[hi]*frac
}

// AtDB is At in dB.
func (r *Response) AtDB(freq float64) float64 {
	return core.LinearToDB(r.At(freq))
}

// Peak returns the frequency and dB level of the largest bin.
func (r *Response) Peak() (float64, float64) {
	k := spectrum.PeakBin(r.Magnitude)
	if k < 0 {
		return 0, math.Inf(-1)
	}

	return spectrum.BinFrequency(k, r.FFTSize, r.SampleRate), core.LinearToDB(r.Magnitude[k])
}
