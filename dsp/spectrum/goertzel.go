package spectrum

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned for a non-positive sample rate or a target
// frequency outside [0, sampleRate/2].
var ErrInvalidParams = errors.New("spectrum: invalid parameters")

// Goertzel evaluates one DFT bin incrementally.
//
// The analyzer is stateful: Power and Magnitude describe every sample
// processed since the last Reset. Over a block of N samples that holds an
// integer number of cycles of the target, Magnitude equals A*N/2 for a sine
// of amplitude A.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
	n          int
}

// NewGoertzel creates an analyzer for frequency Hz at sampleRate Hz.
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate %v", ErrInvalidParams, sampleRate)
	}

	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) {
		return nil, fmt.Errorf("%w: frequency %v outside [0, %v]", ErrInvalidParams, frequency, sampleRate/2)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the internal state.
func (g *Goertzel) Reset() {
	g.s0, g.s1 = 0, 0
	g.n = 0
}

// ProcessSample updates the state with one sample.
func (g *Goertzel) ProcessSample(x float64) {
	s := x + g.coeff*g.s0 - g.s1
	g.s1 = g.s0
	g.s0 = s
	g.n++
}

// ProcessBlock updates the state with a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1, coeff := g.s0, g.s1, g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// ProcessPCM updates the state with 16-bit samples.
func (g *Goertzel) ProcessPCM(input []int16) {
	s0, s1, coeff := g.s0, g.s1, g.coeff
	for _, x := range input {
		s := float64(x) + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Power returns |X[k]|^2.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns |X[k]|.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}

	return math.Sqrt(p)
}

// Amplitude returns the peak amplitude of a sine at the target frequency
// implied by Magnitude over the samples seen so far.
func (g *Goertzel) Amplitude() float64 {
	if g.n == 0 {
		return 0
	}

	return 2 * g.Magnitude() / float64(g.n)
}

// Samples returns how many samples were processed since the last Reset.
func (g *Goertzel) Samples() int { return g.n }

// Frequency returns the target frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// ToneLevelDB returns the level of frequency in samples in dB relative to a
// full-scale int16 sine. Silence reports -300 dB.
func ToneLevelDB(samples []int16, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}

	g.ProcessPCM(samples)

	a := g.Amplitude()
	if a <= 1e-12 {
		return -300, nil
	}

	return 20 * math.Log10(a/math.MaxInt16), nil
}
