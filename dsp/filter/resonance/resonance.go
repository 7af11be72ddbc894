// Package resonance runs the resonant low-pass cascade on 16-bit PCM.
package resonance

import (
	"github.com/cwbudde/algo-chanfilter/dsp/core"
	"github.com/cwbudde/algo-chanfilter/dsp/filter/biquad"
	"github.com/cwbudde/algo-chanfilter/dsp/filter/design/pass"
)

// ScratchSize is the number of samples converted to float per chunk. Two
// 20 ms telephony frames at 8 kHz fit in one chunk.
const ScratchSize = 320

// Filter is a biquad cascade with a preallocated float scratch buffer, so
// processing PCM never allocates.
type Filter struct {
	chain   *biquad.Chain
	scratch [ScratchSize]float64
}

// New designs a resonant low-pass at fc Hz with resonance factor q.
func New(fc, q, sampleRate float64) (*Filter, error) {
	chain, err := pass.NewResonantChain(fc, q, sampleRate)
	if err != nil {
		return nil, err
	}

	return &Filter{chain: chain}, nil
}

// ProcessBlock filters samples in place, saturating to the int16 range.
func (f *Filter) ProcessBlock(samples []int16) {
	for len(samples) > 0 {
		n := min(len(samples), ScratchSize)
		buf := f.scratch[:n]

		core.PCMToFloat(buf, samples)
		f.chain.ProcessBlock(buf)
		core.FloatToPCM(samples, buf)

		samples = samples[n:]
	}
}

// Chain returns the underlying cascade.
func (f *Filter) Chain() *biquad.Chain { return f.chain }

// Reset zeroes the history of every section.
func (f *Filter) Reset() { f.chain.Reset() }
