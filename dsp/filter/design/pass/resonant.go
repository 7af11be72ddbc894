// Package pass designs the resonant low-pass cascade used on the resonance
// media path.
package pass

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-chanfilter/dsp/filter/biquad"
	"github.com/cwbudde/algo-chanfilter/dsp/filter/design"
)

// ResonantQ is the resonance factor shipped for telephony channels. At 1 the
// prototype is a plain 4th-order Butterworth.
const ResonantQ = 1.0

// ErrInvalidParams is returned for a cutoff outside (0, sampleRate/2], a
// non-positive sample rate or a non-positive Q.
var ErrInvalidParams = errors.New("pass: invalid parameters")

// Butterworth4Prototype returns the two analog sections of a normalized
// 4th-order Butterworth low-pass. The s-term of each denominator is
// 2*sin((2i+1)*pi/8).
func Butterworth4Prototype() [2]design.AnalogBiquad {
	return [2]design.AnalogBiquad{
		{A0: 1, B0: 1, B1: 0.765367, B2: 1},
		{A0: 1, B0: 1, B1: 1.847759, B2: 1},
	}
}

// ResonantLP designs a 4th-order low-pass at fc with resonance factor q.
//
// It returns the overall cascade gain and the sections in processing order.
// Every section has a unity leading numerator tap; the scale removed by that
// normalization is folded into the returned gain, which leaves the DC gain of
// the full cascade at 1.
//
// A cutoff of exactly sampleRate/2 passes everything: the returned gain is 1
// and no sections are produced.
func ResonantLP(fc, q, sampleRate float64) (float64, []biquad.Coefficients, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, nil, fmt.Errorf("%w: sample rate %v", ErrInvalidParams, sampleRate)
	}

	if !(fc > 0 && fc <= sampleRate/2) {
		return 0, nil, fmt.Errorf("%w: cutoff %v outside (0, %v]", ErrInvalidParams, fc, sampleRate/2)
	}

	if !(q > 0) || math.IsInf(q, 0) {
		return 0, nil, fmt.Errorf("%w: q %v", ErrInvalidParams, q)
	}

	if fc == sampleRate/2 {
		return 1, nil, nil
	}

	proto := Butterworth4Prototype()
	sections := make([]biquad.Coefficients, 0, len(proto))
	k := 1.0

	for _, p := range proto {
		p.B1 /= q

		c, err := design.SZTransform(p, fc, sampleRate, &k)
		if err != nil {
			return 0, nil, fmt.Errorf("pass: section transform: %w", err)
		}

		sections = append(sections, c)
	}

	return k, sections, nil
}

// NewResonantChain is ResonantLP wrapped into a ready-to-run cascade.
func NewResonantChain(fc, q, sampleRate float64) (*biquad.Chain, error) {
	gain, sections, err := ResonantLP(fc, q, sampleRate)
	if err != nil {
		return nil, err
	}

	return biquad.NewChain(sections, biquad.WithGain(gain)), nil
}
