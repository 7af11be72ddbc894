package design

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-chanfilter/dsp/filter/biquad"
)

// ErrInvalidParams is returned for a non-positive sample rate or a cutoff
// outside (0, sampleRate/2).
var ErrInvalidParams = errors.New("design: invalid parameters")

// AnalogBiquad is one second-order analog transfer function
//
//	H(s) = (A0 + A1*s + A2*s^2) / (B0 + B1*s + B2*s^2)
//
// normalized to a cutoff of 1 rad/s.
type AnalogBiquad struct {
	A0, A1, A2 float64 // numerator
	B0, B1, B2 float64 // denominator
}

// Prewarp scales the s and s^2 terms of one coefficient triple by the
// pre-warped cutoff wp = 2*fs*tan(pi*fc/fs), so that the bilinear transform
// maps the analog cutoff exactly onto fc.
func Prewarp(c0, c1, c2, fc, sampleRate float64) (float64, float64, float64) {
	wp := 2 * sampleRate * math.Tan(math.Pi*fc/sampleRate)

	return c0, c1 / wp, c2 / (wp * wp)
}

// Bilinear maps an analog biquad into a digital section using
// s = 2*fs*(1 - z^-1)/(1 + z^-1).
//
// The returned section is normalized so that both numerator and denominator
// have a unity leading tap (B0 = 1). The scale that normalization removes,
// ad/bd, is returned separately so cascades can accumulate it into a single
// overall gain.
func Bilinear(c AnalogBiquad, sampleRate float64) (biquad.Coefficients, float64) {
	fs := sampleRate
	fs2 := fs * fs

	ad := 4*c.A2*fs2 + 2*c.A1*fs + c.A0
	bd := 4*c.B2*fs2 + 2*c.B1*fs + c.B0

	return biquad.Coefficients{
		B0: 1,
		B1: (2*c.A0 - 8*c.A2*fs2) / ad,
		B2: (4*c.A2*fs2 - 2*c.A1*fs + c.A0) / ad,
		A1: (2*c.B0 - 8*c.B2*fs2) / bd,
		A2: (4*c.B2*fs2 - 2*c.B1*fs + c.B0) / bd,
	}, ad / bd
}

// SZTransform pre-warps numerator and denominator of c for cutoff fc, applies
// the bilinear transform and multiplies the section's gain into *k.
func SZTransform(c AnalogBiquad, fc, sampleRate float64, k *float64) (biquad.Coefficients, error) {
	if !validCutoff(fc, sampleRate) {
		return biquad.Coefficients{}, ErrInvalidParams
	}

	c.A0, c.A1, c.A2 = Prewarp(c.A0, c.A1, c.A2, fc, sampleRate)
	c.B0, c.B1, c.B2 = Prewarp(c.B0, c.B1, c.B2, fc, sampleRate)

	section, gain := Bilinear(c, sampleRate)
	if math.IsNaN(gain) || math.IsInf(gain, 0) {
		return biquad.Coefficients{}, ErrInvalidParams
	}

	*k *= gain

	return section, nil
}

func validCutoff(fc, sampleRate float64) bool {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return false
	}

	if fc <= 0 || fc >= sampleRate/2 || math.IsNaN(fc) || math.IsInf(fc, 0) {
		return false
	}

	return true
}
