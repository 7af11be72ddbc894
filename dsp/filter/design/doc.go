// Package design provides the analog-to-digital building blocks used by the
// filter designers: analog biquad prototypes, frequency pre-warping and the
// bilinear transform.
//
// The sub-packages turn these into complete filters:
//
//   - design/pass builds the resonant low-pass cascade consumed by
//     dsp/filter/biquad and dsp/filter/resonance.
//   - design/band builds the pole/zero notch consumed by dsp/filter/notch.
package design
