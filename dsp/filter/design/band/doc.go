// Package band designs narrow band-stop filters by direct z-plane pole and
// zero placement.
//
// DesignNotch places a conjugate pole pair with a bisection search so that a
// second-order resonator peaks exactly on the target frequency, then moves the
// zeros onto the unit circle at that frequency. The result is a recurrence
// relation with three taps that Quantize turns into the 14-bit fixed-point
// coefficients run by dsp/filter/notch.
package band
