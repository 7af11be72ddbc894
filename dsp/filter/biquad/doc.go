// Package biquad provides the float biquad (second-order IIR) runtime used by
// the resonant low-pass path.
//
// A [Section] implements Direct Form II processing for one second-order
// section defined by [Coefficients]. Sections are cascaded via [Chain], which
// applies one overall gain before the first section. Block processing
// dispatches to a kernel selected once from the CPU features reported by
// algo-vecmath.
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/design/pass.
package biquad
