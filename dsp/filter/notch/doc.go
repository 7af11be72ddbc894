// Package notch runs a second-order band-stop filter on 16-bit PCM with
// 14-bit fixed-point coefficients, and watches the energy it removes.
//
// Filter is the bare recurrence. Detector compares the absolute-sum energy
// before and after the filter over blocks of DetectBlock samples; a large
// drop means the notched frequency was present. Runtime couples the two the
// way a media hook uses them.
//
// Nothing in this package allocates or locks after construction.
package notch
