// Package response measures the magnitude response of a filter from its
// impulse response.
//
// Float filters hand in their impulse response directly; PCM filters are
// driven with a scaled 16-bit impulse, so fixed-point quantization shows up
// in the measurement exactly as it does on a live channel.
package response
