// Package testutil holds deterministic signal generators and comparison
// helpers shared by the filter tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// SinePCM generates a rounded 16-bit sine. amplitude must not exceed the
// int16 range.
func SinePCM(freqHz, sampleRate, amplitude float64, length int) []int16 {
	out := make([]int16, length)
	for i, v := range DeterministicSine(freqHz, sampleRate, amplitude, length) {
		out[i] = int16(math.Round(v))
	}
	return out
}

// NoisePCM generates deterministic 16-bit white noise.
func NoisePCM(seed int64, amplitude float64, length int) []int16 {
	out := make([]int16, length)
	for i, v := range DeterministicNoise(seed, amplitude, length) {
		out[i] = int16(math.Round(v))
	}
	return out
}
