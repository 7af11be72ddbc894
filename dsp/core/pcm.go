package core

import "math"

// SaturateInt16 rounds v to the nearest integer and clamps it to the int16
// range.
func SaturateInt16(v float64) int16 {
	return int16(Clamp(math.Round(v), math.MinInt16, math.MaxInt16))
}

// PCMToFloat converts src into dst without scaling. It returns the number of
// samples converted, the shorter of the two lengths.
func PCMToFloat(dst []float64, src []int16) int {
	n := min(len(dst), len(src))
	for i, s := range src[:n] {
		dst[i] = float64(s)
	}

	return n
}

// FloatToPCM saturates src into dst and returns the number of samples
// written, the shorter of the two lengths.
func FloatToPCM(dst []int16, src []float64) int {
	n := min(len(dst), len(src))
	for i, v := range src[:n] {
		dst[i] = SaturateInt16(v)
	}

	return n
}
