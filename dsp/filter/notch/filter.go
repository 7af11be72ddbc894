package notch

import "math"

// Scale is the fixed-point scale of the coefficients (14 fractional bits).
const Scale = 1 << 14

const shift = 14

// Coefficients are the quantized recurrence taps of a notch:
//
//	y[n] = (x[n]*S + x[n-1]*P3 + x[n-2]*S + y[n-2]*P1 + y[n-1]*P2) >> 14
//
// with S = Scale. The x[n] and x[n-2] taps of a notch with zeros on the unit
// circle are always one.
type Coefficients struct {
	P1 int32 // y[n-2]
	P2 int32 // y[n-1]
	P3 int32 // x[n-1]
}

// Filter is a fixed-point notch with two samples of input and output history.
// Output samples saturate to the int16 range; the feedback history keeps the
// unsaturated value.
type Filter struct {
	Coefficients

	x1, x2 int32
	y1, y2 int32
}

// NewFilter returns a Filter with zero history.
func NewFilter(c Coefficients) *Filter {
	return &Filter{Coefficients: c}
}

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(x int16) int16 {
	x0 := int32(x)

	acc := int64(x0)*Scale +
		int64(f.x1)*int64(f.P3) +
		int64(f.x2)*Scale +
		int64(f.y2)*int64(f.P1) +
		int64(f.y1)*int64(f.P2)
	y := int32(acc >> shift)

	f.x2, f.x1 = f.x1, x0
	f.y2, f.y1 = f.y1, y

	return saturate(y)
}

// ProcessBlock filters samples in place.
func (f *Filter) ProcessBlock(samples []int16) {
	for i, x := range samples {
		samples[i] = f.ProcessSample(x)
	}
}

// Reset zeroes the history.
func (f *Filter) Reset() {
	f.x1, f.x2 = 0, 0
	f.y1, f.y2 = 0, 0
}

// History returns x[n-1], x[n-2], y[n-1], y[n-2].
func (f *Filter) History() [4]int32 {
	return [4]int32{f.x1, f.x2, f.y1, f.y2}
}

func saturate(v int32) int16 {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}
