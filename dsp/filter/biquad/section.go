package biquad

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
//	H(z) = (B0 + B1*z^-1 + B2*z^-2) / (1 + A1*z^-1 + A2*z^-2)
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form II processing: the feedback taps run first on
// the input, the feedforward taps then read the shared two-slot history.
type Section struct {
	Coefficients

	w1, w2 float64
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	w := x - s.A1*s.w1 - s.A2*s.w2
	y := s.B0*w + s.B1*s.w1 + s.B2*s.w2
	s.w2 = s.w1
	s.w1 = w

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	s.w1, s.w2 = blockKernel()(s.Coefficients, s.w1, s.w2, buf)
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// Zero-alloc.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = s.ProcessSample(x)
	}
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.w1 = 0
	s.w2 = 0
}

// State returns the current delay-line state [w1, w2].
func (s *Section) State() [2]float64 {
	return [2]float64{s.w1, s.w2}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.w1 = state[0]
	s.w2 = state[1]
}
