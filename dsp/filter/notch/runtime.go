package notch

// Runtime is the per-channel notch state used by the media hook: one Filter
// and one Detector plus the most recent decision.
type Runtime struct {
	Filter
	Detector

	last Decision
}

// NewRuntime returns a Runtime with zero history and empty accumulators.
func NewRuntime(c Coefficients, threshold int64) *Runtime {
	r := &Runtime{
		Filter:   Filter{Coefficients: c},
		Detector: *NewDetector(threshold),
	}

	return r
}

// Process filters samples in place and feeds the detector. Frames are split
// at block boundaries so every completed block produces a decision; the last
// one taken in this call is returned, or Pending if none completed.
func (r *Runtime) Process(samples []int16) Decision {
	decision := Pending

	for len(samples) > 0 {
		n := min(len(samples), r.Detector.Remaining())
		chunk := samples[:n]

		r.Detector.Before(chunk)
		r.Filter.ProcessBlock(chunk)

		if d := r.Detector.After(chunk); d != Pending {
			decision = d
			r.last = d
		}

		samples = samples[n:]
	}

	return decision
}

// Last returns the most recent non-pending decision, or Pending if no block
// has completed yet.
func (r *Runtime) Last() Decision {
	return r.last
}

// Reset zeroes filter history, detector state and the last decision.
func (r *Runtime) Reset() {
	r.Filter.Reset()
	r.Detector.Reset()
	r.last = Pending
}
