package notch

import "fmt"

const (
	// DetectBlock is the number of samples per tone decision: five frames
	// of eight samples.
	DetectBlock = 40

	// DefaultThreshold is the average per-sample energy drop above which a
	// block counts as carrying the notched tone.
	DefaultThreshold = 128
)

// Decision is the outcome of feeding samples to a Detector.
type Decision int

const (
	// Pending means the current block is not complete yet.
	Pending Decision = iota
	// NoTone means the last block lost no significant energy in the notch.
	NoTone
	// TonePresent means the notch removed more than the threshold.
	TonePresent
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case NoTone:
		return "no-tone"
	case TonePresent:
		return "tone-present"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Detector accumulates absolute sample sums before (e1) and after (e2) the
// filter. Every DetectBlock samples it compares (e1-e2)/count against
// Threshold and starts over.
type Detector struct {
	Threshold int64

	e1, e2 int64
	count  int
}

// NewDetector returns a Detector with the given threshold. A non-positive
// threshold selects DefaultThreshold.
func NewDetector(threshold int64) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	return &Detector{Threshold: threshold}
}

// Before adds the energy of unfiltered samples.
func (d *Detector) Before(samples []int16) {
	d.e1 += absSum(samples)
}

// After adds the energy of the same samples after filtering, advances the
// block counter and returns a decision once the block is full.
func (d *Detector) After(samples []int16) Decision {
	d.e2 += absSum(samples)
	d.count += len(samples)

	if d.count < DetectBlock {
		return Pending
	}

	drop := (d.e1 - d.e2) / int64(d.count)

	d.Reset()

	if drop > d.Threshold {
		return TonePresent
	}

	return NoTone
}

// Remaining returns how many samples are left in the current block.
func (d *Detector) Remaining() int {
	return DetectBlock - d.count
}

// Reset clears both accumulators and the sample counter.
func (d *Detector) Reset() {
	d.e1, d.e2 = 0, 0
	d.count = 0
}

func absSum(samples []int16) int64 {
	var sum int64
	for _, s := range samples {
		v := int64(s)
		if v < 0 {
			v = -v
		}

		sum += v
	}

	return sum
}
