// Package level measures the signal level of 16-bit PCM audio relative to
// digital full scale.
package level

import (
	"math"

	"github.com/cwbudde/algo-chanfilter/dsp/core"
)

// FullScale is the sample magnitude reported as 0 dBFS.
const FullScale = math.MaxInt16

// Level holds level statistics of a PCM signal. dB fields are -Inf for
// silence.
type Level struct {
	Samples       int
	DC            float64
	RMS           float64
	RMSdBFS       float64
	Peak          int
	PeakdBFS      float64
	CrestFactorDB float64 // peak / RMS
	Clipped       int     // samples at either int16 limit
	ZeroCrossings int
}

// Measure computes the level of pcm in one pass.
func Measure(pcm []int16) Level {
	var m Meter
	m.Update(pcm)

	return m.Result()
}

// Meter accumulates level statistics across frames. Feeding a signal frame
// by frame gives the same Result as Measure on the whole signal.
type Meter struct {
	n       int
	sum     int64
	sumSq   float64
	peak    int
	clipped int
	zc      int
	last    int16
}

// Update adds one frame.
func (m *Meter) Update(pcm []int16) {
	for _, s := range pcm {
		v := int(s)

		m.sum += int64(v)
		m.sumSq += float64(v * v)
		m.peak = max(m.peak, v, -v)

		if s == math.MaxInt16 || s == math.MinInt16 {
			m.clipped++
		}

		// A crossing needs opposite signs; zero samples do not count.
		if m.n > 0 && (m.last < 0 && s > 0 || m.last > 0 && s < 0) {
			m.zc++
		}

		m.last = s
		m.n++
	}
}

// Result returns the statistics of everything seen since the last Reset.
func (m *Meter) Result() Level {
	if m.n == 0 {
		return Level{
			RMSdBFS:  math.Inf(-1),
			PeakdBFS: math.Inf(-1),
		}
	}

	nf := float64(m.n)
	rms := math.Sqrt(m.sumSq / nf)

	var crest float64
	if rms > 0 {
		crest = core.LinearToDB(float64(m.peak) / rms)
	}

	return Level{
		Samples:       m.n,
		DC:            float64(m.sum) / nf,
		RMS:           rms,
		RMSdBFS:       core.LinearToDB(rms / FullScale),
		Peak:          m.peak,
		PeakdBFS:      core.LinearToDB(float64(m.peak) / FullScale),
		CrestFactorDB: crest,
		Clipped:       m.clipped,
		ZeroCrossings: m.zc,
	}
}

// Reset clears the meter.
func (m *Meter) Reset() {
	*m = Meter{}
}
