package resonance

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-chanfilter/dsp/core"
	"github.com/cwbudde/algo-chanfilter/dsp/filter/design/pass"
	"github.com/cwbudde/algo-chanfilter/dsp/spectrum"
	"github.com/cwbudde/algo-chanfilter/internal/testutil"
)

const sr = 8000.0

func TestFilter_DCPassesAtUnityGain(t *testing.T) {
	f, err := New(3700, pass.ResonantQ, sr)
	require.NoError(t, err)

	dc := make([]int16, 800)
	for i := range dc {
		dc[i] = 10000
	}
	f.ProcessBlock(dc)

	for i := 400; i < len(dc); i++ {
		assert.InDelta(t, 10000, int(dc[i]), 1, "sample %d", i)
	}
}

func TestFilter_AttenuatesAboveCutoff(t *testing.T) {
	f, err := New(1000, pass.ResonantQ, sr)
	require.NoError(t, err)

	in := testutil.SinePCM(3000, sr, 10000, 1600)
	out := append([]int16(nil), in...)
	f.ProcessBlock(out)

	inDB, err := spectrum.ToneLevelDB(in[800:], 3000, sr)
	require.NoError(t, err)
	outDB, err := spectrum.ToneLevelDB(out[800:], 3000, sr)
	require.NoError(t, err)

	assert.Greater(t, inDB-outDB, 40.0)
}

func TestFilter_MatchesChainAcrossChunks(t *testing.T) {
	// Frames longer than the scratch buffer are processed in chunks; the
	// result must not depend on the chunking.
	in := testutil.NoisePCM(11, 8000, 3*ScratchSize+17)

	a, err := New(2000, 2, sr)
	require.NoError(t, err)
	b, err := New(2000, 2, sr)
	require.NoError(t, err)

	whole := append([]int16(nil), in...)
	a.ProcessBlock(whole)

	framed := append([]int16(nil), in...)
	for off := 0; off < len(framed); off += 160 {
		b.ProcessBlock(framed[off:min(off+160, len(framed))])
	}

	assert.Equal(t, whole, framed)
}

func TestFilter_TracksFloatReference(t *testing.T) {
	f, err := New(3700, pass.ResonantQ, sr)
	require.NoError(t, err)
	ref, err := pass.NewResonantChain(3700, pass.ResonantQ, sr)
	require.NoError(t, err)

	in := testutil.NoisePCM(3, 6000, 800)

	want := make([]int16, len(in))
	for i, s := range in {
		want[i] = core.SaturateInt16(ref.ProcessSample(float64(s)))
	}

	got := append([]int16(nil), in...)
	f.ProcessBlock(got)

	d, err := testutil.MaxPCMDiff(got, want)
	require.NoError(t, err)
	assert.LessOrEqual(t, d, 1)
}

func TestFilter_Saturates(t *testing.T) {
	// Q=4 rings well above unity near the cutoff.
	f, err := New(2000, 4, sr)
	require.NoError(t, err)

	in := testutil.SinePCM(1950, sr, 30000, 800)
	f.ProcessBlock(in)

	peak := 0
	for _, s := range in {
		peak = max(peak, int(math.Abs(float64(s))))
	}
	assert.Equal(t, math.MaxInt16, peak)
}

func TestFilter_Reset(t *testing.T) {
	f, err := New(3700, pass.ResonantQ, sr)
	require.NoError(t, err)

	f.ProcessBlock(testutil.NoisePCM(5, 8000, 100))
	f.Reset()

	for i, st := range f.Chain().State() {
		assert.Equal(t, [2]float64{}, st, "section %d", i)
	}
}

func TestNew_InvalidParams(t *testing.T) {
	_, err := New(4500, pass.ResonantQ, sr)
	assert.True(t, errors.Is(err, pass.ErrInvalidParams))
}

func TestFilter_ProcessBlockDoesNotAllocate(t *testing.T) {
	f, err := New(3700, pass.ResonantQ, sr)
	require.NoError(t, err)

	frame := testutil.NoisePCM(1, 8000, 160)
	allocs := testing.AllocsPerRun(100, func() {
		f.ProcessBlock(frame)
	})
	assert.Zero(t, allocs)
}

func BenchmarkFilter_ProcessBlock160(b *testing.B) {
	f, err := New(3700, pass.ResonantQ, sr)
	if err != nil {
		b.Fatal(err)
	}

	frame := testutil.NoisePCM(1, 8000, 160)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		f.ProcessBlock(frame)
	}
}
