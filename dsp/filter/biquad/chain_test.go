package biquad

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-chanfilter/internal/testutil"
)

func twoSectionCoeffs() []Coefficients {
	return []Coefficients{
		{B0: 1, B1: 2, B2: 1, A1: -1.2, A2: 0.72},
		{B0: 1, B1: 2, B2: 1, A1: -0.6, A2: 0.25},
	}
}

func TestNewChain_Defaults(t *testing.T) {
	chain := NewChain(twoSectionCoeffs())
	if chain.Gain() != 1 {
		t.Fatalf("default gain = %v, want 1", chain.Gain())
	}
	if chain.NumSections() != 2 || chain.Order() != 4 {
		t.Fatalf("sections=%d order=%d", chain.NumSections(), chain.Order())
	}

	coeffs := chain.Coefficients()
	coeffs[0].B0 = 42
	if chain.Section(0).B0 == 42 {
		t.Fatal("Coefficients must return a copy")
	}
}

func TestChain_ProcessSample_WithGain(t *testing.T) {
	coeffs := twoSectionCoeffs()
	gain := 0.05

	section1 := NewSection(coeffs[0])
	section2 := NewSection(coeffs[1])
	chain := NewChain(coeffs, WithGain(gain))

	for i, x := range []float64{1, 0.5, -0.3, 0.7} {
		ref := section2.ProcessSample(section1.ProcessSample(x * gain))
		if got := chain.ProcessSample(x); !almostEqual(got, ref, eps) {
			t.Errorf("sample %d: chain=%.15f, ref=%.15f", i, got, ref)
		}
	}
}

func TestChain_ProcessBlock_MatchesSample(t *testing.T) {
	for _, gain := range []float64{1, 0.05} {
		c1 := NewChain(twoSectionCoeffs(), WithGain(gain))
		input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}

		ref := make([]float64, len(input))
		for i, x := range input {
			ref[i] = c1.ProcessSample(x)
		}

		c2 := NewChain(twoSectionCoeffs(), WithGain(gain))
		block := append([]float64(nil), input...)
		c2.ProcessBlock(block)

		testutil.RequireSliceNearlyEqual(t, block, ref, eps)
	}
}

func TestChain_Empty(t *testing.T) {
	chain := NewChain(nil, WithGain(2))
	if y := chain.ProcessSample(0.25); y != 0.5 {
		t.Fatalf("empty chain output = %v, want 0.5", y)
	}
	if !chain.Stable() {
		t.Fatal("empty chain reported unstable")
	}
}

func TestChain_Reset(t *testing.T) {
	chain := NewChain(twoSectionCoeffs())
	chain.ProcessSample(1)
	chain.ProcessSample(0.5)

	chain.Reset()

	for i, st := range chain.State() {
		if st != [2]float64{0, 0} {
			t.Errorf("section %d state not zero after reset: %v", i, st)
		}
	}
}

func TestChain_State_SaveRestore(t *testing.T) {
	chain := NewChain(twoSectionCoeffs())
	chain.ProcessSample(1)
	chain.ProcessSample(0.5)
	saved := chain.State()

	y3 := chain.ProcessSample(-0.3)

	chain.SetState(saved)
	if y := chain.ProcessSample(-0.3); !almostEqual(y, y3, eps) {
		t.Errorf("after restore: got %v, want %v", y, y3)
	}
}

func TestChain_ImpulseResponse_PreservesState(t *testing.T) {
	chain := NewChain(twoSectionCoeffs(), WithGain(0.1))
	chain.ProcessSample(0.3)
	before := chain.State()

	ir := chain.ImpulseResponse(64)
	if len(ir) != 64 {
		t.Fatalf("len = %d", len(ir))
	}
	testutil.RequireFinite(t, ir)
	if ir[0] != 0.1 {
		t.Fatalf("h[0] = %v, want gain*B0*B0 = 0.1", ir[0])
	}

	after := chain.State()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("section %d state changed: %v -> %v", i, before[i], after[i])
		}
	}

	if chain.ImpulseResponse(0) != nil {
		t.Fatal("ImpulseResponse(0) must be nil")
	}
}

func TestChain_Stable(t *testing.T) {
	if !NewChain(twoSectionCoeffs()).Stable() {
		t.Fatal("stable cascade reported unstable")
	}

	// Double pole on z = -1.
	unstable := []Coefficients{{B0: 1, B1: 2, B2: 1, A1: 2, A2: 1}}
	if NewChain(unstable).Stable() {
		t.Fatal("pole on the unit circle reported stable")
	}
}

func TestChain_ResponseMatchesSections(t *testing.T) {
	coeffs := twoSectionCoeffs()
	chain := NewChain(coeffs, WithGain(0.3))

	for _, f := range []float64{0, 250, 1000, 3000} {
		want := complex(0.3, 0) * coeffs[0].Response(f, 8000) * coeffs[1].Response(f, 8000)
		got := chain.Response(f, 8000)
		if math.Abs(real(got-want)) > eps || math.Abs(imag(got-want)) > eps {
			t.Errorf("f=%v: got %v, want %v", f, got, want)
		}
	}
}
