package design

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-9

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestPrewarp(t *testing.T) {
	fs := 8000.0
	fc := 1000.0
	wp := 2 * fs * math.Tan(math.Pi*fc/fs)

	c0, c1, c2 := Prewarp(1, 2, 3, fc, fs)
	if c0 != 1 {
		t.Fatalf("c0 = %v, want untouched 1", c0)
	}
	if !almostEqual(c1, 2/wp, 1e-15) {
		t.Fatalf("c1 = %v, want %v", c1, 2/wp)
	}
	if !almostEqual(c2, 3/(wp*wp), 1e-18) {
		t.Fatalf("c2 = %v, want %v", c2, 3/(wp*wp))
	}
}

func TestBilinear_UnityPassthrough(t *testing.T) {
	// H(s) = 1 maps to H(z) = 1 with gain 1.
	c, k := Bilinear(AnalogBiquad{A0: 1, B0: 1}, 8000)
	if k != 1 {
		t.Fatalf("gain = %v, want 1", k)
	}
	if c.B0 != 1 || c.B1 != 2 || c.B2 != 1 || c.A1 != 2 || c.A2 != 1 {
		t.Fatalf("coefficients = %+v", c)
	}
}

func TestSZTransform_DCGainIsUnity(t *testing.T) {
	fs := 8000.0
	for _, fc := range []float64{100, 500, 1000, 2500, 3700} {
		for _, b1 := range []float64{0.765367, 1.847759} {
			k := 1.0
			c, err := SZTransform(AnalogBiquad{A0: 1, B0: 1, B1: b1, B2: 1}, fc, fs, &k)
			if err != nil {
				t.Fatalf("fc=%v b1=%v: %v", fc, b1, err)
			}

			// H(z=1) = k * (1+B1+B2) / (1+A1+A2)
			dc := k * (c.B0 + c.B1 + c.B2) / (1 + c.A1 + c.A2)
			if !almostEqual(dc, 1, tol) {
				t.Errorf("fc=%v b1=%v: DC gain = %v, want 1", fc, b1, dc)
			}
		}
	}
}

func TestSZTransform_AccumulatesGain(t *testing.T) {
	fs := 8000.0
	proto := AnalogBiquad{A0: 1, B0: 1, B1: 1.4, B2: 1}

	single := 1.0
	if _, err := SZTransform(proto, 1000, fs, &single); err != nil {
		t.Fatal(err)
	}

	double := 1.0
	if _, err := SZTransform(proto, 1000, fs, &double); err != nil {
		t.Fatal(err)
	}
	if _, err := SZTransform(proto, 1000, fs, &double); err != nil {
		t.Fatal(err)
	}

	if !almostEqual(double, single*single, 1e-15) {
		t.Fatalf("cascaded gain = %v, want %v", double, single*single)
	}
}

func TestSZTransform_CutoffMagnitude(t *testing.T) {
	// A single Butterworth-Q section (b1 = sqrt2) is -3.01 dB at fc.
	fs := 8000.0
	fc := 1200.0
	k := 1.0

	c, err := SZTransform(AnalogBiquad{A0: 1, B0: 1, B1: math.Sqrt2, B2: 1}, fc, fs, &k)
	if err != nil {
		t.Fatal(err)
	}

	db := 20*math.Log10(k) + c.MagnitudeDB(fc, fs)
	if !almostEqual(db, -3.0103, 1e-3) {
		t.Fatalf("|H(fc)| = %.4f dB, want -3.0103", db)
	}
}

func TestSZTransform_InvalidParams(t *testing.T) {
	proto := AnalogBiquad{A0: 1, B0: 1, B1: 1, B2: 1}

	tests := []struct {
		name string
		fc   float64
		fs   float64
	}{
		{"zero cutoff", 0, 8000},
		{"negative cutoff", -10, 8000},
		{"nyquist", 4000, 8000},
		{"above nyquist", 5000, 8000},
		{"zero rate", 1000, 0},
		{"nan cutoff", math.NaN(), 8000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			k := 1.0
			_, err := SZTransform(proto, tc.fc, tc.fs, &k)
			if !errors.Is(err, ErrInvalidParams) {
				t.Fatalf("err = %v, want ErrInvalidParams", err)
			}
			if k != 1 {
				t.Fatalf("gain modified on error: %v", k)
			}
		})
	}
}
