package biquad

import (
	"math/cmplx"
	"testing"
)

func TestCoefficientsPolesZeros_SecondOrder(t *testing.T) {
	p1 := complex(0.72, 0.19)
	p2 := cmplx.Conj(p1)
	z1 := complex(0.31, 0.44)
	z2 := cmplx.Conj(z1)

	b0 := 2.3
	c := Coefficients{
		B0: b0,
		B1: -b0 * real(z1+z2),
		B2: b0 * real(z1*z2),
		A1: -real(p1 + p2),
		A2: real(p1 * p2),
	}

	if !unorderedRootsClose(c.Poles(), p1, p2, 1e-12) {
		t.Fatalf("unexpected poles: got=%v want={%v,%v}", c.Poles(), p1, p2)
	}
	if !unorderedRootsClose(c.Zeros(), z1, z2, 1e-12) {
		t.Fatalf("unexpected zeros: got=%v want={%v,%v}", c.Zeros(), z1, z2)
	}
	if r := c.MaxPoleRadius(); !almostEqual(r, cmplx.Abs(p1), 1e-12) {
		t.Fatalf("MaxPoleRadius = %v, want %v", r, cmplx.Abs(p1))
	}
}

func TestCoefficientsZeros_FirstOrder(t *testing.T) {
	c := Coefficients{B0: 0, B1: 1, B2: -0.3}
	if !unorderedRootsClose(c.Zeros(), complex(0.3, 0), 0, 1e-12) {
		t.Fatalf("unexpected zeros: %v", c.Zeros())
	}
}

func unorderedRootsClose(got [2]complex128, want1, want2 complex128, tol float64) bool {
	return (rootsClose(got[0], want1, tol) && rootsClose(got[1], want2, tol)) ||
		(rootsClose(got[0], want2, tol) && rootsClose(got[1], want1, tol))
}

func rootsClose(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) <= tol
}
