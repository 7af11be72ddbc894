// Package polyroot provides the fixed-capacity pole/zero containers and
// polynomial expansion shared by the filter design packages.
//
// Complex arithmetic uses the native complex128 operators; this package only
// adds the handful of helpers the design code needs on top of them.
package polyroot

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// MaxOrder is the largest number of poles or zeros a Roots value can hold.
const MaxOrder = 8

// RealTol is the largest imaginary residue accepted on an expanded
// coefficient before the expansion is rejected as non-real.
const RealTol = 1e-10

var (
	// ErrNotReal is returned by Expand when a coefficient has a non-zero
	// imaginary part, i.e. the roots were not real or conjugate-paired.
	ErrNotReal = errors.New("polyroot: expanded coefficient is not real")

	// ErrCapacity is returned when a Roots value is already full.
	ErrCapacity = errors.New("polyroot: root capacity exceeded")
)

// Roots is an ordered, fixed-capacity set of polynomial roots (poles or zeros).
// The zero value is an empty set.
type Roots struct {
	n int
	r [MaxOrder]complex128
}

// Len returns the number of stored roots.
func (r *Roots) Len() int { return r.n }

// At returns the i-th root.
func (r *Roots) At(i int) complex128 {
	if i < 0 || i >= r.n {
		panic(fmt.Sprintf("polyroot: root index %d out of range [0,%d)", i, r.n))
	}

	return r.r[i]
}

// Set replaces the i-th root.
func (r *Roots) Set(i int, z complex128) {
	if i < 0 || i >= r.n {
		panic(fmt.Sprintf("polyroot: root index %d out of range [0,%d)", i, r.n))
	}

	r.r[i] = z
}

// Append adds a root at the end.
func (r *Roots) Append(z complex128) error {
	if r.n >= MaxOrder {
		return ErrCapacity
	}

	r.r[r.n] = z
	r.n++

	return nil
}

// AppendPair adds z followed by its complex conjugate.
func (r *Roots) AppendPair(z complex128) error {
	if r.n+2 > MaxOrder {
		return ErrCapacity
	}

	r.r[r.n] = z
	r.r[r.n+1] = cmplx.Conj(z)
	r.n += 2

	return nil
}

// Reset empties the set.
func (r *Roots) Reset() {
	*r = Roots{}
}

// Slice returns a copy of the stored roots.
func (r *Roots) Slice() []complex128 {
	out := make([]complex128, r.n)
	copy(out, r.r[:r.n])

	return out
}

// Poly holds polynomial coefficients in ascending power order:
// C[0] + C[1]*z + ... + C[Degree]*z^Degree.
type Poly struct {
	Degree int
	C      [MaxOrder + 1]complex128
}

// Eval evaluates the polynomial at z using Horner's method.
func (p *Poly) Eval(z complex128) complex128 {
	var sum complex128
	for i := p.Degree; i >= 0; i-- {
		sum = sum*z + p.C[i]
	}

	return sum
}

// Lead returns the highest-power coefficient.
func (p *Poly) Lead() complex128 {
	return p.C[p.Degree]
}

// Expand computes the product of (z - root) over all roots.
//
// Each factor is multiplied in from the highest degree down. The result is
// rejected with ErrNotReal when any coefficient keeps an imaginary part larger
// than RealTol; the partially real coefficients are still returned so callers
// can inspect them.
func Expand(r Roots) (Poly, error) {
	var p Poly

	p.Degree = r.n
	p.C[0] = 1

	for i := range r.n {
		multiplyIn(&p, r.r[i])
	}

	for i := 0; i <= p.Degree; i++ {
		if math.Abs(imag(p.C[i])) > RealTol {
			return p, fmt.Errorf("%w: coefficient of z^%d has imaginary part %g", ErrNotReal, i, imag(p.C[i]))
		}
	}

	return p, nil
}

// multiplyIn multiplies the factor (z - w) into p in place.
func multiplyIn(p *Poly, w complex128) {
	nw := -w
	for i := p.Degree; i >= 1; i-- {
		p.C[i] = nw*p.C[i] + p.C[i-1]
	}

	p.C[0] = nw * p.C[0]
}

// Response evaluates top(z)/bot(z).
func Response(top, bot *Poly, z complex128) complex128 {
	return top.Eval(z) / bot.Eval(z)
}

// Expj returns e^(j*theta).
func Expj(theta float64) complex128 {
	return complex(math.Cos(theta), math.Sin(theta))
}

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}

// NearlyEqualComplex reports whether a and b differ by at most eps in both
// the real and imaginary parts.
func NearlyEqualComplex(a, b complex128, eps float64) bool {
	return math.Abs(real(a)-real(b)) <= eps && math.Abs(imag(a)-imag(b)) <= eps
}
