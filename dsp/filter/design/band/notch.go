package band

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-chanfilter/dsp/filter/notch"
	"github.com/cwbudde/algo-chanfilter/internal/polyroot"
)

const (
	// MaxNotchIterations bounds the bisection search for the pole angle.
	MaxNotchIterations = 50

	// phaseTol is the largest |Im(g)/Re(g)| accepted as converged.
	phaseTol = 1e-10
)

// ErrInvalidParams is returned for a centre frequency outside
// (0, sampleRate/2), a non-positive bandwidth or a non-finite argument.
var ErrInvalidParams = errors.New("band: invalid parameters")

// Plane is the z-plane description of a designed filter.
type Plane struct {
	Poles polyroot.Roots
	Zeros polyroot.Roots
}

// Notch is a designed second-order band-stop filter.
//
// X and Y are the recurrence taps in ascending delay order reversed, i.e.
//
//	y[n] = X[0]*x[n-2] + X[1]*x[n-1] + X[2]*x[n] + Y[0]*y[n-2] + Y[1]*y[n-1]
//
// Y[2] is unused and always 0.
type Notch struct {
	Plane Plane

	X [3]float64
	Y [3]float64

	// Q is the quality factor freq/bw the design was searched with.
	Q float64

	// Converged is false when the bisection ran out of iterations; the pole
	// pair is then the last probed position.
	Converged  bool
	Iterations int

	theta float64
}

// DesignNotch designs a notch at freq Hz with bandwidth bw Hz.
//
// The function is pure: identical arguments always give bit-identical taps.
// A design that fails to converge is still returned, with Converged set.
func DesignNotch(freq, bw, sampleRate float64) (Notch, error) {
	if !finite(freq) || !finite(bw) || !finite(sampleRate) || sampleRate <= 0 {
		return Notch{}, fmt.Errorf("%w: freq=%v bw=%v rate=%v", ErrInvalidParams, freq, bw, sampleRate)
	}

	if freq <= 0 || freq >= sampleRate/2 {
		return Notch{}, fmt.Errorf("%w: freq %v outside (0, %v)", ErrInvalidParams, freq, sampleRate/2)
	}

	if bw <= 0 {
		return Notch{}, fmt.Errorf("%w: bandwidth %v", ErrInvalidParams, bw)
	}

	n := Notch{
		Q:     freq / bw,
		theta: 2 * math.Pi * freq / sampleRate,
	}

	if err := n.placePoles(); err != nil {
		return Notch{}, err
	}

	// Zeros exactly on the unit circle at the target angle.
	n.Plane.Zeros.Reset()
	if err := n.Plane.Zeros.AppendPair(polyroot.Expj(n.theta)); err != nil {
		return Notch{}, err
	}

	if err := n.recurrence(); err != nil {
		return Notch{}, err
	}

	return n, nil
}

// placePoles searches the pole angle of a bandpass resonator with zeros at
// z = 1 and z = -1 and pole radius exp(-theta/(2Q)) until the resonator's
// phase at the target angle is zero.
func (n *Notch) placePoles() error {
	var zeros polyroot.Roots
	_ = zeros.Append(1)
	_ = zeros.Append(-1)

	top, err := polyroot.Expand(zeros)
	if err != nil {
		return fmt.Errorf("band: resonator zeros: %w", err)
	}

	n.Plane.Zeros = zeros

	r := math.Exp(-n.theta / (2 * n.Q))
	probe := polyroot.Expj(n.theta)

	thm, th1, th2 := n.theta, 0.0, math.Pi

	for !n.Converged && n.Iterations < MaxNotchIterations {
		n.Iterations++

		n.Plane.Poles.Reset()
		_ = n.Plane.Poles.AppendPair(complex(r, 0) * polyroot.Expj(thm))

		bot, err := polyroot.Expand(n.Plane.Poles)
		if err != nil {
			return fmt.Errorf("band: resonator poles: %w", err)
		}

		g := polyroot.Response(&top, &bot, probe)
		phi := imag(g) / real(g)

		if phi > 0 {
			th2 = thm
		} else {
			th1 = thm
		}

		if math.Abs(phi) < phaseTol {
			n.Converged = true
		}

		thm = 0.5 * (th1 + th2)
	}

	return nil
}

// recurrence expands the final plane into normalized recurrence taps.
func (n *Notch) recurrence() error {
	top, err := polyroot.Expand(n.Plane.Zeros)
	if err != nil {
		return fmt.Errorf("band: notch zeros: %w", err)
	}

	bot, err := polyroot.Expand(n.Plane.Poles)
	if err != nil {
		return fmt.Errorf("band: notch poles: %w", err)
	}

	lead := real(bot.Lead())
	for i := 0; i <= top.Degree; i++ {
		n.X[i] = real(top.C[i]) / lead
	}

	for i := 0; i < bot.Degree; i++ {
		n.Y[i] = -real(bot.C[i]) / lead
	}

	return nil
}

// Quantize converts the taps to the fixed-point scale of the runtime. The
// x[n] and x[n-2] taps are 1 for every notch and stay implicit.
func (n Notch) Quantize() notch.Coefficients {
	return notch.Coefficients{
		P1: int32(n.Y[0] * notch.Scale),
		P2: int32(n.Y[1] * notch.Scale),
		P3: int32(n.X[1] * notch.Scale),
	}
}

// Frequency returns the notch angle in radians per sample.
func (n Notch) Frequency() float64 { return n.theta }

// PoleRadius returns the largest pole magnitude.
func (n Notch) PoleRadius() float64 {
	var r float64
	for i := range n.Plane.Poles.Len() {
		r = max(r, cmplx.Abs(n.Plane.Poles.At(i)))
	}

	return r
}

// Response evaluates the unquantized transfer function at freq Hz.
func (n Notch) Response(freq, sampleRate float64) complex128 {
	z1 := polyroot.Expj(-2 * math.Pi * freq / sampleRate)
	z2 := z1 * z1

	num := complex(n.X[2], 0) + complex(n.X[1], 0)*z1 + complex(n.X[0], 0)*z2
	den := 1 - complex(n.Y[1], 0)*z1 - complex(n.Y[0], 0)*z2

	return num / den
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
