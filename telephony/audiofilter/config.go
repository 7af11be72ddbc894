package audiofilter

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-chanfilter/dsp/core"
	"github.com/cwbudde/algo-chanfilter/telephony/channel"
)

var (
	// ErrInvalidConfig is returned for a configuration that cannot be
	// applied. Nothing on the channel changes.
	ErrInvalidConfig = errors.New("audiofilter: invalid configuration")

	// ErrNotEnabled is returned when removing a filter that is not active.
	ErrNotEnabled = errors.New("audiofilter: filter not enabled")
)

// Direction selects which frames of a channel a filter processes.
type Direction int

const (
	// Both filters sent and received frames.
	Both Direction = iota
	// Transmit filters sent frames only.
	Transmit
	// Receive filters received frames only.
	Receive
)

// ParseDirection accepts "tx", "rx" and "both" as well as the spelled-out
// names. The empty string means Both.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "both":
		return Both, nil
	case "tx", "transmit":
		return Transmit, nil
	case "rx", "receive":
		return Receive, nil
	default:
		return 0, fmt.Errorf("%w: direction %q", ErrInvalidConfig, s)
	}
}

func (d Direction) String() string {
	switch d {
	case Both:
		return "both"
	case Transmit:
		return "tx"
	case Receive:
		return "rx"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func (d Direction) valid() bool {
	return d == Both || d == Transmit || d == Receive
}

// Filters reports whether frames travelling in fd pass through a filter
// configured for d.
func (d Direction) Filters(fd channel.FrameDirection) bool {
	switch d {
	case Both:
		return true
	case Transmit:
		return fd == channel.Sent
	case Receive:
		return fd == channel.Received
	default:
		return false
	}
}

// Covers reports whether a filter configured for d handles every frame a
// query for q asks about.
func (d Direction) Covers(q Direction) bool {
	return d == Both || d == q
}

// NotchConfig configures the notch filter of a channel. Remove detaches the
// filter and ignores the other fields.
type NotchConfig struct {
	Frequency float64
	Bandwidth float64
	Direction Direction
	Remove    bool
}

func (c NotchConfig) validate() error {
	if !c.Direction.valid() {
		return fmt.Errorf("%w: direction %v", ErrInvalidConfig, c.Direction)
	}

	if !finite(c.Frequency) || c.Frequency <= 0 || c.Frequency >= core.SampleRate/2 {
		return fmt.Errorf("%w: notch frequency %v outside (0, %d)", ErrInvalidConfig, c.Frequency, core.SampleRate/2)
	}

	if !finite(c.Bandwidth) || c.Bandwidth <= 0 {
		return fmt.Errorf("%w: notch bandwidth %v", ErrInvalidConfig, c.Bandwidth)
	}

	return nil
}

// ResonanceConfig configures the resonance filter of a channel. A zero
// Frequency, like Remove, detaches the filter.
type ResonanceConfig struct {
	Frequency float64
	Direction Direction
	Remove    bool
}

func (c ResonanceConfig) removes() bool {
	return c.Remove || c.Frequency == 0
}

func (c ResonanceConfig) validate() error {
	if !c.Direction.valid() {
		return fmt.Errorf("%w: direction %v", ErrInvalidConfig, c.Direction)
	}

	if !finite(c.Frequency) || c.Frequency <= 0 || c.Frequency > core.SampleRate/2 {
		return fmt.Errorf("%w: resonance frequency %v outside (0, %d]", ErrInvalidConfig, c.Frequency, core.SampleRate/2)
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
