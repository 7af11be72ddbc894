package audiofilter

import "sync/atomic"

// Stats counts lifecycle events since the Manager was created.
type Stats struct {
	NotchConfigured     uint64
	NotchReconfigured   uint64
	NotchRemoved        uint64
	NotchNonConverged   uint64
	NotchDesignFailures uint64

	ResonanceConfigured   uint64
	ResonanceReconfigured uint64
	ResonanceRemoved      uint64

	// Released counts runtimes freed by removal or hangup.
	Released uint64
}

type counters struct {
	notchConfigured     atomic.Uint64
	notchReconfigured   atomic.Uint64
	notchRemoved        atomic.Uint64
	notchNonConverged   atomic.Uint64
	notchDesignFailures atomic.Uint64

	resonanceConfigured   atomic.Uint64
	resonanceReconfigured atomic.Uint64
	resonanceRemoved      atomic.Uint64

	released atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		NotchConfigured:       c.notchConfigured.Load(),
		NotchReconfigured:     c.notchReconfigured.Load(),
		NotchRemoved:          c.notchRemoved.Load(),
		NotchNonConverged:     c.notchNonConverged.Load(),
		NotchDesignFailures:   c.notchDesignFailures.Load(),
		ResonanceConfigured:   c.resonanceConfigured.Load(),
		ResonanceReconfigured: c.resonanceReconfigured.Load(),
		ResonanceRemoved:      c.resonanceRemoved.Load(),
		Released:              c.released.Load(),
	}
}
