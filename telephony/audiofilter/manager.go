package audiofilter

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-chanfilter/dsp/core"
	"github.com/cwbudde/algo-chanfilter/dsp/filter/design/band"
	"github.com/cwbudde/algo-chanfilter/dsp/filter/notch"
	"github.com/cwbudde/algo-chanfilter/dsp/filter/resonance"
	"github.com/cwbudde/algo-chanfilter/internal/polyroot"
	"github.com/cwbudde/algo-chanfilter/telephony/channel"
)

const (
	notchKey     = "audiofilter.notch"
	resonanceKey = "audiofilter.resonance"
)

// Manager configures notch and resonance filters on channels. A single
// Manager serves any number of channels concurrently.
type Manager struct {
	cfg   config
	log   *logrus.Logger
	stats counters
}

// NewManager creates a Manager.
func NewManager(opts ...Option) *Manager {
	cfg := applyOptions(opts)

	return &Manager{
		cfg: cfg,
		log: cfg.logger,
	}
}

// Stats returns a snapshot of the lifecycle counters.
func (m *Manager) Stats() Stats {
	return m.stats.snapshot()
}

// ConfigureNotch attaches or redesigns the notch filter of ch. A config
// with Remove set behaves like RemoveNotch.
//
// A design whose pole search does not converge is still applied; the event
// is logged and counted in Stats.NotchNonConverged.
func (m *Manager) ConfigureNotch(ch channel.Channel, cfg NotchConfig) error {
	if cfg.Remove {
		return m.RemoveNotch(ch)
	}

	fields := logrus.Fields{
		"function":  "Manager.ConfigureNotch",
		"channel":   ch.Name(),
		"frequency": cfg.Frequency,
		"bandwidth": cfg.Bandwidth,
		"direction": cfg.Direction.String(),
	}

	if err := cfg.validate(); err != nil {
		m.log.WithFields(fields).WithError(err).Warn("Rejected notch configuration")
		return err
	}

	design, err := band.DesignNotch(cfg.Frequency, cfg.Bandwidth, core.SampleRate)
	if err != nil {
		m.stats.notchDesignFailures.Add(1)

		if errors.Is(err, polyroot.ErrNotReal) {
			m.log.WithFields(fields).WithError(err).Warn("Notch design produced complex coefficients")
		}

		return fmt.Errorf("audiofilter: notch design: %w", err)
	}

	if !design.Converged {
		m.stats.notchNonConverged.Add(1)
		m.log.WithFields(fields).WithFields(logrus.Fields{
			"converged":  false,
			"iterations": design.Iterations,
		}).Warn("Notch pole search did not converge, applying best approximation")
	}

	coeffs := design.Quantize()
	rt := &runtime{
		dir:       cfg.Direction,
		frequency: cfg.Frequency,
		bandwidth: cfg.Bandwidth,
		notch:     notch.NewRuntime(coeffs, m.cfg.toneThreshold),
	}

	ch.Lock()
	defer ch.Unlock()

	reconfigured, err := m.install(ch, notchKey, rt)
	if err != nil {
		m.log.WithFields(fields).WithError(err).Error("Failed to attach notch filter")
		return err
	}

	fields["p1"], fields["p2"], fields["p3"] = coeffs.P1, coeffs.P2, coeffs.P3

	if reconfigured {
		m.stats.notchReconfigured.Add(1)
		m.log.WithFields(fields).Info("Notch filter reconfigured")

		return nil
	}

	m.stats.notchConfigured.Add(1)
	m.log.WithFields(fields).Info("Notch filter attached")

	return nil
}

// RemoveNotch detaches and releases the notch filter of ch. It returns
// ErrNotEnabled if none is active.
func (m *Manager) RemoveNotch(ch channel.Channel) error {
	ch.Lock()
	defer ch.Unlock()

	if err := m.uninstall(ch, notchKey, "Manager.RemoveNotch"); err != nil {
		return err
	}

	m.stats.notchRemoved.Add(1)

	return nil
}

// NotchBandwidth returns the bandwidth of the active notch filter of ch if
// its direction covers dir.
func (m *Manager) NotchBandwidth(ch channel.Channel, dir Direction) (float64, bool) {
	ch.Lock()
	defer ch.Unlock()

	s := lookup(ch, notchKey)
	if s == nil {
		return 0, false
	}

	rt := s.current.Load()
	if rt == nil || !rt.dir.Covers(dir) {
		return 0, false
	}

	return rt.bandwidth, true
}

// NotchTone returns the latest tone decision of the active notch filter of
// ch. It is notch.Pending until a full detection block has been seen since
// the last configuration.
func (m *Manager) NotchTone(ch channel.Channel) (notch.Decision, bool) {
	ch.Lock()
	defer ch.Unlock()

	s := lookup(ch, notchKey)
	if s == nil || s.current.Load() == nil {
		return notch.Pending, false
	}

	return s.decision(), true
}

// ConfigureResonance attaches or redesigns the resonance filter of ch. A
// config with Remove set or a zero Frequency behaves like RemoveResonance.
func (m *Manager) ConfigureResonance(ch channel.Channel, cfg ResonanceConfig) error {
	if cfg.removes() {
		return m.RemoveResonance(ch)
	}

	fields := logrus.Fields{
		"function":  "Manager.ConfigureResonance",
		"channel":   ch.Name(),
		"frequency": cfg.Frequency,
		"q":         m.cfg.resonanceQ,
		"direction": cfg.Direction.String(),
	}

	if err := cfg.validate(); err != nil {
		m.log.WithFields(fields).WithError(err).Warn("Rejected resonance configuration")
		return err
	}

	f, err := resonance.New(cfg.Frequency, m.cfg.resonanceQ, core.SampleRate)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	rt := &runtime{
		dir:       cfg.Direction,
		frequency: cfg.Frequency,
		resonance: f,
	}

	ch.Lock()
	defer ch.Unlock()

	reconfigured, err := m.install(ch, resonanceKey, rt)
	if err != nil {
		m.log.WithFields(fields).WithError(err).Error("Failed to attach resonance filter")
		return err
	}

	fields["gain"] = f.Chain().Gain()

	if reconfigured {
		m.stats.resonanceReconfigured.Add(1)
		m.log.WithFields(fields).Info("Resonance filter reconfigured")

		return nil
	}

	m.stats.resonanceConfigured.Add(1)
	m.log.WithFields(fields).Info("Resonance filter attached")

	return nil
}

// RemoveResonance detaches and releases the resonance filter of ch. It
// returns ErrNotEnabled if none is active.
func (m *Manager) RemoveResonance(ch channel.Channel) error {
	ch.Lock()
	defer ch.Unlock()

	if err := m.uninstall(ch, resonanceKey, "Manager.RemoveResonance"); err != nil {
		return err
	}

	m.stats.resonanceRemoved.Add(1)

	return nil
}

// install swaps rt into an existing slot or creates, stores and attaches a
// new one. On failure the channel is left as it was. ch must be locked.
func (m *Manager) install(ch channel.Channel, key string, rt *runtime) (bool, error) {
	if v, ok := ch.Datastore(key); ok {
		s, ok := v.(*slot)
		if !ok {
			return false, fmt.Errorf("audiofilter: datastore %q holds %T", key, v)
		}

		s.swap(rt)

		return true, nil
	}

	s := newSlot(rt, func() { m.stats.released.Add(1) })

	if err := ch.AddDatastore(key, s, s.free); err != nil {
		return false, fmt.Errorf("audiofilter: add datastore: %w", err)
	}

	if err := ch.AttachHook(s); err != nil {
		ch.RemoveDatastore(key)
		s.free()

		return false, fmt.Errorf("audiofilter: attach hook: %w", err)
	}

	return false, nil
}

// uninstall detaches and frees the slot stored under key. ch must be locked.
func (m *Manager) uninstall(ch channel.Channel, key, function string) error {
	fields := logrus.Fields{
		"function": function,
		"channel":  ch.Name(),
	}

	s := lookup(ch, key)
	if s == nil {
		m.log.WithFields(fields).Warn("Filter not enabled")
		return ErrNotEnabled
	}

	if err := ch.DetachHook(s); err != nil {
		m.log.WithFields(fields).WithError(err).Warn("Hook already detached")
	}

	ch.RemoveDatastore(key)
	s.free()

	m.log.WithFields(fields).Info("Filter removed")

	return nil
}

func lookup(ch channel.Channel, key string) *slot {
	v, ok := ch.Datastore(key)
	if !ok {
		return nil
	}

	s, _ := v.(*slot)

	return s
}
