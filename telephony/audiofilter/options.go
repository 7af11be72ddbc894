package audiofilter

import (
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-chanfilter/dsp/filter/design/pass"
	"github.com/cwbudde/algo-chanfilter/dsp/filter/notch"
)

type config struct {
	logger        *logrus.Logger
	toneThreshold int64
	resonanceQ    float64
}

// Option configures a Manager.
type Option func(*config)

// WithLogger sets the logger for lifecycle events. Default is the logrus
// standard logger.
func WithLogger(l *logrus.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithToneThreshold sets the per-sample energy drop that counts as a tone.
// Default is notch.DefaultThreshold.
func WithToneThreshold(threshold int64) Option {
	return func(cfg *config) {
		if threshold > 0 {
			cfg.toneThreshold = threshold
		}
	}
}

// WithResonanceQ sets the resonance factor of the low-pass prototype.
// Default is pass.ResonantQ.
func WithResonanceQ(q float64) Option {
	return func(cfg *config) {
		if q > 0 {
			cfg.resonanceQ = q
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := config{
		logger:        logrus.StandardLogger(),
		toneThreshold: notch.DefaultThreshold,
		resonanceQ:    pass.ResonantQ,
	}

	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	return cfg
}
