package core

import "time"

// SampleRate is the fixed narrowband telephony rate every filter runs at.
const SampleRate = 8000

// DefaultFrameSize is one 20 ms frame at SampleRate.
const DefaultFrameSize = 160

// ProcessorConfig defines common processing settings.
type ProcessorConfig struct {
	SampleRate float64
	FrameSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the telephony defaults.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: SampleRate,
		FrameSize:  DefaultFrameSize,
	}
}

// WithFrameSize sets the number of samples per frame.
func WithFrameSize(frameSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if frameSize > 0 {
			cfg.FrameSize = frameSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// FrameDuration returns the playout time of one frame.
func (c ProcessorConfig) FrameDuration() time.Duration {
	return time.Duration(float64(c.FrameSize) / c.SampleRate * float64(time.Second))
}
