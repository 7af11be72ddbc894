package audiofilter

import (
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-chanfilter/dsp/filter/notch"
	"github.com/cwbudde/algo-chanfilter/dsp/filter/resonance"
	"github.com/cwbudde/algo-chanfilter/telephony/channel"
)

// runtime is one designed filter with zeroed history. A slot replaces it
// wholesale on reconfiguration.
type runtime struct {
	dir       Direction
	frequency float64
	bandwidth float64

	notch     *notch.Runtime
	resonance *resonance.Filter
}

// slot is the per-channel datastore entry and audio hook of one filter kind.
type slot struct {
	current atomic.Pointer[runtime]
	tone    atomic.Int32

	release sync.Once
	onFree  func()
}

func newSlot(rt *runtime, onFree func()) *slot {
	s := &slot{onFree: onFree}
	s.current.Store(rt)

	return s
}

// ProcessFrame implements channel.AudioHook.
func (s *slot) ProcessFrame(frame []int16, dir channel.FrameDirection, status channel.HookStatus) {
	if status == channel.StatusShutdown {
		return
	}

	rt := s.current.Load()
	if rt == nil || !rt.dir.Filters(dir) {
		return
	}

	switch {
	case rt.notch != nil:
		if d := rt.notch.Process(frame); d != notch.Pending {
			s.tone.Store(int32(d))
		}
	case rt.resonance != nil:
		rt.resonance.ProcessBlock(frame)
	}
}

func (s *slot) swap(rt *runtime) {
	s.current.Store(rt)
	s.tone.Store(int32(notch.Pending))
}

// free drops the runtime. Only the first call has an effect.
func (s *slot) free() {
	s.release.Do(func() {
		s.current.Store(nil)

		if s.onFree != nil {
			s.onFree()
		}
	})
}

func (s *slot) decision() notch.Decision {
	return notch.Decision(s.tone.Load())
}
