package channel

import (
	"slices"
	"sync"
	"sync/atomic"
)

type datastore struct {
	value   any
	destroy func()
}

// Memory is an in-process Channel. Send and Receive deliver frames to the
// attached hooks serially and in order, the way a host pumps a channel's
// media.
type Memory struct {
	name string

	mu     sync.Mutex
	data   map[string]datastore
	hungUp bool

	// hooks is replaced, never mutated, so frame delivery reads it without
	// taking mu.
	hooks atomic.Pointer[[]AudioHook]

	frameMu sync.Mutex
}

// NewMemory returns an empty channel.
func NewMemory(name string) *Memory {
	m := &Memory{
		name: name,
		data: make(map[string]datastore),
	}
	m.hooks.Store(&[]AudioHook{})

	return m
}

// Lock takes the channel lock.
func (m *Memory) Lock() { m.mu.Lock() }

// Unlock releases the channel lock.
func (m *Memory) Unlock() { m.mu.Unlock() }

// Name returns the channel name.
func (m *Memory) Name() string { return m.name }

// Datastore implements Channel.
func (m *Memory) Datastore(key string) (any, bool) {
	d, ok := m.data[key]
	return d.value, ok
}

// AddDatastore implements Channel.
func (m *Memory) AddDatastore(key string, value any, destroy func()) error {
	if m.hungUp {
		return ErrHungUp
	}

	if _, ok := m.data[key]; ok {
		return ErrDatastoreExists
	}

	m.data[key] = datastore{value: value, destroy: destroy}

	return nil
}

// RemoveDatastore implements Channel.
func (m *Memory) RemoveDatastore(key string) bool {
	_, ok := m.data[key]
	delete(m.data, key)

	return ok
}

// AttachHook implements Channel.
func (m *Memory) AttachHook(h AudioHook) error {
	if m.hungUp {
		return ErrHungUp
	}

	cur := *m.hooks.Load()
	if slices.Contains(cur, h) {
		return ErrHookAttached
	}

	next := append(slices.Clip(cur), h)
	m.hooks.Store(&next)

	return nil
}

// DetachHook implements Channel.
func (m *Memory) DetachHook(h AudioHook) error {
	cur := *m.hooks.Load()

	i := slices.Index(cur, h)
	if i < 0 {
		return ErrHookNotAttached
	}

	next := slices.Delete(slices.Clone(cur), i, i+1)
	m.hooks.Store(&next)

	return nil
}

// Hooks returns the number of attached hooks.
func (m *Memory) Hooks() int {
	return len(*m.hooks.Load())
}

// Send delivers a frame travelling away from the channel.
func (m *Memory) Send(frame []int16) error {
	return m.deliver(frame, Sent)
}

// Receive delivers a frame arriving at the channel.
func (m *Memory) Receive(frame []int16) error {
	return m.deliver(frame, Received)
}

func (m *Memory) deliver(frame []int16, dir FrameDirection) error {
	m.frameMu.Lock()
	defer m.frameMu.Unlock()

	hooks := *m.hooks.Load()
	if hooks == nil {
		return ErrHungUp
	}

	for _, h := range hooks {
		h.ProcessFrame(frame, dir, StatusRunning)
	}

	return nil
}

// Hangup tears the channel down: every hook sees StatusShutdown and is
// detached, then the destructors of all remaining datastores run. Later calls
// are no-ops.
func (m *Memory) Hangup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hungUp {
		return
	}

	m.hungUp = true

	var none []AudioHook

	m.frameMu.Lock()
	hooks := *m.hooks.Swap(&none)
	for _, h := range hooks {
		h.ProcessFrame(nil, Sent, StatusShutdown)
	}
	m.frameMu.Unlock()

	for key, d := range m.data {
		delete(m.data, key)

		if d.destroy != nil {
			d.destroy()
		}
	}
}

// HungUp reports whether Hangup has run.
func (m *Memory) HungUp() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.hungUp
}

var _ Channel = (*Memory)(nil)
