package channel

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrHungUp is returned by operations on a channel that has hung up.
	ErrHungUp = errors.New("channel: hung up")

	// ErrHookAttached is returned when a hook is attached twice.
	ErrHookAttached = errors.New("channel: hook already attached")

	// ErrHookNotAttached is returned when detaching an unknown hook.
	ErrHookNotAttached = errors.New("channel: hook not attached")

	// ErrDatastoreExists is returned when a datastore key is already taken.
	ErrDatastoreExists = errors.New("channel: datastore already exists")
)

// FrameDirection tags a voice frame with the side of the call it travels.
type FrameDirection int

const (
	// Sent frames leave the channel towards the far end.
	Sent FrameDirection = iota
	// Received frames arrive from the far end.
	Received
)

func (d FrameDirection) String() string {
	switch d {
	case Sent:
		return "sent"
	case Received:
		return "received"
	default:
		return fmt.Sprintf("FrameDirection(%d)", int(d))
	}
}

// HookStatus tells a hook whether the media pipeline is running.
type HookStatus int

const (
	// StatusRunning accompanies every regular voice frame.
	StatusRunning HookStatus = iota
	// StatusShutdown is delivered once when the pipeline is torn down. The
	// frame is nil and must not be touched.
	StatusShutdown
)

// AudioHook sees every voice frame of the channels it is attached to.
// ProcessFrame may modify frame in place. It runs on the media path and must
// not block.
type AudioHook interface {
	ProcessFrame(frame []int16, dir FrameDirection, status HookStatus)
}

// Channel is the part of a call the filters need.
//
// Datastore and hook methods must be called with the channel locked.
type Channel interface {
	sync.Locker

	Name() string

	// Datastore returns the value stored under key.
	Datastore(key string) (any, bool)
	// AddDatastore stores value under key. destroy, if non-nil, runs once
	// when the channel hangs up while the entry is still present.
	AddDatastore(key string, value any, destroy func()) error
	// RemoveDatastore removes key without running its destructor and
	// reports whether it was present.
	RemoveDatastore(key string) bool

	AttachHook(h AudioHook) error
	DetachHook(h AudioHook) error
}
