package hooks

import (
	"time"
)

// Timer is a pending deferred call that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock is the deferred-execution primitive used by Debouncer and Throttler.
// Hosts running their own event loop, and tests, can supply their own.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// SystemClock is the default Clock, backed by time.AfterFunc.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (systemClock) Now() time.Time {
	return time.Now()
}
