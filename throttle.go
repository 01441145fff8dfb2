package hooks

import (
	"time"
)

// UseThrottle returns a throttled version of callback bound to h. The first
// call runs callback immediately and opens a window of length limit during
// which further calls are dropped.
//
// When deps change, and when h is unmounted, the window is closed and the
// throttle is back to Idle. Once() keeps the window across re-renders. The
// limit of the latest render applies to windows opened after it.
func UseThrottle[T any](
	h Host,
	callback func(T),
	limit time.Duration,
	deps Deps,
	opts ...Option,
) func(T) {
	t := h.Slot(func() any {
		return NewThrottler(limit, hostOptions(h, opts)...)
	}).(*Throttler)
	t.SetLimit(limit)

	h.Effect(func() func() {
		return t.Reset
	}, deps)

	return func(arg T) {
		t.Throttle(func() {
			if callback != nil {
				callback(arg)
			}
		})
	}
}
