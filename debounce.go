// Package hooks provides small lifecycle-bound behaviors for component based
// UIs: detecting clicks outside a set of regions, debouncing and throttling
// callbacks, and running an effect on updates only.
//
// Each behavior is a plain state machine (OutsideClickWatcher, Debouncer,
// Throttler, UpdateEffect) that can be used on its own, plus a Use* function
// that binds it to a Host: per-instance state lives in a host slot, and
// teardown is registered as an effect keyed on a dependency list (see Deps).
// Component is a minimal Host for driving them outside of a UI runtime.
package hooks

import (
	"time"
)

// UseDebounce returns a debounced version of callback bound to h. Calling the
// returned function cancels any pending call and schedules callback with the
// given argument after delay; only the argument of the last call in a burst is
// used.
//
// The pending call is also cancelled whenever deps change, and when h is
// unmounted. With Always(), any re-render of h drops the pending call. The
// delay of the latest render applies to calls made after it.
func UseDebounce[T any](
	h Host,
	callback func(T),
	delay time.Duration,
	deps Deps,
	opts ...Option,
) func(T) {
	d := h.Slot(func() any {
		return NewDebouncer(delay, hostOptions(h, opts)...)
	}).(*Debouncer)
	d.SetDelay(delay)

	h.Effect(func() func() {
		return d.Cancel
	}, deps)

	return func(arg T) {
		if callback == nil {
			return
		}
		d.Debounce(func() {
			callback(arg)
		})
	}
}
