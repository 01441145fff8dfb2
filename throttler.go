package hooks

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ThrottleState is the state of a Throttler.
type ThrottleState int

const (
	// Idle means the next call runs immediately.
	Idle ThrottleState = iota

	// Cooling means a call ran less than limit ago; calls are dropped.
	Cooling
)

func (s ThrottleState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Cooling:
		return "cooling"
	default:
		return "unknown"
	}
}

// Throttler runs at most one call per limit window. The first call of a window
// runs immediately and opens the window; calls made while it is open are
// dropped. Unlike Debouncer, the call that runs is always the first of the
// window, never the last.
//
// All methods are safe for concurrent use.
type Throttler struct {
	limit time.Duration
	clock Clock
	log   zerolog.Logger

	mux   sync.Mutex
	state ThrottleState
	timer Timer
	gen   uint64
}

// NewThrottler returns an Idle Throttler with the given window length.
func NewThrottler(limit time.Duration, opts ...Option) *Throttler {
	o := newOptions(opts...)

	return &Throttler{
		limit: limit,
		clock: o.clock,
		log:   o.logger.With().Str("hook", "throttle").Logger(),
	}
}

// Throttle runs f on the calling goroutine and opens a cooldown window if the
// Throttler is Idle, reporting true. While Cooling it does nothing and reports
// false. A nil f still opens the window.
func (t *Throttler) Throttle(f func()) bool {
	t.mux.Lock()
	if t.state == Cooling {
		t.mux.Unlock()
		t.log.Debug().Msg("dropped")

		return false
	}

	t.state = Cooling
	t.gen++
	gen := t.gen
	limit := t.limit
	t.timer = t.clock.AfterFunc(limit, func() {
		t.expire(gen)
	})
	t.mux.Unlock()

	t.log.Debug().Dur("limit", limit).Msg("fired")
	if f != nil {
		f()
	}

	return true
}

// SetLimit changes the window length used by later calls. An open window
// keeps the length it was opened with.
func (t *Throttler) SetLimit(limit time.Duration) {
	t.mux.Lock()
	defer t.mux.Unlock()

	t.limit = limit
}

// Reset cancels the cooldown timer and forces the Throttler back to Idle.
func (t *Throttler) Reset() {
	t.mux.Lock()
	defer t.mux.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
		t.log.Debug().Msg("reset")
	}
	t.state = Idle
	t.gen++
}

// State returns the current state.
func (t *Throttler) State() ThrottleState {
	t.mux.Lock()
	defer t.mux.Unlock()

	return t.state
}

func (t *Throttler) expire(gen uint64) {
	t.mux.Lock()
	defer t.mux.Unlock()

	if gen != t.gen {
		return
	}
	t.state = Idle
	t.timer = nil
	t.log.Debug().Msg("window closed")
}
