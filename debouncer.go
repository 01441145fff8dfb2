package hooks

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Debouncer delays a call until delay has passed without another call. Each
// call cancels the pending one, so only the last call of a burst runs, delay
// after the burst ends.
//
// All methods are safe for concurrent use. The debounced function runs on the
// clock's goroutine, never while the Debouncer's lock is held.
type Debouncer struct {
	delay time.Duration
	clock Clock
	log   zerolog.Logger

	mux   sync.Mutex
	fn    func()
	timer Timer
	gen   uint64
}

// NewDebouncer returns a Debouncer with the given delay. Delay is handed to
// the clock as is, so a zero or negative delay fires as soon as the clock
// gets to it.
func NewDebouncer(delay time.Duration, opts ...Option) *Debouncer {
	o := newOptions(opts...)

	return &Debouncer{
		delay: delay,
		clock: o.clock,
		log:   o.logger.With().Str("hook", "debounce").Logger(),
	}
}

// Debounce cancels any pending call and schedules f to run after the delay.
// A nil f only cancels.
func (d *Debouncer) Debounce(f func()) {
	d.mux.Lock()
	defer d.mux.Unlock()

	d.clear()
	if f == nil {
		return
	}

	d.fn = f
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.fire(gen)
	})
	d.log.Debug().Dur("delay", d.delay).Msg("scheduled")
}

// SetDelay changes the delay used by later calls. A call already pending
// keeps the delay it was scheduled with.
func (d *Debouncer) SetDelay(delay time.Duration) {
	d.mux.Lock()
	defer d.mux.Unlock()

	d.delay = delay
}

// Cancel discards the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mux.Lock()
	defer d.mux.Unlock()

	if d.timer != nil {
		d.log.Debug().Msg("cancelled")
	}
	d.clear()
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mux.Lock()
	defer d.mux.Unlock()

	return d.timer != nil
}

// fire is called by the timer of generation gen. A timer that lost a race
// against Cancel or a newer Debounce is ignored.
func (d *Debouncer) fire(gen uint64) {
	d.mux.Lock()
	if gen != d.gen || d.timer == nil {
		d.mux.Unlock()
		return
	}
	f := d.fn
	d.fn = nil
	d.timer = nil
	d.gen++
	d.mux.Unlock()

	d.log.Debug().Msg("fired")
	f()
}

// clear stops and forgets the pending timer. It should only be called while
// the mutex is already locked.
func (d *Debouncer) clear() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.fn = nil
	d.gen++
}
