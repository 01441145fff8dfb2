package hooks

import (
	"sync"

	"github.com/rs/zerolog"
)

// UpdateState is the state of an UpdateEffect.
type UpdateState int

const (
	// PendingFirstRun is the state before the first evaluation.
	PendingFirstRun UpdateState = iota

	// Active is every state after it. An UpdateEffect never leaves Active.
	Active
)

func (s UpdateState) String() string {
	switch s {
	case PendingFirstRun:
		return "pending-first-run"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// UpdateEffect is an effect body that skips its first evaluation, the one
// triggered by mount, and runs on every later one.
type UpdateEffect struct {
	log zerolog.Logger

	mux   sync.Mutex
	state UpdateState
}

// NewUpdateEffect returns an UpdateEffect in PendingFirstRun.
func NewUpdateEffect(opts ...Option) *UpdateEffect {
	o := newOptions(opts...)

	return &UpdateEffect{
		log: o.logger.With().Str("hook", "update").Logger(),
	}
}

// Run evaluates the effect. The first call only moves to Active and returns
// nil. Later calls invoke callback, if any, and return cleanup as the
// teardown for the host to call before the next evaluation or at unmount.
func (u *UpdateEffect) Run(callback, cleanup func()) (teardown func()) {
	u.mux.Lock()
	if u.state == PendingFirstRun {
		u.state = Active
		u.mux.Unlock()
		u.log.Debug().Msg("first run skipped")

		return nil
	}
	u.mux.Unlock()

	u.log.Debug().Msg("run")
	if callback != nil {
		callback()
	}

	return cleanup
}

// State returns the current state.
func (u *UpdateEffect) State() UpdateState {
	u.mux.Lock()
	defer u.mux.Unlock()

	return u.state
}

// UseUpdate runs callback whenever deps change on h, except for the mount. The
// cleanup of a run is called before the next run and when h is unmounted.
// Either function may be nil. With Once(), neither ever runs.
func UseUpdate(h Host, callback, cleanup func(), deps Deps) {
	u := h.Slot(func() any {
		return NewUpdateEffect(hostOptions(h, nil)...)
	}).(*UpdateEffect)

	h.Effect(func() func() {
		return u.Run(callback, cleanup)
	}, deps)
}
