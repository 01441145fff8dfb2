package hooks

import (
	"github.com/rs/zerolog"
)

// Option configures a utility or a Component.
type Option func(*options)

type options struct {
	clock  Clock
	logger zerolog.Logger
}

func newOptions(opts ...Option) options {
	o := options{
		clock:  SystemClock,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithClock returns an option that schedules deferred calls on the given
// clock instead of SystemClock. A nil clock is ignored.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger returns an option that sets the logger used for debug tracing of
// timers, subscriptions and effects. By default nothing is logged.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
