package hooks

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// EffectFunc is the body of an effect. The returned teardown, if non-nil, is
// called before the effect runs again and when the host is unmounted.
type EffectFunc func() (teardown func())

// Host is the lifecycle a utility attaches to. Any UI runtime that can run
// effects against a dependency list, keep per-instance state across renders
// and schedule a re-render can drive the Use* functions of this package.
type Host interface {
	// Effect registers run for the current render. The host evaluates it
	// after the render when deps changed since the previous render, calling
	// the previous teardown first.
	Effect(run EffectFunc, deps Deps)

	// Slot returns the per-instance value for the current hook call,
	// creating it with init on the first render. Slots are keyed by call
	// order.
	Slot(init func() any) any

	// Invalidate schedules a re-render.
	Invalidate()
}

type phase int

const (
	phaseCreated phase = iota
	phaseMounted
	phaseUnmounted
)

type effect struct {
	deps     Deps
	run      EffectFunc
	teardown func()
}

// Component is a minimal Host: a render function re-run on Update or when a
// state setter changes a value, with effects committed after each render.
//
// Hooks must be called in the same order on every render. Renders are
// serialized; an update requested while a render is in progress is folded
// into one more render by the goroutine already rendering.
type Component struct {
	render func(c *Component)
	opts   []Option
	log    zerolog.Logger

	mux       sync.Mutex
	phase     phase
	rendering bool
	dirty     bool

	// renderMux is held while rendering, committing or tearing down, and
	// guards everything below it.
	renderMux sync.Mutex
	renders   int
	slots     []any
	slotIdx   int
	effects   []*effect
	effectIdx int
}

var _ Host = (*Component)(nil)

// NewComponent returns an unmounted component that renders with render. The
// options are also inherited by every utility created through the Use*
// functions of this component.
func NewComponent(render func(c *Component), opts ...Option) *Component {
	o := newOptions(opts...)

	return &Component{
		render: render,
		opts:   opts,
		log:    o.logger,
	}
}

// Mount performs the first render and runs every registered effect.
func (c *Component) Mount() error {
	c.mux.Lock()
	switch c.phase {
	case phaseMounted:
		c.mux.Unlock()
		return ErrMounted
	case phaseUnmounted:
		c.mux.Unlock()
		return ErrUnmounted
	}
	c.phase = phaseMounted
	c.mux.Unlock()

	c.log.Debug().Msg("mount")
	c.Invalidate()

	return nil
}

// Update re-renders the component and commits effects whose dependencies
// changed.
func (c *Component) Update() error {
	c.mux.Lock()
	p := c.phase
	c.mux.Unlock()

	switch p {
	case phaseCreated:
		return ErrNotMounted
	case phaseUnmounted:
		return ErrUnmounted
	}

	c.Invalidate()

	return nil
}

// Unmount runs every outstanding effect teardown in registration order. It
// must not be called from inside render or an effect.
func (c *Component) Unmount() error {
	c.mux.Lock()
	if c.phase == phaseUnmounted {
		c.mux.Unlock()
		return ErrUnmounted
	}
	prev := c.phase
	c.phase = phaseUnmounted
	c.mux.Unlock()

	if prev == phaseCreated {
		return nil
	}

	c.renderMux.Lock()
	defer c.renderMux.Unlock()

	c.log.Debug().Int("effects", len(c.effects)).Msg("unmount")
	for i, e := range c.effects {
		e.run = nil
		if td := e.teardown; td != nil {
			e.teardown = nil
			c.log.Debug().Int("effect", i).Msg("effect teardown")
			td()
		}
	}

	return nil
}

// Mounted reports whether the component is currently mounted.
func (c *Component) Mounted() bool {
	c.mux.Lock()
	defer c.mux.Unlock()

	return c.phase == phaseMounted
}

// Renders returns how many renders have completed.
func (c *Component) Renders() int {
	c.renderMux.Lock()
	defer c.renderMux.Unlock()

	return c.renders
}

// Invalidate schedules a re-render. When no render is in progress, it renders
// on the calling goroutine before returning. It is a no-op unless the
// component is mounted.
func (c *Component) Invalidate() {
	c.mux.Lock()
	if c.phase != phaseMounted {
		c.mux.Unlock()
		return
	}
	c.dirty = true
	if c.rendering {
		c.mux.Unlock()
		return
	}
	c.rendering = true
	c.mux.Unlock()

	c.renderLoop()
}

func (c *Component) renderLoop() {
	c.renderMux.Lock()
	done := false
	defer func() {
		// A panicking render must not leave the component stuck rendering.
		if !done {
			c.mux.Lock()
			c.dirty = false
			c.rendering = false
			c.mux.Unlock()
		}
		c.renderMux.Unlock()
	}()

	for {
		c.mux.Lock()
		if !c.dirty || c.phase != phaseMounted {
			c.dirty = false
			c.rendering = false
			done = true
			c.mux.Unlock()

			return
		}
		c.dirty = false
		c.mux.Unlock()

		c.renderOnce()
	}
}

func (c *Component) renderOnce() {
	c.slotIdx = 0
	c.effectIdx = 0

	c.render(c)

	if c.renders > 0 &&
		(c.slotIdx != len(c.slots) || c.effectIdx != len(c.effects)) {
		panic(fmt.Sprintf(
			"hooks: render called %d slots and %d effects, previous render "+
				"called %d and %d",
			c.slotIdx, c.effectIdx, len(c.slots), len(c.effects),
		))
	}
	c.renders++
	c.log.Debug().Int("render", c.renders).Msg("rendered")

	c.commit()
}

// commit runs the teardowns of every effect due to run, then the effect
// bodies, both in registration order.
func (c *Component) commit() {
	for i, e := range c.effects {
		if e.run == nil || e.teardown == nil {
			continue
		}
		td := e.teardown
		e.teardown = nil
		c.log.Debug().Int("effect", i).Msg("effect teardown")
		td()
	}

	for i, e := range c.effects {
		if e.run == nil {
			continue
		}
		run := e.run
		e.run = nil
		c.log.Debug().Int("effect", i).Stringer("deps", e.deps.mode).
			Msg("effect run")
		e.teardown = run()
	}
}

// Effect implements Host.
func (c *Component) Effect(run EffectFunc, deps Deps) {
	i := c.effectIdx
	c.effectIdx++

	if i == len(c.effects) {
		if c.renders > 0 {
			panic("hooks: effect registered that was not present in the " +
				"previous render")
		}
		c.effects = append(c.effects, &effect{deps: deps, run: run})

		return
	}

	e := c.effects[i]
	if deps.Changed(e.deps) {
		e.deps = deps
		e.run = run
	}
}

// Slot implements Host.
func (c *Component) Slot(init func() any) any {
	i := c.slotIdx
	c.slotIdx++

	if i == len(c.slots) {
		if c.renders > 0 {
			panic("hooks: slot requested that was not present in the " +
				"previous render")
		}
		c.slots = append(c.slots, init())
	}

	return c.slots[i]
}

// hostOptions returns the options a Use* function should start from.
func hostOptions(h Host, opts []Option) []Option {
	c, ok := h.(*Component)
	if !ok || len(c.opts) == 0 {
		return opts
	}

	all := make([]Option, 0, len(c.opts)+len(opts))
	all = append(all, c.opts...)

	return append(all, opts...)
}

type stateSlot[T any] struct {
	mux   sync.Mutex
	value T
	set   func(T)
}

// UseState returns the current value of a piece of component state and a
// setter. Calling the setter with a value different from the current one
// re-renders the host.
func UseState[T any](h Host, initial T) (T, func(T)) {
	s := h.Slot(func() any {
		s := &stateSlot[T]{value: initial}
		s.set = func(v T) {
			s.mux.Lock()
			if sameValue(s.value, v) {
				s.mux.Unlock()
				return
			}
			s.value = v
			s.mux.Unlock()

			h.Invalidate()
		}

		return s
	}).(*stateSlot[T])

	s.mux.Lock()
	defer s.mux.Unlock()

	return s.value, s.set
}
