package hooks

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ClickEvent is a pointer click as seen by the document: the element it hit,
// if any, and where it happened. X and Y are only meaningful when HasPoint is
// set.
type ClickEvent struct {
	Target   *Element
	X, Y     int
	HasPoint bool
}

// Region is something a click can land inside of.
type Region interface {
	Contains(ev ClickEvent) bool
}

// Element is a node of a document tree. An element contains a click when the
// click target is the element itself or one of its descendants.
type Element struct {
	Name string

	parent   *Element
	children []*Element
}

var _ Region = (*Element)(nil)

// NewElement returns a detached element.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Append attaches children to e, detaching them from any previous parent, and
// returns e. It panics with ErrHierarchy, leaving the tree untouched, if a
// child is nil, is e itself or is an ancestor of e.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c == nil || c.Includes(e) {
			panic(errors.Wrapf(ErrHierarchy, "append to %q", e.Name))
		}
	}

	for _, c := range children {
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = e
		e.children = append(e.children, c)
	}

	return e
}

// Remove detaches child from e. It does nothing if child is not a child of e.
func (e *Element) Remove(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil

			return
		}
	}
}

// Parent returns the parent of e, or nil when e is detached or the root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns a copy of the children of e in order.
func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

// Includes reports whether n is e or a descendant of e.
func (e *Element) Includes(n *Element) bool {
	if e == nil {
		return false
	}
	for ; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}

	return false
}

// Contains implements Region. A nil element contains nothing.
func (e *Element) Contains(ev ClickEvent) bool {
	return e.Includes(ev.Target)
}

// Rect is a rectangular region in cell or pixel coordinates. It contains a
// click whose point falls inside it; the right and bottom edges are
// exclusive. A click without a point is never inside a Rect.
type Rect struct {
	X, Y          int
	Width, Height int
}

var _ Region = Rect{}

// Contains implements Region.
func (r Rect) Contains(ev ClickEvent) bool {
	return ev.HasPoint &&
		ev.X >= r.X && ev.X < r.X+r.Width &&
		ev.Y >= r.Y && ev.Y < r.Y+r.Height
}

// EventSource is a document-level source of click events.
type EventSource interface {
	// Subscribe adds fn as a listener and returns a function removing it.
	Subscribe(fn func(ClickEvent)) (unsubscribe func())
}

// Document is an in-process EventSource: listeners subscribe to it and
// Dispatch delivers an event to each of them, in subscription order.
type Document struct {
	Root *Element

	mux       sync.Mutex
	nextID    uint64
	listeners []listener
}

type listener struct {
	id uint64
	fn func(ClickEvent)
}

var _ EventSource = (*Document)(nil)

// NewDocument returns a document with an empty root element.
func NewDocument() *Document {
	return &Document{Root: NewElement("document")}
}

// Subscribe implements EventSource. The returned function is safe to call
// more than once.
func (d *Document) Subscribe(fn func(ClickEvent)) func() {
	d.mux.Lock()
	defer d.mux.Unlock()

	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, listener{id: id, fn: fn})

	return func() {
		d.mux.Lock()
		defer d.mux.Unlock()

		for i, l := range d.listeners {
			if l.id == id {
				d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to every listener subscribed when Dispatch is called.
// Listeners run on the calling goroutine without the document lock held.
func (d *Document) Dispatch(ev ClickEvent) {
	d.mux.Lock()
	ls := make([]listener, len(d.listeners))
	copy(ls, d.listeners)
	d.mux.Unlock()

	for _, l := range ls {
		l.fn(ev)
	}
}

// Click dispatches a click on target. A nil target is a click on the document
// root.
func (d *Document) Click(target *Element) {
	if target == nil {
		target = d.Root
	}
	d.Dispatch(ClickEvent{Target: target})
}

// ClickAt dispatches a click at a point, with no target element.
func (d *Document) ClickAt(x, y int) {
	d.Dispatch(ClickEvent{X: x, Y: y, HasPoint: true})
}

// Listeners returns the number of active subscriptions.
func (d *Document) Listeners() int {
	d.mux.Lock()
	defer d.mux.Unlock()

	return len(d.listeners)
}

// OutsideClickWatcher keeps one subscription to an EventSource and calls a
// handler for every click that lands outside all of its tracked regions.
//
// Tracked regions are refs, so a region that is not bound yet, or no longer
// bound, simply never contains a click.
type OutsideClickWatcher struct {
	src EventSource
	log zerolog.Logger

	mux         sync.Mutex
	regions     []*Ref[Region]
	watched     Deps
	handler     func(ClickEvent)
	unsubscribe func()
}

// NewOutsideClickWatcher returns a watcher on src. It does not subscribe
// until Watch is called.
func NewOutsideClickWatcher(
	src EventSource,
	opts ...Option,
) *OutsideClickWatcher {
	o := newOptions(opts...)

	return &OutsideClickWatcher{
		src: src,
		log: o.logger.With().Str("hook", "click-outside").Logger(),
	}
}

// Watch is called once per render with the regions to track and the handler
// to call on outside clicks. The previous subscription is replaced when the
// set of region refs differs by identity from the previous call; the handler
// used is always the one passed last.
func (w *OutsideClickWatcher) Watch(
	regions []*Ref[Region],
	onOutside func(ClickEvent),
) {
	w.SetHandler(onOutside)

	w.mux.Lock()
	defer w.mux.Unlock()

	deps := regionDeps(regions)
	if w.unsubscribe != nil && !deps.Changed(w.watched) {
		return
	}
	w.subscribeLocked(regions, deps)
}

// SetHandler replaces the handler without touching the subscription.
func (w *OutsideClickWatcher) SetHandler(onOutside func(ClickEvent)) {
	w.mux.Lock()
	defer w.mux.Unlock()

	w.handler = onOutside
}

// Subscribed reports whether the watcher currently holds a subscription.
func (w *OutsideClickWatcher) Subscribed() bool {
	w.mux.Lock()
	defer w.mux.Unlock()

	return w.unsubscribe != nil
}

// Close removes the subscription. It is safe to call more than once.
func (w *OutsideClickWatcher) Close() {
	w.mux.Lock()
	defer w.mux.Unlock()

	w.unsubscribeLocked()
}

func (w *OutsideClickWatcher) subscribe(regions []*Ref[Region]) {
	w.mux.Lock()
	defer w.mux.Unlock()

	w.subscribeLocked(regions, regionDeps(regions))
}

// subscribeLocked drops the current subscription before installing the new
// one. It should only be called while the mutex is already locked.
func (w *OutsideClickWatcher) subscribeLocked(
	regions []*Ref[Region],
	deps Deps,
) {
	w.unsubscribeLocked()

	w.regions = append([]*Ref[Region](nil), regions...)
	w.watched = deps
	w.unsubscribe = w.src.Subscribe(w.listen)
	w.log.Debug().Int("regions", len(regions)).Msg("subscribed")
}

func (w *OutsideClickWatcher) unsubscribeLocked() {
	if w.unsubscribe == nil {
		return
	}
	w.unsubscribe()
	w.unsubscribe = nil
	w.log.Debug().Msg("unsubscribed")
}

func (w *OutsideClickWatcher) listen(ev ClickEvent) {
	w.mux.Lock()
	regions := w.regions
	handler := w.handler
	w.mux.Unlock()

	for _, r := range regions {
		if r == nil || r.Current == nil {
			continue
		}
		if r.Current.Contains(ev) {
			return
		}
	}

	if handler != nil {
		w.log.Debug().Msg("outside click")
		handler(ev)
	}
}

func regionDeps(regions []*Ref[Region]) Deps {
	values := make([]any, len(regions))
	for i, r := range regions {
		values[i] = r
	}

	return On(values...)
}

// UseClickOutside calls onOutside for every click on src that lands outside
// all of regions. The subscription is made after mount, replaced when the set
// of region refs changes, and removed when h is unmounted.
func UseClickOutside(
	h Host,
	src EventSource,
	regions []*Ref[Region],
	onOutside func(ClickEvent),
) {
	w := h.Slot(func() any {
		return NewOutsideClickWatcher(src, hostOptions(h, nil)...)
	}).(*OutsideClickWatcher)

	w.SetHandler(onOutside)

	h.Effect(func() func() {
		w.subscribe(regions)
		return w.Close
	}, regionDeps(regions))
}
