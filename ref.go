package hooks

// Ref is a mutable handle that survives re-renders without causing them. A
// host binds Current when the thing it refers to exists, and clears it when
// it goes away.
//
// Ref is not synchronized; it is meant to be read and written from the
// goroutine driving the host.
type Ref[T any] struct {
	Current T
}

// NewRef returns a Ref holding v.
func NewRef[T any](v T) *Ref[T] {
	return &Ref[T]{Current: v}
}

// UseRef returns the same *Ref on every render of h, holding initial until
// the caller changes it.
func UseRef[T any](h Host, initial T) *Ref[T] {
	return h.Slot(func() any {
		return NewRef(initial)
	}).(*Ref[T])
}
