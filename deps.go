package hooks

import (
	"math"
	"reflect"
)

// DepsMode is how an effect reacts to re-renders.
type DepsMode int

const (
	// DepsAlways treats every render as a change. It is the mode of an absent
	// dependency list.
	DepsAlways DepsMode = iota

	// DepsOnce evaluates the effect on the first render only. It is the mode
	// of an empty dependency list.
	DepsOnce

	// DepsWatch re-evaluates the effect whenever any watched value differs
	// from the one seen on the previous render.
	DepsWatch
)

func (m DepsMode) String() string {
	switch m {
	case DepsAlways:
		return "always"
	case DepsOnce:
		return "once"
	case DepsWatch:
		return "watch"
	default:
		return "unknown"
	}
}

// Deps is the dependency list of an effect. The zero value is Always().
type Deps struct {
	mode   DepsMode
	values []any
}

// Always returns a dependency list under which every render counts as
// changed.
func Always() Deps {
	return Deps{mode: DepsAlways}
}

// Once returns an empty dependency list: the effect runs on the first render
// and its teardown only runs at unmount.
func Once() Deps {
	return Deps{mode: DepsOnce}
}

// On returns a dependency list watching the given values. On() with no values
// is the same as Once().
func On(values ...any) Deps {
	if len(values) == 0 {
		return Once()
	}

	return Deps{mode: DepsWatch, values: values}
}

// Mode returns the reactivity mode of d.
func (d Deps) Mode() DepsMode {
	return d.mode
}

// Values returns the watched values, nil unless the mode is DepsWatch.
func (d Deps) Values() []any {
	return d.values
}

// Changed reports whether an effect last evaluated with prev must be
// evaluated again under d.
func (d Deps) Changed(prev Deps) bool {
	switch d.mode {
	case DepsAlways:
		return true
	case DepsOnce:
		return prev.mode != DepsOnce
	}

	if prev.mode != DepsWatch || len(prev.values) != len(d.values) {
		return true
	}
	for i := range d.values {
		if !sameValue(d.values[i], prev.values[i]) {
			return true
		}
	}

	return false
}

// sameValue compares two dependency entries. Comparable values use ==, maps
// and slices compare by reference, and functions never compare equal since a
// closure has no observable identity.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Func:
		return va.IsNil() && vb.IsNil()
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Float32, reflect.Float64:
		fa, fb := va.Float(), vb.Float()
		return fa == fb || (math.IsNaN(fa) && math.IsNaN(fb))
	}

	return equal(a, b)
}

// equal is a == b, false when the dynamic type turns out not to be
// comparable (a struct holding a slice, for instance).
func equal(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()

	return a == b
}
