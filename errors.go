package hooks

import (
	"github.com/pkg/errors"
)

var (
	// ErrMounted is returned by Mount when the component is already mounted.
	ErrMounted = errors.New("hooks: component already mounted")

	// ErrNotMounted is returned by Update before Mount has been called.
	ErrNotMounted = errors.New("hooks: component not mounted")

	// ErrUnmounted is returned by any lifecycle call after Unmount.
	ErrUnmounted = errors.New("hooks: component unmounted")

	// ErrHierarchy is the panic value of Element.Append when the append
	// would make an element its own ancestor.
	ErrHierarchy = errors.New("hooks: element would contain itself")
)
