package hooks

import (
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent_Lifecycle(t *testing.T) {
	c := NewComponent(func(c *Component) {})

	assert.False(t, c.Mounted())
	assert.True(t, errors.Is(c.Update(), ErrNotMounted))

	require.NoError(t, c.Mount())
	assert.True(t, c.Mounted())
	assert.Equal(t, 1, c.Renders())
	assert.True(t, errors.Is(c.Mount(), ErrMounted))

	require.NoError(t, c.Update())
	assert.Equal(t, 2, c.Renders())

	require.NoError(t, c.Unmount())
	assert.False(t, c.Mounted())
	assert.True(t, errors.Is(c.Unmount(), ErrUnmounted))
	assert.True(t, errors.Is(c.Update(), ErrUnmounted))
	assert.True(t, errors.Is(c.Mount(), ErrUnmounted))
	assert.Equal(t, 2, c.Renders())
}

func TestComponent_UnmountBeforeMount(t *testing.T) {
	rendered := false
	c := NewComponent(func(c *Component) { rendered = true })

	require.NoError(t, c.Unmount())
	assert.True(t, errors.Is(c.Mount(), ErrUnmounted))
	assert.False(t, rendered)
}

func TestComponent_Effect(t *testing.T) {
	tests := []struct {
		name     string
		deps     func(x, y int) Deps
		want     []string
		wantDone []string
	}{
		{
			name: "always",
			deps: func(x, y int) Deps { return Always() },
			want: []string{
				"run 0",
				"teardown 0", "run 1",
				"teardown 1", "run 2",
			},
			wantDone: []string{"teardown 2"},
		},
		{
			name:     "once",
			deps:     func(x, y int) Deps { return Once() },
			want:     []string{"run 0"},
			wantDone: []string{"teardown 0"},
		},
		{
			name: "watch x",
			deps: func(x, y int) Deps { return On(x) },
			// renders: (x=0,y=0) (x=0,y=1) (x=1,y=1)
			want:     []string{"run 0", "teardown 0", "run 2"},
			wantDone: []string{"teardown 2"},
		},
		{
			name:     "watch y",
			deps:     func(x, y int) Deps { return On(y) },
			want:     []string{"run 0", "teardown 0", "run 1"},
			wantDone: []string{"teardown 1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []string
			x, y, render := 0, 0, 0

			c := NewComponent(func(c *Component) {
				n := render
				render++
				c.Effect(func() func() {
					log = append(log, "run "+strconv.Itoa(n))
					return func() {
						log = append(log, "teardown "+strconv.Itoa(n))
					}
				}, tt.deps(x, y))
			})

			require.NoError(t, c.Mount())
			y = 1
			require.NoError(t, c.Update())
			x = 1
			require.NoError(t, c.Update())
			assert.Equal(t, tt.want, log)

			log = nil
			require.NoError(t, c.Unmount())
			assert.Equal(t, tt.wantDone, log)
		})
	}
}

func TestComponent_EffectOrder(t *testing.T) {
	var log []string
	c := NewComponent(func(c *Component) {
		for _, name := range []string{"a", "b"} {
			name := name
			c.Effect(func() func() {
				log = append(log, "run "+name)
				return func() { log = append(log, "teardown "+name) }
			}, Always())
		}
	})

	require.NoError(t, c.Mount())
	log = nil
	require.NoError(t, c.Update())

	assert.Equal(t, []string{
		"teardown a", "teardown b",
		"run a", "run b",
	}, log)
}

func TestComponent_NilTeardown(t *testing.T) {
	runs := 0
	c := NewComponent(func(c *Component) {
		c.Effect(func() func() {
			runs++
			return nil
		}, Always())
	})

	require.NoError(t, c.Mount())
	require.NoError(t, c.Update())
	require.NoError(t, c.Unmount())
	assert.Equal(t, 2, runs)
}

func TestComponent_HookOrderPanics(t *testing.T) {
	extra := false
	c := NewComponent(func(c *Component) {
		UseRef(c, 0)
		if extra {
			UseRef(c, 1)
		}
	})

	require.NoError(t, c.Mount())
	extra = true
	assert.Panics(t, func() { _ = c.Update() })
}

func TestUseState(t *testing.T) {
	var set func(int)
	var seen []int

	c := NewComponent(func(c *Component) {
		var n int
		n, set = UseState(c, 10)
		seen = append(seen, n)
	})
	require.NoError(t, c.Mount())

	set(11)
	set(11)
	set(12)
	assert.Equal(t, []int{10, 11, 12}, seen)

	require.NoError(t, c.Unmount())
	set(13)
	assert.Equal(t, []int{10, 11, 12}, seen)
}

func TestUseState_SetDuringRender(t *testing.T) {
	var seen []int

	c := NewComponent(func(c *Component) {
		n, set := UseState(c, 0)
		seen = append(seen, n)
		if n < 3 {
			set(n + 1)
		}
	})
	require.NoError(t, c.Mount())

	assert.Equal(t, []int{0, 1, 2, 3}, seen)
	assert.Equal(t, 4, c.Renders())
}

func TestUseState_SetFromEffect(t *testing.T) {
	var seen []string

	c := NewComponent(func(c *Component) {
		s, set := UseState(c, "loading")
		seen = append(seen, s)
		c.Effect(func() func() {
			set("ready")
			return nil
		}, Once())
	})
	require.NoError(t, c.Mount())

	assert.Equal(t, []string{"loading", "ready"}, seen)
}

func TestUseRef(t *testing.T) {
	var refs []*Ref[int]

	c := NewComponent(func(c *Component) {
		r := UseRef(c, 5)
		r.Current++
		refs = append(refs, r)
	})
	require.NoError(t, c.Mount())
	require.NoError(t, c.Update())

	require.Len(t, refs, 2)
	assert.Same(t, refs[0], refs[1])
	assert.Equal(t, 7, refs[1].Current)
}
