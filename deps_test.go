package hooks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeps_Changed(t *testing.T) {
	slice := []int{1, 2}
	m := map[string]int{"a": 1}
	ptr := new(int)
	fn := func() {}

	tests := []struct {
		name string
		prev Deps
		next Deps
		want bool
	}{
		{name: "always after always", prev: Always(), next: Always(), want: true},
		{name: "zero value is always", prev: Deps{}, next: Deps{}, want: true},
		{name: "once after once", prev: Once(), next: Once(), want: false},
		{name: "empty On is once", prev: Once(), next: On(), want: false},
		{name: "once after watch", prev: On(1), next: Once(), want: true},
		{name: "same ints", prev: On(1, "a"), next: On(1, "a"), want: false},
		{name: "different int", prev: On(1), next: On(2), want: true},
		{name: "different length", prev: On(1), next: On(1, 2), want: true},
		{name: "watch after always", prev: Always(), next: On(1), want: true},
		{name: "int vs int64", prev: On(1), next: On(int64(1)), want: true},
		{name: "nil vs nil", prev: On(nil), next: On(nil), want: false},
		{name: "nil vs value", prev: On(nil), next: On(0), want: true},
		{name: "same pointer", prev: On(ptr), next: On(ptr), want: false},
		{name: "other pointer", prev: On(ptr), next: On(new(int)), want: true},
		{name: "same slice", prev: On(slice), next: On(slice), want: false},
		{name: "copied slice", prev: On(slice), next: On([]int{1, 2}), want: true},
		{name: "resliced", prev: On(slice), next: On(slice[:1]), want: true},
		{name: "same map", prev: On(m), next: On(m), want: false},
		{
			name: "other map",
			prev: On(m),
			next: On(map[string]int{"a": 1}),
			want: true,
		},
		{name: "same func", prev: On(fn), next: On(fn), want: true},
		{name: "NaN", prev: On(math.NaN()), next: On(math.NaN()), want: false},
		{
			name: "struct with slice field",
			prev: On(any(struct{ s []int }{slice})),
			next: On(any(struct{ s []int }{slice})),
			want: true,
		},
		{
			name: "struct",
			prev: On(struct{ a, b int }{1, 2}),
			next: On(struct{ a, b int }{1, 2}),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.next.Changed(tt.prev))
		})
	}
}

func TestDeps_Mode(t *testing.T) {
	assert.Equal(t, DepsAlways, Always().Mode())
	assert.Equal(t, DepsOnce, Once().Mode())
	assert.Equal(t, DepsOnce, On().Mode())
	assert.Equal(t, DepsWatch, On(1).Mode())
	assert.Equal(t, []any{1, "x"}, On(1, "x").Values())
	assert.Nil(t, Always().Values())

	assert.Equal(t, "always", DepsAlways.String())
	assert.Equal(t, "once", DepsOnce.String())
	assert.Equal(t, "watch", DepsWatch.String())
	assert.Equal(t, "unknown", DepsMode(42).String())
}
