package layout

import (
	"fmt"
	"testing"

	"floorplan-service/internal/floorplan/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("t%d", i+1)
	}
	return out
}

func TestDefaultPositionsSingleAtCenter(t *testing.T) {
	got := DefaultPositions([]string{"only"})
	assert.Equal(t, geometry.Point{X: 50, Y: 50}, got["only"])
}

func TestDefaultPositionsEmpty(t *testing.T) {
	assert.Empty(t, DefaultPositions(nil))
}

func TestDefaultPositionsGrid(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want map[string]geometry.Point
	}{
		{
			name: "Two",
			n:    2,
			want: map[string]geometry.Point{
				"t1": {X: 15, Y: 50},
				"t2": {X: 85, Y: 50},
			},
		},
		{
			name: "Four",
			n:    4,
			want: map[string]geometry.Point{
				"t1": {X: 15, Y: 15},
				"t2": {X: 85, Y: 15},
				"t3": {X: 15, Y: 85},
				"t4": {X: 85, Y: 85},
			},
		},
		{
			name: "Five",
			n:    5,
			want: map[string]geometry.Point{
				"t1": {X: 15, Y: 15},
				"t2": {X: 50, Y: 15},
				"t3": {X: 85, Y: 15},
				"t4": {X: 15, Y: 85},
				"t5": {X: 50, Y: 85},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultPositions(ids(tt.n)))
		})
	}
}

func TestDefaultPositionsDeterministic(t *testing.T) {
	in := ids(11)
	first := DefaultPositions(in)
	second := DefaultPositions(in)

	assert.Equal(t, first, second)
	for _, p := range first {
		assert.GreaterOrEqual(t, p.X, 15.0)
		assert.LessOrEqual(t, p.X, 85.0)
		assert.GreaterOrEqual(t, p.Y, 15.0)
		assert.LessOrEqual(t, p.Y, 85.0)
	}
}

func TestResolveFillsOnlyMissing(t *testing.T) {
	saved := geometry.Point{X: 120, Y: 20}
	in := []geometry.Placeable{
		{ID: "a", Capacity: 2, Position: &saved},
		{ID: "b", Capacity: 4},
	}

	out := Resolve(in)
	require.Len(t, out, 2)

	assert.Equal(t, geometry.Point{X: 100, Y: 20}, *out[0].Position)
	assert.Equal(t, geometry.Point{X: 50, Y: 50}, *out[1].Position)
	assert.Nil(t, in[1].Position, "input must not be mutated")
	assert.Equal(t, 120.0, saved.X)
}
