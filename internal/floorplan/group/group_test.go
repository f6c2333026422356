package group

import (
	"testing"

	apperrors "floorplan-service/internal/common/errors"
	"floorplan-service/internal/floorplan/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, x, y float64) Item {
	return Item{ID: id, Position: geometry.Point{X: x, Y: y}}
}

func byID(items []Item) map[string]geometry.Point {
	out := make(map[string]geometry.Point, len(items))
	for _, it := range items {
		out[it.ID] = it.Position
	}
	return out
}

func TestAlign(t *testing.T) {
	sel := []Item{item("A", 10, 5), item("B", 30, 8), item("C", 20, 2)}

	tests := []struct {
		mode AlignMode
		want map[string]geometry.Point
	}{
		{mode: AlignLeft, want: map[string]geometry.Point{"A": {X: 10, Y: 5}, "B": {X: 10, Y: 8}, "C": {X: 10, Y: 2}}},
		{mode: AlignCenter, want: map[string]geometry.Point{"A": {X: 20, Y: 5}, "B": {X: 20, Y: 8}, "C": {X: 20, Y: 2}}},
		{mode: AlignRight, want: map[string]geometry.Point{"A": {X: 30, Y: 5}, "B": {X: 30, Y: 8}, "C": {X: 30, Y: 2}}},
		{mode: AlignTop, want: map[string]geometry.Point{"A": {X: 10, Y: 2}, "B": {X: 30, Y: 2}, "C": {X: 20, Y: 2}}},
		{mode: AlignMiddle, want: map[string]geometry.Point{"A": {X: 10, Y: 5}, "B": {X: 30, Y: 5}, "C": {X: 20, Y: 5}}},
		{mode: AlignBottom, want: map[string]geometry.Point{"A": {X: 10, Y: 8}, "B": {X: 30, Y: 8}, "C": {X: 20, Y: 8}}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got, err := Align(tt.mode, sel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, byID(got))
		})
	}
	assert.Equal(t, item("A", 10, 5), sel[0], "input must not be mutated")
}

func TestAlignInsufficientSelection(t *testing.T) {
	_, err := Align(AlignLeft, []Item{item("A", 1, 1)})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInsufficientSelection))
}

func TestAlignUnknownMode(t *testing.T) {
	_, err := Align("diagonal", []Item{item("A", 1, 1), item("B", 2, 2)})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidInput))
}

func TestDistribute(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		in   []Item
		want map[string]geometry.Point
	}{
		{
			name: "AlreadyEven",
			dir:  Horizontal,
			in:   []Item{item("a", 0, 0), item("b", 50, 0), item("c", 100, 0)},
			want: map[string]geometry.Point{"a": {X: 0}, "b": {X: 50}, "c": {X: 100}},
		},
		{
			name: "MovesMiddle",
			dir:  Horizontal,
			in:   []Item{item("a", 0, 0), item("b", 90, 0), item("c", 100, 0)},
			want: map[string]geometry.Point{"a": {X: 0}, "b": {X: 50}, "c": {X: 100}},
		},
		{
			name: "UnsortedInputVertical",
			dir:  Vertical,
			in:   []Item{item("c", 7, 80), item("a", 1, 20), item("d", 3, 21), item("b", 5, 25)},
			want: map[string]geometry.Point{"a": {X: 1, Y: 20}, "d": {X: 3, Y: 40}, "b": {X: 5, Y: 60}, "c": {X: 7, Y: 80}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Distribute(tt.dir, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, byID(got))

			axis := tt.dir.Axis()
			for i := 1; i < len(got); i++ {
				assert.Greater(t, axis.Get(got[i].Position), axis.Get(got[i-1].Position))
			}
		})
	}
}

func TestDistributeInsufficientSelection(t *testing.T) {
	in := []Item{item("a", 0, 0), item("b", 90, 0)}
	_, err := Distribute(Horizontal, in)

	assert.True(t, apperrors.Is(err, apperrors.ErrCodeInsufficientSelection))
	assert.Equal(t, 90.0, in[1].Position.X)
}

func TestParse(t *testing.T) {
	m, err := ParseAlignMode("middle")
	require.NoError(t, err)
	assert.Equal(t, geometry.AxisY, m.Axis())

	d, err := ParseDirection("vertical")
	require.NoError(t, err)
	assert.Equal(t, geometry.AxisY, d.Axis())

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
