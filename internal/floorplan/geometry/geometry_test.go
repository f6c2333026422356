package geometry

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		capacity int
		want     Shape
	}{
		{capacity: 0, want: ShapeRound},
		{capacity: 1, want: ShapeRound},
		{capacity: 2, want: ShapeRound},
		{capacity: 3, want: ShapeSquare},
		{capacity: 4, want: ShapeSquare},
		{capacity: 5, want: ShapeRectangle},
		{capacity: 12, want: ShapeRectangle},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.capacity), "capacity %d", tt.capacity)
		assert.Equal(t, tt.want, FootprintFor(tt.capacity).Shape)
	}
}

func TestFootprintBands(t *testing.T) {
	small, medium, large := FootprintFor(2), FootprintFor(4), FootprintFor(8)

	assert.Less(t, small.Width, medium.Width)
	assert.Less(t, medium.Width, large.Width)
	assert.Equal(t, small.Width, small.Height)
	assert.Greater(t, large.Width, large.Height)
}

func TestShapeJSON(t *testing.T) {
	data, err := json.Marshal(FootprintFor(6))
	require.NoError(t, err)
	assert.JSONEq(t, `{"width":120,"height":80,"shape":"rectangle"}`, string(data))
}

func TestClamp(t *testing.T) {
	tests := []struct {
		in   Point
		want Point
	}{
		{in: Point{X: -5, Y: 50}, want: Point{X: 0, Y: 50}},
		{in: Point{X: 120, Y: 101}, want: Point{X: 100, Y: 100}},
		{in: Point{X: math.NaN(), Y: 3}, want: Point{X: 0, Y: 3}},
		{in: Point{X: 42.5, Y: 0}, want: Point{X: 42.5, Y: 0}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Clamp())
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, Point{X: 33.33, Y: 66.67}, Point{X: 33.3333, Y: 66.6666}.Round2())
}

func TestCanvasConversions(t *testing.T) {
	c := Canvas{Width: 800, Height: 400}
	x, y := c.ToPixels(Point{X: 25, Y: 50})

	assert.Equal(t, 200.0, x)
	assert.Equal(t, 200.0, y)
	assert.Equal(t, Point{X: 25, Y: 50}, c.ToPercent(x, y))
	assert.False(t, c.Degenerate())
	assert.True(t, Canvas{Width: 0, Height: 400}.Degenerate())
}

func TestBoxAtAndOverlap(t *testing.T) {
	c := Canvas{Width: 1000, Height: 1000}
	a := BoxAt(c, Point{X: 50, Y: 50}, FootprintFor(4))

	assert.Equal(t, Rect{Left: 460, Top: 460, Right: 540, Bottom: 540}, a)
	assert.Equal(t, 80.0, a.Width())

	touching := BoxAt(c, Point{X: 58, Y: 50}, FootprintFor(4))
	assert.True(t, a.Overlaps(touching))
	assert.False(t, a.Inset(1).Overlaps(touching.Inset(1)))
}

func TestAxisAccessors(t *testing.T) {
	p := Point{X: 1, Y: 2}

	assert.Equal(t, 1.0, AxisX.Get(p))
	assert.Equal(t, 2.0, AxisY.Get(p))
	assert.Equal(t, Point{X: 9, Y: 2}, AxisX.Set(p, 9))
	assert.Equal(t, Point{X: 1, Y: 9}, AxisY.Set(p, 9))
}

func TestBodyOf(t *testing.T) {
	pos := Point{X: 3, Y: 4}
	b := BodyOf(Placeable{ID: "x", Capacity: 5, Position: &pos})

	assert.Equal(t, "x", b.ID)
	assert.Equal(t, pos, b.Position)
	assert.Equal(t, ShapeRectangle, b.Footprint.Shape)
	assert.Equal(t, Point{}, BodyOf(Placeable{ID: "y"}).Position)
}
