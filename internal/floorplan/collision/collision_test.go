package collision

import (
	"testing"

	"floorplan-service/internal/floorplan/geometry"

	"github.com/stretchr/testify/assert"
)

var canvas = geometry.Canvas{Width: 1000, Height: 500}

func body(id string, x, y float64, capacity int) geometry.Body {
	return geometry.Body{ID: id, Position: geometry.Point{X: x, Y: y}, Footprint: geometry.FootprintFor(capacity)}
}

func TestDetectReportsEveryNeighbour(t *testing.T) {
	active := body("a", 50, 50, 4)
	others := []geometry.Body{
		body("c", 53, 52, 2),
		body("b", 46, 50, 6),
		body("far", 10, 10, 4),
		body("a", 50, 50, 4),
	}

	got := Detector{}.Detect(canvas, active, others)
	assert.Equal(t, []string{"b", "c"}, got)
}

func TestDetectSymmetric(t *testing.T) {
	bodies := []geometry.Body{
		body("a", 40, 40, 6),
		body("b", 50, 45, 2),
		body("c", 47, 60, 4),
		body("d", 90, 90, 4),
	}
	d := Detector{}

	for _, a := range bodies {
		for _, id := range d.Detect(canvas, a, bodies) {
			var b geometry.Body
			for _, candidate := range bodies {
				if candidate.ID == id {
					b = candidate
				}
			}
			assert.Contains(t, d.Detect(canvas, b, bodies), a.ID, "%s hits %s but not the reverse", a.ID, id)
		}
	}
}

func TestDetectWellSeparated(t *testing.T) {
	// 120px wide tables, centers 200px apart on x.
	a := body("a", 40, 50, 8)
	b := body("b", 60, 50, 8)

	assert.Empty(t, Detector{}.Detect(canvas, a, []geometry.Body{b}))
}

func TestDetectTouchingAndTolerance(t *testing.T) {
	// 80px squares with centers 80px apart: edges touch.
	a := body("a", 50, 50, 4)
	b := body("b", 58, 50, 4)

	assert.Equal(t, []string{"b"}, Detector{}.Detect(canvas, a, []geometry.Body{b}))
	assert.Empty(t, Detector{Tolerance: 2}.Detect(canvas, a, []geometry.Body{b}))
}

func TestDetectDegenerateCanvas(t *testing.T) {
	a := body("a", 50, 50, 4)
	assert.Nil(t, Detector{}.Detect(geometry.Canvas{}, a, []geometry.Body{body("b", 50, 50, 4)}))
}

func TestPairs(t *testing.T) {
	bodies := []geometry.Body{
		body("b", 50, 50, 4),
		body("a", 52, 50, 4),
		body("z", 90, 90, 2),
		body("c", 50, 55, 2),
	}

	got := Detector{}.Pairs(canvas, bodies)
	assert.Equal(t, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "c"}}, got)
}
