package render

import (
	"strings"
	"testing"

	"floorplan-service/internal/floorplan/geometry"
	"floorplan-service/internal/floorplan/snap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func body(id string, capacity int, x, y float64) geometry.Body {
	return geometry.Body{ID: id, Position: geometry.Point{X: x, Y: y}, Footprint: geometry.FootprintFor(capacity)}
}

func TestRenderShapes(t *testing.T) {
	scene := &Scene{
		Canvas: geometry.Canvas{Width: 1000, Height: 800},
		Tables: []Table{
			{Body: body("b", 6, 50, 50), Label: "12"},
			{Body: body("a", 2, 10, 10), Label: "<1>"},
		},
	}

	svg, err := NewRenderer().Render(scene)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, svg, `viewBox="0 0 1000 800"`)
	assert.Contains(t, svg, `<circle cx="100" cy="80" r="30" fill="#f4efe6"`)
	assert.Contains(t, svg, `<rect x="440" y="360" width="120" height="80"`)
	assert.Contains(t, svg, `&lt;1&gt;</text>`)
	assert.Less(t, strings.Index(svg, `table-a`), strings.Index(svg, `table-b`))
	assert.True(t, strings.HasSuffix(svg, `</svg>`))
}

func TestRenderHighlightsOverlaps(t *testing.T) {
	scene := &Scene{
		Canvas:      geometry.Canvas{Width: 500, Height: 500},
		Tables:      []Table{{Body: body("a", 4, 20, 20)}, {Body: body("b", 4, 80, 80)}},
		Overlapping: []string{"a"},
	}

	svg, err := NewRenderer().Render(scene)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(svg, fillColliding))
	assert.Equal(t, 1, strings.Count(svg, fillNormal))
}

func TestRenderGuides(t *testing.T) {
	scene := &Scene{
		Canvas: geometry.Canvas{Width: 200, Height: 100},
		Guides: []snap.Guide{
			{Orientation: snap.Vertical, Position: 25},
			{Orientation: snap.Horizontal, Position: 50},
		},
	}

	svg, err := NewRenderer().Render(scene)
	require.NoError(t, err)
	assert.Contains(t, svg, `<line x1="50" y1="0" x2="50" y2="100"`)
	assert.Contains(t, svg, `<line x1="0" y1="50" x2="200" y2="50"`)
}

func TestRenderRejectsBadInput(t *testing.T) {
	_, err := NewRenderer().Render(nil)
	assert.Error(t, err)

	_, err = NewRenderer().Render(&Scene{Canvas: geometry.Canvas{Width: 0, Height: 100}})
	assert.Error(t, err)
}
