// Package layout computes fallback positions for tables that were never placed.
package layout

import (
	"math"

	"floorplan-service/internal/floorplan/geometry"
)

// ============================================================
// Default placement
// ============================================================

const (
	usableMargin = 15.0 // percent kept free on each side
	usableSpan   = 70.0 // percent covered by the fallback grid
)

// DefaultPositions arranges ids into a near-square grid inside the centered
// 70% region. The result depends only on the order of ids.
func DefaultPositions(ids []string) map[string]geometry.Point {
	n := len(ids)
	out := make(map[string]geometry.Point, n)
	if n == 0 {
		return out
	}

	columns := int(math.Ceil(math.Sqrt(float64(n))))
	rows := int(math.Ceil(float64(n) / float64(columns)))

	for i, id := range ids {
		row, col := i/columns, i%columns
		out[id] = geometry.Point{
			X: spread(col, columns),
			Y: spread(row, rows),
		}.Clamp()
	}
	return out
}

// spread maps index i of count slots linearly onto the usable span.
// A single slot sits at the center.
func spread(i, count int) float64 {
	if count <= 1 {
		return usableMargin + usableSpan/2
	}
	return usableMargin + float64(i)/float64(count-1)*usableSpan
}

// Resolve returns a copy of placeables where every missing position is filled
// from DefaultPositions, computed over the position-less subset in input order.
func Resolve(placeables []geometry.Placeable) []geometry.Placeable {
	var missing []string
	for _, p := range placeables {
		if p.Position == nil {
			missing = append(missing, p.ID)
		}
	}
	defaults := DefaultPositions(missing)

	out := make([]geometry.Placeable, len(placeables))
	for i, p := range placeables {
		if p.Position == nil {
			pos := defaults[p.ID]
			p.Position = &pos
		} else {
			pos := p.Position.Clamp()
			p.Position = &pos
		}
		out[i] = p
	}
	return out
}
