// Package collision reports which tables a moving table overlaps.
// Overlap is advisory: callers warn about it but still allow the placement.
package collision

import (
	"sort"

	"floorplan-service/internal/floorplan/geometry"
)

// ============================================================
// Detector
// ============================================================

// Detector tests AABB overlap in pixel space.
type Detector struct {
	// Tolerance shrinks every box by this many pixels per side before testing,
	// so slight contact is not reported. Zero keeps touching edges as overlap.
	Tolerance float64
}

// Detect returns the ids of every body in others that overlaps active, sorted.
// Bodies with the active id are skipped. A degenerate canvas reports nothing.
func (d Detector) Detect(canvas geometry.Canvas, active geometry.Body, others []geometry.Body) []string {
	if canvas.Degenerate() {
		return nil
	}

	box := geometry.BoxAt(canvas, active.Position, active.Footprint).Inset(d.Tolerance)

	var hits []string
	for _, other := range others {
		if other.ID == active.ID {
			continue
		}
		otherBox := geometry.BoxAt(canvas, other.Position, other.Footprint).Inset(d.Tolerance)
		if box.Overlaps(otherBox) {
			hits = append(hits, other.ID)
		}
	}
	sort.Strings(hits)
	return hits
}

// Pairs returns every overlapping pair among bodies, each as [a, b] with a < b.
// Used to flag an entire floor at once.
func (d Detector) Pairs(canvas geometry.Canvas, bodies []geometry.Body) [][2]string {
	if canvas.Degenerate() {
		return nil
	}

	var pairs [][2]string
	for i := range bodies {
		for _, id := range d.Detect(canvas, bodies[i], bodies[i+1:]) {
			a, b := bodies[i].ID, id
			if b < a {
				a, b = b, a
			}
			pairs = append(pairs, [2]string{a, b})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}
