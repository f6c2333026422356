package snap

import (
	"math"
	"sort"

	"floorplan-service/internal/floorplan/geometry"
)

// ============================================================
// Grid
// ============================================================

// Grid rounds each axis to the nearest multiple of cfg.GridUnit.
func Grid(cfg Config) Stage {
	return func(c Candidate) Candidate {
		if !cfg.GridEnabled || c.Free || cfg.GridUnit <= 0 {
			return c
		}
		c.Position = geometry.Point{
			X: SnapToGrid(c.Position.X, cfg.GridUnit),
			Y: SnapToGrid(c.Position.Y, cfg.GridUnit),
		}
		c.GridSnapped = true
		return c
	}
}

func SnapToGrid(v, unit float64) float64 {
	return math.Round(v/unit) * unit
}

// ============================================================
// Alignment guides
// ============================================================

// Guides snaps each axis to the closest settled-table center within
// cfg.GuideTolerance of the raw position.
func Guides(cfg Config) Stage {
	return func(c Candidate) Candidate {
		vertical := collectGuides(c, geometry.AxisX, cfg.GuideTolerance)
		horizontal := collectGuides(c, geometry.AxisY, cfg.GuideTolerance)

		if v, ok := closest(vertical, c.Raw.X); ok {
			c.Position.X = v
			c.GuideSnapped = true
		}
		if v, ok := closest(horizontal, c.Raw.Y); ok {
			c.Position.Y = v
			c.GuideSnapped = true
		}

		for _, v := range vertical {
			c.Guides = append(c.Guides, Guide{Orientation: Vertical, Position: v})
		}
		for _, v := range horizontal {
			c.Guides = append(c.Guides, Guide{Orientation: Horizontal, Position: v})
		}
		return c
	}
}

// collectGuides returns the deduplicated, sorted guide values on axis.
func collectGuides(c Candidate, axis geometry.Axis, tolerance float64) []float64 {
	raw := axis.Get(c.Raw)
	seen := make(map[float64]bool)
	var values []float64
	for _, other := range c.Others {
		if other.ID == c.ID {
			continue
		}
		v := axis.Get(other.Position)
		if math.Abs(raw-v) < tolerance && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Float64s(values)
	return values
}

func closest(values []float64, target float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	best := values[0]
	for _, v := range values[1:] {
		if math.Abs(v-target) < math.Abs(best-target) {
			best = v
		}
	}
	return best, true
}

// ============================================================
// Edge magnetism
// ============================================================

// span is a box projected onto one axis.
type span struct {
	lo, hi float64
}

func (s span) size() float64 { return s.hi - s.lo }

func spanOf(r geometry.Rect, axis geometry.Axis) span {
	if axis == geometry.AxisY {
		return span{lo: r.Top, hi: r.Bottom}
	}
	return span{lo: r.Left, hi: r.Right}
}

// Magnet pulls box edges onto neighbour edges in pixel space. For each axis it
// tries, per neighbour: near edge at a preset spacing from the neighbour's far
// edge, then far edge at a preset spacing from its near edge, then a direct
// touch either way. The first hit within the threshold wins for that axis.
func Magnet(cfg Config) Stage {
	return func(c Candidate) Candidate {
		if cfg.MagnetThreshold <= 0 || c.Canvas.Degenerate() {
			return c
		}

		box := geometry.BoxAt(c.Canvas, c.Raw, c.Footprint)
		centerX, centerY := box.Center()
		snappedX, snappedY := false, false

		for _, other := range c.Others {
			if snappedX && snappedY {
				break
			}
			if other.ID == c.ID {
				continue
			}
			otherBox := geometry.BoxAt(c.Canvas, other.Position, other.Footprint)

			if !snappedX {
				if lo, ok := magnetize(spanOf(box, geometry.AxisX), spanOf(otherBox, geometry.AxisX), cfg); ok {
					centerX = lo + box.Width()/2
					snappedX = true
				}
			}
			if !snappedY {
				if lo, ok := magnetize(spanOf(box, geometry.AxisY), spanOf(otherBox, geometry.AxisY), cfg); ok {
					centerY = lo + box.Height()/2
					snappedY = true
				}
			}
		}

		if !snappedX && !snappedY {
			return c
		}

		pulled := c.Canvas.ToPercent(centerX, centerY)
		if snappedX {
			c.Position.X = pulled.X
		}
		if snappedY {
			c.Position.Y = pulled.Y
		}
		c.MagnetSnapped = true
		return c
	}
}

// magnetize returns the new low edge of active when it snaps against other.
func magnetize(active, other span, cfg Config) (float64, bool) {
	near := func(a, b float64) bool { return math.Abs(a-b) < cfg.MagnetThreshold }

	for _, s := range cfg.Spacings {
		if target := other.hi + s; near(active.lo, target) {
			return target, true
		}
	}
	for _, s := range cfg.Spacings {
		if target := other.lo - s; near(active.hi, target) {
			return target - active.size(), true
		}
	}
	if near(active.lo, other.hi) {
		return other.hi, true
	}
	if near(active.hi, other.lo) {
		return other.lo - active.size(), true
	}
	return 0, false
}
