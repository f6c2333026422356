// Package geometry holds the spatial model of the floor plan: center-anchored
// percentage positions, capacity-derived footprints and pixel-space boxes.
package geometry

import "math"

// ============================================================
// Coordinates
// ============================================================

const (
	MinPercent = 0.0
	MaxPercent = 100.0
)

// Point is a center-anchored position in percent of the canvas content area.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Clamp limits both coordinates to [0, 100].
func (p Point) Clamp() Point {
	return Point{X: ClampPercent(p.X), Y: ClampPercent(p.Y)}
}

// Round2 rounds both coordinates to two decimal places.
func (p Point) Round2() Point {
	return Point{X: round2(p.X), Y: round2(p.Y)}
}

// Axis selects one coordinate of a Point.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Get returns the coordinate of p on axis a.
func (a Axis) Get(p Point) float64 {
	if a == AxisY {
		return p.Y
	}
	return p.X
}

// Set returns p with the coordinate on axis a replaced by v.
func (a Axis) Set(p Point, v float64) Point {
	if a == AxisY {
		p.Y = v
	} else {
		p.X = v
	}
	return p
}

func ClampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return MinPercent
	}
	return math.Max(MinPercent, math.Min(MaxPercent, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ============================================================
// Canvas
// ============================================================

// Canvas is the live content area in pixels. It is measured per interaction.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Degenerate reports whether the canvas has not been laid out yet.
func (c Canvas) Degenerate() bool {
	return c.Width <= 0 || c.Height <= 0
}

// ToPixels converts a percent position into content-area pixels.
func (c Canvas) ToPixels(p Point) (float64, float64) {
	return p.X / 100 * c.Width, p.Y / 100 * c.Height
}

// ToPercent converts content-area pixels back into a percent position.
// Callers must check Degenerate first.
func (c Canvas) ToPercent(x, y float64) Point {
	return Point{X: x / c.Width * 100, Y: y / c.Height * 100}
}

// ============================================================
// Boxes
// ============================================================

// Rect is an axis-aligned bounding box in pixel space.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// BoxAt builds the pixel AABB of footprint f centered at percent position p.
func BoxAt(c Canvas, p Point, f Footprint) Rect {
	cx, cy := c.ToPixels(p)
	hw, hh := f.Width/2, f.Height/2
	return Rect{Left: cx - hw, Top: cy - hh, Right: cx + hw, Bottom: cy + hh}
}

// Inset shrinks the box by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{Left: r.Left + d, Top: r.Top + d, Right: r.Right - d, Bottom: r.Bottom - d}
}

// Overlaps reports whether the two boxes intersect on both axes.
// Touching edges count as overlap.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Right < o.Left || r.Left > o.Right || r.Bottom < o.Top || r.Top > o.Bottom)
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Center returns the pixel center of the box.
func (r Rect) Center() (float64, float64) {
	return (r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2
}
