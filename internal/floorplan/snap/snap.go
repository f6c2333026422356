// Package snap corrects a dragged table's candidate position.
//
// Three stages run in a fixed order, each a pure Candidate -> Candidate
// function that may override the previous stage per axis:
//
//	Grid   rounds to the nearest grid line (percent units)
//	Guides aligns with settled tables whose centers are within tolerance
//	Magnet pulls box edges flush with, or at a preset spacing from, neighbours
//
// Guide and magnet stages look at the raw pointer position, not the output of
// earlier stages, so a later stage always sees what the user actually did.
package snap

import (
	"floorplan-service/internal/floorplan/geometry"
)

// ============================================================
// Config
// ============================================================

type Config struct {
	GridEnabled     bool
	GridUnit        float64   // percent of canvas
	GuideTolerance  float64   // percent points
	MagnetThreshold float64   // pixels
	Spacings        []float64 // pixels, tried in order
}

func DefaultConfig() Config {
	return Config{
		GridEnabled:     true,
		GridUnit:        10,
		GuideTolerance:  2,
		MagnetThreshold: 15,
		Spacings:        []float64{10, 20, 30, 40},
	}
}

// ============================================================
// Candidate
// ============================================================

// Orientation of a guide line. A vertical guide fixes x.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Guide is a temporary alignment line shared with at least one settled table.
type Guide struct {
	Orientation Orientation `json:"orientation"`
	Position    float64     `json:"position"`
}

// Candidate flows through the stages.
type Candidate struct {
	ID        string
	Raw       geometry.Point
	Position  geometry.Point
	Footprint geometry.Footprint
	Canvas    geometry.Canvas
	Others    []geometry.Body
	Free      bool

	GridSnapped   bool
	GuideSnapped  bool
	MagnetSnapped bool
	Guides        []Guide
}

// NewCandidate starts a candidate at the clamped raw position.
func NewCandidate(active geometry.Body, canvas geometry.Canvas, others []geometry.Body, free bool) Candidate {
	raw := active.Position.Clamp()
	return Candidate{
		ID:        active.ID,
		Raw:       raw,
		Position:  raw,
		Footprint: active.Footprint,
		Canvas:    canvas,
		Others:    others,
		Free:      free,
	}
}

// Result is what the engine emits per frame. Flags are advisory.
type Result struct {
	Position      geometry.Point `json:"position"`
	GridSnapped   bool           `json:"grid_snapped"`
	GuideSnapped  bool           `json:"guide_snapped"`
	MagnetSnapped bool           `json:"magnet_snapped"`
	Guides        []Guide        `json:"guides,omitempty"`
}

// Snapped reports whether any stage moved the candidate.
func (r Result) Snapped() bool {
	return r.GridSnapped || r.GuideSnapped || r.MagnetSnapped
}

// ============================================================
// Pipeline
// ============================================================

type Stage func(Candidate) Candidate

type Pipeline struct {
	stages []Stage
}

// New composes the stages in priority order: grid, guides, magnetism.
func New(cfg Config) *Pipeline {
	return &Pipeline{stages: []Stage{Grid(cfg), Guides(cfg), Magnet(cfg)}}
}

// Run evaluates c through every stage. A degenerate canvas skips snapping and
// returns the clamped raw position.
func (p *Pipeline) Run(c Candidate) Result {
	if c.Canvas.Degenerate() {
		return Result{Position: c.Raw.Clamp()}
	}

	for _, stage := range p.stages {
		c = stage(c)
		c.Position = c.Position.Clamp()
	}

	return Result{
		Position:      c.Position,
		GridSnapped:   c.GridSnapped,
		GuideSnapped:  c.GuideSnapped,
		MagnetSnapped: c.MagnetSnapped,
		Guides:        c.Guides,
	}
}
