package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"floorplan-service/internal/floorplan/geometry"
	"floorplan-service/internal/floorplan/snap"
)

// ============================================================
// Scene
// ============================================================

type Table struct {
	geometry.Body
	Label string
}

// Scene is a floor ready to be drawn at one canvas size.
type Scene struct {
	Canvas geometry.Canvas
	Tables []Table
	// Overlapping lists tables drawn with the collision highlight.
	Overlapping []string
	Guides      []snap.Guide
}

const (
	fillNormal    = "#f4efe6"
	fillColliding = "#f8d7da"
	strokeNormal  = "#6b5b45"
	strokeAlert   = "#c0392b"
	strokeGuide   = "#3498db"
)

// ============================================================
// Renderer
// ============================================================

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render собирает SVG плана зала: столы по форме, подсветка пересечений и
// направляющие.
func (r *Renderer) Render(scene *Scene) (string, error) {
	if scene == nil {
		return "", fmt.Errorf("scene is nil")
	}
	if scene.Canvas.Degenerate() {
		return "", fmt.Errorf("canvas %gx%g has no area", scene.Canvas.Width, scene.Canvas.Height)
	}

	width, height := scene.Canvas.Width, scene.Canvas.Height
	overlapping := make(map[string]bool, len(scene.Overlapping))
	for _, id := range scene.Overlapping {
		overlapping[id] = true
	}

	var elements []string
	elements = append(elements, r.renderGuides(scene)...)
	elements = append(elements, r.renderTables(scene, overlapping)...)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(width), formatFloat(height), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	for _, elem := range elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

// ============================================================
// Elements
// ============================================================

func (r *Renderer) renderTables(scene *Scene, overlapping map[string]bool) []string {
	tables := make([]Table, len(scene.Tables))
	copy(tables, scene.Tables)
	sort.SliceStable(tables, func(i, j int) bool { return tables[i].ID < tables[j].ID })

	var out []string
	for _, t := range tables {
		box := geometry.BoxAt(scene.Canvas, t.Position, t.Footprint)
		cx, cy := box.Center()

		fill, stroke := fillNormal, strokeNormal
		if overlapping[t.ID] {
			fill, stroke = fillColliding, strokeAlert
		}

		var g strings.Builder
		g.WriteString(`<g id="table-`)
		g.WriteString(escape(t.ID))
		g.WriteString(`">`)

		if t.Footprint.Shape == geometry.ShapeRound {
			g.WriteString(fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" />`,
				formatFloat(cx), formatFloat(cy), formatFloat(box.Width()/2), fill, stroke))
		} else {
			g.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" rx="4" fill="%s" stroke="%s" />`,
				formatFloat(box.Left), formatFloat(box.Top), formatFloat(box.Width()), formatFloat(box.Height()), fill, stroke))
		}

		if t.Label != "" {
			g.WriteString(fmt.Sprintf(`<text x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" font-size="14">%s</text>`,
				formatFloat(cx), formatFloat(cy), escape(t.Label)))
		}
		g.WriteString(`</g>`)

		out = append(out, g.String())
	}
	return out
}

func (r *Renderer) renderGuides(scene *Scene) []string {
	var out []string
	for _, guide := range scene.Guides {
		var x1, y1, x2, y2 float64
		switch guide.Orientation {
		case snap.Vertical:
			x1 = guide.Position / 100 * scene.Canvas.Width
			x2, y2 = x1, scene.Canvas.Height
		case snap.Horizontal:
			y1 = guide.Position / 100 * scene.Canvas.Height
			x2, y2 = scene.Canvas.Width, y1
		default:
			continue
		}
		out = append(out, fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-dasharray="4 4" />`,
			formatFloat(x1), formatFloat(y1), formatFloat(x2), formatFloat(y2), strokeGuide))
	}
	return out
}

// ============================================================
// Helpers
// ============================================================

var escaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;", `'`, "&#39;")

func escape(s string) string {
	return escaper.Replace(s)
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
