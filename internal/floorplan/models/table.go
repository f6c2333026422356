package models

import "floorplan-service/internal/floorplan/geometry"

// ============================================================
// Table Model
// ============================================================

type Table struct {
	ID        string   `json:"id"`
	Number    int      `json:"number"`
	Capacity  int      `json:"capacity"`
	X         *float64 `json:"x"`
	Y         *float64 `json:"y"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// Placeable converts the record into what the layout engine works with.
// A table counts as placed only when both coordinates are stored.
func (t Table) Placeable() geometry.Placeable {
	p := geometry.Placeable{ID: t.ID, Capacity: t.Capacity}
	if t.X != nil && t.Y != nil {
		p.Position = &geometry.Point{X: *t.X, Y: *t.Y}
	}
	return p
}

func Placeables(tables []Table) []geometry.Placeable {
	out := make([]geometry.Placeable, len(tables))
	for i, t := range tables {
		out[i] = t.Placeable()
	}
	return out
}
