package geometry

// ============================================================
// Shape classification
// ============================================================

// Shape is the rendered outline of a table.
type Shape int

const (
	ShapeRound Shape = iota
	ShapeSquare
	ShapeRectangle
)

func (s Shape) String() string {
	switch s {
	case ShapeRound:
		return "round"
	case ShapeSquare:
		return "square"
	case ShapeRectangle:
		return "rectangle"
	}
	return "unknown"
}

// MarshalText lets shapes travel as their names in JSON.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Footprint is the pixel extent of a table. Round tables use their bounding square.
type Footprint struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Shape  Shape   `json:"shape"`
}

var footprints = [...]Footprint{
	ShapeRound:     {Width: 60, Height: 60, Shape: ShapeRound},
	ShapeSquare:    {Width: 80, Height: 80, Shape: ShapeSquare},
	ShapeRectangle: {Width: 120, Height: 80, Shape: ShapeRectangle},
}

// Classify maps a seating capacity to a shape: up to 2 seats round,
// 3-4 square, 5 and more rectangle.
func Classify(capacity int) Shape {
	switch {
	case capacity <= 2:
		return ShapeRound
	case capacity <= 4:
		return ShapeSquare
	default:
		return ShapeRectangle
	}
}

// FootprintFor is total: every capacity yields a footprint.
func FootprintFor(capacity int) Footprint {
	return footprints[Classify(capacity)]
}

// ============================================================
// Placeable
// ============================================================

// Placeable is a table as the layout engine sees it.
type Placeable struct {
	ID       string `json:"id"`
	Capacity int    `json:"capacity"`
	Position *Point `json:"position"`
}

// Footprint derives the extent from capacity; it is never stored.
func (p Placeable) Footprint() Footprint {
	return FootprintFor(p.Capacity)
}

// Body is a table resolved to a concrete position, as the engine compares it.
type Body struct {
	ID        string
	Position  Point
	Footprint Footprint
}

// BodyOf builds a Body from a placeable; a missing position reads as the origin.
func BodyOf(p Placeable) Body {
	b := Body{ID: p.ID, Footprint: p.Footprint()}
	if p.Position != nil {
		b.Position = *p.Position
	}
	return b
}
