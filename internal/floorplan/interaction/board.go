package interaction

import (
	"sync"

	"floorplan-service/internal/floorplan/geometry"
	"floorplan-service/internal/floorplan/layout"
)

// ============================================================
// Board
// ============================================================

// Board is the local model of the floor: every table with its saved position,
// or none. It is safe for concurrent use because async commits restore
// snapshots from their own goroutines.
type Board struct {
	mu    sync.Mutex
	order []string
	items map[string]geometry.Placeable
}

func NewBoard() *Board {
	return &Board{items: make(map[string]geometry.Placeable)}
}

// Replace swaps in a fresh snapshot from the store, keeping its order.
func (b *Board) Replace(placeables []geometry.Placeable) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.order = make([]string, 0, len(placeables))
	b.items = make(map[string]geometry.Placeable, len(placeables))
	for _, p := range placeables {
		if _, dup := b.items[p.ID]; dup {
			continue
		}
		p.Position = copyPoint(p.Position)
		b.order = append(b.order, p.ID)
		b.items[p.ID] = p
	}
}

// Placeables returns every table with missing positions filled by the
// default placement.
func (b *Board) Placeables() []geometry.Placeable {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]geometry.Placeable, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.items[id])
	}
	return layout.Resolve(out)
}

// Get returns a table with its resolved position.
func (b *Board) Get(id string) (geometry.Placeable, bool) {
	for _, p := range b.Placeables() {
		if p.ID == id {
			return p, true
		}
	}
	return geometry.Placeable{}, false
}

// Bodies returns resolved bodies for every table except the given id.
func (b *Board) Bodies(except string) []geometry.Body {
	var out []geometry.Body
	for _, p := range b.Placeables() {
		if p.ID == except {
			continue
		}
		out = append(out, geometry.BodyOf(p))
	}
	return out
}

// Position returns the saved position of id, nil when it was never placed.
func (b *Board) Position(id string) (*geometry.Point, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.items[id]
	if !ok {
		return nil, false
	}
	return copyPoint(p.Position), true
}

// SetPosition overwrites the saved position of id. A nil position returns
// the table to default placement.
func (b *Board) SetPosition(id string, pos *geometry.Point) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.items[id]
	if !ok {
		return false
	}
	p.Position = copyPoint(pos)
	b.items[id] = p
	return true
}

// SwapPosition sets pos only while the saved position of id still equals old.
// It reports whether the swap happened.
func (b *Board) SwapPosition(id string, old, pos *geometry.Point) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.items[id]
	if !ok || !samePoint(p.Position, old) {
		return false
	}
	p.Position = copyPoint(pos)
	b.items[id] = p
	return true
}

// Upsert adds a table at the end of the board or updates it in place.
func (b *Board) Upsert(p geometry.Placeable) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.items[p.ID]; !ok {
		b.order = append(b.order, p.ID)
	}
	p.Position = copyPoint(p.Position)
	b.items[p.ID] = p
}

func (b *Board) Remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.items[id]; !ok {
		return false
	}
	delete(b.items, id)
	for i, oid := range b.order {
		if oid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// IDs returns the table ids in board order.
func (b *Board) IDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.order...)
}

func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}

func samePoint(a, b *geometry.Point) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func copyPoint(p *geometry.Point) *geometry.Point {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
