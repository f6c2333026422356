// Package interaction drives the floor-plan editor from discrete input events.
//
// The Machine is in exactly one of three states:
//
//	Idle            nothing is moving, nothing selected
//	Dragging(id)    one active table follows the pointer
//	GroupSelecting  a non-empty selection awaits align/distribute
//
// Events that do not apply to the current state fail with INVALID_STATE and
// leave the machine unchanged. The Machine performs no I/O: drag end and
// group transforms return the positions to commit.
package interaction

import (
	apperrors "floorplan-service/internal/common/errors"
	"floorplan-service/internal/floorplan/collision"
	"floorplan-service/internal/floorplan/geometry"
	"floorplan-service/internal/floorplan/group"
	"floorplan-service/internal/floorplan/snap"
)

// ============================================================
// States
// ============================================================

type State int

const (
	StateIdle State = iota
	StateDragging
	StateGroupSelecting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateGroupSelecting:
		return "group_selecting"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Frame is the engine's answer to one pointer move.
type Frame struct {
	ID string `json:"id"`
	snap.Result
	Colliding  bool     `json:"colliding"`
	Collisions []string `json:"collisions"`
}

// Move is a pointer update while dragging.
type Move struct {
	Position geometry.Point
	Canvas   geometry.Canvas
	Free     bool // modifier held: skip grid snapping
}

// ============================================================
// Machine
// ============================================================

// Machine is not safe for concurrent use; callers serialize events.
type Machine struct {
	board    *Board
	pipeline *snap.Pipeline
	detector collision.Detector

	state     State
	active    string
	last      *Frame
	selection Selection
}

func NewMachine(board *Board, pipeline *snap.Pipeline, detector collision.Detector) *Machine {
	return &Machine{
		board:     board,
		pipeline:  pipeline,
		detector:  detector,
		selection: NewSelection(),
	}
}

func (m *Machine) State() State { return m.state }

// Active returns the id being dragged, if any.
func (m *Machine) Active() (string, bool) {
	return m.active, m.state == StateDragging
}

// LastFrame returns the most recent frame of the current drag.
func (m *Machine) LastFrame() (Frame, bool) {
	if m.last == nil {
		return Frame{}, false
	}
	return *m.last, true
}

func (m *Machine) Selection() []string { return m.selection.IDs() }

// ------------------------------------------------------------
// Drag
// ------------------------------------------------------------

// StartDrag makes id the active table.
func (m *Machine) StartDrag(id string) error {
	if m.state == StateDragging {
		return m.invalid("start drag")
	}
	if _, ok := m.board.Get(id); !ok {
		return apperrors.New(apperrors.ErrCodeNotFound, "table %s not found", id)
	}
	m.state = StateDragging
	m.active = id
	m.last = nil
	return nil
}

// Drag re-runs snapping and collision for the active table from scratch.
func (m *Machine) Drag(mv Move) (Frame, error) {
	if m.state != StateDragging {
		return Frame{}, m.invalid("drag")
	}
	active, ok := m.board.Get(m.active)
	if !ok {
		return Frame{}, apperrors.New(apperrors.ErrCodeNotFound, "table %s disappeared during drag", m.active)
	}

	body := geometry.Body{ID: active.ID, Position: mv.Position, Footprint: active.Footprint()}
	others := m.board.Bodies(active.ID)

	res := m.pipeline.Run(snap.NewCandidate(body, mv.Canvas, others, mv.Free))
	body.Position = res.Position

	hits := m.detector.Detect(mv.Canvas, body, others)
	frame := Frame{
		ID:         active.ID,
		Result:     res,
		Colliding:  len(hits) > 0,
		Collisions: hits,
	}
	m.last = &frame
	return frame, nil
}

// EndDrag finalizes the drag with the last computed position. Without any
// move the table keeps its current position.
func (m *Machine) EndDrag() (group.Item, error) {
	if m.state != StateDragging {
		return group.Item{}, m.invalid("end drag")
	}

	id := m.active
	var pos geometry.Point
	if m.last != nil {
		pos = m.last.Position
	} else if p, ok := m.board.Get(id); ok {
		pos = *p.Position
	}

	m.active = ""
	m.last = nil
	m.settle()
	return group.Item{ID: id, Position: pos.Clamp()}, nil
}

// ------------------------------------------------------------
// Selection
// ------------------------------------------------------------

// Select replaces the selection. Unknown ids are dropped.
func (m *Machine) Select(ids []string) error {
	if m.state == StateDragging {
		return m.invalid("select")
	}
	m.selection = NewSelection()
	for _, id := range ids {
		if _, ok := m.board.Get(id); ok {
			m.selection.Add(id)
		}
	}
	m.settle()
	return nil
}

// Toggle flips one id in the selection.
func (m *Machine) Toggle(id string) error {
	if m.state == StateDragging {
		return m.invalid("toggle selection")
	}
	if _, ok := m.board.Get(id); !ok {
		return apperrors.New(apperrors.ErrCodeNotFound, "table %s not found", id)
	}
	m.selection.Toggle(id)
	m.settle()
	return nil
}

func (m *Machine) ClearSelection() error {
	return m.Select(nil)
}

// Align computes aligned positions for the selection.
func (m *Machine) Align(mode group.AlignMode) ([]group.Item, error) {
	if m.state == StateDragging {
		return nil, m.invalid("align")
	}
	return group.Align(mode, m.selectedItems())
}

// Distribute computes evenly spaced positions for the selection.
func (m *Machine) Distribute(dir group.Direction) ([]group.Item, error) {
	if m.state == StateDragging {
		return nil, m.invalid("distribute")
	}
	return group.Distribute(dir, m.selectedItems())
}

// Forget drops a table that no longer exists from the selection and, if it
// was being dragged, ends the drag without a result.
func (m *Machine) Forget(id string) {
	m.selection.Remove(id)
	if m.state == StateDragging {
		if m.active != id {
			return
		}
		m.active = ""
		m.last = nil
	}
	m.settle()
}

func (m *Machine) selectedItems() []group.Item {
	var items []group.Item
	for _, id := range m.selection.IDs() {
		if p, ok := m.board.Get(id); ok {
			items = append(items, group.Item{ID: id, Position: *p.Position})
		}
	}
	return items
}

// settle picks the resting state from the selection.
func (m *Machine) settle() {
	if m.selection.Len() > 0 {
		m.state = StateGroupSelecting
	} else {
		m.state = StateIdle
	}
}

func (m *Machine) invalid(event string) error {
	return apperrors.New(apperrors.ErrCodeInvalidState, "cannot %s while %s", event, m.state)
}
