// Package group aligns and distributes a multi-selection of tables.
//
// Transforms are pure: they take the selected items and return the new
// positions, leaving persistence to the caller. Every result is clamped.
package group

import (
	"sort"

	apperrors "floorplan-service/internal/common/errors"
	"floorplan-service/internal/floorplan/geometry"
)

const (
	MinAlign      = 2
	MinDistribute = 3
)

// Item is one selected table with its current position.
type Item struct {
	ID       string         `json:"id"`
	Position geometry.Point `json:"position"`
}

// ============================================================
// Align
// ============================================================

type AlignMode string

const (
	AlignLeft   AlignMode = "left"
	AlignCenter AlignMode = "center"
	AlignRight  AlignMode = "right"
	AlignTop    AlignMode = "top"
	AlignMiddle AlignMode = "middle"
	AlignBottom AlignMode = "bottom"
)

// ParseAlignMode validates a mode name.
func ParseAlignMode(s string) (AlignMode, error) {
	switch m := AlignMode(s); m {
	case AlignLeft, AlignCenter, AlignRight, AlignTop, AlignMiddle, AlignBottom:
		return m, nil
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidInput, "unknown align mode %q", s)
}

// Axis is the coordinate the mode acts on.
func (m AlignMode) Axis() geometry.Axis {
	switch m {
	case AlignTop, AlignMiddle, AlignBottom:
		return geometry.AxisY
	}
	return geometry.AxisX
}

// Align moves every item onto the min (left/top), mean (center/middle) or
// max (right/bottom) coordinate of the selection on the mode's axis.
func Align(mode AlignMode, items []Item) ([]Item, error) {
	if _, err := ParseAlignMode(string(mode)); err != nil {
		return nil, err
	}
	if len(items) < MinAlign {
		return nil, insufficient("align", MinAlign, len(items))
	}

	axis := mode.Axis()
	target := axis.Get(items[0].Position)
	sum := 0.0
	for _, it := range items {
		v := axis.Get(it.Position)
		sum += v
		switch mode {
		case AlignLeft, AlignTop:
			target = min(target, v)
		case AlignRight, AlignBottom:
			target = max(target, v)
		}
	}
	if mode == AlignCenter || mode == AlignMiddle {
		target = sum / float64(len(items))
	}

	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = Item{ID: it.ID, Position: axis.Set(it.Position, target).Clamp()}
	}
	return out, nil
}

// ============================================================
// Distribute
// ============================================================

type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Horizontal, Vertical:
		return d, nil
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidInput, "unknown distribute direction %q", s)
}

func (d Direction) Axis() geometry.Axis {
	if d == Vertical {
		return geometry.AxisY
	}
	return geometry.AxisX
}

// Distribute spaces the selection evenly between its two extremes on the
// direction's axis. The extremes stay put; the result is sorted along the axis.
func Distribute(dir Direction, items []Item) ([]Item, error) {
	if _, err := ParseDirection(string(dir)); err != nil {
		return nil, err
	}
	if len(items) < MinDistribute {
		return nil, insufficient("distribute", MinDistribute, len(items))
	}

	axis := dir.Axis()
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := axis.Get(sorted[i].Position), axis.Get(sorted[j].Position)
		if a != b {
			return a < b
		}
		return sorted[i].ID < sorted[j].ID
	})

	first := axis.Get(sorted[0].Position)
	last := axis.Get(sorted[len(sorted)-1].Position)
	spacing := (last - first) / float64(len(sorted)-1)

	for i := 1; i < len(sorted)-1; i++ {
		sorted[i].Position = axis.Set(sorted[i].Position, first+spacing*float64(i)).Clamp()
	}
	return sorted, nil
}

func insufficient(op string, need, got int) error {
	return apperrors.New(apperrors.ErrCodeInsufficientSelection,
		"%s needs at least %d selected tables, got %d", op, need, got)
}
