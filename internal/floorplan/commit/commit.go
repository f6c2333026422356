// Package commit persists table positions optimistically.
//
// The local board is updated first; the store is called second; on failure
// the pre-commit snapshot is restored. There are no retries: the user repeats
// the gesture.
package commit

import (
	"context"
	"sync"

	apperrors "floorplan-service/internal/common/errors"
	"floorplan-service/internal/floorplan/geometry"
	"floorplan-service/internal/floorplan/group"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// ============================================================
// Collaborators
// ============================================================

// PositionWriter is the persistence side of a commit.
type PositionWriter interface {
	CommitPosition(ctx context.Context, id string, x, y float64) error
}

// LocalStore is the in-memory model the UI reads from.
type LocalStore interface {
	Position(id string) (*geometry.Point, bool)
	SetPosition(id string, pos *geometry.Point) bool
	SwapPosition(id string, old, pos *geometry.Point) bool
}

// ============================================================
// Committer
// ============================================================

const defaultFanOut = 4

type Committer struct {
	writer PositionWriter
	local  LocalStore
	logger *log.Logger
	fanOut int
}

func New(writer PositionWriter, local LocalStore, logger *log.Logger) *Committer {
	return &Committer{
		writer: writer,
		local:  local,
		logger: logger,
		fanOut: defaultFanOut,
	}
}

// Commit clamps and rounds pos, applies it locally, then writes it through.
// On write failure the previous local position is restored, unless the board
// was changed by someone else during the write; the newer position wins.
func (c *Committer) Commit(ctx context.Context, id string, pos geometry.Point) (geometry.Point, error) {
	snapshot, ok := c.local.Position(id)
	if !ok {
		return geometry.Point{}, apperrors.New(apperrors.ErrCodeNotFound, "table %s not found", id)
	}

	next := pos.Clamp().Round2()
	c.local.SetPosition(id, &next)

	if err := c.writer.CommitPosition(ctx, id, next.X, next.Y); err != nil {
		if c.local.SwapPosition(id, &next, snapshot) {
			c.logger.Warn("commit failed, rolled back", "table", id, "x", next.X, "y", next.Y, "err", err)
		} else {
			c.logger.Warn("commit failed, board changed meanwhile, kept newer position", "table", id, "err", err)
		}
		return geometry.Point{}, apperrors.Wrap(apperrors.ErrCodeCommitFailed, err, "commit position of table %s", id)
	}

	c.logger.Debug("position committed", "table", id, "x", next.X, "y", next.Y)
	return next, nil
}

// CommitAsync runs Commit in the background and reports through done, which
// may be nil.
func (c *Committer) CommitAsync(ctx context.Context, id string, pos geometry.Point, done func(geometry.Point, error)) {
	go func() {
		p, err := c.Commit(ctx, id, pos)
		if done != nil {
			done(p, err)
		}
	}()
}

// Outcome is the result of committing one member of a group transform.
type Outcome struct {
	ID       string         `json:"id"`
	Position geometry.Point `json:"position"`
	Error    error          `json:"-"`
}

// CommitAll commits every item independently. A failure rolls back only its
// own item; outcomes come back in input order.
func (c *Committer) CommitAll(ctx context.Context, items []group.Item) []Outcome {
	out := make([]Outcome, len(items))

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(c.fanOut)
	for i, it := range items {
		g.Go(func() error {
			p, err := c.Commit(ctx, it.ID, it.Position)
			mu.Lock()
			out[i] = Outcome{ID: it.ID, Position: p, Error: err}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Failed returns the outcomes that did not commit.
func Failed(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if o.Error != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
