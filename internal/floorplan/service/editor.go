// Package service runs the floor-plan editor: it owns the local board, the
// interaction machine and the committer, and keeps the board in step with
// the table store.
package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	apperrors "floorplan-service/internal/common/errors"
	"floorplan-service/internal/common/config"
	"floorplan-service/internal/floorplan/collision"
	"floorplan-service/internal/floorplan/commit"
	"floorplan-service/internal/floorplan/geometry"
	"floorplan-service/internal/floorplan/group"
	"floorplan-service/internal/floorplan/interaction"
	"floorplan-service/internal/floorplan/models"
	"floorplan-service/internal/floorplan/render"
	"floorplan-service/internal/floorplan/snap"

	"github.com/charmbracelet/log"
)

// ============================================================
// Collaborators
// ============================================================

// Store is the persistence collaborator.
type Store interface {
	List(ctx context.Context) ([]models.Table, error)
	Create(ctx context.Context, number, capacity int) (*models.Table, error)
	CommitPosition(ctx context.Context, id string, x, y float64) error
	Delete(ctx context.Context, id string) error
}

// TableView is a table as the editor shows it.
type TableView struct {
	ID        string             `json:"id"`
	Number    int                `json:"number"`
	Capacity  int                `json:"capacity"`
	Position  geometry.Point     `json:"position"`
	Placed    bool               `json:"placed"`
	Footprint geometry.Footprint `json:"footprint"`
}

// ============================================================
// Editor
// ============================================================

type Editor struct {
	mu        sync.Mutex
	store     Store
	board     *interaction.Board
	machine   *interaction.Machine
	committer *commit.Committer
	detector  collision.Detector
	logger    *log.Logger

	tables  map[string]models.Table
	editing bool
}

func NewEditor(store Store, notifier Notifier, engine config.Engine, logger *log.Logger) *Editor {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	board := interaction.NewBoard()
	detector := collision.Detector{Tolerance: engine.CollisionTolerance}
	writer := &notifyingWriter{store: store, notifier: notifier, logger: logger}

	return &Editor{
		store:     store,
		board:     board,
		machine:   interaction.NewMachine(board, snap.New(SnapConfig(engine.Snap)), detector),
		committer: commit.New(writer, board, logger),
		detector:  detector,
		logger:    logger,
		tables:    make(map[string]models.Table),
	}
}

// SnapConfig converts the configured tunables for the snap engine.
func SnapConfig(c config.Snap) snap.Config {
	return snap.Config{
		GridEnabled:     c.GridEnabled,
		GridUnit:        c.GridUnit,
		GuideTolerance:  c.GuideTolerance,
		MagnetThreshold: c.MagnetThreshold,
		Spacings:        append([]float64(nil), c.Spacings...),
	}
}

// ------------------------------------------------------------
// Refresh
// ------------------------------------------------------------

// Refresh replaces the board with the store contents. While edit mode is on
// it does nothing; EndEdit reloads instead.
func (e *Editor) Refresh(ctx context.Context) error {
	if e.Editing() {
		return nil
	}
	return e.reload(ctx)
}

func (e *Editor) reload(ctx context.Context) error {
	tables, err := e.store.List(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "list tables")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// edit mode may have started while the list was in flight
	if e.editing {
		return nil
	}
	e.apply(tables)
	return nil
}

// Run refreshes on every tick until ctx is done. A non-positive interval
// disables polling.
func (e *Editor) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		e.logger.Warn("refresh polling disabled", "interval", interval)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := e.Refresh(ctx); err != nil {
				e.logger.Warn("refresh failed", "err", err)
			}
		}
	}
}

// apply swaps in tables; callers hold e.mu.
func (e *Editor) apply(tables []models.Table) {
	known := make(map[string]models.Table, len(tables))
	for _, t := range tables {
		known[t.ID] = t
	}
	for id := range e.tables {
		if _, ok := known[id]; !ok {
			e.machine.Forget(id)
		}
	}
	e.tables = known
	e.board.Replace(models.Placeables(tables))
	e.logger.Debug("board refreshed", "tables", len(tables))
}

// StartEdit suspends refreshes so a server snapshot cannot clobber a drag.
func (e *Editor) StartEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = true
}

// EndEdit resumes refreshes and reloads the board from the store, which
// already holds every commit made during the session. If the reload fails the
// local board is kept as is.
func (e *Editor) EndEdit(ctx context.Context) error {
	e.mu.Lock()
	e.editing = false
	e.mu.Unlock()

	return e.reload(ctx)
}

func (e *Editor) Editing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editing
}

func (e *Editor) State() interaction.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.State()
}

// ------------------------------------------------------------
// Tables
// ------------------------------------------------------------

// Tables lists every table with its resolved position, in board order.
func (e *Editor) Tables() []TableView {
	e.mu.Lock()
	defer e.mu.Unlock()

	placeables := e.board.Placeables()
	views := make([]TableView, 0, len(placeables))
	for _, p := range placeables {
		t := e.tables[p.ID]
		saved, _ := e.board.Position(p.ID)
		views = append(views, TableView{
			ID:        p.ID,
			Number:    t.Number,
			Capacity:  p.Capacity,
			Position:  *p.Position,
			Placed:    saved != nil,
			Footprint: p.Footprint(),
		})
	}
	return views
}

// Overlaps returns every pair of tables whose footprints overlap on canvas.
func (e *Editor) Overlaps(canvas geometry.Canvas) [][2]string {
	var bodies []geometry.Body
	for _, p := range e.board.Placeables() {
		bodies = append(bodies, geometry.BodyOf(p))
	}
	return e.detector.Pairs(canvas, bodies)
}

// Scene prepares the floor for drawing at canvas size, with overlapping
// tables marked.
func (e *Editor) Scene(canvas geometry.Canvas) *render.Scene {
	scene := &render.Scene{Canvas: canvas}
	for _, v := range e.Tables() {
		scene.Tables = append(scene.Tables, render.Table{
			Body:  geometry.Body{ID: v.ID, Position: v.Position, Footprint: v.Footprint},
			Label: strconv.Itoa(v.Number),
		})
	}

	seen := make(map[string]bool)
	for _, pair := range e.Overlaps(canvas) {
		for _, id := range pair {
			if !seen[id] {
				seen[id] = true
				scene.Overlapping = append(scene.Overlapping, id)
			}
		}
	}

	if frame, ok := e.lastFrame(); ok {
		scene.Guides = frame.Guides
	}
	return scene
}

func (e *Editor) lastFrame() (interaction.Frame, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.LastFrame()
}

// CreateTable validates and stores a new table. It gets no position; default
// placement shows it until one is committed.
func (e *Editor) CreateTable(ctx context.Context, number, capacity int) (*models.Table, error) {
	if number <= 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "table number must be a positive integer, got %d", number)
	}
	if capacity <= 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "capacity must be a positive integer, got %d", capacity)
	}

	t, err := e.store.Create(ctx, number, capacity)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.tables[t.ID] = *t
	e.board.Upsert(t.Placeable())
	e.logger.Info("table created", "table", t.ID, "number", number, "capacity", capacity)
	return t, nil
}

func (e *Editor) DeleteTable(ctx context.Context, id string) error {
	if err := e.store.Delete(ctx, id); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.tables, id)
	e.board.Remove(id)
	e.machine.Forget(id)
	e.logger.Info("table deleted", "table", id)
	return nil
}

// CommitPosition stores a position directly, outside any drag.
func (e *Editor) CommitPosition(ctx context.Context, id string, pos geometry.Point) (geometry.Point, error) {
	return e.committer.Commit(ctx, id, pos)
}

// ------------------------------------------------------------
// Drag
// ------------------------------------------------------------

func (e *Editor) StartDrag(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.StartDrag(id)
}

func (e *Editor) Drag(mv interaction.Move) (interaction.Frame, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.machine.Drag(mv)
}

// EndDrag commits the last frame. A failed commit rolls the table back.
func (e *Editor) EndDrag(ctx context.Context) (group.Item, error) {
	e.mu.Lock()
	item, err := e.machine.EndDrag()
	e.mu.Unlock()
	if err != nil {
		return group.Item{}, err
	}

	pos, err := e.committer.Commit(ctx, item.ID, item.Position)
	if err != nil {
		return group.Item{}, err
	}
	return group.Item{ID: item.ID, Position: pos}, nil
}

// ------------------------------------------------------------
// Group transforms
// ------------------------------------------------------------

func (e *Editor) Select(ids []string) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.machine.Select(ids); err != nil {
		return nil, err
	}
	return e.machine.Selection(), nil
}

// Align aligns the selection and commits every member independently.
func (e *Editor) Align(ctx context.Context, mode group.AlignMode) ([]commit.Outcome, error) {
	e.mu.Lock()
	items, err := e.machine.Align(mode)
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return e.commitGroup(ctx, "align", items), nil
}

// Distribute spaces the selection evenly and commits every member independently.
func (e *Editor) Distribute(ctx context.Context, dir group.Direction) ([]commit.Outcome, error) {
	e.mu.Lock()
	items, err := e.machine.Distribute(dir)
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return e.commitGroup(ctx, "distribute", items), nil
}

func (e *Editor) commitGroup(ctx context.Context, op string, items []group.Item) []commit.Outcome {
	outcomes := e.committer.CommitAll(ctx, items)
	if failed := commit.Failed(outcomes); len(failed) > 0 {
		e.logger.Warn("group commit partially failed", "op", op, "failed", len(failed), "total", len(items))
	}
	return outcomes
}

// ============================================================
// Notifying writer
// ============================================================

// notifyingWriter publishes an event after every successful store write.
// Publish failures are logged, never returned: the position is already saved.
type notifyingWriter struct {
	store    Store
	notifier Notifier
	logger   *log.Logger
}

func (w *notifyingWriter) CommitPosition(ctx context.Context, id string, x, y float64) error {
	if err := w.store.CommitPosition(ctx, id, x, y); err != nil {
		return err
	}
	evt := PositionEvent{TableID: id, X: x, Y: y, Committed: time.Now().UTC()}
	if err := w.notifier.PositionCommitted(ctx, evt); err != nil {
		w.logger.Warn("position event not published", "table", id, "err", err)
	}
	return nil
}
