package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "floorplan-service/internal/common/errors"
	"floorplan-service/internal/floorplan/models"

	"github.com/google/uuid"
)

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init применяет миграции.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	if err := r.runMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

const tableColumns = `id, number, capacity, pos_x, pos_y, created_at, updated_at`

// List returns every table ordered by number, which keeps default placement stable.
func (r *Repository) List(ctx context.Context) ([]models.Table, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tableColumns+` FROM tables ORDER BY number, id`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var tables []models.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	return tables, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.Table, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+tableColumns+` FROM tables WHERE id = ?`, id)
	t, err := scanTable(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "table %s not found", id)
		}
		return nil, err
	}
	return t, nil
}

// Create inserts a table without a position. Inputs are validated by the caller.
func (r *Repository) Create(ctx context.Context, number, capacity int) (*models.Table, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM tables WHERE number = ?`, number).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check table number: %w", err)
	}
	if exists > 0 {
		return nil, apperrors.New(apperrors.ErrCodeConflict, "table number %d already exists", number)
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO tables (id, number, capacity)
        VALUES (?, ?, ?)
    `, id, number, capacity)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, apperrors.Wrap(apperrors.ErrCodeConflict, err, "table number %d already exists", number)
		}
		return nil, fmt.Errorf("insert table: %w", err)
	}
	return r.GetByID(ctx, id)
}

// CommitPosition stores a position. Values are expected clamped and rounded.
func (r *Repository) CommitPosition(ctx context.Context, id string, x, y float64) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE tables
        SET pos_x = ?, pos_y = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
        WHERE id = ?
    `, x, y, id)
	if err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	return expectOne(res, id)
}

// ClearPosition returns a table to default placement.
func (r *Repository) ClearPosition(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE tables
        SET pos_x = NULL, pos_y = NULL, updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
        WHERE id = ?
    `, id)
	if err != nil {
		return fmt.Errorf("clear position: %w", err)
	}
	return expectOne(res, id)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tables WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete table: %w", err)
	}
	return expectOne(res, id)
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTable(s scanner) (*models.Table, error) {
	var (
		t    models.Table
		x, y sql.NullFloat64
	)
	if err := s.Scan(&t.ID, &t.Number, &t.Capacity, &x, &y, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if x.Valid {
		t.X = &x.Float64
	}
	if y.Valid {
		t.Y = &y.Float64
	}
	return &t, nil
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperrors.New(apperrors.ErrCodeNotFound, "table %s not found", id)
	}
	return nil
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
