package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"floorplan-service/internal/floorplan/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "floor.db")
	t.Setenv("FLOOR_DB_PATH", dbPath)
	t.Setenv("MIGRATIONS_PATH", "../../migrations/001_init_floorplan.sql")
	t.Setenv("LOG_LEVEL", "error")

	root := newRootCmd()
	root.SetArgs([]string{"migrate"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	db, err := repository.OpenSQLite(dbPath)
	require.NoError(t, err)
	repo := repository.New(db)
	ctx := context.Background()
	first, err := repo.Create(ctx, 1, 2)
	require.NoError(t, err)
	second, err := repo.Create(ctx, 2, 4)
	require.NoError(t, err)
	require.NoError(t, repo.CommitPosition(ctx, first.ID, 40, 40))
	require.NoError(t, repo.CommitPosition(ctx, second.ID, 42, 41))
	require.NoError(t, db.Close())

	var out bytes.Buffer
	root = newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"layout"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "NUMBER")
	assert.Contains(t, out.String(), "round")
	assert.Contains(t, out.String(), "square")
	assert.Regexp(t, `overlap: table [12] and table [12]`, out.String())
}
