package folders

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cloudchest/cloudchest-cli/internal/client/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:foldersrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS folders (
  id          INTEGER NOT NULL,
  parent_code TEXT NOT NULL,
  code        TEXT NOT NULL,
  name        TEXT NOT NULL,
  created_at  INTEGER NOT NULL,
  updated_at  INTEGER NOT NULL,
  PRIMARY KEY (parent_code, id)
);
DELETE FROM folders;
`)
	require.NoError(t, err)
	return db
}

func sampleFolder(id uint, code, name string) models.Folder {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	return models.Folder{ID: id, Code: code, Name: name, CreatedAt: now, UpdatedAt: now}
}

func TestReplaceChildren_RoundTrip(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	in := []models.Folder{sampleFolder(1, "docs1", "docs"), sampleFolder(2, "pics1", "pics")}
	require.NoError(t, r.ReplaceChildren(ctx, "root", in))

	got, err := r.ListByParent(ctx, "root")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "docs", got[0].Name)
	require.Equal(t, "docs1", got[0].Code)
}

func TestReplaceChildren_SwapsSnapshot(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.ReplaceChildren(ctx, "root", []models.Folder{sampleFolder(1, "a", "a")}))
	require.NoError(t, r.ReplaceChildren(ctx, "root", []models.Folder{sampleFolder(2, "b", "b")}))

	got, err := r.ListByParent(ctx, "root")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "b", got[0].Code)
}

func TestListByParent_UnknownParentIsEmpty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	got, err := r.ListByParent(context.Background(), "nope")
	require.NoError(t, err)
	require.Empty(t, got)
}
