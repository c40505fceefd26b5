package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:metadatarepo?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
DELETE FROM metadata;
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_SetGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, []byte("jwt-abc")))

	got, err := r.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("jwt-abc"), got)
}

func TestSQLiteRepository_SetOverwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyUsername, []byte("alice")))
	require.NoError(t, r.Set(ctx, KeyUsername, []byte("bob")))

	got, err := r.Get(ctx, KeyUsername)
	require.NoError(t, err)
	require.Equal(t, []byte("bob"), got)
}

func TestSQLiteRepository_MissingKeyIsNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	got, err := r.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSQLiteRepository_DeleteAndClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyToken, []byte("a")))
	require.NoError(t, r.Set(ctx, KeyUsername, []byte("b")))

	require.NoError(t, r.Delete(ctx, KeyToken))
	got, err := r.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, r.Clear(ctx))
	got, err = r.Get(ctx, KeyUsername)
	require.NoError(t, err)
	require.Nil(t, got)
}
