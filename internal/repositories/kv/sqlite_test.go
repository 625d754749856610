package kv

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"careportal/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// a second pool connection would see its own empty in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE client_state (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "activeAuthToken", []byte("tok1")))

	v, err := r.Get(ctx, "activeAuthToken")
	require.NoError(t, err)
	require.Equal(t, []byte("tok1"), v)
}

func TestGet_AbsentKeyReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestDelete_RemovesKeyAndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestList_ReturnsAllPairs(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{0xAA}))
	require.NoError(t, r.Set(ctx, "b", []byte{0xBB, 0xCC}))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []byte{0xAA}, m["a"])
	assert.Equal(t, []byte{0xBB, 0xCC}, m["b"])
}

func TestClear_RemovesAllKeys(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{1}))
	require.NoError(t, r.Set(ctx, "b", []byte{2}))
	require.NoError(t, r.Clear(ctx))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestStorageErrors_AreSentinelWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	// Closing the handle makes every driver call fail.
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorIs(t, err, common.ErrStorage)

	require.ErrorIs(t, r.Set(ctx, "k", []byte("v")), common.ErrStorage)
	require.ErrorIs(t, r.Delete(ctx, "k"), common.ErrStorage)
	require.ErrorIs(t, r.Clear(ctx), common.ErrStorage)

	_, err = r.List(ctx)
	require.ErrorIs(t, err, common.ErrStorage)
}

func TestUpdate_CommitsAllWrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	err := r.Update(ctx, func(tx Repository) error {
		if err := tx.Set(ctx, "authTokens", []byte(`{"alice":"tok1"}`)); err != nil {
			return err
		}
		return tx.Set(ctx, "activeAuthToken", []byte("tok1"))
	})
	require.NoError(t, err)

	v, err := r.Get(ctx, "activeAuthToken")
	require.NoError(t, err)
	assert.Equal(t, []byte("tok1"), v)
}

func TestUpdate_RollsBackOnError(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte("old")))

	boom := errors.New("boom")
	err := r.Update(ctx, func(tx Repository) error {
		require.NoError(t, tx.Set(ctx, "a", []byte("new")))
		require.NoError(t, tx.Set(ctx, "b", []byte("extra")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	v, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), v, "write must be rolled back")

	v, err = r.Get(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, v, "write inside the failed transaction must not persist")
}
