package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "games.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func TestSQLite_Contract(t *testing.T) {
	runResultsContract(t, func(t *testing.T) Results { return NewSQLite(openTestDB(t)) })
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSQLiteUsers(t *testing.T) {
	ctx := context.Background()
	u := NewSQLiteUsers(openTestDB(t))

	created, err := u.CreateUser(ctx, "ana_1", "hash")
	require.NoError(t, err)

	_, err = u.CreateUser(ctx, "ANA_1", "hash")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	byName, err := u.UserByName(ctx, "Ana_1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, "hash", byName.PasswordHash)

	byID, err := u.UserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana_1", byID.Username)

	_, err = u.UserByName(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
