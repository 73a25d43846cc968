package services

import (
	"database/sql"
	"testing"

	"github.com/lmtavares/todo-notes-be/internal/database"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New("file::memory:")
	require.NoError(t, err)
	// One connection only, or every pooled connection would see its own
	// empty in-memory database.
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUser(t *testing.T, db *sql.DB, username string) int {
	t.Helper()

	res, err := db.Exec("INSERT INTO users(username, password_hash) VALUES(?, 'x')", username)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return int(id)
}
