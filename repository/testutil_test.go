package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/youness/libris/database"
)

// newTestDB, her test için izole bir in-memory SQLite açar ve
// migration'ları çalıştırır.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(":memory:", database.Migrations())
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })
	return db
}
