package userdata

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/medley/internal/migrations"
)

func TestOpen_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "userdata.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.CreateUser("alice", "secret")
	assert.NoError(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userdata.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.CreateUser("alice", "secret")
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	require.NoError(t, s.Close())

	// Reopening runs Migrate again against the populated file.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	u, err := s.GetUser("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
}

func TestMigrate_RecordsSchemaVersion(t *testing.T) {
	s := setupTestStore(t)

	var version int
	err := s.DB().QueryRow("PRAGMA user_version").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, len(migrations.All()), version)
}
