// internal/userdata/testutil_test.go
package userdata

import (
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "userdata.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustCreateUser(t *testing.T, s *Store, username string) *User {
	t.Helper()
	u, err := s.CreateUser(username, "hunter2")
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}
