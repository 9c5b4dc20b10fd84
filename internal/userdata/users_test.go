package userdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_Authenticate(t *testing.T) {
	s := setupTestStore(t)

	created, err := s.CreateUser("alice", "secret")
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	assert.Equal(t, "alice", created.Username)

	u, err := s.Authenticate("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	s := setupTestStore(t)
	mustCreateUser(t, s, "alice")

	_, err := s.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Authenticate("nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUser_Duplicate(t *testing.T) {
	s := setupTestStore(t)
	mustCreateUser(t, s, "alice")

	_, err := s.CreateUser("alice", "other")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestCreateUser_EmptyUsername(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.CreateUser("", "secret")
	assert.Error(t, err)
}

func TestListUsers_Ordered(t *testing.T) {
	s := setupTestStore(t)
	mustCreateUser(t, s, "carol")
	mustCreateUser(t, s, "alice")
	mustCreateUser(t, s, "bob")

	users, err := s.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	assert.Equal(t, "carol", users[2].Username)
}

func TestDeleteUser(t *testing.T) {
	s := setupTestStore(t)
	mustCreateUser(t, s, "alice")

	require.NoError(t, s.DeleteUser("alice"))

	_, err := s.GetUser("alice")
	assert.ErrorIs(t, err, ErrUserNotFound)

	assert.ErrorIs(t, s.DeleteUser("alice"), ErrUserNotFound)
}

func TestSetPassword(t *testing.T) {
	s := setupTestStore(t)
	mustCreateUser(t, s, "alice")

	require.NoError(t, s.SetPassword("alice", "newsecret"))

	_, err := s.Authenticate("alice", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Authenticate("alice", "newsecret")
	assert.NoError(t, err)

	assert.ErrorIs(t, s.SetPassword("nobody", "x"), ErrUserNotFound)
}
