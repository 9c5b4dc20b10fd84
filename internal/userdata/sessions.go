package userdata

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long a login stays valid.
const DefaultSessionTTL = 30 * 24 * time.Hour

// Session is a bearer token granting access as a user.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSession issues a fresh token for the user. A non-positive ttl
// falls back to DefaultSessionTTL.
func (s *Store) CreateSession(userID int64, ttl time.Duration) (*Session, error) {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := time.Now().UTC()
	sess := &Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	_, err := s.db.Exec(
		"INSERT INTO sessions (token, user_id, expires_at, created_at, last_seen_at) VALUES (?, ?, ?, ?, ?)",
		sess.Token, sess.UserID, sess.ExpiresAt, sess.CreatedAt, now)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// UserForToken resolves a session token to its user. Expired tokens are
// refused; valid ones get their last_seen_at refreshed.
func (s *Store) UserForToken(token string) (*User, error) {
	var u User
	err := s.db.QueryRow(`
		SELECT u.id, u.username, u.created_at
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.token = ? AND s.expires_at > ?`,
		token, time.Now().UTC(),
	).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if _, err := s.db.Exec("UPDATE sessions SET last_seen_at = ? WHERE token = ?", time.Now().UTC(), token); err != nil {
		return nil, fmt.Errorf("touch session: %w", err)
	}
	return &u, nil
}

// DeleteSession revokes a token. Revoking an unknown token is not an error.
func (s *Store) DeleteSession(token string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE token = ?", token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PruneSessions removes expired sessions, returning how many went away.
func (s *Store) PruneSessions() (int64, error) {
	res, err := s.db.Exec("DELETE FROM sessions WHERE expires_at <= ?", time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return res.RowsAffected()
}

// CountSessions returns the number of unexpired sessions.
func (s *Store) CountSessions() (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM sessions WHERE expires_at > ?", time.Now().UTC()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}
