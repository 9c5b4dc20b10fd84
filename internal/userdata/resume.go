package userdata

import (
	"database/sql"
	"fmt"
	"time"
)

// SetResume stores the playback position in seconds, replacing any
// previous one. Negative positions clamp to zero.
func (s *Store) SetResume(userID int64, itemID string, position float64) error {
	if position < 0 {
		position = 0
	}
	_, err := s.db.Exec(`
		INSERT INTO resume (user_id, item_id, position, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, item_id) DO UPDATE SET position = excluded.position, updated_at = excluded.updated_at`,
		userID, itemID, position, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert resume: %w", err)
	}
	return nil
}

// Resume returns the stored playback position, with ok false when the
// user never started the item.
func (s *Store) Resume(userID int64, itemID string) (float64, bool, error) {
	var position float64
	err := s.db.QueryRow(
		"SELECT position FROM resume WHERE user_id = ? AND item_id = ?",
		userID, itemID,
	).Scan(&position)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get resume: %w", err)
	}
	return position, true, nil
}

// ClearResume drops the stored position, e.g. when playback finished.
func (s *Store) ClearResume(userID int64, itemID string) error {
	if _, err := s.db.Exec("DELETE FROM resume WHERE user_id = ? AND item_id = ?", userID, itemID); err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	return nil
}
