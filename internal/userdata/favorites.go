package userdata

import (
	"database/sql"
	"fmt"
)

// AddFavorite marks an item for the user. Adding twice is a no-op.
func (s *Store) AddFavorite(userID int64, itemID string) error {
	_, err := s.db.Exec(
		"INSERT INTO favorites (user_id, item_id) VALUES (?, ?) ON CONFLICT(user_id, item_id) DO NOTHING",
		userID, itemID)
	if err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

// RemoveFavorite unmarks an item. Removing an absent favorite is a no-op.
func (s *Store) RemoveFavorite(userID int64, itemID string) error {
	if _, err := s.db.Exec("DELETE FROM favorites WHERE user_id = ? AND item_id = ?", userID, itemID); err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}

// Favorites returns the user's item ids, most recently added first.
func (s *Store) Favorites(userID int64) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT item_id FROM favorites WHERE user_id = ? ORDER BY rowid DESC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// IsFavorite reports whether the user marked the item.
func (s *Store) IsFavorite(userID int64, itemID string) (bool, error) {
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM favorites WHERE user_id = ? AND item_id = ?",
		userID, itemID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get favorite: %w", err)
	}
	return true, nil
}
