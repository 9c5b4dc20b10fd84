package repo

import "errors"

var (
	// ErrCollectionNotFound is returned when no collection has the given id.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrItemNotFound is returned when no item in any collection has the
	// given id.
	ErrItemNotFound = errors.New("item not found")
)
