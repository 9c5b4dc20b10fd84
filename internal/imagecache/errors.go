package imagecache

import "errors"

var (
	// ErrDisabled indicates no cache directory is configured.
	ErrDisabled = errors.New("image cache disabled")

	// ErrNotFound indicates the source image is missing or unreadable.
	ErrNotFound = errors.New("image not found")
)
