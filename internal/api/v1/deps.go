package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmunix/medley/internal/catalog"
	"github.com/vmunix/medley/internal/events"
	"github.com/vmunix/medley/internal/imagecache"
	"github.com/vmunix/medley/internal/repo"
	"github.com/vmunix/medley/internal/search"
	"github.com/vmunix/medley/internal/userdata"
)

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// Catalog is the published-catalog surface the API serves. Implemented by
// *repo.Repository; mocked in handler tests.
type Catalog interface {
	Collections() []*catalog.Collection
	Collection(id string) (*catalog.Collection, error)
	Item(id string) (catalog.Item, *catalog.Collection, error)
	Genres(collectionID string) ([]catalog.GenreCount, error)
	Search(query string, limit int) []search.Result
	FindSimilar(id string, limit int) ([]search.Result, error)
	Stats() repo.Stats
	ScanAll(ctx context.Context) (*repo.Snapshot, error)
	Scanning() bool
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Catalog Catalog

	// Optional dependencies (nil if not configured)
	Users    *userdata.Store   // Optional: user accounts, favorites, resume
	Bus      *events.Bus       // Optional: live event stream
	EventLog *events.EventLog  // Optional: event replay on /events
	Images   *imagecache.Cache // Optional: resized artwork
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Catalog == nil {
		return fmt.Errorf("%w: catalog", ErrMissingDependency)
	}
	return nil
}
