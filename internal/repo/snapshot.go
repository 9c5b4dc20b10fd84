package repo

import (
	"sort"
	"time"

	"github.com/vmunix/medley/internal/catalog"
	"github.com/vmunix/medley/internal/scanner"
	"github.com/vmunix/medley/internal/search"
)

// Snapshot pairs the built collections with the search index derived from
// them. The two always describe the same scan: a lookup for any id the
// index returns succeeds against the same snapshot's collections. A
// snapshot is immutable once published; readers never see a half-updated
// catalog.
type Snapshot struct {
	Collections []*catalog.Collection
	Index       *search.Index
	ScannedAt   time.Time
	Reports     []*scanner.Report

	byID map[string]*catalog.Collection
}

func newSnapshot(cols []*catalog.Collection, reports []*scanner.Report, at time.Time) *Snapshot {
	byID := make(map[string]*catalog.Collection, len(cols))
	for _, c := range cols {
		byID[c.ID] = c
	}
	return &Snapshot{
		Collections: cols,
		Index:       search.Build(cols),
		ScannedAt:   at,
		Reports:     reports,
		byID:        byID,
	}
}

// emptySnapshot is what the repository serves before the first scan.
func emptySnapshot() *Snapshot {
	return newSnapshot(nil, nil, time.Time{})
}

// Collection finds a collection by id.
func (s *Snapshot) Collection(id string) (*catalog.Collection, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Item finds any entity by id along with the collection holding it.
func (s *Snapshot) Item(id string) (catalog.Item, *catalog.Collection, bool) {
	for _, c := range s.Collections {
		if item, ok := c.Item(id); ok {
			return item, c, true
		}
	}
	return nil, nil, false
}

// ItemCount sums top-level items across collections.
func (s *Snapshot) ItemCount() int {
	n := 0
	for _, c := range s.Collections {
		n += c.ItemCount()
	}
	return n
}

// EpisodeCount sums episodes across collections.
func (s *Snapshot) EpisodeCount() int {
	n := 0
	for _, c := range s.Collections {
		for _, show := range c.Shows {
			n += show.EpisodeCount()
		}
	}
	return n
}

// Genres tallies genres for one collection, or across all collections when
// collectionID is empty. Ordered by count descending, then name.
func (s *Snapshot) Genres(collectionID string) ([]catalog.GenreCount, bool) {
	if collectionID != "" {
		c, ok := s.byID[collectionID]
		if !ok {
			return nil, false
		}
		return c.Genres(), true
	}

	counts := make(map[string]int)
	for _, c := range s.Collections {
		for _, gc := range c.Genres() {
			counts[gc.Genre] += gc.Count
		}
	}
	out := make([]catalog.GenreCount, 0, len(counts))
	for g, n := range counts {
		out = append(out, catalog.GenreCount{Genre: g, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	return out, true
}
