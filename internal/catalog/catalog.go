// Package catalog defines the media catalog data model: collections of
// movies and shows produced by a scan. Entities are built fresh each scan
// and never mutated afterwards; readers share them freely.
package catalog

import (
	"sort"
	"strings"
)

// Kind tells whether a collection holds movies or shows.
type Kind string

const (
	KindMovies Kind = "movies"
	KindShows  Kind = "shows"
)

// ParseKind maps config spellings to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "movies", "movie":
		return KindMovies, true
	case "shows", "show", "tv", "tvshows":
		return KindShows, true
	}
	return "", false
}

// ItemKind identifies the concrete type behind an Item.
type ItemKind string

const (
	ItemMovie   ItemKind = "movie"
	ItemShow    ItemKind = "show"
	ItemSeason  ItemKind = "season"
	ItemEpisode ItemKind = "episode"
)

// Item is implemented by every catalog entity addressable by id.
type Item interface {
	ItemID() string
	ItemKind() ItemKind
	ItemName() string
}

// Collection is one configured library root and everything scanned under it.
// Exactly one of Movies or Shows is populated, according to Kind.
type Collection struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Kind   Kind              `json:"kind"`
	Dir    string            `json:"dir"`
	Movies map[string]*Movie `json:"movies,omitempty"`
	Shows  map[string]*Show  `json:"shows,omitempty"`
}

// NewCollection returns an empty collection ready for the builder to fill.
func NewCollection(id, name string, kind Kind, dir string) *Collection {
	return &Collection{
		ID:     id,
		Name:   name,
		Kind:   kind,
		Dir:    dir,
		Movies: make(map[string]*Movie),
		Shows:  make(map[string]*Show),
	}
}

// ItemCount returns the number of top-level items.
func (c *Collection) ItemCount() int {
	return len(c.Movies) + len(c.Shows)
}

// Item finds any entity in the collection by id: movies, shows, and the
// seasons and episodes nested inside shows.
func (c *Collection) Item(id string) (Item, bool) {
	if m, ok := c.Movies[id]; ok {
		return m, true
	}
	if s, ok := c.Shows[id]; ok {
		return s, true
	}
	for _, show := range c.Shows {
		for _, season := range show.Seasons {
			if season.ID == id {
				return season, true
			}
			for _, ep := range season.Episodes {
				if ep.ID == id {
					return ep, true
				}
			}
		}
	}
	return nil, false
}

// SortedMovies returns the collection's movies ordered by sort title, then id.
func (c *Collection) SortedMovies() []*Movie {
	out := make([]*Movie, 0, len(c.Movies))
	for _, m := range c.Movies {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortTitle != out[j].SortTitle {
			return out[i].SortTitle < out[j].SortTitle
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SortedShows returns the collection's shows ordered by sort title, then id.
func (c *Collection) SortedShows() []*Show {
	out := make([]*Show, 0, len(c.Shows))
	for _, s := range c.Shows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortTitle != out[j].SortTitle {
			return out[i].SortTitle < out[j].SortTitle
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// GenreCount pairs a genre with the number of items carrying it.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// Genres tallies genres across the collection's top-level items,
// ordered by count descending, then name ascending.
func (c *Collection) Genres() []GenreCount {
	counts := make(map[string]int)
	for _, m := range c.Movies {
		for _, g := range m.Genres {
			counts[g]++
		}
	}
	for _, s := range c.Shows {
		for _, g := range s.Genres {
			counts[g]++
		}
	}
	out := make([]GenreCount, 0, len(counts))
	for g, n := range counts {
		out = append(out, GenreCount{Genre: g, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	return out
}
