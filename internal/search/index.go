// Package search provides the in-memory query index built alongside each
// catalog snapshot. An Index is immutable once built and safe for
// concurrent readers; a rescan builds a new one rather than mutating.
//
// Movies, shows, and episodes are indexed; seasons are structural and
// reachable through their show. Matching is case- and accent-insensitive
// with a Jaro-Winkler assist for near-miss queries, and every ranking has
// a deterministic tie-break so identical catalogs always return identical
// result orders.
package search

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/vmunix/medley/internal/catalog"
)

// DefaultLimit bounds result counts when the caller does not.
const DefaultLimit = 20

// Match scores. A name-level match dominates token hits; tokens found
// only in overview or genre text count least.
const (
	scoreExact     = 100
	scorePrefix    = 80
	scoreContains  = 60
	scoreNameToken = 10
	scoreBodyToken = 4

	// fuzzyThreshold is the Jaro-Winkler floor for queries that match
	// nothing literally. Below it a doc simply does not match.
	fuzzyThreshold = 0.9
)

// Result is one search hit.
type Result struct {
	ID           string           `json:"id"`
	CollectionID string           `json:"collection_id"`
	Kind         catalog.ItemKind `json:"kind"`
	Name         string           `json:"name"`
}

type doc struct {
	id           string
	collectionID string
	kind         catalog.ItemKind
	name         string
	folded       string
	nameTokens   map[string]bool
	bodyTokens   map[string]bool
	genres       map[string]bool
	rating       float64
	year         int
}

// Index holds the searchable documents of one catalog snapshot.
type Index struct {
	docs []doc
	pos  map[string]int
}

// Build indexes every movie, show, and episode in the given collections.
func Build(collections []*catalog.Collection) *Index {
	ix := &Index{pos: make(map[string]int)}
	for _, col := range collections {
		for _, m := range col.SortedMovies() {
			ix.add(movieDoc(col.ID, m))
		}
		for _, s := range col.SortedShows() {
			ix.add(showDoc(col.ID, s))
			for _, season := range s.SortedSeasons() {
				for _, ep := range season.SortedEpisodes() {
					ix.add(episodeDoc(col.ID, ep))
				}
			}
		}
	}
	return ix
}

func (ix *Index) add(d doc) {
	ix.pos[d.id] = len(ix.docs)
	ix.docs = append(ix.docs, d)
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	return len(ix.docs)
}

// Search returns up to limit items matching the query, best match first.
// Ties break by year descending, then id, so result order is stable.
func (ix *Index) Search(query string, limit int) []Result {
	folded := Fold(query)
	if folded == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	qTokens := strings.Fields(folded)

	type hit struct {
		idx   int
		score int
	}
	var hits []hit
	for i := range ix.docs {
		d := &ix.docs[i]
		score := 0
		switch {
		case d.folded == folded:
			score = scoreExact
		case strings.HasPrefix(d.folded, folded):
			score = scorePrefix
		case strings.Contains(d.folded, folded):
			score = scoreContains
		}
		for _, tok := range qTokens {
			switch {
			case d.nameTokens[tok]:
				score += scoreNameToken
			case d.bodyTokens[tok]:
				score += scoreBodyToken
			}
		}
		if score == 0 {
			if sim := float64(edlib.JaroWinklerSimilarity(folded, d.folded)); sim >= fuzzyThreshold {
				score = int(sim * scoreContains)
			}
		}
		if score > 0 {
			hits = append(hits, hit{idx: i, score: score})
		}
	}

	sort.Slice(hits, func(a, b int) bool {
		ha, hb := hits[a], hits[b]
		if ha.score != hb.score {
			return ha.score > hb.score
		}
		da, db := &ix.docs[ha.idx], &ix.docs[hb.idx]
		if da.year != db.year {
			return da.year > db.year
		}
		return da.id < db.id
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]Result, len(hits))
	for i, h := range hits {
		out[i] = ix.result(h.idx)
	}
	return out
}

// FindSimilar returns up to limit items of the same kind sharing at least
// one genre with the given item, ordered by shared-genre count, then
// rating, then id. Unknown ids and items without genres yield nothing.
func (ix *Index) FindSimilar(id string, limit int) []Result {
	i, ok := ix.pos[id]
	if !ok {
		return nil
	}
	src := &ix.docs[i]
	if len(src.genres) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	type cand struct {
		idx     int
		overlap int
	}
	var cands []cand
	for j := range ix.docs {
		if j == i {
			continue
		}
		d := &ix.docs[j]
		if d.kind != src.kind {
			continue
		}
		overlap := 0
		for g := range src.genres {
			if d.genres[g] {
				overlap++
			}
		}
		if overlap > 0 {
			cands = append(cands, cand{idx: j, overlap: overlap})
		}
	}

	sort.Slice(cands, func(a, b int) bool {
		ca, cb := cands[a], cands[b]
		if ca.overlap != cb.overlap {
			return ca.overlap > cb.overlap
		}
		da, db := &ix.docs[ca.idx], &ix.docs[cb.idx]
		if da.rating != db.rating {
			return da.rating > db.rating
		}
		return da.id < db.id
	})

	if len(cands) > limit {
		cands = cands[:limit]
	}
	out := make([]Result, len(cands))
	for i, c := range cands {
		out[i] = ix.result(c.idx)
	}
	return out
}

func (ix *Index) result(i int) Result {
	d := &ix.docs[i]
	return Result{ID: d.id, CollectionID: d.collectionID, Kind: d.kind, Name: d.name}
}

func movieDoc(colID string, m *catalog.Movie) doc {
	d := newDoc(colID, m.ID, catalog.ItemMovie, m.Title, m.Overview, m.Genres)
	d.rating = m.Rating
	d.year = m.Year
	if d.year == 0 {
		d.year = premieredYear(m.Premiered)
	}
	return d
}

func showDoc(colID string, s *catalog.Show) doc {
	d := newDoc(colID, s.ID, catalog.ItemShow, s.Title, s.Overview, s.Genres)
	d.rating = s.Rating
	d.year = s.Year
	if d.year == 0 {
		d.year = premieredYear(s.Premiered)
	}
	return d
}

func episodeDoc(colID string, ep *catalog.Episode) doc {
	d := newDoc(colID, ep.ID, catalog.ItemEpisode, ep.Title, ep.Overview, nil)
	d.rating = ep.Rating
	d.year = premieredYear(ep.Premiered)
	return d
}

func newDoc(colID, id string, kind catalog.ItemKind, name, overview string, genres []string) doc {
	d := doc{
		id:           id,
		collectionID: colID,
		kind:         kind,
		name:         name,
		folded:       Fold(name),
		nameTokens:   make(map[string]bool),
		bodyTokens:   make(map[string]bool),
		genres:       make(map[string]bool, len(genres)),
	}
	for _, tok := range strings.Fields(d.folded) {
		d.nameTokens[tok] = true
	}
	for _, tok := range foldTokens(overview) {
		d.bodyTokens[tok] = true
	}
	for _, g := range genres {
		d.genres[Fold(g)] = true
		for _, tok := range foldTokens(g) {
			d.bodyTokens[tok] = true
		}
	}
	return d
}

func premieredYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
