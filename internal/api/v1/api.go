// Package v1 implements the native REST API.
package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/vmunix/medley/internal/catalog"
	"github.com/vmunix/medley/internal/metrics"
	"github.com/vmunix/medley/internal/repo"
	"github.com/vmunix/medley/internal/search"
)

const (
	maxSearchLimit = 100
	defaultSearch  = 20
	defaultSimilar = 10
)

// Config holds API server configuration.
type Config struct {
	Version string
}

// Server is the v1 API server.
type Server struct {
	deps    ServerDeps
	cfg     Config
	started time.Time
}

// New creates a new v1 API server.
func New(deps ServerDeps, cfg Config) *Server {
	return &Server{deps: deps, cfg: cfg, started: time.Now()}
}

// RegisterRoutes registers API routes on the given router.
func (s *Server) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()

	// Catalog
	api.HandleFunc("/status", s.getStatus).Methods(http.MethodGet)
	api.HandleFunc("/collections", s.listCollections).Methods(http.MethodGet)
	api.HandleFunc("/collections/{id}", s.getCollection).Methods(http.MethodGet)
	api.HandleFunc("/collections/{id}/genres", s.getGenres).Methods(http.MethodGet)
	api.HandleFunc("/collections/{id}/items/{item}", s.getCollectionItem).Methods(http.MethodGet)

	// Search
	api.HandleFunc("/search", s.search).Methods(http.MethodGet)
	api.HandleFunc("/items/{id}/similar", s.findSimilar).Methods(http.MethodGet)

	// Artwork
	api.HandleFunc("/items/{id}/images/{kind}", s.getItemImage).Methods(http.MethodGet)

	// Scans & events
	api.HandleFunc("/scan", s.triggerScan).Methods(http.MethodPost)
	api.HandleFunc("/events", s.streamEvents).Methods(http.MethodGet)

	// Sessions
	api.HandleFunc("/sessions", s.requireUsers(s.login)).Methods(http.MethodPost)
	api.HandleFunc("/sessions", s.requireUsers(s.logout)).Methods(http.MethodDelete)

	// Per-user state
	me := api.PathPrefix("/users/me").Subrouter()
	me.Use(s.requireUser)
	me.HandleFunc("/favorites", s.listFavorites).Methods(http.MethodGet)
	me.HandleFunc("/favorites/{id}", s.addFavorite).Methods(http.MethodPut)
	me.HandleFunc("/favorites/{id}", s.removeFavorite).Methods(http.MethodDelete)
	me.HandleFunc("/resume/{id}", s.getResume).Methods(http.MethodGet)
	me.HandleFunc("/resume/{id}", s.setResume).Methods(http.MethodPut)
	me.HandleFunc("/resume/{id}", s.clearResume).Methods(http.MethodDelete)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// pathVar extracts a path variable from the request.
func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

// queryInt parses an integer query parameter with a default.
func queryInt(r *http.Request, name string, defaultVal int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}

// queryBool parses a boolean query parameter, false when absent or invalid.
func queryBool(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	st := s.deps.Catalog.Stats()
	resp := statusResponse{
		Version:     s.cfg.Version,
		UptimeSec:   int64(time.Since(s.started).Seconds()),
		Collections: st.Collections,
		Items:       st.Items,
		Episodes:    st.Episodes,
		IndexDocs:   st.IndexDocs,
		Scanning:    st.Scanning,
	}
	if !st.LastScan.IsZero() {
		t := st.LastScan
		resp.LastScan = &t
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listCollections(w http.ResponseWriter, r *http.Request) {
	cols := s.deps.Catalog.Collections()
	resp := listCollectionsResponse{
		Items: make([]collectionSummary, len(cols)),
		Total: len(cols),
	}
	for i, col := range cols {
		resp.Items[i] = summarizeCollection(col)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getCollection(w http.ResponseWriter, r *http.Request) {
	col, err := s.deps.Catalog.Collection(pathVar(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrCollectionNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Collection not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "CATALOG_ERROR", err.Error())
		return
	}

	resp := collectionResponse{
		ID:   col.ID,
		Name: col.Name,
		Kind: string(col.Kind),
		Dir:  col.Dir,
	}
	for _, m := range col.SortedMovies() {
		resp.Items = append(resp.Items, summarizeItem(m))
	}
	for _, sh := range col.SortedShows() {
		resp.Items = append(resp.Items, summarizeItem(sh))
	}
	resp.Total = len(resp.Items)
	if resp.Items == nil {
		resp.Items = []itemSummary{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.deps.Catalog.Genres(pathVar(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrCollectionNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Collection not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "CATALOG_ERROR", err.Error())
		return
	}
	if genres == nil {
		genres = []catalog.GenreCount{}
	}
	writeJSON(w, http.StatusOK, genresResponse{Genres: genres, Total: len(genres)})
}

func (s *Server) getCollectionItem(w http.ResponseWriter, r *http.Request) {
	col, err := s.deps.Catalog.Collection(pathVar(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrCollectionNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Collection not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "CATALOG_ERROR", err.Error())
		return
	}

	item, ok := col.Item(pathVar(r, "item"))
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Item not found in collection")
		return
	}

	writeJSON(w, http.StatusOK, itemResponse{
		Kind:         string(item.ItemKind()),
		CollectionID: col.ID,
		Item:         item,
	})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "MISSING_QUERY", "q parameter is required")
		return
	}
	limit := queryInt(r, "limit", defaultSearch)
	if limit < 1 {
		writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be positive")
		return
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	metrics.SearchQueriesTotal.Inc()
	results := s.deps.Catalog.Search(q, limit)
	writeJSON(w, http.StatusOK, searchResponse{
		Query:   q,
		Results: toHits(results),
		Total:   len(results),
	})
}

func (s *Server) findSimilar(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultSimilar)
	if limit < 1 {
		writeError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be positive")
		return
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	results, err := s.deps.Catalog.FindSimilar(pathVar(r, "id"), limit)
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "CATALOG_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Results: toHits(results),
		Total:   len(results),
	})
}

// triggerScan starts a full rescan. Concurrent requests join the scan already
// in flight rather than starting another. With ?wait=true the response is held
// until the new snapshot is published.
func (s *Server) triggerScan(w http.ResponseWriter, r *http.Request) {
	if queryBool(r, "wait") {
		snap, err := s.deps.Catalog.ScanAll(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "SCAN_FAILED", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, scanResponse{
			Status:   "completed",
			Items:    snap.ItemCount(),
			Episodes: snap.EpisodeCount(),
		})
		return
	}

	status := "started"
	if s.deps.Catalog.Scanning() {
		status = "already_running"
	}
	go func() {
		_, _ = s.deps.Catalog.ScanAll(context.Background())
	}()
	writeJSON(w, http.StatusAccepted, scanResponse{Status: status})
}

func summarizeCollection(col *catalog.Collection) collectionSummary {
	sum := collectionSummary{
		ID:    col.ID,
		Name:  col.Name,
		Kind:  string(col.Kind),
		Items: col.ItemCount(),
	}
	for _, sh := range col.Shows {
		sum.Episodes += sh.EpisodeCount()
	}
	return sum
}

func summarizeItem(it catalog.Item) itemSummary {
	sum := itemSummary{
		ID:   it.ItemID(),
		Kind: string(it.ItemKind()),
		Name: it.ItemName(),
	}
	switch v := it.(type) {
	case *catalog.Movie:
		sum.Year = v.Year
		sum.Rating = v.Rating
		sum.Genres = v.Genres
	case *catalog.Show:
		sum.Year = v.Year
		sum.Rating = v.Rating
		sum.Genres = v.Genres
		sum.Episodes = v.EpisodeCount()
	}
	return sum
}

func toHits(results []search.Result) []searchHit {
	hits := make([]searchHit, len(results))
	for i, res := range results {
		hits[i] = searchHit{
			ID:           res.ID,
			CollectionID: res.CollectionID,
			Kind:         string(res.Kind),
			Name:         res.Name,
		}
	}
	return hits
}
