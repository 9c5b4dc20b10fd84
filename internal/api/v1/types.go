// internal/api/v1/types.go
package v1

import (
	"time"

	"github.com/vmunix/medley/internal/catalog"
)

// statusResponse is the response for GET /status.
type statusResponse struct {
	Version     string     `json:"version"`
	UptimeSec   int64      `json:"uptime_seconds"`
	Collections int        `json:"collections"`
	Items       int        `json:"items"`
	Episodes    int        `json:"episodes"`
	IndexDocs   int        `json:"index_docs"`
	LastScan    *time.Time `json:"last_scan,omitempty"`
	Scanning    bool       `json:"scanning"`
}

// collectionSummary is the list representation of a collection.
type collectionSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Items    int    `json:"items"`
	Episodes int    `json:"episodes,omitempty"`
}

// listCollectionsResponse is the response for GET /collections.
type listCollectionsResponse struct {
	Items []collectionSummary `json:"items"`
	Total int                 `json:"total"`
}

// itemSummary is the list representation of a movie or show.
type itemSummary struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	Name     string   `json:"name"`
	Year     int      `json:"year,omitempty"`
	Rating   float64  `json:"rating,omitempty"`
	Genres   []string `json:"genres,omitempty"`
	Episodes int      `json:"episodes,omitempty"`
}

// collectionResponse is the response for GET /collections/{id}.
type collectionResponse struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Kind  string        `json:"kind"`
	Dir   string        `json:"dir"`
	Items []itemSummary `json:"items"`
	Total int           `json:"total"`
}

// genresResponse is the response for GET /collections/{id}/genres.
type genresResponse struct {
	Genres []catalog.GenreCount `json:"genres"`
	Total  int                  `json:"total"`
}

// itemResponse wraps a full catalog item with its kind and owning collection.
type itemResponse struct {
	Kind         string       `json:"kind"`
	CollectionID string       `json:"collection_id"`
	Item         catalog.Item `json:"item"`
}

// searchHit is one ranked result.
type searchHit struct {
	ID           string `json:"id"`
	CollectionID string `json:"collection_id"`
	Kind         string `json:"kind"`
	Name         string `json:"name"`
}

// searchResponse is the response for GET /search and GET /items/{id}/similar.
type searchResponse struct {
	Query   string      `json:"query,omitempty"`
	Results []searchHit `json:"results"`
	Total   int         `json:"total"`
}

// scanResponse is the response for POST /scan.
type scanResponse struct {
	Status   string `json:"status"`
	Items    int    `json:"items,omitempty"`
	Episodes int    `json:"episodes,omitempty"`
}

// loginRequest is the body for POST /sessions.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userResponse is the API representation of a user.
type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// sessionResponse is the response for a successful login.
type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

// favoritesResponse is the response for GET /users/me/favorites.
type favoritesResponse struct {
	Items []string `json:"items"`
	Total int      `json:"total"`
}

// resumeResponse is the response for GET /users/me/resume/{id}.
type resumeResponse struct {
	ItemID   string  `json:"item_id"`
	Position float64 `json:"position"`
}

// setResumeRequest is the body for PUT /users/me/resume/{id}.
type setResumeRequest struct {
	Position float64 `json:"position"`
}
