package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientStatus_Success(t *testing.T) {
	lastScan := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	srv := newMockServer(t).
		ExpectPath("/api/v1/status").
		ExpectGET().
		RespondJSON(StatusResponse{
			Version:     "1.0.0",
			Collections: 2,
			Items:       150,
			Episodes:    900,
			IndexDocs:   152,
			LastScan:    &lastScan,
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	status, err := client.Status()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", status.Version)
	assert.Equal(t, 150, status.Items)
	require.NotNil(t, status.LastScan)
	assert.Equal(t, lastScan, status.LastScan.UTC())
	assert.False(t, status.Scanning)
}

func TestClientStatus_ServerError(t *testing.T) {
	srv := newMockServer(t).
		RespondError(http.StatusInternalServerError, "internal server error").
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Status()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "internal server error")
}

func TestClientStatus_ConnectionError(t *testing.T) {
	// Create a server and immediately close it to simulate connection error
	srv := newMockServer(t).Build()
	srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Status()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestClientCollections(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/collections").
		ExpectGET().
		RespondJSON(ListCollectionsResponse{
			Items: []CollectionSummary{
				{ID: "films", Name: "Films", Kind: "movies", Items: 120},
				{ID: "tv", Name: "TV", Kind: "shows", Items: 30, Episodes: 900},
			},
			Total: 2,
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Collections()
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "films", resp.Items[0].ID)
	assert.Equal(t, 900, resp.Items[1].Episodes)
}

func TestClientCollection(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/collections/films").
		ExpectGET().
		RespondJSON(CollectionResponse{
			ID:   "films",
			Name: "Films",
			Kind: "movies",
			Dir:  "/media/films",
			Items: []ItemSummary{
				{ID: "abc", Kind: "movie", Name: "Heat", Year: 1995, Genres: []string{"Crime"}},
			},
			Total: 1,
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Collection("films")
	require.NoError(t, err)
	assert.Equal(t, "Films", resp.Name)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Heat", resp.Items[0].Name)
	assert.Equal(t, 1995, resp.Items[0].Year)
}

func TestClientSearch(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/search").
		ExpectGET().
		Handler(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "heat", r.URL.Query().Get("q"))
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			respondJSON(t, w, SearchResponse{
				Query: "heat",
				Results: []SearchHit{
					{ID: "abc", CollectionID: "films", Kind: "movie", Name: "Heat"},
				},
				Total: 1,
			})
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Search("heat", 5)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Heat", resp.Results[0].Name)
	assert.Equal(t, "films", resp.Results[0].CollectionID)
}

func TestClientSimilar(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/items/abc/similar").
		ExpectGET().
		RespondJSON(SearchResponse{
			Results: []SearchHit{
				{ID: "def", CollectionID: "films", Kind: "movie", Name: "Ronin"},
			},
			Total: 1,
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Similar("abc", 0)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Ronin", resp.Results[0].Name)
}

func TestClientScan_Async(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/scan").
		ExpectPOST().
		Handler(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte(`{"status":"started"}`))
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Scan(false)
	require.NoError(t, err)
	assert.Equal(t, "started", resp.Status)
}

func TestClientScan_Wait(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/scan").
		ExpectPOST().
		Handler(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "true", r.URL.Query().Get("wait"))
			respondJSON(t, w, ScanResponse{Status: "completed", Items: 42})
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Scan(true)
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 42, resp.Items)
}

func TestClientGenres(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/collections/films/genres").
		ExpectGET().
		RespondJSON(GenresResponse{
			Genres: []GenreCount{{Genre: "Crime", Count: 12}},
			Total:  1,
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	resp, err := client.Genres("films")
	require.NoError(t, err)
	require.Len(t, resp.Genres, 1)
	assert.Equal(t, "Crime", resp.Genres[0].Genre)
	assert.Equal(t, 12, resp.Genres[0].Count)
}
