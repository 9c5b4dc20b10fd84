// internal/api/v1/api_test.go
package v1

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/medley/internal/api/v1/mocks"
	"github.com/vmunix/medley/internal/catalog"
	"github.com/vmunix/medley/internal/repo"
	"github.com/vmunix/medley/internal/scanner"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubScanner returns canned collections instead of walking a filesystem.
// With a gate set, scans block until the gate closes.
type stubScanner struct {
	mu      sync.Mutex
	cols    map[string]*catalog.Collection
	calls   atomic.Int32
	gate    chan struct{}
	started chan struct{}
}

func (f *stubScanner) ScanCollection(ctx context.Context, id, name string, kind catalog.Kind, dir string) (*catalog.Collection, *scanner.Report, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, &scanner.Report{CollectionID: id}, ctx.Err()
		}
	}
	f.mu.Lock()
	col := f.cols[id]
	f.mu.Unlock()
	if col == nil {
		col = catalog.NewCollection(id, name, kind, dir)
	}
	return col, &scanner.Report{CollectionID: id, Items: col.ItemCount(), Episodes: episodeTotal(col)}, nil
}

func (f *stubScanner) setCollection(id string, col *catalog.Collection) {
	f.mu.Lock()
	f.cols[id] = col
	f.mu.Unlock()
}

func episodeTotal(col *catalog.Collection) int {
	n := 0
	for _, sh := range col.Shows {
		n += sh.EpisodeCount()
	}
	return n
}

func movieCollection(id, name string, titles ...string) *catalog.Collection {
	col := catalog.NewCollection(id, name, catalog.KindMovies, "/media/"+id)
	for _, title := range titles {
		m := &catalog.Movie{
			ID:        catalog.ItemID(id, title),
			Title:     title,
			SortTitle: catalog.SortTitle(title),
			Year:      1995,
			Rating:    7.5,
			Genres:    []string{"Drama"},
		}
		col.Movies[m.ID] = m
	}
	return col
}

// newTestServer builds a server over a real repository seeded with one movie
// collection.
func newTestServer(t *testing.T) (*Server, *mux.Router, *stubScanner) {
	t.Helper()
	fake := &stubScanner{cols: map[string]*catalog.Collection{
		"films": movieCollection("films", "Films", "Heat", "Ronin", "Collateral"),
	}}
	defs := []repo.Definition{{ID: "films", Name: "Films", Kind: catalog.KindMovies, Dir: "/media/films"}}
	rep := repo.New(defs, fake, nil, testLogger())
	_, err := rep.ScanAll(context.Background())
	require.NoError(t, err, "initial scan")

	srv := New(ServerDeps{Catalog: rep}, Config{Version: "test"})
	router := mux.NewRouter()
	srv.RegisterRoutes(router)
	return srv, router, fake
}

func doRequest(router *mux.Router, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNew_ValidatesDeps(t *testing.T) {
	assert.Error(t, ServerDeps{}.Validate())
	assert.NoError(t, ServerDeps{Catalog: mocks.NewMockCatalog(gomock.NewController(t))}.Validate())
}

func TestGetStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cat := mocks.NewMockCatalog(ctrl)
	lastScan := time.Now().Add(-time.Minute)
	cat.EXPECT().Stats().Return(repo.Stats{
		Collections: 2,
		Items:       40,
		Episodes:    120,
		IndexDocs:   160,
		LastScan:    lastScan,
		Scanning:    true,
	})

	srv := New(ServerDeps{Catalog: cat}, Config{Version: "1.2.3"})
	router := mux.NewRouter()
	srv.RegisterRoutes(router)

	w := doRequest(router, http.MethodGet, "/api/v1/status", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, 2, resp.Collections)
	assert.Equal(t, 40, resp.Items)
	assert.Equal(t, 120, resp.Episodes)
	assert.Equal(t, 160, resp.IndexDocs)
	assert.True(t, resp.Scanning)
	require.NotNil(t, resp.LastScan)
	assert.WithinDuration(t, lastScan, *resp.LastScan, time.Second)
}

func TestGetStatus_BeforeFirstScan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cat := mocks.NewMockCatalog(ctrl)
	cat.EXPECT().Stats().Return(repo.Stats{})

	srv := New(ServerDeps{Catalog: cat}, Config{})
	router := mux.NewRouter()
	srv.RegisterRoutes(router)

	w := doRequest(router, http.MethodGet, "/api/v1/status", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "last_scan")
}

func TestListCollections(t *testing.T) {
	_, router, _ := newTestServer(t)

	w := doRequest(router, http.MethodGet, "/api/v1/collections", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp listCollectionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "films", resp.Items[0].ID)
	assert.Equal(t, "Films", resp.Items[0].Name)
	assert.Equal(t, "movies", resp.Items[0].Kind)
	assert.Equal(t, 3, resp.Items[0].Items)
}

func TestGetCollection_Found(t *testing.T) {
	_, router, _ := newTestServer(t)

	w := doRequest(router, http.MethodGet, "/api/v1/collections/films", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp collectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "films", resp.ID)
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Items, 3)

	// Items come back in sort-title order.
	assert.Equal(t, "Collateral", resp.Items[0].Name)
	assert.Equal(t, "Heat", resp.Items[1].Name)
	assert.Equal(t, "Ronin", resp.Items[2].Name)
	assert.Equal(t, "movie", resp.Items[0].Kind)
	assert.Equal(t, 1995, resp.Items[0].Year)
}

func TestGetCollection_NotFound(t *testing.T) {
	_, router, _ := newTestServer(t)

	w := doRequest(router, http.MethodGet, "/api/v1/collections/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var errResp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "NOT_FOUND", errResp.Code)
}

func TestGetGenres(t *testing.T) {
	_, router, _ := newTestServer(t)

	w := doRequest(router, http.MethodGet, "/api/v1/collections/films/genres", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp genresResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Genres, 1)
	assert.Equal(t, "Drama", resp.Genres[0].Genre)
	assert.Equal(t, 3, resp.Genres[0].Count)
}

func TestGetGenres_UnknownCollection(t *testing.T) {
	_, router, _ := newTestServer(t)

	w := doRequest(router, http.MethodGet, "/api/v1/collections/nope/genres", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCollectionItem(t *testing.T) {
	_, router, _ := newTestServer(t)
	id := catalog.ItemID("films", "Heat")

	w := doRequest(router, http.MethodGet, "/api/v1/collections/films/items/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Kind         string        `json:"kind"`
		CollectionID string        `json:"collection_id"`
		Item         catalog.Movie `json:"item"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "movie", resp.Kind)
	assert.Equal(t, "films", resp.CollectionID)
	assert.Equal(t, "Heat", resp.Item.Title)
	assert.Equal(t, []string{"Drama"}, resp.Item.Genres)
}

func TestGetCollectionItem_NotFound(t *testing.T) {
	_, router, _ := newTestServer(t)

	w := doRequest(router, http.MethodGet, "/api/v1/collections/films/items/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/collections/nope/items/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearch(t *testing.T) {
	_, router, _ := newTestServer(t)

	w := doRequest(router, http.MethodGet, "/api/v1/search?q=heat", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "heat", resp.Query)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "Heat", resp.Results[0].Name)
	assert.Equal(t, "films", resp.Results[0].CollectionID)
	assert.Equal(t, catalog.ItemID("films", "Heat"), resp.Results[0].ID)
}

func TestSearch_MissingQuery(t *testing.T) {
	_, router, _ := newTestServer(t)

	w := doRequest(router, http.MethodGet, "/api/v1/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "MISSING_QUERY", errResp.Code)
}

func TestSearch_InvalidLimit(t *testing.T) {
	_, router, _ := newTestServer(t)

	w := doRequest(router, http.MethodGet, "/api/v1/search?q=heat&limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "INVALID_LIMIT", errResp.Code)
}

func TestFindSimilar(t *testing.T) {
	_, router, _ := newTestServer(t)
	id := catalog.ItemID("films", "Heat")

	w := doRequest(router, http.MethodGet, "/api/v1/items/"+id+"/similar", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total, "the two other dramas")
	for _, hit := range resp.Results {
		assert.NotEqual(t, id, hit.ID, "an item is not similar to itself")
	}
}

func TestFindSimilar_UnknownItem(t *testing.T) {
	_, router, _ := newTestServer(t)

	w := doRequest(router, http.MethodGet, "/api/v1/items/missing/similar", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTriggerScan_Wait(t *testing.T) {
	_, router, fake := newTestServer(t)
	before := fake.calls.Load()

	w := doRequest(router, http.MethodPost, "/api/v1/scan?wait=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp scanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 3, resp.Items)
	assert.Equal(t, before+1, fake.calls.Load())
}

func TestTriggerScan_Async(t *testing.T) {
	fake := &stubScanner{cols: map[string]*catalog.Collection{
		"films": movieCollection("films", "Films", "Heat"),
	}}
	defs := []repo.Definition{{ID: "films", Name: "Films", Kind: catalog.KindMovies, Dir: "/media/films"}}
	rep := repo.New(defs, fake, nil, testLogger())

	srv := New(ServerDeps{Catalog: rep}, Config{})
	router := mux.NewRouter()
	srv.RegisterRoutes(router)

	w := doRequest(router, http.MethodPost, "/api/v1/scan", nil)
	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp scanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "started", resp.Status)

	require.Eventually(t, func() bool {
		return rep.Stats().Items == 1
	}, 2*time.Second, 10*time.Millisecond, "background scan should publish")
}

func TestTriggerScan_ConcurrentRequestsShareOneScan(t *testing.T) {
	fake := &stubScanner{
		cols: map[string]*catalog.Collection{
			"films": movieCollection("films", "Films", "Heat"),
		},
		gate:    make(chan struct{}),
		started: make(chan struct{}, 4),
	}
	defs := []repo.Definition{{ID: "films", Name: "Films", Kind: catalog.KindMovies, Dir: "/media/films"}}
	rep := repo.New(defs, fake, nil, testLogger())

	srv := New(ServerDeps{Catalog: rep}, Config{})
	router := mux.NewRouter()
	srv.RegisterRoutes(router)

	var wg sync.WaitGroup
	codes := make([]int, 2)
	post := func(i int) {
		defer wg.Done()
		w := doRequest(router, http.MethodPost, "/api/v1/scan?wait=true", nil)
		codes[i] = w.Code
	}

	wg.Add(1)
	go post(0)
	<-fake.started // first request is inside the scan

	wg.Add(1)
	go post(1)
	time.Sleep(20 * time.Millisecond) // let the second request join

	close(fake.gate)
	wg.Wait()

	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, codes)
	assert.Equal(t, int32(1), fake.calls.Load(), "one physical scan for both requests")
}
