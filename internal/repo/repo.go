// Package repo owns the published catalog. It runs scans, builds the
// (collections, index) snapshot as one unit, and swaps it in atomically so
// queries always see a catalog and a search index that agree with each
// other. Readers never block on a scan, and concurrent scan requests
// coalesce into a single walk.
package repo

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/vmunix/medley/internal/catalog"
	"github.com/vmunix/medley/internal/events"
	"github.com/vmunix/medley/internal/metrics"
	"github.com/vmunix/medley/internal/scanner"
	"github.com/vmunix/medley/internal/search"
)

// Definition describes one collection to scan. An empty ID gets a random
// one at startup; configure an explicit id to keep item ids stable across
// restarts.
type Definition struct {
	ID   string
	Name string
	Kind catalog.Kind
	Dir  string
}

// CollectionScanner builds one collection from disk.
type CollectionScanner interface {
	ScanCollection(ctx context.Context, id, name string, kind catalog.Kind, dir string) (*catalog.Collection, *scanner.Report, error)
}

// Stats summarizes the published snapshot.
type Stats struct {
	Collections int       `json:"collections"`
	Items       int       `json:"items"`
	Episodes    int       `json:"episodes"`
	IndexDocs   int       `json:"index_docs"`
	LastScan    time.Time `json:"last_scan"`
	Scanning    bool      `json:"scanning"`
}

// Repository holds the current catalog snapshot and coordinates scans.
type Repository struct {
	defs    []Definition
	scanner CollectionScanner
	bus     *events.Bus
	logger  *slog.Logger

	mu   sync.RWMutex
	snap *Snapshot

	group    singleflight.Group
	scanning atomic.Bool
}

// New creates a repository serving an empty catalog until the first scan.
func New(defs []Definition, sc CollectionScanner, bus *events.Bus, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	if bus == nil {
		bus = events.NewBus(nil, logger)
	}
	for i := range defs {
		if defs[i].ID == "" {
			defs[i].ID = uuid.NewString()
		}
	}
	return &Repository{
		defs:    defs,
		scanner: sc,
		bus:     bus,
		logger:  logger.With("component", "repo"),
		snap:    emptySnapshot(),
	}
}

// Snapshot returns the currently published snapshot. Callers needing
// multiple consistent reads should hold on to it rather than calling the
// repository's per-query methods repeatedly.
func (r *Repository) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

// Scanning reports whether a scan is in flight.
func (r *Repository) Scanning() bool {
	return r.scanning.Load()
}

// ScanAll rescans every collection and publishes a new snapshot.
// Concurrent callers coalesce: the filesystem is walked once and everyone
// receives the same result.
func (r *Repository) ScanAll(ctx context.Context) (*Snapshot, error) {
	v, err, _ := r.group.Do("scan", func() (any, error) {
		return r.scanAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (r *Repository) scanAll(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	r.scanning.Store(true)
	metrics.ScanRunning.Set(1)
	defer func() {
		r.scanning.Store(false)
		metrics.ScanRunning.Set(0)
	}()

	r.logger.Info("scan started", "collections", len(r.defs))
	r.bus.Publish(ctx, &events.ScanStarted{
		BaseEvent:   events.NewBaseEvent(events.TypeScanStarted, ""),
		Collections: len(r.defs),
	})

	cols := make([]*catalog.Collection, 0, len(r.defs))
	reports := make([]*scanner.Report, 0, len(r.defs))
	for _, def := range r.defs {
		col, rep, err := r.scanner.ScanCollection(ctx, def.ID, def.Name, def.Kind, def.Dir)
		if err != nil {
			if ctx.Err() != nil {
				metrics.ScansTotal.WithLabelValues("failure").Inc()
				r.bus.Publish(ctx, &events.ScanFailed{
					BaseEvent: events.NewBaseEvent(events.TypeScanFailed, ""),
					Error:     err.Error(),
				})
				return nil, err
			}
			// The collection is unavailable this cycle; publish it empty
			// rather than keeping stale items or failing the whole scan.
			r.logger.Error("collection scan failed", "collection", def.Name, "error", err)
			metrics.ScanErrors.WithLabelValues(def.Name).Inc()
			col = catalog.NewCollection(def.ID, def.Name, def.Kind, def.Dir)
			if rep == nil {
				rep = &scanner.Report{CollectionID: def.ID}
			}
			r.bus.Publish(ctx, &events.CollectionScanned{
				BaseEvent: events.NewBaseEvent(events.TypeCollectionScanned, def.ID),
				Name:      def.Name,
				Error:     err.Error(),
			})
			cols = append(cols, col)
			reports = append(reports, rep)
			continue
		}

		recordReport(def, col, rep)
		r.bus.Publish(ctx, &events.CollectionScanned{
			BaseEvent: events.NewBaseEvent(events.TypeCollectionScanned, def.ID),
			Name:      def.Name,
			Items:     rep.Items,
			Episodes:  rep.Episodes,
			Degraded:  rep.Degraded,
			Skipped:   rep.SkippedItems + rep.SkippedTrees,
		})
		cols = append(cols, col)
		reports = append(reports, rep)
	}

	snap := newSnapshot(cols, reports, time.Now())

	r.mu.Lock()
	r.snap = snap
	r.mu.Unlock()

	duration := time.Since(start)
	metrics.ScansTotal.WithLabelValues("success").Inc()
	metrics.ScanDuration.Observe(duration.Seconds())
	metrics.ScanLastTimestamp.Set(float64(snap.ScannedAt.Unix()))
	metrics.ScanLastDuration.Set(duration.Seconds())
	metrics.IndexDocuments.Set(float64(snap.Index.Len()))

	r.logger.Info("scan completed",
		"collections", len(cols),
		"items", snap.ItemCount(),
		"episodes", snap.EpisodeCount(),
		"duration", duration)
	r.bus.Publish(ctx, &events.ScanCompleted{
		BaseEvent:  events.NewBaseEvent(events.TypeScanCompleted, ""),
		Items:      snap.ItemCount(),
		Duration:   duration,
		DurationMS: duration.Milliseconds(),
	})
	return snap, nil
}

func recordReport(def Definition, col *catalog.Collection, rep *scanner.Report) {
	metrics.CatalogItems.WithLabelValues(def.Name, string(def.Kind)).Set(float64(col.ItemCount()))
	metrics.CatalogEpisodes.WithLabelValues(def.Name).Set(float64(rep.Episodes))
	metrics.ItemsSkippedTotal.Add(float64(rep.SkippedItems + rep.SkippedTrees))
	for _, issue := range rep.Issues {
		metrics.ScanIssues.WithLabelValues(string(issue.Severity)).Inc()
	}
}

// Collections returns the published collections in configuration order.
func (r *Repository) Collections() []*catalog.Collection {
	return r.Snapshot().Collections
}

// Collection finds a collection by id.
func (r *Repository) Collection(id string) (*catalog.Collection, error) {
	c, ok := r.Snapshot().Collection(id)
	if !ok {
		return nil, ErrCollectionNotFound
	}
	return c, nil
}

// Item finds any catalog entity by id along with its collection.
func (r *Repository) Item(id string) (catalog.Item, *catalog.Collection, error) {
	item, col, ok := r.Snapshot().Item(id)
	if !ok {
		return nil, nil, ErrItemNotFound
	}
	return item, col, nil
}

// Genres tallies genre counts for one collection, or for the whole
// catalog when collectionID is empty.
func (r *Repository) Genres(collectionID string) ([]catalog.GenreCount, error) {
	genres, ok := r.Snapshot().Genres(collectionID)
	if !ok {
		return nil, ErrCollectionNotFound
	}
	return genres, nil
}

// Search queries the published index.
func (r *Repository) Search(query string, limit int) []search.Result {
	return r.Snapshot().Index.Search(query, limit)
}

// FindSimilar returns items related to the given one. The lookup and the
// ranking run against a single snapshot.
func (r *Repository) FindSimilar(id string, limit int) ([]search.Result, error) {
	snap := r.Snapshot()
	if _, _, ok := snap.Item(id); !ok {
		return nil, ErrItemNotFound
	}
	return snap.Index.FindSimilar(id, limit), nil
}

// Stats summarizes the published snapshot.
func (r *Repository) Stats() Stats {
	snap := r.Snapshot()
	return Stats{
		Collections: len(snap.Collections),
		Items:       snap.ItemCount(),
		Episodes:    snap.EpisodeCount(),
		IndexDocs:   snap.Index.Len(),
		LastScan:    snap.ScannedAt,
		Scanning:    r.scanning.Load(),
	}
}
