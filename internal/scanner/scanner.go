// Package scanner walks collection directories and builds catalog entities
// from what it finds on disk: video files, sidecar .nfo metadata, artwork,
// and subtitles. A scan never partially fails; problems are recorded in the
// report and the rest of the collection still builds.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/vmunix/medley/internal/catalog"
)

// Scanner builds collection catalogs from library directories.
type Scanner struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{logger: logger.With("component", "scanner")}
}

// ScanCollection walks dir and assembles a fresh collection. Item-level
// problems degrade or skip individual entries and are tallied in the
// report; only an unreadable root or a cancelled context is an error.
func (s *Scanner) ScanCollection(ctx context.Context, id, name string, kind catalog.Kind, dir string) (*catalog.Collection, *Report, error) {
	start := time.Now()
	report := &Report{CollectionID: id}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, report, fmt.Errorf("%w: %v", ErrRootUnavailable, err)
	}
	if !info.IsDir() {
		return nil, report, fmt.Errorf("%w: %s is not a directory", ErrRootUnavailable, dir)
	}

	root, err := listDir(dir)
	if err != nil {
		return nil, report, fmt.Errorf("%w: %v", ErrRootUnavailable, err)
	}

	col := catalog.NewCollection(id, name, kind, dir)
	b := &build{collectionID: id, report: report}

	for _, sub := range root.dirs {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}
		switch kind {
		case catalog.KindMovies:
			if m := b.movie(sub); m != nil {
				col.Movies[m.ID] = m
			}
		case catalog.KindShows:
			if sh := b.show(sub); sh != nil {
				col.Shows[sh.ID] = sh
			}
		}
	}

	report.Items = col.ItemCount()
	report.Duration = time.Since(start)
	s.logger.Debug("collection scanned",
		"collection", name,
		"items", report.Items,
		"episodes", report.Episodes,
		"degraded", report.Degraded,
		"skipped", report.SkippedItems+report.SkippedTrees,
		"duration", report.Duration)
	return col, report, nil
}
