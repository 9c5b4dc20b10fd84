package scanner

import (
	"errors"
	"fmt"
	"time"
)

// ErrRootUnavailable marks a collection root that could not be read at all.
// The collection publishes empty for the cycle; other collections scan on.
var ErrRootUnavailable = errors.New("collection root unavailable")

// Severity classifies a non-fatal problem found during a scan.
type Severity string

const (
	// SeverityDegraded: a sidecar file was unusable and the item fell back
	// to name-derived metadata.
	SeverityDegraded Severity = "degraded"
	// SeverityItem: one item was excluded from the catalog.
	SeverityItem Severity = "skip-item"
	// SeveritySubtree: a directory could not be read and was skipped whole.
	SeveritySubtree Severity = "skip-subtree"
)

// Issue records one problem encountered while scanning. Issues never stop
// a scan; they are reported alongside the built collection.
type Issue struct {
	Severity Severity
	Path     string
	Err      error
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %v", i.Severity, i.Path, i.Err)
}

// Report tallies what one collection scan encountered.
type Report struct {
	CollectionID string
	Items        int // top-level items built
	Episodes     int
	Duration     time.Duration
	Degraded     int
	SkippedItems int
	SkippedTrees int
	Issues       []Issue
}

func (r *Report) record(sev Severity, path string, err error) {
	switch sev {
	case SeverityDegraded:
		r.Degraded++
	case SeverityItem:
		r.SkippedItems++
	case SeveritySubtree:
		r.SkippedTrees++
	}
	r.Issues = append(r.Issues, Issue{Severity: sev, Path: path, Err: err})
}
