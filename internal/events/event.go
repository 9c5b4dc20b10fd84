package events

import "time"

// Event types published during catalog scans.
const (
	TypeScanStarted       = "scan.started"
	TypeCollectionScanned = "collection.scanned"
	TypeScanCompleted     = "scan.completed"
	TypeScanFailed        = "scan.failed"
)

// Event is the base interface all events implement.
type Event interface {
	EventType() string
	Collection() string // collection id, empty for whole-scan events
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Type         string    `json:"type"`
	CollectionID string    `json:"collection_id,omitempty"`
	Timestamp    time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) Collection() string    { return e.CollectionID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent creates a BaseEvent with the current timestamp.
func NewBaseEvent(eventType, collectionID string) BaseEvent {
	return BaseEvent{
		Type:         eventType,
		CollectionID: collectionID,
		Timestamp:    time.Now(),
	}
}

// ScanStarted is emitted when a full catalog scan begins.
type ScanStarted struct {
	BaseEvent
	Collections int `json:"collections"`
}

// CollectionScanned is emitted after each collection finishes, whether it
// built or came up empty.
type CollectionScanned struct {
	BaseEvent
	Name     string `json:"name"`
	Items    int    `json:"items"`
	Episodes int    `json:"episodes,omitempty"`
	Degraded int    `json:"degraded,omitempty"`
	Skipped  int    `json:"skipped,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ScanCompleted is emitted once the new catalog snapshot is published.
type ScanCompleted struct {
	BaseEvent
	Items      int           `json:"items"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
}

// ScanFailed is emitted when a scan aborts without publishing a snapshot.
type ScanFailed struct {
	BaseEvent
	Error string `json:"error"`
}
