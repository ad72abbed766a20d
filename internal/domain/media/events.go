package media

import "time"

// EventType names the kinds of recorded media access.
type EventType string

const (
	EventView     EventType = "view"
	EventDownload EventType = "download"
	EventStream   EventType = "stream"
	EventUpload   EventType = "upload"
	EventDelete   EventType = "delete"
	EventShare    EventType = "share"
)

// AccessEvent is an immutable fact about one touch of one media item.
// Events are append-only; nothing in the engine mutates or deletes them.
type AccessEvent struct {
	ID        string            `json:"id"`
	MediaID   string            `json:"media_id"`
	UserID    string            `json:"user_id"`
	EventType EventType         `json:"event_type"`
	Timestamp time.Time         `json:"timestamp"`
	Details   map[string]string `json:"details,omitempty"`
}

// AccessStats aggregates the event log for one media item.
type AccessStats struct {
	MediaID      string              `json:"media_id"`
	Counts       map[EventType]int64 `json:"counts"`
	TotalEvents  int64               `json:"total_events"`
	LastAccessed *time.Time          `json:"last_accessed,omitempty"`
}
