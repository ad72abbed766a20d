package responses

import (
	"github.com/memberhub/media-api/internal/domain/media"
)

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	Item *media.MediaItem `json:"item"`
}

// ItemResponse wraps a single item's metadata.
type ItemResponse struct {
	Item *media.MediaItem `json:"item"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Items []*media.MediaItem `json:"items"`
	Count int                `json:"count"`
}

// URLResponse carries a resolved streaming URL.
type URLResponse struct {
	URL string `json:"url"`
}

// StatsResponse wraps per-item access analytics.
type StatsResponse struct {
	Stats *media.AccessStats `json:"stats"`
}

// EventsResponse wraps the recent access events for one item.
type EventsResponse struct {
	Events []*media.AccessEvent `json:"events"`
	Count  int                  `json:"count"`
}
