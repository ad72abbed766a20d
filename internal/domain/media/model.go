package media

import (
	"strings"
	"time"
)

// MediaType classifies an asset by its content family.
type MediaType string

const (
	TypeImage    MediaType = "image"
	TypeVideo    MediaType = "video"
	TypeAudio    MediaType = "audio"
	TypeDocument MediaType = "document"
)

// ProcessingStatus tracks the lifecycle of an item's bytes.
// pending -> processing -> completed, or pending/processing -> failed.
// failed is terminal; a failed item is re-uploaded under a new id.
type ProcessingStatus string

const (
	StatusPending    ProcessingStatus = "pending"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// AccessLevel is the ordered tier attached to an item:
// public < authenticated < restricted < private.
type AccessLevel string

const (
	LevelPublic        AccessLevel = "public"
	LevelAuthenticated AccessLevel = "authenticated"
	LevelRestricted    AccessLevel = "restricted"
	LevelPrivate       AccessLevel = "private"
)

// Dimensions holds pixel width x height for image/video items.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Metadata carries the free-form descriptive fields of an item.
type Metadata struct {
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Author      string            `json:"author,omitempty"`
	Keywords    []string          `json:"keywords,omitempty"`
	Location    string            `json:"location,omitempty"`
	CaptureInfo string            `json:"capture_info,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// MediaItem is the canonical record for one media asset.
type MediaItem struct {
	ID               string           `json:"id"`
	Filename         string           `json:"filename"`
	OriginalFilename string           `json:"original_filename"`
	Type             MediaType        `json:"type"`
	MimeType         string           `json:"mime_type"`
	Size             int64            `json:"size"`
	DurationSeconds  float64          `json:"duration_seconds,omitempty"`
	Dimensions       *Dimensions      `json:"dimensions,omitempty"`
	BlobKey          string           `json:"blob_key,omitempty"`
	ThumbnailKey     string           `json:"thumbnail_key,omitempty"`
	Metadata         Metadata         `json:"metadata"`
	AccessLevel      AccessLevel      `json:"access_level"`
	ResourceID       string           `json:"resource_id,omitempty"`
	ResourceType     string           `json:"resource_type,omitempty"`
	UploadedBy       string           `json:"uploaded_by"`
	UploadedAt       time.Time        `json:"uploaded_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	ProcessingStatus ProcessingStatus `json:"processing_status"`
	Tags             []string         `json:"tags,omitempty"`
	Checksum         string           `json:"checksum,omitempty"`
	IsActive         bool             `json:"is_active"`
}

// DeriveType maps a MIME type onto the asset's content family.
func DeriveType(mimeType string) (MediaType, bool) {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return TypeImage, true
	case strings.HasPrefix(mimeType, "video/"):
		return TypeVideo, true
	case strings.HasPrefix(mimeType, "audio/"):
		return TypeAudio, true
	case strings.Contains(mimeType, "pdf"),
		strings.HasPrefix(mimeType, "text/"),
		strings.Contains(mimeType, "msword"),
		strings.Contains(mimeType, "officedocument"):
		return TypeDocument, true
	}
	return "", false
}

// SizeLimit returns the per-type upload ceiling in bytes.
func SizeLimit(t MediaType) int64 {
	switch t {
	case TypeImage:
		return 50 * 1024 * 1024
	case TypeVideo:
		return 500 * 1024 * 1024
	case TypeAudio:
		return 100 * 1024 * 1024
	case TypeDocument:
		return 25 * 1024 * 1024
	}
	return 0
}
