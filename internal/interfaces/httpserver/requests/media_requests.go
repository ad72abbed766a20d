package requests

import "time"

// UploadForm carries the multipart fields accompanying an upload. The file
// itself arrives in the "file" part.
type UploadForm struct {
	Type            string  `form:"type" binding:"required"`
	UploadID        string  `form:"upload_id"`
	AccessLevel     string  `form:"access_level"`
	ResourceID      string  `form:"resource_id"`
	ResourceType    string  `form:"resource_type"`
	Title           string  `form:"title"`
	Description     string  `form:"description"`
	Author          string  `form:"author"`
	Tags            string  `form:"tags"` // comma separated
	DurationSeconds float64 `form:"duration_seconds"`
}

// UpdateRequest is the PATCH payload; nil fields are left untouched.
type UpdateRequest struct {
	Metadata    *MetadataPayload `json:"metadata"`
	Tags        []string         `json:"tags"`
	AccessLevel *string          `json:"access_level"`
}

// MetadataPayload mirrors the item's descriptive fields.
type MetadataPayload struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Author      string            `json:"author"`
	Keywords    []string          `json:"keywords"`
	Location    string            `json:"location"`
	CaptureInfo string            `json:"capture_info"`
	Extra       map[string]string `json:"extra"`
}

// SearchQuery binds the search endpoint's query string.
type SearchQuery struct {
	Text         string     `form:"q"`
	Type         string     `form:"type"`
	ResourceID   string     `form:"resource_id"`
	ResourceType string     `form:"resource_type"`
	AccessLevel  string     `form:"access_level"`
	UploadedBy   string     `form:"uploaded_by"`
	Tags         string     `form:"tags"` // comma separated
	MinSize      int64      `form:"min_size"`
	MaxSize      int64      `form:"max_size"`
	After        *time.Time `form:"after" time_format:"2006-01-02T15:04:05Z07:00"`
	Before       *time.Time `form:"before" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit        int        `form:"limit"`
}
