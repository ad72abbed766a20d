package entities

import (
	"time"

	"github.com/memberhub/media-api/internal/domain/media"
)

// MediaItem is the persisted form of one media record.
type MediaItem struct {
	ID               string `gorm:"type:varchar(40);primaryKey"`
	Filename         string `gorm:"type:varchar(255);not null"`
	OriginalFilename string `gorm:"type:varchar(255)"`
	MediaType        string `gorm:"type:varchar(16);not null;index"`
	MimeType         string `gorm:"type:varchar(64);not null"`
	SizeBytes        int64  `gorm:"not null"`
	DurationSeconds  float64
	Width            int
	Height           int
	BlobKey          string         `gorm:"type:varchar(255)"`
	ThumbnailKey     string         `gorm:"type:varchar(255)"`
	Metadata         media.Metadata `gorm:"type:jsonb;serializer:json"`
	AccessLevel      string         `gorm:"type:varchar(16);not null;index"`
	ResourceID       string         `gorm:"type:varchar(64);index:idx_media_resource"`
	ResourceType     string         `gorm:"type:varchar(32);index:idx_media_resource"`
	UploadedBy       string         `gorm:"type:varchar(64);index"`
	UploadedAt       time.Time      `gorm:"index"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	ProcessingStatus string         `gorm:"type:varchar(16);not null"`
	Tags             []string       `gorm:"type:jsonb;serializer:json"`
	Checksum         string         `gorm:"type:char(64);index"`
	IsActive         bool           `gorm:"not null;default:true;index"`
}

func (MediaItem) TableName() string {
	return "media_items"
}
