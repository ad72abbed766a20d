package entities

import "time"

// AccessEvent is one appended row of the access log. Rows are never updated
// or deleted by the service.
type AccessEvent struct {
	ID        string            `gorm:"type:varchar(40);primaryKey"`
	MediaID   string            `gorm:"type:varchar(40);not null;index"`
	UserID    string            `gorm:"type:varchar(64);index"`
	EventType string            `gorm:"type:varchar(16);not null"`
	Timestamp time.Time         `gorm:"not null;index"`
	Details   map[string]string `gorm:"type:jsonb;serializer:json"`
}

func (AccessEvent) TableName() string {
	return "media_access_events"
}
