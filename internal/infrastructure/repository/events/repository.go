// Package events implements the append-only access event log on postgres.
package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/memberhub/media-api/internal/domain/media"
	"github.com/memberhub/media-api/internal/infrastructure/database/entities"
)

// Repository appends and aggregates access events. Nothing here ever updates
// or deletes a row.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Record(ctx context.Context, event *domain.AccessEvent) error {
	entity := entities.AccessEvent{
		ID:        event.ID,
		MediaID:   event.MediaID,
		UserID:    event.UserID,
		EventType: string(event.EventType),
		Timestamp: event.Timestamp,
		Details:   event.Details,
	}
	if entity.ID == "" {
		entity.ID = uuid.NewString()
	}
	if entity.Timestamp.IsZero() {
		entity.Timestamp = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return fmt.Errorf("append access event: %w", err)
	}
	return nil
}

func (r *Repository) Stats(ctx context.Context, mediaID string) (*domain.AccessStats, error) {
	type countRow struct {
		EventType string
		Count     int64
	}
	var rows []countRow
	err := r.db.WithContext(ctx).
		Model(&entities.AccessEvent{}).
		Select("event_type, COUNT(*) AS count").
		Where("media_id = ?", mediaID).
		Group("event_type").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count access events: %w", err)
	}

	stats := &domain.AccessStats{
		MediaID: mediaID,
		Counts:  make(map[domain.EventType]int64, len(rows)),
	}
	for _, row := range rows {
		stats.Counts[domain.EventType(row.EventType)] = row.Count
		stats.TotalEvents += row.Count
	}

	var last entities.AccessEvent
	err = r.db.WithContext(ctx).
		Where("media_id = ?", mediaID).
		Order("timestamp DESC").
		First(&last).Error
	if err == nil {
		ts := last.Timestamp
		stats.LastAccessed = &ts
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load last access event: %w", err)
	}

	return stats, nil
}

// ListByMedia returns the most recent events for one item.
func (r *Repository) ListByMedia(ctx context.Context, mediaID string, limit int) ([]*domain.AccessEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []entities.AccessEvent
	err := r.db.WithContext(ctx).
		Where("media_id = ?", mediaID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list access events: %w", err)
	}
	out := make([]*domain.AccessEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, &domain.AccessEvent{
			ID:        row.ID,
			MediaID:   row.MediaID,
			UserID:    row.UserID,
			EventType: domain.EventType(row.EventType),
			Timestamp: row.Timestamp,
			Details:   row.Details,
		})
	}
	return out, nil
}
