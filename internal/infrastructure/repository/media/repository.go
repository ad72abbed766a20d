// Package media implements the Remote Metadata Store boundary on postgres.
package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/memberhub/media-api/internal/domain/media"
	"github.com/memberhub/media-api/internal/infrastructure/database/entities"
)

// Repository handles media record persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, item *domain.MediaItem) error {
	entity := mapItem(item)
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return fmt.Errorf("create media record: %w", err)
	}
	return nil
}

// GetByID returns (nil, nil) when no active record exists.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.MediaItem, error) {
	var entity entities.MediaItem
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get media record: %w", err)
	}
	item := mapEntity(entity)
	return &item, nil
}

func (r *Repository) Update(ctx context.Context, item *domain.MediaItem) error {
	entity := mapItem(item)
	result := r.db.WithContext(ctx).Model(&entities.MediaItem{}).Where("id = ?", item.ID).Select("*").Updates(&entity)
	if result.Error != nil {
		return fmt.Errorf("update media record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.MediaItem{})
	if result.Error != nil {
		return fmt.Errorf("delete media record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Query applies the search predicate against the store. Soft-deleted records
// never match.
func (r *Repository) Query(ctx context.Context, q domain.SearchQuery) ([]*domain.MediaItem, error) {
	tx := r.db.WithContext(ctx).Model(&entities.MediaItem{}).Where("is_active = ?", true)

	if q.Text != "" {
		pattern := "%" + q.Text + "%"
		tx = tx.Where("original_filename ILIKE ? OR metadata->>'title' ILIKE ? OR metadata->>'description' ILIKE ?",
			pattern, pattern, pattern)
	}
	if q.Type != "" {
		tx = tx.Where("media_type = ?", string(q.Type))
	}
	if q.ResourceID != "" {
		tx = tx.Where("resource_id = ?", q.ResourceID)
	}
	if q.ResourceType != "" {
		tx = tx.Where("resource_type = ?", q.ResourceType)
	}
	if q.AccessLevel != "" {
		tx = tx.Where("access_level = ?", string(q.AccessLevel))
	}
	if q.UploadedBy != "" {
		tx = tx.Where("uploaded_by = ?", q.UploadedBy)
	}
	if len(q.Tags) > 0 {
		encoded, err := json.Marshal(q.Tags)
		if err != nil {
			return nil, fmt.Errorf("encode tag filter: %w", err)
		}
		tx = tx.Where("tags @> ?", string(encoded))
	}
	if q.MinSize > 0 {
		tx = tx.Where("size_bytes >= ?", q.MinSize)
	}
	if q.MaxSize > 0 {
		tx = tx.Where("size_bytes <= ?", q.MaxSize)
	}
	if q.UploadedAfter != nil {
		tx = tx.Where("uploaded_at >= ?", *q.UploadedAfter)
	}
	if q.UploadedBefore != nil {
		tx = tx.Where("uploaded_at <= ?", *q.UploadedBefore)
	}

	var rows []entities.MediaItem
	if err := tx.Order("uploaded_at DESC").Limit(q.Limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query media records: %w", err)
	}

	items := make([]*domain.MediaItem, 0, len(rows))
	for _, row := range rows {
		item := mapEntity(row)
		items = append(items, &item)
	}
	return items, nil
}

func mapItem(item *domain.MediaItem) entities.MediaItem {
	entity := entities.MediaItem{
		ID:               item.ID,
		Filename:         item.Filename,
		OriginalFilename: item.OriginalFilename,
		MediaType:        string(item.Type),
		MimeType:         item.MimeType,
		SizeBytes:        item.Size,
		DurationSeconds:  item.DurationSeconds,
		BlobKey:          item.BlobKey,
		ThumbnailKey:     item.ThumbnailKey,
		Metadata:         item.Metadata,
		AccessLevel:      string(item.AccessLevel),
		ResourceID:       item.ResourceID,
		ResourceType:     item.ResourceType,
		UploadedBy:       item.UploadedBy,
		UploadedAt:       item.UploadedAt,
		UpdatedAt:        item.UpdatedAt,
		ProcessingStatus: string(item.ProcessingStatus),
		Tags:             item.Tags,
		Checksum:         item.Checksum,
		IsActive:         item.IsActive,
	}
	if item.Dimensions != nil {
		entity.Width = item.Dimensions.Width
		entity.Height = item.Dimensions.Height
	}
	return entity
}

func mapEntity(entity entities.MediaItem) domain.MediaItem {
	item := domain.MediaItem{
		ID:               entity.ID,
		Filename:         entity.Filename,
		OriginalFilename: entity.OriginalFilename,
		Type:             domain.MediaType(entity.MediaType),
		MimeType:         entity.MimeType,
		Size:             entity.SizeBytes,
		DurationSeconds:  entity.DurationSeconds,
		BlobKey:          entity.BlobKey,
		ThumbnailKey:     entity.ThumbnailKey,
		Metadata:         entity.Metadata,
		AccessLevel:      domain.AccessLevel(entity.AccessLevel),
		ResourceID:       entity.ResourceID,
		ResourceType:     entity.ResourceType,
		UploadedBy:       entity.UploadedBy,
		UploadedAt:       entity.UploadedAt,
		UpdatedAt:        entity.UpdatedAt,
		ProcessingStatus: domain.ProcessingStatus(entity.ProcessingStatus),
		Tags:             entity.Tags,
		Checksum:         entity.Checksum,
		IsActive:         entity.IsActive,
	}
	if entity.Width > 0 || entity.Height > 0 {
		item.Dimensions = &domain.Dimensions{Width: entity.Width, Height: entity.Height}
	}
	return item
}
