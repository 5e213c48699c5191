package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/johnquangdev/minutes-dashboard/internal/domain/entities"
)

// MinutesRepository implements the minutes repository interface using GORM
type MinutesRepository struct {
	db *gorm.DB
}

// NewMinutesRepository creates a new minutes repository
func NewMinutesRepository(db *gorm.DB) *MinutesRepository {
	return &MinutesRepository{
		db: db,
	}
}

// Create stores a new minutes document
func (r *MinutesRepository) Create(ctx context.Context, doc *entities.MinutesDocument) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return fmt.Errorf("failed to create minutes document: %w", err)
	}
	return nil
}

// FindByMinutesID finds a document by its minutes record ID
func (r *MinutesRepository) FindByMinutesID(ctx context.Context, minutesID string) (*entities.MinutesDocument, error) {
	var doc entities.MinutesDocument
	if err := r.db.WithContext(ctx).Where("minutes_id = ?", minutesID).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMinutesNotFound
		}
		return nil, fmt.Errorf("failed to find minutes by ID: %w", err)
	}
	return &doc, nil
}

// FindByMeetingID finds the latest document for a meeting
func (r *MinutesRepository) FindByMeetingID(ctx context.Context, meetingID string) (*entities.MinutesDocument, error) {
	var doc entities.MinutesDocument
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMinutesNotFound
		}
		return nil, fmt.Errorf("failed to find minutes by meeting ID: %w", err)
	}
	return &doc, nil
}

// ListByStatus lists documents in a given approval status
func (r *MinutesRepository) ListByStatus(ctx context.Context, status string, limit int) ([]*entities.MinutesDocument, error) {
	var docs []*entities.MinutesDocument
	query := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list minutes by status: %w", err)
	}
	return docs, nil
}

// UpdateStatus moves a document to a new approval status
func (r *MinutesRepository) UpdateStatus(ctx context.Context, minutesID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&entities.MinutesDocument{}).
		Where("minutes_id = ?", minutesID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update minutes status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrMinutesNotFound
	}
	return nil
}

// Delete removes a document by its minutes record ID
func (r *MinutesRepository) Delete(ctx context.Context, minutesID string) error {
	result := r.db.WithContext(ctx).
		Where("minutes_id = ?", minutesID).
		Delete(&entities.MinutesDocument{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete minutes document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrMinutesNotFound
	}
	return nil
}
