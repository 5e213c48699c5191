package repositories

import (
	"context"

	"github.com/johnquangdev/minutes-dashboard/internal/domain/entities"
)

// MinutesRepository defines the interface for minutes document data access
type MinutesRepository interface {
	// Create stores a new minutes document
	Create(ctx context.Context, doc *entities.MinutesDocument) error

	// FindByMinutesID finds a document by its minutes record ID
	FindByMinutesID(ctx context.Context, minutesID string) (*entities.MinutesDocument, error)

	// FindByMeetingID finds the latest document for a meeting
	FindByMeetingID(ctx context.Context, meetingID string) (*entities.MinutesDocument, error)

	// ListByStatus lists documents in a given approval status
	ListByStatus(ctx context.Context, status string, limit int) ([]*entities.MinutesDocument, error)

	// UpdateStatus moves a document to a new approval status
	UpdateStatus(ctx context.Context, minutesID, status string) error

	// Delete removes a document by its minutes record ID
	Delete(ctx context.Context, minutesID string) error
}
