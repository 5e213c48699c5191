package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Minutes document approval statuses.
const (
	MinutesStatusDraft         = "draft"
	MinutesStatusPendingReview = "pending_review"
	MinutesStatusApproved      = "approved"
	MinutesStatusRejected      = "rejected"
)

// minutesStatusTransitions lists the allowed approval-state moves.
var minutesStatusTransitions = map[string][]string{
	MinutesStatusDraft:         {MinutesStatusPendingReview},
	MinutesStatusPendingReview: {MinutesStatusApproved, MinutesStatusRejected},
	MinutesStatusRejected:      {MinutesStatusPendingReview},
}

// MinutesDocument is the persisted form of a generated Minutes entity plus its
// approval state. Structured sub-entities live in JSONB columns.
type MinutesDocument struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MinutesID   string         `json:"minutes_id" gorm:"type:varchar(64);not null;uniqueIndex"`
	MeetingID   string         `json:"meeting_id" gorm:"type:varchar(255);not null;index"`
	Title       string         `json:"title" gorm:"type:varchar(500);not null"`
	Date        string         `json:"date" gorm:"type:varchar(10);not null"`
	Duration    int64          `json:"duration" gorm:"not null;default:0"`
	Summary     string         `json:"summary" gorm:"type:text;not null"`
	Topics      datatypes.JSON `json:"topics,omitempty" gorm:"type:jsonb"`
	Decisions   datatypes.JSON `json:"decisions,omitempty" gorm:"type:jsonb"`
	ActionItems datatypes.JSON `json:"action_items,omitempty" gorm:"type:jsonb"`
	Attendees   datatypes.JSON `json:"attendees,omitempty" gorm:"type:jsonb"`
	Metadata    datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`
	Status      string         `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for MinutesDocument
func (MinutesDocument) TableName() string {
	return "minutes_documents"
}

// NewMinutesDocument flattens a Minutes entity into its persisted form.
func NewMinutesDocument(m *Minutes) (*MinutesDocument, error) {
	topics, err := json.Marshal(m.Topics)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal topics: %w", err)
	}
	decisions, err := json.Marshal(m.Decisions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal decisions: %w", err)
	}
	actionItems, err := json.Marshal(m.ActionItems)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal action items: %w", err)
	}
	attendees, err := json.Marshal(m.Attendees)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attendees: %w", err)
	}
	metadata, err := json.Marshal(m.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	return &MinutesDocument{
		ID:          uuid.New(),
		MinutesID:   m.ID,
		MeetingID:   m.MeetingID,
		Title:       m.Title,
		Date:        m.Date,
		Duration:    m.Duration,
		Summary:     m.Summary,
		Topics:      topics,
		Decisions:   decisions,
		ActionItems: actionItems,
		Attendees:   attendees,
		Metadata:    metadata,
		Status:      MinutesStatusDraft,
	}, nil
}

// ToMinutes rebuilds the Minutes entity from the persisted columns.
func (d *MinutesDocument) ToMinutes() (*Minutes, error) {
	m := &Minutes{
		ID:        d.MinutesID,
		MeetingID: d.MeetingID,
		Title:     d.Title,
		Date:      d.Date,
		Duration:  d.Duration,
		Summary:   d.Summary,
	}
	if len(d.Topics) > 0 {
		if err := json.Unmarshal(d.Topics, &m.Topics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal topics: %w", err)
		}
	}
	if len(d.Decisions) > 0 {
		if err := json.Unmarshal(d.Decisions, &m.Decisions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal decisions: %w", err)
		}
	}
	if len(d.ActionItems) > 0 {
		if err := json.Unmarshal(d.ActionItems, &m.ActionItems); err != nil {
			return nil, fmt.Errorf("failed to unmarshal action items: %w", err)
		}
	}
	if len(d.Attendees) > 0 {
		if err := json.Unmarshal(d.Attendees, &m.Attendees); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attendees: %w", err)
		}
	}
	if len(d.Metadata) > 0 {
		if err := json.Unmarshal(d.Metadata, &m.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}
	return m, nil
}

// CanTransitionTo reports whether the approval workflow allows moving this
// document to the given status.
func (d *MinutesDocument) CanTransitionTo(status string) bool {
	for _, next := range minutesStatusTransitions[d.Status] {
		if next == status {
			return true
		}
	}
	return false
}
