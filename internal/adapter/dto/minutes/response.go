package minutes

import (
	"time"

	"github.com/johnquangdev/minutes-dashboard/internal/domain/entities"
)

// UsageResponse is the provider-reported token consumption
type UsageResponse struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}

// GenerateMinutesResponse represents the response to a generation request
type GenerateMinutesResponse struct {
	Minutes          *entities.Minutes `json:"minutes"`
	Usage            UsageResponse     `json:"usage"`
	ProcessingTimeMs int64             `json:"processingTimeMs"`
}

// MinutesDocumentResponse represents a stored minutes document with its
// approval state
type MinutesDocumentResponse struct {
	Minutes   *entities.Minutes `json:"minutes"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ImportTranscriptResponse represents an imported transcript
type ImportTranscriptResponse struct {
	Transcript *entities.Transcript `json:"transcript"`
}

// ArchiveResponse represents an archived minutes snapshot
type ArchiveResponse struct {
	ObjectName string `json:"objectName"`
	URL        string `json:"url,omitempty"`
}

// NewMinutesDocumentResponse converts a stored document into its API shape
func NewMinutesDocumentResponse(doc *entities.MinutesDocument) (*MinutesDocumentResponse, error) {
	m, err := doc.ToMinutes()
	if err != nil {
		return nil, err
	}
	return &MinutesDocumentResponse{
		Minutes:   m,
		Status:    doc.Status,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}
