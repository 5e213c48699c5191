package handler

import (
	stdErrors "errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/minutes-dashboard/errors"
	minutesdto "github.com/johnquangdev/minutes-dashboard/internal/adapter/dto/minutes"
	"github.com/johnquangdev/minutes-dashboard/internal/domain/entities"
	"github.com/johnquangdev/minutes-dashboard/internal/domain/repositories"
	"github.com/johnquangdev/minutes-dashboard/internal/infrastructure/cache"
	"github.com/johnquangdev/minutes-dashboard/internal/infrastructure/external/assemblyai"
	"github.com/johnquangdev/minutes-dashboard/internal/infrastructure/storage"
	minutesuse "github.com/johnquangdev/minutes-dashboard/internal/usecase/minutes"
)

const cacheTTL = 15 * time.Minute

// Minutes handles the minutes generation and approval endpoints
type Minutes struct {
	svc      minutesuse.Service
	repo     repositories.MinutesRepository
	cache    *cache.MinutesCache
	archive  *storage.MinutesArchive
	importer *assemblyai.Importer
	logger   *zap.Logger
}

// NewMinutes creates a new minutes handler
func NewMinutes(svc minutesuse.Service, repo repositories.MinutesRepository, minutesCache *cache.MinutesCache, archive *storage.MinutesArchive, importer *assemblyai.Importer, logger *zap.Logger) *Minutes {
	return &Minutes{
		svc:      svc,
		repo:     repo,
		cache:    minutesCache,
		archive:  archive,
		importer: importer,
		logger:   logger,
	}
}

// Generate creates minutes for a transcript and stores them as a draft
func (h *Minutes) Generate(c echo.Context) error {
	var req minutesdto.GenerateMinutesRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload().WithDetail("validation", err.Error()))
	}

	input := minutesuse.GenerateInput{
		Transcript: toTranscriptEntity(req.Transcript),
		Meeting:    toMeetingEntity(req.Meeting),
		Options:    toOptionsEntity(req.Options),
	}

	result, err := h.svc.GenerateMinutes(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	doc, err := entities.NewMinutesDocument(result.Minutes)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	if err := h.repo.Create(c.Request().Context(), doc); err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	h.cache.Set(result.Minutes.MeetingID, result.Minutes, cacheTTL)

	return HandleSuccess(h.logger, c, http.StatusCreated, minutesdto.GenerateMinutesResponse{
		Minutes: result.Minutes,
		Usage: minutesdto.UsageResponse{
			InputTokens:  result.Usage.InputTokens,
			OutputTokens: result.Usage.OutputTokens,
		},
		ProcessingTimeMs: result.ProcessingTimeMs,
	})
}

// GetByMeeting returns the latest minutes for a meeting
func (h *Minutes) GetByMeeting(c echo.Context) error {
	meetingID := c.Param("meetingID")

	if m, ok := h.cache.Get(meetingID); ok {
		return HandleSuccess(h.logger, c, http.StatusOK, minutesdto.MinutesDocumentResponse{
			Minutes: m,
			Status:  entities.MinutesStatusDraft,
		})
	}

	doc, err := h.repo.FindByMeetingID(c.Request().Context(), meetingID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrMinutesNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("minutes"))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	resp, err := minutesdto.NewMinutesDocumentResponse(doc)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, http.StatusOK, resp)
}

// List returns stored minutes filtered by approval status
func (h *Minutes) List(c echo.Context) error {
	var req minutesdto.ListMinutesRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload().WithDetail("validation", err.Error()))
	}
	if req.Status == "" {
		req.Status = entities.MinutesStatusPendingReview
	}
	if req.Limit == 0 {
		req.Limit = 20
	}

	docs, err := h.repo.ListByStatus(c.Request().Context(), req.Status, req.Limit)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	items := make([]*minutesdto.MinutesDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp, err := minutesdto.NewMinutesDocumentResponse(doc)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInternal(err))
		}
		items = append(items, resp)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, items)
}

// UpdateStatus moves stored minutes through the approval workflow. Approval
// also archives an immutable snapshot to object storage.
func (h *Minutes) UpdateStatus(c echo.Context) error {
	minutesID := c.Param("id")

	var req minutesdto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload().WithDetail("validation", err.Error()))
	}

	doc, err := h.repo.FindByMinutesID(c.Request().Context(), minutesID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrMinutesNotFound) {
			return HandleError(h.logger, c, errors.ErrNotFound("minutes"))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	if !doc.CanTransitionTo(req.Status) {
		return HandleError(h.logger, c, errors.ErrInvalidTransition(doc.Status, req.Status))
	}

	if err := h.repo.UpdateStatus(c.Request().Context(), minutesID, req.Status); err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	h.cache.Delete(doc.MeetingID)

	data := map[string]interface{}{
		"minutesId": minutesID,
		"status":    req.Status,
	}

	if req.Status == entities.MinutesStatusApproved && h.archive != nil {
		m, err := doc.ToMinutes()
		if err == nil {
			if name, archiveErr := h.archive.Archive(c.Request().Context(), m); archiveErr == nil {
				data["archive"] = minutesdto.ArchiveResponse{ObjectName: name}
			} else if h.logger != nil {
				// the approval itself stands; the snapshot can be re-uploaded
				h.logger.Error("failed to archive approved minutes",
					zap.String("minutes_id", minutesID),
					zap.Error(archiveErr),
				)
			}
		}
	}

	return HandleSuccess(h.logger, c, http.StatusOK, data)
}

// ImportTranscript fetches a completed AssemblyAI transcript so it can be fed
// into minutes generation
func (h *Minutes) ImportTranscript(c echo.Context) error {
	var req minutesdto.ImportTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload().WithDetail("validation", err.Error()))
	}

	transcript, err := h.importer.Import(c.Request().Context(), req.MeetingID, req.TranscriptID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, minutesdto.ImportTranscriptResponse{Transcript: transcript})
}

// DTO conversions

func toTranscriptEntity(req *minutesdto.TranscriptRequest) *entities.Transcript {
	if req == nil {
		return nil
	}
	segments := make([]entities.TranscriptSegment, 0, len(req.Segments))
	for _, s := range req.Segments {
		segments = append(segments, entities.TranscriptSegment{
			ID:         s.ID,
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
			Speaker:    entities.Speaker{ID: s.Speaker.ID, Name: s.Speaker.Name},
			Text:       s.Text,
			Confidence: s.Confidence,
		})
	}
	return &entities.Transcript{
		MeetingID:     req.MeetingID,
		Language:      req.Language,
		Segments:      segments,
		TotalDuration: req.TotalDuration,
	}
}

func toMeetingEntity(req *minutesdto.MeetingRequest) *entities.MeetingContext {
	if req == nil {
		return nil
	}
	attendees := make([]entities.Attendee, 0, len(req.Attendees))
	for _, a := range req.Attendees {
		attendees = append(attendees, entities.Attendee{ID: a.ID, Name: a.Name})
	}
	return &entities.MeetingContext{
		ID:        req.ID,
		Title:     req.Title,
		Date:      req.Date,
		Attendees: attendees,
	}
}

func toOptionsEntity(req *minutesdto.OptionsRequest) *entities.GenerationOptions {
	if req == nil {
		return nil
	}
	return &entities.GenerationOptions{
		Language:   req.Language,
		MaxTokens:  req.MaxTokens,
		RetryCount: req.RetryCount,
	}
}
