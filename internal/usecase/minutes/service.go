package minutes

import (
	"context"
	"regexp"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/minutes-dashboard/errors"
	"github.com/johnquangdev/minutes-dashboard/internal/domain/entities"
	"github.com/johnquangdev/minutes-dashboard/pkg/llm"
)

// Service generates structured meeting minutes from a transcript.
type Service interface {
	GenerateMinutes(ctx context.Context, input GenerateInput) (*GenerateResult, error)
}

// StructuredGenerator is the structured-output capability the service
// depends on; llm.StructuredClient is the production implementation.
type StructuredGenerator interface {
	Generate(ctx context.Context, messages []llm.Message, schema *llm.Schema, opts llm.GenerateOptions, out any) (*llm.Completion, error)
}

// GenerateInput is one minutes-generation request.
type GenerateInput struct {
	Transcript *entities.Transcript
	Meeting    *entities.MeetingContext
	Options    *entities.GenerationOptions
}

// GenerateResult is the outcome of a successful generation call.
type GenerateResult struct {
	Minutes          *entities.Minutes
	Usage            entities.TokenUsage
	ProcessingTimeMs int64
}

type generationService struct {
	generator   StructuredGenerator
	transformer *Transformer
	logger      *zap.Logger
}

// NewService constructs the minutes-generation service. The structured client
// is injected so parallel, isolated instances can be created for tests and
// concurrent use; the service itself holds no mutable state.
func NewService(generator StructuredGenerator, logger *zap.Logger) Service {
	return &generationService{
		generator:   generator,
		transformer: NewTransformer(),
		logger:      logger,
	}
}

var meetingDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// GenerateMinutes validates the input, builds the prompt, invokes the model
// through the structured client and transforms the raw output into the
// canonical Minutes entity. All failures carry a stable error code and retain
// their original cause.
func (s *generationService) GenerateMinutes(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	started := time.Now()

	opts := resolveOptions(input.Options)
	formatted := FormatTranscript(input.Transcript)

	if s.logger != nil {
		s.logger.Info("generating minutes",
			zap.String("meeting_id", input.Meeting.ID),
			zap.String("language", opts.Language),
			zap.Int("segment_count", len(input.Transcript.Segments)),
			zap.Int("max_tokens", opts.MaxTokens),
			zap.Int("retry_count", *opts.RetryCount),
		)
	}

	messages := []llm.Message{{Role: "user", Content: formatted}}

	var raw entities.RawMinutesOutput
	completion, err := s.generator.Generate(ctx, messages, minutesSchema, llm.GenerateOptions{
		System:     systemPreamble(opts.Language),
		MaxTokens:  opts.MaxTokens,
		RetryCount: *opts.RetryCount,
	}, &raw)
	if err != nil {
		return nil, wrapGenerateError(err)
	}

	processingTimeMs := time.Since(started).Milliseconds()
	usage := entities.TokenUsage{
		InputTokens:  completion.Usage.InputTokens,
		OutputTokens: completion.Usage.OutputTokens,
	}

	result := s.transformer.Transform(&raw, input.Transcript, input.Meeting, usage, completion.Model, processingTimeMs)

	if s.logger != nil {
		s.logger.Info("minutes generated",
			zap.String("meeting_id", input.Meeting.ID),
			zap.String("minutes_id", result.ID),
			zap.Int("topic_count", len(result.Topics)),
			zap.Int("decision_count", len(result.Decisions)),
			zap.Int("action_item_count", len(result.ActionItems)),
			zap.Float64("confidence", result.Metadata.Confidence),
			zap.Int64("processing_time_ms", processingTimeMs),
		)
	}

	return &GenerateResult{
		Minutes:          result,
		Usage:            usage,
		ProcessingTimeMs: processingTimeMs,
	}, nil
}

// validateInput fails fast, before any network call, naming the first field
// that is invalid.
func validateInput(input GenerateInput) error {
	if input.Transcript == nil {
		return apperrors.ErrValidation("transcript", "transcript is required")
	}
	if len(input.Transcript.Segments) == 0 {
		return apperrors.ErrValidation("transcript.segments", "transcript must contain at least one segment")
	}
	if input.Meeting == nil {
		return apperrors.ErrValidation("meeting", "meeting is required")
	}
	if input.Meeting.ID == "" {
		return apperrors.ErrValidation("meeting.id", "meeting.id must not be empty")
	}
	if input.Meeting.Title == "" {
		return apperrors.ErrValidation("meeting.title", "meeting.title must not be empty")
	}
	if !meetingDateRe.MatchString(input.Meeting.Date) {
		return apperrors.ErrValidation("meeting.date", "meeting.date must be in YYYY-MM-DD format")
	}
	if input.Meeting.Attendees == nil {
		return apperrors.ErrValidation("meeting.attendees", "meeting.attendees must be an array")
	}
	return nil
}

// resolveOptions applies generation defaults.
func resolveOptions(opts *entities.GenerationOptions) entities.GenerationOptions {
	resolved := entities.GenerationOptions{
		Language:  entities.LanguageJapanese,
		MaxTokens: entities.DefaultMaxTokens,
	}
	if opts != nil {
		if opts.Language != "" {
			resolved.Language = opts.Language
		}
		if opts.MaxTokens > 0 {
			resolved.MaxTokens = opts.MaxTokens
		}
		resolved.RetryCount = opts.RetryCount
	}
	if resolved.RetryCount == nil {
		retries := entities.DefaultRetryCount
		resolved.RetryCount = &retries
	}
	return resolved
}

// wrapGenerateError maps lower-level failures onto the stable generation
// error codes, keeping the original error as the cause.
func wrapGenerateError(err error) error {
	switch err.(type) {
	case *llm.APIError:
		return apperrors.ErrClaudeAPI(err)
	case *llm.ParseError:
		return apperrors.ErrParse(err)
	default:
		return apperrors.ErrUnknown(err)
	}
}
