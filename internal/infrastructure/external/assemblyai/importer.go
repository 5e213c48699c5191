package assemblyai

import (
	"context"
	"fmt"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	"github.com/johnquangdev/minutes-dashboard/internal/domain/entities"
)

// Importer fetches completed AssemblyAI transcripts and converts their
// speaker-labelled utterances into the transcript entity consumed by minutes
// generation.
type Importer struct {
	client *aai.Client
	logger *zap.Logger
}

// NewImporter creates a transcript importer using the official SDK client
func NewImporter(apiKey string, logger *zap.Logger) *Importer {
	return &Importer{
		client: aai.NewClient(apiKey),
		logger: logger,
	}
}

// Import fetches the transcript by its AssemblyAI ID. Only completed
// transcripts with speaker labels can be imported.
func (i *Importer) Import(ctx context.Context, meetingID, transcriptID string) (*entities.Transcript, error) {
	transcript, err := i.client.Transcripts.Get(ctx, transcriptID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript: %w", err)
	}

	if transcript.Status != aai.TranscriptStatusCompleted {
		return nil, fmt.Errorf("transcript %s is not completed (status %s)", transcriptID, transcript.Status)
	}
	if len(transcript.Utterances) == 0 {
		return nil, fmt.Errorf("transcript %s has no speaker utterances; enable speaker labels", transcriptID)
	}

	segments := make([]entities.TranscriptSegment, 0, len(transcript.Utterances))
	speakerIDs := make(map[string]string)
	var totalDuration int64

	for n, utt := range transcript.Utterances {
		seg := entities.TranscriptSegment{ID: fmt.Sprintf("seg_%d", n)}
		if utt.Text != nil {
			seg.Text = *utt.Text
		}
		if utt.Start != nil {
			seg.StartTime = *utt.Start
		}
		if utt.End != nil {
			seg.EndTime = *utt.End
		}
		if utt.Confidence != nil {
			seg.Confidence = *utt.Confidence
		}
		if utt.Speaker != nil {
			name := "Speaker " + *utt.Speaker
			id, ok := speakerIDs[name]
			if !ok {
				id = fmt.Sprintf("speaker_%d", len(speakerIDs))
				speakerIDs[name] = id
			}
			seg.Speaker = entities.Speaker{ID: id, Name: name}
		}
		if seg.EndTime > totalDuration {
			totalDuration = seg.EndTime
		}
		segments = append(segments, seg)
	}

	result := &entities.Transcript{
		MeetingID:     meetingID,
		Language:      string(transcript.LanguageCode),
		Segments:      segments,
		TotalDuration: totalDuration,
		CreatedAt:     time.Now().UTC(),
	}

	if i.logger != nil {
		i.logger.Info("imported transcript",
			zap.String("meeting_id", meetingID),
			zap.String("transcript_id", transcriptID),
			zap.Int("segment_count", len(segments)),
			zap.Int("speaker_count", len(speakerIDs)),
			zap.Int64("total_duration_ms", totalDuration),
		)
	}

	return result, nil
}
