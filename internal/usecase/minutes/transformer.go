package minutes

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/johnquangdev/minutes-dashboard/internal/domain/entities"
)

// Confidence weights. Each present-and-substantial component of the raw
// output contributes a fixed amount; the result is clamped to (0, 1].
const (
	confidenceWeightSummary      = 0.4
	confidenceWeightSummaryShort = 0.1
	confidenceWeightTopics       = 0.2
	confidenceWeightDecisions    = 0.2
	confidenceWeightActionItems  = 0.2
	confidenceFloor              = 0.05
	summarySubstantialRunes      = 40
)

// Transformer deterministically maps validated raw model output into the
// canonical Minutes entity: positional ID assignment, duration computation
// and confidence scoring. It holds no state besides the clock.
type Transformer struct {
	now func() time.Time
}

// NewTransformer creates a transformer using the wall clock.
func NewTransformer() *Transformer {
	return &Transformer{now: time.Now}
}

// Transform builds the Minutes entity from raw output and the original input.
// Re-running it on the same raw output yields the same IDs and structure.
func (t *Transformer) Transform(raw *entities.RawMinutesOutput, transcript *entities.Transcript, meeting *entities.MeetingContext, usage entities.TokenUsage, model string, processingTimeMs int64) *entities.Minutes {
	speakerIDs := buildSpeakerMap(raw)

	topics := make([]entities.Topic, 0, len(raw.Topics))
	for i, rt := range raw.Topics {
		speakers := make([]entities.Speaker, 0, len(rt.Speakers))
		for _, sp := range rt.Speakers {
			speakers = append(speakers, entities.Speaker{ID: speakerIDs[sp.Name], Name: sp.Name})
		}
		topics = append(topics, entities.Topic{
			ID:        fmt.Sprintf("topic_%d", i),
			Title:     rt.Title,
			StartTime: rt.StartTime,
			EndTime:   rt.EndTime,
			Summary:   rt.Summary,
			KeyPoints: rt.KeyPoints,
			Speakers:  speakers,
		})
	}

	decisions := make([]entities.Decision, 0, len(raw.Decisions))
	for i, rd := range raw.Decisions {
		decisions = append(decisions, entities.Decision{
			ID:        fmt.Sprintf("dec_%d", i),
			Content:   rd.Content,
			Context:   rd.Context,
			DecidedAt: rd.DecidedAt,
		})
	}

	actionItems := make([]entities.ActionItem, 0, len(raw.ActionItems))
	for i, ra := range raw.ActionItems {
		item := entities.ActionItem{
			ID:       fmt.Sprintf("act_%d", i),
			Content:  ra.Content,
			DueDate:  ra.DueDate,
			Priority: ra.Priority,
			Status:   entities.ActionItemStatusPending,
		}
		if ra.Assignee != nil {
			id, ok := speakerIDs[ra.Assignee.Name]
			if !ok {
				id = fmt.Sprintf("assignee_%d", i)
			}
			item.Assignee = &entities.Speaker{ID: id, Name: ra.Assignee.Name}
		}
		actionItems = append(actionItems, item)
	}

	attendees := make([]entities.Speaker, 0, len(speakerIDs))
	for _, name := range speakerNamesInOrder(raw) {
		attendees = append(attendees, entities.Speaker{ID: speakerIDs[name], Name: name})
	}

	return &entities.Minutes{
		ID:          uuid.NewString(),
		MeetingID:   meeting.ID,
		Title:       meeting.Title,
		Date:        meeting.Date,
		Duration:    computeDuration(topics),
		Summary:     raw.Summary,
		Topics:      topics,
		Decisions:   decisions,
		ActionItems: actionItems,
		Attendees:   attendees,
		Metadata: entities.MinutesMetadata{
			GeneratedAt:      t.now().UTC().Format(time.RFC3339),
			Model:            model,
			ProcessingTimeMs: processingTimeMs,
			Confidence:       scoreConfidence(raw),
		},
	}
}

// speakerNamesInOrder lists distinct speaker names in first-appearance order:
// raw attendees when present, otherwise every topic's speakers.
func speakerNamesInOrder(raw *entities.RawMinutesOutput) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	if len(raw.Attendees) > 0 {
		for _, a := range raw.Attendees {
			add(a.Name)
		}
		return names
	}
	for _, topic := range raw.Topics {
		for _, sp := range topic.Speakers {
			add(sp.Name)
		}
	}
	return names
}

// buildSpeakerMap assigns speaker_N IDs by first appearance.
func buildSpeakerMap(raw *entities.RawMinutesOutput) map[string]string {
	ids := make(map[string]string)
	for i, name := range speakerNamesInOrder(raw) {
		ids[name] = fmt.Sprintf("speaker_%d", i)
	}
	return ids
}

// computeDuration spans from the earliest topic start to the latest topic end.
func computeDuration(topics []entities.Topic) int64 {
	if len(topics) == 0 {
		return 0
	}
	minStart := topics[0].StartTime
	maxEnd := topics[0].EndTime
	for _, t := range topics[1:] {
		if t.StartTime < minStart {
			minStart = t.StartTime
		}
		if t.EndTime > maxEnd {
			maxEnd = t.EndTime
		}
	}
	return maxEnd - minStart
}

// scoreConfidence derives a completeness score from the shape of the raw
// output alone. A substantial summary plus non-empty topics, decisions and
// action items scores 1.0; a short summary with all lists empty scores 0.1.
func scoreConfidence(raw *entities.RawMinutesOutput) float64 {
	score := 0.0
	if raw.Summary != "" {
		if utf8.RuneCountInString(raw.Summary) >= summarySubstantialRunes {
			score += confidenceWeightSummary
		} else {
			score += confidenceWeightSummaryShort
		}
	}
	if len(raw.Topics) > 0 {
		score += confidenceWeightTopics
	}
	if len(raw.Decisions) > 0 {
		score += confidenceWeightDecisions
	}
	if len(raw.ActionItems) > 0 {
		score += confidenceWeightActionItems
	}
	if score < confidenceFloor {
		score = confidenceFloor
	}
	if score > 1 {
		score = 1
	}
	return score
}
