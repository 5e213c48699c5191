package minutes

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/johnquangdev/minutes-dashboard/internal/domain/entities"
)

func fixedTransformer() *Transformer {
	return &Transformer{now: func() time.Time {
		return time.Date(2025, 1, 20, 10, 30, 0, 0, time.UTC)
	}}
}

func sampleRaw() *entities.RawMinutesOutput {
	return &entities.RawMinutesOutput{
		Summary: "プロジェクトの進捗と次のリリースのスケジュールについて議論した。課題の優先順位を確認した。",
		Topics: []entities.RawTopic{
			{
				Title:     "進捗確認",
				StartTime: 0,
				EndTime:   30000,
				Summary:   "各担当の進捗を確認した。",
				KeyPoints: []string{"API実装は完了", "UIは遅延中"},
				Speakers:  []entities.RawPerson{{Name: "田中"}, {Name: "鈴木"}},
			},
			{
				Title:     "リリース計画",
				StartTime: 30000,
				EndTime:   90000,
				Summary:   "リリース日を決定した。",
				KeyPoints: []string{"1月末にリリース"},
				Speakers:  []entities.RawPerson{{Name: "田中"}},
			},
		},
		Decisions: []entities.RawDecision{
			{Content: "1月31日にリリースする", Context: "UIの遅延を考慮", DecidedAt: "00:01:10"},
		},
		ActionItems: []entities.RawActionItem{
			{Content: "UI実装を完了する", Assignee: &entities.RawPerson{Name: "鈴木"}, DueDate: "2025-01-24", Priority: "high"},
			{Content: "リリースノートを書く", Priority: "low"},
		},
	}
}

func sampleMeeting() *entities.MeetingContext {
	return &entities.MeetingContext{
		ID:        "meeting-001",
		Title:     "週次定例",
		Date:      "2025-01-20",
		Attendees: []entities.Attendee{{ID: "u1", Name: "田中"}, {ID: "u2", Name: "鈴木"}},
	}
}

func TestTransform_PositionalIDs(t *testing.T) {
	tr := fixedTransformer()
	m := tr.Transform(sampleRaw(), nil, sampleMeeting(), entities.TokenUsage{}, "claude-test-1", 1500)

	if m.Topics[0].ID != "topic_0" || m.Topics[1].ID != "topic_1" {
		t.Fatalf("unexpected topic IDs %q, %q", m.Topics[0].ID, m.Topics[1].ID)
	}
	if m.Decisions[0].ID != "dec_0" {
		t.Fatalf("unexpected decision ID %q", m.Decisions[0].ID)
	}
	if m.ActionItems[0].ID != "act_0" || m.ActionItems[1].ID != "act_1" {
		t.Fatalf("unexpected action item IDs %q, %q", m.ActionItems[0].ID, m.ActionItems[1].ID)
	}

	// speaker IDs follow first appearance across topics
	if m.Topics[0].Speakers[0].ID != "speaker_0" || m.Topics[0].Speakers[1].ID != "speaker_1" {
		t.Fatalf("unexpected speaker IDs in topic 0: %+v", m.Topics[0].Speakers)
	}
	if m.Topics[1].Speakers[0].ID != "speaker_0" {
		t.Fatalf("same speaker must keep the same ID across topics, got %q", m.Topics[1].Speakers[0].ID)
	}
	if len(m.Attendees) != 2 || m.Attendees[0].Name != "田中" || m.Attendees[1].Name != "鈴木" {
		t.Fatalf("unexpected attendees %+v", m.Attendees)
	}
}

func TestTransform_AssigneeResolution(t *testing.T) {
	tr := fixedTransformer()
	raw := sampleRaw()
	raw.ActionItems = append(raw.ActionItems, entities.RawActionItem{
		Content:  "議事録を外部共有する",
		Assignee: &entities.RawPerson{Name: "佐藤"}, // not among the speakers
		Priority: "medium",
	})

	m := tr.Transform(raw, nil, sampleMeeting(), entities.TokenUsage{}, "claude-test-1", 0)

	first := m.ActionItems[0]
	if first.Assignee == nil || first.Assignee.ID != "speaker_1" || first.Assignee.Name != "鈴木" {
		t.Fatalf("known assignee not resolved to speaker ID: %+v", first.Assignee)
	}
	if m.ActionItems[1].Assignee != nil {
		t.Fatalf("absent assignee must stay nil, got %+v", m.ActionItems[1].Assignee)
	}
	unknown := m.ActionItems[2]
	if unknown.Assignee == nil || unknown.Assignee.ID != "assignee_2" {
		t.Fatalf("unknown assignee must get a positional fallback ID, got %+v", unknown.Assignee)
	}
	for _, item := range m.ActionItems {
		if item.Status != entities.ActionItemStatusPending {
			t.Fatalf("all action items start pending, got %q", item.Status)
		}
	}
}

func TestTransform_Duration(t *testing.T) {
	tr := fixedTransformer()

	m := tr.Transform(sampleRaw(), nil, sampleMeeting(), entities.TokenUsage{}, "m", 0)
	if m.Duration != 90000 {
		t.Fatalf("duration = %d, want 90000", m.Duration)
	}

	// unordered topics still span min start to max end
	raw := sampleRaw()
	raw.Topics[0], raw.Topics[1] = raw.Topics[1], raw.Topics[0]
	if m := tr.Transform(raw, nil, sampleMeeting(), entities.TokenUsage{}, "m", 0); m.Duration != 90000 {
		t.Fatalf("duration with unordered topics = %d, want 90000", m.Duration)
	}

	raw = sampleRaw()
	raw.Topics = nil
	if m := tr.Transform(raw, nil, sampleMeeting(), entities.TokenUsage{}, "m", 0); m.Duration != 0 {
		t.Fatalf("duration with no topics = %d, want 0", m.Duration)
	}
}

func TestTransform_Confidence(t *testing.T) {
	tr := fixedTransformer()

	full := tr.Transform(sampleRaw(), nil, sampleMeeting(), entities.TokenUsage{}, "m", 0)
	if full.Metadata.Confidence <= 0.7 {
		t.Fatalf("complete output must score above 0.7, got %f", full.Metadata.Confidence)
	}
	if math.Abs(full.Metadata.Confidence-1.0) > 1e-9 {
		t.Fatalf("fully populated output must score 1.0, got %f", full.Metadata.Confidence)
	}

	minimal := &entities.RawMinutesOutput{Summary: "短い要約"}
	m := tr.Transform(minimal, nil, sampleMeeting(), entities.TokenUsage{}, "m", 0)
	if m.Metadata.Confidence >= 0.5 {
		t.Fatalf("minimal output must score below 0.5, got %f", m.Metadata.Confidence)
	}
	if m.Metadata.Confidence <= 0 {
		t.Fatalf("confidence must stay positive, got %f", m.Metadata.Confidence)
	}

	empty := tr.Transform(&entities.RawMinutesOutput{}, nil, sampleMeeting(), entities.TokenUsage{}, "m", 0)
	if empty.Metadata.Confidence <= 0 || empty.Metadata.Confidence > 1 {
		t.Fatalf("confidence out of range for empty output: %f", empty.Metadata.Confidence)
	}
}

func TestTransform_MetadataAndContext(t *testing.T) {
	tr := fixedTransformer()
	usage := entities.TokenUsage{InputTokens: 1200, OutputTokens: 800}
	m := tr.Transform(sampleRaw(), nil, sampleMeeting(), usage, "claude-test-1", 2500)

	if m.MeetingID != "meeting-001" || m.Title != "週次定例" || m.Date != "2025-01-20" {
		t.Fatalf("meeting context not carried over: %+v", m)
	}
	if m.ID == "" {
		t.Fatal("minutes ID must be assigned")
	}
	if m.Metadata.GeneratedAt != "2025-01-20T10:30:00Z" {
		t.Fatalf("unexpected generatedAt %q", m.Metadata.GeneratedAt)
	}
	if m.Metadata.Model != "claude-test-1" || m.Metadata.ProcessingTimeMs != 2500 {
		t.Fatalf("unexpected metadata %+v", m.Metadata)
	}
}

func TestTransform_RawAttendeesTakePrecedence(t *testing.T) {
	tr := fixedTransformer()
	raw := sampleRaw()
	raw.Attendees = []entities.RawPerson{{Name: "鈴木"}, {Name: "田中"}, {Name: "佐藤"}}

	m := tr.Transform(raw, nil, sampleMeeting(), entities.TokenUsage{}, "m", 0)
	if len(m.Attendees) != 3 {
		t.Fatalf("expected 3 attendees, got %+v", m.Attendees)
	}
	if m.Attendees[0].Name != "鈴木" || m.Attendees[0].ID != "speaker_0" {
		t.Fatalf("attendee ordering must follow raw attendees: %+v", m.Attendees)
	}
	// topic speakers reuse the attendee-derived IDs
	if m.Topics[0].Speakers[0].Name != "田中" || m.Topics[0].Speakers[0].ID != "speaker_1" {
		t.Fatalf("topic speaker not resolved against attendee map: %+v", m.Topics[0].Speakers)
	}
}

func TestTransform_Deterministic(t *testing.T) {
	tr := fixedTransformer()
	a := tr.Transform(sampleRaw(), nil, sampleMeeting(), entities.TokenUsage{}, "m", 100)
	b := tr.Transform(sampleRaw(), nil, sampleMeeting(), entities.TokenUsage{}, "m", 100)

	// the record ID is freshly assigned; everything else must match
	a.ID, b.ID = "", ""
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("transform is not deterministic:\n%+v\n%+v", a, b)
	}
}
