package minutes

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/johnquangdev/minutes-dashboard/errors"
	"github.com/johnquangdev/minutes-dashboard/internal/domain/entities"
	"github.com/johnquangdev/minutes-dashboard/pkg/llm"
)

// fakeGenerator returns a canned raw output and records the call it received.
type fakeGenerator struct {
	raw        string
	err        error
	calls      int
	lastOpts   llm.GenerateOptions
	lastPrompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, messages []llm.Message, schema *llm.Schema, opts llm.GenerateOptions, out any) (*llm.Completion, error) {
	f.calls++
	f.lastOpts = opts
	if len(messages) > 0 {
		f.lastPrompt = messages[len(messages)-1].Content
	}
	if f.err != nil {
		return nil, f.err
	}
	if err := json.Unmarshal([]byte(f.raw), out); err != nil {
		return nil, err
	}
	return &llm.Completion{
		Text:  f.raw,
		Model: "claude-test-1",
		Usage: llm.TokenUsage{InputTokens: 1500, OutputTokens: 600},
	}, nil
}

func validInput() GenerateInput {
	return GenerateInput{
		Transcript: &entities.Transcript{
			MeetingID: "meeting-001",
			Segments: []entities.TranscriptSegment{
				{StartTime: 0, EndTime: 5000, Speaker: entities.Speaker{Name: "田中"}, Text: "本日の議題は2つです。"},
				{StartTime: 5000, EndTime: 28000, Speaker: entities.Speaker{Name: "鈴木"}, Text: "まず進捗を報告します。"},
				{StartTime: 30000, EndTime: 60000, Speaker: entities.Speaker{Name: "田中"}, Text: "リリース日を決めましょう。"},
				{StartTime: 60000, EndTime: 90000, Speaker: entities.Speaker{Name: "鈴木"}, Text: "1月31日でお願いします。"},
			},
		},
		Meeting: &entities.MeetingContext{
			ID:        "meeting-001",
			Title:     "週次定例",
			Date:      "2025-01-20",
			Attendees: []entities.Attendee{{ID: "u1", Name: "田中"}, {ID: "u2", Name: "鈴木"}},
		},
	}
}

const sampleRawJSON = `{
	"summary": "進捗の確認とリリース日の決定を行った。UI実装の残作業について担当と期限を確認した。",
	"topics": [
		{"title": "進捗確認", "startTime": 0, "endTime": 30000, "summary": "各担当の進捗を確認した。", "keyPoints": ["API実装は完了"], "speakers": [{"name": "田中"}, {"name": "鈴木"}]},
		{"title": "リリース計画", "startTime": 30000, "endTime": 90000, "summary": "リリース日を決定した。", "keyPoints": ["1月31日にリリース"], "speakers": [{"name": "田中"}, {"name": "鈴木"}]}
	],
	"decisions": [
		{"content": "1月31日にリリースする", "context": "進捗を踏まえて決定", "decidedAt": "00:01:10"}
	],
	"actionItems": [
		{"content": "UI実装を完了する", "assignee": {"name": "鈴木"}, "dueDate": "2025-01-24", "priority": "high"}
	]
}`

func TestGenerateMinutes_EndToEnd(t *testing.T) {
	gen := &fakeGenerator{raw: sampleRawJSON}
	svc := NewService(gen, nil)

	result, err := svc.GenerateMinutes(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := result.Minutes
	if m.MeetingID != "meeting-001" || m.Title != "週次定例" || m.Date != "2025-01-20" {
		t.Fatalf("meeting context not carried over: %+v", m)
	}
	if len(m.Topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(m.Topics))
	}
	if m.Topics[0].ID != "topic_0" || m.Topics[0].StartTime != 0 || m.Topics[0].EndTime != 30000 {
		t.Fatalf("unexpected first topic %+v", m.Topics[0])
	}
	if m.Topics[1].StartTime != 30000 || m.Topics[1].EndTime != 90000 {
		t.Fatalf("unexpected second topic %+v", m.Topics[1])
	}
	if m.Duration != 90000 {
		t.Fatalf("duration = %d, want 90000", m.Duration)
	}
	if len(m.Decisions) != 1 || m.Decisions[0].ID != "dec_0" {
		t.Fatalf("unexpected decisions %+v", m.Decisions)
	}
	if len(m.ActionItems) != 1 {
		t.Fatalf("expected 1 action item, got %+v", m.ActionItems)
	}
	item := m.ActionItems[0]
	if item.Status != "pending" || item.DueDate != "2025-01-24" || item.Priority != "high" {
		t.Fatalf("unexpected action item %+v", item)
	}
	if item.Assignee == nil || item.Assignee.Name != "鈴木" {
		t.Fatalf("unexpected assignee %+v", item.Assignee)
	}
	if m.Metadata.Model != "claude-test-1" {
		t.Fatalf("unexpected model %q", m.Metadata.Model)
	}
	if m.Metadata.Confidence <= 0.7 {
		t.Fatalf("substantial output must score above 0.7, got %f", m.Metadata.Confidence)
	}
	if result.Usage.InputTokens != 1500 || result.Usage.OutputTokens != 600 {
		t.Fatalf("unexpected usage %+v", result.Usage)
	}
	if result.ProcessingTimeMs < 0 {
		t.Fatalf("negative processing time %d", result.ProcessingTimeMs)
	}

	// prompt carries the formatted transcript
	if !strings.Contains(gen.lastPrompt, "[00:00:00] 田中: 本日の議題は2つです。") {
		t.Fatalf("formatted transcript missing from prompt:\n%s", gen.lastPrompt)
	}
}

func TestGenerateMinutes_DefaultOptions(t *testing.T) {
	gen := &fakeGenerator{raw: sampleRawJSON}
	svc := NewService(gen, nil)

	if _, err := svc.GenerateMinutes(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.lastOpts.MaxTokens != entities.DefaultMaxTokens {
		t.Fatalf("maxTokens = %d, want default %d", gen.lastOpts.MaxTokens, entities.DefaultMaxTokens)
	}
	if gen.lastOpts.RetryCount != entities.DefaultRetryCount {
		t.Fatalf("retryCount = %d, want default %d", gen.lastOpts.RetryCount, entities.DefaultRetryCount)
	}
	if !strings.Contains(gen.lastOpts.System, "議事録") {
		t.Fatal("default language must be Japanese")
	}
}

func TestGenerateMinutes_ExplicitOptions(t *testing.T) {
	gen := &fakeGenerator{raw: sampleRawJSON}
	svc := NewService(gen, nil)

	zero := 0
	input := validInput()
	input.Options = &entities.GenerationOptions{Language: entities.LanguageEnglish, MaxTokens: 2000, RetryCount: &zero}

	if _, err := svc.GenerateMinutes(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.lastOpts.MaxTokens != 2000 {
		t.Fatalf("maxTokens = %d, want 2000", gen.lastOpts.MaxTokens)
	}
	if gen.lastOpts.RetryCount != 0 {
		t.Fatalf("explicit zero retryCount must be honored, got %d", gen.lastOpts.RetryCount)
	}
	if !strings.Contains(gen.lastOpts.System, "minute-taker") {
		t.Fatal("English preamble not selected")
	}
}

func TestGenerateMinutes_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GenerateInput)
		message string
	}{
		{"nil transcript", func(in *GenerateInput) { in.Transcript = nil }, "transcript is required"},
		{"empty segments", func(in *GenerateInput) { in.Transcript.Segments = nil }, "at least one segment"},
		{"nil meeting", func(in *GenerateInput) { in.Meeting = nil }, "meeting is required"},
		{"empty meeting id", func(in *GenerateInput) { in.Meeting.ID = "" }, "meeting.id must not be empty"},
		{"empty title", func(in *GenerateInput) { in.Meeting.Title = "" }, "meeting.title must not be empty"},
		{"bad date", func(in *GenerateInput) { in.Meeting.Date = "20/01/2025" }, "YYYY-MM-DD"},
		{"nil attendees", func(in *GenerateInput) { in.Meeting.Attendees = nil }, "meeting.attendees must be an array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{raw: sampleRawJSON}
			svc := NewService(gen, nil)

			input := validInput()
			tt.mutate(&input)

			_, err := svc.GenerateMinutes(context.Background(), input)
			if err == nil {
				t.Fatal("expected error")
			}
			var appErr apperrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != apperrors.ErrorCodeValidation {
				t.Fatalf("code = %s, want VALIDATION_ERROR", appErr.Code)
			}
			if !strings.Contains(appErr.Message, tt.message) {
				t.Fatalf("message %q missing %q", appErr.Message, tt.message)
			}
			if gen.calls != 0 {
				t.Fatal("validation must fail before any model call")
			}
		})
	}
}

func TestGenerateMinutes_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code apperrors.ErrorCode
	}{
		{"api error", &llm.APIError{StatusCode: 500, Message: "overloaded"}, apperrors.ErrorCodeClaudeAPI},
		{"parse error", &llm.ParseError{RawText: "not json"}, apperrors.ErrorCodeParse},
		{"unknown error", errors.New("boom"), apperrors.ErrorCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeGenerator{err: tt.err}, nil)

			_, err := svc.GenerateMinutes(context.Background(), validInput())
			if err == nil {
				t.Fatal("expected error")
			}
			var appErr apperrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != tt.code {
				t.Fatalf("code = %s, want %s", appErr.Code, tt.code)
			}
			if !errors.Is(err, tt.err) {
				t.Fatal("original cause must be preserved")
			}
		})
	}
}
