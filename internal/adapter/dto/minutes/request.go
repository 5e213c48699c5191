package minutes

// SpeakerRequest identifies a transcript speaker
type SpeakerRequest struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
}

// SegmentRequest is one timed utterance in the request transcript
type SegmentRequest struct {
	ID         string         `json:"id"`
	StartTime  int64          `json:"startTime" validate:"min=0"`
	EndTime    int64          `json:"endTime" validate:"min=0"`
	Speaker    SpeakerRequest `json:"speaker" validate:"required"`
	Text       string         `json:"text" validate:"required"`
	Confidence float64        `json:"confidence" validate:"min=0,max=1"`
}

// TranscriptRequest is the transcript payload for minutes generation
type TranscriptRequest struct {
	MeetingID     string           `json:"meetingId"`
	Language      string           `json:"language"`
	Segments      []SegmentRequest `json:"segments" validate:"required,min=1,dive"`
	TotalDuration int64            `json:"totalDuration" validate:"min=0"`
}

// AttendeeRequest is a meeting participant in the request
type AttendeeRequest struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
}

// MeetingRequest is the meeting context payload
type MeetingRequest struct {
	ID        string            `json:"id" validate:"required"`
	Title     string            `json:"title" validate:"required,max=500"`
	Date      string            `json:"date" validate:"required"`
	Attendees []AttendeeRequest `json:"attendees" validate:"dive"`
}

// OptionsRequest tunes one generation call
type OptionsRequest struct {
	Language   string `json:"language,omitempty" validate:"omitempty,oneof=ja en"`
	MaxTokens  int    `json:"maxTokens,omitempty" validate:"omitempty,min=1,max=64000"`
	RetryCount *int   `json:"retryCount,omitempty" validate:"omitempty,min=0,max=5"`
}

// GenerateMinutesRequest represents the request to generate minutes
type GenerateMinutesRequest struct {
	Transcript *TranscriptRequest `json:"transcript" validate:"required"`
	Meeting    *MeetingRequest    `json:"meeting" validate:"required"`
	Options    *OptionsRequest    `json:"options,omitempty"`
}

// UpdateStatusRequest represents the request to move minutes through the
// approval workflow
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft pending_review approved rejected"`
}

// ImportTranscriptRequest represents the request to import an AssemblyAI
// transcript for a meeting
type ImportTranscriptRequest struct {
	MeetingID    string `json:"meetingId" validate:"required"`
	TranscriptID string `json:"transcriptId" validate:"required"`
}

// ListMinutesRequest represents query parameters for listing minutes
type ListMinutesRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=draft pending_review approved rejected"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
}
