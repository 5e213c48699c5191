package entities

// Topic is a discussed topic in the finished minutes. IDs are positional
// (topic_0, topic_1, ...) in source-array order.
type Topic struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime int64     `json:"startTime"`
	EndTime   int64     `json:"endTime"`
	Summary   string    `json:"summary"`
	KeyPoints []string  `json:"keyPoints"`
	Speakers  []Speaker `json:"speakers"`
}

// Decision is a decision recorded in the minutes (dec_N).
type Decision struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Context   string `json:"context,omitempty"`
	DecidedAt string `json:"decidedAt,omitempty"`
}

// ActionItem is a follow-up task recorded in the minutes (act_N). Status is
// always "pending" at creation; later transitions belong to the dashboard's
// task workflow, not to generation.
type ActionItem struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Assignee *Speaker `json:"assignee,omitempty"`
	DueDate  string   `json:"dueDate,omitempty"`
	Priority string   `json:"priority"`
	Status   string   `json:"status"`
}

// ActionItemStatusPending is the only status the generation pipeline assigns.
const ActionItemStatusPending = "pending"

// MinutesMetadata describes how a minutes document was produced.
type MinutesMetadata struct {
	GeneratedAt      string  `json:"generatedAt"`
	Model            string  `json:"model"`
	ProcessingTimeMs int64   `json:"processingTimeMs"`
	Confidence       float64 `json:"confidence"`
}

// Minutes is the canonical minutes document produced by one generation call.
// Duration is max(topic.endTime) - min(topic.startTime) in milliseconds, or 0
// when there are no topics.
type Minutes struct {
	ID          string          `json:"id"`
	MeetingID   string          `json:"meetingId"`
	Title       string          `json:"title"`
	Date        string          `json:"date"`
	Duration    int64           `json:"duration"`
	Summary     string          `json:"summary"`
	Topics      []Topic         `json:"topics"`
	Decisions   []Decision      `json:"decisions"`
	ActionItems []ActionItem    `json:"actionItems"`
	Attendees   []Speaker       `json:"attendees"`
	Metadata    MinutesMetadata `json:"metadata"`
}
