package entities

// RawMinutesOutput is the model-asserted minutes structure as decoded from the
// LLM response, before ID assignment and post-processing. Field names follow
// the JSON contract given to the model.
type RawMinutesOutput struct {
	Summary     string          `json:"summary"`
	Topics      []RawTopic      `json:"topics"`
	Decisions   []RawDecision   `json:"decisions"`
	ActionItems []RawActionItem `json:"actionItems"`
	Attendees   []RawPerson     `json:"attendees,omitempty"`
}

// RawPerson is a person reference emitted by the model (name only; IDs are
// assigned during transformation).
type RawPerson struct {
	Name string `json:"name"`
}

// RawTopic is one discussion topic with its time span in milliseconds.
type RawTopic struct {
	Title     string      `json:"title"`
	StartTime int64       `json:"startTime"`
	EndTime   int64       `json:"endTime"`
	Summary   string      `json:"summary"`
	KeyPoints []string    `json:"keyPoints"`
	Speakers  []RawPerson `json:"speakers"`
}

// RawDecision is a decision the model extracted from the discussion.
type RawDecision struct {
	Content   string `json:"content"`
	Context   string `json:"context,omitempty"`
	DecidedAt string `json:"decidedAt,omitempty"`
}

// RawActionItem is a follow-up task the model extracted. Assignee is nil when
// the model did not attribute the task to anyone.
type RawActionItem struct {
	Content  string     `json:"content"`
	Assignee *RawPerson `json:"assignee,omitempty"`
	DueDate  string     `json:"dueDate,omitempty"`
	Priority string     `json:"priority"`
}
