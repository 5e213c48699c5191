package entities

import "time"

// Speaker identifies who said something. IDs are caller-supplied for
// transcript speakers and synthetic (speaker_N, assignee_N) for entities
// emitted by the model.
type Speaker struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TranscriptSegment is a single timed utterance attributed to one speaker.
// Times are milliseconds from meeting start.
type TranscriptSegment struct {
	ID         string  `json:"id"`
	StartTime  int64   `json:"startTime"`
	EndTime    int64   `json:"endTime"`
	Speaker    Speaker `json:"speaker"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Transcript is the ordered speech-to-text output for one meeting.
type Transcript struct {
	MeetingID     string              `json:"meetingId"`
	Language      string              `json:"language"`
	Segments      []TranscriptSegment `json:"segments"`
	TotalDuration int64               `json:"totalDuration"`
	CreatedAt     time.Time           `json:"createdAt"`
}
