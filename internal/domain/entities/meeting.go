package entities

// Attendee is a meeting participant as supplied by the caller.
type Attendee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MeetingContext carries the meeting metadata required to generate minutes.
// Date is a strict YYYY-MM-DD string.
type MeetingContext struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Date      string     `json:"date"`
	Attendees []Attendee `json:"attendees"`
}
