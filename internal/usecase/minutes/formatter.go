package minutes

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/minutes-dashboard/internal/domain/entities"
)

// FormatTranscript renders timestamped speech segments into the prompt-ready
// text block, one line per segment in segment order:
//
//	[HH:MM:SS] SpeakerName: text
//
// The timestamp is derived from the segment's start time; hours wrap past 24.
func FormatTranscript(t *entities.Transcript) string {
	lines := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", formatTimestamp(seg.StartTime), seg.Speaker.Name, seg.Text))
	}
	return strings.Join(lines, "\n")
}

// formatTimestamp converts milliseconds to zero-padded HH:MM:SS.
func formatTimestamp(ms int64) string {
	totalSeconds := ms / 1000
	hours := (totalSeconds / 3600) % 24
	mins := (totalSeconds / 60) % 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
}
