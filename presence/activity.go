package presence

import (
	"fmt"
	"time"

	"github.com/marcus-crane/cmuscord/models"
)

// BuildActivity renders a snapshot the way it appears on a profile. The start
// time is the session anchor and deliberately survives track changes.
func BuildActivity(s *models.Snapshot, start time.Time) models.Activity {
	progress := "paused"
	if s.Playing {
		progress = FormatProgress(s.Position, s.Duration)
	}
	return models.Activity{
		Details: s.DisplayTitle(),
		State:   fmt.Sprintf("%s (%s)", s.DisplayArtist(), progress),
		Start:   start,
	}
}

// FormatProgress gives eg; "1:05 of 10:00"
func FormatProgress(position, duration int) string {
	return fmt.Sprintf("%s of %s", FormatTimestamp(position), FormatTimestamp(duration))
}

// FormatTimestamp renders seconds as m:ss with unpadded minutes
func FormatTimestamp(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
