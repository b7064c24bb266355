package cmus

import (
	"errors"
	"strconv"
	"strings"

	"github.com/marcus-crane/cmuscord/models"
	"github.com/marcus-crane/cmuscord/shared"
)

// ErrMissingTiming is returned when a file is loaded but cmus didn't report a
// usable duration or position for it.
var ErrMissingTiming = errors.New("cmus reported a file without a valid duration and position")

// ParseStatus parses the raw output of `cmus-remote -Q`
func ParseStatus(text string) (*models.Snapshot, error) {
	return ParseLines(SplitFields(text))
}

// ParseLines builds a snapshot from whitespace separated status lines. Unknown
// keys are skipped so newer cmus versions don't break anything. A nil snapshot
// with a nil error means nothing is loaded.
func ParseLines(lines [][]string) (*models.Snapshot, error) {
	var (
		path     *string
		title    *string
		artist   *string
		album    *string
		duration *int
		position *int
		status   string
		playing  bool
	)

	for _, line := range lines {
		if len(line) == 0 {
			continue
		}

		switch line[0] {
		case "status":
			status = valueAt(line, 1)
			playing = status == shared.PLAYER_STATE_PLAYING
		case "file":
			if len(line) > 1 {
				p := line[1]
				path = &p
			}
		case "duration":
			duration = parseSeconds(line)
		case "position":
			position = parseSeconds(line)
		case "tag":
			switch valueAt(line, 1) {
			case "title":
				t := joinPastKey(line)
				title = &t
			case "artist":
				a := joinPastKey(line)
				artist = &a
			case "album":
				a := joinPastKey(line)
				album = &a
			}
		}
	}

	if path == nil {
		return nil, nil
	}

	if duration == nil || position == nil {
		return nil, ErrMissingTiming
	}

	return &models.Snapshot{
		Path:     *path,
		Playing:  playing,
		Status:   status,
		Title:    title,
		Artist:   artist,
		Album:    album,
		Duration: *duration,
		Position: *position,
	}, nil
}

func valueAt(line []string, idx int) string {
	if idx < len(line) {
		return line[idx]
	}
	return ""
}

// joinPastKey rejoins everything after `tag <name>` with single spaces, so
// runs of whitespace inside a tag collapse.
func joinPastKey(line []string) string {
	if len(line) <= 2 {
		return ""
	}
	return strings.Join(line[2:], " ")
}

// parseSeconds returns nil for a missing or non-numeric value so that a bad
// line overrides any earlier good one for the same key.
func parseSeconds(line []string) *int {
	n, err := strconv.Atoi(valueAt(line, 1))
	if err != nil {
		return nil
	}
	return &n
}
