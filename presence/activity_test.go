package presence

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/marcus-crane/cmuscord/models"
)

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()
	cases := map[int]string{
		0:    "0:00",
		5:    "0:05",
		59:   "0:59",
		60:   "1:00",
		65:   "1:05",
		600:  "10:00",
		3725: "62:05",
	}
	for secs, want := range cases {
		assert.Equal(t, want, FormatTimestamp(secs))
	}
}

func TestFormatProgress(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "1:05 of 10:00", FormatProgress(65, 600))
	assert.Equal(t, "0:05 of 0:05", FormatProgress(5, 5))
	assert.Equal(t, "0:00 of 3:30", FormatProgress(0, 210))
}

func TestBuildActivity(t *testing.T) {
	t.Parallel()
	start := time.Unix(1700000000, 0)
	title := "Roygbiv"
	artist := "Boards of Canada"

	cases := []struct {
		name     string
		snapshot models.Snapshot
		want     models.Activity
	}{
		{
			name:     "playing with tags",
			snapshot: models.Snapshot{Path: "/a.flac", Playing: true, Title: &title, Artist: &artist, Duration: 150, Position: 65},
			want:     models.Activity{Details: "Roygbiv", State: "Boards of Canada (1:05 of 2:30)", Start: start},
		},
		{
			name:     "paused",
			snapshot: models.Snapshot{Path: "/a.flac", Playing: false, Title: &title, Artist: &artist, Duration: 150, Position: 65},
			want:     models.Activity{Details: "Roygbiv", State: "Boards of Canada (paused)", Start: start},
		},
		{
			name:     "untagged",
			snapshot: models.Snapshot{Path: "/music/track01.mp3", Playing: true, Duration: 5, Position: 5},
			want:     models.Activity{Details: "/music/track01.mp3", State: " (0:05 of 0:05)", Start: start},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildActivity(&tc.snapshot, start)
			if !cmp.Equal(tc.want, got) {
				t.Error(cmp.Diff(tc.want, got))
			}
		})
	}
}
