package models

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Snapshot is a single poll's view of what cmus has loaded. A nil *Snapshot
// means nothing is loaded (or cmus isn't running at all).
type Snapshot struct {
	Path     string  `json:"path"`
	Playing  bool    `json:"playing"`
	Status   string  `json:"status"`
	Title    *string `json:"title,omitempty"`
	Artist   *string `json:"artist,omitempty"`
	Album    *string `json:"album,omitempty"`
	Duration int     `json:"duration"` // seconds
	Position int     `json:"position"` // seconds
}

// DisplayTitle falls back to the file path for untagged tracks
func (s *Snapshot) DisplayTitle() string {
	if s.Title != nil {
		return *s.Title
	}
	return s.Path
}

func (s *Snapshot) DisplayArtist() string {
	if s.Artist != nil {
		return *s.Artist
	}
	return ""
}

// TrackID is stable for as long as the same file stays loaded, regardless of
// position or play state, so it can be used to spot track changes.
func (s *Snapshot) TrackID() string {
	hashString := fmt.Sprintf("%s-%s-%s-%d",
		s.Path,
		s.DisplayTitle(),
		s.DisplayArtist(),
		s.Duration,
	)
	return fmt.Sprintf("cmus:track:%d", xxhash.Sum64String(hashString))
}
