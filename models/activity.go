package models

import "time"

// Activity is what gets shown to anyone looking at the presence
type Activity struct {
	Details string    `json:"details"`
	State   string    `json:"state"`
	Start   time.Time `json:"start"`
}
