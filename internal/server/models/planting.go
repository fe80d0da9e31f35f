package models

import "time"

// Planting is a submitted tree-planting record. Once approved it is immutable
// except for PhotoThumbURL, which the media pipeline may fill in later.
type Planting struct {
	PID           string
	UserID        string
	Species       string
	Location      string
	PhotoThumbURL string
	Approved      bool
	CreatedAt     time.Time
}

// CheckIn is a follow-up visit recorded under a planting.
type CheckIn struct {
	CID           string
	PlantingID    string
	CheckerID     string
	PhotoThumbURL string
	Approved      bool
	CreatedAt     time.Time
}
