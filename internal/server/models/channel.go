package models

import "time"

type ChannelType string

const (
	ChannelText     ChannelType = "text"
	ChannelAnnounce ChannelType = "announce"
)

// Channel is a chat channel record. Content is empty for plain text channels;
// for announcement channels it holds the pinned body.
type Channel struct {
	ID      string
	Name    string
	Type    ChannelType
	Content string
	Created time.Time
	Updated time.Time
}
