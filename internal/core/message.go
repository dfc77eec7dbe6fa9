package core

import "time"

// Message is a listener-submitted note shown in the feed.
type Message struct {
	ID         string `json:"id" db:"id"`
	SenderName string `json:"name" db:"sender_name"`
	City       string `json:"city" db:"city"`
	Text       string `json:"text" db:"text"`
	Photo      string `json:"photo" db:"photo"`
	CreatedAt  int64  `json:"timestamp" db:"created_at"`
}

// Time returns the creation timestamp as a time.Time.
func (m Message) Time() time.Time {
	return time.UnixMilli(m.CreatedAt)
}

// HasCustomPhoto reports whether the sender attached their own photo.
func (m Message) HasCustomPhoto(placeholder string) bool {
	return m.Photo != "" && m.Photo != placeholder
}
