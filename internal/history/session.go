// Package history persists per-session conversation transcripts, one JSON
// file per session under a fixed directory. Records are append-only while a
// session is active and are rewritten whole on every append; the acceptable
// loss window across a crash is exactly the entry in flight.
package history

import "time"

// EntryType marks what produced a transcript entry.
type EntryType string

const (
	// EntryUser is a line the user typed.
	EntryUser EntryType = "user"
	// EntryQuery is the instruction actually forwarded to the remote runtime.
	EntryQuery EntryType = "query"
	// EntryResponse is a reply received from the remote runtime.
	EntryResponse EntryType = "response"
)

// Entry is one timestamped transcript record. Immutable once appended.
type Entry struct {
	Type      EntryType `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the persisted form of one conversation.
type Session struct {
	ID      string    `json:"id"`
	Created time.Time `json:"created"`
	History []Entry   `json:"history"`
}

// Summary describes a stored session without its transcript.
type Summary struct {
	ID         string
	Created    time.Time
	EntryCount int
}
