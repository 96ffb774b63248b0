package model

import "time"

// JournalEntry records one successful save of a document.
type JournalEntry struct {
	Path      Path
	Hash      string // sha256 of the saved text
	Size      int
	SavedAt   time.Time
	SessionID string
}
