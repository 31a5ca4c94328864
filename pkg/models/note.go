package models

import (
	"time"

	"github.com/google/uuid"
)

// Note holds raw meeting notes for a contact. RawNotes is immutable except
// by direct edit; ProcessedSummary is overwritten each time the summarizer
// re-runs.
type Note struct {
	ID               uuid.UUID `json:"id"`
	ContactID        uuid.UUID `json:"contact_id"`
	MeetingDate      time.Time `json:"meeting_date"` // date only
	RawNotes         string    `json:"raw_notes"`
	ProcessedSummary *string   `json:"processed_summary,omitempty"`
}
