package models

import (
	"time"

	"github.com/google/uuid"
)

// InteractionOutcome values for the outcome field.
const (
	OutcomePending    = "pending"
	OutcomePositive   = "positive"
	OutcomeNegative   = "negative"
	OutcomeNoResponse = "no_response"
)

// Interaction is one logged touchpoint with a contact. The next-action
// fields drive the global next-actions board until NextActionCompleted is
// set, at which point the action text is archived.
type Interaction struct {
	ID                  uuid.UUID  `json:"id"`
	ContactID           uuid.UUID  `json:"contact_id"`
	OccurredAt          time.Time  `json:"occurred_at"`
	Type                string     `json:"type"` // 'call', 'email', 'meeting', 'linkedin_message', ...
	Summary             string     `json:"summary"`
	NextAction          *string    `json:"next_action,omitempty"`
	NextActionDue       *time.Time `json:"next_action_due,omitempty"` // date only
	NextActionCompleted bool       `json:"next_action_completed"`
	Outcome             string     `json:"outcome"` // 'pending', 'positive', 'negative', 'no_response'
	OutcomeNotes        *string    `json:"outcome_notes,omitempty"`
}

// ArchivedNextAction preserves the action text of a completed or replaced
// next action.
type ArchivedNextAction struct {
	ID            uuid.UUID  `json:"id"`
	InteractionID uuid.UUID  `json:"interaction_id"`
	ArchivedAt    time.Time  `json:"archived_at"`
	NextAction    *string    `json:"next_action,omitempty"`
	NextActionDue *time.Time `json:"next_action_due,omitempty"`
}

// NextActionItem is one row on the global next-actions board: a due,
// uncompleted next action joined with its contact.
type NextActionItem struct {
	InteractionID uuid.UUID `json:"interaction_id"`
	ContactID     uuid.UUID `json:"contact_id"`
	ContactName   string    `json:"contact_name"`
	CompanyName   string    `json:"company_name"`
	NextAction    string    `json:"next_action"`
	NextActionDue time.Time `json:"next_action_due"`
	Overdue       bool      `json:"overdue"`
}

// OutcomeCount is one row of the outcome metrics report.
type OutcomeCount struct {
	Outcome string `json:"outcome"`
	Count   int    `json:"count"`
}
