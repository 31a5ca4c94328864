package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContactSource describes how a contact entered the pipeline.
const (
	ContactSourceReferral     = "referral"
	ContactSourceColdLinkedIn = "cold_linkedin"
	ContactSourceEvent        = "event"
	ContactSourceOther        = "other"
)

// Contact represents one person in the BD pipeline. Email is unique across
// all contacts; the repository maps the unique-constraint violation to
// apperrors.ErrConflict.
type Contact struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name"`
	Role        string    `json:"role"`
	Email       string    `json:"email"`
	LinkedInURL *string   `json:"linkedin_url,omitempty"`
	WebsiteURL  *string   `json:"website_url,omitempty"`
	Source      string    `json:"source"` // 'referral', 'cold_linkedin', 'event', 'other'
	Status      string    `json:"status"` // free-form pipeline stage, e.g. 'prospect', 'client'
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ContactDetail is a contact with its owned history, newest first.
type ContactDetail struct {
	Contact
	Interactions []*Interaction `json:"interactions"`
	Notes        []*Note        `json:"notes"`
}

// FirstName returns the leading word of the contact's name, or "" when the
// name is empty. Used for email greetings.
func (c *Contact) FirstName() string {
	parts := strings.Fields(c.Name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
