package models

import "strings"

// Valid values for NextActionSuggestion.Type.
const (
	SuggestionFollowupEmail  = "followup_email"
	SuggestionBookCall       = "book_call"
	SuggestionSendProposal   = "send_proposal"
	SuggestionShareCaseStudy = "share_case_study"
	SuggestionNurtureCheckin = "nurture_checkin"
	SuggestionNoAction       = "no_action_recommended"
)

var validSuggestionTypes = map[string]bool{
	SuggestionFollowupEmail:  true,
	SuggestionBookCall:       true,
	SuggestionSendProposal:   true,
	SuggestionShareCaseStudy: true,
	SuggestionNurtureCheckin: true,
	SuggestionNoAction:       true,
}

// NextActionSuggestion is the NEXT_ACTION_COACH recommendation for a
// contact. Produced by the model as strict JSON and normalized before it
// reaches the UI.
type NextActionSuggestion struct {
	Type             string  `json:"next_action_type"`
	Title            string  `json:"next_action_title"`
	Description      string  `json:"next_action_description"`
	ProposedSubject  *string `json:"proposed_email_subject"`
	ProposedBody     *string `json:"proposed_email_body"`
	SuggestedDueDate *string `json:"suggested_due_date"` // ISO date (YYYY-MM-DD)
	Confidence       float64 `json:"confidence"`
	Notes            *string `json:"notes_for_adam"`
}

// Normalize clamps a model-produced suggestion: unknown types collapse to
// no_action_recommended, confidence is clamped to [0, 1], and malformed
// due dates are dropped.
func (s *NextActionSuggestion) Normalize() {
	s.Type = strings.TrimSpace(s.Type)
	if !validSuggestionTypes[s.Type] {
		s.Type = SuggestionNoAction
	}
	if s.Confidence < 0 {
		s.Confidence = 0
	}
	if s.Confidence > 1 {
		s.Confidence = 1
	}
	if s.SuggestedDueDate != nil && !isISODate(*s.SuggestedDueDate) {
		s.SuggestedDueDate = nil
	}
	s.ProposedSubject = trimPtr(s.ProposedSubject)
	s.ProposedBody = trimPtr(s.ProposedBody)
	s.Notes = trimPtr(s.Notes)
}

// FallbackSuggestion is returned when the model output cannot be parsed
// into a grounded suggestion.
func FallbackSuggestion() NextActionSuggestion {
	notes := "AI assistant could not produce a grounded suggestion."
	return NextActionSuggestion{
		Type:        SuggestionNoAction,
		Description: "Not enough context to recommend a next action.",
		Confidence:  0,
		Notes:       &notes,
	}
}

func isISODate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, c := range s {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
