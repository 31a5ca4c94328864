package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FactSourceType identifies where a CRM fact was extracted from.
const (
	FactSourceNote        = "note"
	FactSourceInteraction = "interaction"
)

// Valid values for FactPayload.Intent.
const (
	IntentAIAudit         = "interested_in_ai_audit"
	IntentTraining        = "wants_training"
	IntentOutreach        = "outreach_workflow"
	IntentGreenBelt       = "lss_green_belt_with_ai"
	IntentFollowupNeeded  = "followup_needed"
	IntentGeneralInterest = "general_interest"
	IntentUnclear         = "unclear"
)

// Valid values for FactPayload.Timeline.
const (
	TimelineThisMonth   = "this_month"
	TimelineNextQuarter = "next_quarter"
	TimelineLater       = "later"
	TimelineUnknown     = "unknown"
)

var validIntents = map[string]bool{
	IntentAIAudit:         true,
	IntentTraining:        true,
	IntentOutreach:        true,
	IntentGreenBelt:       true,
	IntentFollowupNeeded:  true,
	IntentGeneralInterest: true,
	IntentUnclear:         true,
}

var validTimelines = map[string]bool{
	TimelineThisMonth:   true,
	TimelineNextQuarter: true,
	TimelineLater:       true,
	TimelineUnknown:     true,
}

// CRMFact is one append-only entry in a contact's intelligence log,
// extracted from a note or interaction by the fact extractor.
type CRMFact struct {
	ID         uuid.UUID   `json:"id"`
	ContactID  uuid.UUID   `json:"contact_id"`
	SourceType string      `json:"source_type"` // 'note' or 'interaction'
	SourceID   *uuid.UUID  `json:"source_id,omitempty"`
	Payload    FactPayload `json:"fact_payload"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// FactPayload is the structured fact schema the extractor asks the model
// to fill. Stored as JSONB.
type FactPayload struct {
	ContactName      *string `json:"contact_name"`
	ContactEmail     *string `json:"contact_email"`
	Org              *string `json:"org"`
	Intent           string  `json:"intent"`
	MentionedProcess string  `json:"mentioned_process"`
	Timeline         string  `json:"timeline"`
	NextActionHint   *string `json:"next_action_hint"`
	Summary          string  `json:"summary"`
	RawText          *string `json:"raw_text,omitempty"` // excerpt kept when extraction degraded
}

// Normalize clamps a model-produced payload to the schema: unknown intents
// collapse to "unclear", unknown timelines to "unknown", and an empty
// summary falls back to an excerpt of the source text. Values never
// present in the input are not invented.
func (p *FactPayload) Normalize(fallbackText string) {
	p.Intent = strings.TrimSpace(p.Intent)
	if !validIntents[p.Intent] {
		p.Intent = IntentUnclear
	}
	p.Timeline = strings.TrimSpace(p.Timeline)
	if !validTimelines[p.Timeline] {
		p.Timeline = TimelineUnknown
	}
	if p.MentionedProcess == "" {
		p.MentionedProcess = "other/unclear"
	}
	p.Summary = strings.TrimSpace(p.Summary)
	if p.Summary == "" {
		p.Summary = Snippet(fallbackText, 200, "(unclear)")
	}
	p.ContactName = trimPtr(p.ContactName)
	p.ContactEmail = trimPtr(p.ContactEmail)
	p.Org = trimPtr(p.Org)
	p.NextActionHint = trimPtr(p.NextActionHint)
}

// DegradedFactPayload returns the payload stored when extraction fails:
// all-unknown fields plus a raw-text excerpt for later manual review.
func DegradedFactPayload(sourceText string) FactPayload {
	excerpt := Snippet(sourceText, 600, "(unclear)")
	return FactPayload{
		Intent:           IntentUnclear,
		MentionedProcess: "other/unclear",
		Timeline:         TimelineUnknown,
		Summary:          Snippet(sourceText, 200, "(unclear)"),
		RawText:          &excerpt,
	}
}

// Snippet compacts whitespace and truncates value to limit runes with a
// trailing ellipsis. Empty input yields the placeholder.
func Snippet(value string, limit int, placeholder string) string {
	compact := strings.Join(strings.Fields(value), " ")
	if compact == "" {
		return placeholder
	}
	runes := []rune(compact)
	if len(runes) <= limit {
		return compact
	}
	return strings.TrimRight(string(runes[:limit-3]), " ") + "..."
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
