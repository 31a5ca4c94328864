// Package prompts holds the fixed templates for the ATLAS drafting and
// summarization helpers. Every call sends GlobalStyle as the system
// message; each Build* function fills one role-specific template from
// bounded context assembled by the intel service.
package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GlobalStyle is the shared style/guardrail preamble sent as the system
// message on every model call. The guardrails matter more than the tone:
// never invent facts, mark gaps explicitly, and keep AI assistive.
const GlobalStyle = `You are ATLAS, a drafting assistant for Adam Phillips, an AI consultant.
Write in Adam's voice: professional, warm, concise, and problem-first. Start from the contact's business context and pains, then introduce AI as a tool - never as magic. Emphasise measurable outcomes (time saved, reduced rework, improved first-pass approval, better traceability) and simple comparisons (e.g. "1 unit of time upstream vs 100 units downstream").
AI assists; it does not replace people. Whenever you propose AI use, make it clear that AI drafts and humans review/approve; no AI in control loops; data access is read-only; decisions should be logged for auditability.
Use short paragraphs and bullet points. Avoid hype, jargon, and grand claims. Never invent facts; use only the information supplied. If something is missing or unclear, write "(unclear)" or "(needs confirmation)" rather than guessing.`

// sourceDescriptions maps a contact's source to a short phrase the email
// writers use to explain how Adam found them.
var sourceDescriptions = map[string]string{
	"referral":      "Referred by a mutual contact or client (specific name may be unclear).",
	"cold_linkedin": "Identified via LinkedIn outreach; Adam initiated the conversation directly.",
	"event":         "Met briefly at an event; reference that shared touchpoint without overstating.",
	"other":         "Self-initiated research; Adam reached out after independent digging.",
}

const defaultSourceDescription = "Self-initiated research; keep context general if specifics are missing."

// DescribeContactSource returns a short phrase describing how Adam found
// the contact.
func DescribeContactSource(source string) string {
	if desc, ok := sourceDescriptions[source]; ok {
		return desc
	}
	return defaultSourceDescription
}

// Greeting builds the verbatim greeting line for an email draft.
func Greeting(firstName, fullName string) string {
	if firstName != "" {
		return fmt.Sprintf("Hi %s,", firstName)
	}
	if fullName != "" {
		return fmt.Sprintf("Hi %s,", fullName)
	}
	return "Hi there,"
}

// StyleExamples holds optional reference emails used only for tone and
// cadence. Missing files are fine; the templates degrade gracefully.
type StyleExamples struct {
	IntroEmail       string
	FollowupEmail    string
	SpitfireFollowup string
}

// LoadStyleExamples reads the style-reference markdown files from dir.
// Best-effort: unreadable files become empty strings.
func LoadStyleExamples(dir string) StyleExamples {
	return StyleExamples{
		IntroEmail:       loadExample(dir, "intro_email_emerson.md"),
		FollowupEmail:    loadExample(dir, "followup_workshop_emerson.md"),
		SpitfireFollowup: loadExample(dir, "followup_spitfire.md"),
	}
}

func loadExample(dir, filename string) string {
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
