package prompts

import (
	"fmt"
	"strings"
)

// ContactContext is the contact snapshot shared by the email writers.
type ContactContext struct {
	Name      string
	FirstName string
	Role      string
	Company   string
	Source    string
}

// InteractionContext is one logged touchpoint formatted for a prompt.
type InteractionContext struct {
	Date          string // YYYY-MM-DD or "" when unknown
	Type          string
	Summary       string
	Outcome       string
	NextAction    string
	NextActionDue string
}

// NoteContext is one meeting note formatted for a prompt.
type NoteContext struct {
	MeetingDate string
	RawNotes    string
	Summary     string // structured summary if the summarizer has run
}

// FactContext is one extracted CRM fact formatted for a prompt.
type FactContext struct {
	Intent         string
	Timeline       string
	Summary        string
	NextActionHint string
}

func (c InteractionContext) displayDate() string {
	if c.Date == "" {
		return "Unknown date"
	}
	return c.Date
}

func (c InteractionContext) displayType() string {
	t := c.Type
	if t == "" {
		t = "interaction"
	}
	return strings.ReplaceAll(t, "_", " ")
}

// interactionLog renders interactions as "- date: type - summary" lines.
func interactionLog(interactions []InteractionContext) string {
	if len(interactions) == 0 {
		return "(No prior interactions logged)"
	}
	var lines []string
	for _, i := range interactions {
		lines = append(lines, fmt.Sprintf("- %s: %s - %s", i.displayDate(), i.displayType(), i.Summary))
	}
	return strings.Join(lines, "\n")
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
