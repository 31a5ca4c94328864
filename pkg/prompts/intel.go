package prompts

import (
	"fmt"
	"strings"
)

// FactExtractionContext carries the contact framing for fact extraction.
type FactExtractionContext struct {
	ContactName    string
	ContactCompany string
	ContactEmail   string
	SourceType     string // 'note' or 'interaction'
	SourceDate     string
	Text           string
}

// BuildFactExtractionPrompt creates the CRM_FACT_EXTRACTOR prompt. The
// model must answer with strict JSON matching the FactPayload schema;
// the caller normalizes whatever comes back.
func BuildFactExtractionPrompt(fc FactExtractionContext) string {
	return fmt.Sprintf(`You are CRM_FACT_EXTRACTOR. Turn the provided context into grounded CRM facts Adam can reuse later.

Contact context:
- Name: %s
- Company: %s
- Email: %s
- Source type: %s
- Source date: %s

Raw text:
"""%s"""

Instructions:
- Work only with the supplied text; mark gaps with "(unclear)".
- Output valid JSON (no comments, code fences, or prose) matching this schema:
{
  "contact_name": string|null,
  "contact_email": string|null,
  "org": string|null,
  "intent": one of ["interested_in_ai_audit","wants_training","outreach_workflow","lss_green_belt_with_ai","followup_needed","general_interest","unclear"],
  "mentioned_process": short string such as "outreach", "internal_audit", "proposal_workflow", "lss_green_belt", or "other/unclear",
  "timeline": one of ["this_month","next_quarter","later","unknown"],
  "next_action_hint": short free-text suggestion or null,
  "summary": 2-4 sentence recap for Adam.
}
- Prefer concise, factual language and reuse "(unclear)" when evidence is missing.
- If nothing concrete is present, set intent="unclear" and leave other fields null or "(unclear)".`,
		orPlaceholder(fc.ContactName, "(unclear)"),
		orPlaceholder(fc.ContactCompany, "(unclear)"),
		orPlaceholder(fc.ContactEmail, "(unclear)"),
		fc.SourceType,
		orPlaceholder(fc.SourceDate, "(unclear)"),
		strings.TrimSpace(fc.Text))
}

// BuildNextActionPrompt creates the NEXT_ACTION_COACH prompt that
// recommends the most useful next action from recent history.
func BuildNextActionPrompt(contact ContactContext, interactions []InteractionContext, notes []NoteContext, facts []FactContext) string {
	var interactionLines []string
	for _, i := range interactions {
		action := "-"
		if i.NextAction != "" {
			action = i.NextAction
		}
		due := "-"
		if i.NextActionDue != "" {
			due = i.NextActionDue
		}
		interactionLines = append(interactionLines,
			fmt.Sprintf("- %s: %s | outcome=%s | next_action=%s (due %s) | %s",
				orPlaceholder(i.Date, "(undated)"), i.Type,
				strings.ReplaceAll(orPlaceholder(i.Outcome, "pending"), "_", " "),
				action, due, i.Summary))
	}

	var noteLines []string
	for _, n := range notes {
		noteLines = append(noteLines, fmt.Sprintf("- %s: structured=%s | raw=%s",
			orPlaceholder(n.MeetingDate, "(undated)"), orPlaceholder(n.Summary, "(none)"), n.RawNotes))
	}

	var factLines []string
	for _, f := range facts {
		factLines = append(factLines, fmt.Sprintf("- intent=%s, timeline=%s, summary=%s | hint=%s",
			orPlaceholder(f.Intent, "unclear"), orPlaceholder(f.Timeline, "unknown"),
			orPlaceholder(f.Summary, "(unclear)"), orPlaceholder(f.NextActionHint, "(none)")))
	}

	return fmt.Sprintf(`You are NEXT_ACTION_COACH. Recommend Adam Phillips' most useful next action based on the context below.

Contact: %s (%s) at %s

Recent interactions:
%s

Recent notes:
%s

Structured facts:
%s

Output strict JSON with these fields:
{
  "next_action_type": one of ["followup_email","book_call","send_proposal","share_case_study","nurture_checkin","no_action_recommended"],
  "next_action_title": short label for the board,
  "next_action_description": 2-3 sentences on what to do and why,
  "proposed_email_subject": optional subject <= 9 words (null if not needed),
  "proposed_email_body": optional email draft following Adam's guardrails (null if not needed),
  "suggested_due_date": ISO date string (YYYY-MM-DD) or null,
  "confidence": float 0-1,
  "notes_for_adam": short bullet-style text explaining the reasoning.
}

Guidance:
- Ground every suggestion in the supplied evidence; mark gaps with "(unclear)".
- If there isn't enough signal, set next_action_type="no_action_recommended" and explain why.
- Reinforce that AI drafts, humans approve; never imply auto-sending or control-loop autonomy.
- Avoid new promises on price/timeline; keep tone practical and measurable.`,
		contact.Name, contact.Role, contact.Company,
		orPlaceholder(strings.Join(interactionLines, "\n"), "(No recent interactions)"),
		orPlaceholder(strings.Join(noteLines, "\n"), "(No recent notes)"),
		orPlaceholder(strings.Join(factLines, "\n"), "(No structured facts yet)"))
}
