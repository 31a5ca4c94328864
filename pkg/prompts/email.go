package prompts

import (
	"fmt"
	"strings"
)

// BuildFirstEmailPrompt creates the BD_FIRST_EMAIL_WRITER prompt for a
// first-touch outreach email. websiteSummary may be empty when the
// website analyser has not run or failed.
func BuildFirstEmailPrompt(contact ContactContext, websiteSummary string, examples StyleExamples) string {
	greeting := Greeting(contact.FirstName, contact.Name)
	sourceContext := DescribeContactSource(contact.Source)

	websiteSection := "Website summary unavailable; acknowledge the gap instead of guessing."
	if trimmed := strings.TrimSpace(websiteSummary); trimmed != "" {
		websiteSection = "Website summary from BD_WEBSITE_ANALYSER:\n" + trimmed
	}

	referenceBlock := ""
	if examples.IntroEmail != "" {
		referenceBlock = fmt.Sprintf("\nReference example for tone and cadence (do not copy wording or mention Emerson/Marcin):\n\"\"\"%s\"\"\"\n", examples.IntroEmail)
	}

	return fmt.Sprintf(`You are BD_FIRST_EMAIL_WRITER. Draft Adam Phillips' first outreach email in his tone and philosophy.
%s

Contact snapshot:
- Name: %s
- Role: %s
- Company: %s
- How Adam found them: %s
- Immediate goal: Book a 20-30 minute intro conversation next week.
- Website insight: %s
Greeting to use verbatim: %s

Output requirements:
- Subject line: <= 7 words, plain English.
- Body: 3-6 short paragraphs (no bullets unless they improve clarity).

Paragraph plan:
1. Opening (1-2 sentences): Warm greeting, context on how Adam found them, and one line showing awareness of their world (grounded in the website summary or note that it's missing).
2. Why AI is relevant now (2-3 sentences): Tie AI to likely priorities such as productivity, traceability, quality, risk, or delivery; include one light credibility marker for Adam (RAG, workflow co-pilots) without hype.
3. Potential opportunity (2-3 sentences): Give 1-2 concrete, modest examples of AI co-pilots for organisations like theirs (dispatch-risk spotting, assembling traceability packs, summarising logs with citations, etc.).
4. Call to action (1-2 sentences): Invite a 20-30 minute conversation next week; keep timing flexible unless specific availability was provided (none supplied here).

Rules:
- 110-180 words total.
- Plain English with measurable outcomes; avoid buzzwords.
- Never fabricate company facts; if website insight is missing, say so lightly instead of guessing.
- Reinforce that Adam designs AI systems that assist people, keep humans in the loop, and measure value.
- Drafts are starting points for Adam to edit; never imply the email is auto-sent.`,
		referenceBlock, contact.Name, contact.Role, contact.Company, sourceContext, websiteSection, greeting)
}

// BuildFollowupPrompt creates the BD_FOLLOWUP_WRITER prompt grounded in
// the logged interaction history (most recent first) and the latest note.
func BuildFollowupPrompt(contact ContactContext, interactions []InteractionContext, latestNote *NoteContext, examples StyleExamples) string {
	greeting := Greeting(contact.FirstName, contact.Name)

	lastTouch := "No recorded meetings or calls."
	if len(interactions) > 0 {
		latest := interactions[0]
		lastTouch = fmt.Sprintf("%s: %s - %s", latest.displayDate(), latest.displayType(), latest.Summary)
	}

	noteDate := "(none)"
	noteRaw := "(none)"
	noteSummary := "(none)"
	if latestNote != nil {
		noteDate = orPlaceholder(latestNote.MeetingDate, "Unknown date")
		noteRaw = latestNote.RawNotes
		noteSummary = orPlaceholder(latestNote.Summary, "(none)")
	}

	var referenceBlock strings.Builder
	if examples.FollowupEmail != "" {
		referenceBlock.WriteString(fmt.Sprintf("\nReference example for tone, structure, and scannability (do not copy wording or mention Emerson/Marcin):\n\"\"\"%s\"\"\"\n", examples.FollowupEmail))
	}
	if examples.SpitfireFollowup != "" {
		referenceBlock.WriteString(fmt.Sprintf("\nReference example for consultant-to-consultant follow-up with 2-3 AI options (do not copy wording or mention Spitfire/Marc/Christian):\n\"\"\"%s\"\"\"\n", examples.SpitfireFollowup))
	}

	return fmt.Sprintf(`You are BD_FOLLOWUP_WRITER. Build a detailed but readable follow-up email for Adam Phillips.
%s

Contact details:
- Name: %s
- Role: %s
- Company: %s
Greeting to use verbatim: %s

Most recent touchpoint:
%s

Follow-up intent: Provide a grounded recap and propose the next step.

Interaction log (most recent first):
%s

Latest note:
- Date: %s
- Raw excerpt: %s
- Processed summary: %s

Output requirements:
- Subject line: <= 9 words.
- Body must include these sections, in order:
  1. Thank you + context (1 short paragraph) that thanks them for the conversation and restates the meeting purpose in plain English.
  2. What I heard (1 paragraph + optional 3-5 bullets) summarising their situation and priorities.
  3. Opportunities / options (2-4 bullets) describing concrete pieces of work or workshop segments (e.g. "Examples -> your context", "Assist, not replace", "Interactive mapping", "Champions & quick wins"). Each bullet should explain purpose and value.
  4. Guardrails & measures (short paragraph) reiterating human-in-the-loop, read-only access, auditability, and 2-4 potential measures (hours back, fewer rework loops, better first-pass approval, traceability completeness).
  5. Next steps (1 paragraph) spelling out the proposed next step (e.g. 90-min session, capped workshop, 1-2 page brief) and asking for a 20-30 minute call or scheduled slot next week.

Rules:
- < 350 words.
- Mark any uncertain detail with (needs confirmation) instead of guessing.
- No new pricing, scope, or timeline promises beyond the inputs.
- Keep tone pragmatic and plain English; drafts are for Adam to edit.`,
		referenceBlock.String(), contact.Name, contact.Role, contact.Company, greeting,
		lastTouch, interactionLog(interactions), noteDate, noteRaw, noteSummary)
}

// CustomEmailContext carries the user-supplied intent plus the history
// rows selected to ground a bespoke draft.
type CustomEmailContext struct {
	Contact              ContactContext
	Purpose              string // 'intro', 'follow_up', 'check_in', 'other'
	Tone                 string
	Brief                string
	AdditionalContext    string
	WebsiteSummary       string
	SelectedInteractions []InteractionContext
	SelectedNotes        []NoteContext
}

// purposeAsks maps the purpose selector to the required ask.
var purposeAsks = map[string]string{
	"intro":     "Ask for a first conversation next week.",
	"follow_up": "Reference prior exchanges and ask for a progress call next week.",
	"check_in":  "Check in on momentum and request a brief sync next week.",
	"other":     "Follow the purpose implied by the brief.",
}

// BuildCustomEmailPrompt creates the BD_CUSTOM_EMAIL_WRITER prompt.
func BuildCustomEmailPrompt(ec CustomEmailContext, examples StyleExamples) string {
	greeting := Greeting(ec.Contact.FirstName, ec.Contact.Name)

	ask, ok := purposeAsks[ec.Purpose]
	if !ok {
		ask = "Follow the brief."
	}

	websiteInsight := "Website summary unavailable; mention gaps rather than guessing."
	if trimmed := strings.TrimSpace(ec.WebsiteSummary); trimmed != "" {
		websiteInsight = trimmed
	}

	var interactionLines []string
	for _, i := range ec.SelectedInteractions {
		interactionLines = append(interactionLines, fmt.Sprintf("- %s: %s - outcome=%s - summary: %s",
			orPlaceholder(i.Date, "(undated)"), i.displayType(), orPlaceholder(i.Outcome, "(unclear)"), i.Summary))
	}
	var noteLines []string
	for _, n := range ec.SelectedNotes {
		date := orPlaceholder(n.MeetingDate, "(undated)")
		if n.Summary != "" {
			noteLines = append(noteLines, fmt.Sprintf("- %s: structured: %s / raw: %s", date, n.Summary, n.RawNotes))
		} else {
			noteLines = append(noteLines, fmt.Sprintf("- %s: raw: %s", date, n.RawNotes))
		}
	}

	var referenceBlock strings.Builder
	if examples.FollowupEmail != "" {
		referenceBlock.WriteString(fmt.Sprintf("\nReference example (workshop-style, long-form follow-up) - use only for cadence and sectioning:\n\"\"\"%s\"\"\"\n", examples.FollowupEmail))
	}
	if examples.SpitfireFollowup != "" {
		referenceBlock.WriteString(fmt.Sprintf("\nReference example (Spitfire AI opportunities) - use only for consultant-to-consultant tone, numbered options, and closing:\n\"\"\"%s\"\"\"\n", examples.SpitfireFollowup))
	}

	return fmt.Sprintf(`You are BD_CUSTOM_EMAIL_WRITER supporting Adam Phillips.
%s

Contact context:
- Name: %s
- Role: %s
- Company: %s
Greeting to use verbatim: %s
Purpose: %s
Required ask: %s
Tone: %s
Brief / intents: %s
Additional context: %s
Website insight: %s

Selected interaction history (may be empty):
%s

Selected notes (may be empty):
%s

Output requirements:
- Subject line: <= 8 words aligned with the stated purpose.
- Body: reuse the greeting, then write 2-4 lean paragraphs that preserve every concrete intent, fact, or constraint in the brief.

Paragraph guidance:
- Reorder and tighten Adam's points for clarity while keeping his voice professional, warm, concise, and problem-first.
- Restate "forethought first, start small -> prove value -> scale what works" naturally.
- Weave in the website insight when it exists; if it is missing, flag the gap lightly with (more detail needed).
- End with a clear next step that matches the required ask (infer it from the brief when purpose = "other").
- Use selected interactions and notes to ground the draft in real conversations, decisions, pains, and agreed next steps; summarise only what helps this email.
- Pull through 1-2 concrete pains or opportunities from the selected history when relevant so the email never reads generic.

Rules:
- Plain English; no hype, jargon, or new offers/pricing beyond the brief.
- Never introduce new client names or promises Adam did not mention.
- Do not reuse client names from the examples.
- Do not copy sentences from the examples; mirror structure only.
- History is context, not a new source of truth: do not contradict the brief, and do not invent or overwrite logged details.
- If no history is provided, behave as usual: rely on the brief + optional website summary.
- If the brief lacks key details, include one short line inviting clarification (e.g., "Happy to tighten this once I know more about ___ (more detail needed)").
- Mark uncertainties with "(needs confirmation)" or "(more detail needed)" instead of guessing.
- Keep Adam's guardrails explicit: assistive AI, humans approve drafts, read-only data access, auditability, measurable outcomes.`,
		referenceBlock.String(), ec.Contact.Name, ec.Contact.Role, ec.Contact.Company, greeting,
		ec.Purpose, ask, ec.Tone, ec.Brief,
		orPlaceholder(ec.AdditionalContext, "(none supplied)"), websiteInsight,
		orPlaceholder(strings.Join(interactionLines, "\n"), "(none selected)"),
		orPlaceholder(strings.Join(noteLines, "\n"), "(none selected)"))
}
