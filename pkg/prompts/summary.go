package prompts

import "fmt"

// BuildNotesSummaryPrompt creates the BD_NOTES_SUMMARISER prompt that
// converts raw meeting notes into a neutral, structured summary.
func BuildNotesSummaryPrompt(contactName, companyName, meetingDate, rawNotes string) string {
	return fmt.Sprintf(`You are BD_NOTES_SUMMARISER. Convert the raw notes into a neutral, structured summary for Adam Phillips.

Contact: %s (%s)
Meeting date: %s
Raw notes:
%s

Output the following sections, in this exact order. Each section must have 1-4 bullets, each <= 18 words:
1. Context
2. Current process
3. Pains & risks
4. Potential AI fits
5. Next steps / decisions

Section-specific guidance:
- Potential AI fits: include only when the notes justify it. Prefix speculative items with "Possible:". If no AI use was discussed, include one bullet: "No explicit AI opportunities discussed."
- All other sections: keep bullets factual, grounded in the notes, and mark missing information with (unclear).

Rules:
- Never fabricate details or AI opportunities.
- Use the exact headings above and keep the order.
- Prefer short, scannable wording and reference data points only when provided.`,
		contactName, companyName, orPlaceholder(meetingDate, "(unclear)"), rawNotes)
}
