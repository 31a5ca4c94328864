package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactPayloadNormalize(t *testing.T) {
	t.Run("keeps valid enums", func(t *testing.T) {
		p := FactPayload{
			Intent:           IntentTraining,
			Timeline:         TimelineNextQuarter,
			MentionedProcess: "internal_audit",
			Summary:          "Wants team training on AI-assisted audits.",
		}
		p.Normalize("fallback text")

		assert.Equal(t, IntentTraining, p.Intent)
		assert.Equal(t, TimelineNextQuarter, p.Timeline)
		assert.Equal(t, "Wants team training on AI-assisted audits.", p.Summary)
	})

	t.Run("collapses unknown intent and timeline", func(t *testing.T) {
		p := FactPayload{
			Intent:   "wants_everything",
			Timeline: "someday",
		}
		p.Normalize("discussed audit workflow")

		assert.Equal(t, IntentUnclear, p.Intent)
		assert.Equal(t, TimelineUnknown, p.Timeline)
		assert.Equal(t, "other/unclear", p.MentionedProcess)
	})

	t.Run("fills empty summary from fallback text", func(t *testing.T) {
		p := FactPayload{Intent: IntentGeneralInterest, Timeline: TimelineLater}
		p.Normalize("They mentioned a  proposal   workflow problem.")

		assert.Equal(t, "They mentioned a proposal workflow problem.", p.Summary)
	})

	t.Run("trims pointer fields and drops blanks", func(t *testing.T) {
		name := "  Jane Doe  "
		blank := "   "
		p := FactPayload{
			Intent:       IntentUnclear,
			Timeline:     TimelineUnknown,
			ContactName:  &name,
			ContactEmail: &blank,
		}
		p.Normalize("text")

		assert.Equal(t, "Jane Doe", *p.ContactName)
		assert.Nil(t, p.ContactEmail)
	})
}

func TestDegradedFactPayload(t *testing.T) {
	p := DegradedFactPayload("Long meeting covering dispatch risk and traceability.")

	assert.Equal(t, IntentUnclear, p.Intent)
	assert.Equal(t, TimelineUnknown, p.Timeline)
	assert.Equal(t, "other/unclear", p.MentionedProcess)
	assert.NotNil(t, p.RawText)
	assert.Contains(t, *p.RawText, "dispatch risk")
	assert.NotEmpty(t, p.Summary)
}

func TestSnippet(t *testing.T) {
	t.Run("empty input yields placeholder", func(t *testing.T) {
		assert.Equal(t, "(unclear)", Snippet("   ", 50, "(unclear)"))
	})

	t.Run("compacts whitespace", func(t *testing.T) {
		assert.Equal(t, "a b c", Snippet("a\n  b\t c", 50, "-"))
	})

	t.Run("truncates with ellipsis at the rune limit", func(t *testing.T) {
		long := strings.Repeat("word ", 100)
		got := Snippet(long, 20, "-")

		assert.LessOrEqual(t, len([]rune(got)), 20)
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("short input passes through", func(t *testing.T) {
		assert.Equal(t, "short", Snippet("short", 20, "-"))
	})
}
