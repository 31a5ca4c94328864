package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextActionSuggestionNormalize(t *testing.T) {
	t.Run("unknown type collapses to no action", func(t *testing.T) {
		s := NextActionSuggestion{Type: "send_gift_basket", Confidence: 0.5}
		s.Normalize()

		assert.Equal(t, SuggestionNoAction, s.Type)
	})

	t.Run("confidence clamps to unit interval", func(t *testing.T) {
		s := NextActionSuggestion{Type: SuggestionBookCall, Confidence: 1.7}
		s.Normalize()
		assert.Equal(t, 1.0, s.Confidence)

		s = NextActionSuggestion{Type: SuggestionBookCall, Confidence: -0.2}
		s.Normalize()
		assert.Equal(t, 0.0, s.Confidence)
	})

	t.Run("malformed due date is dropped", func(t *testing.T) {
		bad := "next Tuesday"
		s := NextActionSuggestion{Type: SuggestionFollowupEmail, SuggestedDueDate: &bad}
		s.Normalize()

		assert.Nil(t, s.SuggestedDueDate)
	})

	t.Run("ISO due date survives", func(t *testing.T) {
		good := "2026-09-01"
		s := NextActionSuggestion{Type: SuggestionFollowupEmail, SuggestedDueDate: &good}
		s.Normalize()

		assert.Equal(t, "2026-09-01", *s.SuggestedDueDate)
	})

	t.Run("blank optional text becomes nil", func(t *testing.T) {
		blank := "  "
		s := NextActionSuggestion{Type: SuggestionBookCall, ProposedSubject: &blank}
		s.Normalize()

		assert.Nil(t, s.ProposedSubject)
	})
}

func TestFallbackSuggestion(t *testing.T) {
	s := FallbackSuggestion()

	assert.Equal(t, SuggestionNoAction, s.Type)
	assert.Equal(t, 0.0, s.Confidence)
	assert.NotNil(t, s.Notes)
}
