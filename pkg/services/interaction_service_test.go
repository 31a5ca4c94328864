package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adamphillips/atlas/pkg/apperrors"
	"github.com/adamphillips/atlas/pkg/models"
)

type interactionTestEnv struct {
	svc         InteractionService
	contactRepo *mockContactRepo
	repo        *mockInteractionRepo
	extractor   *mockExtractor
	contact     *models.Contact
}

func newInteractionTestEnv(t *testing.T) *interactionTestEnv {
	t.Helper()

	contactRepo := newMockContactRepo()
	repo := newMockInteractionRepo()
	extractor := &mockExtractor{}
	svc := NewInteractionService(repo, contactRepo, extractor, zap.NewNop())

	contact := validContact()
	require.NoError(t, contactRepo.Create(context.Background(), contact))

	return &interactionTestEnv{
		svc:         svc,
		contactRepo: contactRepo,
		repo:        repo,
		extractor:   extractor,
		contact:     contact,
	}
}

func validInteraction(contactID uuid.UUID) *models.Interaction {
	return &models.Interaction{
		ContactID: contactID,
		Type:      "meeting",
		Summary:   "Workshop debrief",
	}
}

func TestCreateInteraction(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults outcome to pending and triggers extraction", func(t *testing.T) {
		env := newInteractionTestEnv(t)

		interaction := validInteraction(env.contact.ID)
		require.NoError(t, env.svc.CreateInteraction(ctx, interaction))

		assert.Equal(t, models.OutcomePending, interaction.Outcome)
		assert.Equal(t, 1, env.extractor.interactionCalls)
	})

	t.Run("extraction failure never fails the write", func(t *testing.T) {
		env := newInteractionTestEnv(t)
		env.extractor.err = errors.New("model unreachable")

		interaction := validInteraction(env.contact.ID)
		require.NoError(t, env.svc.CreateInteraction(ctx, interaction))
		assert.NotEqual(t, uuid.Nil, interaction.ID)
	})

	t.Run("requires type and summary", func(t *testing.T) {
		env := newInteractionTestEnv(t)

		interaction := validInteraction(env.contact.ID)
		interaction.Type = ""
		assert.ErrorIs(t, env.svc.CreateInteraction(ctx, interaction), apperrors.ErrValidation)

		interaction = validInteraction(env.contact.ID)
		interaction.Summary = "   "
		assert.ErrorIs(t, env.svc.CreateInteraction(ctx, interaction), apperrors.ErrValidation)
	})

	t.Run("rejects unknown outcome", func(t *testing.T) {
		env := newInteractionTestEnv(t)

		interaction := validInteraction(env.contact.ID)
		interaction.Outcome = "maybe"
		assert.ErrorIs(t, env.svc.CreateInteraction(ctx, interaction), apperrors.ErrValidation)
	})

	t.Run("due date without action text is invalid", func(t *testing.T) {
		env := newInteractionTestEnv(t)

		due := time.Now().Add(72 * time.Hour)
		interaction := validInteraction(env.contact.ID)
		interaction.NextActionDue = &due
		assert.ErrorIs(t, env.svc.CreateInteraction(ctx, interaction), apperrors.ErrValidation)
	})

	t.Run("unknown contact yields not found", func(t *testing.T) {
		env := newInteractionTestEnv(t)

		interaction := validInteraction(uuid.New())
		assert.ErrorIs(t, env.svc.CreateInteraction(ctx, interaction), apperrors.ErrNotFound)
	})
}

func TestCompleteNextAction(t *testing.T) {
	ctx := context.Background()
	env := newInteractionTestEnv(t)

	action := "Send proposal"
	due := time.Now().Add(-24 * time.Hour)
	interaction := validInteraction(env.contact.ID)
	interaction.NextAction = &action
	interaction.NextActionDue = &due
	require.NoError(t, env.svc.CreateInteraction(ctx, interaction))

	completed, err := env.svc.CompleteNextAction(ctx, interaction.ID)
	require.NoError(t, err)
	assert.True(t, completed.NextActionCompleted)

	// The action text is archived, not lost.
	require.Len(t, env.repo.archived, 1)
	assert.Equal(t, "Send proposal", *env.repo.archived[0].NextAction)

	// The board no longer shows it.
	items, err := env.repo.ListOpenNextActions(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateInteraction(t *testing.T) {
	ctx := context.Background()

	// Creates an interaction with a completed next action, the way the
	// board leaves one behind after a tick.
	newCompleted := func(t *testing.T) (*interactionTestEnv, *models.Interaction) {
		t.Helper()
		env := newInteractionTestEnv(t)

		action := "Send proposal"
		due := time.Now().Add(-24 * time.Hour)
		interaction := validInteraction(env.contact.ID)
		interaction.NextAction = &action
		interaction.NextActionDue = &due
		require.NoError(t, env.svc.CreateInteraction(ctx, interaction))

		_, err := env.svc.CompleteNextAction(ctx, interaction.ID)
		require.NoError(t, err)
		return env, interaction
	}

	t.Run("editing other fields keeps a completed action completed", func(t *testing.T) {
		env, interaction := newCompleted(t)

		// Clients resend the full interaction without any completed flag;
		// the edit must not reopen the action.
		action := "Send proposal"
		due := *interaction.NextActionDue
		edit := &models.Interaction{
			ID:            interaction.ID,
			ContactID:     interaction.ContactID,
			Type:          "email",
			Summary:       "Corrected summary",
			NextAction:    &action,
			NextActionDue: &due,
			Outcome:       models.OutcomePositive,
		}
		require.NoError(t, env.svc.UpdateInteraction(ctx, edit))

		assert.True(t, edit.NextActionCompleted)
		stored, err := env.repo.GetByID(ctx, interaction.ID)
		require.NoError(t, err)
		assert.True(t, stored.NextActionCompleted)
		assert.Equal(t, "Corrected summary", stored.Summary)

		// And it does not resurface on the board.
		items, err := env.repo.ListOpenNextActions(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("replacing the action text reopens it", func(t *testing.T) {
		env, interaction := newCompleted(t)

		action := "Book the workshop"
		due := time.Now().Add(-time.Hour)
		edit := &models.Interaction{
			ID:            interaction.ID,
			ContactID:     interaction.ContactID,
			Type:          interaction.Type,
			Summary:       interaction.Summary,
			NextAction:    &action,
			NextActionDue: &due,
			Outcome:       interaction.Outcome,
		}
		require.NoError(t, env.svc.UpdateInteraction(ctx, edit))

		stored, err := env.repo.GetByID(ctx, interaction.ID)
		require.NoError(t, err)
		assert.False(t, stored.NextActionCompleted)

		items, err := env.repo.ListOpenNextActions(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Book the workshop", items[0].NextAction)
	})

	t.Run("clearing the action resets the flag", func(t *testing.T) {
		env, interaction := newCompleted(t)

		edit := &models.Interaction{
			ID:        interaction.ID,
			ContactID: interaction.ContactID,
			Type:      interaction.Type,
			Summary:   interaction.Summary,
			Outcome:   interaction.Outcome,
		}
		require.NoError(t, env.svc.UpdateInteraction(ctx, edit))

		stored, err := env.repo.GetByID(ctx, interaction.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.NextAction)
		assert.False(t, stored.NextActionCompleted)
	})

	t.Run("unknown interaction yields not found", func(t *testing.T) {
		env := newInteractionTestEnv(t)

		edit := validInteraction(env.contact.ID)
		edit.ID = uuid.New()
		assert.ErrorIs(t, env.svc.UpdateInteraction(ctx, edit), apperrors.ErrNotFound)
	})
}

func TestListByContact(t *testing.T) {
	ctx := context.Background()
	env := newInteractionTestEnv(t)

	_, err := env.svc.ListByContact(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, env.svc.CreateInteraction(ctx, validInteraction(env.contact.ID)))
	interactions, err := env.svc.ListByContact(ctx, env.contact.ID)
	require.NoError(t, err)
	assert.Len(t, interactions, 1)
}
