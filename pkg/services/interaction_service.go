package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adamphillips/atlas/pkg/apperrors"
	"github.com/adamphillips/atlas/pkg/models"
	"github.com/adamphillips/atlas/pkg/repositories"
)

// InteractionService provides operations for logged touchpoints and their
// next-action lifecycle.
type InteractionService interface {
	CreateInteraction(ctx context.Context, interaction *models.Interaction) error
	UpdateInteraction(ctx context.Context, interaction *models.Interaction) error
	DeleteInteraction(ctx context.Context, interactionID uuid.UUID) error
	GetInteraction(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error)
	ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.Interaction, error)
	CompleteNextAction(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error)
}

type interactionService struct {
	interactionRepo repositories.InteractionRepository
	contactRepo     repositories.ContactRepository
	extractor       FactExtractor
	logger          *zap.Logger
}

// NewInteractionService creates a new InteractionService. extractor may be
// nil when fact extraction is disabled.
func NewInteractionService(
	interactionRepo repositories.InteractionRepository,
	contactRepo repositories.ContactRepository,
	extractor FactExtractor,
	logger *zap.Logger,
) InteractionService {
	return &interactionService{
		interactionRepo: interactionRepo,
		contactRepo:     contactRepo,
		extractor:       extractor,
		logger:          logger,
	}
}

var _ InteractionService = (*interactionService)(nil)

var validOutcomes = map[string]bool{
	models.OutcomePending:    true,
	models.OutcomePositive:   true,
	models.OutcomeNegative:   true,
	models.OutcomeNoResponse: true,
}

func (s *interactionService) CreateInteraction(ctx context.Context, interaction *models.Interaction) error {
	if err := s.validateInteraction(ctx, interaction); err != nil {
		return err
	}

	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		return err
	}

	s.logger.Info("Logged interaction",
		zap.String("interaction_id", interaction.ID.String()),
		zap.String("contact_id", interaction.ContactID.String()),
		zap.String("type", interaction.Type))

	// Fact extraction is best-effort: a model failure never blocks the
	// write that already happened.
	if s.extractor != nil {
		if err := s.extractor.ExtractFromInteraction(ctx, interaction); err != nil {
			s.logger.Warn("Fact extraction after interaction create failed",
				zap.String("interaction_id", interaction.ID.String()),
				zap.Error(err))
		}
	}

	return nil
}

func (s *interactionService) UpdateInteraction(ctx context.Context, interaction *models.Interaction) error {
	if err := s.validateInteraction(ctx, interaction); err != nil {
		return err
	}

	current, err := s.interactionRepo.GetByID(ctx, interaction.ID)
	if err != nil {
		return err
	}

	// The wire shape never carries the completed flag. Completion is a
	// one-way transition: an edit keeps the stored flag unless the action
	// itself changes, in which case the new action starts open.
	if sameNextAction(current, interaction) {
		interaction.NextActionCompleted = current.NextActionCompleted
	} else {
		interaction.NextActionCompleted = false
	}

	return s.interactionRepo.Update(ctx, interaction)
}

func sameNextAction(current, updated *models.Interaction) bool {
	if current.NextAction == nil || updated.NextAction == nil {
		return current.NextAction == nil && updated.NextAction == nil
	}
	return *current.NextAction == *updated.NextAction
}

func (s *interactionService) DeleteInteraction(ctx context.Context, interactionID uuid.UUID) error {
	return s.interactionRepo.Delete(ctx, interactionID)
}

func (s *interactionService) GetInteraction(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error) {
	return s.interactionRepo.GetByID(ctx, interactionID)
}

func (s *interactionService) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.Interaction, error) {
	if _, err := s.contactRepo.GetByID(ctx, contactID); err != nil {
		return nil, err
	}
	return s.interactionRepo.ListByContact(ctx, contactID)
}

func (s *interactionService) CompleteNextAction(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error) {
	interaction, err := s.interactionRepo.CompleteNextAction(ctx, interactionID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Completed next action",
		zap.String("interaction_id", interactionID.String()))
	return interaction, nil
}

func (s *interactionService) validateInteraction(ctx context.Context, interaction *models.Interaction) error {
	interaction.Summary = strings.TrimSpace(interaction.Summary)
	interaction.Type = strings.TrimSpace(interaction.Type)

	if interaction.ContactID == uuid.Nil {
		return fmt.Errorf("%w: contact_id is required", apperrors.ErrValidation)
	}
	if interaction.Type == "" {
		return fmt.Errorf("%w: type is required", apperrors.ErrValidation)
	}
	if interaction.Summary == "" {
		return fmt.Errorf("%w: summary is required", apperrors.ErrValidation)
	}
	if interaction.Outcome == "" {
		interaction.Outcome = models.OutcomePending
	}
	if !validOutcomes[interaction.Outcome] {
		return fmt.Errorf("%w: unknown outcome %q", apperrors.ErrValidation, interaction.Outcome)
	}
	if interaction.NextActionDue != nil && interaction.NextAction == nil {
		return fmt.Errorf("%w: next_action_due requires next_action", apperrors.ErrValidation)
	}

	if _, err := s.contactRepo.GetByID(ctx, interaction.ContactID); err != nil {
		return err
	}

	return nil
}
