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

// ContactService provides operations for managing pipeline contacts.
type ContactService interface {
	CreateContact(ctx context.Context, contact *models.Contact) error
	UpdateContact(ctx context.Context, contact *models.Contact) error
	DeleteContact(ctx context.Context, contactID uuid.UUID) error

	// GetContact returns the contact with its interactions and notes,
	// newest first.
	GetContact(ctx context.Context, contactID uuid.UUID) (*models.ContactDetail, error)
	ListContacts(ctx context.Context) ([]*models.Contact, error)
}

type contactService struct {
	contactRepo     repositories.ContactRepository
	interactionRepo repositories.InteractionRepository
	noteRepo        repositories.NoteRepository
	logger          *zap.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(
	contactRepo repositories.ContactRepository,
	interactionRepo repositories.InteractionRepository,
	noteRepo repositories.NoteRepository,
	logger *zap.Logger,
) ContactService {
	return &contactService{
		contactRepo:     contactRepo,
		interactionRepo: interactionRepo,
		noteRepo:        noteRepo,
		logger:          logger,
	}
}

var _ ContactService = (*contactService)(nil)

var validContactSources = map[string]bool{
	models.ContactSourceReferral:     true,
	models.ContactSourceColdLinkedIn: true,
	models.ContactSourceEvent:        true,
	models.ContactSourceOther:        true,
}

func (s *contactService) CreateContact(ctx context.Context, contact *models.Contact) error {
	if err := validateContact(contact); err != nil {
		return err
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return err
	}

	s.logger.Info("Created contact",
		zap.String("contact_id", contact.ID.String()),
		zap.String("company", contact.CompanyName))
	return nil
}

func (s *contactService) UpdateContact(ctx context.Context, contact *models.Contact) error {
	if err := validateContact(contact); err != nil {
		return err
	}

	return s.contactRepo.Update(ctx, contact)
}

func (s *contactService) DeleteContact(ctx context.Context, contactID uuid.UUID) error {
	if err := s.contactRepo.Delete(ctx, contactID); err != nil {
		return err
	}

	s.logger.Info("Deleted contact", zap.String("contact_id", contactID.String()))
	return nil
}

func (s *contactService) GetContact(ctx context.Context, contactID uuid.UUID) (*models.ContactDetail, error) {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	interactions, err := s.interactionRepo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}

	notes, err := s.noteRepo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	return &models.ContactDetail{
		Contact:      *contact,
		Interactions: interactions,
		Notes:        notes,
	}, nil
}

func (s *contactService) ListContacts(ctx context.Context) ([]*models.Contact, error) {
	return s.contactRepo.List(ctx)
}

func validateContact(contact *models.Contact) error {
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Email = strings.TrimSpace(contact.Email)
	contact.CompanyName = strings.TrimSpace(contact.CompanyName)

	if contact.Name == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if contact.Email == "" {
		return fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	if !strings.Contains(contact.Email, "@") {
		return fmt.Errorf("%w: email %q is not valid", apperrors.ErrValidation, contact.Email)
	}
	if contact.Source == "" {
		contact.Source = models.ContactSourceOther
	}
	if !validContactSources[contact.Source] {
		return fmt.Errorf("%w: unknown contact source %q", apperrors.ErrValidation, contact.Source)
	}
	if contact.Status == "" {
		contact.Status = "prospect"
	}

	return nil
}
