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

// NoteService provides operations for raw meeting notes.
type NoteService interface {
	CreateNote(ctx context.Context, note *models.Note) error
	UpdateNote(ctx context.Context, note *models.Note) error
	DeleteNote(ctx context.Context, noteID uuid.UUID) error
	GetNote(ctx context.Context, noteID uuid.UUID) (*models.Note, error)
	ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.Note, error)
}

type noteService struct {
	noteRepo    repositories.NoteRepository
	contactRepo repositories.ContactRepository
	extractor   FactExtractor
	logger      *zap.Logger
}

// NewNoteService creates a new NoteService. extractor may be nil when fact
// extraction is disabled.
func NewNoteService(
	noteRepo repositories.NoteRepository,
	contactRepo repositories.ContactRepository,
	extractor FactExtractor,
	logger *zap.Logger,
) NoteService {
	return &noteService{
		noteRepo:    noteRepo,
		contactRepo: contactRepo,
		extractor:   extractor,
		logger:      logger,
	}
}

var _ NoteService = (*noteService)(nil)

func (s *noteService) CreateNote(ctx context.Context, note *models.Note) error {
	if err := s.validateNote(ctx, note); err != nil {
		return err
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return err
	}

	s.logger.Info("Created note",
		zap.String("note_id", note.ID.String()),
		zap.String("contact_id", note.ContactID.String()))

	// Best-effort: extraction failures are logged, never surfaced.
	if s.extractor != nil {
		if err := s.extractor.ExtractFromNote(ctx, note); err != nil {
			s.logger.Warn("Fact extraction after note create failed",
				zap.String("note_id", note.ID.String()),
				zap.Error(err))
		}
	}

	return nil
}

func (s *noteService) UpdateNote(ctx context.Context, note *models.Note) error {
	if err := s.validateNote(ctx, note); err != nil {
		return err
	}

	// Editing the raw text never discards the stored summary; only the
	// summarizer writes that column.
	current, err := s.noteRepo.GetByID(ctx, note.ID)
	if err != nil {
		return err
	}
	note.ProcessedSummary = current.ProcessedSummary

	return s.noteRepo.Update(ctx, note)
}

func (s *noteService) DeleteNote(ctx context.Context, noteID uuid.UUID) error {
	return s.noteRepo.Delete(ctx, noteID)
}

func (s *noteService) GetNote(ctx context.Context, noteID uuid.UUID) (*models.Note, error) {
	return s.noteRepo.GetByID(ctx, noteID)
}

func (s *noteService) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.Note, error) {
	if _, err := s.contactRepo.GetByID(ctx, contactID); err != nil {
		return nil, err
	}
	return s.noteRepo.ListByContact(ctx, contactID)
}

func (s *noteService) validateNote(ctx context.Context, note *models.Note) error {
	note.RawNotes = strings.TrimSpace(note.RawNotes)

	if note.ContactID == uuid.Nil {
		return fmt.Errorf("%w: contact_id is required", apperrors.ErrValidation)
	}
	if note.RawNotes == "" {
		return fmt.Errorf("%w: raw_notes is required", apperrors.ErrValidation)
	}
	if note.MeetingDate.IsZero() {
		return fmt.Errorf("%w: meeting_date is required", apperrors.ErrValidation)
	}

	if _, err := s.contactRepo.GetByID(ctx, note.ContactID); err != nil {
		return err
	}

	return nil
}
