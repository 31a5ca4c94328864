package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/adamphillips/atlas/pkg/apperrors"
	"github.com/adamphillips/atlas/pkg/database"
	"github.com/adamphillips/atlas/pkg/models"
)

// NoteRepository provides data access for meeting notes.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, noteID uuid.UUID) error
	GetByID(ctx context.Context, noteID uuid.UUID) (*models.Note, error)
	ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.Note, error)
	// SetProcessedSummary overwrites the structured summary only, leaving
	// the raw notes untouched.
	SetProcessedSummary(ctx context.Context, noteID uuid.UUID, summary string) error
}

type noteRepository struct {
	db *database.DB
}

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(db *database.DB) NoteRepository {
	return &noteRepository{db: db}
}

var _ NoteRepository = (*noteRepository)(nil)

func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (contact_id, meeting_date, raw_notes, processed_summary)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		note.ContactID,
		note.MeetingDate,
		note.RawNotes,
		note.ProcessedSummary,
	).Scan(&note.ID)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

func (r *noteRepository) Update(ctx context.Context, note *models.Note) error {
	query := `
		UPDATE notes
		SET meeting_date = $2, raw_notes = $3, processed_summary = $4
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		note.ID,
		note.MeetingDate,
		note.RawNotes,
		note.ProcessedSummary,
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *noteRepository) Delete(ctx context.Context, noteID uuid.UUID) error {
	query := `DELETE FROM notes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, noteID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *noteRepository) GetByID(ctx context.Context, noteID uuid.UUID) (*models.Note, error) {
	query := `
		SELECT id, contact_id, meeting_date, raw_notes, processed_summary
		FROM notes
		WHERE id = $1`

	note, err := scanNote(r.db.QueryRow(ctx, query, noteID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return note, nil
}

func (r *noteRepository) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.Note, error) {
	query := `
		SELECT id, contact_id, meeting_date, raw_notes, processed_summary
		FROM notes
		WHERE contact_id = $1
		ORDER BY meeting_date DESC`

	rows, err := r.db.Query(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}

	return notes, nil
}

func (r *noteRepository) SetProcessedSummary(ctx context.Context, noteID uuid.UUID, summary string) error {
	query := `UPDATE notes SET processed_summary = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, noteID, summary)
	if err != nil {
		return fmt.Errorf("failed to set processed summary: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func scanNote(row pgx.Row) (*models.Note, error) {
	var n models.Note

	err := row.Scan(
		&n.ID,
		&n.ContactID,
		&n.MeetingDate,
		&n.RawNotes,
		&n.ProcessedSummary,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan note: %w", err)
	}

	return &n, nil
}
