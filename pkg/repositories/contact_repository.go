package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adamphillips/atlas/pkg/apperrors"
	"github.com/adamphillips/atlas/pkg/database"
	"github.com/adamphillips/atlas/pkg/models"
)

// ContactRepository provides data access for pipeline contacts.
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, contactID uuid.UUID) error
	GetByID(ctx context.Context, contactID uuid.UUID) (*models.Contact, error)
	List(ctx context.Context) ([]*models.Contact, error)
}

type contactRepository struct {
	db *database.DB
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(db *database.DB) ContactRepository {
	return &contactRepository{db: db}
}

var _ ContactRepository = (*contactRepository)(nil)

func (r *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	now := time.Now()

	query := `
		INSERT INTO contacts (
			name, company_name, role, email, linkedin_url, website_url,
			source, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		contact.Name,
		contact.CompanyName,
		contact.Role,
		contact.Email,
		contact.LinkedInURL,
		contact.WebsiteURL,
		contact.Source,
		contact.Status,
		now,
		now,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("contact with email %s: %w", contact.Email, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}

func (r *contactRepository) Update(ctx context.Context, contact *models.Contact) error {
	query := `
		UPDATE contacts
		SET name = $2, company_name = $3, role = $4, email = $5,
		    linkedin_url = $6, website_url = $7, source = $8, status = $9,
		    updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		contact.ID,
		contact.Name,
		contact.CompanyName,
		contact.Role,
		contact.Email,
		contact.LinkedInURL,
		contact.WebsiteURL,
		contact.Source,
		contact.Status,
	).Scan(&contact.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("contact with email %s: %w", contact.Email, apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to update contact: %w", err)
	}

	return nil
}

func (r *contactRepository) Delete(ctx context.Context, contactID uuid.UUID) error {
	query := `DELETE FROM contacts WHERE id = $1`

	result, err := r.db.Exec(ctx, query, contactID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *contactRepository) GetByID(ctx context.Context, contactID uuid.UUID) (*models.Contact, error) {
	query := `
		SELECT id, name, company_name, role, email, linkedin_url, website_url,
		       source, status, created_at, updated_at
		FROM contacts
		WHERE id = $1`

	row := r.db.QueryRow(ctx, query, contactID)
	contact, err := scanContact(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return contact, nil
}

func (r *contactRepository) List(ctx context.Context) ([]*models.Contact, error) {
	query := `
		SELECT id, name, company_name, role, email, linkedin_url, website_url,
		       source, status, created_at, updated_at
		FROM contacts
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}

	return contacts, nil
}

func scanContact(row pgx.Row) (*models.Contact, error) {
	var c models.Contact

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.CompanyName,
		&c.Role,
		&c.Email,
		&c.LinkedInURL,
		&c.WebsiteURL,
		&c.Source,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan contact: %w", err)
	}

	return &c, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
