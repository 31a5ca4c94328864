package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/adamphillips/atlas/pkg/database"
	"github.com/adamphillips/atlas/pkg/models"
)

// FactRepository provides append-only data access for extracted CRM facts.
type FactRepository interface {
	Create(ctx context.Context, fact *models.CRMFact) error
	ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.CRMFact, error)
	// ListRecentByContact returns the newest facts first, capped at limit.
	ListRecentByContact(ctx context.Context, contactID uuid.UUID, limit int) ([]*models.CRMFact, error)
}

type factRepository struct {
	db *database.DB
}

// NewFactRepository creates a new FactRepository.
func NewFactRepository(db *database.DB) FactRepository {
	return &factRepository{db: db}
}

var _ FactRepository = (*factRepository)(nil)

func (r *factRepository) Create(ctx context.Context, fact *models.CRMFact) error {
	payload, err := json.Marshal(fact.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal fact payload: %w", err)
	}

	query := `
		INSERT INTO crm_facts (contact_id, source_type, source_id, fact_payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id, created_at, updated_at`

	err = r.db.QueryRow(ctx, query,
		fact.ContactID,
		fact.SourceType,
		fact.SourceID,
		payload,
	).Scan(&fact.ID, &fact.CreatedAt, &fact.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create fact: %w", err)
	}

	return nil
}

func (r *factRepository) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.CRMFact, error) {
	query := `
		SELECT id, contact_id, source_type, source_id, fact_payload, created_at, updated_at
		FROM crm_facts
		WHERE contact_id = $1
		ORDER BY created_at DESC`

	return r.queryFacts(ctx, query, contactID)
}

func (r *factRepository) ListRecentByContact(ctx context.Context, contactID uuid.UUID, limit int) ([]*models.CRMFact, error) {
	query := `
		SELECT id, contact_id, source_type, source_id, fact_payload, created_at, updated_at
		FROM crm_facts
		WHERE contact_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	return r.queryFacts(ctx, query, contactID, limit)
}

func (r *factRepository) queryFacts(ctx context.Context, query string, args ...any) ([]*models.CRMFact, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query facts: %w", err)
	}
	defer rows.Close()

	var facts []*models.CRMFact
	for rows.Next() {
		fact, err := scanFact(rows)
		if err != nil {
			return nil, err
		}
		facts = append(facts, fact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating facts: %w", err)
	}

	return facts, nil
}

func scanFact(row pgx.Row) (*models.CRMFact, error) {
	var f models.CRMFact
	var payload []byte

	err := row.Scan(
		&f.ID,
		&f.ContactID,
		&f.SourceType,
		&f.SourceID,
		&payload,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan fact: %w", err)
	}

	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &f.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal fact payload: %w", err)
		}
	}

	return &f, nil
}
