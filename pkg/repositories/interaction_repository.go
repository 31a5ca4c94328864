package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/adamphillips/atlas/pkg/apperrors"
	"github.com/adamphillips/atlas/pkg/database"
	"github.com/adamphillips/atlas/pkg/models"
)

// InteractionRepository provides data access for logged touchpoints and
// the next-action lifecycle built on top of them.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *models.Interaction) error
	Update(ctx context.Context, interaction *models.Interaction) error
	Delete(ctx context.Context, interactionID uuid.UUID) error
	GetByID(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error)
	ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.Interaction, error)
	// CompleteNextAction marks the interaction's next action done and
	// archives its text in the same transaction.
	CompleteNextAction(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error)
	// ListOpenNextActions returns the global next-actions board: every
	// uncompleted next action due on or before today, soonest first.
	ListOpenNextActions(ctx context.Context) ([]*models.NextActionItem, error)
	CountOutcomes(ctx context.Context) ([]*models.OutcomeCount, error)
}

type interactionRepository struct {
	db *database.DB
}

// NewInteractionRepository creates a new InteractionRepository.
func NewInteractionRepository(db *database.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

var _ InteractionRepository = (*interactionRepository)(nil)

const interactionColumns = `id, contact_id, occurred_at, type, summary,
	       next_action, next_action_due, next_action_completed,
	       outcome, outcome_notes`

func (r *interactionRepository) Create(ctx context.Context, interaction *models.Interaction) error {
	if interaction.OccurredAt.IsZero() {
		interaction.OccurredAt = time.Now()
	}
	if interaction.Outcome == "" {
		interaction.Outcome = models.OutcomePending
	}

	query := `
		INSERT INTO interactions (
			contact_id, occurred_at, type, summary, next_action,
			next_action_due, next_action_completed, outcome, outcome_notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		interaction.ContactID,
		interaction.OccurredAt,
		interaction.Type,
		interaction.Summary,
		interaction.NextAction,
		interaction.NextActionDue,
		interaction.NextActionCompleted,
		interaction.Outcome,
		interaction.OutcomeNotes,
	).Scan(&interaction.ID)
	if err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}

	return nil
}

// Update rewrites the interaction. When the stored next action text is
// replaced by a different one, the old text is archived first so history
// is never lost.
func (r *interactionRepository) Update(ctx context.Context, interaction *models.Interaction) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := getInteraction(ctx, tx, interaction.ID)
	if err != nil {
		return err
	}

	if nextActionReplaced(current, interaction) {
		if err := archiveNextAction(ctx, tx, current); err != nil {
			return err
		}
	}

	query := `
		UPDATE interactions
		SET occurred_at = $2, type = $3, summary = $4, next_action = $5,
		    next_action_due = $6, next_action_completed = $7,
		    outcome = $8, outcome_notes = $9
		WHERE id = $1`

	result, err := tx.Exec(ctx, query,
		interaction.ID,
		interaction.OccurredAt,
		interaction.Type,
		interaction.Summary,
		interaction.NextAction,
		interaction.NextActionDue,
		interaction.NextActionCompleted,
		interaction.Outcome,
		interaction.OutcomeNotes,
	)
	if err != nil {
		return fmt.Errorf("failed to update interaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *interactionRepository) Delete(ctx context.Context, interactionID uuid.UUID) error {
	query := `DELETE FROM interactions WHERE id = $1`

	result, err := r.db.Exec(ctx, query, interactionID)
	if err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *interactionRepository) GetByID(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error) {
	return getInteraction(ctx, r.db, interactionID)
}

func (r *interactionRepository) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.Interaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM interactions
		WHERE contact_id = $1
		ORDER BY occurred_at DESC`, interactionColumns)

	rows, err := r.db.Query(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	var interactions []*models.Interaction
	for rows.Next() {
		interaction, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, interaction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interactions: %w", err)
	}

	return interactions, nil
}

func (r *interactionRepository) CompleteNextAction(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	interaction, err := getInteraction(ctx, tx, interactionID)
	if err != nil {
		return nil, err
	}

	if interaction.NextAction != nil && !interaction.NextActionCompleted {
		if err := archiveNextAction(ctx, tx, interaction); err != nil {
			return nil, err
		}
	}

	query := `
		UPDATE interactions
		SET next_action_completed = TRUE
		WHERE id = $1`

	if _, err := tx.Exec(ctx, query, interactionID); err != nil {
		return nil, fmt.Errorf("failed to complete next action: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit next-action completion: %w", err)
	}

	interaction.NextActionCompleted = true
	return interaction, nil
}

func (r *interactionRepository) ListOpenNextActions(ctx context.Context) ([]*models.NextActionItem, error) {
	query := `
		SELECT i.id, i.contact_id, c.name, c.company_name,
		       i.next_action, i.next_action_due,
		       i.next_action_due < CURRENT_DATE AS overdue
		FROM interactions i
		JOIN contacts c ON c.id = i.contact_id
		WHERE i.next_action IS NOT NULL
		  AND i.next_action_due IS NOT NULL
		  AND i.next_action_due <= CURRENT_DATE
		  AND NOT i.next_action_completed
		ORDER BY i.next_action_due, c.name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query next actions: %w", err)
	}
	defer rows.Close()

	var items []*models.NextActionItem
	for rows.Next() {
		var item models.NextActionItem
		err := rows.Scan(
			&item.InteractionID,
			&item.ContactID,
			&item.ContactName,
			&item.CompanyName,
			&item.NextAction,
			&item.NextActionDue,
			&item.Overdue,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan next action: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating next actions: %w", err)
	}

	return items, nil
}

func (r *interactionRepository) CountOutcomes(ctx context.Context) ([]*models.OutcomeCount, error) {
	query := `
		SELECT outcome, COUNT(*)
		FROM interactions
		GROUP BY outcome
		ORDER BY outcome`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcome counts: %w", err)
	}
	defer rows.Close()

	var counts []*models.OutcomeCount
	for rows.Next() {
		var oc models.OutcomeCount
		if err := rows.Scan(&oc.Outcome, &oc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan outcome count: %w", err)
		}
		counts = append(counts, &oc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outcome counts: %w", err)
	}

	return counts, nil
}

// querier covers both the pool and an open transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getInteraction(ctx context.Context, q querier, interactionID uuid.UUID) (*models.Interaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM interactions
		WHERE id = $1`, interactionColumns)

	interaction, err := scanInteraction(q.QueryRow(ctx, query, interactionID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return interaction, nil
}

func scanInteraction(row pgx.Row) (*models.Interaction, error) {
	var i models.Interaction

	err := row.Scan(
		&i.ID,
		&i.ContactID,
		&i.OccurredAt,
		&i.Type,
		&i.Summary,
		&i.NextAction,
		&i.NextActionDue,
		&i.NextActionCompleted,
		&i.Outcome,
		&i.OutcomeNotes,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan interaction: %w", err)
	}

	return &i, nil
}

func archiveNextAction(ctx context.Context, tx pgx.Tx, interaction *models.Interaction) error {
	query := `
		INSERT INTO archived_next_actions (interaction_id, archived_at, next_action, next_action_due)
		VALUES ($1, now(), $2, $3)`

	_, err := tx.Exec(ctx, query, interaction.ID, interaction.NextAction, interaction.NextActionDue)
	if err != nil {
		return fmt.Errorf("failed to archive next action: %w", err)
	}

	return nil
}

// nextActionReplaced reports whether updating current to updated swaps in
// different next-action text while the current one is still open.
func nextActionReplaced(current, updated *models.Interaction) bool {
	if current.NextAction == nil || current.NextActionCompleted {
		return false
	}
	if updated.NextAction == nil {
		return true
	}
	return *updated.NextAction != *current.NextAction
}
