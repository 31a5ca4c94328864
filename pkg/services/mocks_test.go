package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/adamphillips/atlas/pkg/apperrors"
	"github.com/adamphillips/atlas/pkg/models"
)

// ============================================================================
// Mock Implementations shared across service tests
// ============================================================================

type mockContactRepo struct {
	contacts  map[uuid.UUID]*models.Contact
	emails    map[string]uuid.UUID
	createErr error
	updateErr error
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{
		contacts: make(map[uuid.UUID]*models.Contact),
		emails:   make(map[string]uuid.UUID),
	}
}

func (m *mockContactRepo) Create(ctx context.Context, contact *models.Contact) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.emails[contact.Email]; exists {
		return apperrors.ErrConflict
	}
	contact.ID = uuid.New()
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = contact.CreatedAt
	m.contacts[contact.ID] = contact
	m.emails[contact.Email] = contact.ID
	return nil
}

func (m *mockContactRepo) Update(ctx context.Context, contact *models.Contact) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	existing, ok := m.contacts[contact.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if other, exists := m.emails[contact.Email]; exists && other != contact.ID {
		return apperrors.ErrConflict
	}
	delete(m.emails, existing.Email)
	m.contacts[contact.ID] = contact
	m.emails[contact.Email] = contact.ID
	return nil
}

func (m *mockContactRepo) Delete(ctx context.Context, contactID uuid.UUID) error {
	existing, ok := m.contacts[contactID]
	if !ok {
		return apperrors.ErrNotFound
	}
	delete(m.emails, existing.Email)
	delete(m.contacts, contactID)
	return nil
}

func (m *mockContactRepo) GetByID(ctx context.Context, contactID uuid.UUID) (*models.Contact, error) {
	contact, ok := m.contacts[contactID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return contact, nil
}

func (m *mockContactRepo) List(ctx context.Context) ([]*models.Contact, error) {
	var result []*models.Contact
	for _, c := range m.contacts {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

type mockInteractionRepo struct {
	interactions map[uuid.UUID]*models.Interaction
	archived     []*models.ArchivedNextAction
	createErr    error
}

func newMockInteractionRepo() *mockInteractionRepo {
	return &mockInteractionRepo{
		interactions: make(map[uuid.UUID]*models.Interaction),
	}
}

func (m *mockInteractionRepo) Create(ctx context.Context, interaction *models.Interaction) error {
	if m.createErr != nil {
		return m.createErr
	}
	interaction.ID = uuid.New()
	if interaction.OccurredAt.IsZero() {
		interaction.OccurredAt = time.Now()
	}
	m.interactions[interaction.ID] = interaction
	return nil
}

func (m *mockInteractionRepo) Update(ctx context.Context, interaction *models.Interaction) error {
	if _, ok := m.interactions[interaction.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.interactions[interaction.ID] = interaction
	return nil
}

func (m *mockInteractionRepo) Delete(ctx context.Context, interactionID uuid.UUID) error {
	if _, ok := m.interactions[interactionID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.interactions, interactionID)
	return nil
}

func (m *mockInteractionRepo) GetByID(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error) {
	interaction, ok := m.interactions[interactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return interaction, nil
}

func (m *mockInteractionRepo) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.Interaction, error) {
	var result []*models.Interaction
	for _, i := range m.interactions {
		if i.ContactID == contactID {
			result = append(result, i)
		}
	}
	sort.Slice(result, func(a, b int) bool { return result[a].OccurredAt.After(result[b].OccurredAt) })
	return result, nil
}

func (m *mockInteractionRepo) CompleteNextAction(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error) {
	interaction, ok := m.interactions[interactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if interaction.NextAction != nil && !interaction.NextActionCompleted {
		m.archived = append(m.archived, &models.ArchivedNextAction{
			ID:            uuid.New(),
			InteractionID: interactionID,
			ArchivedAt:    time.Now(),
			NextAction:    interaction.NextAction,
			NextActionDue: interaction.NextActionDue,
		})
	}
	interaction.NextActionCompleted = true
	return interaction, nil
}

func (m *mockInteractionRepo) ListOpenNextActions(ctx context.Context) ([]*models.NextActionItem, error) {
	today := time.Now().Truncate(24 * time.Hour)
	var result []*models.NextActionItem
	for _, i := range m.interactions {
		if i.NextAction == nil || i.NextActionDue == nil || i.NextActionCompleted {
			continue
		}
		if i.NextActionDue.After(today.Add(24*time.Hour - time.Nanosecond)) {
			continue
		}
		result = append(result, &models.NextActionItem{
			InteractionID: i.ID,
			ContactID:     i.ContactID,
			NextAction:    *i.NextAction,
			NextActionDue: *i.NextActionDue,
			Overdue:       i.NextActionDue.Before(today),
		})
	}
	sort.Slice(result, func(a, b int) bool { return result[a].NextActionDue.Before(result[b].NextActionDue) })
	return result, nil
}

func (m *mockInteractionRepo) CountOutcomes(ctx context.Context) ([]*models.OutcomeCount, error) {
	counts := make(map[string]int)
	for _, i := range m.interactions {
		counts[i.Outcome]++
	}
	var result []*models.OutcomeCount
	for outcome, count := range counts {
		result = append(result, &models.OutcomeCount{Outcome: outcome, Count: count})
	}
	sort.Slice(result, func(a, b int) bool { return result[a].Outcome < result[b].Outcome })
	return result, nil
}

type mockNoteRepo struct {
	notes     map[uuid.UUID]*models.Note
	createErr error
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: make(map[uuid.UUID]*models.Note)}
}

func (m *mockNoteRepo) Create(ctx context.Context, note *models.Note) error {
	if m.createErr != nil {
		return m.createErr
	}
	note.ID = uuid.New()
	m.notes[note.ID] = note
	return nil
}

func (m *mockNoteRepo) Update(ctx context.Context, note *models.Note) error {
	if _, ok := m.notes[note.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.notes[note.ID] = note
	return nil
}

func (m *mockNoteRepo) Delete(ctx context.Context, noteID uuid.UUID) error {
	if _, ok := m.notes[noteID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.notes, noteID)
	return nil
}

func (m *mockNoteRepo) GetByID(ctx context.Context, noteID uuid.UUID) (*models.Note, error) {
	note, ok := m.notes[noteID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return note, nil
}

func (m *mockNoteRepo) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.Note, error) {
	var result []*models.Note
	for _, n := range m.notes {
		if n.ContactID == contactID {
			result = append(result, n)
		}
	}
	sort.Slice(result, func(a, b int) bool { return result[a].MeetingDate.After(result[b].MeetingDate) })
	return result, nil
}

func (m *mockNoteRepo) SetProcessedSummary(ctx context.Context, noteID uuid.UUID, summary string) error {
	note, ok := m.notes[noteID]
	if !ok {
		return apperrors.ErrNotFound
	}
	note.ProcessedSummary = &summary
	return nil
}

type mockFactRepo struct {
	facts     []*models.CRMFact
	createErr error
}

func newMockFactRepo() *mockFactRepo {
	return &mockFactRepo{}
}

func (m *mockFactRepo) Create(ctx context.Context, fact *models.CRMFact) error {
	if m.createErr != nil {
		return m.createErr
	}
	fact.ID = uuid.New()
	fact.CreatedAt = time.Now()
	fact.UpdatedAt = fact.CreatedAt
	m.facts = append(m.facts, fact)
	return nil
}

func (m *mockFactRepo) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.CRMFact, error) {
	var result []*models.CRMFact
	for i := len(m.facts) - 1; i >= 0; i-- {
		if m.facts[i].ContactID == contactID {
			result = append(result, m.facts[i])
		}
	}
	return result, nil
}

func (m *mockFactRepo) ListRecentByContact(ctx context.Context, contactID uuid.UUID, limit int) ([]*models.CRMFact, error) {
	all, _ := m.ListByContact(ctx, contactID)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

type mockFetcher struct {
	excerpt string
	err     error
	calls   int
}

func (m *mockFetcher) FetchExcerpt(ctx context.Context, url string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.excerpt, nil
}

type mockExtractor struct {
	noteCalls        int
	interactionCalls int
	err              error
}

func (m *mockExtractor) ExtractFromNote(ctx context.Context, note *models.Note) error {
	m.noteCalls++
	return m.err
}

func (m *mockExtractor) ExtractFromInteraction(ctx context.Context, interaction *models.Interaction) error {
	m.interactionCalls++
	return m.err
}
