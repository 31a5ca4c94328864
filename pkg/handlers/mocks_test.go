package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/adamphillips/atlas/pkg/models"
	"github.com/adamphillips/atlas/pkg/services"
)

// ============================================================================
// Test plumbing
// ============================================================================

// envelope mirrors ApiResponse with the data left raw for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// doRequest routes the request through the mux so path values resolve.
func doRequest(t *testing.T, mux *http.ServeMux, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

// ============================================================================
// Service mocks
// ============================================================================

type mockContactService struct {
	createFunc func(ctx context.Context, contact *models.Contact) error
	updateFunc func(ctx context.Context, contact *models.Contact) error
	deleteFunc func(ctx context.Context, contactID uuid.UUID) error
	getFunc    func(ctx context.Context, contactID uuid.UUID) (*models.ContactDetail, error)
	listFunc   func(ctx context.Context) ([]*models.Contact, error)
}

func (m *mockContactService) CreateContact(ctx context.Context, contact *models.Contact) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, contact)
	}
	contact.ID = uuid.New()
	return nil
}

func (m *mockContactService) UpdateContact(ctx context.Context, contact *models.Contact) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, contact)
	}
	return nil
}

func (m *mockContactService) DeleteContact(ctx context.Context, contactID uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, contactID)
	}
	return nil
}

func (m *mockContactService) GetContact(ctx context.Context, contactID uuid.UUID) (*models.ContactDetail, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, contactID)
	}
	return &models.ContactDetail{}, nil
}

func (m *mockContactService) ListContacts(ctx context.Context) ([]*models.Contact, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

var _ services.ContactService = (*mockContactService)(nil)

type mockInteractionService struct {
	createFunc   func(ctx context.Context, interaction *models.Interaction) error
	updateFunc   func(ctx context.Context, interaction *models.Interaction) error
	deleteFunc   func(ctx context.Context, interactionID uuid.UUID) error
	getFunc      func(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error)
	listFunc     func(ctx context.Context, contactID uuid.UUID) ([]*models.Interaction, error)
	completeFunc func(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error)
}

func (m *mockInteractionService) CreateInteraction(ctx context.Context, interaction *models.Interaction) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, interaction)
	}
	interaction.ID = uuid.New()
	return nil
}

func (m *mockInteractionService) UpdateInteraction(ctx context.Context, interaction *models.Interaction) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, interaction)
	}
	return nil
}

func (m *mockInteractionService) DeleteInteraction(ctx context.Context, interactionID uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, interactionID)
	}
	return nil
}

func (m *mockInteractionService) GetInteraction(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, interactionID)
	}
	return &models.Interaction{ID: interactionID}, nil
}

func (m *mockInteractionService) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.Interaction, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, contactID)
	}
	return nil, nil
}

func (m *mockInteractionService) CompleteNextAction(ctx context.Context, interactionID uuid.UUID) (*models.Interaction, error) {
	if m.completeFunc != nil {
		return m.completeFunc(ctx, interactionID)
	}
	return &models.Interaction{ID: interactionID, NextActionCompleted: true}, nil
}

var _ services.InteractionService = (*mockInteractionService)(nil)

type mockNoteService struct {
	createFunc func(ctx context.Context, note *models.Note) error
	updateFunc func(ctx context.Context, note *models.Note) error
	deleteFunc func(ctx context.Context, noteID uuid.UUID) error
	getFunc    func(ctx context.Context, noteID uuid.UUID) (*models.Note, error)
	listFunc   func(ctx context.Context, contactID uuid.UUID) ([]*models.Note, error)
}

func (m *mockNoteService) CreateNote(ctx context.Context, note *models.Note) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, note)
	}
	note.ID = uuid.New()
	return nil
}

func (m *mockNoteService) UpdateNote(ctx context.Context, note *models.Note) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, note)
	}
	return nil
}

func (m *mockNoteService) DeleteNote(ctx context.Context, noteID uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, noteID)
	}
	return nil
}

func (m *mockNoteService) GetNote(ctx context.Context, noteID uuid.UUID) (*models.Note, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, noteID)
	}
	return &models.Note{ID: noteID}, nil
}

func (m *mockNoteService) ListByContact(ctx context.Context, contactID uuid.UUID) ([]*models.Note, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, contactID)
	}
	return nil, nil
}

var _ services.NoteService = (*mockNoteService)(nil)

type mockIntelService struct {
	analyzeFunc     func(ctx context.Context, contactID uuid.UUID) (*services.Draft, error)
	firstEmailFunc  func(ctx context.Context, contactID uuid.UUID, websiteSummary string) (*services.Draft, error)
	followupFunc    func(ctx context.Context, contactID uuid.UUID) (*services.Draft, error)
	customFunc      func(ctx context.Context, contactID uuid.UUID, req *services.CustomDraftRequest) (*services.Draft, error)
	summarizeFunc   func(ctx context.Context, noteID uuid.UUID) (*models.Note, error)
	suggestFunc     func(ctx context.Context, contactID uuid.UUID) (*models.NextActionSuggestion, error)
	listFactsFunc   func(ctx context.Context, contactID uuid.UUID) ([]*models.CRMFact, error)
}

func (m *mockIntelService) AnalyzeWebsite(ctx context.Context, contactID uuid.UUID) (*services.Draft, error) {
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, contactID)
	}
	return &services.Draft{Content: "analysis"}, nil
}

func (m *mockIntelService) DraftFirstEmail(ctx context.Context, contactID uuid.UUID, websiteSummary string) (*services.Draft, error) {
	if m.firstEmailFunc != nil {
		return m.firstEmailFunc(ctx, contactID, websiteSummary)
	}
	return &services.Draft{Content: "first email"}, nil
}

func (m *mockIntelService) DraftFollowup(ctx context.Context, contactID uuid.UUID) (*services.Draft, error) {
	if m.followupFunc != nil {
		return m.followupFunc(ctx, contactID)
	}
	return &services.Draft{Content: "followup"}, nil
}

func (m *mockIntelService) DraftCustomEmail(ctx context.Context, contactID uuid.UUID, req *services.CustomDraftRequest) (*services.Draft, error) {
	if m.customFunc != nil {
		return m.customFunc(ctx, contactID, req)
	}
	return &services.Draft{Content: "custom"}, nil
}

func (m *mockIntelService) SummarizeNote(ctx context.Context, noteID uuid.UUID) (*models.Note, error) {
	if m.summarizeFunc != nil {
		return m.summarizeFunc(ctx, noteID)
	}
	return &models.Note{ID: noteID}, nil
}

func (m *mockIntelService) SuggestNextAction(ctx context.Context, contactID uuid.UUID) (*models.NextActionSuggestion, error) {
	if m.suggestFunc != nil {
		return m.suggestFunc(ctx, contactID)
	}
	suggestion := models.FallbackSuggestion()
	return &suggestion, nil
}

func (m *mockIntelService) ListFacts(ctx context.Context, contactID uuid.UUID) ([]*models.CRMFact, error) {
	if m.listFactsFunc != nil {
		return m.listFactsFunc(ctx, contactID)
	}
	return nil, nil
}

func (m *mockIntelService) ExtractFromNote(ctx context.Context, note *models.Note) error {
	return nil
}

func (m *mockIntelService) ExtractFromInteraction(ctx context.Context, interaction *models.Interaction) error {
	return nil
}

var _ services.IntelService = (*mockIntelService)(nil)

type mockReportService struct {
	nextActionsFunc func(ctx context.Context) ([]*models.NextActionItem, error)
	outcomesFunc    func(ctx context.Context) ([]*models.OutcomeCount, error)
}

func (m *mockReportService) NextActions(ctx context.Context) ([]*models.NextActionItem, error) {
	if m.nextActionsFunc != nil {
		return m.nextActionsFunc(ctx)
	}
	return nil, nil
}

func (m *mockReportService) OutcomeMetrics(ctx context.Context) ([]*models.OutcomeCount, error) {
	if m.outcomesFunc != nil {
		return m.outcomesFunc(ctx)
	}
	return []*models.OutcomeCount{}, nil
}

var _ services.ReportService = (*mockReportService)(nil)
