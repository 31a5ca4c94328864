package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adamphillips/atlas/pkg/apperrors"
	"github.com/adamphillips/atlas/pkg/llm"
	"github.com/adamphillips/atlas/pkg/models"
	"github.com/adamphillips/atlas/pkg/prompts"
	"github.com/adamphillips/atlas/pkg/repositories"
)

// factContextLimit caps how many recent facts feed the next-action coach.
const factContextLimit = 10

// interactionContextLimit caps how much history feeds the prompts.
const interactionContextLimit = 10

// WebsiteFetcher downloads a homepage and returns a plain-text excerpt.
type WebsiteFetcher interface {
	FetchExcerpt(ctx context.Context, url string) (string, error)
}

// FactExtractor pulls structured CRM facts out of newly written notes and
// interactions. Implemented by the intel service; the CRUD services call
// it best-effort after their writes.
type FactExtractor interface {
	ExtractFromNote(ctx context.Context, note *models.Note) error
	ExtractFromInteraction(ctx context.Context, interaction *models.Interaction) error
}

// Draft is one generated email or analysis, with the prompt context that
// produced it noted for the UI.
type Draft struct {
	Content        string `json:"content"`
	Model          string `json:"model"`
	WebsiteSummary string `json:"website_summary,omitempty"`
}

// CustomDraftRequest carries the user's brief for a bespoke email plus the
// history rows they selected to ground it. WebsiteSummary is a previously
// generated analysis the client chose to reuse; no fetch happens here.
type CustomDraftRequest struct {
	Purpose           string      `json:"purpose"` // 'intro', 'follow_up', 'check_in', 'other'
	Tone              string      `json:"tone"`
	Brief             string      `json:"brief"`
	AdditionalContext string      `json:"additional_context"`
	WebsiteSummary    string      `json:"website_summary"`
	InteractionIDs    []uuid.UUID `json:"interaction_ids"`
	NoteIDs           []uuid.UUID `json:"note_ids"`
}

// IntelService provides the AI-assisted helpers: website analysis, email
// drafting, note summarization, fact extraction, and next-action coaching.
// Drafts are starting points for the user to edit; nothing is ever sent.
type IntelService interface {
	// AnalyzeWebsite fetches the contact's homepage and returns a BD
	// summary grounded in the page text.
	AnalyzeWebsite(ctx context.Context, contactID uuid.UUID) (*Draft, error)

	// DraftFirstEmail writes a first-touch outreach email. A non-empty
	// websiteSummary is reused as-is; otherwise the analysis runs first
	// when the contact has a URL, best-effort.
	DraftFirstEmail(ctx context.Context, contactID uuid.UUID, websiteSummary string) (*Draft, error)

	// DraftFollowup writes a follow-up grounded in the interaction log
	// and the latest note.
	DraftFollowup(ctx context.Context, contactID uuid.UUID) (*Draft, error)

	// DraftCustomEmail writes a bespoke email from the user's brief and
	// selected history.
	DraftCustomEmail(ctx context.Context, contactID uuid.UUID, req *CustomDraftRequest) (*Draft, error)

	// SummarizeNote regenerates the note's structured summary, leaving
	// the raw notes untouched.
	SummarizeNote(ctx context.Context, noteID uuid.UUID) (*models.Note, error)

	// SuggestNextAction asks the coach for the most useful next action
	// for the contact. Returns ErrFeatureDisabled when turned off.
	SuggestNextAction(ctx context.Context, contactID uuid.UUID) (*models.NextActionSuggestion, error)

	// ListFacts returns the contact's extracted facts, newest first.
	ListFacts(ctx context.Context, contactID uuid.UUID) ([]*models.CRMFact, error)

	FactExtractor
}

// IntelConfig carries the model roles and feature flags for the service.
type IntelConfig struct {
	DraftingModel         string
	SummarizerModel       string
	FactExtractionEnabled bool
	SuggestionsEnabled    bool
}

type intelService struct {
	contactRepo     repositories.ContactRepository
	interactionRepo repositories.InteractionRepository
	noteRepo        repositories.NoteRepository
	factRepo        repositories.FactRepository
	generator       llm.TextGenerator
	fetcher         WebsiteFetcher
	examples        prompts.StyleExamples
	cfg             IntelConfig
	logger          *zap.Logger
}

// NewIntelService creates a new IntelService.
func NewIntelService(
	contactRepo repositories.ContactRepository,
	interactionRepo repositories.InteractionRepository,
	noteRepo repositories.NoteRepository,
	factRepo repositories.FactRepository,
	generator llm.TextGenerator,
	fetcher WebsiteFetcher,
	examples prompts.StyleExamples,
	cfg IntelConfig,
	logger *zap.Logger,
) IntelService {
	return &intelService{
		contactRepo:     contactRepo,
		interactionRepo: interactionRepo,
		noteRepo:        noteRepo,
		factRepo:        factRepo,
		generator:       generator,
		fetcher:         fetcher,
		examples:        examples,
		cfg:             cfg,
		logger:          logger,
	}
}

var _ IntelService = (*intelService)(nil)

func (s *intelService) AnalyzeWebsite(ctx context.Context, contactID uuid.UUID) (*Draft, error) {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	summary, err := s.websiteSummary(ctx, contact)
	if err != nil {
		return nil, err
	}

	return &Draft{Content: summary, Model: s.cfg.DraftingModel}, nil
}

func (s *intelService) DraftFirstEmail(ctx context.Context, contactID uuid.UUID, websiteSummary string) (*Draft, error) {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	// The website analysis feeds the draft but never blocks it.
	if websiteSummary == "" && contact.WebsiteURL != nil {
		websiteSummary, err = s.websiteSummary(ctx, contact)
		if err != nil {
			s.logger.Warn("Website analysis failed, drafting without it",
				zap.String("contact_id", contactID.String()),
				zap.Error(err))
			websiteSummary = ""
		}
	}

	prompt := prompts.BuildFirstEmailPrompt(contactContext(contact), websiteSummary, s.examples)
	result, err := s.generator.Generate(ctx, s.cfg.DraftingModel, prompts.GlobalStyle, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to draft first email: %w", err)
	}

	return &Draft{
		Content:        result.Content,
		Model:          s.cfg.DraftingModel,
		WebsiteSummary: websiteSummary,
	}, nil
}

func (s *intelService) DraftFollowup(ctx context.Context, contactID uuid.UUID) (*Draft, error) {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	interactions, err := s.interactionRepo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, err
	}

	var latestNote *prompts.NoteContext
	if len(notes) > 0 {
		nc := noteContext(notes[0])
		latestNote = &nc
	}

	prompt := prompts.BuildFollowupPrompt(contactContext(contact), interactionContexts(capInteractions(interactions)), latestNote, s.examples)
	result, err := s.generator.Generate(ctx, s.cfg.DraftingModel, prompts.GlobalStyle, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to draft follow-up: %w", err)
	}

	return &Draft{Content: result.Content, Model: s.cfg.DraftingModel}, nil
}

func (s *intelService) DraftCustomEmail(ctx context.Context, contactID uuid.UUID, req *CustomDraftRequest) (*Draft, error) {
	if strings.TrimSpace(req.Brief) == "" {
		return nil, fmt.Errorf("%w: brief is required", apperrors.ErrValidation)
	}

	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	selectedInteractions, err := s.selectInteractions(ctx, contactID, req.InteractionIDs)
	if err != nil {
		return nil, err
	}
	selectedNotes, err := s.selectNotes(ctx, contactID, req.NoteIDs)
	if err != nil {
		return nil, err
	}

	prompt := prompts.BuildCustomEmailPrompt(prompts.CustomEmailContext{
		Contact:              contactContext(contact),
		Purpose:              req.Purpose,
		Tone:                 orDefault(req.Tone, "professional, warm, concise"),
		Brief:                req.Brief,
		AdditionalContext:    req.AdditionalContext,
		WebsiteSummary:       req.WebsiteSummary,
		SelectedInteractions: selectedInteractions,
		SelectedNotes:        selectedNotes,
	}, s.examples)

	result, err := s.generator.Generate(ctx, s.cfg.DraftingModel, prompts.GlobalStyle, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to draft custom email: %w", err)
	}

	return &Draft{
		Content:        result.Content,
		Model:          s.cfg.DraftingModel,
		WebsiteSummary: req.WebsiteSummary,
	}, nil
}

func (s *intelService) SummarizeNote(ctx context.Context, noteID uuid.UUID) (*models.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	contact, err := s.contactRepo.GetByID(ctx, note.ContactID)
	if err != nil {
		return nil, err
	}

	prompt := prompts.BuildNotesSummaryPrompt(
		contact.Name,
		contact.CompanyName,
		note.MeetingDate.Format("2006-01-02"),
		note.RawNotes,
	)

	result, err := s.generator.Generate(ctx, s.cfg.SummarizerModel, prompts.GlobalStyle, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize note: %w", err)
	}

	summary := strings.TrimSpace(result.Content)
	if err := s.noteRepo.SetProcessedSummary(ctx, noteID, summary); err != nil {
		return nil, err
	}

	note.ProcessedSummary = &summary
	return note, nil
}

func (s *intelService) SuggestNextAction(ctx context.Context, contactID uuid.UUID) (*models.NextActionSuggestion, error) {
	if !s.cfg.SuggestionsEnabled {
		return nil, apperrors.ErrFeatureDisabled
	}

	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	interactions, err := s.interactionRepo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, err
	}
	facts, err := s.factRepo.ListRecentByContact(ctx, contactID, factContextLimit)
	if err != nil {
		return nil, err
	}

	prompt := prompts.BuildNextActionPrompt(
		contactContext(contact),
		interactionContexts(capInteractions(interactions)),
		noteContexts(notes),
		factContexts(facts),
	)

	result, err := s.generator.Generate(ctx, s.cfg.DraftingModel, prompts.GlobalStyle, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate suggestion: %w", err)
	}

	suggestion, err := llm.ParseJSONResponse[models.NextActionSuggestion](result.Content)
	if err != nil {
		s.logger.Warn("Suggestion response was not parseable JSON, using fallback",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		fallback := models.FallbackSuggestion()
		return &fallback, nil
	}

	suggestion.Normalize()
	return &suggestion, nil
}

func (s *intelService) ListFacts(ctx context.Context, contactID uuid.UUID) ([]*models.CRMFact, error) {
	if _, err := s.contactRepo.GetByID(ctx, contactID); err != nil {
		return nil, err
	}
	return s.factRepo.ListByContact(ctx, contactID)
}

// ============================================================================
// Fact extraction
// ============================================================================

func (s *intelService) ExtractFromNote(ctx context.Context, note *models.Note) error {
	if !s.cfg.FactExtractionEnabled {
		return nil
	}
	sourceID := note.ID
	return s.extractFact(ctx, note.ContactID, models.FactSourceNote, &sourceID,
		note.MeetingDate.Format("2006-01-02"), note.RawNotes)
}

func (s *intelService) ExtractFromInteraction(ctx context.Context, interaction *models.Interaction) error {
	if !s.cfg.FactExtractionEnabled {
		return nil
	}
	text := interaction.Summary
	if interaction.OutcomeNotes != nil {
		text += "\n\nOutcome notes: " + *interaction.OutcomeNotes
	}
	sourceID := interaction.ID
	return s.extractFact(ctx, interaction.ContactID, models.FactSourceInteraction, &sourceID,
		interaction.OccurredAt.Format("2006-01-02"), text)
}

// extractFact runs the extractor and stores the payload. A model or parse
// failure stores a degraded payload instead of dropping the signal.
func (s *intelService) extractFact(ctx context.Context, contactID uuid.UUID, sourceType string, sourceID *uuid.UUID, sourceDate, text string) error {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return err
	}

	prompt := prompts.BuildFactExtractionPrompt(prompts.FactExtractionContext{
		ContactName:    contact.Name,
		ContactCompany: contact.CompanyName,
		ContactEmail:   contact.Email,
		SourceType:     sourceType,
		SourceDate:     sourceDate,
		Text:           text,
	})

	var payload models.FactPayload
	result, err := s.generator.Generate(ctx, s.cfg.SummarizerModel, prompts.GlobalStyle, prompt)
	if err == nil {
		payload, err = llm.ParseJSONResponse[models.FactPayload](result.Content)
	}
	if err != nil {
		s.logger.Warn("Fact extraction degraded",
			zap.String("contact_id", contactID.String()),
			zap.String("source_type", sourceType),
			zap.Error(err))
		payload = models.DegradedFactPayload(text)
	} else {
		payload.Normalize(text)
	}

	fact := &models.CRMFact{
		ContactID:  contactID,
		SourceType: sourceType,
		SourceID:   sourceID,
		Payload:    payload,
	}
	if err := s.factRepo.Create(ctx, fact); err != nil {
		return err
	}

	s.logger.Debug("Stored CRM fact",
		zap.String("fact_id", fact.ID.String()),
		zap.String("intent", payload.Intent))
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

// websiteSummary fetches the contact's homepage and runs the analyser.
func (s *intelService) websiteSummary(ctx context.Context, contact *models.Contact) (string, error) {
	if contact.WebsiteURL == nil || strings.TrimSpace(*contact.WebsiteURL) == "" {
		return "", fmt.Errorf("%w: contact has no website URL", apperrors.ErrValidation)
	}

	excerpt, err := s.fetcher.FetchExcerpt(ctx, *contact.WebsiteURL)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(excerpt) == "" {
		return "", fmt.Errorf("%w: homepage had no readable text", apperrors.ErrWebsiteUnavailable)
	}

	prompt := prompts.BuildWebsiteAnalysisPrompt(contact.CompanyName, *contact.WebsiteURL, excerpt)
	result, err := s.generator.Generate(ctx, s.cfg.DraftingModel, prompts.GlobalStyle, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to analyze website: %w", err)
	}

	return result.Content, nil
}

func (s *intelService) selectInteractions(ctx context.Context, contactID uuid.UUID, ids []uuid.UUID) ([]prompts.InteractionContext, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	all, err := s.interactionRepo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, err
	}

	var selected []prompts.InteractionContext
	for _, i := range all {
		if wanted[i.ID] {
			selected = append(selected, interactionContext(i))
		}
	}
	return selected, nil
}

func (s *intelService) selectNotes(ctx context.Context, contactID uuid.UUID, ids []uuid.UUID) ([]prompts.NoteContext, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	all, err := s.noteRepo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, err
	}

	var selected []prompts.NoteContext
	for _, n := range all {
		if wanted[n.ID] {
			selected = append(selected, noteContext(n))
		}
	}
	return selected, nil
}

func contactContext(c *models.Contact) prompts.ContactContext {
	return prompts.ContactContext{
		Name:      c.Name,
		FirstName: c.FirstName(),
		Role:      c.Role,
		Company:   c.CompanyName,
		Source:    c.Source,
	}
}

func interactionContext(i *models.Interaction) prompts.InteractionContext {
	ic := prompts.InteractionContext{
		Type:    i.Type,
		Summary: i.Summary,
		Outcome: i.Outcome,
	}
	if !i.OccurredAt.IsZero() {
		ic.Date = i.OccurredAt.Format("2006-01-02")
	}
	if i.NextAction != nil {
		ic.NextAction = *i.NextAction
	}
	if i.NextActionDue != nil {
		ic.NextActionDue = i.NextActionDue.Format("2006-01-02")
	}
	return ic
}

func interactionContexts(interactions []*models.Interaction) []prompts.InteractionContext {
	contexts := make([]prompts.InteractionContext, 0, len(interactions))
	for _, i := range interactions {
		contexts = append(contexts, interactionContext(i))
	}
	return contexts
}

func noteContext(n *models.Note) prompts.NoteContext {
	nc := prompts.NoteContext{
		RawNotes: models.Snippet(n.RawNotes, 1200, "(empty)"),
	}
	if !n.MeetingDate.IsZero() {
		nc.MeetingDate = n.MeetingDate.Format("2006-01-02")
	}
	if n.ProcessedSummary != nil {
		nc.Summary = *n.ProcessedSummary
	}
	return nc
}

func noteContexts(notes []*models.Note) []prompts.NoteContext {
	contexts := make([]prompts.NoteContext, 0, len(notes))
	for _, n := range notes {
		contexts = append(contexts, noteContext(n))
	}
	return contexts
}

func factContexts(facts []*models.CRMFact) []prompts.FactContext {
	contexts := make([]prompts.FactContext, 0, len(facts))
	for _, f := range facts {
		fc := prompts.FactContext{
			Intent:   f.Payload.Intent,
			Timeline: f.Payload.Timeline,
			Summary:  f.Payload.Summary,
		}
		if f.Payload.NextActionHint != nil {
			fc.NextActionHint = *f.Payload.NextActionHint
		}
		contexts = append(contexts, fc)
	}
	return contexts
}

func capInteractions(interactions []*models.Interaction) []*models.Interaction {
	if len(interactions) > interactionContextLimit {
		return interactions[:interactionContextLimit]
	}
	return interactions
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
