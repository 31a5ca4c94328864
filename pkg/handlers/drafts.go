package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/adamphillips/atlas/pkg/services"
)

// FirstEmailRequest for POST /api/contacts/{cid}/drafts/first-email. The
// optional website summary lets the UI reuse an analysis it already has.
type FirstEmailRequest struct {
	WebsiteSummary string `json:"website_summary,omitempty"`
}

// DraftsHandler handles the AI drafting and intelligence endpoints.
// Everything here produces drafts for the user to edit; nothing is sent.
type DraftsHandler struct {
	intelService services.IntelService
	logger       *zap.Logger
}

// NewDraftsHandler creates a new drafts handler.
func NewDraftsHandler(intelService services.IntelService, logger *zap.Logger) *DraftsHandler {
	return &DraftsHandler{
		intelService: intelService,
		logger:       logger,
	}
}

// RegisterRoutes registers the drafting routes on the given mux.
func (h *DraftsHandler) RegisterRoutes(mux *http.ServeMux) {
	base := "/api/contacts/{cid}"

	mux.HandleFunc("POST "+base+"/website-summary", h.WebsiteSummary)
	mux.HandleFunc("POST "+base+"/drafts/first-email", h.FirstEmail)
	mux.HandleFunc("POST "+base+"/drafts/followup", h.Followup)
	mux.HandleFunc("POST "+base+"/drafts/custom", h.Custom)
	mux.HandleFunc("POST "+base+"/suggest-next-action", h.SuggestNextAction)
	mux.HandleFunc("GET "+base+"/facts", h.ListFacts)
}

// WebsiteSummary handles POST /api/contacts/{cid}/website-summary
func (h *DraftsHandler) WebsiteSummary(w http.ResponseWriter, r *http.Request) {
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	draft, err := h.intelService.AnalyzeWebsite(r.Context(), contactID)
	if err != nil {
		h.logger.Error("Failed to analyze website",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "website_summary_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: draft}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// FirstEmail handles POST /api/contacts/{cid}/drafts/first-email
func (h *DraftsHandler) FirstEmail(w http.ResponseWriter, r *http.Request) {
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	// Body is optional for this endpoint.
	var req FirstEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	draft, err := h.intelService.DraftFirstEmail(r.Context(), contactID, req.WebsiteSummary)
	if err != nil {
		h.logger.Error("Failed to draft first email",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "draft_first_email_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: draft}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Followup handles POST /api/contacts/{cid}/drafts/followup
func (h *DraftsHandler) Followup(w http.ResponseWriter, r *http.Request) {
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	draft, err := h.intelService.DraftFollowup(r.Context(), contactID)
	if err != nil {
		h.logger.Error("Failed to draft follow-up",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "draft_followup_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: draft}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Custom handles POST /api/contacts/{cid}/drafts/custom
func (h *DraftsHandler) Custom(w http.ResponseWriter, r *http.Request) {
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	var req services.CustomDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	draft, err := h.intelService.DraftCustomEmail(r.Context(), contactID, &req)
	if err != nil {
		h.logger.Error("Failed to draft custom email",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "draft_custom_email_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: draft}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// SuggestNextAction handles POST /api/contacts/{cid}/suggest-next-action
func (h *DraftsHandler) SuggestNextAction(w http.ResponseWriter, r *http.Request) {
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	suggestion, err := h.intelService.SuggestNextAction(r.Context(), contactID)
	if err != nil {
		h.logger.Error("Failed to suggest next action",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "suggest_next_action_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: suggestion}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListFacts handles GET /api/contacts/{cid}/facts
func (h *DraftsHandler) ListFacts(w http.ResponseWriter, r *http.Request) {
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	facts, err := h.intelService.ListFacts(r.Context(), contactID)
	if err != nil {
		h.logger.Error("Failed to list facts",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "list_facts_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: facts}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
