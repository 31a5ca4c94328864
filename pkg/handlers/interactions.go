package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/adamphillips/atlas/pkg/models"
	"github.com/adamphillips/atlas/pkg/services"
)

// ============================================================================
// Request/Response Types
// ============================================================================

// InteractionRequest for POST/PUT interaction endpoints. OccurredAt is
// RFC 3339 (empty means now); NextActionDue is a plain YYYY-MM-DD date.
type InteractionRequest struct {
	OccurredAt    string  `json:"occurred_at,omitempty"`
	Type          string  `json:"type"`
	Summary       string  `json:"summary"`
	NextAction    *string `json:"next_action,omitempty"`
	NextActionDue *string `json:"next_action_due,omitempty"`
	Outcome       string  `json:"outcome,omitempty"`
	OutcomeNotes  *string `json:"outcome_notes,omitempty"`
}

// ============================================================================
// Handler
// ============================================================================

// InteractionsHandler handles interaction HTTP requests.
type InteractionsHandler struct {
	interactionService services.InteractionService
	logger             *zap.Logger
}

// NewInteractionsHandler creates a new interactions handler.
func NewInteractionsHandler(interactionService services.InteractionService, logger *zap.Logger) *InteractionsHandler {
	return &InteractionsHandler{
		interactionService: interactionService,
		logger:             logger,
	}
}

// RegisterRoutes registers the interaction handler's routes on the given mux.
func (h *InteractionsHandler) RegisterRoutes(mux *http.ServeMux) {
	base := "/api/contacts/{cid}/interactions"

	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("PUT "+base+"/{iid}", h.Update)
	mux.HandleFunc("DELETE "+base+"/{iid}", h.Delete)
	mux.HandleFunc("POST "+base+"/{iid}/complete", h.Complete)
}

// List handles GET /api/contacts/{cid}/interactions
func (h *InteractionsHandler) List(w http.ResponseWriter, r *http.Request) {
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	interactions, err := h.interactionService.ListByContact(r.Context(), contactID)
	if err != nil {
		h.logger.Error("Failed to list interactions",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "list_interactions_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: interactions}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/contacts/{cid}/interactions
func (h *InteractionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	var req InteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	interaction, ok := h.interactionFromRequest(w, &req)
	if !ok {
		return
	}
	interaction.ContactID = contactID

	if err := h.interactionService.CreateInteraction(r.Context(), interaction); err != nil {
		h.logger.Error("Failed to create interaction",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "create_interaction_failed")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: interaction}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/contacts/{cid}/interactions/{iid}
func (h *InteractionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}
	interactionID, ok := ParseInteractionID(w, r, h.logger)
	if !ok {
		return
	}

	var req InteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	interaction, ok := h.interactionFromRequest(w, &req)
	if !ok {
		return
	}
	interaction.ID = interactionID
	interaction.ContactID = contactID

	if err := h.interactionService.UpdateInteraction(r.Context(), interaction); err != nil {
		h.logger.Error("Failed to update interaction",
			zap.String("interaction_id", interactionID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "update_interaction_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: interaction}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/contacts/{cid}/interactions/{iid}
func (h *InteractionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := ParseContactID(w, r, h.logger); !ok {
		return
	}
	interactionID, ok := ParseInteractionID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.interactionService.DeleteInteraction(r.Context(), interactionID); err != nil {
		h.logger.Error("Failed to delete interaction",
			zap.String("interaction_id", interactionID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "delete_interaction_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Interaction deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Complete handles POST /api/contacts/{cid}/interactions/{iid}/complete
func (h *InteractionsHandler) Complete(w http.ResponseWriter, r *http.Request) {
	if _, ok := ParseContactID(w, r, h.logger); !ok {
		return
	}
	interactionID, ok := ParseInteractionID(w, r, h.logger)
	if !ok {
		return
	}

	interaction, err := h.interactionService.CompleteNextAction(r.Context(), interactionID)
	if err != nil {
		h.logger.Error("Failed to complete next action",
			zap.String("interaction_id", interactionID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "complete_next_action_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: interaction}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// interactionFromRequest converts the wire shape to the model, validating
// both timestamp formats. Writes the error response itself on failure.
func (h *InteractionsHandler) interactionFromRequest(w http.ResponseWriter, req *InteractionRequest) (*models.Interaction, bool) {
	interaction := &models.Interaction{
		Type:         req.Type,
		Summary:      req.Summary,
		NextAction:   req.NextAction,
		Outcome:      req.Outcome,
		OutcomeNotes: req.OutcomeNotes,
	}

	if req.OccurredAt != "" {
		occurred, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_occurred_at", "occurred_at must be RFC 3339"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return nil, false
		}
		interaction.OccurredAt = occurred
	}

	if req.NextActionDue != nil && *req.NextActionDue != "" {
		due, err := time.Parse("2006-01-02", *req.NextActionDue)
		if err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_next_action_due", "next_action_due must be YYYY-MM-DD"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return nil, false
		}
		interaction.NextActionDue = &due
	}

	return interaction, true
}
