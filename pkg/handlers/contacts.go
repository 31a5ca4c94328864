package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/adamphillips/atlas/pkg/models"
	"github.com/adamphillips/atlas/pkg/services"
)

// ============================================================================
// Request/Response Types
// ============================================================================

// ContactListResponse for GET /api/contacts
type ContactListResponse struct {
	Contacts []*models.Contact `json:"contacts"`
	Total    int               `json:"total"`
}

// ContactRequest for POST /api/contacts and PUT /api/contacts/{cid}
type ContactRequest struct {
	Name        string  `json:"name"`
	CompanyName string  `json:"company_name"`
	Role        string  `json:"role"`
	Email       string  `json:"email"`
	LinkedInURL *string `json:"linkedin_url,omitempty"`
	WebsiteURL  *string `json:"website_url,omitempty"`
	Source      string  `json:"source,omitempty"`
	Status      string  `json:"status,omitempty"`
}

// ============================================================================
// Handler
// ============================================================================

// ContactsHandler handles contact HTTP requests.
type ContactsHandler struct {
	contactService services.ContactService
	logger         *zap.Logger
}

// NewContactsHandler creates a new contacts handler.
func NewContactsHandler(contactService services.ContactService, logger *zap.Logger) *ContactsHandler {
	return &ContactsHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// RegisterRoutes registers the contact handler's routes on the given mux.
func (h *ContactsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/contacts", h.List)
	mux.HandleFunc("POST /api/contacts", h.Create)
	mux.HandleFunc("GET /api/contacts/{cid}", h.Get)
	mux.HandleFunc("PUT /api/contacts/{cid}", h.Update)
	mux.HandleFunc("DELETE /api/contacts/{cid}", h.Delete)
}

// List handles GET /api/contacts
func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contactService.ListContacts(r.Context())
	if err != nil {
		h.logger.Error("Failed to list contacts", zap.Error(err))
		writeServiceError(w, h.logger, err, "list_contacts_failed")
		return
	}

	response := ContactListResponse{
		Contacts: contacts,
		Total:    len(contacts),
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/contacts
func (h *ContactsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	contact := contactFromRequest(&req)
	if err := h.contactService.CreateContact(r.Context(), contact); err != nil {
		h.logger.Error("Failed to create contact",
			zap.String("email", req.Email),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "create_contact_failed")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: contact}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/contacts/{cid}
func (h *ContactsHandler) Get(w http.ResponseWriter, r *http.Request) {
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	detail, err := h.contactService.GetContact(r.Context(), contactID)
	if err != nil {
		h.logger.Error("Failed to get contact",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "get_contact_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: detail}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/contacts/{cid}
func (h *ContactsHandler) Update(w http.ResponseWriter, r *http.Request) {
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	contact := contactFromRequest(&req)
	contact.ID = contactID

	if err := h.contactService.UpdateContact(r.Context(), contact); err != nil {
		h.logger.Error("Failed to update contact",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "update_contact_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: contact}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/contacts/{cid}
func (h *ContactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.contactService.DeleteContact(r.Context(), contactID); err != nil {
		h.logger.Error("Failed to delete contact",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "delete_contact_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Contact deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func contactFromRequest(req *ContactRequest) *models.Contact {
	return &models.Contact{
		Name:        req.Name,
		CompanyName: req.CompanyName,
		Role:        req.Role,
		Email:       req.Email,
		LinkedInURL: req.LinkedInURL,
		WebsiteURL:  req.WebsiteURL,
		Source:      req.Source,
		Status:      req.Status,
	}
}
