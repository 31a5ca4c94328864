package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/adamphillips/atlas/pkg/models"
	"github.com/adamphillips/atlas/pkg/services"
)

// NoteRequest for POST/PUT note endpoints. MeetingDate is YYYY-MM-DD.
type NoteRequest struct {
	MeetingDate string `json:"meeting_date"`
	RawNotes    string `json:"raw_notes"`
}

// NotesHandler handles meeting-note HTTP requests, including the
// summarizer endpoint.
type NotesHandler struct {
	noteService  services.NoteService
	intelService services.IntelService
	logger       *zap.Logger
}

// NewNotesHandler creates a new notes handler.
func NewNotesHandler(noteService services.NoteService, intelService services.IntelService, logger *zap.Logger) *NotesHandler {
	return &NotesHandler{
		noteService:  noteService,
		intelService: intelService,
		logger:       logger,
	}
}

// RegisterRoutes registers the note handler's routes on the given mux.
func (h *NotesHandler) RegisterRoutes(mux *http.ServeMux) {
	base := "/api/contacts/{cid}/notes"

	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("PUT "+base+"/{nid}", h.Update)
	mux.HandleFunc("DELETE "+base+"/{nid}", h.Delete)
	mux.HandleFunc("POST "+base+"/{nid}/summarize", h.Summarize)
}

// List handles GET /api/contacts/{cid}/notes
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	notes, err := h.noteService.ListByContact(r.Context(), contactID)
	if err != nil {
		h.logger.Error("Failed to list notes",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "list_notes_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: notes}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/contacts/{cid}/notes
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}

	note, ok := h.noteFromRequest(w, r)
	if !ok {
		return
	}
	note.ContactID = contactID

	if err := h.noteService.CreateNote(r.Context(), note); err != nil {
		h.logger.Error("Failed to create note",
			zap.String("contact_id", contactID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "create_note_failed")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: note}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/contacts/{cid}/notes/{nid}
func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	contactID, ok := ParseContactID(w, r, h.logger)
	if !ok {
		return
	}
	noteID, ok := ParseNoteID(w, r, h.logger)
	if !ok {
		return
	}

	note, ok := h.noteFromRequest(w, r)
	if !ok {
		return
	}
	note.ID = noteID
	note.ContactID = contactID

	if err := h.noteService.UpdateNote(r.Context(), note); err != nil {
		h.logger.Error("Failed to update note",
			zap.String("note_id", noteID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "update_note_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: note}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/contacts/{cid}/notes/{nid}
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := ParseContactID(w, r, h.logger); !ok {
		return
	}
	noteID, ok := ParseNoteID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(r.Context(), noteID); err != nil {
		h.logger.Error("Failed to delete note",
			zap.String("note_id", noteID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "delete_note_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Note deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Summarize handles POST /api/contacts/{cid}/notes/{nid}/summarize
func (h *NotesHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	if _, ok := ParseContactID(w, r, h.logger); !ok {
		return
	}
	noteID, ok := ParseNoteID(w, r, h.logger)
	if !ok {
		return
	}

	note, err := h.intelService.SummarizeNote(r.Context(), noteID)
	if err != nil {
		h.logger.Error("Failed to summarize note",
			zap.String("note_id", noteID.String()),
			zap.Error(err))
		writeServiceError(w, h.logger, err, "summarize_note_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: note}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *NotesHandler) noteFromRequest(w http.ResponseWriter, r *http.Request) (*models.Note, bool) {
	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return nil, false
	}

	note := &models.Note{RawNotes: req.RawNotes}
	if req.MeetingDate != "" {
		date, err := time.Parse("2006-01-02", req.MeetingDate)
		if err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_meeting_date", "meeting_date must be YYYY-MM-DD"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return nil, false
		}
		note.MeetingDate = date
	}

	return note, true
}
