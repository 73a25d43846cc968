package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lmtavares/todo-notes-be/internal/auth"
	"github.com/lmtavares/todo-notes-be/internal/metrics"
	"github.com/lmtavares/todo-notes-be/internal/services"
	"github.com/rs/zerolog/log"
)

// NoteHandler handles HTTP requests for notes. The owner of every operation
// is the identity the auth middleware attached to the request context.
type NoteHandler struct {
	service services.NoteServiceProvider
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(service services.NoteServiceProvider) *NoteHandler {
	return &NoteHandler{service: service}
}

func (h *NoteHandler) identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve identity from context")
		writeError(w, http.StatusInternalServerError, "Could not retrieve user from token")
	}
	return id, ok
}

// parseNoteID reads the {id} path parameter. It must be a positive integer;
// anything else is rejected before the store is touched.
func parseNoteID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid note ID")
	}
	return id, nil
}

// List handles the request to get all notes owned by the requesting user.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	notes, err := h.service.ListForUser(id.UserID)
	if err != nil {
		log.Error().Err(err).Int("user_id", id.UserID).Msg("Failed to list notes")
		writeError(w, http.StatusInternalServerError, "Failed to fetch notes")
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

// NotePayload defines the structure for note create and full-update requests.
type NotePayload struct {
	Note   *string `json:"note"`
	IsDone *bool   `json:"isDone"`
}

// Create handles the request to create a new note.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload NotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	text := ""
	if payload.Note != nil {
		text = *payload.Note
	}
	isDone := false
	if payload.IsDone != nil {
		isDone = *payload.IsDone
	}

	note, err := h.service.Create(id.UserID, text, isDone)
	if err != nil {
		if errors.Is(err, services.ErrEmptyNote) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Int("user_id", id.UserID).Msg("Failed to create note")
		writeError(w, http.StatusInternalServerError, "Failed to create note")
		return
	}

	metrics.NoteOperations.WithLabelValues("create").Inc()

	writeJSON(w, http.StatusCreated, note)
}

// Patch handles a partial note update. Absent fields are left untouched.
func (h *NoteHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	noteID, err := parseNoteID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload NotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// A blank text field is not a valid update; drop it rather than erase
	// the note.
	if payload.Note != nil && strings.TrimSpace(*payload.Note) == "" {
		payload.Note = nil
	}

	note, err := h.service.UpdateFields(id.UserID, noteID, services.NoteUpdate{
		Note:   payload.Note,
		IsDone: payload.IsDone,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoFields):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNoteNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			log.Error().Err(err).Int("note_id", noteID).Msg("Failed to update note")
			writeError(w, http.StatusInternalServerError, "Failed to update note")
		}
		return
	}

	metrics.NoteOperations.WithLabelValues("update").Inc()

	writeJSON(w, http.StatusOK, note)
}

// Replace handles a full note update. Both text and done flag are required;
// the owner is always the requesting user, whatever the payload says.
func (h *NoteHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	noteID, err := parseNoteID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var payload NotePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if payload.Note == nil || strings.TrimSpace(*payload.Note) == "" {
		writeError(w, http.StatusBadRequest, "note text is required")
		return
	}
	if payload.IsDone == nil {
		writeError(w, http.StatusBadRequest, "isDone must be a boolean")
		return
	}

	note, err := h.service.Replace(id.UserID, noteID, *payload.Note, *payload.IsDone)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Error().Err(err).Int("note_id", noteID).Msg("Failed to replace note")
		writeError(w, http.StatusInternalServerError, "Failed to update note")
		return
	}

	metrics.NoteOperations.WithLabelValues("replace").Inc()

	writeJSON(w, http.StatusOK, note)
}

// Delete handles the request to delete a note.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	noteID, err := parseNoteID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Delete(id.UserID, noteID); err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Error().Err(err).Int("note_id", noteID).Msg("Failed to delete note")
		writeError(w, http.StatusInternalServerError, "Failed to delete note")
		return
	}

	metrics.NoteOperations.WithLabelValues("delete").Inc()

	writeJSON(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})
}
