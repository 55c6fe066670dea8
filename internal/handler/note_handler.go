package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"clinic-booking-api/internal/model"
)

const maxNoteText = 255

type noteSubmission struct {
	Text string `json:"text"`
}

// AddNote appends a note to the history of the appointment's owner. Any
// authenticated user may annotate; only general authentication is enforced.
func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	a, err := h.store.GetAppointment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeErr(w, err)
		return
	}

	var sub noteSubmission
	if err := decode(r, &sub); err != nil {
		h.fieldErrors(w, map[string]string{"body": "invalid JSON"})
		return
	}
	if sub.Text == "" {
		h.fieldErrors(w, map[string]string{"text": "text required"})
		return
	}
	if len(sub.Text) > maxNoteText {
		h.fieldErrors(w, map[string]string{"text": "text too long"})
		return
	}

	n := &model.Note{
		ID:        uuid.New().String(),
		OwnerID:   a.OwnerID,
		Text:      sub.Text,
		CreatedAt: h.now(),
	}
	if err := h.store.CreateNote(r.Context(), n); err != nil {
		h.storeErr(w, err)
		return
	}

	h.logger.Info("note added", "note_id", n.ID, "appointment_id", a.ID)
	h.respond(w, http.StatusCreated, map[string]any{
		"note":     viewNotes([]model.Note{*n})[0],
		"redirect": redirectManage,
	})
}
