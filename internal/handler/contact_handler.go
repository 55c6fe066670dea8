package handler

import (
	"net/http"

	"github.com/google/uuid"

	"clinic-booking-api/internal/model"
)

type contactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Contact stores a message from the public contact form.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	var sub contactSubmission
	if err := decode(r, &sub); err != nil {
		h.fieldErrors(w, map[string]string{"body": "invalid JSON"})
		return
	}

	errs := map[string]string{}
	if sub.Name == "" {
		errs["name"] = "name required"
	}
	if sub.Email == "" {
		errs["email"] = "email required"
	}
	if sub.Message == "" {
		errs["message"] = "message required"
	}
	if len(errs) > 0 {
		h.fieldErrors(w, errs)
		return
	}

	m := &model.ContactMessage{
		ID:        uuid.New().String(),
		Name:      sub.Name,
		Email:     sub.Email,
		Message:   sub.Message,
		CreatedAt: h.now(),
	}
	if err := h.store.CreateContactMessage(r.Context(), m); err != nil {
		h.storeErr(w, err)
		return
	}

	h.respond(w, http.StatusCreated, map[string]string{"status": "received"})
}
