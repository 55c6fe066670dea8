package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"clinic-booking-api/internal/calendar"
	"clinic-booking-api/internal/middleware"
	"clinic-booking-api/internal/model"
)

const (
	maxClientName = 20
	maxSubject    = 255
)

// Calendar returns the current bookable value domain: the rolling open days
// and the fixed slot grid. Recomputed per request, never memoized.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, map[string]any{
		"days":  calendar.BusinessDays(h.now(), h.window, calendar.French),
		"slots": calendar.Slots(),
	})
}

// bookingSubmission is the client-supplied field set for create and change.
// ClientName is a pointer so "absent" and "empty" stay distinguishable.
type bookingSubmission struct {
	ClientName *string `json:"client_name"`
	Date       string  `json:"date"`
	TimeRange  string  `json:"time_range"`
	Subject    string  `json:"subject"`
}

// validate checks the submission against the current calendar domain.
// existingDate, when non-empty, keeps a stored date bookable on change even
// after it has rolled out of the window.
func (h *Handler) validate(sub *bookingSubmission, existingDate string) map[string]string {
	errs := map[string]string{}
	days := calendar.BusinessDays(h.now(), h.window, calendar.French)
	if !calendar.ContainsDay(days, sub.Date) && !(existingDate != "" && sub.Date == existingDate) {
		errs["date"] = "date is not open for booking"
	}
	if !calendar.ValidSlot(sub.TimeRange) {
		errs["time_range"] = "unknown time slot"
	}
	if len(sub.Subject) > maxSubject {
		errs["subject"] = "subject too long"
	}
	if sub.ClientName != nil && len(*sub.ClientName) > maxClientName {
		errs["client_name"] = "client name too long"
	}
	return errs
}

// CreateAppointment books a slot for the acting user. A non-practitioner's
// client_name is stripped before validation, not merely ignored at save
// time, so the stored record can never carry it.
func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFromContext(r.Context())

	var sub bookingSubmission
	if err := decode(r, &sub); err != nil {
		h.fieldErrors(w, map[string]string{"body": "invalid JSON"})
		return
	}
	if actor.Role != model.RolePractitioner {
		sub.ClientName = nil
	}

	if errs := h.validate(&sub, ""); len(errs) > 0 {
		h.fieldErrors(w, errs)
		return
	}

	// app-level pre-check; the unique constraint backstops the race
	if taken, err := h.store.SlotTaken(r.Context(), sub.Date, sub.TimeRange, ""); err != nil {
		h.storeErr(w, err)
		return
	} else if taken {
		h.conflict(w)
		return
	}

	a := &model.Appointment{
		ID:        uuid.New().String(),
		OwnerID:   &actor.UserID,
		Date:      sub.Date,
		TimeRange: sub.TimeRange,
		Subject:   sub.Subject,
		CreatedAt: h.now(),
	}
	if sub.ClientName != nil {
		a.ClientName = *sub.ClientName
	}

	if err := h.store.CreateAppointment(r.Context(), a); err != nil {
		h.storeErr(w, err)
		return
	}

	h.logger.Info("appointment booked", "appointment_id", a.ID, "date", a.Date, "time_range", a.TimeRange)
	h.respond(w, http.StatusCreated, map[string]any{
		"appointment": h.viewAppointment(a),
		"redirect":    redirectConsult,
	})
}

// ConsultAppointments lists the acting user's own appointments.
func (h *Handler) ConsultAppointments(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFromContext(r.Context())
	apts, err := h.store.ListForOwner(r.Context(), actor.UserID)
	if err != nil {
		h.storeErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]any{"appointments": h.viewAppointments(apts)})
}

// ManageAppointments lists every appointment. Like the consult view it only
// requires authentication, not the practitioner role.
func (h *Handler) ManageAppointments(w http.ResponseWriter, r *http.Request) {
	apts, err := h.store.ListAll(r.Context())
	if err != nil {
		h.storeErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]any{"appointments": h.viewAppointments(apts)})
}

// AppointmentDetail returns one appointment together with the full note
// history of its owner (not just notes written against this appointment).
func (h *Handler) AppointmentDetail(w http.ResponseWriter, r *http.Request) {
	a, err := h.store.GetAppointment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeErr(w, err)
		return
	}

	var notes []model.Note
	if a.OwnerID != nil {
		notes, err = h.store.NotesForUser(r.Context(), *a.OwnerID)
		if err != nil {
			h.storeErr(w, err)
			return
		}
	}

	h.respond(w, http.StatusOK, map[string]any{
		"appointment": h.viewAppointment(a),
		"notes":       viewNotes(notes),
	})
}

// ChangeAppointment edits an existing booking. client_name is stripped from
// the accepted field set for everyone, practitioners included; on an invalid
// submission the stored record is returned untouched alongside the errors.
func (h *Handler) ChangeAppointment(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFromContext(r.Context())

	existing, err := h.store.GetAppointment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeErr(w, err)
		return
	}

	var sub bookingSubmission
	if err := decode(r, &sub); err != nil {
		h.fieldErrors(w, map[string]string{"body": "invalid JSON"})
		return
	}
	sub.ClientName = nil

	if errs := h.validate(&sub, existing.Date); len(errs) > 0 {
		h.respond(w, http.StatusBadRequest, map[string]any{
			"errors":      errs,
			"appointment": h.viewAppointment(existing),
		})
		return
	}

	// moving into the appointment's own slot is not a conflict
	if taken, err := h.store.SlotTaken(r.Context(), sub.Date, sub.TimeRange, existing.ID); err != nil {
		h.storeErr(w, err)
		return
	} else if taken {
		h.conflict(w)
		return
	}

	updated := *existing
	updated.Date = sub.Date
	updated.TimeRange = sub.TimeRange
	updated.Subject = sub.Subject

	if err := h.store.UpdateAppointment(r.Context(), &updated); err != nil {
		h.storeErr(w, err)
		return
	}

	h.logger.Info("appointment changed", "appointment_id", updated.ID, "date", updated.Date, "time_range", updated.TimeRange)
	h.respond(w, http.StatusOK, map[string]any{
		"appointment": h.viewAppointment(&updated),
		"redirect":    h.redirectFor(actor),
	})
}

// ConfirmDeleteAppointment is the no-op confirmation step: it renders the
// target without side effects. The destructive call is DeleteAppointment.
func (h *Handler) ConfirmDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	a, err := h.store.GetAppointment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.storeErr(w, err)
		return
	}
	h.respond(w, http.StatusOK, map[string]any{
		"appointment": h.viewAppointment(a),
		"confirm":     true,
	})
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.IdentityFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if err := h.store.DeleteAppointment(r.Context(), id); err != nil {
		h.storeErr(w, err)
		return
	}

	h.logger.Info("appointment cancelled", "appointment_id", id)
	h.respond(w, http.StatusOK, map[string]any{"redirect": h.redirectFor(actor)})
}

// redirectFor routes practitioners to the management view, everyone else to
// their consult view.
func (h *Handler) redirectFor(actor middleware.Identity) string {
	if actor.Role == model.RolePractitioner {
		return redirectManage
	}
	return redirectConsult
}
