// Package handler implements the booking, note, auth and contact workflows
// over HTTP. It is the recovery boundary for store errors: everything is
// translated into a field-error, conflict, not-found or redirect outcome.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"clinic-booking-api/internal/calendar"
	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/store"
	"clinic-booking-api/pkg/logging"
)

// Store is the persistence surface the workflows need. *store.Store
// implements it; tests substitute an in-memory fake.
type Store interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)

	CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error)
	RefreshTokenByHash(ctx context.Context, tokenHash string) (*store.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error
	RevokeAllRefreshTokens(ctx context.Context, userID string) error

	CreateAppointment(ctx context.Context, a *model.Appointment) error
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	UpdateAppointment(ctx context.Context, a *model.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
	ListForOwner(ctx context.Context, ownerID string) ([]model.Appointment, error)
	ListAll(ctx context.Context) ([]model.Appointment, error)
	SlotTaken(ctx context.Context, date, timeRange, excludeID string) (bool, error)

	CreateNote(ctx context.Context, n *model.Note) error
	NotesForUser(ctx context.Context, userID string) ([]model.Note, error)

	CreateContactMessage(ctx context.Context, m *model.ContactMessage) error
}

// Redirect tokens handed back for the presentation layer to act on.
const (
	redirectConsult = "consult"
	redirectManage  = "manage"
)

type Handler struct {
	store  Store
	logger *logging.Logger
	secret string
	window int              // calendar days scanned for bookable weekdays
	now    func() time.Time // injectable for tests
}

func New(st Store, secret string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		store:  st,
		logger: logger,
		secret: secret,
		window: calendar.DefaultWindow,
		now:    time.Now,
	}
}

// WithWindow overrides the booking window (in calendar days).
func (h *Handler) WithWindow(days int) *Handler {
	if days > 0 {
		h.window = days
	}
	return h
}

// WithClock overrides the clock, for deterministic tests.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	if now != nil {
		h.now = now
	}
	return h
}

func (h *Handler) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// fieldErrors returns validation failures keyed by field for form re-display.
func (h *Handler) fieldErrors(w http.ResponseWriter, errs map[string]string) {
	h.respond(w, http.StatusBadRequest, map[string]any{"errors": errs})
}

func (h *Handler) notFound(w http.ResponseWriter) {
	h.respond(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

func (h *Handler) conflict(w http.ResponseWriter) {
	h.respond(w, http.StatusConflict, map[string]any{
		"errors": map[string]string{"time_range": "this slot is already booked"},
	})
}

// storeErr maps persistence failures to outcomes; late constraint violations
// become conflicts rather than crashes.
func (h *Handler) storeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.notFound(w)
	case errors.Is(err, store.ErrSlotTaken):
		h.conflict(w)
	default:
		h.logger.Error("store failure", "err", err)
		h.respond(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// appointmentView is the wire form of an appointment, with the derived
// display label and past-due flag precomputed for the presentation layer.
type appointmentView struct {
	ID          string  `json:"id"`
	ClientName  string  `json:"client_name,omitempty"`
	OwnerID     *string `json:"owner_id"`
	Date        string  `json:"date"`
	DateDisplay string  `json:"date_display,omitempty"`
	TimeRange   string  `json:"time_range"`
	Subject     string  `json:"subject,omitempty"`
	CreatedAt   string  `json:"created_at"`
	PastDue     bool    `json:"past_due"`
}

func (h *Handler) viewAppointment(a *model.Appointment) appointmentView {
	v := appointmentView{
		ID:         a.ID,
		ClientName: a.ClientName,
		OwnerID:    a.OwnerID,
		Date:       a.Date,
		TimeRange:  a.TimeRange,
		Subject:    a.Subject,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
		PastDue:    a.PastDue(h.now()),
	}
	if d, err := time.Parse("2006-01-02", a.Date); err == nil {
		v.DateDisplay = calendar.French.FormatFull(d)
	}
	return v
}

func (h *Handler) viewAppointments(apts []model.Appointment) []appointmentView {
	out := make([]appointmentView, len(apts))
	for i := range apts {
		out[i] = h.viewAppointment(&apts[i])
	}
	return out
}

type noteView struct {
	ID        string  `json:"id"`
	OwnerID   *string `json:"owner_id"`
	Text      string  `json:"text"`
	CreatedAt string  `json:"created_at"`
}

func viewNotes(notes []model.Note) []noteView {
	out := make([]noteView, len(notes))
	for i, n := range notes {
		out[i] = noteView{
			ID:        n.ID,
			OwnerID:   n.OwnerID,
			Text:      n.Text,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
	}
	return out
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}
