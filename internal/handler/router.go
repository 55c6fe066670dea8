package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"clinic-booking-api/internal/middleware"
	"clinic-booking-api/pkg/logging"
)

// Router wires all routes with their middleware. The credential endpoints
// sit behind the per-IP rate limiter; everything under the auth group
// requires a bearer token.
func Router(h *Handler, secret string, rl *middleware.RateLimiter, logger *logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if logger != nil {
		r.Use(middleware.RequestLogger(logger))
	}

	// public
	r.Group(func(public chi.Router) {
		public.Get("/health", h.Health)
		public.Post("/contact", h.Contact)
		public.With(rl.Limit).Post("/auth/register", h.Register)
		public.With(rl.Limit).Post("/auth/login", h.Login)
		public.Post("/auth/refresh", h.Refresh)
	})

	// authenticated
	r.Group(func(priv chi.Router) {
		priv.Use(middleware.Auth(secret))

		priv.Post("/auth/logout", h.Logout)
		priv.Get("/calendar", h.Calendar)

		priv.Route("/appointments", func(r chi.Router) {
			r.Post("/", h.CreateAppointment)
			r.Get("/", h.ConsultAppointments)
			r.Get("/all", h.ManageAppointments)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.AppointmentDetail)
				r.Put("/", h.ChangeAppointment)
				r.Get("/delete", h.ConfirmDeleteAppointment)
				r.Delete("/", h.DeleteAppointment)
				r.Post("/notes", h.AddNote)
			})
		})
	})

	return r
}
