package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/xumalabs/notifier/pkg/httpserver"
)

// NewRouter assembles the HTTP surface: send endpoints behind service-key
// auth, the history endpoint, and a health probe wired to the given readiness
// checks.
func NewRouter(svc NotificationService, cfg Config, log *slog.Logger, readiness ...func(context.Context) error) http.Handler {
	h := &handler{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(context.Background(), log, readiness...))

	r.Route("/api/notifications", func(r chi.Router) {
		r.Use(serviceKeyAuth(cfg.ServiceKey))
		r.Post("/email", h.sendEmail)
		r.Post("/email/welcome", h.sendWelcomeEmail)
		r.Post("/email/reminder", h.sendReminderEmail)
		r.Post("/push", h.sendPush)
		r.Get("/history", h.history)
	})

	return r
}
