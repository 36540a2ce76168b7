package api

import (
	"net/http"
	"time"

	adminapi "github.com/gdg-menorca/resort-assistant/internal/api/admin"
	chatapi "github.com/gdg-menorca/resort-assistant/internal/api/chat"
	"github.com/gdg-menorca/resort-assistant/internal/api/docs"
	healthapi "github.com/gdg-menorca/resort-assistant/internal/api/health"
	"github.com/gdg-menorca/resort-assistant/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	healthHandler *healthapi.Handler,
	chatHandler *chatapi.Handler,
	adminHandler *adminapi.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)

	r.Get("/health", healthHandler.GetHealth)

	docs.RegisterRoutes(r)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", healthHandler.GetStatus)

		// The chat stream writes for as long as the completion runs, so it
		// stays outside the request timeout applied to the rest of the API.
		r.Post("/chat", chatHandler.PostChat)

		r.Route("/admin", func(r chi.Router) {
			r.Use(chimiddleware.Timeout(10 * time.Minute))
			r.Post("/generate", adminHandler.PostGenerate)
			r.Post("/cleanup", adminHandler.PostCleanup)
			r.Get("/logs", adminHandler.GetLogs)
			r.Get("/export", adminHandler.GetExport)
		})
	})

	return r
}
