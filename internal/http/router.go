// Package http wires the bridge handlers into a chi router.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"insig8-ai/internal/handlers"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Agent handlers.Agent
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	commitments := handlers.NewCommitmentHandler(deps.Agent)
	meetings := handlers.NewMeetingHandler(deps.Agent)
	search := handlers.NewSearchHandler(deps.Agent)
	screen := handlers.NewScreenHandler(deps.Agent)
	system := handlers.NewSystemHandler(deps.Agent)
	index := handlers.NewIndexHandler(deps.Agent)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.Agent))
		r.Post("/initialize", system.Initialize)
		r.Get("/status", system.Status)

		r.Post("/messages/analyze", commitments.Analyze)
		r.Route("/commitments", func(r chi.Router) {
			r.Get("/", commitments.List)
			r.Post("/progress", commitments.CheckProgress)
			r.Post("/{id}/status", commitments.UpdateStatus)
			r.Post("/{id}/snooze", commitments.Snooze)
		})

		r.Route("/meetings", func(r chi.Router) {
			r.Get("/", meetings.History)
			r.Post("/start", meetings.Start)
			r.Post("/stop", meetings.Stop)
			r.Post("/transcript", meetings.Transcript)
		})

		r.Route("/search", func(r chi.Router) {
			r.Get("/", search.Enhanced)
			r.Get("/semantic", search.Semantic)
			r.Get("/hybrid", search.Hybrid)
			r.Get("/global", search.Global)
			r.Get("/type", search.ByType)
			r.Get("/commitments", search.Commitments)
			r.Get("/meetings", search.Meetings)
			r.Get("/clipboard", search.Clipboard)
		})

		r.Route("/screen", func(r chi.Router) {
			r.Post("/start", screen.Start)
			r.Post("/stop", screen.Stop)
			r.Get("/unresponded", screen.Unresponded)
		})

		r.Route("/index", func(r chi.Router) {
			r.Post("/reindex", index.Reindex)
			r.Get("/coverage", index.Coverage)
		})
	})

	return r
}
