package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"recallr/internal/auth"
	"recallr/internal/handlers"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Verifier    auth.Verifier
	Health      *handlers.HealthHandler
	Save        *handlers.SaveHandler
	Search      *handlers.SearchHandler
	Quota       *handlers.QuotaHandler
	Items       *handlers.ItemsHandler
	Collections *handlers.CollectionsHandler
	Reminders   *handlers.RemindersHandler
	Export      *handlers.ExportHandler
	Chat        *handlers.ChatHandler
}

// NewRouter creates a new HTTP router with the provided dependencies.
// Everything under /api requires a verified bearer credential.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	r.Method(http.MethodGet, "/health", deps.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(Auth(deps.Verifier))

		r.Method(http.MethodPost, "/save", deps.Save)
		r.Method(http.MethodGet, "/search", deps.Search)
		r.Method(http.MethodGet, "/quota", deps.Quota)
		r.Method(http.MethodPost, "/chat", deps.Chat)

		r.Delete("/delete/{id}", deps.Items.Delete)
		r.Put("/update/{id}", deps.Items.Update)

		r.Route("/collections", func(r chi.Router) {
			r.Get("/", deps.Collections.List)
			r.Post("/", deps.Collections.Create)
			r.Put("/{id}", deps.Collections.Update)
			r.Delete("/{id}", deps.Collections.Delete)
			r.Post("/{id}/items", deps.Collections.AddItem)
			r.Delete("/{id}/items/{itemId}", deps.Collections.RemoveItem)
		})

		r.Route("/reminders", func(r chi.Router) {
			r.Get("/", deps.Reminders.Due)
			r.Get("/stats", deps.Reminders.Stats)
			r.Post("/mark-read/{itemId}", deps.Reminders.MarkRead)
		})

		r.Get("/export/{format}", deps.Export.ServeHTTP)
	})

	return r
}
