package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lmtavares/todo-notes-be/internal/api/handlers"
	"github.com/lmtavares/todo-notes-be/internal/auth"
	"github.com/lmtavares/todo-notes-be/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(frontendOrigin string, tokens *auth.Manager, userService services.UserServiceProvider, noteService services.NoteServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for the frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	noteHandler := handlers.NewNoteHandler(noteService)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// Register and login establish identity, they don't assume it.
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)

		// Everything under /notes requires a verified bearer token.
		r.Route("/notes", func(r chi.Router) {
			r.Use(tokens.Middleware())
			r.Get("/", noteHandler.List)
			r.Post("/", noteHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Patch("/", noteHandler.Patch)
				r.Put("/", noteHandler.Replace)
				r.Delete("/", noteHandler.Delete)
			})
		})
	})

	return r
}
