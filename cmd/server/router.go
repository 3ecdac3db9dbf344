package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/parla-app/parla-api/internal/api"
	apimiddleware "github.com/parla-app/parla-api/internal/api/middleware"
)

// setupRouter configures all routes and middleware for the server.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.config.Auth,
	)
	vocabularyHandler := api.NewVocabularyHandler(
		app.vocabularyService,
		app.practiceService,
		app.exampleGenerator,
	)
	practiceHandler := api.NewPracticeHandler(app.practiceService)
	achievementHandler := api.NewAchievementHandler(app.achievementStore)

	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Public authentication endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Vocabulary pool management
			r.Get("/vocabulary", vocabularyHandler.List)
			r.Post("/vocabulary", vocabularyHandler.Create)
			r.Get("/vocabulary/stats", vocabularyHandler.Stats)
			r.Get("/vocabulary/recommended", vocabularyHandler.Recommended)
			r.Get("/vocabulary/{id}", vocabularyHandler.Get)
			r.Put("/vocabulary/{id}", vocabularyHandler.Update)
			r.Delete("/vocabulary/{id}", vocabularyHandler.Delete)
			r.Post("/vocabulary/{id}/example", vocabularyHandler.GenerateExample)

			// Practice sessions
			r.Get("/practice/batch", practiceHandler.Batch)
			r.Post("/practice/{id}/answer", practiceHandler.Answer)
			r.Get("/practice/{id}/due", practiceHandler.NextDue)

			// Earned achievements
			r.Get("/achievements", achievementHandler.List)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
