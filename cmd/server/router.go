package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/mesto-api/internal/api"
	apiMiddleware "github.com/phrazzld/mesto-api/internal/api/middleware"
)

// setupRouter registers every route and the middleware chain. Everything
// except signup, signin and the health check requires a bearer token.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(apiMiddleware.Recoverer)
	r.Use(middleware.Timeout(app.config.Server.RequestTimeout()))

	// Set before any sub-router so they inherit the JSON 404.
	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.NotFound)

	var pinger api.Pinger
	if app.db != nil {
		pinger = app.db
	}

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	cardHandler := api.NewCardHandler(app.cardService, app.logger)
	healthHandler := api.NewHealthHandler(pinger, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Post("/signup", authHandler.Signup)
	r.Post("/signin", authHandler.Signin)
	r.Get("/health", healthHandler.Health)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.ListUsers)
			r.Get("/me", userHandler.GetCurrentUser)
			r.Patch("/me", userHandler.UpdateProfile)
			r.Patch("/me/avatar", userHandler.UpdateAvatar)
			r.Get("/{userId}", userHandler.GetUser)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.ListCards)
			r.Post("/", cardHandler.CreateCard)
			r.Delete("/{cardId}", cardHandler.DeleteCard)
			r.Put("/{cardId}/likes", cardHandler.LikeCard)
			r.Delete("/{cardId}/likes", cardHandler.UnlikeCard)
		})
	})

	return r
}
