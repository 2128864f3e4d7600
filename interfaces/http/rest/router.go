// Package rest wires the HTTP surface over the engine services.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"crcl-backend/infrastructure/di"
	"crcl-backend/interfaces/http/rest/handlers"
	"crcl-backend/interfaces/http/rest/middleware"
	"crcl-backend/pkg/auth"
	"crcl-backend/pkg/common"
	pkgerrors "crcl-backend/pkg/errors"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
	validator *auth.JWTValidator
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container, validator *auth.JWTValidator, logger *zap.Logger) *Router {
	return &Router{
		container: container,
		validator: validator,
		logger:    logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	cfg := rt.container.Config
	if cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	errs := pkgerrors.NewErrorHandler(rt.logger, cfg.IsDevelopment())
	router.Use(errs.Middleware)

	authHandler := handlers.NewAuthHandler(rt.container.Identity, rt.container.Repositories.Users, rt.container.Repositories.Circles, rt.container.Scorer, errs, rt.logger)
	profileHandler := handlers.NewProfileHandler(rt.container.Repositories.Users, errs, rt.logger)
	circleHandler := handlers.NewCircleHandler(rt.container.CircleGraph, rt.container.Repositories.Users, rt.container.Repositories.Trust, errs, rt.logger)
	contentHandler := handlers.NewContentHandler(rt.container.Repositories.Content, rt.container.CircleGraph, rt.container.Scorer, errs, rt.logger)
	feedHandler := handlers.NewFeedHandler(rt.container.Composer, errs, rt.logger)

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.validator, rt.logger))

			r.Get("/auth/me", authHandler.Me)
			r.Put("/profile", profileHandler.Update)

			r.Put("/circles/{circleName}/members/{memberID}", circleHandler.AddMember)
			r.Delete("/circles/{circleName}/members/{memberID}", circleHandler.RemoveMember)
			r.Put("/trust/{authorID}", circleHandler.SetTrust)

			r.Post("/recommendations", contentHandler.CreateRecommendation)
			r.Post("/questions", contentHandler.CreateQuestion)
			r.Post("/content/{contentID}/like", contentHandler.Like)
			r.Post("/content/{contentID}/reply", contentHandler.Reply)

			r.Get("/feed", feedHandler.Get)
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
