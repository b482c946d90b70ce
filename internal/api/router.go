package api

import (
	"net/http"
	"time"

	"ladder_zone/internal/api/handler"
	"ladder_zone/internal/api/middleware"
	"ladder_zone/internal/app/service"
	"ladder_zone/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	questionService *service.QuestionService,
	ladderService *service.LadderService,
	adminService *service.AdminService,
	judgeService *service.JudgeService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(90 * time.Second))

	// JWT Auth Middleware Setup. Verifier searches for a token in
	// "Authorization: Bearer T" and puts claims in the request context.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public liveness
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello World!"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(authService)
	r.Route("/authen", authHandler.RegisterRoutes)

	// Judge scrape routes (public, same as the historical API)
	judgeHandler := handler.NewJudgeHandler(judgeService)
	r.Route("/api", judgeHandler.RegisterRoutes)

	// Everything below requires a verified token plus a matching
	// X-Username header.
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator)

		userHandler := handler.NewUserHandler(userService)
		userHandler.RegisterRoutes(protected)

		questionHandler := handler.NewQuestionHandler(questionService)
		questionHandler.RegisterRoutes(protected)

		ladderHandler := handler.NewLadderHandler(ladderService)
		ladderHandler.RegisterRoutes(protected)

		adminHandler := handler.NewAdminHandler(adminService)
		protected.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.AdminOnly)
			adminHandler.RegisterRoutes(admin)
		})
	})

	return r
}
