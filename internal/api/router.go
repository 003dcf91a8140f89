package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sulthanallaudeen/priya-task/internal/api/handlers"
	"github.com/sulthanallaudeen/priya-task/internal/api/middleware"
	"github.com/sulthanallaudeen/priya-task/internal/auth"
	"github.com/sulthanallaudeen/priya-task/internal/statuses"
	"github.com/sulthanallaudeen/priya-task/internal/tasks"
	"github.com/sulthanallaudeen/priya-task/internal/users"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Logger         *slog.Logger
	AuthService    *auth.Service
	StatusService  *statuses.Service
	TaskService    *tasks.Service
	UserService    *users.Service
	AllowedOrigins []string // CORS allowed origins
	RateLimitReqs  int      // Rate limit requests per window
	RateLimitSecs  int      // Rate limit window in seconds
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Rate limiting - applied globally to prevent abuse
	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	// CORS - restrict to configured origins, or allow localhost in development
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	authHandler := handlers.NewAuthHandler(cfg.AuthService, cfg.Logger)
	statusHandler := handlers.NewStatusHandler(cfg.StatusService)
	taskHandler := handlers.NewTaskHandler(cfg.TaskService)
	userHandler := handlers.NewUserHandler(cfg.UserService, cfg.TaskService)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.AuthService))

			r.Get("/auth/me", authHandler.Me)
			r.Post("/auth/logout", authHandler.Logout)

			// Task endpoints
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Post("/", taskHandler.Create)
				r.Get("/{id}", taskHandler.Get)
				r.Patch("/{id}", taskHandler.Update)
				r.Delete("/{id}", taskHandler.Delete)
			})

			// Status catalog is readable by everyone signed in
			r.Get("/statuses", statusHandler.List)

			// Admin-only endpoints
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Post("/statuses", statusHandler.Create)
				r.Patch("/statuses/{id}", statusHandler.Rename)
				r.Delete("/statuses/{id}", statusHandler.Delete)

				r.Route("/users", func(r chi.Router) {
					r.Get("/", userHandler.List)
					r.Patch("/{id}", userHandler.Update)
					r.Get("/{id}/tasks", userHandler.Tasks)
				})
			})
		})
	})

	return &Router{r}
}
