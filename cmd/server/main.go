package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sulthanallaudeen/priya-task/internal/api"
	"github.com/sulthanallaudeen/priya-task/internal/auth"
	"github.com/sulthanallaudeen/priya-task/internal/database"
	"github.com/sulthanallaudeen/priya-task/internal/statuses"
	"github.com/sulthanallaudeen/priya-task/internal/tasks"
	"github.com/sulthanallaudeen/priya-task/internal/users"
	"github.com/sulthanallaudeen/priya-task/pkg/config"
	"github.com/sulthanallaudeen/priya-task/pkg/util"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(&cfg.Server)
	slog.SetDefault(logger)

	logger.Info("starting task manager server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
	)

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize services
	authService := auth.NewService(db, cfg.Auth.SessionTTL())
	statusService := statuses.NewService(db)
	taskService := tasks.NewService(db, statusService)
	userService := users.NewService(db)

	// Ensure at least one active admin exists before serving traffic
	admin, err := userService.EnsureSeedAdmin(context.Background(), cfg.AdminSeed)
	if err != nil {
		logger.Error("failed to bootstrap admin account", "error", err)
		os.Exit(1)
	}
	logger.Info("admin account ready", "email", admin.Email)

	// Create router
	router := api.NewRouter(api.RouterConfig{
		DB:             db,
		Logger:         logger,
		AuthService:    authService,
		StatusService:  statusService,
		TaskService:    taskService,
		UserService:    userService,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimitReqs:  cfg.RateLimit.Requests,
		RateLimitSecs:  cfg.RateLimit.WindowSeconds,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	// Close database connection
	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("server stopped")
}
