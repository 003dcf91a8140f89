//go:build ignore

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sulthanallaudeen/priya-task/internal/auth"
	"github.com/sulthanallaudeen/priya-task/internal/database"
	"github.com/sulthanallaudeen/priya-task/internal/database/models"
	"github.com/sulthanallaudeen/priya-task/internal/statuses"
	"github.com/sulthanallaudeen/priya-task/internal/tasks"
	"github.com/sulthanallaudeen/priya-task/internal/users"
	"github.com/sulthanallaudeen/priya-task/pkg/config"
	"github.com/sulthanallaudeen/priya-task/pkg/util"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(&cfg.Server)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	ctx := context.Background()

	authService := auth.NewService(db, cfg.Auth.SessionTTL())
	statusService := statuses.NewService(db)
	taskService := tasks.NewService(db, statusService)
	userService := users.NewService(db)

	admin, err := userService.EnsureSeedAdmin(ctx, cfg.AdminSeed)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("Admin: %s\n", admin.Email)

	for _, name := range []string{"To Do", "In Progress", "Done"} {
		if _, err := statusService.Create(ctx, name); err != nil {
			if errors.Is(err, statuses.ErrNameTaken) {
				continue
			}
			log.Fatalf("failed to seed status %q: %v", name, err)
		}
		fmt.Printf("Status: %s\n", name)
	}

	demo := []auth.RegisterInput{
		{FullName: "Priya Raman", Email: "priya@ptm.com", Password: "Priya@123"},
		{FullName: "Arun Kumar", Email: "arun@ptm.com", Password: "Arun@1234"},
	}
	for _, input := range demo {
		resp, err := authService.Register(ctx, input)
		if err != nil {
			if errors.Is(err, auth.ErrEmailTaken) {
				continue
			}
			log.Fatalf("failed to seed user %s: %v", input.Email, err)
		}

		due := time.Now().AddDate(0, 0, 7)
		if _, err := taskService.Create(ctx, tasks.CreateInput{
			Title:    fmt.Sprintf("Onboarding checklist for %s", resp.User.FullName),
			Priority: models.PriorityMedium,
			DueDate:  &due,
		}, resp.User); err != nil {
			log.Fatalf("failed to seed task for %s: %v", input.Email, err)
		}
		fmt.Printf("User: %s (with starter task)\n", resp.User.Email)
	}

	fmt.Println("Seed complete.")
}
