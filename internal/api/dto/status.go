package dto

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sulthanallaudeen/priya-task/internal/database/models"
)

type StatusRequest struct {
	Name string `json:"name"`
}

func (r StatusRequest) Validate() map[string]string {
	errors := make(map[string]string)

	name := strings.TrimSpace(r.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 40 {
		errors["name"] = "Name must be between 2 and 40 characters"
	}

	return errors
}

type StatusResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func StatusToResponse(status *models.TaskStatus) StatusResponse {
	return StatusResponse{
		ID:        status.ID.String(),
		Name:      status.Name,
		CreatedAt: status.CreatedAt.Format(time.RFC3339),
		UpdatedAt: status.UpdatedAt.Format(time.RFC3339),
	}
}

type StatusListResponse struct {
	Statuses []StatusResponse `json:"statuses"`
}
