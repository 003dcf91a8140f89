package dto

import (
	"database/sql"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sulthanallaudeen/priya-task/internal/api/validation"
	"github.com/sulthanallaudeen/priya-task/internal/database/models"
	"github.com/sulthanallaudeen/priya-task/internal/tasks"
)

type CreateTaskRequest struct {
	Title            string     `json:"title"`
	Description      NullString `json:"description"`
	Priority         string     `json:"priority"`
	DueDate          NullString `json:"due_date"`
	StatusID         string     `json:"status_id"`
	AssignedToUserID string     `json:"assigned_to_user_id"`
}

func (r CreateTaskRequest) Validate() map[string]string {
	errors := make(map[string]string)

	title := strings.TrimSpace(r.Title)
	if title == "" {
		errors["title"] = "Title is required"
	} else if utf8.RuneCountInString(title) > 120 {
		errors["title"] = "Title must be at most 120 characters"
	}

	if r.Description.Valid && utf8.RuneCountInString(r.Description.Value) > 2000 {
		errors["description"] = "Description must be at most 2000 characters"
	}

	if r.Priority != "" && !models.Priority(r.Priority).Valid() {
		errors["priority"] = "Priority must be one of: low, medium, high"
	}

	if r.DueDate.Valid && !validation.IsValidDate(r.DueDate.Value) {
		errors["due_date"] = "Due date must be a date in YYYY-MM-DD format"
	}

	if r.StatusID != "" && !validation.IsValidUUID(r.StatusID) {
		errors["status_id"] = "Invalid status ID format"
	}

	if r.AssignedToUserID != "" && !validation.IsValidUUID(r.AssignedToUserID) {
		errors["assigned_to_user_id"] = "Invalid user ID format"
	}

	return errors
}

// ToInput converts a validated request into the service input.
func (r CreateTaskRequest) ToInput() tasks.CreateInput {
	in := tasks.CreateInput{
		Title:    strings.TrimSpace(r.Title),
		Priority: models.Priority(r.Priority),
	}

	if r.Description.Valid {
		if desc := strings.TrimSpace(r.Description.Value); desc != "" {
			in.Description = &desc
		}
	}
	if r.DueDate.Valid {
		if due, ok := ParseDate(r.DueDate.Value); ok {
			in.DueDate = &due
		}
	}
	if r.StatusID != "" {
		in.StatusID, _ = uuid.Parse(r.StatusID)
	}
	if r.AssignedToUserID != "" {
		in.AssignedToUserID, _ = uuid.Parse(r.AssignedToUserID)
	}

	return in
}

type UpdateTaskRequest struct {
	Title            *string    `json:"title"`
	Description      NullString `json:"description"`
	Priority         *string    `json:"priority"`
	DueDate          NullString `json:"due_date"`
	StatusID         *string    `json:"status_id"`
	AssignedToUserID *string    `json:"assigned_to_user_id"`
}

func (r UpdateTaskRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			errors["title"] = "Title must be a non-empty string"
		} else if utf8.RuneCountInString(title) > 120 {
			errors["title"] = "Title must be at most 120 characters"
		}
	}

	if r.Description.Valid && utf8.RuneCountInString(r.Description.Value) > 2000 {
		errors["description"] = "Description must be at most 2000 characters"
	}

	if r.Priority != nil && !models.Priority(*r.Priority).Valid() {
		errors["priority"] = "Priority must be one of: low, medium, high"
	}

	if r.DueDate.Set && r.DueDate.Valid && !validation.IsValidDate(r.DueDate.Value) {
		errors["due_date"] = "Due date must be null or a date in YYYY-MM-DD format"
	}

	if r.StatusID != nil && !validation.IsValidUUID(*r.StatusID) {
		errors["status_id"] = "Invalid status ID format"
	}

	if r.AssignedToUserID != nil && !validation.IsValidUUID(*r.AssignedToUserID) {
		errors["assigned_to_user_id"] = "Invalid user ID format"
	}

	return errors
}

// ToInput converts a validated patch. Absent fields stay nil so the
// service leaves them untouched; explicit nulls clear the field.
func (r UpdateTaskRequest) ToInput() tasks.UpdateInput {
	var in tasks.UpdateInput

	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		in.Title = &title
	}
	if r.Description.Set {
		desc := sql.NullString{}
		if r.Description.Valid {
			if trimmed := strings.TrimSpace(r.Description.Value); trimmed != "" {
				desc = sql.NullString{String: trimmed, Valid: true}
			}
		}
		in.Description = &desc
	}
	if r.Priority != nil {
		priority := models.Priority(*r.Priority)
		in.Priority = &priority
	}
	if r.DueDate.Set {
		due := sql.NullTime{}
		if r.DueDate.Valid {
			if t, ok := ParseDate(r.DueDate.Value); ok {
				due = sql.NullTime{Time: t, Valid: true}
			}
		}
		in.DueDate = &due
	}
	if r.StatusID != nil {
		if id, err := uuid.Parse(*r.StatusID); err == nil {
			in.StatusID = &id
		}
	}
	if r.AssignedToUserID != nil {
		if id, err := uuid.Parse(*r.AssignedToUserID); err == nil {
			in.AssignedToUserID = &id
		}
	}

	return in
}

type TaskResponse struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Description        *string `json:"description"`
	Priority           string  `json:"priority"`
	DueDate            *string `json:"due_date"`
	StatusID           string  `json:"status_id"`
	StatusName         string  `json:"status_name,omitempty"`
	AssignedToUserID   string  `json:"assigned_to_user_id"`
	AssignedToUserName string  `json:"assigned_to_user_name,omitempty"`
	CreatedByUserID    string  `json:"created_by_user_id"`
	CreatedByUserName  string  `json:"created_by_user_name,omitempty"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

func TaskToResponse(task *models.Task) TaskResponse {
	resp := TaskResponse{
		ID:               task.ID.String(),
		Title:            task.Title,
		Description:      task.Description,
		Priority:         string(task.Priority),
		StatusID:         task.StatusID.String(),
		AssignedToUserID: task.AssignedToUserID.String(),
		CreatedByUserID:  task.CreatedByUserID.String(),
		CreatedAt:        task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        task.UpdatedAt.Format(time.RFC3339),
	}
	if task.DueDate != nil {
		due := FormatDate(*task.DueDate)
		resp.DueDate = &due
	}
	if task.Status != nil {
		resp.StatusName = task.Status.Name
	}
	if task.Assignee != nil {
		resp.AssignedToUserName = task.Assignee.FullName
	}
	if task.Creator != nil {
		resp.CreatedByUserName = task.Creator.FullName
	}
	return resp
}

type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
