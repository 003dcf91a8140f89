package tasks

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sulthanallaudeen/priya-task/internal/auth"
	"github.com/sulthanallaudeen/priya-task/internal/database/models"
	"github.com/sulthanallaudeen/priya-task/internal/statuses"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrAccessDenied     = errors.New("access to task denied")
	ErrAssignmentDenied = errors.New("non-admins can only assign tasks to themselves")
	ErrAssigneeInvalid  = errors.New("assigned user is invalid or inactive")
	ErrStatusInvalid    = errors.New("status does not exist")
	ErrNoFields         = errors.New("no fields provided for update")
)

type Service struct {
	db       *gorm.DB
	statuses *statuses.Service
}

func NewService(db *gorm.DB, statusService *statuses.Service) *Service {
	return &Service{db: db, statuses: statusService}
}

const (
	defaultLimit = 5
	maxLimit     = 50
)

// sortColumns whitelists caller-selectable sort keys.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"dueDate":   "due_date",
	"title":     "title",
	"priority":  "priority",
}

type ListInput struct {
	Search           string
	StatusID         uuid.UUID // Nil means no filter
	Priority         models.Priority
	AssignedToUserID uuid.UUID // admins only; forced for non-admins
	SortBy           string
	Order            string
	Page             int
	Limit            int
}

// Normalize clamps pagination and falls back to createdAt DESC for
// unknown sort keys.
func (in *ListInput) Normalize() {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = defaultLimit
	}
	if in.Limit > maxLimit {
		in.Limit = maxLimit
	}
	if _, ok := sortColumns[in.SortBy]; !ok {
		in.SortBy = "createdAt"
	}
	if in.Order != "ASC" {
		in.Order = "DESC"
	}
}

type ListResult struct {
	Tasks []models.Task
	Total int64
	Page  int
	Limit int
}

// List builds a scoped, filtered, paginated view. Non-admins are always
// restricted to their own assigned tasks, whatever assignee filter they
// pass; Total counts everything matching filters and scope, ignoring
// pagination.
func (s *Service) List(ctx context.Context, in ListInput, principal *models.User) (*ListResult, error) {
	in.Normalize()

	query := s.db.WithContext(ctx).Model(&models.Task{})

	if !auth.IsAdmin(principal) {
		query = query.Where("assigned_to_user_id = ?", principal.ID)
	} else if in.AssignedToUserID != uuid.Nil {
		query = query.Where("assigned_to_user_id = ?", in.AssignedToUserID)
	}

	if in.StatusID != uuid.Nil {
		query = query.Where("status_id = ?", in.StatusID)
	}
	if in.Priority != "" {
		query = query.Where("priority = ?", in.Priority)
	}
	if in.Search != "" {
		pattern := "%" + in.Search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []models.Task
	if err := query.
		Preload("Status").Preload("Assignee").Preload("Creator").
		Order(sortColumns[in.SortBy] + " " + in.Order).
		Offset((in.Page - 1) * in.Limit).
		Limit(in.Limit).
		Find(&items).Error; err != nil {
		return nil, err
	}

	return &ListResult{Tasks: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).
		Preload("Status").Preload("Assignee").Preload("Creator").
		First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

type CreateInput struct {
	Title            string
	Description      *string
	Priority         models.Priority // empty defaults to medium
	DueDate          *time.Time
	StatusID         uuid.UUID // Nil defaults to the lowest-id status
	AssignedToUserID uuid.UUID // Nil defaults to the principal
}

// Create inserts a task on behalf of the principal. The creator is always
// the principal and never changes afterwards.
func (s *Service) Create(ctx context.Context, in CreateInput, principal *models.User) (*models.Task, error) {
	statusID := in.StatusID
	if statusID == uuid.Nil {
		var err error
		statusID, err = s.statuses.DefaultStatusID(ctx)
		if err != nil {
			if errors.Is(err, statuses.ErrNoStatuses) {
				return nil, ErrStatusInvalid
			}
			return nil, err
		}
	} else if _, err := s.statuses.Get(ctx, statusID); err != nil {
		if errors.Is(err, statuses.ErrStatusNotFound) {
			return nil, ErrStatusInvalid
		}
		return nil, err
	}

	assigneeID := in.AssignedToUserID
	if assigneeID == uuid.Nil {
		assigneeID = principal.ID
	}
	if !auth.CanAssign(principal, assigneeID) {
		return nil, ErrAssignmentDenied
	}
	if err := s.checkAssignee(ctx, assigneeID); err != nil {
		return nil, err
	}

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := models.Task{
		Title:            in.Title,
		Description:      in.Description,
		Priority:         priority,
		DueDate:          in.DueDate,
		StatusID:         statusID,
		AssignedToUserID: assigneeID,
		CreatedByUserID:  principal.ID,
	}
	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}

	return s.Get(ctx, task.ID)
}

// UpdateInput is an explicit patch: a nil field was absent from the request
// and stays untouched. Description and DueDate use sql.Null* so that
// present-and-null (clear the field) is distinct from absent.
type UpdateInput struct {
	Title            *string
	Description      *sql.NullString
	Priority         *models.Priority
	DueDate          *sql.NullTime
	StatusID         *uuid.UUID
	AssignedToUserID *uuid.UUID
}

func (in *UpdateInput) empty() bool {
	return in.Title == nil &&
		in.Description == nil &&
		in.Priority == nil &&
		in.DueDate == nil &&
		in.StatusID == nil &&
		in.AssignedToUserID == nil
}

// Update applies a partial update. Access control is evaluated against the
// record's current assignee, not anything the caller asserts, and the
// status/assignee rules re-apply only to fields present in the patch.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput, principal *models.User) (*models.Task, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccessTask(principal, existing) {
		return nil, ErrAccessDenied
	}
	if in.empty() {
		return nil, ErrNoFields
	}

	if in.StatusID != nil {
		if _, err := s.statuses.Get(ctx, *in.StatusID); err != nil {
			if errors.Is(err, statuses.ErrStatusNotFound) {
				return nil, ErrStatusInvalid
			}
			return nil, err
		}
	}

	if in.AssignedToUserID != nil {
		if !auth.CanAssign(principal, *in.AssignedToUserID) {
			return nil, ErrAssignmentDenied
		}
		if err := s.checkAssignee(ctx, *in.AssignedToUserID); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		if in.Description.Valid {
			updates["description"] = in.Description.String
		} else {
			updates["description"] = nil
		}
	}
	if in.Priority != nil {
		updates["priority"] = *in.Priority
	}
	if in.DueDate != nil {
		if in.DueDate.Valid {
			updates["due_date"] = in.DueDate.Time
		} else {
			updates["due_date"] = nil
		}
	}
	if in.StatusID != nil {
		updates["status_id"] = *in.StatusID
	}
	if in.AssignedToUserID != nil {
		updates["assigned_to_user_id"] = *in.AssignedToUserID
	}

	if err := s.db.WithContext(ctx).Model(existing).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete hard-deletes a task the principal can access.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, principal *models.User) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanAccessTask(principal, existing) {
		return ErrAccessDenied
	}
	return s.db.WithContext(ctx).Delete(&models.Task{}, "id = ?", id).Error
}

func (s *Service) checkAssignee(ctx context.Context, userID uuid.UUID) error {
	var assignee models.User
	if err := s.db.WithContext(ctx).First(&assignee, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeInvalid
		}
		return err
	}
	if !assignee.IsActive {
		return ErrAssigneeInvalid
	}
	return nil
}
