package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sulthanallaudeen/priya-task/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNoFields     = errors.New("no fields provided for update")
	ErrLastAdmin    = errors.New("at least one active admin is required")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

const (
	defaultLimit = 10
	maxLimit     = 50
)

type ListInput struct {
	Search string
	Page   int
	Limit  int
}

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
}

// ListedUser is a directory row: the user plus the count of tasks
// currently assigned to them.
type ListedUser struct {
	models.User
	TaskCount int64 `json:"task_count"`
}

type ListResult struct {
	Users []ListedUser
	Total int64
	Page  int
	Limit int
}

// List searches users by substring over full name or email and annotates
// each row with its assigned-task count.
func (s *Service) List(ctx context.Context, in ListInput) (*ListResult, error) {
	in.Normalize()

	base := s.db.WithContext(ctx).Model(&models.User{})
	if in.Search != "" {
		pattern := "%" + in.Search + "%"
		base = base.Where("LOWER(full_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []ListedUser
	if err := base.
		Select("users.*, COUNT(tasks.id) AS task_count").
		Joins("LEFT JOIN tasks ON tasks.assigned_to_user_id = users.id").
		Group("users.id").
		Order("users.created_at DESC").
		Offset((in.Page - 1) * in.Limit).
		Limit(in.Limit).
		Find(&items).Error; err != nil {
		return nil, err
	}

	return &ListResult{Users: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateInput patches role and/or activity. Nil fields stay untouched.
type UpdateInput struct {
	Role     *models.Role
	IsActive *bool
}

// Update applies an admin mutation to a user, guarding the invariant that
// the set of active admins never empties. Both the admin count and the
// write happen in one transaction so concurrent demotions cannot race past
// the check. The guard covers only role demotion and deactivation.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*models.User, error) {
	if in.Role == nil && in.IsActive == nil {
		return nil, ErrNoFields
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		demoting := in.Role != nil && *in.Role == models.RoleUser && user.Role == models.RoleAdmin
		deactivating := in.IsActive != nil && !*in.IsActive && user.Role == models.RoleAdmin

		if (demoting || deactivating) && user.IsActive {
			count, err := countActiveAdmins(tx)
			if err != nil {
				return err
			}
			if count <= 1 {
				return ErrLastAdmin
			}
		}

		updates := map[string]interface{}{}
		if in.Role != nil {
			updates["role"] = *in.Role
		}
		if in.IsActive != nil {
			updates["is_active"] = *in.IsActive
		}

		return tx.Model(&user).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Service) CountActiveAdmins(ctx context.Context) (int64, error) {
	return countActiveAdmins(s.db.WithContext(ctx))
}

func countActiveAdmins(tx *gorm.DB) (int64, error) {
	var count int64
	err := tx.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleAdmin, true).
		Count(&count).Error
	return count, err
}
