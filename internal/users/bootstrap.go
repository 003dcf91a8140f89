package users

import (
	"context"
	"errors"

	"github.com/sulthanallaudeen/priya-task/internal/database/models"
	"github.com/sulthanallaudeen/priya-task/pkg/config"
	"github.com/sulthanallaudeen/priya-task/pkg/crypto"
	"gorm.io/gorm"
)

// EnsureSeedAdmin guarantees an active admin exists. It reuses the first
// active admin, then an account matching the configured seed email, and
// only then creates one from the seed credentials. Safe to run on every
// process start.
func (s *Service) EnsureSeedAdmin(ctx context.Context, seed config.AdminSeedConfig) (*models.User, error) {
	var admin models.User
	err := s.db.WithContext(ctx).
		Where("role = ? AND is_active = ?", models.RoleAdmin, true).
		Order("id ASC").
		First(&admin).Error
	if err == nil {
		return &admin, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var existing models.User
	err = s.db.WithContext(ctx).Where("email = ?", seed.Email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := crypto.HashPassword(seed.Password)
	if err != nil {
		return nil, err
	}

	created := models.User{
		FullName:     seed.FullName,
		Email:        seed.Email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, err
	}

	return &created, nil
}
