package statuses

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sulthanallaudeen/priya-task/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrStatusNotFound = errors.New("status not found")
	ErrNameTaken      = errors.New("status name already exists")
	ErrStatusInUse    = errors.New("status is assigned to tasks")
	ErrNoStatuses     = errors.New("no statuses exist")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns the full status set ordered by id ascending. The set is
// small by construction, so there is no pagination.
func (s *Service) List(ctx context.Context) ([]models.TaskStatus, error) {
	var statuses []models.TaskStatus
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.TaskStatus, error) {
	var status models.TaskStatus
	if err := s.db.WithContext(ctx).First(&status, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, err
	}
	return &status, nil
}

func (s *Service) Create(ctx context.Context, name string) (*models.TaskStatus, error) {
	status := models.TaskStatus{Name: name}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, name, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return ErrNameTaken
		}
		return tx.Create(&status).Error
	})
	if err != nil {
		return nil, err
	}

	return &status, nil
}

func (s *Service) Rename(ctx context.Context, id uuid.UUID, name string) (*models.TaskStatus, error) {
	var status models.TaskStatus

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&status, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStatusNotFound
			}
			return err
		}

		taken, err := nameTaken(tx, name, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrNameTaken
		}

		status.Name = name
		return tx.Save(&status).Error
	})
	if err != nil {
		return nil, err
	}

	return &status, nil
}

// Delete removes a status unless any task still references it. The
// referential count runs in the same transaction as the delete so a
// concurrent task creation cannot slip between check and write.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var status models.TaskStatus
		if err := tx.First(&status, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStatusNotFound
			}
			return err
		}

		var inUse int64
		if err := tx.Model(&models.Task{}).Where("status_id = ?", id).Count(&inUse).Error; err != nil {
			return err
		}
		if inUse > 0 {
			return ErrStatusInUse
		}

		return tx.Delete(&status).Error
	})
}

// DefaultStatusID is the lowest status id, used when task creation omits
// one. Task creation must fail when the set is empty.
func (s *Service) DefaultStatusID(ctx context.Context) (uuid.UUID, error) {
	var status models.TaskStatus
	if err := s.db.WithContext(ctx).Order("id ASC").First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrNoStatuses
		}
		return uuid.Nil, err
	}
	return status.ID, nil
}

func nameTaken(tx *gorm.DB, name string, excludeID uuid.UUID) (bool, error) {
	query := tx.Model(&models.TaskStatus{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
