package models

import (
	"time"

	"github.com/google/uuid"
)

// Priority is the closed set of task priorities.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	Base
	Title            string     `gorm:"not null" json:"title"`
	Description      *string    `json:"description"`
	Priority         Priority   `gorm:"type:varchar(16);default:'medium'" json:"priority"`
	DueDate          *time.Time `gorm:"type:date" json:"due_date"`
	StatusID         uuid.UUID  `gorm:"type:uuid;index;not null" json:"status_id"`
	AssignedToUserID uuid.UUID  `gorm:"type:uuid;index;not null" json:"assigned_to_user_id"`
	CreatedByUserID  uuid.UUID  `gorm:"type:uuid;not null" json:"created_by_user_id"`

	Status   *TaskStatus `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Assignee *User       `gorm:"foreignKey:AssignedToUserID" json:"assignee,omitempty"`
	Creator  *User       `gorm:"foreignKey:CreatedByUserID" json:"creator,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}
