package models

// TaskStatus is a named stage in the admin-managed status set.
// Name uniqueness is case-insensitive, enforced at the service layer
// inside a transaction.
type TaskStatus struct {
	Base
	Name string `gorm:"not null" json:"name"`
}

func (TaskStatus) TableName() string {
	return "task_statuses"
}
