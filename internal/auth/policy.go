package auth

import (
	"github.com/google/uuid"
	"github.com/sulthanallaudeen/priya-task/internal/database/models"
)

// Access policy: pure decision functions, no store round trips. Handlers
// evaluate these against the record as currently persisted, never against
// caller-supplied assignments.

func IsAdmin(principal *models.User) bool {
	return principal != nil && principal.Role == models.RoleAdmin
}

// CanAccessTask reports whether the principal may observe or mutate the
// task: admins always, everyone else only their own assigned tasks.
func CanAccessTask(principal *models.User, task *models.Task) bool {
	if principal == nil || task == nil {
		return false
	}
	if principal.Role == models.RoleAdmin {
		return true
	}
	return task.AssignedToUserID == principal.ID
}

// CanAssign reports whether the principal may assign a task to the target
// user. Non-admins may only self-assign.
func CanAssign(principal *models.User, targetUserID uuid.UUID) bool {
	if principal == nil {
		return false
	}
	if principal.Role == models.RoleAdmin {
		return true
	}
	return targetUserID == principal.ID
}
