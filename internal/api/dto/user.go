package dto

import (
	"github.com/sulthanallaudeen/priya-task/internal/database/models"
	"github.com/sulthanallaudeen/priya-task/internal/users"
)

type UpdateUserRequest struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

func (r UpdateUserRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Role != nil && !models.Role(*r.Role).Valid() {
		errors["role"] = "Role must be one of: admin, user"
	}

	return errors
}

func (r UpdateUserRequest) ToInput() users.UpdateInput {
	var in users.UpdateInput
	if r.Role != nil {
		role := models.Role(*r.Role)
		in.Role = &role
	}
	in.IsActive = r.IsActive
	return in
}

// ListedUserDTO is a directory entry with its assigned-task count.
type ListedUserDTO struct {
	UserDTO
	TaskCount int64 `json:"task_count"`
}

func ListedUserToDTO(item *users.ListedUser) ListedUserDTO {
	return ListedUserDTO{
		UserDTO:   UserToDTO(&item.User),
		TaskCount: item.TaskCount,
	}
}

type UserListResponse struct {
	Users []ListedUserDTO `json:"users"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
