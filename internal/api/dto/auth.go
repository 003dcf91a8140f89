package dto

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sulthanallaudeen/priya-task/internal/api/validation"
	"github.com/sulthanallaudeen/priya-task/internal/database/models"
)

type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims the name and lowercases the email so uniqueness checks
// and storage always see the canonical form.
func (r *RegisterRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	// Limits are in characters, not bytes, so multibyte names count fairly.
	if n := utf8.RuneCountInString(r.FullName); n < 2 || n > 120 {
		errors["full_name"] = "Full name must be between 2 and 120 characters"
	}
	if !validation.IsValidEmail(r.Email) {
		errors["email"] = "Email must be a valid email address"
	}
	if n := utf8.RuneCountInString(r.Password); n < 8 || n > 120 {
		errors["password"] = "Password must be between 8 and 120 characters"
	}

	return errors
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if !validation.IsValidEmail(r.Email) {
		errors["email"] = "Email must be a valid email address"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

type AuthResponse struct {
	Token     string  `json:"token"`
	ExpiresAt string  `json:"expires_at"`
	User      UserDTO `json:"user"`
}

type UserDTO struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func UserToDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:        user.ID.String(),
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}
