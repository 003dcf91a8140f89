package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sulthanallaudeen/priya-task/internal/api/dto"
	"github.com/sulthanallaudeen/priya-task/internal/api/middleware"
	"github.com/sulthanallaudeen/priya-task/internal/tasks"
	"github.com/sulthanallaudeen/priya-task/internal/users"
)

type UserHandler struct {
	userService *users.Service
	taskService *tasks.Service
}

func NewUserHandler(userService *users.Service, taskService *tasks.Service) *UserHandler {
	return &UserHandler{userService: userService, taskService: taskService}
}

// List handles GET /api/v1/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	in := users.ListInput{Search: query.Get("q")}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		in.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		in.Limit = limit
	}

	result, err := h.userService.List(r.Context(), in)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list users"})
		return
	}

	resp := dto.UserListResponse{
		Users: make([]dto.ListedUserDTO, len(result.Users)),
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	}
	for i := range result.Users {
		resp.Users[i] = dto.ListedUserToDTO(&result.Users[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update handles PATCH /api/v1/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	user, err := h.userService.Update(r.Context(), id, req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
		case errors.Is(err, users.ErrNoFields):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "No fields provided for update"})
		case errors.Is(err, users.ErrLastAdmin):
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "At least one active admin is required"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update user"})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]dto.UserDTO{"user": dto.UserToDTO(user)})
}

// Tasks handles GET /api/v1/users/{id}/tasks. It answers the question
// "what is on this person's plate" with the same filter and pagination
// surface as the main task listing, pinned to the one assignee.
func (h *UserHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	if _, err := h.userService.Get(r.Context(), id); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to load user"})
		return
	}

	in := parseTaskFilters(r.URL.Query())
	in.AssignedToUserID = id

	result, err := h.taskService.List(r.Context(), in, principal)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list tasks"})
		return
	}

	writeJSON(w, http.StatusOK, taskListToResponse(result))
}
