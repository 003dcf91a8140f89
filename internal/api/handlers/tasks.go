package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sulthanallaudeen/priya-task/internal/api/dto"
	"github.com/sulthanallaudeen/priya-task/internal/api/middleware"
	"github.com/sulthanallaudeen/priya-task/internal/auth"
	"github.com/sulthanallaudeen/priya-task/internal/database/models"
	"github.com/sulthanallaudeen/priya-task/internal/tasks"
)

type TaskHandler struct {
	taskService *tasks.Service
}

func NewTaskHandler(taskService *tasks.Service) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// parseTaskFilters reads list parameters from the query string. Malformed
// filter values are ignored rather than rejected, matching the lenient
// filter contract; pagination and sorting normalize in the service.
func parseTaskFilters(query url.Values) tasks.ListInput {
	in := tasks.ListInput{
		Search: query.Get("q"),
		SortBy: query.Get("sort_by"),
		Order:  query.Get("order"),
	}

	if id, err := uuid.Parse(query.Get("status_id")); err == nil {
		in.StatusID = id
	}
	if id, err := uuid.Parse(query.Get("assigned_to_user_id")); err == nil {
		in.AssignedToUserID = id
	}
	if priority := models.Priority(query.Get("priority")); priority.Valid() {
		in.Priority = priority
	}
	in.Page, _ = strconv.Atoi(query.Get("page"))
	in.Limit, _ = strconv.Atoi(query.Get("limit"))

	return in
}

func taskListToResponse(result *tasks.ListResult) dto.TaskListResponse {
	items := make([]dto.TaskResponse, len(result.Tasks))
	for i := range result.Tasks {
		items[i] = dto.TaskToResponse(&result.Tasks[i])
	}
	return dto.TaskListResponse{
		Tasks: items,
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	}
}

// List handles GET /api/v1/tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	result, err := h.taskService.List(r.Context(), parseTaskFilters(r.URL.Query()), principal)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list tasks"})
		return
	}

	writeJSON(w, http.StatusOK, taskListToResponse(result))
}

// Get handles GET /api/v1/tasks/{id}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid task ID"})
		return
	}

	task, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, tasks.ErrTaskNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Task not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get task"})
		return
	}

	if !auth.CanAccessTask(principal, task) {
		writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "You do not have access to this task"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]dto.TaskResponse{"task": dto.TaskToResponse(task)})
}

// Create handles POST /api/v1/tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	task, err := h.taskService.Create(r.Context(), req.ToInput(), principal)
	if err != nil {
		h.writeTaskError(w, err, "Failed to create task")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]dto.TaskResponse{"task": dto.TaskToResponse(task)})
}

// Update handles PATCH /api/v1/tasks/{id}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid task ID"})
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	task, err := h.taskService.Update(r.Context(), id, req.ToInput(), principal)
	if err != nil {
		h.writeTaskError(w, err, "Failed to update task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]dto.TaskResponse{"task": dto.TaskToResponse(task)})
}

// Delete handles DELETE /api/v1/tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid task ID"})
		return
	}

	if err := h.taskService.Delete(r.Context(), id, principal); err != nil {
		h.writeTaskError(w, err, "Failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) writeTaskError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, tasks.ErrTaskNotFound):
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Task not found"})
	case errors.Is(err, tasks.ErrAccessDenied):
		writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "You do not have access to this task"})
	case errors.Is(err, tasks.ErrAssignmentDenied):
		writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "You can only assign tasks to yourself as a non-admin user"})
	case errors.Is(err, tasks.ErrAssigneeInvalid):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Assigned user is invalid or inactive"})
	case errors.Is(err, tasks.ErrStatusInvalid):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Status does not exist"})
	case errors.Is(err, tasks.ErrNoFields):
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "No valid fields provided for update"})
	default:
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}
