package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sulthanallaudeen/priya-task/internal/api/dto"
	"github.com/sulthanallaudeen/priya-task/internal/statuses"
)

type StatusHandler struct {
	statusService *statuses.Service
}

func NewStatusHandler(statusService *statuses.Service) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

// List handles GET /api/v1/statuses
func (h *StatusHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.statusService.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list statuses"})
		return
	}

	resp := dto.StatusListResponse{Statuses: make([]dto.StatusResponse, len(items))}
	for i := range items {
		resp.Statuses[i] = dto.StatusToResponse(&items[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /api/v1/statuses
func (h *StatusHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	status, err := h.statusService.Create(r.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		h.writeStatusError(w, err, "Failed to create status")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]dto.StatusResponse{"status": dto.StatusToResponse(status)})
}

// Rename handles PATCH /api/v1/statuses/{id}
func (h *StatusHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid status ID"})
		return
	}

	var req dto.StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	status, err := h.statusService.Rename(r.Context(), id, strings.TrimSpace(req.Name))
	if err != nil {
		h.writeStatusError(w, err, "Failed to rename status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]dto.StatusResponse{"status": dto.StatusToResponse(status)})
}

// Delete handles DELETE /api/v1/statuses/{id}
func (h *StatusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid status ID"})
		return
	}

	if err := h.statusService.Delete(r.Context(), id); err != nil {
		h.writeStatusError(w, err, "Failed to delete status")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *StatusHandler) writeStatusError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, statuses.ErrStatusNotFound):
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Status not found"})
	case errors.Is(err, statuses.ErrNameTaken):
		writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "Status name already exists"})
	case errors.Is(err, statuses.ErrStatusInUse):
		writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "Status is assigned to tasks and cannot be deleted"})
	default:
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: fallback})
	}
}
