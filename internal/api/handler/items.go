package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pgha/statusapi/internal/api/middleware"
	"github.com/pgha/statusapi/internal/api/response"
	"github.com/pgha/statusapi/internal/api/validation"
	"github.com/pgha/statusapi/internal/item"
)

// createItemRequest is the request body for POST /items.
type createItemRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// updateItemRequest is the request body for PUT /items/{id}. Absent
// fields keep their prior values.
type updateItemRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// ItemsHandler handles the demo item CRUD endpoints.
type ItemsHandler struct {
	repo item.Repository
}

// NewItemsHandler creates a new ItemsHandler.
func NewItemsHandler(repo item.Repository) *ItemsHandler {
	return &ItemsHandler{repo: repo}
}

// itemID parses the id URL parameter. A malformed id writes a 400 and
// reports false.
func itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "invalid_id", "Item ID must be a number")
		return 0, false
	}
	return id, true
}

// Create handles POST /items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "validation_error", "Request body must be valid JSON")
		return
	}

	fieldErrors := validation.ValidateItemCreate(validation.ItemCreate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if len(fieldErrors) > 0 {
		response.Err(w, http.StatusBadRequest, "validation_error", validation.Describe(fieldErrors))
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := h.repo.Create(r.Context(), item.NewItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		IsActive:    isActive,
	})
	if err != nil {
		slog.Error("failed to create item", "error", err, "requestId", middleware.GetRequestID(r.Context()))
		response.Err(w, http.StatusInternalServerError, "database_error", "Failed to create item")
		return
	}

	response.JSON(w, http.StatusCreated, created)
}

// List handles GET /items. Malformed skip/limit values fall back to their
// defaults rather than erroring; limit is clamped silently.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := item.ListFilter{Limit: 100}

	if v := r.URL.Query().Get("skip"); v != "" {
		if skip, err := strconv.Atoi(v); err == nil && skip > 0 {
			filter.Skip = skip
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	filter.ActiveOnly = r.URL.Query().Get("active_only") == "true"

	items, err := h.repo.List(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list items", "error", err, "requestId", middleware.GetRequestID(r.Context()))
		response.Err(w, http.StatusInternalServerError, "database_error", "Failed to list items")
		return
	}

	response.JSON(w, http.StatusOK, items)
}

// GetByID handles GET /items/{id}.
func (h *ItemsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	it, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			response.Err(w, http.StatusNotFound, "not_found", "Item not found")
			return
		}
		slog.Error("failed to get item", "error", err, "id", id, "requestId", middleware.GetRequestID(r.Context()))
		response.Err(w, http.StatusInternalServerError, "database_error", "Failed to get item")
		return
	}

	response.JSON(w, http.StatusOK, it)
}

// Update handles PUT /items/{id} with partial update semantics.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "validation_error", "Request body must be valid JSON")
		return
	}

	fieldErrors := validation.ValidateItemUpdate(validation.ItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if len(fieldErrors) > 0 {
		response.Err(w, http.StatusBadRequest, "validation_error", validation.Describe(fieldErrors))
		return
	}

	updated, err := h.repo.Update(r.Context(), id, item.UpdateFields{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    req.IsActive,
	})
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			response.Err(w, http.StatusNotFound, "not_found", "Item not found")
			return
		}
		slog.Error("failed to update item", "error", err, "id", id, "requestId", middleware.GetRequestID(r.Context()))
		response.Err(w, http.StatusInternalServerError, "database_error", "Failed to update item")
		return
	}

	response.JSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /items/{id}. Hard delete: repeating the call for
// the same id reports 404.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, item.ErrNotFound) {
			response.Err(w, http.StatusNotFound, "not_found", "Item not found")
			return
		}
		slog.Error("failed to delete item", "error", err, "id", id, "requestId", middleware.GetRequestID(r.Context()))
		response.Err(w, http.StatusInternalServerError, "database_error", "Failed to delete item")
		return
	}

	response.NoContent(w)
}
