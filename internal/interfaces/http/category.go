package http

import (
	"net/http"
	"strconv"

	"centavo/internal/domain/category"
)

type CategoryHandler struct {
	service *category.Service
}

func NewCategoryHandler(service *category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type createCategoryRequest struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Color string `json:"color"`
}

type updateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// HandleCategories serves the category collection: list and create
func (h *CategoryHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		categories, err := h.service.ListCategories(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		if categories == nil {
			categories = []*category.Category{}
		}
		writeJSON(w, http.StatusOK, categories)

	case http.MethodPost:
		var req createCategoryRequest
		if !decodeBody(w, r, &req) {
			return
		}

		cat, err := h.service.CreateCategory(r.Context(), category.CreateParams{
			UserID: userID,
			Name:   req.Name,
			Kind:   category.Kind(req.Kind),
			Color:  req.Color,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, cat)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleCategoryByID serves a single category: get, patch, delete
func (h *CategoryHandler) HandleCategoryByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	categoryID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "Invalid category ID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		cat, err := h.service.GetCategory(r.Context(), categoryID, userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cat)

	case http.MethodPatch:
		var req updateCategoryRequest
		if !decodeBody(w, r, &req) {
			return
		}

		cat, err := h.service.UpdateCategory(r.Context(), categoryID, userID, category.UpdateParams{
			Name:  req.Name,
			Color: req.Color,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cat)

	case http.MethodDelete:
		if err := h.service.DeleteCategory(r.Context(), categoryID, userID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
