package http

import (
	"net/http"
	"strconv"

	"centavo/internal/domain/budget"
	"centavo/internal/domain/user"
)

type BudgetHandler struct {
	service *budget.Service
	users   user.Repository
}

func NewBudgetHandler(service *budget.Service, users user.Repository) *BudgetHandler {
	return &BudgetHandler{service: service, users: users}
}

type createBudgetRequest struct {
	CategoryID int64  `json:"categoryId"`
	Period     string `json:"period"`
	Limit      int64  `json:"limit"`
}

type updateBudgetRequest struct {
	Limit *int64 `json:"limit"`
}

// HandleBudgets serves the budget collection. Listing returns each budget
// with spending so far in the user's display currency.
func (h *BudgetHandler) HandleBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		u, err := h.users.GetByID(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}

		statuses, err := h.service.ListStatuses(r.Context(), userID, u.DisplayCurrency, r.URL.Query().Get("period"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, statuses)

	case http.MethodPost:
		var req createBudgetRequest
		if !decodeBody(w, r, &req) {
			return
		}

		b, err := h.service.CreateBudget(r.Context(), budget.CreateParams{
			UserID:     userID,
			CategoryID: req.CategoryID,
			Period:     req.Period,
			Limit:      req.Limit,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, b)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleBudgetByID serves a single budget: get, patch, delete
func (h *BudgetHandler) HandleBudgetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	budgetID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "Invalid budget ID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		b, err := h.service.GetBudget(r.Context(), budgetID, userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)

	case http.MethodPatch:
		var req updateBudgetRequest
		if !decodeBody(w, r, &req) {
			return
		}

		b, err := h.service.UpdateBudget(r.Context(), budgetID, userID, budget.UpdateParams{
			Limit: req.Limit,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)

	case http.MethodDelete:
		if err := h.service.DeleteBudget(r.Context(), budgetID, userID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
