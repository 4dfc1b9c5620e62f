package http

import (
	"net/http"
	"strconv"

	"centavo/internal/domain/recurring"
	"centavo/internal/domain/transaction"
)

type RecurringHandler struct {
	service *recurring.Service
}

func NewRecurringHandler(service *recurring.Service) *RecurringHandler {
	return &RecurringHandler{service: service}
}

type createRecurringRequest struct {
	AccountID   string `json:"accountId"`
	CategoryID  *int64 `json:"categoryId"`
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Interval    string `json:"interval"`
	FirstRun    string `json:"firstRun"`
}

type updateRecurringRequest struct {
	CategoryID  *int64  `json:"categoryId"`
	Amount      *int64  `json:"amount"`
	Description *string `json:"description"`
	Interval    *string `json:"interval"`
	NextRun     *string `json:"nextRun"`
	Active      *bool   `json:"active"`
}

// HandleRecurring serves the recurring transaction collection: list and create
func (h *RecurringHandler) HandleRecurring(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		entries, err := h.service.List(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		if entries == nil {
			entries = []*recurring.RecurringTransaction{}
		}
		writeJSON(w, http.StatusOK, entries)

	case http.MethodPost:
		var req createRecurringRequest
		if !decodeBody(w, r, &req) {
			return
		}

		firstRun, ok := parseDate(req.FirstRun)
		if !ok {
			writeBadRequest(w, "Invalid firstRun date (use YYYY-MM-DD or RFC 3339)")
			return
		}

		rec, err := h.service.Create(r.Context(), recurring.CreateParams{
			UserID:      userID,
			AccountID:   req.AccountID,
			CategoryID:  req.CategoryID,
			Type:        transaction.Type(req.Type),
			Amount:      req.Amount,
			Description: req.Description,
			Interval:    recurring.Interval(req.Interval),
			FirstRun:    firstRun,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, rec)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleRecurringByID serves a single recurring transaction: get, patch, delete
func (h *RecurringHandler) HandleRecurringByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	recurringID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "Invalid recurring transaction ID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		rec, err := h.service.Get(r.Context(), recurringID, userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)

	case http.MethodPatch:
		var req updateRecurringRequest
		if !decodeBody(w, r, &req) {
			return
		}

		params := recurring.UpdateParams{
			CategoryID:  req.CategoryID,
			Amount:      req.Amount,
			Description: req.Description,
			Active:      req.Active,
		}
		if req.Interval != nil {
			iv := recurring.Interval(*req.Interval)
			params.Interval = &iv
		}
		if req.NextRun != nil {
			nextRun, ok := parseDate(*req.NextRun)
			if !ok {
				writeBadRequest(w, "Invalid nextRun date (use YYYY-MM-DD or RFC 3339)")
				return
			}
			params.NextRun = &nextRun
		}

		rec, err := h.service.Update(r.Context(), recurringID, userID, params)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)

	case http.MethodDelete:
		if err := h.service.Delete(r.Context(), recurringID, userID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
