package http

import (
	"net/http"
	"strconv"
	"time"

	"centavo/internal/domain/transaction"
)

type TransactionHandler struct {
	service *transaction.Service
}

func NewTransactionHandler(service *transaction.Service) *TransactionHandler {
	return &TransactionHandler{service: service}
}

type createTransactionRequest struct {
	AccountID   string `json:"accountId"`
	CategoryID  *int64 `json:"categoryId"`
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type updateTransactionRequest struct {
	CategoryID    *int64  `json:"categoryId"`
	ClearCategory bool    `json:"clearCategory"`
	Type          *string `json:"type"`
	Amount        *int64  `json:"amount"`
	Description   *string `json:"description"`
	Date          *string `json:"date"`
}

type transactionListResponse struct {
	Items []*transaction.Transaction `json:"items"`
	Total int64                      `json:"total"`
}

// parseDate accepts YYYY-MM-DD or RFC 3339
func parseDate(raw string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// HandleTransactions serves the transaction collection: list and create
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		filter, ok := parseListFilter(w, r)
		if !ok {
			return
		}

		items, total, err := h.service.ListTransactions(r.Context(), userID, filter)
		if err != nil {
			writeError(w, err)
			return
		}
		if items == nil {
			items = []*transaction.Transaction{}
		}
		writeJSON(w, http.StatusOK, transactionListResponse{Items: items, Total: total})

	case http.MethodPost:
		var req createTransactionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		var date time.Time
		if req.Date != "" {
			parsed, ok := parseDate(req.Date)
			if !ok {
				writeBadRequest(w, "Invalid date format (use YYYY-MM-DD or RFC 3339)")
				return
			}
			date = parsed
		}

		tx, err := h.service.CreateTransaction(r.Context(), userID, transaction.CreateParams{
			AccountID:   req.AccountID,
			CategoryID:  req.CategoryID,
			Type:        transaction.Type(req.Type),
			Amount:      req.Amount,
			Description: req.Description,
			Date:        date,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, tx)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func parseListFilter(w http.ResponseWriter, r *http.Request) (transaction.ListFilter, bool) {
	var filter transaction.ListFilter
	q := r.URL.Query()

	if accountID := q.Get("accountId"); accountID != "" {
		filter.AccountID = &accountID
	}
	if categoryStr := q.Get("categoryId"); categoryStr != "" {
		categoryID, err := strconv.ParseInt(categoryStr, 10, 64)
		if err != nil {
			writeBadRequest(w, "Invalid categoryId")
			return filter, false
		}
		filter.CategoryID = &categoryID
	}
	if fromStr := q.Get("from"); fromStr != "" {
		from, ok := parseDate(fromStr)
		if !ok {
			writeBadRequest(w, "Invalid from date")
			return filter, false
		}
		filter.From = &from
	}
	if toStr := q.Get("to"); toStr != "" {
		to, ok := parseDate(toStr)
		if !ok {
			writeBadRequest(w, "Invalid to date")
			return filter, false
		}
		filter.To = &to
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if offsetStr := q.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	return filter, true
}

// HandleTransactionByID serves a single transaction: get, patch, delete
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	transactionID := r.PathValue("id")
	if transactionID == "" {
		writeBadRequest(w, "Transaction ID is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		tx, err := h.service.GetTransaction(r.Context(), transactionID, userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tx)

	case http.MethodPatch:
		var req updateTransactionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		params := transaction.UpdateParams{
			CategoryID:    req.CategoryID,
			ClearCategory: req.ClearCategory,
			Amount:        req.Amount,
			Description:   req.Description,
		}
		if req.Type != nil {
			t := transaction.Type(*req.Type)
			params.Type = &t
		}
		if req.Date != nil {
			date, ok := parseDate(*req.Date)
			if !ok {
				writeBadRequest(w, "Invalid date format (use YYYY-MM-DD or RFC 3339)")
				return
			}
			params.Date = &date
		}

		tx, err := h.service.UpdateTransaction(r.Context(), transactionID, userID, params)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tx)

	case http.MethodDelete:
		if err := h.service.DeleteTransaction(r.Context(), transactionID, userID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
