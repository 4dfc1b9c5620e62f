package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"centavo/internal/domain/account"
	"centavo/internal/domain/budget"
	"centavo/internal/domain/category"
	"centavo/internal/domain/currency"
	"centavo/internal/domain/goal"
	"centavo/internal/domain/recurring"
	"centavo/internal/domain/transaction"
	"centavo/internal/domain/transfer"
	"centavo/internal/domain/user"
	"centavo/internal/shared/middleware"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP statuses. Anything unrecognized
// is a 500 with a generic message so internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, account.ErrAccountNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, transaction.ErrTransactionNotFound),
		errors.Is(err, budget.ErrBudgetNotFound),
		errors.Is(err, recurring.ErrRecurringNotFound),
		errors.Is(err, goal.ErrGoalNotFound):
		status = http.StatusNotFound
		message = err.Error()

	case errors.Is(err, account.ErrForbidden),
		errors.Is(err, category.ErrForbidden),
		errors.Is(err, transaction.ErrForbidden),
		errors.Is(err, budget.ErrForbidden),
		errors.Is(err, recurring.ErrForbidden),
		errors.Is(err, goal.ErrForbidden):
		status = http.StatusForbidden
		message = "Forbidden"

	case errors.Is(err, user.ErrEmailTaken):
		status = http.StatusConflict
		message = err.Error()

	case errors.Is(err, transaction.ErrPartOfTransfer):
		status = http.StatusConflict
		message = err.Error()

	case errors.Is(err, transfer.ErrInsufficientFunds):
		status = http.StatusUnprocessableEntity
		message = err.Error()

	case errors.Is(err, currency.ErrRateUnavailable):
		status = http.StatusServiceUnavailable
		message = err.Error()

	case errors.Is(err, transfer.ErrInvalidTransfer),
		errors.Is(err, transfer.ErrInvalidAmount),
		errors.Is(err, transaction.ErrInvalidType),
		errors.Is(err, transaction.ErrInvalidAmount),
		errors.Is(err, account.ErrInvalidKind),
		errors.Is(err, account.ErrInvalidCurrency),
		errors.Is(err, account.ErrInvalidInput),
		errors.Is(err, category.ErrInvalidKind),
		errors.Is(err, budget.ErrInvalidPeriod),
		errors.Is(err, budget.ErrInvalidLimit),
		errors.Is(err, recurring.ErrInvalidInterval),
		errors.Is(err, goal.ErrInvalidTarget):
		status = http.StatusBadRequest
		message = err.Error()

	default:
		log.Printf("Internal error: %v", err)
	}

	writeJSON(w, status, errorResponse{Error: message})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

// requireUserID pulls the authenticated user out of the request context.
// Writes 401 and returns false when the auth middleware did not run.
func requireUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBadRequest(w, "Invalid request body")
		return false
	}
	return true
}
