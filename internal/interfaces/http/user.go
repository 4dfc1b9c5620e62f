package http

import (
	"net/http"

	"centavo/internal/domain/account"
	"centavo/internal/domain/user"
)

type UserHandler struct {
	users user.Repository
}

func NewUserHandler(users user.Repository) *UserHandler {
	return &UserHandler{users: users}
}

type updateUserRequest struct {
	DisplayCurrency string `json:"displayCurrency"`
}

// HandleMe serves the authenticated user's profile and display currency
// updates.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
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
		writeJSON(w, http.StatusOK, u)

	case http.MethodPatch:
		var req updateUserRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if !account.IsValidCurrency(req.DisplayCurrency) {
			writeError(w, account.ErrInvalidCurrency)
			return
		}

		u, err := h.users.UpdateDisplayCurrency(r.Context(), userID, req.DisplayCurrency)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
