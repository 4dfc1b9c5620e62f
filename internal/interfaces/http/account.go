package http

import (
	"net/http"

	"centavo/internal/domain/account"
)

type AccountHandler struct {
	service *account.Service
}

func NewAccountHandler(service *account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

type createAccountRequest struct {
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	Currency       string `json:"currency"`
	InitialBalance int64  `json:"initialBalance"`
	Description    string `json:"description"`
}

type updateAccountRequest struct {
	Name        *string `json:"name"`
	Kind        *string `json:"kind"`
	Description *string `json:"description"`
	Archived    *bool   `json:"archived"`
}

// HandleAccounts serves the account collection: list and create
func (h *AccountHandler) HandleAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		accounts, err := h.service.ListAccounts(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		if accounts == nil {
			accounts = []*account.Account{}
		}
		writeJSON(w, http.StatusOK, accounts)

	case http.MethodPost:
		var req createAccountRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Name == "" {
			writeBadRequest(w, "name is required")
			return
		}

		acc, err := h.service.CreateAccount(r.Context(), account.CreateParams{
			UserID:         userID,
			Name:           req.Name,
			Kind:           account.Kind(req.Kind),
			Currency:       req.Currency,
			InitialBalance: req.InitialBalance,
			Description:    req.Description,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, acc)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleAccountByID serves a single account: get, patch, delete
func (h *AccountHandler) HandleAccountByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	accountID := r.PathValue("id")
	if accountID == "" {
		writeBadRequest(w, "Account ID is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		acc, err := h.service.GetAccount(r.Context(), accountID, userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, acc)

	case http.MethodPatch:
		var req updateAccountRequest
		if !decodeBody(w, r, &req) {
			return
		}

		var kind *account.Kind
		if req.Kind != nil {
			k := account.Kind(*req.Kind)
			kind = &k
		}

		acc, err := h.service.UpdateAccount(r.Context(), accountID, userID, account.UpdateParams{
			Name:        req.Name,
			Kind:        kind,
			Description: req.Description,
			Archived:    req.Archived,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, acc)

	case http.MethodDelete:
		if err := h.service.DeleteAccount(r.Context(), accountID, userID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
