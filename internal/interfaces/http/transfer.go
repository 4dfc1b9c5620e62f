package http

import (
	"net/http"

	"centavo/internal/domain/transfer"
)

type TransferHandler struct {
	service *transfer.Service
}

func NewTransferHandler(service *transfer.Service) *TransferHandler {
	return &TransferHandler{service: service}
}

type createTransferRequest struct {
	FromAccountID string `json:"fromAccountId"`
	ToAccountID   string `json:"toAccountId"`
	Amount        int64  `json:"amount"`
	Description   string `json:"description"`
}

// HandleTransfer executes an atomic transfer between two of the user's
// accounts. Cross-currency transfers convert at the current snapshot rate.
func (h *TransferHandler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createTransferRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.FromAccountID == "" || req.ToAccountID == "" {
		writeBadRequest(w, "fromAccountId and toAccountId are required")
		return
	}

	result, err := h.service.Transfer(r.Context(), userID, transfer.Params{
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Description:   req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
