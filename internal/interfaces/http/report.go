package http

import (
	"net/http"

	"centavo/internal/domain/account"
	"centavo/internal/domain/report"
	"centavo/internal/domain/user"
)

type ReportHandler struct {
	service *report.Service
	users   user.Repository
}

func NewReportHandler(service *report.Service, users user.Repository) *ReportHandler {
	return &ReportHandler{service: service, users: users}
}

// HandleSummary returns the net worth summary in the user's display currency.
// A ?currency= query overrides the stored preference for one request.
func (h *ReportHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	displayCurrency := r.URL.Query().Get("currency")
	if displayCurrency == "" {
		u, err := h.users.GetByID(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		displayCurrency = u.DisplayCurrency
	} else if !account.IsValidCurrency(displayCurrency) {
		writeError(w, account.ErrInvalidCurrency)
		return
	}

	summary, err := h.service.BuildSummary(r.Context(), userID, displayCurrency)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
