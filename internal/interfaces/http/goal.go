package http

import (
	"net/http"
	"strconv"
	"time"

	"centavo/internal/domain/goal"
)

type GoalHandler struct {
	service *goal.Service
}

func NewGoalHandler(service *goal.Service) *GoalHandler {
	return &GoalHandler{service: service}
}

type createGoalRequest struct {
	Name         string  `json:"name"`
	TargetAmount int64   `json:"targetAmount"`
	Currency     string  `json:"currency"`
	AccountID    *string `json:"accountId"`
	Deadline     *string `json:"deadline"`
}

type updateGoalRequest struct {
	Name         *string `json:"name"`
	TargetAmount *int64  `json:"targetAmount"`
	AccountID    *string `json:"accountId"`
	ClearAccount bool    `json:"clearAccount"`
	Deadline     *string `json:"deadline"`
}

func parseDeadline(w http.ResponseWriter, raw *string) (*time.Time, bool) {
	if raw == nil {
		return nil, true
	}
	deadline, ok := parseDate(*raw)
	if !ok {
		writeBadRequest(w, "Invalid deadline (use YYYY-MM-DD or RFC 3339)")
		return nil, false
	}
	return &deadline, true
}

// HandleGoals serves the goal collection. Listing returns each goal with its
// progress toward the target.
func (h *GoalHandler) HandleGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		progress, err := h.service.ListProgress(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		if progress == nil {
			progress = []*goal.Progress{}
		}
		writeJSON(w, http.StatusOK, progress)

	case http.MethodPost:
		var req createGoalRequest
		if !decodeBody(w, r, &req) {
			return
		}

		deadline, ok := parseDeadline(w, req.Deadline)
		if !ok {
			return
		}

		g, err := h.service.Create(r.Context(), goal.CreateParams{
			UserID:       userID,
			Name:         req.Name,
			TargetAmount: req.TargetAmount,
			Currency:     req.Currency,
			AccountID:    req.AccountID,
			Deadline:     deadline,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, g)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleGoalByID serves a single goal: get, patch, delete
func (h *GoalHandler) HandleGoalByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	goalID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeBadRequest(w, "Invalid goal ID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		g, err := h.service.Get(r.Context(), goalID, userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, g)

	case http.MethodPatch:
		var req updateGoalRequest
		if !decodeBody(w, r, &req) {
			return
		}

		deadline, ok := parseDeadline(w, req.Deadline)
		if !ok {
			return
		}

		g, err := h.service.Update(r.Context(), goalID, userID, goal.UpdateParams{
			Name:         req.Name,
			TargetAmount: req.TargetAmount,
			AccountID:    req.AccountID,
			ClearAccount: req.ClearAccount,
			Deadline:     deadline,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, g)

	case http.MethodDelete:
		if err := h.service.Delete(r.Context(), goalID, userID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
