package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"finease/internal/core"
)

type alertRequest struct {
	DueDate     string `json:"dueDate"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

type alertResponse struct {
	ID          int64  `json:"id"`
	DueDate     string `json:"dueDate"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Notified    bool   `json:"notified"`
}

func toAlertResponse(a core.Alert) alertResponse {
	return alertResponse{
		ID:          a.ID,
		DueDate:     a.DueDate.String(),
		Amount:      a.Amount.String(),
		Description: a.Description,
		Notified:    a.Notified,
	}
}

func (s *Server) handleAddAlert(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}

	var req alertRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	dueDate, err := core.ParseDate(req.DueDate)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cents, err := core.ParseAmountToCents(req.Amount)
	if err != nil {
		respondError(w, r, err)
		return
	}

	alert := core.Alert{
		UserID:      userID,
		DueDate:     dueDate,
		Amount:      core.Money{Cents: cents},
		Description: req.Description,
	}

	id, err := s.alerts.AddAlert(r.Context(), alert)
	if err != nil {
		respondError(w, r, err)
		return
	}
	alert.ID = id

	respondJSON(w, http.StatusCreated, toAlertResponse(alert))
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}

	alerts, err := s.alerts.ListAlerts(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]alertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, toAlertResponse(a))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleDueAlerts claims today's unfired alerts. Each alert appears in at
// most one response, ever.
func (s *Server) handleDueAlerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}

	due, err := s.alerts.DueToday(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]alertResponse, 0, len(due))
	for _, a := range due {
		out = append(out, toAlertResponse(a))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleMarkNotified(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}

	alertID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid alert id")
		return
	}

	if err := s.alerts.MarkNotified(r.Context(), userID, alertID); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
