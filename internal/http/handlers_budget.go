package http

import (
	"net/http"

	"finease/internal/core"
)

type budgetStatusResponse struct {
	Budget    string `json:"budget"`
	Spent     string `json:"spent"`
	Remaining string `json:"remaining"`
	Exceeded  bool   `json:"exceeded"`
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}

	budget, err := s.reports.GetBudget(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"budget": budget.String()})
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}

	var req struct {
		Budget string `json:"budget"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	cents, err := core.ParseAmountToCents(req.Budget)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.reports.SetBudget(r.Context(), userID, core.Money{Cents: cents}); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"budget": core.Money{Cents: cents}.String()})
}

func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}

	year, month, monthly, err := parseMonthQuery(r)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	var status core.BudgetStatus
	if monthly {
		status, err = s.reports.MonthBudgetStatus(r.Context(), userID, year, month)
	} else {
		status, err = s.reports.BudgetStatus(r.Context(), userID)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, budgetStatusResponse{
		Budget:    status.Budget.String(),
		Spent:     status.Spent.String(),
		Remaining: status.Remaining.String(),
		Exceeded:  status.Exceeded,
	})
}
