package http

import (
	"fmt"
	"net/http"
	"strconv"

	"finease/internal/core"
)

type expenseRequest struct {
	Date        string `json:"date"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

type expenseResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Date:        e.Date.String(),
		Category:    e.Category,
		Amount:      e.Amount.String(),
		Description: e.Description,
	}
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}

	var req expenseRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		respondError(w, r, err)
		return
	}
	cents, err := core.ParseAmountToCents(req.Amount)
	if err != nil {
		respondError(w, r, err)
		return
	}

	expense := core.Expense{
		UserID:      userID,
		Date:        date,
		Category:    req.Category,
		Amount:      core.Money{Cents: cents},
		Description: req.Description,
	}

	id, err := s.ledger.AddExpense(r.Context(), expense)
	if err != nil {
		respondError(w, r, err)
		return
	}
	expense.ID = id

	s.categoriesCache.Delete(categoriesCacheKey(userID))

	respondJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}

	expenses, err := s.ledger.History(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleTotalSpent(w http.ResponseWriter, r *http.Request) {
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

	var total core.Money
	if monthly {
		total, err = s.ledger.TotalSpentInMonth(r.Context(), userID, year, month)
	} else {
		total, err = s.ledger.TotalSpent(r.Context(), userID)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"total": total.String()})
}

func (s *Server) handleSpendingByCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, r, core.ErrUnauthenticated)
		return
	}

	key := categoriesCacheKey(userID)
	totals, hit := s.categoriesCache.Get(key)
	if !hit {
		var err error
		totals, err = s.ledger.SpendingByCategory(r.Context(), userID)
		if err != nil {
			respondError(w, r, err)
			return
		}
		s.categoriesCache.Set(key, totals)
	}

	type categoryTotalResponse struct {
		Category string `json:"category"`
		Total    string `json:"total"`
	}
	out := make([]categoryTotalResponse, 0, len(totals))
	for _, ct := range totals {
		out = append(out, categoryTotalResponse{Category: ct.Category, Total: ct.Total.String()})
	}
	respondJSON(w, http.StatusOK, out)
}

func categoriesCacheKey(userID int64) string {
	return "categories:" + strconv.FormatInt(userID, 10)
}

// parseMonthQuery reads optional year and month query parameters. Both must
// be given together; neither means an all-time query.
func parseMonthQuery(r *http.Request) (year, month int, monthly bool, err error) {
	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")

	if yearStr == "" && monthStr == "" {
		return 0, 0, false, nil
	}
	if yearStr == "" || monthStr == "" {
		return 0, 0, false, fmt.Errorf("year and month must be given together")
	}

	year, err = strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid year %q", yearStr)
	}
	month, err = strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false, fmt.Errorf("invalid month %q", monthStr)
	}
	return year, month, true, nil
}
