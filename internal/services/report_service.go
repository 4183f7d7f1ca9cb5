package services

import (
	"context"
	"fmt"

	"finease/internal/core"
	"finease/internal/storage"
)

// ReportService compares spending against a user's budget.
type ReportService struct {
	storage *storage.SQLiteRepository
	ledger  *LedgerService
}

func NewReportService(storage *storage.SQLiteRepository, ledger *LedgerService) *ReportService {
	return &ReportService{
		storage: storage,
		ledger:  ledger,
	}
}

func (s *ReportService) GetBudget(ctx context.Context, userID int64) (core.Money, error) {
	return s.storage.GetBudget(ctx, userID)
}

func (s *ReportService) SetBudget(ctx context.Context, userID int64, budget core.Money) error {
	return s.storage.SetBudget(ctx, userID, budget)
}

// BudgetStatus sets the all-time spend against the budget.
func (s *ReportService) BudgetStatus(ctx context.Context, userID int64) (core.BudgetStatus, error) {
	budget, err := s.storage.GetBudget(ctx, userID)
	if err != nil {
		return core.BudgetStatus{}, err
	}

	spent, err := s.ledger.TotalSpent(ctx, userID)
	if err != nil {
		return core.BudgetStatus{}, fmt.Errorf("total spent: %w", err)
	}

	return core.NewBudgetStatus(budget, spent), nil
}

// MonthBudgetStatus sets one calendar month's spend against the budget.
func (s *ReportService) MonthBudgetStatus(ctx context.Context, userID int64, year, month int) (core.BudgetStatus, error) {
	budget, err := s.storage.GetBudget(ctx, userID)
	if err != nil {
		return core.BudgetStatus{}, err
	}

	spent, err := s.ledger.TotalSpentInMonth(ctx, userID, year, month)
	if err != nil {
		return core.BudgetStatus{}, fmt.Errorf("total spent in month: %w", err)
	}

	return core.NewBudgetStatus(budget, spent), nil
}
