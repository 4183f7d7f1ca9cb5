package services

import (
	"context"
	"fmt"
	"log/slog"

	"finease/internal/amqp"
	"finease/internal/core"
	"finease/internal/storage"
)

// LedgerService records expenses and answers spending queries.
type LedgerService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewLedgerService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// AddExpense saves an expense and enqueues it for export. The export message
// is best-effort: the pending sweep in the worker picks up anything a lost
// message leaves behind.
func (s *LedgerService) AddExpense(ctx context.Context, e core.Expense) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	id, err := s.storage.CreateExpense(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save expense: %w", err)
	}

	if err := s.publishExportMessage(ctx, id, e.UserID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish export message",
			"id", id, "error", err)
	}

	return id, nil
}

// TotalSpent returns a user's all-time spend.
func (s *LedgerService) TotalSpent(ctx context.Context, userID int64) (core.Money, error) {
	return s.storage.SumExpenses(ctx, userID)
}

// TotalSpentInMonth returns the spend within one calendar month.
func (s *LedgerService) TotalSpentInMonth(ctx context.Context, userID int64, year, month int) (core.Money, error) {
	from := core.NewDate(year, month, 1)
	to := core.NewDate(year, month+1, 1)
	return s.storage.SumExpensesInRange(ctx, userID, from, to)
}

// SpendingByCategory aggregates a user's spend per category, largest first.
func (s *LedgerService) SpendingByCategory(ctx context.Context, userID int64) ([]core.CategoryTotal, error) {
	return s.storage.CategoryTotals(ctx, userID)
}

// History returns all of a user's expenses in chronological order.
func (s *LedgerService) History(ctx context.Context, userID int64) ([]core.Expense, error) {
	return s.storage.ListExpenses(ctx, userID)
}

func (s *LedgerService) publishExportMessage(ctx context.Context, id, userID int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping export message")
		return nil
	}

	return s.amqpClient.PublishExpenseExport(ctx, id, userID)
}
