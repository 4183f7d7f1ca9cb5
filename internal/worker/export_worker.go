// Package worker mirrors recorded expenses from SQLite to the CSV export
// file, driven by AMQP messages with a periodic pending sweep as backup.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"finease/internal/amqp"
	"finease/internal/core"
	"finease/internal/export"
	"finease/internal/storage"
)

type ExportWorker struct {
	storage   *storage.SQLiteRepository
	appender  *export.CSVAppender
	batchSize int
}

func NewExportWorker(storage *storage.SQLiteRepository, appender *export.CSVAppender, batchSize int) *ExportWorker {
	return &ExportWorker{
		storage:   storage,
		appender:  appender,
		batchSize: batchSize,
	}
}

// HandleExportMessage processes a single expense export message from AMQP.
// The expense is re-read from the database so the export reflects what was
// actually stored, not what the message claims.
func (w *ExportWorker) HandleExportMessage(ctx context.Context, msg *amqp.ExpenseExportMessage) error {
	slog.InfoContext(ctx, "Processing export message",
		"id", msg.ID,
		"user_id", msg.UserID)

	expense, err := w.storage.GetExpense(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get expense from storage: %w", err)
	}

	return w.exportExpense(ctx, expense)
}

// ProcessPendingExpenses exports any expenses still marked pending. This is
// a backup mechanism in case AMQP messages are lost.
func (w *ExportWorker) ProcessPendingExpenses(ctx context.Context) error {
	pending, err := w.storage.GetPendingExportExpenses(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending expenses: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending expenses", "count", len(pending))

	for _, expense := range pending {
		if err := w.exportExpense(ctx, expense); err != nil {
			slog.ErrorContext(ctx, "Failed to export expense", "id", expense.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupExportCheck drains the pending backlog when the worker starts, to
// recover from missed AMQP messages or worker downtime.
func (w *ExportWorker) StartupExportCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingExportExpenses(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending expenses for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending expenses found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending expenses on startup, processing...",
		"count", len(pending))

	exported := 0
	failed := 0
	for _, expense := range pending {
		if err := w.exportExpense(ctx, expense); err != nil {
			slog.ErrorContext(ctx, "Failed to export expense during startup",
				"id", expense.ID, "error", err)
			failed++
			continue
		}
		exported++
	}

	slog.InfoContext(ctx, "Startup export completed",
		"total", len(pending),
		"exported", exported,
		"errors", failed)

	return nil
}

func (w *ExportWorker) exportExpense(ctx context.Context, expense core.Expense) error {
	if err := w.appender.Append(expense); err != nil {
		if markErr := w.storage.MarkExportError(ctx, expense.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "id", expense.ID, "error", markErr)
		}
		return fmt.Errorf("append to export file: %w", err)
	}

	if err := w.storage.MarkExported(ctx, expense.ID); err != nil {
		// The row made it into the file; only the bookkeeping failed.
		slog.ErrorContext(ctx, "Failed to mark as exported", "id", expense.ID, "error", err)
	}

	slog.InfoContext(ctx, "Exported expense",
		"id", expense.ID,
		"user_id", expense.UserID,
		"amount_cents", expense.Amount.Cents)

	return nil
}
