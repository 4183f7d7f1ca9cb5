package worker

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"finease/internal/amqp"
	"finease/internal/core"
	"finease/internal/export"
	"finease/internal/storage"
)

func newTestWorker(t *testing.T) (*ExportWorker, *storage.SQLiteRepository, string) {
	t.Helper()

	dir := t.TempDir()
	repo, err := storage.NewSQLiteRepository(filepath.Join(dir, "worker_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	csvPath := filepath.Join(dir, "expenses.csv")
	return NewExportWorker(repo, export.NewCSVAppender(csvPath), 10), repo, csvPath
}

func addExpense(t *testing.T, repo *storage.SQLiteRepository, userID int64, cents int64) int64 {
	t.Helper()
	id, err := repo.CreateExpense(context.Background(), core.Expense{
		UserID:   userID,
		Date:     core.NewDate(2026, 8, 31),
		Category: "food",
		Amount:   core.Money{Cents: cents},
	})
	require.NoError(t, err)
	return id
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestHandleExportMessage(t *testing.T) {
	w, repo, csvPath := newTestWorker(t)
	ctx := context.Background()

	userID, err := repo.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	id := addExpense(t, repo, userID, 1500)

	require.NoError(t, w.HandleExportMessage(ctx, amqp.NewExpenseExportMessage(id, userID)))

	records := readCSV(t, csvPath)
	require.Len(t, records, 2)
	require.Equal(t, "15.00", records[1][4])

	pending, err := repo.GetPendingExportExpenses(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, pending, "exported expense leaves the pending set")
}

func TestHandleExportMessageUnknownExpense(t *testing.T) {
	w, _, _ := newTestWorker(t)

	err := w.HandleExportMessage(context.Background(), amqp.NewExpenseExportMessage(999, 1))
	require.Error(t, err)
}

func TestStartupExportCheckDrainsBacklog(t *testing.T) {
	w, repo, csvPath := newTestWorker(t)
	ctx := context.Background()

	userID, err := repo.CreateUser(ctx, "bob", "hash")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		addExpense(t, repo, userID, 100)
	}

	require.NoError(t, w.StartupExportCheck(ctx))

	records := readCSV(t, csvPath)
	require.Len(t, records, 4, "header plus three rows")

	pending, err := repo.GetPendingExportExpenses(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestProcessPendingExpensesNoopWhenEmpty(t *testing.T) {
	w, _, csvPath := newTestWorker(t)

	require.NoError(t, w.ProcessPendingExpenses(context.Background()))

	_, err := os.Stat(csvPath)
	require.True(t, os.IsNotExist(err), "no pending work writes no file")
}
