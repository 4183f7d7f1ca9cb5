package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"finease/internal/core"
)

type RepositorySuite struct {
	suite.Suite
	repo *SQLiteRepository
	ctx  context.Context
}

func (s *RepositorySuite) SetupTest() {
	dbPath := filepath.Join(s.T().TempDir(), "finease_test.db")
	repo, err := NewSQLiteRepository(dbPath)
	require.NoError(s.T(), err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RepositorySuite) TearDownTest() {
	require.NoError(s.T(), s.repo.Close())
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func TestReopenExistingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	repo, err := NewSQLiteRepository(dbPath)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	repo, err = NewSQLiteRepository(dbPath)
	require.NoError(t, err, "an already up-to-date schema is not an error")
	require.NoError(t, repo.Close())
}

func (s *RepositorySuite) mustCreateUser(username string) int64 {
	id, err := s.repo.CreateUser(s.ctx, username, "hash")
	s.Require().NoError(err)
	return id
}

func (s *RepositorySuite) TestCreateUserDuplicateUsername() {
	s.mustCreateUser("alice")

	_, err := s.repo.CreateUser(s.ctx, "alice", "otherhash")
	s.ErrorIs(err, core.ErrDuplicateUsername)
}

func (s *RepositorySuite) TestGetUserByUsername() {
	id := s.mustCreateUser("bob")

	u, err := s.repo.GetUserByUsername(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(id, u.ID)
	s.Equal("bob", u.Username)
	s.Equal("hash", u.PasswordHash)
	s.Equal(int64(100000), u.Budget.Cents, "new users start with the default budget")

	_, err = s.repo.GetUserByUsername(s.ctx, "nobody")
	s.ErrorIs(err, core.ErrUserNotFound)
}

func (s *RepositorySuite) TestSetAndGetBudget() {
	id := s.mustCreateUser("carol")

	s.Require().NoError(s.repo.SetBudget(s.ctx, id, core.Money{Cents: 250000}))

	budget, err := s.repo.GetBudget(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(int64(250000), budget.Cents)

	s.ErrorIs(s.repo.SetBudget(s.ctx, 999, core.Money{Cents: 1}), core.ErrUserNotFound)
}

func (s *RepositorySuite) TestSumExpensesEmptyIsZero() {
	id := s.mustCreateUser("dora")

	total, err := s.repo.SumExpenses(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(int64(0), total.Cents)
}

func (s *RepositorySuite) TestSumExpenses() {
	id := s.mustCreateUser("eve")
	other := s.mustCreateUser("frank")

	s.addExpense(id, "2026-01-10", "food", 1250)
	s.addExpense(id, "2026-01-11", "food", 800)
	s.addExpense(other, "2026-01-11", "food", 99999)

	total, err := s.repo.SumExpenses(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(int64(2050), total.Cents, "totals never leak across users")
}

func (s *RepositorySuite) TestSumExpensesInRange() {
	id := s.mustCreateUser("gail")

	s.addExpense(id, "2026-01-31", "food", 100)
	s.addExpense(id, "2026-02-01", "food", 200)
	s.addExpense(id, "2026-02-28", "rent", 300)
	s.addExpense(id, "2026-03-01", "food", 400)

	total, err := s.repo.SumExpensesInRange(s.ctx, id,
		core.NewDate(2026, 2, 1), core.NewDate(2026, 3, 1))
	s.Require().NoError(err)
	s.Equal(int64(500), total.Cents, "range is inclusive start, exclusive end")
}

func (s *RepositorySuite) TestCategoryTotalsOrderedByTotal() {
	id := s.mustCreateUser("hank")

	s.addExpense(id, "2026-01-01", "food", 500)
	s.addExpense(id, "2026-01-02", "food", 500)
	s.addExpense(id, "2026-01-03", "rent", 90000)
	s.addExpense(id, "2026-01-04", "", 10)

	totals, err := s.repo.CategoryTotals(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(totals, 3)
	s.Equal("rent", totals[0].Category)
	s.Equal(int64(90000), totals[0].Total.Cents)
	s.Equal("food", totals[1].Category)
	s.Equal(int64(1000), totals[1].Total.Cents)
	s.Equal("", totals[2].Category, "the empty label is a category like any other")
}

func (s *RepositorySuite) TestListExpensesOrderedByDate() {
	id := s.mustCreateUser("iris")

	s.addExpense(id, "2026-03-05", "b", 2)
	s.addExpense(id, "2026-01-05", "a", 1)
	s.addExpense(id, "2026-02-05", "c", 3)

	expenses, err := s.repo.ListExpenses(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(expenses, 3)
	s.Equal("a", expenses[0].Category)
	s.Equal("c", expenses[1].Category)
	s.Equal("b", expenses[2].Category)
	s.Equal("2026-01-05", expenses[0].Date.String())
}

func (s *RepositorySuite) TestExportStatusLifecycle() {
	id := s.mustCreateUser("jack")

	e1 := s.addExpense(id, "2026-01-01", "food", 100)
	e2 := s.addExpense(id, "2026-01-02", "food", 200)

	pending, err := s.repo.GetPendingExportExpenses(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal(e1, pending[0].ID, "oldest insertion first")

	s.Require().NoError(s.repo.MarkExported(s.ctx, e1))
	s.Require().NoError(s.repo.MarkExportError(s.ctx, e2))

	pending, err = s.repo.GetPendingExportExpenses(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *RepositorySuite) TestPendingExportLimit() {
	id := s.mustCreateUser("kate")

	for i := 0; i < 5; i++ {
		s.addExpense(id, "2026-01-01", "food", 100)
	}

	pending, err := s.repo.GetPendingExportExpenses(s.ctx, 3)
	s.Require().NoError(err)
	s.Len(pending, 3)
}

func (s *RepositorySuite) TestClaimDueAlertsFlipsOnce() {
	id := s.mustCreateUser("lena")
	day := core.NewDate(2026, 8, 31)

	_, err := s.repo.CreateAlert(s.ctx, core.Alert{
		UserID: id, DueDate: day, Amount: core.Money{Cents: 5000}, Description: "rent",
	})
	s.Require().NoError(err)
	_, err = s.repo.CreateAlert(s.ctx, core.Alert{
		UserID: id, DueDate: core.NewDate(2026, 9, 15), Amount: core.Money{Cents: 100},
	})
	s.Require().NoError(err)

	claimed, err := s.repo.ClaimDueAlerts(s.ctx, id, day)
	s.Require().NoError(err)
	s.Require().Len(claimed, 1)
	s.Equal("rent", claimed[0].Description)
	s.True(claimed[0].Notified)

	claimed, err = s.repo.ClaimDueAlerts(s.ctx, id, day)
	s.Require().NoError(err)
	s.Empty(claimed, "a claimed alert never fires twice")
}

func (s *RepositorySuite) TestClaimDueAlertsScopedToUser() {
	id := s.mustCreateUser("mona")
	other := s.mustCreateUser("nick")
	day := core.NewDate(2026, 8, 31)

	_, err := s.repo.CreateAlert(s.ctx, core.Alert{
		UserID: other, DueDate: day, Amount: core.Money{Cents: 100},
	})
	s.Require().NoError(err)

	claimed, err := s.repo.ClaimDueAlerts(s.ctx, id, day)
	s.Require().NoError(err)
	s.Empty(claimed)
}

func (s *RepositorySuite) TestMarkAlertNotifiedIdempotent() {
	id := s.mustCreateUser("olaf")
	other := s.mustCreateUser("quinn")

	alertID, err := s.repo.CreateAlert(s.ctx, core.Alert{
		UserID: id, DueDate: core.NewDate(2026, 9, 1), Amount: core.Money{Cents: 100},
	})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.MarkAlertNotified(s.ctx, id, alertID))
	s.Require().NoError(s.repo.MarkAlertNotified(s.ctx, id, alertID),
		"marking twice is a no-op, not an error")

	alerts, err := s.repo.ListAlerts(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(alerts, 1)
	s.True(alerts[0].Notified, "flag stays true, never toggles back")

	s.ErrorIs(s.repo.MarkAlertNotified(s.ctx, id, 999), core.ErrAlertNotFound)
	s.ErrorIs(s.repo.MarkAlertNotified(s.ctx, other, alertID), core.ErrAlertNotFound,
		"another user's alert looks like a missing one")
}

func (s *RepositorySuite) TestListAlertsOrderedByDueDate() {
	id := s.mustCreateUser("pete")

	for _, due := range []core.Date{
		core.NewDate(2026, 12, 1),
		core.NewDate(2026, 9, 1),
		core.NewDate(2026, 10, 1),
	} {
		_, err := s.repo.CreateAlert(s.ctx, core.Alert{UserID: id, DueDate: due, Amount: core.Money{Cents: 1}})
		s.Require().NoError(err)
	}

	alerts, err := s.repo.ListAlerts(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(alerts, 3)
	s.Equal("2026-09-01", alerts[0].DueDate.String())
	s.Equal("2026-12-01", alerts[2].DueDate.String())
}

func (s *RepositorySuite) addExpense(userID int64, spentOn, category string, cents int64) int64 {
	date, err := core.ParseDate(spentOn)
	s.Require().NoError(err)
	id, err := s.repo.CreateExpense(s.ctx, core.Expense{
		UserID:   userID,
		Date:     date,
		Category: category,
		Amount:   core.Money{Cents: cents},
	})
	s.Require().NoError(err)
	return id
}
