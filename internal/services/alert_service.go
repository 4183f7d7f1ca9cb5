package services

import (
	"context"
	"time"

	"finease/internal/core"
	"finease/internal/storage"
)

// AlertService manages due-payment alerts.
type AlertService struct {
	storage *storage.SQLiteRepository
	now     func() time.Time
}

func NewAlertService(storage *storage.SQLiteRepository) *AlertService {
	return &AlertService{
		storage: storage,
		now:     time.Now,
	}
}

// AddAlert registers a payment alert for a future (or past) due date.
func (s *AlertService) AddAlert(ctx context.Context, a core.Alert) (int64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	return s.storage.CreateAlert(ctx, a)
}

// DueToday claims and returns the alerts due on the current day that have not
// fired yet. Claiming and reading are a single statement, so each alert is
// returned exactly once across concurrent callers.
func (s *AlertService) DueToday(ctx context.Context, userID int64) ([]core.Alert, error) {
	today := core.Today(s.now())
	return s.storage.ClaimDueAlerts(ctx, userID, today)
}

// MarkNotified flips one alert's notified flag by hand. Repeat calls are
// no-ops; only unknown alerts return core.ErrAlertNotFound.
func (s *AlertService) MarkNotified(ctx context.Context, userID, alertID int64) error {
	return s.storage.MarkAlertNotified(ctx, userID, alertID)
}

// ListAlerts returns all of a user's alerts, soonest due first.
func (s *AlertService) ListAlerts(ctx context.Context, userID int64) ([]core.Alert, error) {
	return s.storage.ListAlerts(ctx, userID)
}
