package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"finease/internal/core"
	"finease/internal/session"
)

// NotifyFunc delivers one claimed alert to the user.
type NotifyFunc func(ctx context.Context, alert core.Alert)

// AlertNotifier fires due alerts on a cron schedule for whichever user is
// logged in. With nobody logged in a run is a no-op; the alerts stay
// unclaimed until a session exists.
type AlertNotifier struct {
	alerts   *AlertService
	sessions *session.Manager
	schedule cron.Schedule
	notify   NotifyFunc
}

// NewAlertNotifier parses spec as a standard cron expression ("@daily",
// "0 9 * * *", ...).
func NewAlertNotifier(alerts *AlertService, sessions *session.Manager, spec string, notify NotifyFunc) (*AlertNotifier, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse alert schedule %q: %w", spec, err)
	}

	if notify == nil {
		notify = func(ctx context.Context, alert core.Alert) {
			slog.InfoContext(ctx, "Payment due today",
				"alert_id", alert.ID,
				"user_id", alert.UserID,
				"amount", alert.Amount.String(),
				"description", alert.Description)
		}
	}

	return &AlertNotifier{
		alerts:   alerts,
		sessions: sessions,
		schedule: schedule,
		notify:   notify,
	}, nil
}

// Run blocks until ctx is done, firing RunOnce at each scheduled instant.
func (n *AlertNotifier) Run(ctx context.Context) error {
	slog.InfoContext(ctx, "Alert notifier started")

	for {
		next := n.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			slog.InfoContext(ctx, "Alert notifier stopping", "reason", ctx.Err())
			return ctx.Err()
		case <-timer.C:
			if err := n.RunOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "Alert run failed", "error", err)
			}
		}
	}
}

// RunOnce claims today's due alerts for the active user and delivers each one.
func (n *AlertNotifier) RunOnce(ctx context.Context) error {
	userID, err := n.sessions.Current()
	if err != nil {
		slog.DebugContext(ctx, "No active session, skipping alert run")
		return nil
	}

	due, err := n.alerts.DueToday(ctx, userID)
	if err != nil {
		return fmt.Errorf("claim due alerts: %w", err)
	}

	for _, alert := range due {
		n.notify(ctx, alert)
	}

	if len(due) > 0 {
		slog.InfoContext(ctx, "Delivered due alerts", "count", len(due), "user_id", userID)
	}

	return nil
}
