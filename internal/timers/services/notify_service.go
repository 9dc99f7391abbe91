package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go-timers/internal/timers/models"
)

// Notification thresholds. Both are evaluated on every run; a timer very
// close to its start time can fire both in the same pass.
const (
	threshold1H = time.Hour
	threshold5M = 5 * time.Minute
)

// MessageSender delivers one reminder message.
type MessageSender interface {
	SendMessage(ctx context.Context, content string) error
}

// TimerMarker is the slice of the timer service the notifier uses.
type TimerMarker interface {
	ListTimers(ctx context.Context, onlyActive, includeSecret bool) ([]*models.Timer, error)
	MarkNotified(ctx context.Context, sortKey, field string) error
}

// NotifyService fires at-most-once reminders for secret timers nearing
// their start time.
type NotifyService struct {
	timers TimerMarker
	sender MessageSender
	now    func() time.Time
}

func NewNotifyService(timers TimerMarker, sender MessageSender) *NotifyService {
	return &NotifyService{
		timers: timers,
		sender: sender,
		now:    time.Now,
	}
}

// Run performs one notification pass. Delivery or flag failures are logged
// per timer and never abort the rest of the batch. A timer whose delivery
// failed keeps its flag unset so the next run retries it.
func (s *NotifyService) Run(ctx context.Context) error {
	timers, err := s.timers.ListTimers(ctx, false, true)
	if err != nil {
		return fmt.Errorf("failed to list timers: %w", err)
	}

	now := s.now().UTC()
	for _, timer := range timers {
		if !timer.IsSecret() {
			continue
		}

		if !timer.Notified1H && !timer.StartTime.Add(-threshold1H).After(now) {
			s.notify(ctx, timer, models.NotifiedField1H, "1 hour")
		}

		if !timer.Notified5M && !timer.StartTime.Add(-threshold5M).After(now) {
			s.notify(ctx, timer, models.NotifiedField5M, "5 minutes")
		}
	}

	return nil
}

func (s *NotifyService) notify(ctx context.Context, timer *models.Timer, field, window string) {
	notes := timer.Notes
	if notes == "" {
		notes = "None"
	}

	content := fmt.Sprintf("@here %s Skyhook timer in %s at %s expires within %s (notes: %s)",
		timer.StandingType,
		timer.SystemName,
		timer.StartTime.Format(time.RFC3339),
		window,
		notes,
	)

	if err := s.sender.SendMessage(ctx, content); err != nil {
		slog.ErrorContext(ctx, "Failed to send timer reminder",
			"timer", timer.SK,
			"threshold", field,
			"error", err,
		)
		return
	}

	if err := s.timers.MarkNotified(ctx, timer.SK, field); err != nil {
		if errors.Is(err, ErrTimerNotFound) {
			// Timer deleted mid-cycle; the next run simply won't see it.
			slog.InfoContext(ctx, "Timer deleted before flag update", "timer", timer.SK)
			return
		}
		slog.ErrorContext(ctx, "Failed to set notification flag",
			"timer", timer.SK,
			"threshold", field,
			"error", err,
		)
	}
}
