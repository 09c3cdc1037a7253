package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bricker/vivial-sub000/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

// reminderLeadTime is how far ahead of the outing start the reminder fires.
const reminderLeadTime = 24 * time.Hour

// NewReminderTask serializes a reminder payload into an asynq task
// scheduled for fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal reminder payload: %w", err)
	}
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.MaxRetry(3),
		asynq.Queue("reminders"),
	}
	return asynq.NewTask(TypeSendReminder, data), opts, nil
}

// AsynqReminderScheduler enqueues booking reminders on the task queue.
type AsynqReminderScheduler struct {
	Client *asynq.Client
	Logger *zap.Logger
}

func NewAsynqReminderScheduler(client *asynq.Client, logger *zap.Logger) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: client, Logger: logger}
}

// Schedule enqueues a reminder for a confirmed booking, firing a day
// before the outing starts, or immediately when the outing is sooner.
func (s *AsynqReminderScheduler) Schedule(ctx context.Context, booking *models.Booking) error {
	start := booking.Itinerary.StartTime()
	if start.IsZero() {
		return fmt.Errorf("booking %s has no start time", booking.ID)
	}

	fireAt := start.Add(-reminderLeadTime)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}

	payload := models.ReminderPayload{
		BookingID: booking.ID,
		AccountID: booking.AccountID,
		Title:     "Your outing is coming up",
		Body:      fmt.Sprintf("Your plans start at %s. See you there!", start.Format("Mon Jan 2, 3:04 PM")),
		FireDate:  fireAt.Format(time.RFC3339),
	}

	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	info, err := s.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}

	s.Logger.Info("scheduled booking reminder",
		zap.String("bookingId", booking.ID),
		zap.String("taskId", info.ID),
		zap.Time("fireAt", fireAt))
	return nil
}
