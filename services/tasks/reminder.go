// File: service/tasks/reminder.go
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"concierge/models"
	"concierge/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeCheckInReminder is the task type for pre-arrival reminders.
const TypeCheckInReminder = "reminder:checkin"

// reminderQueue is the asynq queue reminders ride on.
const reminderQueue = "default"

// NewCheckInReminderTask builds the queued task for one booking's reminder.
// The task id is the booking id, so a booking holds at most one scheduled
// reminder at a time.
func NewCheckInReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeCheckInReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(payload.BookingID),
		asynq.Queue(reminderQueue),
	}
	return task, opts, nil
}

// ReminderScheduler queues and withdraws pre-arrival reminders.
type ReminderScheduler interface {
	ScheduleCheckInReminder(ctx context.Context, booking *models.Booking) error
	CancelCheckInReminder(ctx context.Context, bookingID string) error
}

// DefaultReminderScheduler is the asynq-backed implementation.
type DefaultReminderScheduler struct {
	Client    *asynq.Client
	Inspector *asynq.Inspector
	Lead      time.Duration // how long before check-in midnight the reminder fires
}

func NewDefaultReminderScheduler(redisOpts asynq.RedisClientOpt, lead time.Duration) *DefaultReminderScheduler {
	return &DefaultReminderScheduler{
		Client:    asynq.NewClient(redisOpts),
		Inspector: asynq.NewInspector(redisOpts),
		Lead:      lead,
	}
}

// ScheduleCheckInReminder queues the reminder for a booking, replacing any
// reminder already queued for the same booking. Bookings whose reminder
// moment has already passed are skipped without error.
func (s *DefaultReminderScheduler) ScheduleCheckInReminder(ctx context.Context, booking *models.Booking) error {
	checkIn, err := time.Parse("2006-01-02", booking.CheckIn)
	if err != nil {
		return fmt.Errorf("invalid check-in date %q: %w", booking.CheckIn, err)
	}

	fireAt := checkIn.Add(-s.Lead)
	if !fireAt.After(time.Now()) {
		utils.GetLogger().Info("Skipping check-in reminder, fire time already past",
			zap.String("booking_id", booking.BookingID),
			zap.Time("fire_at", fireAt),
		)
		return nil
	}

	// Rescheduling replaces the previous reminder; the task id is the
	// booking id, so the old task must go before the new one can enqueue.
	if err := s.CancelCheckInReminder(ctx, booking.BookingID); err != nil {
		return err
	}

	payload := models.ReminderPayload{
		BookingID: booking.BookingID,
		UserID:    booking.UserID,
		CheckIn:   booking.CheckIn,
	}
	task, opts, err := NewCheckInReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue reminder for %s: %w", booking.BookingID, err)
	}

	utils.GetLogger().Info("Check-in reminder scheduled",
		zap.String("booking_id", booking.BookingID),
		zap.Time("fire_at", fireAt),
	)
	return nil
}

// CancelCheckInReminder withdraws a queued reminder. A reminder that never
// existed, or already ran, is not an error.
func (s *DefaultReminderScheduler) CancelCheckInReminder(ctx context.Context, bookingID string) error {
	err := s.Inspector.DeleteTask(reminderQueue, bookingID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, asynq.ErrTaskNotFound), errors.Is(err, asynq.ErrQueueNotFound):
		return nil
	default:
		return fmt.Errorf("delete reminder for %s: %w", bookingID, err)
	}
}
